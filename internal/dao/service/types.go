package service

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// LedgerClient is the ledger node the Dao reads scripts, tips and cells from.
	LedgerClient interface {
		KnownScript(ctx context.Context, id model.KnownScript) (model.ScriptInfo, error)
		TipHeader(ctx context.Context) (model.Header, error)
		Cells(ctx context.Context, query model.CellQuery, order model.Order, limit uint32, after string) (model.CellPage, error)
		TransactionInputs(ctx context.Context, txHash common.Hash) ([]model.CellInput, error)
	}
	// HeaderResolver finds the header of the block that committed a transaction.
	HeaderResolver interface {
		TransactionHeader(ctx context.Context, txHash common.Hash) (model.TransactionHeader, error)
	}
	ScannerMetrics interface {
		ObserveScan(kind string, err error, scanned, matched int, started time.Time)
	}
)
