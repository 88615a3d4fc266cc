package watcher

import (
	"context"
	"iter"
	"time"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/daocell"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// DaoScanner streams the DAO cells owned by a lock.
	DaoScanner interface {
		FindDeposits(ctx context.Context, lock model.Script, tip *model.Header) iter.Seq2[daocell.Deposit, error]
		FindWithdrawalRequests(ctx context.Context, lock model.Script) iter.Seq2[daocell.WithdrawalRequest, error]
	}
	TipSource interface {
		TipHeader(ctx context.Context) (model.Header, error)
	}
	Metrics interface {
		ObserveSnapshot(err error, deposits, requests, claimable int, started time.Time)
	}
)
