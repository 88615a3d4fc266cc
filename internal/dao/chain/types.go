// Package chain resolves the block context of committed transactions.
package chain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	// Node is the ledger node headers are fetched from.
	Node interface {
		Header(ctx context.Context, hash common.Hash) (model.Header, error)
		HeaderByNumber(ctx context.Context, number uint64) (model.Header, error)
		TransactionBlockHash(ctx context.Context, txHash common.Hash) (common.Hash, bool, error)
	}
	// HeaderRepository persists headers and transaction locations between runs.
	HeaderRepository interface {
		HeaderByHash(ctx context.Context, hash common.Hash) (model.Header, bool, error)
		HeaderByNumber(ctx context.Context, number uint64) (model.Header, bool, error)
		TransactionBlockHash(ctx context.Context, txHash common.Hash) (common.Hash, bool, error)
		InsertHeaders(ctx context.Context, headers []model.Header) error
		InsertTransactionBlocks(ctx context.Context, blocks []model.TransactionBlock) error
	}
)
