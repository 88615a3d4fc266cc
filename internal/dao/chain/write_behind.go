package chain

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/goodnatureofminers/nervosdao-backend/pkg/batcher"
	"go.uber.org/zap"
)

// WriteBehind queues repository inserts and writes them in bulk. Reads go
// straight to the wrapped repository, so a queued row is invisible to them
// until its batch flushes.
type WriteBehind struct {
	repo    HeaderRepository
	headers *batcher.Batcher[model.Header]
	blocks  *batcher.Batcher[model.TransactionBlock]
}

// NewWriteBehind wraps repo. Start must be called before inserts are written.
func NewWriteBehind(repo HeaderRepository, logger *zap.Logger, opts ...batcher.Option) *WriteBehind {
	logger = logger.Named("write_behind")
	return &WriteBehind{
		repo:    repo,
		headers: batcher.New[model.Header](repo.InsertHeaders, logger.With(zap.String("table", "headers")), opts...),
		blocks:  batcher.New[model.TransactionBlock](repo.InsertTransactionBlocks, logger.With(zap.String("table", "transaction_blocks")), opts...),
	}
}

func (w *WriteBehind) Start(ctx context.Context) {
	w.headers.Start(ctx)
	w.blocks.Start(ctx)
}

// Stop flushes queued rows and waits for both writers.
func (w *WriteBehind) Stop() {
	w.headers.Stop()
	w.blocks.Stop()
}

func (w *WriteBehind) HeaderByHash(ctx context.Context, hash common.Hash) (model.Header, bool, error) {
	return w.repo.HeaderByHash(ctx, hash)
}

func (w *WriteBehind) HeaderByNumber(ctx context.Context, number uint64) (model.Header, bool, error) {
	return w.repo.HeaderByNumber(ctx, number)
}

func (w *WriteBehind) TransactionBlockHash(ctx context.Context, txHash common.Hash) (common.Hash, bool, error) {
	return w.repo.TransactionBlockHash(ctx, txHash)
}

func (w *WriteBehind) InsertHeaders(ctx context.Context, headers []model.Header) error {
	if err := w.headers.Add(ctx, headers...); err != nil {
		return fmt.Errorf("queue headers: %w", err)
	}
	return nil
}

func (w *WriteBehind) InsertTransactionBlocks(ctx context.Context, blocks []model.TransactionBlock) error {
	if err := w.blocks.Add(ctx, blocks...); err != nil {
		return fmt.Errorf("queue transaction blocks: %w", err)
	}
	return nil
}
