package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

// TransactionBlockHash returns the stored block hash of a committed transaction.
func (r *Repository) TransactionBlockHash(ctx context.Context, txHash common.Hash) (common.Hash, bool, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transaction_block_hash", r.network, err, start)
	}()

	const query = `
SELECT block_hash
FROM dao_transaction_blocks
WHERE network = ? AND tx_hash = ?
ORDER BY updated_at DESC
LIMIT 1`

	rows, err := r.conn.Query(ctx, query, string(r.network), txHash.Hex())
	if err != nil {
		return common.Hash{}, false, fmt.Errorf("query transaction block: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return common.Hash{}, false, fmt.Errorf("iterate transaction block: %w", err)
		}
		return common.Hash{}, false, nil
	}

	var blockHash string
	if err = rows.Scan(&blockHash); err != nil {
		return common.Hash{}, false, fmt.Errorf("scan transaction block: %w", err)
	}
	if err = rows.Err(); err != nil {
		return common.Hash{}, false, fmt.Errorf("iterate transaction block: %w", err)
	}
	return common.HexToHash(blockHash), true, nil
}

// InsertTransactionBlocks records the blocks that committed the given transactions.
func (r *Repository) InsertTransactionBlocks(ctx context.Context, blocks []model.TransactionBlock) error {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("insert_transaction_blocks", r.network, err, start)
	}()

	if len(blocks) == 0 {
		return nil
	}

	const query = `
INSERT INTO dao_transaction_blocks (
	network,
	tx_hash,
	block_hash
) VALUES`

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare transaction blocks batch: %w", err)
	}
	for _, block := range blocks {
		if err = batch.Append(string(r.network), block.TxHash.Hex(), block.BlockHash.Hex()); err != nil {
			return fmt.Errorf("append transaction block %s: %w", block.TxHash.Hex(), err)
		}
	}
	if err = batch.Send(); err != nil {
		return fmt.Errorf("insert transaction blocks: %w", err)
	}
	return nil
}
