package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// DefaultCacheSize is the number of headers and transaction locations kept in memory.
const DefaultCacheSize = 4096

// ErrNotCommitted is returned for transactions that are not in a block yet.
var ErrNotCommitted = errors.New("transaction not committed")

// HeaderResolver looks headers up in memory, then in the repository, then on
// the node. Node answers are written back to the repository. It is safe for
// concurrent use.
type HeaderResolver struct {
	node    Node
	repo    HeaderRepository
	headers *lru.Cache[common.Hash, model.Header]
	blocks  *lru.Cache[common.Hash, common.Hash]
	logger  *zap.Logger
}

// NewHeaderResolver constructs a resolver. repo may be nil to skip persistence.
func NewHeaderResolver(node Node, repo HeaderRepository, cacheSize int, logger *zap.Logger) (*HeaderResolver, error) {
	if node == nil {
		return nil, errors.New("node is required")
	}
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	headers, err := lru.New[common.Hash, model.Header](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create header cache: %w", err)
	}
	blocks, err := lru.New[common.Hash, common.Hash](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create block cache: %w", err)
	}
	return &HeaderResolver{
		node:    node,
		repo:    repo,
		headers: headers,
		blocks:  blocks,
		logger:  logger.Named("header_resolver"),
	}, nil
}

// TransactionHeader returns the header of the block that committed txHash.
func (r *HeaderResolver) TransactionHeader(ctx context.Context, txHash common.Hash) (model.TransactionHeader, error) {
	blockHash, err := r.blockHash(ctx, txHash)
	if err != nil {
		return model.TransactionHeader{}, err
	}
	header, err := r.Header(ctx, blockHash)
	if err != nil {
		return model.TransactionHeader{}, fmt.Errorf("resolve block of tx %s: %w", txHash.Hex(), err)
	}
	return model.TransactionHeader{TxHash: txHash, Header: header}, nil
}

// Header returns the header with the given hash.
func (r *HeaderResolver) Header(ctx context.Context, hash common.Hash) (model.Header, error) {
	if header, ok := r.headers.Get(hash); ok {
		return header, nil
	}

	if r.repo != nil {
		header, found, err := r.repo.HeaderByHash(ctx, hash)
		if err != nil {
			return model.Header{}, fmt.Errorf("query header %s: %w", hash.Hex(), err)
		}
		if found {
			r.headers.Add(hash, header)
			return header, nil
		}
	}

	header, err := r.node.Header(ctx, hash)
	if err != nil {
		return model.Header{}, fmt.Errorf("fetch header %s: %w", hash.Hex(), err)
	}
	r.storeHeader(ctx, header)
	return header, nil
}

// HeaderByNumber returns the canonical header at number.
func (r *HeaderResolver) HeaderByNumber(ctx context.Context, number uint64) (model.Header, error) {
	if r.repo != nil {
		header, found, err := r.repo.HeaderByNumber(ctx, number)
		if err != nil {
			return model.Header{}, fmt.Errorf("query header %d: %w", number, err)
		}
		if found {
			r.headers.Add(header.Hash, header)
			return header, nil
		}
	}

	header, err := r.node.HeaderByNumber(ctx, number)
	if err != nil {
		return model.Header{}, fmt.Errorf("fetch header %d: %w", number, err)
	}
	r.storeHeader(ctx, header)
	return header, nil
}

func (r *HeaderResolver) blockHash(ctx context.Context, txHash common.Hash) (common.Hash, error) {
	if blockHash, ok := r.blocks.Get(txHash); ok {
		return blockHash, nil
	}

	if r.repo != nil {
		blockHash, found, err := r.repo.TransactionBlockHash(ctx, txHash)
		if err != nil {
			return common.Hash{}, fmt.Errorf("query block of tx %s: %w", txHash.Hex(), err)
		}
		if found {
			r.blocks.Add(txHash, blockHash)
			return blockHash, nil
		}
	}

	blockHash, committed, err := r.node.TransactionBlockHash(ctx, txHash)
	if err != nil {
		return common.Hash{}, fmt.Errorf("fetch block of tx %s: %w", txHash.Hex(), err)
	}
	if !committed {
		return common.Hash{}, fmt.Errorf("tx %s: %w", txHash.Hex(), ErrNotCommitted)
	}

	if r.repo != nil {
		if err := r.repo.InsertTransactionBlocks(ctx, []model.TransactionBlock{{TxHash: txHash, BlockHash: blockHash}}); err != nil {
			r.logger.Warn("store transaction block failed",
				zap.String("tx_hash", txHash.Hex()),
				zap.Error(err))
		}
	}
	r.blocks.Add(txHash, blockHash)
	return blockHash, nil
}

// storeHeader caches header and writes it back. A failed write only loses the
// persistent copy.
func (r *HeaderResolver) storeHeader(ctx context.Context, header model.Header) {
	if r.repo != nil {
		if err := r.repo.InsertHeaders(ctx, []model.Header{header}); err != nil {
			r.logger.Warn("store header failed",
				zap.String("hash", header.Hash.Hex()),
				zap.Uint64("number", header.Number),
				zap.Error(err))
		}
	}
	r.headers.Add(header.Hash, header)
}
