// Package ckb talks to a ledger node over JSON-RPC, including its built-in
// cell indexer.
package ckb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"go.uber.org/zap"
)

const (
	methodGetTipHeader        = "get_tip_header"
	methodGetHeader           = "get_header"
	methodGetHeaderByNumber   = "get_header_by_number"
	methodGetTransaction      = "get_transaction"
	methodGetCells            = "get_cells"
	searchScriptTypeLock      = "lock"
	defaultHTTPRequestTimeout = 30 * time.Second
)

// Client is an instrumented, rate limited node client.
type Client struct {
	rpc     *rpcClient
	network model.Network
	logger  *zap.Logger
}

// NewClient constructs a client for the node at rpcURL. rps <= 0 disables rate limiting.
func NewClient(
	rpcURL string,
	network model.Network,
	timeout time.Duration,
	rps int,
	metrics RPCMetrics,
	logger *zap.Logger,
) (*Client, error) {
	if rpcURL == "" {
		return nil, errors.New("rpc url is required")
	}
	if _, ok := knownScripts[network]; !ok {
		return nil, fmt.Errorf("unknown network %q", network)
	}
	if metrics == nil {
		return nil, errors.New("rpc metrics is required")
	}
	if timeout <= 0 {
		timeout = defaultHTTPRequestTimeout
	}
	return &Client{
		rpc:     newRPCClient(rpcURL, timeout, rps, metrics),
		network: network,
		logger:  logger.With(zap.String("network", string(network))),
	}, nil
}

// Network returns the network the client was configured for.
func (c *Client) Network() model.Network {
	return c.network
}

// KnownScript resolves a system script deployed on the client's network.
func (c *Client) KnownScript(_ context.Context, id model.KnownScript) (model.ScriptInfo, error) {
	return lookupScript(c.network, id)
}

// TipHeader returns the header of the current tip block.
func (c *Client) TipHeader(ctx context.Context) (model.Header, error) {
	var raw rpcHeader
	if err := c.rpc.call(ctx, methodGetTipHeader, &raw); err != nil {
		return model.Header{}, err
	}
	return headerFromRPC(raw)
}

// Header returns the header with the given block hash.
func (c *Client) Header(ctx context.Context, hash common.Hash) (model.Header, error) {
	var raw rpcHeader
	if err := c.rpc.call(ctx, methodGetHeader, &raw, hash); err != nil {
		return model.Header{}, fmt.Errorf("get header %s: %w", hash.Hex(), err)
	}
	return headerFromRPC(raw)
}

// HeaderByNumber returns the canonical header at number.
func (c *Client) HeaderByNumber(ctx context.Context, number uint64) (model.Header, error) {
	var raw rpcHeader
	if err := c.rpc.call(ctx, methodGetHeaderByNumber, &raw, hexutil.Uint64(number)); err != nil {
		return model.Header{}, fmt.Errorf("get header %d: %w", number, err)
	}
	return headerFromRPC(raw)
}

// TransactionBlockHash returns the hash of the block that committed txHash.
// committed is false while the transaction is pending or proposed.
func (c *Client) TransactionBlockHash(ctx context.Context, txHash common.Hash) (blockHash common.Hash, committed bool, err error) {
	tx, err := c.transaction(ctx, txHash)
	if err != nil {
		return common.Hash{}, false, err
	}
	if tx.TxStatus.Status != txStatusCommitted || tx.TxStatus.BlockHash == nil {
		c.logger.Debug("transaction not committed",
			zap.String("tx_hash", txHash.Hex()),
			zap.String("status", tx.TxStatus.Status))
		return common.Hash{}, false, nil
	}
	return *tx.TxStatus.BlockHash, true, nil
}

// TransactionInputs returns the inputs of txHash in order.
func (c *Client) TransactionInputs(ctx context.Context, txHash common.Hash) ([]model.CellInput, error) {
	tx, err := c.transaction(ctx, txHash)
	if err != nil {
		return nil, err
	}
	inputs, err := inputsFromRPC(tx.Transaction.Inputs)
	if err != nil {
		return nil, fmt.Errorf("convert inputs of %s: %w", txHash.Hex(), err)
	}
	return inputs, nil
}

func (c *Client) transaction(ctx context.Context, txHash common.Hash) (rpcTransactionWithStatus, error) {
	var raw rpcTransactionWithStatus
	if err := c.rpc.call(ctx, methodGetTransaction, &raw, txHash); err != nil {
		return rpcTransactionWithStatus{}, fmt.Errorf("get transaction %s: %w", txHash.Hex(), err)
	}
	if raw.Transaction == nil {
		return rpcTransactionWithStatus{}, fmt.Errorf("get transaction %s: %w", txHash.Hex(), ErrNotFound)
	}
	return raw, nil
}

// Cells searches live cells by lock script, filtered by the query type script.
// An empty after starts from the beginning.
func (c *Client) Cells(ctx context.Context, query model.CellQuery, order model.Order, limit uint32, after string) (model.CellPage, error) {
	key := rpcSearchKey{
		Script:     scriptToRPC(query.Lock),
		ScriptType: searchScriptTypeLock,
		WithData:   true,
	}
	if query.Type != nil {
		typ := scriptToRPC(*query.Type)
		key.Filter = &rpcSearchKeyFilter{Script: &typ}
	}
	var cursor any
	if after != "" {
		cursor = after
	}

	var raw rpcCells
	if err := c.rpc.call(ctx, methodGetCells, &raw, key, string(order), hexutil.Uint64(limit), cursor); err != nil {
		return model.CellPage{}, fmt.Errorf("search cells: %w", err)
	}

	page := model.CellPage{Cells: make([]model.Cell, 0, len(raw.Objects)), Cursor: raw.LastCursor}
	for _, obj := range raw.Objects {
		cell, err := cellFromRPC(obj)
		if err != nil {
			return model.CellPage{}, fmt.Errorf("convert cell: %w", err)
		}
		page.Cells = append(page.Cells, cell)
	}
	return page, nil
}
