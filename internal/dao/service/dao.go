// Package service builds NervosDAO state transitions and discovers DAO cells on chain.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is the cell search page size accepted by ledger nodes for live queries.
	DefaultPageSize uint32 = 400

	defaultScanWorkerCount = 8
)

// Dao identifies the DAO type script and builds transactions that use it.
// It holds no mutable state and may be shared.
type Dao struct {
	script   model.Script
	cellDeps []model.CellDep

	client      LedgerClient
	headers     HeaderResolver
	metrics     ScannerMetrics
	logger      *zap.Logger
	pageSize    uint32
	workerCount int
}

// Option configures a Dao.
type Option func(*Dao)

// WithPageSize overrides DefaultPageSize.
func WithPageSize(size uint32) Option {
	return func(d *Dao) {
		if size > 0 {
			d.pageSize = size
		}
	}
}

// WithScanWorkers sets how many cells of a page resolve their headers concurrently.
func WithScanWorkers(n int) Option {
	return func(d *Dao) {
		if n > 0 {
			d.workerCount = n
		}
	}
}

// New resolves the DAO script from the client's registry.
func New(
	ctx context.Context,
	client LedgerClient,
	headers HeaderResolver,
	metrics ScannerMetrics,
	logger *zap.Logger,
	opts ...Option,
) (*Dao, error) {
	if client == nil {
		return nil, errors.New("ledger client is required")
	}
	if headers == nil {
		return nil, errors.New("header resolver is required")
	}
	if metrics == nil {
		return nil, errors.New("scanner metrics is required")
	}

	info, err := client.KnownScript(ctx, model.KnownScriptNervosDao)
	if err != nil {
		return nil, fmt.Errorf("resolve dao script: %w", err)
	}

	d := &Dao{
		script: model.Script{
			CodeHash: info.CodeHash,
			HashType: info.HashType,
			Args:     []byte{},
		},
		cellDeps:    append([]model.CellDep(nil), info.CellDeps...),
		client:      client,
		headers:     headers,
		metrics:     metrics,
		logger:      logger.Named("dao"),
		pageSize:    DefaultPageSize,
		workerCount: defaultScanWorkerCount,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Script returns a copy of the DAO type script.
func (d *Dao) Script() model.Script {
	s := d.script
	s.Args = append([]byte{}, d.script.Args...)
	return s
}

// CellDeps returns the cell dependencies needed to run the DAO script.
func (d *Dao) CellDeps() []model.CellDep {
	return append([]model.CellDep(nil), d.cellDeps...)
}

// IsDeposit reports whether cell is a DAO deposit.
func (d *Dao) IsDeposit(cell model.Cell) bool {
	return cell.Output.HasType(d.script) && bytes.Equal(cell.OutputData, model.DepositOutputData())
}

// IsWithdrawalRequest reports whether cell is a DAO withdrawal request.
func (d *Dao) IsWithdrawalRequest(cell model.Cell) bool {
	return cell.Output.HasType(d.script) && !bytes.Equal(cell.OutputData, model.DepositOutputData())
}

func (d *Dao) typeScript() *model.Script {
	s := d.Script()
	return &s
}
