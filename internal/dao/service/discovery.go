package service

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/daocell"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/goodnatureofminers/nervosdao-backend/pkg/workerpool"
	"go.uber.org/zap"
)

const (
	scanKindDeposit           = "deposit"
	scanKindWithdrawalRequest = "withdrawal_request"
)

// FindDeposits streams the deposits locked by lock in ascending chain order,
// projected against tip. A nil tip is fetched from the ledger first.
// The sequence stops after yielding the first error.
func (d *Dao) FindDeposits(ctx context.Context, lock model.Script, tip *model.Header) iter.Seq2[daocell.Deposit, error] {
	return func(yield func(daocell.Deposit, error) bool) {
		var at model.Header
		if tip != nil {
			at = *tip
		} else {
			header, err := d.client.TipHeader(ctx)
			if err != nil {
				yield(daocell.Deposit{}, fmt.Errorf("fetch tip header: %w", err))
				return
			}
			at = header
		}

		resolve := func(ctx context.Context, cell model.Cell) (daocell.Deposit, error) {
			header, err := d.headers.TransactionHeader(ctx, cell.OutPoint.TxHash)
			if err != nil {
				return daocell.Deposit{}, fmt.Errorf("resolve deposit header %s: %w", cell.OutPoint, err)
			}
			return daocell.NewDeposit(cell, header, at), nil
		}

		for cells, err := range d.scan(ctx, scanKindDeposit, lock, d.IsDeposit) {
			if err != nil {
				yield(daocell.Deposit{}, err)
				return
			}
			deposits, err := workerpool.Map(ctx, d.workerCount, cells, resolve)
			if err != nil {
				d.logger.Error("resolve deposits failed", zap.Error(err))
				yield(daocell.Deposit{}, err)
				return
			}
			for _, deposit := range deposits {
				if !yield(deposit, nil) {
					return
				}
			}
		}
	}
}

// FindWithdrawalRequests streams the withdrawal requests locked by lock in
// ascending chain order. The sequence stops after yielding the first error.
func (d *Dao) FindWithdrawalRequests(ctx context.Context, lock model.Script) iter.Seq2[daocell.WithdrawalRequest, error] {
	return func(yield func(daocell.WithdrawalRequest, error) bool) {
		for cells, err := range d.scan(ctx, scanKindWithdrawalRequest, lock, d.IsWithdrawalRequest) {
			if err != nil {
				yield(daocell.WithdrawalRequest{}, err)
				return
			}
			requests, err := workerpool.Map(ctx, d.workerCount, cells, d.resolveWithdrawalRequest)
			if err != nil {
				d.logger.Error("resolve withdrawal requests failed", zap.Error(err))
				yield(daocell.WithdrawalRequest{}, err)
				return
			}
			for _, request := range requests {
				if !yield(request, nil) {
					return
				}
			}
		}
	}
}

// resolveWithdrawalRequest finds the request header and traces the input at
// the cell's output index back to the deposit transaction. The request data
// must hold that deposit's block number.
func (d *Dao) resolveWithdrawalRequest(ctx context.Context, cell model.Cell) (daocell.WithdrawalRequest, error) {
	request, err := d.headers.TransactionHeader(ctx, cell.OutPoint.TxHash)
	if err != nil {
		return daocell.WithdrawalRequest{}, fmt.Errorf("resolve request header %s: %w", cell.OutPoint, err)
	}

	height, err := model.DecodeUint64LE(cell.OutputData)
	if err != nil {
		return daocell.WithdrawalRequest{}, fmt.Errorf("decode deposit height of %s: %w", cell.OutPoint, err)
	}

	inputs, err := d.client.TransactionInputs(ctx, cell.OutPoint.TxHash)
	if err != nil {
		return daocell.WithdrawalRequest{}, fmt.Errorf("fetch inputs of %s: %w", cell.OutPoint.TxHash.Hex(), err)
	}
	if int(cell.OutPoint.Index) >= len(inputs) {
		return daocell.WithdrawalRequest{}, fmt.Errorf("request %s has %d inputs: %w", cell.OutPoint, len(inputs), ErrMissingHeader)
	}

	depositOut := inputs[cell.OutPoint.Index].PreviousOutput
	deposit, err := d.headers.TransactionHeader(ctx, depositOut.TxHash)
	if err != nil {
		return daocell.WithdrawalRequest{}, fmt.Errorf("resolve deposit header %s: %w", depositOut, err)
	}
	if deposit.Header.Number != height {
		return daocell.WithdrawalRequest{}, fmt.Errorf("request %s records height %d, deposit %s is in block %d: %w",
			cell.OutPoint, height, depositOut, deposit.Header.Number, ErrDepositHeightMismatch)
	}

	return daocell.NewWithdrawalRequest(cell, deposit, request), nil
}

// scan pages through the cells locked by lock and typed by the DAO script,
// yielding the non-empty subsets that keep accepts. Lock equality is checked
// locally since the node may match lock args by prefix.
func (d *Dao) scan(ctx context.Context, kind string, lock model.Script, keep func(model.Cell) bool) iter.Seq2[[]model.Cell, error] {
	return func(yield func([]model.Cell, error) bool) {
		query := model.CellQuery{Lock: lock, Type: d.typeScript()}
		var cursor string
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			started := time.Now()
			page, err := d.client.Cells(ctx, query, model.OrderAsc, d.pageSize, cursor)
			if err != nil {
				d.metrics.ObserveScan(kind, err, 0, 0, started)
				d.logger.Error("search cells failed", zap.String("kind", kind), zap.Error(err))
				yield(nil, fmt.Errorf("search %s cells: %w", kind, err))
				return
			}

			matched := make([]model.Cell, 0, len(page.Cells))
			for _, cell := range page.Cells {
				if cell.Output.Lock.Equal(lock) && keep(cell) {
					matched = append(matched, cell)
				}
			}
			d.metrics.ObserveScan(kind, nil, len(page.Cells), len(matched), started)

			if len(matched) > 0 && !yield(matched, nil) {
				return
			}
			if len(page.Cells) < int(d.pageSize) || page.Cursor == "" {
				return
			}
			cursor = page.Cursor
		}
	}
}
