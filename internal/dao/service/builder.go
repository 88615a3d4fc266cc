package service

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/daocell"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"go.uber.org/zap"
)

// Transaction is the in-progress transaction the builder appends to.
// model.Transaction implements it.
type Transaction interface {
	InputsLen() int
	OutputsLen() int
	OutputsDataLen() int
	AddCellDeps(deps ...model.CellDep)
	AddTransactionHeaders(headers ...model.TransactionHeader)
	HeaderDepIndex(hash common.Hash) int
	AddInput(input model.CellInput) int
	AddOutput(output model.CellOutput, data []byte) int
	WitnessArgsAt(index int) (model.WitnessArgs, error)
	SetWitnessArgsAt(index int, w model.WitnessArgs) error
}

type requestConfig struct {
	sameSizeArgs bool
}

// RequestOption configures RequestWithdrawal.
type RequestOption func(*requestConfig)

// WithoutSameSizeArgs allows a withdrawal lock whose args differ in size from
// the deposit lock's args.
func WithoutSameSizeArgs() RequestOption {
	return func(c *requestConfig) {
		c.sameSizeArgs = false
	}
}

// Deposit appends one deposit output per capacity, locked by lock.
func (d *Dao) Deposit(tx Transaction, capacities []uint64, lock model.Script) error {
	tx.AddCellDeps(d.cellDeps...)
	for _, capacity := range capacities {
		tx.AddOutput(model.CellOutput{
			Capacity: capacity,
			Lock:     lock,
			Type:     d.typeScript(),
		}, model.DepositOutputData())
	}
	d.logger.Debug("deposit outputs added", zap.Int("count", len(capacities)))
	return nil
}

// RequestWithdrawal spends every deposit into a withdrawal request output at
// the same position, locked by lock. tx must have as many outputs and outputs
// data as inputs.
//
// On failure deposits before the failing one stay applied.
func (d *Dao) RequestWithdrawal(tx Transaction, deposits []daocell.Deposit, lock model.Script, opts ...RequestOption) error {
	cfg := requestConfig{sameSizeArgs: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if tx.InputsLen() != tx.OutputsLen() || tx.OutputsLen() != tx.OutputsDataLen() {
		return fmt.Errorf("request withdrawal with %d inputs, %d outputs, %d outputs data: %w",
			tx.InputsLen(), tx.OutputsLen(), tx.OutputsDataLen(), ErrStructuralMismatch)
	}

	tx.AddCellDeps(d.cellDeps...)
	for i, deposit := range deposits {
		cell := deposit.Cell()
		if cfg.sameSizeArgs && len(lock.Args) != len(cell.Output.Lock.Args) {
			return fmt.Errorf("deposit %d %s: lock args %d bytes, deposit lock args %d bytes: %w",
				i, cell.OutPoint, len(lock.Args), len(cell.Output.Lock.Args), ErrLockArgSizeMismatch)
		}
		header := deposit.DepositHeader()
		if header.IsZero() {
			return fmt.Errorf("deposit %d %s: %w", i, cell.OutPoint, ErrMissingHeader)
		}

		tx.AddTransactionHeaders(deposit.TransactionHeaders()...)
		tx.AddInput(model.CellInput{PreviousOutput: cell.OutPoint})
		tx.AddOutput(model.CellOutput{
			Capacity: cell.Output.Capacity,
			Lock:     lock,
			Type:     d.typeScript(),
		}, model.EncodeUint64LE(header.Header.Number))
	}
	d.logger.Debug("withdrawal requests added", zap.Int("count", len(deposits)))
	return nil
}

// Withdraw spends every withdrawal request, gating each input on its maturity
// and pointing its witness at the deposit header.
//
// On failure requests before the failing one stay applied; the failing request
// may have added header dependencies only.
func (d *Dao) Withdraw(tx Transaction, requests []daocell.WithdrawalRequest) error {
	tx.AddCellDeps(d.cellDeps...)
	for i, request := range requests {
		cell := request.Cell()
		deposit := request.DepositHeader()
		if deposit.IsZero() || request.RequestHeader().IsZero() {
			return fmt.Errorf("withdrawal request %d %s: %w", i, cell.OutPoint, ErrMissingHeader)
		}

		tx.AddTransactionHeaders(request.TransactionHeaders()...)
		headerIndex := tx.HeaderDepIndex(deposit.Header.Hash)
		if headerIndex < 0 {
			return fmt.Errorf("withdrawal request %d %s: deposit header %s not in header deps: %w",
				i, cell.OutPoint, deposit.Header.Hash.Hex(), ErrMissingHeader)
		}

		inputIndex := tx.InputsLen()
		witness, err := tx.WitnessArgsAt(inputIndex)
		if err != nil {
			return fmt.Errorf("load witness %d: %w", inputIndex, err)
		}
		if witness.InputType != nil {
			return fmt.Errorf("withdrawal request %d %s: witness %d: %w", i, cell.OutPoint, inputIndex, ErrWitnessConflict)
		}

		tx.AddInput(model.CellInput{
			PreviousOutput: cell.OutPoint,
			Since:          model.AbsoluteEpochSince(request.Maturity()),
		})
		witness.InputType = model.EncodeUint64LE(uint64(headerIndex))
		if err := tx.SetWitnessArgsAt(inputIndex, witness); err != nil {
			return fmt.Errorf("store witness %d: %w", inputIndex, err)
		}
	}
	d.logger.Debug("withdrawals added", zap.Int("count", len(requests)))
	return nil
}
