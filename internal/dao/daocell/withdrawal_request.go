package daocell

import (
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/calc"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

// WithdrawalRequest is a DAO cell whose withdrawal was requested on chain.
// Its interests and maturity are fixed by the two headers.
type WithdrawalRequest struct {
	cell      model.Cell
	deposit   model.TransactionHeader
	request   model.TransactionHeader
	interests int64
	maturity  model.Epoch
}

// NewWithdrawalRequest builds a request cell from the header of the original
// deposit transaction and the header of the request transaction.
func NewWithdrawalRequest(cell model.Cell, deposit, request model.TransactionHeader) WithdrawalRequest {
	return WithdrawalRequest{
		cell:      cell,
		deposit:   deposit,
		request:   request,
		interests: calc.Interest(cell, deposit.Header, request.Header),
		maturity:  calc.Maturity(deposit.Header, request.Header),
	}
}

func (w WithdrawalRequest) Cell() model.Cell                       { return w.cell }
func (w WithdrawalRequest) DepositHeader() model.TransactionHeader { return w.deposit }
func (w WithdrawalRequest) RequestHeader() model.TransactionHeader { return w.request }
func (w WithdrawalRequest) Interests() int64                       { return w.interests }
func (w WithdrawalRequest) Maturity() model.Epoch                  { return w.maturity }

// TransactionHeaders returns the deposit header followed by the request header.
func (w WithdrawalRequest) TransactionHeaders() []model.TransactionHeader {
	return []model.TransactionHeader{w.deposit, w.request}
}
