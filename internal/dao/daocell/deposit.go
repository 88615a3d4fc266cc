// Package daocell models DAO cells together with the header context needed
// to project their interest and maturity.
package daocell

import (
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/calc"
	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

// Deposit is a deposited DAO cell projected against a tip header.
type Deposit struct {
	cell      model.Cell
	deposit   model.TransactionHeader
	interests int64
	maturity  model.Epoch
}

// NewDeposit projects cell, deposited in deposit, as if withdrawal were
// requested at tip.
func NewDeposit(cell model.Cell, deposit model.TransactionHeader, tip model.Header) Deposit {
	d := Deposit{cell: cell, deposit: deposit}
	d.Update(tip)
	return d
}

// Update recomputes interests and maturity against a newer tip.
func (d *Deposit) Update(tip model.Header) {
	d.interests = calc.Interest(d.cell, d.deposit.Header, tip)
	d.maturity = calc.Maturity(d.deposit.Header, tip)
}

func (d Deposit) Cell() model.Cell                       { return d.cell }
func (d Deposit) DepositHeader() model.TransactionHeader { return d.deposit }
func (d Deposit) Interests() int64                       { return d.interests }
func (d Deposit) Maturity() model.Epoch                  { return d.maturity }

// TransactionHeaders returns the deposit transaction header.
func (d Deposit) TransactionHeaders() []model.TransactionHeader {
	return []model.TransactionHeader{d.deposit}
}
