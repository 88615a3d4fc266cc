// Package calc computes NervosDAO interest and withdrawal maturity from block headers.
package calc

import (
	"math"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
	"github.com/holiman/uint256"
)

var maxInt64 = uint256.NewInt(math.MaxInt64)

// Interest returns the profit accrued by cell between the deposit and withdraw headers.
//
// Only the free part of the capacity earns yield:
//
//	free * withdraw.AR / deposit.AR - free
//
// The product is formed in 256 bits and the division truncates, matching the
// ledger's DAO script. Results beyond the int64 range saturate.
func Interest(cell model.Cell, deposit, withdraw model.Header) int64 {
	occupied := cell.OccupiedCapacity()
	if cell.Output.Capacity <= occupied {
		return 0
	}

	free := uint256.NewInt(cell.Output.Capacity - occupied)
	grown := new(uint256.Int).Mul(free, uint256.NewInt(withdraw.Dao.AR))
	grown.Div(grown, uint256.NewInt(deposit.Dao.AR))

	if !grown.Lt(free) {
		return saturate(new(uint256.Int).Sub(grown, free))
	}
	return -saturate(new(uint256.Int).Sub(free, grown))
}

// MaximumWithdraw is the capacity a withdrawal of cell may claim: its own
// capacity plus Interest.
func MaximumWithdraw(cell model.Cell, deposit, withdraw model.Header) uint64 {
	interest := Interest(cell, deposit, withdraw)
	if interest < 0 {
		return cell.Output.Capacity - uint64(-interest)
	}
	if uint64(interest) > math.MaxUint64-cell.Output.Capacity {
		return math.MaxUint64
	}
	return cell.Output.Capacity + uint64(interest)
}

func saturate(v *uint256.Int) int64 {
	if v.Gt(maxInt64) {
		return math.MaxInt64
	}
	return int64(v.Uint64())
}
