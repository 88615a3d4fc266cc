package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// ShannonsPerByte converts occupied bytes into capacity units.
const ShannonsPerByte uint64 = 100_000_000

// capacityFieldSize is the size of the capacity field itself.
const capacityFieldSize = 8

// DepType describes how a cell dependency is loaded.
type DepType string

var (
	DepTypeCode     DepType = "code"
	DepTypeDepGroup DepType = "dep_group"
)

// OutPoint references an output of a committed transaction.
type OutPoint struct {
	TxHash common.Hash
	Index  uint32
}

func (o OutPoint) String() string {
	return fmt.Sprintf("%s#%d", o.TxHash.Hex(), o.Index)
}

// CellOutput describes the capacity and scripts of a cell.
type CellOutput struct {
	Capacity uint64
	Lock     Script
	Type     *Script
}

// OccupiedSize is the byte size of the output excluding its data.
func (o CellOutput) OccupiedSize() uint64 {
	size := capacityFieldSize + o.Lock.OccupiedSize()
	if o.Type != nil {
		size += o.Type.OccupiedSize()
	}
	return size
}

// HasType reports whether the output carries exactly the given type script.
func (o CellOutput) HasType(script Script) bool {
	return o.Type != nil && o.Type.Equal(script)
}

// Cell is a live ledger cell together with its output data.
type Cell struct {
	OutPoint    OutPoint
	Output      CellOutput
	OutputData  []byte
	BlockNumber uint64
}

// OccupiedCapacity is the capacity locked by the cell's bytes, data included.
func (c Cell) OccupiedCapacity() uint64 {
	return (c.Output.OccupiedSize() + uint64(len(c.OutputData))) * ShannonsPerByte
}

// CellDep references a cell whose code or dep group a transaction needs.
type CellDep struct {
	OutPoint OutPoint
	DepType  DepType
}

// CellInput spends a previous output, optionally gated by a since value.
type CellInput struct {
	PreviousOutput OutPoint
	Since          uint64
}

// WitnessArgs is the structured witness of an input. A nil field is absent.
type WitnessArgs struct {
	Lock       []byte
	InputType  []byte
	OutputType []byte
}

// IsEmpty reports whether no field is present.
func (w WitnessArgs) IsEmpty() bool {
	return w.Lock == nil && w.InputType == nil && w.OutputType == nil
}

// CellQuery selects cells by lock script and an optional type script filter.
type CellQuery struct {
	Lock Script
	Type *Script
}

// Order sets the direction of a cell search.
type Order string

var (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// CellPage is one page of a cell search. Cursor resumes the search after it.
type CellPage struct {
	Cells  []Cell
	Cursor string
}

// ScriptInfo is a registry entry describing a deployed script.
type ScriptInfo struct {
	CodeHash common.Hash
	HashType HashType
	CellDeps []CellDep
}
