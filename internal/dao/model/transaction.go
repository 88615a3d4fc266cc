package model

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// Transaction is an in-progress transaction. Inputs, outputs and dependencies
// only grow; cell and header dependencies are kept unique.
// It is not safe for concurrent use.
type Transaction struct {
	CellDeps    []CellDep
	HeaderDeps  []common.Hash
	Inputs      []CellInput
	Outputs     []CellOutput
	OutputsData [][]byte
	Witnesses   []WitnessArgs
}

// NewTransaction returns an empty transaction.
func NewTransaction() *Transaction {
	return &Transaction{}
}

func (t *Transaction) InputsLen() int      { return len(t.Inputs) }
func (t *Transaction) OutputsLen() int     { return len(t.Outputs) }
func (t *Transaction) OutputsDataLen() int { return len(t.OutputsData) }

// AddCellDeps appends dependencies not already present.
func (t *Transaction) AddCellDeps(deps ...CellDep) {
	for _, dep := range deps {
		if t.hasCellDep(dep) {
			continue
		}
		t.CellDeps = append(t.CellDeps, dep)
	}
}

func (t *Transaction) hasCellDep(dep CellDep) bool {
	for _, existing := range t.CellDeps {
		if existing == dep {
			return true
		}
	}
	return false
}

// AddHeaderDeps appends header hashes not already present.
func (t *Transaction) AddHeaderDeps(hashes ...common.Hash) {
	for _, hash := range hashes {
		if t.HeaderDepIndex(hash) >= 0 {
			continue
		}
		t.HeaderDeps = append(t.HeaderDeps, hash)
	}
}

// AddTransactionHeaders appends the block hash of every header as a header dependency.
func (t *Transaction) AddTransactionHeaders(headers ...TransactionHeader) {
	for _, h := range headers {
		t.AddHeaderDeps(h.Header.Hash)
	}
}

// HeaderDepIndex returns the position of hash among the header dependencies, or -1.
func (t *Transaction) HeaderDepIndex(hash common.Hash) int {
	for i, existing := range t.HeaderDeps {
		if existing == hash {
			return i
		}
	}
	return -1
}

// AddInput appends an input and returns the new number of inputs.
func (t *Transaction) AddInput(input CellInput) int {
	t.Inputs = append(t.Inputs, input)
	return len(t.Inputs)
}

// AddOutput appends an output with its data and returns the new number of outputs.
func (t *Transaction) AddOutput(output CellOutput, data []byte) int {
	t.Outputs = append(t.Outputs, output)
	t.OutputsData = append(t.OutputsData, data)
	return len(t.Outputs)
}

// WitnessArgsAt returns the witness at index. Missing witnesses are empty.
func (t *Transaction) WitnessArgsAt(index int) (WitnessArgs, error) {
	if index < 0 {
		return WitnessArgs{}, fmt.Errorf("witness index %d out of range", index)
	}
	if index >= len(t.Witnesses) {
		return WitnessArgs{}, nil
	}
	return t.Witnesses[index], nil
}

// SetWitnessArgsAt stores w at index, padding with empty witnesses as needed.
func (t *Transaction) SetWitnessArgsAt(index int, w WitnessArgs) error {
	if index < 0 {
		return fmt.Errorf("witness index %d out of range", index)
	}
	for len(t.Witnesses) <= index {
		t.Witnesses = append(t.Witnesses, WitnessArgs{})
	}
	t.Witnesses[index] = w
	return nil
}
