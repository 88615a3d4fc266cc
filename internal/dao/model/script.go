package model

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

// HashType tells the ledger how a script's CodeHash locates its code.
type HashType string

var (
	HashTypeType  HashType = "type"
	HashTypeData  HashType = "data"
	HashTypeData1 HashType = "data1"
	HashTypeData2 HashType = "data2"
)

// ParseHashType validates a hash type name.
func ParseHashType(raw string) (HashType, error) {
	switch ht := HashType(raw); ht {
	case HashTypeType, HashTypeData, HashTypeData1, HashTypeData2:
		return ht, nil
	default:
		return "", fmt.Errorf("unknown hash type %q", raw)
	}
}

// Script is a lock or type script attached to a cell.
type Script struct {
	CodeHash common.Hash
	HashType HashType
	Args     []byte
}

// Equal reports whether both scripts reference the same code with identical args.
func (s Script) Equal(other Script) bool {
	return s.CodeHash == other.CodeHash &&
		s.HashType == other.HashType &&
		bytes.Equal(s.Args, other.Args)
}

// OccupiedSize is the number of bytes the script takes inside a cell:
// code hash, hash type byte and args.
func (s Script) OccupiedSize() uint64 {
	return common.HashLength + 1 + uint64(len(s.Args))
}
