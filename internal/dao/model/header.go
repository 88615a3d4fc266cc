package model

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// DaoFieldSize is the byte length of the header dao field.
const DaoFieldSize = 32

// DaoField holds the ledger-wide DAO accumulators recorded in every header.
type DaoField struct {
	C  uint64
	AR uint64
	S  uint64
	U  uint64
}

// ParseDaoField decodes the 32 byte header field laid out as C|AR|S|U little-endian words.
func ParseDaoField(raw []byte) (DaoField, error) {
	if len(raw) != DaoFieldSize {
		return DaoField{}, fmt.Errorf("dao field length %d: %w", len(raw), ErrInvalidLength)
	}
	return DaoField{
		C:  binary.LittleEndian.Uint64(raw[0:8]),
		AR: binary.LittleEndian.Uint64(raw[8:16]),
		S:  binary.LittleEndian.Uint64(raw[16:24]),
		U:  binary.LittleEndian.Uint64(raw[24:32]),
	}, nil
}

// Bytes encodes the field back into its header representation.
func (d DaoField) Bytes() []byte {
	raw := make([]byte, DaoFieldSize)
	binary.LittleEndian.PutUint64(raw[0:8], d.C)
	binary.LittleEndian.PutUint64(raw[8:16], d.AR)
	binary.LittleEndian.PutUint64(raw[16:24], d.S)
	binary.LittleEndian.PutUint64(raw[24:32], d.U)
	return raw
}

// Header is the subset of a block header the DAO needs.
type Header struct {
	Hash      common.Hash
	Number    uint64
	Epoch     Epoch
	Dao       DaoField
	Timestamp time.Time
}

// TransactionHeader pairs a committed transaction with the header of its block.
type TransactionHeader struct {
	TxHash common.Hash
	Header Header
}

// TransactionBlock records which block committed a transaction.
type TransactionBlock struct {
	TxHash    common.Hash
	BlockHash common.Hash
}

// IsZero reports whether the header was never resolved.
func (h TransactionHeader) IsZero() bool {
	return h.Header.Hash == (common.Hash{})
}
