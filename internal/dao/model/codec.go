package model

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrInvalidLength is returned when a fixed-width field has the wrong size.
var ErrInvalidLength = errors.New("invalid length")

// Uint64Size is the width of the little-endian words used in DAO data and witnesses.
const Uint64Size = 8

const (
	sinceAbsoluteEpochFlag uint64 = 0x20 << 56
	sinceValueMask         uint64 = 1<<56 - 1
)

// DepositOutputData returns the eight zero bytes that mark a deposit cell.
func DepositOutputData() []byte {
	return make([]byte, Uint64Size)
}

// EncodeUint64LE encodes v as an 8 byte little-endian word.
func EncodeUint64LE(v uint64) []byte {
	raw := make([]byte, Uint64Size)
	binary.LittleEndian.PutUint64(raw, v)
	return raw
}

// DecodeUint64LE decodes an 8 byte little-endian word.
func DecodeUint64LE(raw []byte) (uint64, error) {
	if len(raw) != Uint64Size {
		return 0, fmt.Errorf("uint64 length %d: %w", len(raw), ErrInvalidLength)
	}
	return binary.LittleEndian.Uint64(raw), nil
}

// AbsoluteEpochSince encodes an absolute, epoch denominated since value.
func AbsoluteEpochSince(e Epoch) uint64 {
	return sinceAbsoluteEpochFlag | e.Packed()&sinceValueMask
}

// SinceEpoch extracts the epoch from an absolute epoch since value.
// ok is false when since uses another metric or is relative.
func SinceEpoch(since uint64) (Epoch, bool) {
	if since&^sinceValueMask != sinceAbsoluteEpochFlag {
		return Epoch{}, false
	}
	return ParseEpoch(since & sinceValueMask), true
}
