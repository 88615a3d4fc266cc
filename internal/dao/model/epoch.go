package model

import (
	"fmt"
	"math/bits"
)

const (
	epochNumberBits = 24
	epochIndexBits  = 16
	epochLengthBits = 16

	epochNumberMask = 1<<epochNumberBits - 1
	epochIndexMask  = 1<<epochIndexBits - 1
	epochLengthMask = 1<<epochLengthBits - 1
)

// Epoch is a ledger epoch with a fractional position Index/Length inside it.
type Epoch struct {
	Number uint64
	Index  uint64
	Length uint64
}

// ParseEpoch unpacks the 64-bit epoch representation used in block headers.
func ParseEpoch(packed uint64) Epoch {
	return Epoch{
		Number: packed & epochNumberMask,
		Index:  (packed >> epochNumberBits) & epochIndexMask,
		Length: (packed >> (epochNumberBits + epochIndexBits)) & epochLengthMask,
	}
}

// Packed returns the 56-bit header representation of the epoch.
// Fields wider than their slot are truncated.
func (e Epoch) Packed() uint64 {
	return e.Number&epochNumberMask |
		(e.Index&epochIndexMask)<<epochNumberBits |
		(e.Length&epochLengthMask)<<(epochNumberBits+epochIndexBits)
}

// Compare orders epochs by number, then by Index/Length compared as rationals.
// It returns -1, 0 or +1.
func (e Epoch) Compare(other Epoch) int {
	return CompareEpochs(e, other)
}

// CompareEpochs orders a and b. Fractions are compared by 128-bit cross
// multiplication; a zero Length is accepted and compares as the product it produces.
func CompareEpochs(a, b Epoch) int {
	switch {
	case a.Number < b.Number:
		return -1
	case a.Number > b.Number:
		return 1
	}

	lhsHi, lhsLo := bits.Mul64(a.Index, b.Length)
	rhsHi, rhsLo := bits.Mul64(b.Index, a.Length)
	switch {
	case lhsHi < rhsHi, lhsHi == rhsHi && lhsLo < rhsLo:
		return -1
	case lhsHi > rhsHi, lhsHi == rhsHi && lhsLo > rhsLo:
		return 1
	default:
		return 0
	}
}

func (e Epoch) String() string {
	return fmt.Sprintf("%d+%d/%d", e.Number, e.Index, e.Length)
}
