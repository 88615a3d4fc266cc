package service

import "errors"

var (
	// ErrStructuralMismatch is returned when a transaction's inputs, outputs
	// and outputs data are not aligned.
	ErrStructuralMismatch = errors.New("transaction inputs, outputs and outputs data lengths differ")
	// ErrLockArgSizeMismatch is returned when a withdrawal lock's args differ
	// in size from the deposit lock's args.
	ErrLockArgSizeMismatch = errors.New("lock args size mismatch")
	// ErrMissingHeader is returned when a DAO cell lacks a transaction header.
	ErrMissingHeader = errors.New("missing transaction header")
	// ErrWitnessConflict is returned when the witness input type of a
	// withdrawn input is already set.
	ErrWitnessConflict = errors.New("witness input type already set")
	// ErrDepositHeightMismatch is returned when a withdrawal request's data
	// does not match the block of the deposit it spends.
	ErrDepositHeightMismatch = errors.New("deposit height mismatch")
)
