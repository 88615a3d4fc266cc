package daocell

import (
	"slices"

	"github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"
)

// Maturer is implemented by both DAO cell kinds.
type Maturer interface {
	Maturity() model.Epoch
}

// CompareMaturity orders a before b when a becomes claimable earlier.
func CompareMaturity(a, b Maturer) int {
	return model.CompareEpochs(a.Maturity(), b.Maturity())
}

// SortByMaturity sorts cells by ascending maturity, keeping the input order of ties.
func SortByMaturity[T Maturer](cells []T) {
	slices.SortStableFunc(cells, func(a, b T) int {
		return CompareMaturity(a, b)
	})
}

// IsMature reports whether c may be claimed at epoch.
func IsMature(c Maturer, epoch model.Epoch) bool {
	return model.CompareEpochs(c.Maturity(), epoch) <= 0
}
