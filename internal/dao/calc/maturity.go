package calc

import "github.com/goodnatureofminers/nervosdao-backend/internal/dao/model"

// LockPeriodEpochs is the DAO lock period quantum.
const LockPeriodEpochs uint64 = 180

// Maturity returns the earliest epoch at which a withdrawal of a deposit made
// in deposit and requested in withdraw can be claimed.
//
// The lock spans the smallest multiple of LockPeriodEpochs covering the time
// between both headers. The multiple is rounded up unless the epoch distance is
// an exact multiple and the deposit's position in its epoch lies strictly after
// the request's, so equal fractions round up.
// The result keeps the deposit's Index and Length.
func Maturity(deposit, withdraw model.Header) model.Epoch {
	from, to := deposit.Epoch, withdraw.Epoch

	var diff uint64
	if to.Number > from.Number {
		diff = to.Number - from.Number
	}
	periods := diff / LockPeriodEpochs

	if diff%LockPeriodEpochs != 0 || !fractionAfter(from, to) {
		periods++
	}

	return model.Epoch{
		Number: from.Number + periods*LockPeriodEpochs,
		Index:  from.Index,
		Length: from.Length,
	}
}

// fractionAfter reports whether a's position inside its epoch is strictly
// after b's.
func fractionAfter(a, b model.Epoch) bool {
	return model.CompareEpochs(
		model.Epoch{Index: a.Index, Length: a.Length},
		model.Epoch{Index: b.Index, Length: b.Length},
	) > 0
}
