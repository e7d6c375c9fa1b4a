package aggregation

import "github.com/shopspring/decimal"

// rateScale is the number of decimal places reported for rates and percentages.
const rateScale = 2

var (
	secondsPerHour = decimal.NewFromInt(3600)
	hundred        = decimal.NewFromInt(100)
)

// RatePerHour returns defects per hour over a window of windowSeconds, rounded
// half-up to two places. A window of zero or negative length yields zero.
// Inputs are non-negative, so shopspring's half-away-from-zero rounding is half-up.
func RatePerHour(defects int64, windowSeconds int64) decimal.Decimal {
	if windowSeconds <= 0 {
		return decimal.Zero
	}
	// defects / (seconds / 3600) == defects * 3600 / seconds, which avoids an
	// inexact intermediate hour count.
	return decimal.NewFromInt(defects).
		Mul(secondsPerHour).
		DivRound(decimal.NewFromInt(windowSeconds), rateScale)
}

// RateAtLeast reports whether defects over windowSeconds reach perHour before
// any rounding. A window of zero or negative length has a rate of zero.
func RateAtLeast(defects, windowSeconds int64, perHour decimal.Decimal) bool {
	if windowSeconds <= 0 {
		return decimal.Zero.GreaterThanOrEqual(perHour)
	}
	// defects*3600/seconds >= perHour  <=>  defects*3600 >= perHour*seconds
	return decimal.NewFromInt(defects).
		Mul(secondsPerHour).
		GreaterThanOrEqual(perHour.Mul(decimal.NewFromInt(windowSeconds)))
}

// PerHundred returns part per hundred of whole, rounded half-up to two places,
// or zero when whole is zero.
func PerHundred(part, whole int64) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(part).
		Mul(hundred).
		DivRound(decimal.NewFromInt(whole), rateScale)
}
