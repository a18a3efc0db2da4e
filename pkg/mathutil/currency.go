// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/shopspring/decimal"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero and the value is taken at its shortest decimal
// representation, so 1.005 becomes 1.01 rather than 1.00.
func Round(val float64) float64 {
	return decimal.NewFromFloat(val).Round(constants.DecimalPlaces).InexactFloat64()
}

// Sum adds values exactly and rounds the total to currency.
func Sum(vals ...float64) float64 {
	total := decimal.Zero
	for _, v := range vals {
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(constants.DecimalPlaces).InexactFloat64()
}

// Sub returns a - b rounded to currency.
func Sub(a, b float64) float64 {
	return decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(constants.DecimalPlaces).InexactFloat64()
}

// Mul returns a * b rounded to currency.
func Mul(a, b float64) float64 {
	return decimal.NewFromFloat(a).Mul(decimal.NewFromFloat(b)).Round(constants.DecimalPlaces).InexactFloat64()
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) < constants.CurrencyTolerance
}

// IsPositive checks if a value is at least one cent
func IsPositive(val float64) bool {
	return val >= constants.CurrencyTolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// RelativeDeviation returns |actual - expected| / expected. A zero expectation
// yields zero so callers never divide by it.
func RelativeDeviation(actual, expected float64) float64 {
	if expected == 0 {
		return 0
	}
	return math.Abs(actual-expected) / math.Abs(expected)
}

// Value dereferences an optional amount, treating nil as zero.
func Value(val *float64) float64 {
	if val == nil {
		return 0
	}
	return *val
}
