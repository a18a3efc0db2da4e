// Package loans provides the loan arithmetic behind prepaid interest checks.
package loans

import (
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
	"github.com/shopspring/decimal"
)

// DailyInterest calculates the per-diem interest on a loan using a 365 day
// year. The rate is an annual percentage, e.g. 6.5 for 6.5%. The result is not
// rounded so it can be multiplied across a period without compounding error.
func DailyInterest(loanAmount, annualInterestRate float64) decimal.Decimal {
	return decimal.NewFromFloat(loanAmount).
		Mul(decimal.NewFromFloat(annualInterestRate)).
		Div(decimal.NewFromFloat(constants.PercentageMultiplier)).
		Div(decimal.NewFromInt(constants.DaysPerYear))
}

// PrepaidInterest calculates the interest collected at closing for the given
// number of days, rounded to currency.
func PrepaidInterest(loanAmount, annualInterestRate float64, days int) float64 {
	if days <= 0 || loanAmount <= 0 {
		return 0
	}
	total := DailyInterest(loanAmount, annualInterestRate).Mul(decimal.NewFromInt(int64(days)))
	return mathutil.Round(total.InexactFloat64())
}

// PerDiemDeviation compares a disclosed prepaid interest amount against the
// computed one and returns the expected amount and the relative deviation.
func PerDiemDeviation(disclosed, loanAmount, annualInterestRate float64, days int) (expected, deviation float64) {
	expected = PrepaidInterest(loanAmount, annualInterestRate, days)
	return expected, mathutil.RelativeDeviation(disclosed, expected)
}
