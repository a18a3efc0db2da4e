// Package adapters turns merged document rows and pre-matched fee records into
// the fee variants the tolerance evaluators consume.
package adapters

import (
	"fmt"

	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// LoanContext carries the loan terms the prepaid interest heuristic needs.
type LoanContext struct {
	LoanAmount   *float64 `json:"loan_amount,omitempty"`
	InterestRate *float64 `json:"interest_rate,omitempty"`
}

// Buckets groups adapted fees by the evaluator that scores them.
type Buckets struct {
	ZeroA      []tolerance.ZeroFee
	ZeroB      []tolerance.ZeroFee
	TenPercent []tolerance.TenPercentFee
	Unlimited  []tolerance.UnlimitedFee
}

// Len returns the number of adapted fees.
func (b Buckets) Len() int {
	return len(b.ZeroA) + len(b.ZeroB) + len(b.TenPercent) + len(b.Unlimited)
}

// idSequence hands out row ids of the form "<bucket>-<n>", numbered from one
// per bucket in the order fees are adapted.
type idSequence map[tolerance.Bucket]int

func (s idSequence) next(b tolerance.Bucket) string {
	s[b]++
	return fmt.Sprintf("%s-%d", b.IDPrefix(), s[b])
}
