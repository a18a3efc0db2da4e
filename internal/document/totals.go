package document

import "github.com/iwvelando/trid-reconcile/pkg/mathutil"

// RecomputeTotals derives D (A+B+C), I (E+F+G+H) and J (D+I) from the section
// totals. A derived total is only written when all of its parts are present.
func (r *Record) RecomputeTotals() {
	if r == nil || r.ClosingCostDetails == nil {
		return
	}
	loan, other := r.ClosingCostDetails.LoanCosts, r.ClosingCostDetails.OtherCosts
	if loan == nil || other == nil {
		return
	}

	if d, ok := sumTotals(loan.A, loan.B, loan.C); ok {
		loan.DTotal = &d
	}
	if i, ok := sumTotals(other.E, other.F, other.G, other.H); ok {
		other.ITotal = &i
	}
	if loan.DTotal != nil && other.ITotal != nil {
		j := mathutil.Sum(*loan.DTotal, *other.ITotal)
		other.JTotal = &j
	}
}

func sumTotals(sections ...*Section) (float64, bool) {
	vals := make([]float64, 0, len(sections))
	for _, sec := range sections {
		if sec == nil || sec.Total == nil {
			return 0, false
		}
		vals = append(vals, *sec.Total)
	}
	return mathutil.Sum(vals...), true
}
