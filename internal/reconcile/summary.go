package reconcile

import (
	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// CureSummary recommends the lender credit needed to cure every tolerance
// violation found in a run.
type CureSummary struct {
	ZeroTolerance float64 `json:"zero_tolerance"`
	TenPercent    float64 `json:"ten_percent"`
	RequiredCure  float64 `json:"required_cure"`
	LenderCredits float64 `json:"lender_credits"`
	Shortfall     float64 `json:"shortfall"`
}

func cureSummary(res *Result, lenderCredits float64) CureSummary {
	c := CureSummary{
		ZeroTolerance: mathutil.Sum(res.ZeroA.TotalCure, res.ZeroB.TotalCure),
		TenPercent:    res.TenPercent.Overage,
		LenderCredits: lenderCredits,
	}
	c.RequiredCure = mathutil.Sum(c.ZeroTolerance, c.TenPercent)
	c.Shortfall = mathutil.Max(0, mathutil.Sub(c.RequiredCure, lenderCredits))
	return c
}

// DiffType classifies how a fee changed between the documents.
type DiffType string

// DiffType values.
const (
	DiffIncrease                DiffType = "increase"
	DiffDecrease                DiffType = "decrease"
	DiffMissingOnCD             DiffType = "missing_on_cd"
	DiffNewOnCD                 DiffType = "new_on_cd"
	DiffReclassifiedOffBorrower DiffType = "reclassified_off_borrower"
)

// DiffEntry describes one changed fee.
type DiffEntry struct {
	ID                 string           `json:"id"`
	Section            tolerance.Bucket `json:"section"`
	Label              string           `json:"label"`
	LEAmount           float64          `json:"le_amount"`
	CDAmount           float64          `json:"cd_amount"`
	Difference         float64          `json:"difference"`
	Type               DiffType         `json:"diff_type"`
	ReclassifiedTo     fees.Payer       `json:"reclassified_to,omitempty"`
	ReclassifiedAmount *float64         `json:"reclassified_amount,omitempty"`
}

// diffSummary lists the fees that changed. Unchanged fees are omitted.
func diffSummary(rows []tolerance.Row) []DiffEntry {
	out := []DiffEntry{}
	for _, row := range rows {
		f, eval := row.Envelope(), row.Result()
		entry := DiffEntry{
			ID:         f.ID,
			Section:    row.Section(),
			Label:      f.Label,
			LEAmount:   f.LE.Borrower,
			CDAmount:   f.CD.Borrower,
			Difference: eval.Delta,
		}

		switch r := tolerance.DetectReclassification(f); {
		case r != nil:
			entry.Type = DiffReclassifiedOffBorrower
			entry.Difference = -f.LE.Borrower
			entry.ReclassifiedTo = r.To
			entry.ReclassifiedAmount = &r.Amount
		case !f.OnLE && f.OnCD:
			entry.Type = DiffNewOnCD
		case f.OnLE && !f.OnCD:
			entry.Type = DiffMissingOnCD
			entry.Difference = -f.LE.Borrower
		case mathutil.IsZero(eval.Delta):
			continue
		case eval.Delta > 0:
			entry.Type = DiffIncrease
		default:
			entry.Type = DiffDecrease
		}
		out = append(out, entry)
	}
	return out
}
