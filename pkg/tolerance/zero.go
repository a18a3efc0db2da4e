package tolerance

import "github.com/iwvelando/trid-reconcile/pkg/mathutil"

// ZeroRow is an evaluated zero-tolerance fee.
type ZeroRow struct {
	ZeroFee
	Evaluation
	Bucket     Bucket  `json:"bucket"`
	CureAmount float64 `json:"cure_amount"`
}

// Envelope implements Row.
func (r ZeroRow) Envelope() Fee { return r.Fee }

// Result implements Row.
func (r ZeroRow) Result() Evaluation { return r.Evaluation }

// Section implements Row.
func (r ZeroRow) Section() Bucket { return r.Bucket }

// ZeroResult is the outcome of evaluating one zero-tolerance bucket.
type ZeroResult struct {
	Bucket     Bucket    `json:"bucket"`
	Rows       []ZeroRow `json:"rows"`
	LESubtotal float64   `json:"le_subtotal"`
	CDSubtotal float64   `json:"cd_subtotal"`
	Counts     Counts    `json:"counts"`
	TotalCure  float64   `json:"total_cure"`
}

// EvaluateZero scores each fee of a zero-tolerance bucket ("A" or "B").
//
// A row fails when its delta exceeds the zero threshold, and the excess is its
// cure amount. A section B fee the borrower was permitted to shop for is a
// placement anomaly and is never reported as a plain PASS. When lender
// credits cover the total cure, every failing row is annotated as cured but
// keeps its FAIL status.
func EvaluateZero(fs []ZeroFee, bucket Bucket, opts RuleOptions) ZeroResult {
	result := ZeroResult{Bucket: bucket, Rows: make([]ZeroRow, 0, len(fs))}
	envelopes := make([]Fee, 0, len(fs))
	cures := make([]float64, 0, len(fs))

	for _, f := range fs {
		row := ZeroRow{ZeroFee: f, Evaluation: newEvaluation(f.Fee), Bucket: bucket}

		if row.Delta > opts.ZeroThreshold {
			row.Status = StatusFail
			row.CureAmount = mathutil.Sub(row.Delta, opts.ZeroThreshold)
			row.flag(zeroLineOverageFlag(row.CureAmount, opts.ZeroThreshold))
		}
		if bucket == BucketB && f.PermittedToShop {
			row.flag(sectionPlacementFlag())
			if row.Status == StatusPass {
				row.Status = StatusReview
			}
		}
		flagReclassification(f.Fee, &row.Evaluation)

		result.Rows = append(result.Rows, row)
		envelopes = append(envelopes, f.Fee)
		cures = append(cures, row.CureAmount)
	}

	result.TotalCure = mathutil.Sum(cures...)
	if opts.LenderCredits > 0 && opts.LenderCredits >= result.TotalCure {
		for i := range result.Rows {
			if mathutil.IsPositive(result.Rows[i].CureAmount) {
				result.Rows[i].flag(curedByLenderFlag(result.Rows[i].CureAmount, opts.LenderCredits))
			}
		}
	}

	result.LESubtotal, result.CDSubtotal = subtotals(envelopes)
	for _, row := range result.Rows {
		result.Counts.add(row.Status)
	}
	return result
}
