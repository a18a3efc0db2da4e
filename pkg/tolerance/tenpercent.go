package tolerance

import (
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
)

// TenPercentRow is an evaluated fee of the ten-percent group sections.
type TenPercentRow struct {
	TenPercentFee
	Evaluation
	EffectiveOnWhitelist bool `json:"effective_on_whitelist"`
	InTenGroup           bool `json:"in_ten_group"`
}

// Envelope implements Row.
func (r TenPercentRow) Envelope() Fee { return r.Fee }

// Result implements Row.
func (r TenPercentRow) Result() Evaluation { return r.Evaluation }

// Section implements Row.
func (r TenPercentRow) Section() Bucket { return BucketCE }

// TenPercentResult is the outcome of the per-row checks and the aggregate cap
// test.
type TenPercentResult struct {
	Rows       []TenPercentRow `json:"rows"`
	LEBase     float64         `json:"le_base"`
	CDTotal    float64         `json:"cd_total"`
	AllowedMax float64         `json:"allowed_max"`
	Overage    float64         `json:"overage"`
	Status     Status          `json:"status"`
	LESubtotal float64         `json:"le_subtotal"`
	CDSubtotal float64         `json:"cd_subtotal"`
	Counts     Counts          `json:"counts"`
}

// EvaluateTenPercent scores the shoppable and recording fees and runs the
// aggregate test: the borrower-paid CD total of the in-group rows may not
// exceed 110% of their LE base.
//
// Rows in the review confidence band stay in the group. Rows below the
// confidence floor are excluded from it entirely.
func EvaluateTenPercent(fs []TenPercentFee, overrides Overrides, opts RuleOptions) TenPercentResult {
	result := TenPercentResult{Rows: make([]TenPercentRow, 0, len(fs))}
	envelopes := make([]Fee, 0, len(fs))
	var leBase, cdTotal []float64

	for _, f := range fs {
		row := TenPercentRow{TenPercentFee: f, Evaluation: newEvaluation(f.Fee)}

		isRecording := f.ProviderType == ProviderRecording || f.IsRecording
		row.EffectiveOnWhitelist = f.OnWhitelist
		if forced, ok := overrides.lookup(f.ID); ok {
			row.EffectiveOnWhitelist = forced
		}
		isLowConfidence := f.MatchConfidence < opts.ReviewConfidenceFloor
		needsReview := !isLowConfidence && f.MatchConfidence < opts.ReviewConfidenceCeil
		offList := !row.EffectiveOnWhitelist && !isRecording

		switch {
		case isLowConfidence:
			row.flag(lowConfidenceFlag(f.MatchConfidence, true))
		case needsReview:
			row.flag(lowConfidenceFlag(f.MatchConfidence, false))
		case offList:
			row.flag(providerOffListFlag(f.Provider))
		}
		if isLowConfidence || needsReview || offList {
			row.Status = StatusReview
		}
		flagReclassification(f.Fee, &row.Evaluation)

		row.InTenGroup = (row.EffectiveOnWhitelist || isRecording) && !isLowConfidence
		if row.InTenGroup {
			leBase = append(leBase, f.LE.Borrower)
			cdTotal = append(cdTotal, f.CD.Borrower)
		}

		result.Rows = append(result.Rows, row)
		envelopes = append(envelopes, f.Fee)
	}

	result.LEBase = mathutil.Sum(leBase...)
	result.CDTotal = mathutil.Sum(cdTotal...)
	result.AllowedMax = mathutil.Mul(result.LEBase, constants.TenPercentCapMultiplier)
	result.Overage = mathutil.Max(0, mathutil.Sub(result.CDTotal, result.AllowedMax))
	result.Status = StatusPass
	if result.Overage > 0 {
		result.Status = StatusOver
		if opts.LenderCredits >= result.Overage {
			for i := range result.Rows {
				row := &result.Rows[i]
				if row.InTenGroup && mathutil.IsPositive(row.Delta) {
					row.flag(curedByLenderFlag(row.Delta, opts.LenderCredits))
				}
			}
		}
	}

	result.LESubtotal, result.CDSubtotal = subtotals(envelopes)
	for _, row := range result.Rows {
		result.Counts.add(row.Status)
	}
	return result
}
