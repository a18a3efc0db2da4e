package tolerance

import (
	"github.com/iwvelando/trid-reconcile/pkg/constants"
	"github.com/iwvelando/trid-reconcile/pkg/loans"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
)

// UnlimitedRow is an evaluated fee without a tolerance cap.
type UnlimitedRow struct {
	UnlimitedFee
	Evaluation
	ExpectedInterest *float64 `json:"expected_interest,omitempty"`
}

// Envelope implements Row.
func (r UnlimitedRow) Envelope() Fee { return r.Fee }

// Result implements Row.
func (r UnlimitedRow) Result() Evaluation { return r.Evaluation }

// Section implements Row.
func (r UnlimitedRow) Section() Bucket { return r.Bucket }

// UnlimitedResult is the outcome of evaluating the unlimited sections.
type UnlimitedResult struct {
	Rows       []UnlimitedRow `json:"rows"`
	LESubtotal float64        `json:"le_subtotal"`
	CDSubtotal float64        `json:"cd_subtotal"`
	Counts     Counts         `json:"counts"`
}

// EvaluateUnlimited applies the advisory heuristics of each unlimited bucket.
// Rows are REVIEW when a heuristic fires and PASS otherwise; there is no cap
// to fail against. PAYER_RECLASSIFIED is added after the status is set and
// only annotates the row, as in the zero and ten percent evaluators, so a row
// carrying nothing else stays PASS.
func EvaluateUnlimited(fs []UnlimitedFee) UnlimitedResult {
	result := UnlimitedResult{Rows: make([]UnlimitedRow, 0, len(fs))}
	envelopes := make([]Fee, 0, len(fs))

	for _, f := range fs {
		row := UnlimitedRow{UnlimitedFee: f, Evaluation: newEvaluation(f.Fee)}

		switch f.Bucket {
		case BucketF:
			checkPrepaidInterest(&row)
		case BucketG:
			if f.EscrowMonths != nil && *f.EscrowMonths > constants.MaxEscrowCushionMonths {
				row.flag(escrowCushionFlag(*f.EscrowMonths))
			}
		case BucketH:
			if f.LenderRequired != nil && *f.LenderRequired && f.IsOptional != nil && !*f.IsOptional {
				row.flag(optionalityMismatchFlag())
			}
		}
		if len(row.Flags) > 0 {
			row.Status = StatusReview
		}
		flagReclassification(f.Fee, &row.Evaluation)

		result.Rows = append(result.Rows, row)
		envelopes = append(envelopes, f.Fee)
	}

	result.LESubtotal, result.CDSubtotal = subtotals(envelopes)
	for _, row := range result.Rows {
		result.Counts.add(row.Status)
	}
	return result
}

func checkPrepaidInterest(row *UnlimitedRow) {
	if row.PerDiemDays == nil {
		return
	}
	days := *row.PerDiemDays
	if days > constants.MaxPerDiemDays {
		row.flag(perDiemOutlierFlag(days))
	}
	if row.LoanAmount == nil || row.InterestRate == nil || !mathutil.IsPositive(row.CD.Borrower) {
		return
	}
	expected, deviation := loans.PerDiemDeviation(row.CD.Borrower, *row.LoanAmount, *row.InterestRate, days)
	if expected <= 0 {
		return
	}
	row.ExpectedInterest = &expected
	if deviation > constants.PerDiemDeviationRatio {
		row.flag(perDiemDeviationFlag(row.CD.Borrower, expected))
	}
}
