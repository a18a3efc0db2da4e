// Package tolerance evaluates Loan Estimate to Closing Disclosure fee changes
// against the three TRID tolerance regimes and collects the resulting
// exceptions.
//
// The evaluators are pure functions. Each returns new rows layering delta,
// status and flags onto the fees it was given and never mutates its input.
package tolerance

import (
	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
)

// Status is the outcome of evaluating a row or a group.
type Status string

// Status values. OVER is only used for the ten-percent aggregate test.
const (
	StatusPass   Status = "PASS"
	StatusFail   Status = "FAIL"
	StatusReview Status = "REVIEW"
	StatusOver   Status = "OVER"
)

// Bucket tags the disclosure section group a row is evaluated in.
type Bucket string

// Bucket values.
const (
	BucketA  Bucket = "A"
	BucketB  Bucket = "B"
	BucketCE Bucket = "C+E"
	BucketF  Bucket = "F"
	BucketG  Bucket = "G"
	BucketH  Bucket = "H"
)

// IDPrefix returns the prefix used when numbering rows of the bucket.
func (b Bucket) IDPrefix() string {
	if b == BucketCE {
		return "CE"
	}
	return string(b)
}

// IsUnlimited reports whether the bucket carries no regulatory cap.
func (b Bucket) IsUnlimited() bool {
	return b == BucketF || b == BucketG || b == BucketH
}

// ProviderType distinguishes shoppable services from recording fees in the
// ten-percent group.
type ProviderType string

// ProviderType values.
const (
	ProviderShoppable ProviderType = "C"
	ProviderRecording ProviderType = "E"
)

// Fee is the envelope shared by every tolerance variant.
type Fee struct {
	ID           string     `json:"id"`
	Label        string     `json:"label"`
	LE           fees.Split `json:"le"`
	CD           fees.Split `json:"cd"`
	ChangeReason string     `json:"change_reason,omitempty"`
	OnLE         bool       `json:"on_le"`
	OnCD         bool       `json:"on_cd"`
}

// ZeroFee is a fee from a zero-tolerance section.
type ZeroFee struct {
	Fee
	PermittedToShop bool `json:"permitted_to_shop"`
}

// TenPercentFee is a fee that may roll into the ten-percent aggregate group.
type TenPercentFee struct {
	Fee
	Provider        string       `json:"provider,omitempty"`
	ProviderType    ProviderType `json:"provider_type"`
	MatchConfidence float64      `json:"match_confidence"`
	OnWhitelist     bool         `json:"on_whitelist"`
	IsRecording     bool         `json:"is_recording"`
}

// UnlimitedFee is a fee without a tolerance cap. The optional fields carry the
// context needed by the sanity heuristics of its bucket.
type UnlimitedFee struct {
	Fee
	Bucket         Bucket   `json:"bucket"`
	PerDiemDays    *int     `json:"per_diem_days,omitempty"`
	EscrowMonths   *int     `json:"escrow_months,omitempty"`
	IsOptional     *bool    `json:"is_optional,omitempty"`
	LenderRequired *bool    `json:"lender_required,omitempty"`
	LoanAmount     *float64 `json:"loan_amount,omitempty"`
	InterestRate   *float64 `json:"interest_rate,omitempty"`
}

// Evaluation holds the fields every evaluator derives for a row.
type Evaluation struct {
	Delta  float64 `json:"delta"`
	Status Status  `json:"status"`
	Flags  []Flag  `json:"flags"`
}

// Row is the common view over evaluated rows of every variant.
type Row interface {
	Envelope() Fee
	Result() Evaluation
	Section() Bucket
}

// Counts tallies row statuses.
type Counts struct {
	Pass   int `json:"pass"`
	Fail   int `json:"fail"`
	Review int `json:"review"`
}

func (c *Counts) add(s Status) {
	switch s {
	case StatusPass:
		c.Pass++
	case StatusFail:
		c.Fail++
	case StatusReview:
		c.Review++
	}
}

// Delta returns the borrower-paid change of a fee, rounded to currency.
func Delta(f Fee) float64 {
	return mathutil.Sub(f.CD.Borrower, f.LE.Borrower)
}

func newEvaluation(f Fee) Evaluation {
	return Evaluation{Delta: Delta(f), Status: StatusPass, Flags: []Flag{}}
}

func (e *Evaluation) flag(f Flag) {
	e.Flags = append(e.Flags, f)
}

func subtotals(envelopes []Fee) (le, cd float64) {
	leVals := make([]float64, 0, len(envelopes))
	cdVals := make([]float64, 0, len(envelopes))
	for _, f := range envelopes {
		leVals = append(leVals, f.LE.Borrower)
		cdVals = append(cdVals, f.CD.Borrower)
	}
	return mathutil.Sum(leVals...), mathutil.Sum(cdVals...)
}
