package reconcile

import (
	"github.com/iwvelando/trid-reconcile/internal/document"
	"github.com/iwvelando/trid-reconcile/pkg/adapters"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// Request is a single reconciliation job as submitted through the API or the
// CLI. Either both documents or the matched fee list must be present; when
// both are, the matched fees win.
type Request struct {
	LoanEstimate      *document.Record      `json:"loan_estimate,omitempty"`
	ClosingDisclosure *document.Record      `json:"closing_disclosure,omitempty"`
	MatchedFees       []adapters.MatchedFee `json:"matched_fees,omitempty"`
	Loan              adapters.LoanContext  `json:"loan"`
	Options           *PartialOptions       `json:"options,omitempty"`
	Overrides         tolerance.Overrides   `json:"overrides,omitempty"`
}

// PartialOptions holds the rule options a request sets explicitly. Nil
// fields keep the caller's defaults.
type PartialOptions struct {
	ZeroThreshold         *float64 `json:"zeroThreshold,omitempty"`
	ReviewConfidenceFloor *float64 `json:"reviewConfidenceFloor,omitempty"`
	ReviewConfidenceCeil  *float64 `json:"reviewConfidenceCeil,omitempty"`
	LenderCredits         *float64 `json:"lenderCredits,omitempty"`
}

// Apply returns base with every field set in p replaced. A nil p returns
// base unchanged.
func (p *PartialOptions) Apply(base tolerance.RuleOptions) tolerance.RuleOptions {
	if p == nil {
		return base
	}
	if p.ZeroThreshold != nil {
		base.ZeroThreshold = *p.ZeroThreshold
	}
	if p.ReviewConfidenceFloor != nil {
		base.ReviewConfidenceFloor = *p.ReviewConfidenceFloor
	}
	if p.ReviewConfidenceCeil != nil {
		base.ReviewConfidenceCeil = *p.ReviewConfidenceCeil
	}
	if p.LenderCredits != nil {
		base.LenderCredits = *p.LenderCredits
	}
	return base
}

// Run dispatches a request to the matching input path. Options absent from
// the request fall back to defaults. The credits disclosed on the CD apply
// only when neither the request nor defaults name any.
func (r *Reconciler) Run(req Request, defaults tolerance.RuleOptions) (*Result, error) {
	opts := req.Options.Apply(defaults)

	switch {
	case len(req.MatchedFees) > 0:
		loan := req.Loan
		if loan.LoanAmount == nil || loan.InterestRate == nil {
			fromDocs := loanContext(req.ClosingDisclosure, req.LoanEstimate)
			if loan.LoanAmount == nil {
				loan.LoanAmount = fromDocs.LoanAmount
			}
			if loan.InterestRate == nil {
				loan.InterestRate = fromDocs.InterestRate
			}
		}
		return r.FromMatchedFees(req.MatchedFees, loan, opts, req.Overrides)
	case req.LoanEstimate != nil || req.ClosingDisclosure != nil:
		disclosed := opts.LenderCredits == 0 && (req.Options == nil || req.Options.LenderCredits == nil)
		return r.fromDocuments(req.LoanEstimate, req.ClosingDisclosure, opts, req.Overrides, disclosed)
	default:
		return nil, ErrNoInput
	}
}
