// Package reconcile drives fee reconciliation between a Loan Estimate and a
// Closing Disclosure: it adapts the input into tolerance buckets, runs the
// three evaluators and the exception collector, and derives the summary
// figures.
package reconcile

import (
	"errors"
	"fmt"
	"sort"

	"github.com/iwvelando/trid-reconcile/internal/document"
	"github.com/iwvelando/trid-reconcile/pkg/adapters"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
	"go.uber.org/zap"
)

var (
	// ErrMissingDocument is returned when only one disclosure is supplied.
	ErrMissingDocument = errors.New("both a Loan Estimate and a Closing Disclosure are required")

	// ErrNoInput is returned when a request carries neither documents nor matched fees.
	ErrNoInput = errors.New("no documents or matched fees to reconcile")
)

// Result is the full output of one reconciliation run.
type Result struct {
	Options    tolerance.RuleOptions      `json:"options"`
	ZeroA      tolerance.ZeroResult       `json:"zero_a"`
	ZeroB      tolerance.ZeroResult       `json:"zero_b"`
	TenPercent tolerance.TenPercentResult `json:"ten_percent"`
	Unlimited  tolerance.UnlimitedResult  `json:"unlimited"`
	Exceptions []tolerance.Exception      `json:"exceptions"`
	TotalDelta float64                    `json:"total_delta"`
	Cure       CureSummary                `json:"cure"`
	Diff       []DiffEntry                `json:"diff"`
	Warnings   []string                   `json:"warnings,omitempty"`
}

// Rows returns every evaluated row in evaluator order.
func (r *Result) Rows() []tolerance.Row {
	rows := make([]tolerance.Row, 0, len(r.ZeroA.Rows)+len(r.ZeroB.Rows)+len(r.TenPercent.Rows)+len(r.Unlimited.Rows))
	for _, row := range r.ZeroA.Rows {
		rows = append(rows, row)
	}
	for _, row := range r.ZeroB.Rows {
		rows = append(rows, row)
	}
	for _, row := range r.TenPercent.Rows {
		rows = append(rows, row)
	}
	for _, row := range r.Unlimited.Rows {
		rows = append(rows, row)
	}
	return rows
}

// Reconciler runs reconciliations. It holds no state between runs and is
// safe for concurrent use.
type Reconciler struct {
	logger *zap.Logger
}

// New creates a Reconciler.
func New(logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{logger: logger}
}

// FromDocuments reconciles two structured disclosures by merging their
// sections on normalized labels. The records may be passed in either order.
// When opts carries no lender credits, the credits disclosed on the CD are
// used.
func (r *Reconciler) FromDocuments(le, cd *document.Record, opts tolerance.RuleOptions, overrides tolerance.Overrides) (*Result, error) {
	return r.fromDocuments(le, cd, opts, overrides, opts.LenderCredits == 0)
}

func (r *Reconciler) fromDocuments(le, cd *document.Record, opts tolerance.RuleOptions, overrides tolerance.Overrides, disclosedCredits bool) (*Result, error) {
	if le == nil || cd == nil {
		return nil, ErrMissingDocument
	}
	le, cd = document.Pair(le, cd)

	if disclosedCredits {
		opts.LenderCredits = cd.LenderCredits()
	}

	sections := adapters.Sections{}
	for name, dst := range map[string]*adapters.SectionItems{
		"A": &sections.A, "B": &sections.B, "C": &sections.C, "E": &sections.E,
		"F": &sections.F, "G": &sections.G, "H": &sections.H,
	} {
		dst.LE = le.Items(name)
		dst.CD = cd.Items(name)
	}

	buckets := adapters.FromSections(sections, loanContext(cd, le))
	r.logger.Debug(fmt.Sprintf("adapted %d fees from documents", buckets.Len()),
		zap.String("op", "reconcile.FromDocuments"),
		zap.String("le_type", string(le.DetectType())),
		zap.String("cd_type", string(cd.DetectType())),
	)
	return r.Evaluate(buckets, opts, overrides), nil
}

// FromMatchedFees reconciles a fee list already paired by an external matcher.
func (r *Reconciler) FromMatchedFees(matched []adapters.MatchedFee, loan adapters.LoanContext, opts tolerance.RuleOptions, overrides tolerance.Overrides) (*Result, error) {
	buckets := adapters.FromMatchedFees(matched, loan)
	r.logger.Debug(fmt.Sprintf("adapted %d of %d matched fees", buckets.Len(), len(matched)),
		zap.String("op", "reconcile.FromMatchedFees"),
	)
	return r.Evaluate(buckets, opts, overrides), nil
}

// Evaluate runs the evaluators over adapted fees and assembles the result.
func (r *Reconciler) Evaluate(b adapters.Buckets, opts tolerance.RuleOptions, overrides tolerance.Overrides) *Result {
	res := &Result{
		Options:    opts,
		ZeroA:      tolerance.EvaluateZero(b.ZeroA, tolerance.BucketA, opts),
		ZeroB:      tolerance.EvaluateZero(b.ZeroB, tolerance.BucketB, opts),
		TenPercent: tolerance.EvaluateTenPercent(b.TenPercent, overrides, opts),
		Unlimited:  tolerance.EvaluateUnlimited(b.Unlimited),
	}
	res.Exceptions = tolerance.CollectExceptions(res.ZeroA, res.ZeroB, res.TenPercent, res.Unlimited)
	res.TotalDelta = mathutil.Sum(
		mathutil.Sub(res.ZeroA.CDSubtotal, res.ZeroA.LESubtotal),
		mathutil.Sub(res.ZeroB.CDSubtotal, res.ZeroB.LESubtotal),
		mathutil.Sub(res.TenPercent.CDSubtotal, res.TenPercent.LESubtotal),
		mathutil.Sub(res.Unlimited.CDSubtotal, res.Unlimited.LESubtotal),
	)
	res.Cure = cureSummary(res, opts.LenderCredits)
	res.Diff = diffSummary(res.Rows())
	res.Warnings = overrideWarnings(overrides, res.TenPercent.Rows)
	for _, w := range res.Warnings {
		r.logger.Warn("Configuration warning: "+w, zap.String("op", "reconcile.Evaluate"))
	}

	for _, bucket := range []struct {
		name   string
		rows   int
		le, cd float64
	}{
		{"A", len(res.ZeroA.Rows), res.ZeroA.LESubtotal, res.ZeroA.CDSubtotal},
		{"B", len(res.ZeroB.Rows), res.ZeroB.LESubtotal, res.ZeroB.CDSubtotal},
		{"C+E", len(res.TenPercent.Rows), res.TenPercent.LESubtotal, res.TenPercent.CDSubtotal},
		{"unlimited", len(res.Unlimited.Rows), res.Unlimited.LESubtotal, res.Unlimited.CDSubtotal},
	} {
		r.logger.Debug("evaluated bucket",
			zap.String("op", "reconcile.Evaluate"),
			zap.String("bucket", bucket.name),
			zap.Int("rows", bucket.rows),
			zap.Float64("le_subtotal", bucket.le),
			zap.Float64("cd_subtotal", bucket.cd),
		)
	}
	r.logger.Info("reconciliation complete",
		zap.String("op", "reconcile.Evaluate"),
		zap.Int("exceptions", len(res.Exceptions)),
		zap.Float64("total_delta", res.TotalDelta),
		zap.String("ten_percent_status", string(res.TenPercent.Status)),
		zap.Float64("required_cure", res.Cure.RequiredCure),
	)
	return res
}

// overrideWarnings reports override ids that match no ten-percent row, in
// sorted order.
func overrideWarnings(overrides tolerance.Overrides, rows []tolerance.TenPercentRow) []string {
	if len(overrides) == 0 {
		return nil
	}
	known := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		known[row.ID] = struct{}{}
	}
	var warnings []string
	for id := range overrides {
		if _, ok := known[id]; !ok {
			warnings = append(warnings, fmt.Sprintf("override %q matches no ten percent fee", id))
		}
	}
	sort.Strings(warnings)
	return warnings
}

func loanContext(records ...*document.Record) adapters.LoanContext {
	var loan adapters.LoanContext
	for _, rec := range records {
		amount, rate := rec.Loan()
		if loan.LoanAmount == nil {
			loan.LoanAmount = amount
		}
		if loan.InterestRate == nil {
			loan.InterestRate = rate
		}
	}
	return loan
}
