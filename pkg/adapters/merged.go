package adapters

import (
	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// SectionItems holds the raw line items one section discloses on each document.
type SectionItems struct {
	LE []fees.LineItem
	CD []fees.LineItem
}

// Sections holds the raw line items of every tolerance-relevant section.
type Sections struct {
	A, B, C, E, F, G, H SectionItems
}

// FromSections merges each section by normalized label and adapts the rows.
//
// Without an external matcher every merged pair is an exact key match, so the
// match confidence is 1. A shoppable fee counts as chosen from the provider
// list when the LE disclosed it, and every section E fee is a recording fee.
func FromSections(s Sections, loan LoanContext) Buckets {
	ids := idSequence{}
	var out Buckets

	out.ZeroA = zeroFees(fees.Merge(s.A.LE, s.A.CD), tolerance.BucketA, ids)
	out.ZeroB = zeroFees(fees.Merge(s.B.LE, s.B.CD), tolerance.BucketB, ids)

	recording := make(map[string]bool)
	for _, item := range append(append([]fees.LineItem{}, s.E.LE...), s.E.CD...) {
		if key := fees.Normalize(item.Label); key != "" {
			recording[key] = true
		}
	}
	le := append(append([]fees.LineItem{}, s.C.LE...), s.E.LE...)
	cd := append(append([]fees.LineItem{}, s.C.CD...), s.E.CD...)
	for _, m := range fees.Merge(le, cd) {
		providerType := tolerance.ProviderShoppable
		if recording[m.Key] {
			providerType = tolerance.ProviderRecording
		}
		out.TenPercent = append(out.TenPercent, tolerance.TenPercentFee{
			Fee:             envelope(m, ids.next(tolerance.BucketCE)),
			Provider:        provider(m),
			ProviderType:    providerType,
			MatchConfidence: 1,
			OnWhitelist:     m.OnLE(),
			IsRecording:     providerType == tolerance.ProviderRecording,
		})
	}

	out.Unlimited = append(out.Unlimited, unlimitedFees(fees.Merge(s.F.LE, s.F.CD), tolerance.BucketF, loan, ids)...)
	out.Unlimited = append(out.Unlimited, unlimitedFees(fees.Merge(s.G.LE, s.G.CD), tolerance.BucketG, loan, ids)...)
	out.Unlimited = append(out.Unlimited, unlimitedFees(fees.Merge(s.H.LE, s.H.CD), tolerance.BucketH, loan, ids)...)
	return out
}

func envelope(m fees.MergedItem, id string) tolerance.Fee {
	return tolerance.Fee{
		ID:    id,
		Label: m.DisplayLabel,
		LE:    m.LESplit(),
		CD:    m.CDSplit(),
		OnLE:  m.OnLE(),
		OnCD:  m.OnCD(),
	}
}

func zeroFees(merged []fees.MergedItem, bucket tolerance.Bucket, ids idSequence) []tolerance.ZeroFee {
	out := make([]tolerance.ZeroFee, 0, len(merged))
	for _, m := range merged {
		out = append(out, tolerance.ZeroFee{Fee: envelope(m, ids.next(bucket))})
	}
	return out
}

func unlimitedFees(merged []fees.MergedItem, bucket tolerance.Bucket, loan LoanContext, ids idSequence) []tolerance.UnlimitedFee {
	out := make([]tolerance.UnlimitedFee, 0, len(merged))
	for _, m := range merged {
		f := tolerance.UnlimitedFee{Fee: envelope(m, ids.next(bucket)), Bucket: bucket}
		applyLabelHints(&f, labels(m), loan)
		out = append(out, f)
	}
	return out
}

// applyLabelHints fills the heuristic context of an unlimited fee from its
// labels, CD wording first. Fields already set are kept.
func applyLabelHints(f *tolerance.UnlimitedFee, labels []string, loan LoanContext) {
	for _, label := range labels {
		switch f.Bucket {
		case tolerance.BucketF:
			if f.PerDiemDays == nil {
				f.PerDiemDays = fees.PerDiemDays(label)
			}
		case tolerance.BucketG:
			if f.EscrowMonths == nil {
				f.EscrowMonths = fees.EscrowMonths(label)
			}
		case tolerance.BucketH:
			if f.IsOptional == nil {
				f.IsOptional = fees.IsOptional(label)
			}
			if f.LenderRequired == nil {
				f.LenderRequired = fees.LenderRequired(label)
			}
		}
	}
	if f.Bucket == tolerance.BucketF {
		f.LoanAmount = loan.LoanAmount
		f.InterestRate = loan.InterestRate
	}
}

func labels(m fees.MergedItem) []string {
	var out []string
	for _, item := range m.CD {
		out = append(out, item.Label)
	}
	for _, item := range m.LE {
		out = append(out, item.Label)
	}
	return out
}

func provider(m fees.MergedItem) string {
	for _, label := range labels(m) {
		if name := fees.ProviderName(label); name != "" {
			return name
		}
	}
	return ""
}
