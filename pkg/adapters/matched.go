package adapters

import (
	"strings"

	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// MatchedFee is one LE to CD pairing proposed by an external fee matcher.
// Amounts are borrower-paid.
type MatchedFee struct {
	FeeName             string   `json:"fee_name"`
	Section             string   `json:"section"`
	LEAmount            *float64 `json:"le_amount,omitempty"`
	CDAmount            *float64 `json:"cd_amount,omitempty"`
	LELabel             string   `json:"le_label,omitempty"`
	CDLabel             string   `json:"cd_label,omitempty"`
	MatchConfidence     float64  `json:"match_confidence"`
	ToleranceCategory   string   `json:"tolerance_category,omitempty"`
	ProviderName        string   `json:"provider_name,omitempty"`
	IsNew               bool     `json:"is_new,omitempty"`
	ChosenFromList      *bool    `json:"chosen_from_list,omitempty"`
	ChangedCircumstance *bool    `json:"changed_circumstance,omitempty"`
	PermittedToShop     *bool    `json:"permitted_to_shop,omitempty"`
	ReclassifiedTo      string   `json:"reclassified_to,omitempty"`
	ReclassifiedAmount  *float64 `json:"reclassified_amount,omitempty"`
	PerDiemDays         *int     `json:"per_diem_days,omitempty"`
	EscrowMonths        *int     `json:"escrow_months,omitempty"`
	IsOptional          *bool    `json:"is_optional,omitempty"`
	LenderRequired      *bool    `json:"lender_required,omitempty"`
}

// Empty reports whether neither document carries an amount for the fee.
func (m MatchedFee) Empty() bool {
	return mathutil.IsZero(mathutil.Value(m.LEAmount)) && mathutil.IsZero(mathutil.Value(m.CDAmount))
}

// Label returns the best available name for the fee.
func (m MatchedFee) Label() string {
	for _, label := range []string{m.FeeName, m.LELabel, m.CDLabel} {
		if strings.TrimSpace(label) != "" {
			return label
		}
	}
	return ""
}

// Category returns the matcher's tolerance category, classifying by section
// when the matcher left it blank or unrecognized.
func (m MatchedFee) Category() tolerance.Category {
	if c := tolerance.ParseCategory(m.ToleranceCategory); c != "" {
		return c
	}
	return tolerance.Classify(m.Section, m.Label(), isTrue(m.ChosenFromList), isTrue(m.ChangedCircumstance))
}

func (m MatchedFee) section() string {
	return strings.ToUpper(strings.TrimSpace(m.Section))
}

// FromMatchedFees adapts pre-matched fees into evaluator input. Fees with no
// amount on either document are dropped. Zero-tolerance fees outside section
// B are evaluated with section A. Unlimited fees outside F, G and H are
// evaluated with H, except section C fees, which stay with the ten-percent
// evaluator as off-list rows.
func FromMatchedFees(matched []MatchedFee, loan LoanContext) Buckets {
	ids := idSequence{}
	var out Buckets

	for _, m := range matched {
		if m.Empty() {
			continue
		}
		section := m.section()

		switch category := m.Category(); {
		case category == tolerance.CategoryZero:
			bucket := tolerance.BucketA
			if section == "B" {
				bucket = tolerance.BucketB
			}
			f := tolerance.ZeroFee{Fee: matchedEnvelope(m, ids.next(bucket)), PermittedToShop: isTrue(m.PermittedToShop)}
			if bucket == tolerance.BucketB {
				out.ZeroB = append(out.ZeroB, f)
			} else {
				out.ZeroA = append(out.ZeroA, f)
			}

		case category == tolerance.CategoryTenPercent || section == "C":
			out.TenPercent = append(out.TenPercent, tenPercentFee(m, category, ids.next(tolerance.BucketCE)))

		default:
			bucket := tolerance.Bucket(section)
			if !bucket.IsUnlimited() {
				bucket = tolerance.BucketH
			}
			f := tolerance.UnlimitedFee{
				Fee:            matchedEnvelope(m, ids.next(bucket)),
				Bucket:         bucket,
				PerDiemDays:    m.PerDiemDays,
				EscrowMonths:   m.EscrowMonths,
				IsOptional:     m.IsOptional,
				LenderRequired: m.LenderRequired,
			}
			applyLabelHints(&f, nonEmpty(m.CDLabel, m.LELabel, m.FeeName), loan)
			out.Unlimited = append(out.Unlimited, f)
		}
	}
	return out
}

func tenPercentFee(m MatchedFee, category tolerance.Category, id string) tolerance.TenPercentFee {
	f := tolerance.TenPercentFee{
		Fee:             matchedEnvelope(m, id),
		Provider:        m.ProviderName,
		ProviderType:    tolerance.ProviderShoppable,
		MatchConfidence: m.MatchConfidence,
	}
	if f.Provider == "" {
		for _, label := range nonEmpty(m.CDLabel, m.LELabel) {
			if f.Provider = fees.ProviderName(label); f.Provider != "" {
				break
			}
		}
	}

	switch section := m.section(); {
	case section == "E" || (section == "" && tolerance.IsRecordingFee(m.Label())):
		f.ProviderType = tolerance.ProviderRecording
		f.IsRecording = true
	case category != tolerance.CategoryTenPercent:
		f.OnWhitelist = false
	case m.ChosenFromList != nil:
		f.OnWhitelist = *m.ChosenFromList
	default:
		f.OnWhitelist = tolerance.DefaultOnWhitelist(m.LEAmount != nil && !m.IsNew, m.MatchConfidence)
	}
	return f
}

func matchedEnvelope(m MatchedFee, id string) tolerance.Fee {
	f := tolerance.Fee{
		ID:    id,
		Label: m.Label(),
		LE:    fees.Split{Borrower: mathutil.Round(mathutil.Value(m.LEAmount))},
		CD:    fees.Split{Borrower: mathutil.Round(mathutil.Value(m.CDAmount))},
		OnLE:  m.LEAmount != nil && !m.IsNew,
		OnCD:  m.CDAmount != nil,
	}
	if isTrue(m.ChangedCircumstance) {
		f.ChangeReason = "changed circumstance"
	}
	if m.ReclassifiedAmount != nil {
		amount := mathutil.Round(*m.ReclassifiedAmount)
		switch fees.Payer(strings.ToLower(m.ReclassifiedTo)) {
		case fees.PayerSeller:
			f.CD.Seller = &amount
		case fees.PayerOther:
			f.CD.Other = &amount
		}
	}
	return f
}

func nonEmpty(labels ...string) []string {
	var out []string
	for _, label := range labels {
		if strings.TrimSpace(label) != "" {
			out = append(out, label)
		}
	}
	return out
}

func isTrue(b *bool) bool {
	return b != nil && *b
}
