package tolerance

import (
	"fmt"

	"github.com/iwvelando/trid-reconcile/pkg/format"
)

// Severity of a flag.
type Severity string

// Severity values.
const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// FlagCode enumerates the kinds of findings an evaluator can attach to a row.
type FlagCode string

// Flag codes.
const (
	FlagZeroLineOverage          FlagCode = "ZERO_LINE_OVERAGE"
	FlagSectionPlacementMismatch FlagCode = "SECTION_PLACEMENT_MISMATCH"
	FlagCuredByLender            FlagCode = "CURED_BY_LENDER"
	FlagProviderOffList          FlagCode = "PROVIDER_OFF_LIST"
	FlagLowConfidence            FlagCode = "LOW_CONFIDENCE"
	FlagPerDiemOutlier           FlagCode = "PER_DIEM_OUTLIER"
	FlagPerDiemInterestDeviation FlagCode = "PER_DIEM_INTEREST_DEVIATION"
	FlagEscrowCushionExceeded    FlagCode = "ESCROW_CUSHION_EXCEEDED"
	FlagOptionalityMismatch      FlagCode = "OPTIONALITY_MISMATCH"
	FlagPayerReclassified        FlagCode = "PAYER_RECLASSIFIED"
)

// Flag annotates a row. Amount, when set, is the figure the finding is about;
// otherwise the row delta is reported.
type Flag struct {
	Code     FlagCode `json:"code"`
	Label    string   `json:"label"`
	Severity Severity `json:"severity"`
	Details  string   `json:"details,omitempty"`
	Amount   *float64 `json:"amount,omitempty"`
}

// Message renders the flag as a single line of text.
func (f Flag) Message() string {
	if f.Details == "" {
		return f.Label
	}
	return f.Label + ": " + f.Details
}

func withAmount(f Flag, amount float64) Flag {
	f.Amount = &amount
	return f
}

func zeroLineOverageFlag(overage, threshold float64) Flag {
	return withAmount(Flag{
		Code:     FlagZeroLineOverage,
		Label:    "Zero-tolerance fee increased",
		Severity: SeverityError,
		Details:  fmt.Sprintf("exceeds the %s cushion by %s", format.Currency(threshold), format.Currency(overage)),
	}, overage)
}

func sectionPlacementFlag() Flag {
	return Flag{
		Code:     FlagSectionPlacementMismatch,
		Label:    "Shoppable service disclosed in Services You Cannot Shop For",
		Severity: SeverityWarning,
	}
}

func curedByLenderFlag(cure, credits float64) Flag {
	return withAmount(Flag{
		Code:     FlagCuredByLender,
		Label:    "Overage cured by lender credit",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("%s covered by %s in lender credits", format.Currency(cure), format.Currency(credits)),
	}, cure)
}

func providerOffListFlag(provider string) Flag {
	f := Flag{
		Code:     FlagProviderOffList,
		Label:    "Provider not on the written list; no tolerance cap applies",
		Severity: SeverityWarning,
	}
	if provider != "" {
		f.Details = provider
	}
	return f
}

func lowConfidenceFlag(confidence float64, excluded bool) Flag {
	f := Flag{
		Code:     FlagLowConfidence,
		Label:    "Fee match needs review",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("match confidence %s", format.Percent(confidence)),
	}
	if excluded {
		f.Label = "Fee match below confidence floor; excluded from the 10% group"
	}
	return f
}

func perDiemOutlierFlag(days int) Flag {
	return Flag{
		Code:     FlagPerDiemOutlier,
		Label:    "Prepaid interest period unusually long",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("%d days", days),
	}
}

func perDiemDeviationFlag(disclosed, expected float64) Flag {
	return withAmount(Flag{
		Code:     FlagPerDiemInterestDeviation,
		Label:    "Prepaid interest does not match the per-diem calculation",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("disclosed %s, expected %s", format.Currency(disclosed), format.Currency(expected)),
	}, disclosed)
}

func escrowCushionFlag(months int) Flag {
	return Flag{
		Code:     FlagEscrowCushionExceeded,
		Label:    "Escrow cushion exceeds two months",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("%d months collected", months),
	}
}

func optionalityMismatchFlag() Flag {
	return Flag{
		Code:     FlagOptionalityMismatch,
		Label:    "Lender-required service disclosed as not optional in section H",
		Severity: SeverityWarning,
	}
}
