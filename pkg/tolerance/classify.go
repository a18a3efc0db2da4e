package tolerance

import (
	"strings"

	"github.com/iwvelando/trid-reconcile/pkg/constants"
)

// Category is the tolerance regime a fee falls under.
type Category string

// Category values, as produced by the fee matcher.
const (
	CategoryZero       Category = "zero"
	CategoryTenPercent Category = "ten_percent"
	CategoryUnlimited  Category = "unlimited"
)

var (
	transferTaxTokens = []string{"transfer tax", "intangible tax", "doc stamp", "documentary stamp", "stamp tax"}
	recordingTokens   = []string{"recording", "recordation"}
)

// ParseCategory maps a matcher-supplied category onto a known one. Unknown
// values yield the empty category so the caller can classify by section.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case CategoryZero, CategoryTenPercent, CategoryUnlimited:
		return c
	}
	return ""
}

// Classify derives the tolerance regime of a fee from its disclosure section.
// Section B fees lose their zero tolerance under a changed circumstance, and
// section C fees only join the ten-percent group when the borrower chose the
// provider from the lender's written list. Transfer taxes in section E are
// zero tolerance.
func Classify(section, label string, chosenFromList, changedCircumstance bool) Category {
	switch strings.ToUpper(strings.TrimSpace(section)) {
	case "A":
		return CategoryZero
	case "B":
		if changedCircumstance {
			return CategoryUnlimited
		}
		return CategoryZero
	case "C":
		if chosenFromList {
			return CategoryTenPercent
		}
		return CategoryUnlimited
	case "E":
		if IsTransferTax(label) {
			return CategoryZero
		}
		return CategoryTenPercent
	default:
		return CategoryUnlimited
	}
}

// IsTransferTax reports whether a label names a transfer or stamp tax.
func IsTransferTax(label string) bool {
	return containsAny(strings.ToLower(label), transferTaxTokens)
}

// IsRecordingFee reports whether a label names a recording fee.
func IsRecordingFee(label string) bool {
	return containsAny(strings.ToLower(label), recordingTokens)
}

// DefaultOnWhitelist guesses provider-list membership for a matched fee that
// carries no explicit answer: a fee missing from the LE or matched with low
// confidence is assumed off the list.
func DefaultOnWhitelist(onLE bool, confidence float64) bool {
	return onLE && confidence >= constants.WhitelistConfidenceFloor
}

func containsAny(text string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(text, token) {
			return true
		}
	}
	return false
}
