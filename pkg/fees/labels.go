package fees

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	perDiemDays    = regexp.MustCompile(`(?i)\b(\d{1,3})\s*(?:days?|d)\b`)
	escrowMonths   = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:months?|mos?)\b`)
	optionalMarker = regexp.MustCompile(`(?i)\boptional\b`)
	lenderRequired = regexp.MustCompile(`(?i)\b(?:required\s+by\s+(?:the\s+)?lender|lender[\s-]+required)\b`)
)

// PerDiemDays extracts the interest period from a prepaid interest label such
// as "Prepaid Interest ($52.19 per day for 15 days @ 6.5%)".
func PerDiemDays(label string) *int {
	return firstInt(perDiemDays, label)
}

// EscrowMonths extracts the cushion period from an escrow label such as
// "Homeowner's Insurance $100.00 per month for 2 mo.".
func EscrowMonths(label string) *int {
	return firstInt(escrowMonths, label)
}

// IsOptional reports true when a label discloses the fee as optional. A label
// without the marker says nothing either way, so the result is nil.
func IsOptional(label string) *bool {
	if optionalMarker.MatchString(label) {
		v := true
		return &v
	}
	return nil
}

// LenderRequired reports true when a label says the lender requires the fee.
func LenderRequired(label string) *bool {
	if lenderRequired.MatchString(label) {
		v := true
		return &v
	}
	return nil
}

func firstInt(re *regexp.Regexp, label string) *int {
	m := re.FindStringSubmatch(strings.TrimSpace(label))
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}
