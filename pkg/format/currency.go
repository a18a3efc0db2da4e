// Package format renders currency figures for messages and reports.
package format

import (
	"math"

	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	rounded := mathutil.Round(amount)
	if rounded < 0 {
		return "-$" + NumericCurrency(math.Abs(rounded))
	}
	return "$" + NumericCurrency(rounded)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	return printer.Sprintf("%.2f", mathutil.Round(amount))
}

// Percent renders a ratio such as 0.125 as "12.5%".
func Percent(ratio float64) string {
	return printer.Sprintf("%.1f%%", ratio*100)
}
