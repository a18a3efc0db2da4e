// Package fees provides the line-item model shared by both disclosures and the
// pure functions that prepare raw items for tolerance evaluation: label
// normalization, cross-document merging and payer splitting.
package fees

import "strings"

// Payer identifies who pays a disclosed cost.
type Payer string

// Payer values. PayerUnset means the extractor did not tag the line.
const (
	PayerUnset    Payer = ""
	PayerBorrower Payer = "borrower"
	PayerSeller   Payer = "seller"
	PayerOther    Payer = "other"
)

// Timing identifies when a cost is paid.
type Timing string

// Timing values.
const (
	TimingUnset         Timing = ""
	TimingAtClosing     Timing = "at_closing"
	TimingBeforeClosing Timing = "before_closing"
	TimingNA            Timing = "n/a"
)

// Sub-labels emitted by the extractor for Closing Disclosure columns.
const (
	SubLabelBorrowerAtClosing     = "borrower_paid_at_closing"
	SubLabelBorrowerBeforeClosing = "borrower_paid_before_closing"
	SubLabelSellerAtClosing       = "seller_paid_at_closing"
	SubLabelSellerBeforeClosing   = "seller_paid_before_closing"
	SubLabelPaidByOthers          = "paid_by_others"
)

// LineItem is a single disclosed cost entry. Every field is optional; a nil
// Amount is treated as zero.
type LineItem struct {
	Label    string   `json:"label,omitempty" yaml:"label,omitempty"`
	Amount   *float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
	SubLabel string   `json:"sub_label,omitempty" yaml:"sub_label,omitempty"`
	Payer    Payer    `json:"payer,omitempty" yaml:"payer,omitempty"`
	Timing   Timing   `json:"timing,omitempty" yaml:"timing,omitempty"`
}

// Resolved returns a copy of the item with Payer and Timing derived from the
// sub-label when the extractor left them empty.
func (li LineItem) Resolved() LineItem {
	sub := strings.ToLower(strings.TrimSpace(li.SubLabel))
	if li.Payer == PayerUnset {
		switch sub {
		case SubLabelBorrowerAtClosing, SubLabelBorrowerBeforeClosing:
			li.Payer = PayerBorrower
		case SubLabelSellerAtClosing, SubLabelSellerBeforeClosing:
			li.Payer = PayerSeller
		case SubLabelPaidByOthers:
			li.Payer = PayerOther
		}
	}
	if li.Timing == TimingUnset {
		switch sub {
		case SubLabelBorrowerAtClosing, SubLabelSellerAtClosing:
			li.Timing = TimingAtClosing
		case SubLabelBorrowerBeforeClosing, SubLabelSellerBeforeClosing:
			li.Timing = TimingBeforeClosing
		case SubLabelPaidByOthers:
			li.Timing = TimingNA
		}
	}
	return li
}

// Amt returns the item amount, or zero when absent.
func (li LineItem) Amt() float64 {
	if li.Amount == nil {
		return 0
	}
	return *li.Amount
}
