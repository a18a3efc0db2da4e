package fees

import (
	"strings"

	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
)

// Split is the amount of a fee attributable to each payer. Seller and Other are
// independent amounts and are not required to sum with Borrower to a total.
type Split struct {
	Borrower float64  `json:"borrower"`
	Seller   *float64 `json:"seller,omitempty"`
	Other    *float64 `json:"other,omitempty"`
}

// SellerAmt returns the seller-paid amount, or zero.
func (s Split) SellerAmt() float64 { return mathutil.Value(s.Seller) }

// OtherAmt returns the amount paid by other parties, or zero.
func (s Split) OtherAmt() float64 { return mathutil.Value(s.Other) }

// BorrowerAmount returns the borrower-paid amount of an item. Untagged items are
// borrower-paid: tolerance rules only govern borrower costs and the extractor
// tags seller and third-party columns far more reliably than it confirms the
// borrower column.
func BorrowerAmount(item *LineItem) float64 {
	if item == nil || item.Amount == nil {
		return 0
	}
	sub := strings.ToLower(item.SubLabel)
	if item.Payer == PayerBorrower || strings.Contains(sub, "borrower") {
		return *item.Amount
	}
	if item.Payer == PayerUnset && sub == "" {
		return *item.Amount
	}
	return 0
}

// SellerAmount returns the seller-paid amount of an explicitly tagged item.
func SellerAmount(item *LineItem) float64 {
	if item == nil || item.Amount == nil {
		return 0
	}
	if item.Payer == PayerSeller || strings.Contains(strings.ToLower(item.SubLabel), "seller") {
		return *item.Amount
	}
	return 0
}

// OtherAmount returns the amount paid by other parties for an explicitly tagged item.
func OtherAmount(item *LineItem) float64 {
	if item == nil || item.Amount == nil {
		return 0
	}
	if item.Payer == PayerOther || strings.Contains(strings.ToLower(item.SubLabel), "other") {
		return *item.Amount
	}
	return 0
}

// SplitOf sums the payer amounts of one or more items disclosing the same fee.
// Seller and Other are only populated when some item carries that payer.
func SplitOf(items ...LineItem) Split {
	var borrower, seller, other []float64
	for i := range items {
		item := &items[i]
		borrower = append(borrower, BorrowerAmount(item))
		if v := SellerAmount(item); v != 0 {
			seller = append(seller, v)
		}
		if v := OtherAmount(item); v != 0 {
			other = append(other, v)
		}
	}

	split := Split{Borrower: mathutil.Sum(borrower...)}
	if len(seller) > 0 {
		v := mathutil.Sum(seller...)
		split.Seller = &v
	}
	if len(other) > 0 {
		v := mathutil.Sum(other...)
		split.Other = &v
	}
	return split
}
