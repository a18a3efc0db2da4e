package tolerance

import (
	"fmt"

	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/format"
	"github.com/iwvelando/trid-reconcile/pkg/mathutil"
)

// Reclassification describes a fee the borrower paid on the LE that moved to
// another payer on the CD.
type Reclassification struct {
	To     fees.Payer `json:"to"`
	Amount float64    `json:"amount"`
}

// DetectReclassification compares payer splits rather than amounts. It
// returns nil unless the borrower portion disappeared while a seller or other
// party portion appeared.
func DetectReclassification(f Fee) *Reclassification {
	if !mathutil.IsPositive(f.LE.Borrower) || !mathutil.IsZero(f.CD.Borrower) {
		return nil
	}
	if seller := f.CD.SellerAmt(); mathutil.IsPositive(seller) {
		return &Reclassification{To: fees.PayerSeller, Amount: seller}
	}
	if other := f.CD.OtherAmt(); mathutil.IsPositive(other) {
		return &Reclassification{To: fees.PayerOther, Amount: other}
	}
	return nil
}

func reclassifiedFlag(r *Reclassification) Flag {
	return withAmount(Flag{
		Code:     FlagPayerReclassified,
		Label:    "Fee moved off the borrower",
		Severity: SeverityWarning,
		Details:  fmt.Sprintf("%s paid by %s on the CD", format.Currency(r.Amount), r.To),
	}, r.Amount)
}

func flagReclassification(f Fee, e *Evaluation) {
	if r := DetectReclassification(f); r != nil {
		e.flag(reclassifiedFlag(r))
	}
}
