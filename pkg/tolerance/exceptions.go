package tolerance

import "github.com/iwvelando/trid-reconcile/pkg/format"

// TenPercentOverageID identifies the synthetic exception raised when the
// ten-percent aggregate test is over.
const TenPercentOverageID = "ten-percent-overage"

// Exception is one flattened finding.
type Exception struct {
	ID       string   `json:"id"`
	Section  Bucket   `json:"section"`
	Label    string   `json:"label"`
	Code     FlagCode `json:"code,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Amount   float64  `json:"amount"`
}

// CollectExceptions flattens the flags of every evaluated row into one list:
// bucket A, then B, then the ten-percent rows, then the unlimited rows, each
// in row order with flags in the order they were raised. A synthetic entry is
// appended when the aggregate test is over. Nothing is deduplicated.
func CollectExceptions(zeroA, zeroB ZeroResult, ten TenPercentResult, unlimited UnlimitedResult) []Exception {
	out := []Exception{}
	collect := func(r Row) {
		env, res := r.Envelope(), r.Result()
		for _, f := range res.Flags {
			amount := res.Delta
			if f.Amount != nil {
				amount = *f.Amount
			}
			out = append(out, Exception{
				ID:       env.ID + ":" + string(f.Code),
				Section:  r.Section(),
				Label:    env.Label,
				Code:     f.Code,
				Message:  f.Message(),
				Severity: f.Severity,
				Amount:   amount,
			})
		}
	}

	for _, row := range zeroA.Rows {
		collect(row)
	}
	for _, row := range zeroB.Rows {
		collect(row)
	}
	for _, row := range ten.Rows {
		collect(row)
	}
	for _, row := range unlimited.Rows {
		collect(row)
	}

	if ten.Status == StatusOver {
		out = append(out, Exception{
			ID:       TenPercentOverageID,
			Section:  BucketCE,
			Label:    "10% aggregate tolerance",
			Message:  "CD total " + format.Currency(ten.CDTotal) + " exceeds the allowed " + format.Currency(ten.AllowedMax),
			Severity: SeverityError,
			Amount:   ten.Overage,
		})
	}
	return out
}
