// Package document models the structured Loan Estimate and Closing Disclosure
// records produced by the upstream extractor.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/iwvelando/trid-reconcile/pkg/fees"
)

// ErrEmptyDocument is returned when a decoded record carries no data at all.
var ErrEmptyDocument = errors.New("document is empty")

// Type identifies which disclosure a record is.
type Type string

// Type values.
const (
	TypeLoanEstimate      Type = "loan_estimate"
	TypeClosingDisclosure Type = "closing_disclosure"
	TypeUnknown           Type = "unknown"
)

// Section is one lettered cost section.
type Section struct {
	Label string          `json:"label,omitempty"`
	Total *float64        `json:"total,omitempty"`
	Items []fees.LineItem `json:"items,omitempty"`
}

// LoanCosts holds sections A through C and their total.
type LoanCosts struct {
	A      *Section `json:"A,omitempty"`
	B      *Section `json:"B,omitempty"`
	C      *Section `json:"C,omitempty"`
	DTotal *float64 `json:"D_total,omitempty"`
}

// OtherCosts holds sections E through H, their totals and lender credits.
type OtherCosts struct {
	E             *Section `json:"E,omitempty"`
	F             *Section `json:"F,omitempty"`
	G             *Section `json:"G,omitempty"`
	H             *Section `json:"H,omitempty"`
	ITotal        *float64 `json:"I_total,omitempty"`
	JTotal        *float64 `json:"J_total,omitempty"`
	LenderCredits *float64 `json:"lender_credits,omitempty"`
}

// ClosingCostDetails is the closing cost page of a disclosure.
type ClosingCostDetails struct {
	LoanCosts  *LoanCosts  `json:"loan_costs,omitempty"`
	OtherCosts *OtherCosts `json:"other_costs,omitempty"`
}

// LoanTerms carries the loan figures used by prepaid interest checks.
type LoanTerms struct {
	LoanAmount      *float64 `json:"loan_amount,omitempty"`
	InterestRatePct *float64 `json:"interest_rate_pct,omitempty"`
}

// Meta describes where a record came from.
type Meta struct {
	SourceID    string `json:"source_id,omitempty"`
	SourceFile  string `json:"source_file,omitempty"`
	ExtractedAt string `json:"extracted_at,omitempty"`
}

// Record is a structured disclosure. Every field is optional.
type Record struct {
	Meta               *Meta               `json:"meta,omitempty"`
	LoanTerms          *LoanTerms          `json:"loan_terms,omitempty"`
	ClosingCostDetails *ClosingCostDetails `json:"closing_cost_details,omitempty"`
}

// Decode reads a JSON record and recomputes its section totals.
func Decode(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	if rec.Meta == nil && rec.LoanTerms == nil && rec.ClosingCostDetails == nil {
		return nil, ErrEmptyDocument
	}
	rec.RecomputeTotals()
	return &rec, nil
}

// Load reads a JSON record from a file.
func Load(path string) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", path, err)
	}
	defer f.Close()

	rec, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rec, nil
}

// Section returns the named section ("A" through "H"), or nil.
func (r *Record) Section(name string) *Section {
	if r == nil || r.ClosingCostDetails == nil {
		return nil
	}
	loan, other := r.ClosingCostDetails.LoanCosts, r.ClosingCostDetails.OtherCosts
	if loan == nil {
		loan = &LoanCosts{}
	}
	if other == nil {
		other = &OtherCosts{}
	}
	switch strings.ToUpper(name) {
	case "A":
		return loan.A
	case "B":
		return loan.B
	case "C":
		return loan.C
	case "E":
		return other.E
	case "F":
		return other.F
	case "G":
		return other.G
	case "H":
		return other.H
	}
	return nil
}

// Items returns the line items of the named section with payer and timing
// resolved from their sub-labels.
func (r *Record) Items(name string) []fees.LineItem {
	sec := r.Section(name)
	if sec == nil {
		return nil
	}
	items := make([]fees.LineItem, 0, len(sec.Items))
	for _, item := range sec.Items {
		items = append(items, item.Resolved())
	}
	return items
}

// LenderCredits returns the lender credits disclosed in section J, or zero.
func (r *Record) LenderCredits() float64 {
	if r == nil || r.ClosingCostDetails == nil || r.ClosingCostDetails.OtherCosts == nil {
		return 0
	}
	if v := r.ClosingCostDetails.OtherCosts.LenderCredits; v != nil {
		return *v
	}
	return 0
}

// Loan returns the loan amount and annual interest rate percentage, when known.
func (r *Record) Loan() (amount, ratePct *float64) {
	if r == nil || r.LoanTerms == nil {
		return nil, nil
	}
	return r.LoanTerms.LoanAmount, r.LoanTerms.InterestRatePct
}
