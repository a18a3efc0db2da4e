package reconcile

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/iwvelando/trid-reconcile/internal/document"
	"github.com/iwvelando/trid-reconcile/pkg/adapters"
	"github.com/iwvelando/trid-reconcile/pkg/fees"
	"github.com/iwvelando/trid-reconcile/pkg/testutil"
	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func loadPair(t *testing.T) (*document.Record, *document.Record) {
	t.Helper()
	le, err := document.Load(filepath.Join("..", "document", "testdata", "le.json"))
	require.NoError(t, err)
	cd, err := document.Load(filepath.Join("..", "document", "testdata", "cd.json"))
	require.NoError(t, err)
	return le, cd
}

func TestFromDocuments(t *testing.T) {
	le, cd := loadPair(t)

	res, err := New(zap.NewNop()).FromDocuments(le, cd, tolerance.DefaultRuleOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, 100.0, res.Options.LenderCredits)

	points := testutil.FindRow(res.Rows(), "A-2")
	require.NotNil(t, points)
	assert.Equal(t, tolerance.StatusFail, points.Result().Status)
	assert.Equal(t, 99.0, res.ZeroA.TotalCure)
	assert.Equal(t, tolerance.Counts{Pass: 2}, res.ZeroB.Counts)

	ten := res.TenPercent
	assert.Equal(t, 1950.0, ten.LEBase)
	assert.Equal(t, 2210.0, ten.CDTotal)
	assert.Equal(t, 2145.0, ten.AllowedMax)
	assert.Equal(t, 65.0, ten.Overage)
	assert.Equal(t, tolerance.StatusOver, ten.Status)
	pest := testutil.FindRow(res.Rows(), "CE-5")
	require.NotNil(t, pest)
	assert.Equal(t, "04 Pest Inspection Fee to Bugs Inc", pest.Envelope().Label)
	assert.Equal(t, tolerance.StatusReview, pest.Result().Status)

	ids := make([]string, 0, len(res.Exceptions))
	for _, e := range res.Exceptions {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{
		"A-2:ZERO_LINE_OVERAGE",
		"A-2:CURED_BY_LENDER",
		"CE-1:CURED_BY_LENDER",
		"CE-2:CURED_BY_LENDER",
		"CE-4:CURED_BY_LENDER",
		"CE-5:PROVIDER_OFF_LIST",
		"F-3:PER_DIEM_OUTLIER",
		"G-2:ESCROW_CUSHION_EXCEEDED",
		"H-1:PAYER_RECLASSIFIED",
		tolerance.TenPercentOverageID,
	}, ids)

	assert.Equal(t, 1427.12, res.TotalDelta)
	assert.Equal(t, CureSummary{
		ZeroTolerance: 99,
		TenPercent:    65,
		RequiredCure:  164,
		LenderCredits: 100,
		Shortfall:     64,
	}, res.Cure)
}

func TestFromDocuments_DiffSummary(t *testing.T) {
	le, cd := loadPair(t)

	res, err := New(nil).FromDocuments(cd, le, tolerance.DefaultRuleOptions(), nil)
	require.NoError(t, err)

	got := make(map[string]DiffType, len(res.Diff))
	for _, d := range res.Diff {
		got[d.ID] = d.Type
	}
	assert.Equal(t, map[string]DiffType{
		"A-2":  DiffIncrease,
		"CE-1": DiffIncrease,
		"CE-2": DiffIncrease,
		"CE-4": DiffIncrease,
		"CE-5": DiffNewOnCD,
		"F-1":  DiffMissingOnCD,
		"F-3":  DiffNewOnCD,
		"H-1":  DiffReclassifiedOffBorrower,
		"H-2":  DiffNewOnCD,
	}, got)

	for _, d := range res.Diff {
		switch d.ID {
		case "F-1":
			assert.Equal(t, -801.37, d.Difference)
		case "H-1":
			assert.Equal(t, fees.PayerSeller, d.ReclassifiedTo)
			require.NotNil(t, d.ReclassifiedAmount)
			assert.Equal(t, 450.0, *d.ReclassifiedAmount)
			assert.Equal(t, -450.0, d.Difference)
		}
	}
}

func TestFromDocuments_ExplicitCreditsAndOverrides(t *testing.T) {
	le, cd := loadPair(t)
	opts := tolerance.DefaultRuleOptions()
	opts.LenderCredits = 10

	res, err := New(nil).FromDocuments(le, cd, opts, tolerance.Overrides{"CE-5": true})
	require.NoError(t, err)

	assert.Equal(t, 10.0, res.Cure.LenderCredits)
	assert.Equal(t, 1950.0, res.TenPercent.LEBase)
	assert.Equal(t, 2360.0, res.TenPercent.CDTotal)
	assert.Equal(t, 2145.0, res.TenPercent.AllowedMax)
	assert.Equal(t, 215.0, res.TenPercent.Overage)
	for _, e := range res.Exceptions {
		assert.NotEqual(t, tolerance.FlagCuredByLender, e.Code)
	}
	assert.Empty(t, res.Warnings)
}

func TestFromDocuments_UnknownOverrideWarns(t *testing.T) {
	le, cd := loadPair(t)

	res, err := New(nil).FromDocuments(le, cd, tolerance.DefaultRuleOptions(), tolerance.Overrides{"CE-99": true, "A-1": false})
	require.NoError(t, err)

	assert.Equal(t, []string{
		`override "A-1" matches no ten percent fee`,
		`override "CE-99" matches no ten percent fee`,
	}, res.Warnings)
	assert.Equal(t, 65.0, res.TenPercent.Overage)
}

func TestFromDocuments_MissingDocument(t *testing.T) {
	le, _ := loadPair(t)

	_, err := New(nil).FromDocuments(le, nil, tolerance.DefaultRuleOptions(), nil)

	assert.True(t, errors.Is(err, ErrMissingDocument))
}

func TestFromMatchedFees(t *testing.T) {
	amount := testutil.Amount
	matched := []adapters.MatchedFee{
		{FeeName: "Origination Fee", Section: "A", ToleranceCategory: "zero", LEAmount: amount(1000), CDAmount: amount(1002), MatchConfidence: 1},
		{FeeName: "Title - Settlement Fee", Section: "C", ToleranceCategory: "ten_percent", LEAmount: amount(400), CDAmount: amount(500), MatchConfidence: 0.95, ChosenFromList: boolPtr(true)},
		{FeeName: "Title - Courier Fee", Section: "C", ToleranceCategory: "ten_percent", LEAmount: amount(300), CDAmount: amount(350), MatchConfidence: 0.95, ChosenFromList: boolPtr(true)},
		{FeeName: "Recording Fees", Section: "E", ToleranceCategory: "ten_percent", LEAmount: amount(300), CDAmount: amount(300), MatchConfidence: 0.99},
		{FeeName: "Empty", Section: "H", ToleranceCategory: "unlimited"},
	}

	res, err := New(nil).FromMatchedFees(matched, adapters.LoanContext{}, tolerance.DefaultRuleOptions(), nil)
	require.NoError(t, err)

	assert.Len(t, res.Rows(), 4)
	assert.Equal(t, 1.0, res.ZeroA.TotalCure)
	assert.Equal(t, 1000.0, res.TenPercent.LEBase)
	assert.Equal(t, 1150.0, res.TenPercent.CDTotal)
	assert.Equal(t, 50.0, res.TenPercent.Overage)
	assert.Equal(t, 51.0, res.Cure.RequiredCure)
	assert.Equal(t, 51.0, res.Cure.Shortfall)
	assert.Equal(t, 152.0, res.TotalDelta)
}

func TestRun(t *testing.T) {
	le, cd := loadPair(t)
	r := New(nil)

	_, err := r.Run(Request{}, tolerance.DefaultRuleOptions())
	assert.True(t, errors.Is(err, ErrNoInput))

	_, err = r.Run(Request{ClosingDisclosure: cd}, tolerance.DefaultRuleOptions())
	assert.True(t, errors.Is(err, ErrMissingDocument))

	res, err := r.Run(Request{LoanEstimate: le, ClosingDisclosure: cd}, tolerance.DefaultRuleOptions())
	require.NoError(t, err)
	assert.Equal(t, tolerance.StatusOver, res.TenPercent.Status)

	custom := &PartialOptions{ZeroThreshold: floatPtr(200)}
	res, err = r.Run(Request{LoanEstimate: le, ClosingDisclosure: cd, Options: custom}, tolerance.DefaultRuleOptions())
	require.NoError(t, err)
	assert.Equal(t, 0.0, res.ZeroA.TotalCure)
}

func TestRun_PartialOptionsKeepDefaults(t *testing.T) {
	var req Request
	require.NoError(t, json.Unmarshal([]byte(`{
  "options": {"lenderCredits": 5},
  "matched_fees": [
    {"fee_name": "Origination Fee", "section": "A", "tolerance_category": "zero", "le_amount": 1000, "cd_amount": 1000.50, "match_confidence": 1},
    {"fee_name": "Title - Settlement Fee", "section": "C", "tolerance_category": "ten_percent", "le_amount": 400, "cd_amount": 400, "match_confidence": 0.85, "chosen_from_list": true}
  ]
}`), &req))

	res, err := New(nil).Run(req, tolerance.DefaultRuleOptions())
	require.NoError(t, err)

	want := tolerance.DefaultRuleOptions()
	want.LenderCredits = 5
	assert.Equal(t, want, res.Options)

	require.Len(t, res.ZeroA.Rows, 1)
	assert.Equal(t, tolerance.StatusPass, res.ZeroA.Rows[0].Status)
	assert.Equal(t, 0.0, res.Cure.RequiredCure)

	require.Len(t, res.TenPercent.Rows, 1)
	assert.Equal(t, tolerance.StatusReview, res.TenPercent.Rows[0].Status)
	require.NotEmpty(t, res.TenPercent.Rows[0].Flags)
	assert.Equal(t, tolerance.FlagLowConfidence, res.TenPercent.Rows[0].Flags[0].Code)
}

func TestRun_LenderCredits(t *testing.T) {
	le, cd := loadPair(t)
	r := New(nil)

	tests := []struct {
		name     string
		options  *PartialOptions
		defaults float64
		credits  float64
	}{
		{"disclosed on CD", nil, 0, 100},
		{"explicit zero disables disclosed", &PartialOptions{LenderCredits: floatPtr(0)}, 0, 0},
		{"explicit amount", &PartialOptions{LenderCredits: floatPtr(300)}, 0, 300},
		{"configured default", nil, 250, 250},
		{"request beats default", &PartialOptions{LenderCredits: floatPtr(0)}, 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defaults := tolerance.DefaultRuleOptions()
			defaults.LenderCredits = tt.defaults

			res, err := r.Run(Request{LoanEstimate: le, ClosingDisclosure: cd, Options: tt.options}, defaults)
			require.NoError(t, err)
			assert.Equal(t, tt.credits, res.Cure.LenderCredits)
			assert.Equal(t, 164.0, res.Cure.RequiredCure)
		})
	}
}

func floatPtr(v float64) *float64 { return &v }

func TestRun_MatchedFeesTakeLoanTermsFromDocuments(t *testing.T) {
	_, cd := loadPair(t)
	cdAmount := 2500.0
	req := Request{
		ClosingDisclosure: cd,
		MatchedFees: []adapters.MatchedFee{{
			FeeName:           "Prepaid Interest",
			Section:           "F",
			ToleranceCategory: "unlimited",
			CDAmount:          &cdAmount,
			CDLabel:           "Prepaid Interest ($53.42 per day for 10 days @ 6.5%)",
		}},
	}

	res, err := New(nil).Run(req, tolerance.DefaultRuleOptions())
	require.NoError(t, err)

	require.Len(t, res.Unlimited.Rows, 1)
	row := res.Unlimited.Rows[0]
	require.NotNil(t, row.ExpectedInterest)
	assert.Equal(t, 534.25, *row.ExpectedInterest)
	assert.Equal(t, tolerance.StatusReview, row.Status)
}

func TestEvaluate_Idempotent(t *testing.T) {
	le, cd := loadPair(t)
	r := New(nil)

	first, err := r.FromDocuments(le, cd, tolerance.DefaultRuleOptions(), tolerance.Overrides{"CE-3": false})
	require.NoError(t, err)
	second, err := r.FromDocuments(le, cd, tolerance.DefaultRuleOptions(), tolerance.Overrides{"CE-3": false})
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
	assert.Equal(t, a, b)
}

func boolPtr(v bool) *bool { return &v }
