package tolerance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evaluateAll(opts RuleOptions, overrides Overrides) (ZeroResult, ZeroResult, TenPercentResult, UnlimitedResult) {
	zeroA := EvaluateZero([]ZeroFee{
		{Fee: envelope("A-1", 1000, 1002)},
		{Fee: envelope("A-2", 500, 500)},
	}, BucketA, opts)
	zeroB := EvaluateZero([]ZeroFee{
		{Fee: envelope("B-1", 300, 300), PermittedToShop: true},
	}, BucketB, opts)
	ten := EvaluateTenPercent([]TenPercentFee{
		onList("CE-1", 400, 500),
		onList("CE-2", 600, 650),
		{Fee: envelope("CE-3", 100, 100), ProviderType: ProviderShoppable, MatchConfidence: 0.85, OnWhitelist: true},
	}, overrides, opts)
	unlimited := EvaluateUnlimited([]UnlimitedFee{
		{Fee: envelope("G-1", 600, 600), Bucket: BucketG, EscrowMonths: ptr(3)},
		prepaidInterest(2500, 20),
	})
	return zeroA, zeroB, ten, unlimited
}

func TestCollectExceptions_Order(t *testing.T) {
	zeroA, zeroB, ten, unlimited := evaluateAll(DefaultRuleOptions(), nil)

	exceptions := CollectExceptions(zeroA, zeroB, ten, unlimited)

	ids := make([]string, 0, len(exceptions))
	for _, e := range exceptions {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{
		"A-1:ZERO_LINE_OVERAGE",
		"B-1:SECTION_PLACEMENT_MISMATCH",
		"CE-3:LOW_CONFIDENCE",
		"G-1:ESCROW_CUSHION_EXCEEDED",
		"F-1:PER_DIEM_OUTLIER",
		"F-1:PER_DIEM_INTEREST_DEVIATION",
		TenPercentOverageID,
	}, ids)
}

func TestCollectExceptions_Fields(t *testing.T) {
	zeroA, zeroB, ten, unlimited := evaluateAll(DefaultRuleOptions(), nil)

	exceptions := CollectExceptions(zeroA, zeroB, ten, unlimited)

	require.NotEmpty(t, exceptions)
	first := exceptions[0]
	assert.Equal(t, BucketA, first.Section)
	assert.Equal(t, "A-1", first.Label)
	assert.Equal(t, SeverityError, first.Severity)
	assert.Equal(t, 1.00, first.Amount)

	escrow := exceptions[3]
	assert.Equal(t, BucketG, escrow.Section)
	assert.Equal(t, 0.0, escrow.Amount)

	overage := exceptions[len(exceptions)-1]
	assert.Equal(t, BucketCE, overage.Section)
	assert.Equal(t, 40.0, overage.Amount)
	assert.Equal(t, SeverityError, overage.Severity)
	assert.Contains(t, overage.Message, "$1,250.00")
	assert.Contains(t, overage.Message, "$1,210.00")
}

func TestCollectExceptions_NoOverageEntryWhenPassing(t *testing.T) {
	ten := EvaluateTenPercent([]TenPercentFee{onList("CE-1", 100, 105)}, nil, DefaultRuleOptions())

	exceptions := CollectExceptions(ZeroResult{}, ZeroResult{}, ten, UnlimitedResult{})

	assert.Empty(t, exceptions)
	assert.NotNil(t, exceptions)
}

func TestEvaluation_Idempotent(t *testing.T) {
	opts := DefaultRuleOptions()
	opts.LenderCredits = 50
	overrides := Overrides{"CE-3": false}

	run := func() []byte {
		zeroA, zeroB, ten, unlimited := evaluateAll(opts, overrides)
		out, err := json.Marshal(struct {
			ZeroA      ZeroResult
			ZeroB      ZeroResult
			Ten        TenPercentResult
			Unlimited  UnlimitedResult
			Exceptions []Exception
		}{zeroA, zeroB, ten, unlimited, CollectExceptions(zeroA, zeroB, ten, unlimited)})
		require.NoError(t, err)
		return out
	}

	assert.Equal(t, string(run()), string(run()))
}
