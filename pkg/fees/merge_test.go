package fees

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amount(v float64) *float64 { return &v }

func TestMerge_PairsMatchingKeys(t *testing.T) {
	le := []LineItem{
		{Label: "01 Appraisal Fee to John Smith Appraisers", Amount: amount(500)},
	}
	cd := []LineItem{
		{Label: "02 appraisal fee to Smith & Co", Amount: amount(525), SubLabel: SubLabelBorrowerAtClosing},
	}

	merged := Merge(le, cd)

	require.Len(t, merged, 1)
	assert.Equal(t, "appraisal fee", merged[0].Key)
	assert.Equal(t, "01 Appraisal Fee to John Smith Appraisers", merged[0].DisplayLabel)
	assert.True(t, merged[0].OnLE())
	assert.True(t, merged[0].OnCD())
	assert.Equal(t, 500.0, merged[0].LESplit().Borrower)
	assert.Equal(t, 525.0, merged[0].CDSplit().Borrower)
}

func TestMerge_DifferentKeysNeverCollapse(t *testing.T) {
	le := []LineItem{{Label: "Credit Report Fee", Amount: amount(30)}}
	cd := []LineItem{{Label: "Credit Reporting", Amount: amount(35)}}

	merged := Merge(le, cd)

	require.Len(t, merged, 2)
	assert.True(t, merged[0].OnLE())
	assert.False(t, merged[0].OnCD())
	assert.False(t, merged[1].OnLE())
	assert.True(t, merged[1].OnCD())
	assert.Equal(t, "Credit Reporting", merged[1].DisplayLabel)
}

func TestMerge_OrderIsLEThenCDOnly(t *testing.T) {
	le := []LineItem{{Label: "B Fee"}, {Label: "A Fee"}}
	cd := []LineItem{{Label: "Z Fee"}, {Label: "A Fee"}, {Label: "C Fee"}}

	merged := Merge(le, cd)

	keys := make([]string, 0, len(merged))
	for _, m := range merged {
		keys = append(keys, m.Key)
	}
	assert.Equal(t, []string{"b fee", "a fee", "z fee", "c fee"}, keys)
}

func TestMerge_EmptyLabelsAreNeverPaired(t *testing.T) {
	le := []LineItem{{Label: "", Amount: amount(10)}}
	cd := []LineItem{{Label: "  ", Amount: amount(12)}}

	merged := Merge(le, cd)

	require.Len(t, merged, 2)
	assert.Empty(t, merged[0].Key)
	assert.Empty(t, merged[1].Key)
	assert.False(t, merged[0].OnCD())
	assert.False(t, merged[1].OnLE())
}

func TestMerge_FoldsPayerColumnsOfOneFee(t *testing.T) {
	cd := []LineItem{
		{Label: "Title - Owner's Policy", Amount: amount(800), SubLabel: SubLabelBorrowerAtClosing},
		{Label: "Title - Owner's Policy", Amount: amount(400), SubLabel: SubLabelSellerAtClosing},
	}

	merged := Merge(nil, cd)

	require.Len(t, merged, 1)
	split := merged[0].CDSplit()
	assert.Equal(t, 800.0, split.Borrower)
	require.NotNil(t, split.Seller)
	assert.Equal(t, 400.0, *split.Seller)
	assert.Nil(t, split.Other)
}

func TestMerge_EmptyInputs(t *testing.T) {
	assert.Empty(t, Merge(nil, nil))
}
