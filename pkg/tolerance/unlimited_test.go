package tolerance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prepaidInterest(cd float64, days int) UnlimitedFee {
	return UnlimitedFee{
		Fee:          envelope("F-1", cd, cd),
		Bucket:       BucketF,
		PerDiemDays:  ptr(days),
		LoanAmount:   ptr(300000.0),
		InterestRate: ptr(6.5),
	}
}

func TestEvaluateUnlimited_PerDiem(t *testing.T) {
	tests := []struct {
		name  string
		fee   UnlimitedFee
		codes []FlagCode
	}{
		{"matches calculation", prepaidInterest(1068.49, 20), []FlagCode{FlagPerDiemOutlier}},
		{"within ten percent", prepaidInterest(750, 15), []FlagCode{}},
		{"far from calculation", prepaidInterest(2500, 20), []FlagCode{FlagPerDiemOutlier, FlagPerDiemInterestDeviation}},
		{"short period far off", prepaidInterest(100, 10), []FlagCode{FlagPerDiemInterestDeviation}},
		{"no amount on CD", prepaidInterest(0, 10), []FlagCode{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := EvaluateUnlimited([]UnlimitedFee{tt.fee}).Rows[0]

			assert.Equal(t, tt.codes, flagCodes(row.Flags))
			if len(tt.codes) > 0 {
				assert.Equal(t, StatusReview, row.Status)
			} else {
				assert.Equal(t, StatusPass, row.Status)
			}
		})
	}
}

func TestEvaluateUnlimited_PerDiemMessageCarriesBothFigures(t *testing.T) {
	row := EvaluateUnlimited([]UnlimitedFee{prepaidInterest(2500, 20)}).Rows[0]

	require.Len(t, row.Flags, 2)
	deviation := row.Flags[1]
	assert.Contains(t, deviation.Message(), "$2,500.00")
	assert.Contains(t, deviation.Message(), "$1,068.49")
	require.NotNil(t, row.ExpectedInterest)
	assert.Equal(t, 1068.49, *row.ExpectedInterest)
}

func TestEvaluateUnlimited_PerDiemWithoutLoanContext(t *testing.T) {
	f := UnlimitedFee{Fee: envelope("F-1", 500, 5000), Bucket: BucketF, PerDiemDays: ptr(10)}

	row := EvaluateUnlimited([]UnlimitedFee{f}).Rows[0]

	assert.Empty(t, row.Flags)
	assert.Nil(t, row.ExpectedInterest)
	assert.Equal(t, StatusPass, row.Status)
}

func TestEvaluateUnlimited_EscrowCushion(t *testing.T) {
	over := UnlimitedFee{Fee: envelope("G-1", 600, 600), Bucket: BucketG, EscrowMonths: ptr(3)}
	atCap := UnlimitedFee{Fee: envelope("G-2", 400, 400), Bucket: BucketG, EscrowMonths: ptr(2)}
	wrongBucket := UnlimitedFee{Fee: envelope("H-1", 600, 600), Bucket: BucketH, EscrowMonths: ptr(6)}

	res := EvaluateUnlimited([]UnlimitedFee{over, atCap, wrongBucket})

	assert.Equal(t, []FlagCode{FlagEscrowCushionExceeded}, flagCodes(res.Rows[0].Flags))
	assert.Equal(t, StatusReview, res.Rows[0].Status)
	assert.Empty(t, res.Rows[1].Flags)
	assert.Empty(t, res.Rows[2].Flags)
	assert.Equal(t, Counts{Pass: 2, Review: 1}, res.Counts)
}

func TestEvaluateUnlimited_Optionality(t *testing.T) {
	tests := []struct {
		name           string
		isOptional     *bool
		lenderRequired *bool
		flagged        bool
	}{
		{"required and not optional", ptr(false), ptr(true), true},
		{"required and optional", ptr(true), ptr(true), false},
		{"optionality unknown", nil, ptr(true), false},
		{"not required", ptr(false), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := UnlimitedFee{
				Fee:            envelope("H-1", 450, 450),
				Bucket:         BucketH,
				IsOptional:     tt.isOptional,
				LenderRequired: tt.lenderRequired,
			}

			row := EvaluateUnlimited([]UnlimitedFee{f}).Rows[0]

			assert.Equal(t, tt.flagged, len(row.Flags) == 1)
		})
	}
}

func TestEvaluateUnlimited_ReclassificationDoesNotChangeStatus(t *testing.T) {
	f := UnlimitedFee{Fee: envelope("H-1", 450, 0), Bucket: BucketH}
	f.CD.Other = ptr(450.0)

	row := EvaluateUnlimited([]UnlimitedFee{f}).Rows[0]

	assert.Equal(t, []FlagCode{FlagPayerReclassified}, flagCodes(row.Flags))
	assert.Equal(t, StatusPass, row.Status)
}
