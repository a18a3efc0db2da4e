package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Cents", 0.5, "$0.50"},
		{"Thousands separator", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.56, "-$1,234.56"},
		{"Rounds half away from zero", 2.005, "$2.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumericCurrency(t *testing.T) {
	if got := NumericCurrency(1100); got != "1,100.00" {
		t.Errorf("NumericCurrency(1100) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(0.125); got != "12.5%" {
		t.Errorf("Percent(0.125) = %q", got)
	}
}
