package tolerance

import "github.com/iwvelando/trid-reconcile/pkg/constants"

// RuleOptions tunes the evaluators. The zero value is not meaningful; start
// from DefaultRuleOptions.
type RuleOptions struct {
	ZeroThreshold         float64 `json:"zeroThreshold" yaml:"zeroThreshold" mapstructure:"zeroThreshold"`
	ReviewConfidenceFloor float64 `json:"reviewConfidenceFloor" yaml:"reviewConfidenceFloor" mapstructure:"reviewConfidenceFloor"`
	ReviewConfidenceCeil  float64 `json:"reviewConfidenceCeil" yaml:"reviewConfidenceCeil" mapstructure:"reviewConfidenceCeil"`
	LenderCredits         float64 `json:"lenderCredits" yaml:"lenderCredits" mapstructure:"lenderCredits"`
}

// DefaultRuleOptions returns the documented defaults.
func DefaultRuleOptions() RuleOptions {
	return RuleOptions{
		ZeroThreshold:         constants.DefaultZeroThreshold,
		ReviewConfidenceFloor: constants.DefaultReviewConfidenceFloor,
		ReviewConfidenceCeil:  constants.DefaultReviewConfidenceCeil,
		LenderCredits:         constants.DefaultLenderCredits,
	}
}

// Overrides forces ten-percent group inclusion for fee ids, taking the place
// of the row's own whitelist state.
type Overrides map[string]bool

func (o Overrides) lookup(id string) (bool, bool) {
	if o == nil {
		return false, false
	}
	v, ok := o[id]
	return v, ok
}
