package validation

import (
	"errors"
	"fmt"

	"github.com/iwvelando/trid-reconcile/pkg/tolerance"
)

// ErrInvalidOptions is returned for rule options the evaluators cannot use.
var ErrInvalidOptions = errors.New("invalid rule options")

// ValidateRuleOptions rejects negative thresholds or credits and confidence
// bands outside [0, 1] or with the floor above the ceiling.
func ValidateRuleOptions(opts tolerance.RuleOptions) error {
	if opts.ZeroThreshold < 0 {
		return fmt.Errorf("%w: zeroThreshold must not be negative, got %.2f", ErrInvalidOptions, opts.ZeroThreshold)
	}
	if opts.LenderCredits < 0 {
		return fmt.Errorf("%w: lenderCredits must not be negative, got %.2f", ErrInvalidOptions, opts.LenderCredits)
	}
	if !unitInterval(opts.ReviewConfidenceFloor) {
		return fmt.Errorf("%w: reviewConfidenceFloor must be within [0, 1], got %g", ErrInvalidOptions, opts.ReviewConfidenceFloor)
	}
	if !unitInterval(opts.ReviewConfidenceCeil) {
		return fmt.Errorf("%w: reviewConfidenceCeil must be within [0, 1], got %g", ErrInvalidOptions, opts.ReviewConfidenceCeil)
	}
	if opts.ReviewConfidenceFloor > opts.ReviewConfidenceCeil {
		return fmt.Errorf("%w: reviewConfidenceFloor %g exceeds reviewConfidenceCeil %g",
			ErrInvalidOptions, opts.ReviewConfidenceFloor, opts.ReviewConfidenceCeil)
	}
	return nil
}

func unitInterval(v float64) bool {
	return v >= 0 && v <= 1
}
