// Package constants provides shared constants for the trid-reconcile application.
package constants

// Currency constants
const (
	// DecimalPlaces is the number of decimal places currency is rounded to
	DecimalPlaces = 2

	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// DaysPerYear is the day count used for per-diem interest
	DaysPerYear = 365
)

// Tolerance rule defaults
const (
	// DefaultZeroThreshold is the de minimis cushion applied to zero-tolerance fees
	DefaultZeroThreshold = 1.00

	// DefaultReviewConfidenceFloor is the match confidence below which a fee is
	// treated as low confidence and excluded from the ten-percent group
	DefaultReviewConfidenceFloor = 0.80

	// DefaultReviewConfidenceCeil is the match confidence below which a fee is
	// flagged for review
	DefaultReviewConfidenceCeil = 0.93

	// DefaultLenderCredits is the lender credit applied when none is supplied
	DefaultLenderCredits = 0.0

	// TenPercentCapMultiplier bounds the aggregate CD total against the LE base
	TenPercentCapMultiplier = 1.10

	// WhitelistConfidenceFloor is the confidence below which a pre-matched fee
	// without an explicit provider-list answer is assumed off-list
	WhitelistConfidenceFloor = 0.6
)

// Unlimited-tolerance heuristics
const (
	// MaxPerDiemDays is the prepaid interest period beyond which a row is an outlier
	MaxPerDiemDays = 15

	// PerDiemDeviationRatio is the allowed relative gap between disclosed and
	// computed prepaid interest
	PerDiemDeviationRatio = 0.10

	// MaxEscrowCushionMonths is the regulatory escrow cushion cap
	MaxEscrowCushionMonths = 2
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum request body size (1 MB)
	DefaultMaxUploadSizeBytes int64 = 1024 * 1024
)
