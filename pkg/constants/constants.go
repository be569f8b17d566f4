// Package constants provides shared constants for the finance-models application.
package constants

// Financial constants
const (
	// PercentageMultiplier converts between fractional rates and percentages
	PercentageMultiplier = 100.0

	// DecimalPrecision is the precision for currency rounding (2 decimal places)
	DecimalPrecision = 100

	// CurrencyCode is the ISO code used when rendering monetary results
	CurrencyCode = "USD"
)

// Form defaults, expressed the way a user enters them (rates in percent).
const (
	DefaultRiskFreeRate  = 2.0
	DefaultMarketReturn  = 8.0
	DefaultBeta          = 1.2
	DefaultEquityValue   = 1_000_000.0
	DefaultDebtValue     = 500_000.0
	DefaultCostOfEquity  = 10.0
	DefaultCostOfDebt    = 5.0
	DefaultTaxRate       = 30.0
	DefaultPresentValue  = 1000.0
	DefaultRateOfReturn  = 5.0
	DefaultYears         = 10
	DefaultDiscountRate  = 5.0
	DefaultCashFlowInput = "1000, 2000, 3000, 4000, 5000"
)

// Chart constants
const (
	// CAPMCurveMinBeta is the lowest beta plotted on the expected return curve
	CAPMCurveMinBeta = 0.0

	// CAPMCurveMaxBeta is the highest beta plotted on the expected return curve
	CAPMCurveMaxBeta = 2.0

	// CAPMCurvePoints is the number of samples along the expected return curve
	CAPMCurvePoints = 100
)

// Report constants
const (
	// ReportFileName is the suggested file name for the downloadable report
	ReportFileName = "financial_report.csv"

	// MetricCAPM labels the CAPM expected return row
	MetricCAPM = "CAPM Expected Return"

	// MetricWACC labels the WACC row
	MetricWACC = "WACC"

	// MetricFutureValue labels the future value row
	MetricFutureValue = "Future Value"

	// MetricNPV labels the net present value row
	MetricNPV = "NPV"
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default configuration file name
	DefaultConfigFile = "config.yaml"

	// ExampleConfigFile is the example configuration file name
	ExampleConfigFile = "config.yaml.example"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix prefixes environment variable overrides, e.g. FINANCE_MODELS_INPUTS_BETA
	EnvPrefix = "FINANCE_MODELS"

	// DefaultEnvFile is loaded, when present, before reading configuration
	DefaultEnvFile = ".env"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the web UI
	DefaultServerAddress = ":8080"

	// DefaultMaxBodySizeBytes is the default maximum request body size (64 KB)
	DefaultMaxBodySizeBytes int64 = 64 * 1024

	// DefaultRateLimitRPS is the sustained per-client API request rate; 0 disables limiting
	DefaultRateLimitRPS = 10.0

	// DefaultRateLimitBurst is the number of API requests a client may make at once
	DefaultRateLimitBurst = 20
)

// Validation constants
const (
	// CurrencyTolerance is the tolerance for currency comparisons (1 cent)
	CurrencyTolerance = 0.01

	// RateTolerance is the tolerance for comparing fractional rates (0.0001%)
	RateTolerance = 1e-6
)
