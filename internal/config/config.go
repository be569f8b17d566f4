// Package config defines the data structures related to configuration and
// includes functions for loading the config and checking calculator inputs.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-models/pkg/cashflow"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/validation"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Configuration holds all configuration for finance-models.
type Configuration struct {
	Inputs  Inputs        `yaml:"inputs" json:"inputs" mapstructure:"inputs"`
	Logging LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" mapstructure:"logging"`
	Output  OutputConfig  `yaml:"output,omitempty" json:"output,omitempty" mapstructure:"output"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty" json:"level,omitempty" mapstructure:"level"`                // debug, info, warn, error
	Format     string `yaml:"format,omitempty" json:"format,omitempty" mapstructure:"format"`             // json, console
	OutputFile string `yaml:"outputFile,omitempty" json:"outputFile,omitempty" mapstructure:"outputFile"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty" json:"format,omitempty" mapstructure:"format"` // pretty, csv
}

// Inputs holds the calculator form values. Rates are percentages (5 means
// 5%), the way a user types them; the calculator converts them to fractions.
type Inputs struct {
	// CAPM
	RiskFreeRate float64 `yaml:"riskFreeRate" json:"riskFreeRate" mapstructure:"riskFreeRate" validate:"gte=0"`
	MarketReturn float64 `yaml:"marketReturn" json:"marketReturn" mapstructure:"marketReturn" validate:"gte=0"`
	Beta         float64 `yaml:"beta" json:"beta" mapstructure:"beta" validate:"gte=0"`

	// WACC
	EquityValue  float64 `yaml:"equityValue" json:"equityValue" mapstructure:"equityValue" validate:"gte=0"`
	DebtValue    float64 `yaml:"debtValue" json:"debtValue" mapstructure:"debtValue" validate:"gte=0"`
	CostOfEquity float64 `yaml:"costOfEquity" json:"costOfEquity" mapstructure:"costOfEquity" validate:"gte=0"`
	CostOfDebt   float64 `yaml:"costOfDebt" json:"costOfDebt" mapstructure:"costOfDebt" validate:"gte=0"`
	TaxRate      float64 `yaml:"taxRate" json:"taxRate" mapstructure:"taxRate" validate:"gte=0"`

	// Future value
	PresentValue float64 `yaml:"presentValue" json:"presentValue" mapstructure:"presentValue" validate:"gte=0"`
	RateOfReturn float64 `yaml:"rateOfReturn" json:"rateOfReturn" mapstructure:"rateOfReturn" validate:"gte=0"`
	Years        int     `yaml:"years" json:"years" mapstructure:"years" validate:"gte=1"`

	// NPV
	DiscountRate float64 `yaml:"discountRate" json:"discountRate" mapstructure:"discountRate" validate:"gte=0"`
	CashFlows    string  `yaml:"cashFlows" json:"cashFlows" mapstructure:"cashFlows"`
}

// DefaultInputs returns the values the calculator form starts with.
func DefaultInputs() Inputs {
	return Inputs{
		RiskFreeRate: constants.DefaultRiskFreeRate,
		MarketReturn: constants.DefaultMarketReturn,
		Beta:         constants.DefaultBeta,
		EquityValue:  constants.DefaultEquityValue,
		DebtValue:    constants.DefaultDebtValue,
		CostOfEquity: constants.DefaultCostOfEquity,
		CostOfDebt:   constants.DefaultCostOfDebt,
		TaxRate:      constants.DefaultTaxRate,
		PresentValue: constants.DefaultPresentValue,
		RateOfReturn: constants.DefaultRateOfReturn,
		Years:        constants.DefaultYears,
		DiscountRate: constants.DefaultDiscountRate,
		CashFlows:    constants.DefaultCashFlowInput,
	}
}

// Validate applies the basic numeric range checks of the input form: no
// negative rates or amounts, and at least one year of compounding.
func (in Inputs) Validate() error {
	return validation.Struct(in)
}

// CashFlowValues parses the comma-separated cash flow text.
func (in Inputs) CashFlowValues() ([]float64, error) {
	return cashflow.Parse(in.CashFlows)
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there. Missing input fields take their form defaults and
// FINANCE_MODELS_* environment variables override file values.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads YAML configuration from r with the same
// defaults and overrides as LoadConfiguration.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := newViper()

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	return decode(v)
}

// DefaultConfiguration returns a configuration holding only defaults.
func DefaultConfiguration() *Configuration {
	return &Configuration{Inputs: DefaultInputs()}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Registering every key lets AutomaticEnv see overrides for fields the
	// file leaves out.
	defaults := DefaultInputs()
	v.SetDefault("inputs.riskFreeRate", defaults.RiskFreeRate)
	v.SetDefault("inputs.marketReturn", defaults.MarketReturn)
	v.SetDefault("inputs.beta", defaults.Beta)
	v.SetDefault("inputs.equityValue", defaults.EquityValue)
	v.SetDefault("inputs.debtValue", defaults.DebtValue)
	v.SetDefault("inputs.costOfEquity", defaults.CostOfEquity)
	v.SetDefault("inputs.costOfDebt", defaults.CostOfDebt)
	v.SetDefault("inputs.taxRate", defaults.TaxRate)
	v.SetDefault("inputs.presentValue", defaults.PresentValue)
	v.SetDefault("inputs.rateOfReturn", defaults.RateOfReturn)
	v.SetDefault("inputs.years", defaults.Years)
	v.SetDefault("inputs.discountRate", defaults.DiscountRate)
	v.SetDefault("inputs.cashFlows", defaults.CashFlows)
	v.SetDefault("logging.level", "")
	v.SetDefault("logging.format", "")
	v.SetDefault("logging.outputFile", "")
	v.SetDefault("output.format", "")
	return v
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}
	return &configuration, nil
}

// ValidateConfiguration returns warnings for inputs that are accepted but
// produce unconventional results.
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string
	for _, warning := range []string{
		validation.ValidateMarketPremium(c.Inputs.RiskFreeRate, c.Inputs.MarketReturn),
		validation.ValidateCapital(c.Inputs.EquityValue, c.Inputs.DebtValue),
		validation.ValidateTaxRate(c.Inputs.TaxRate),
	} {
		if warning != "" {
			warnings = append(warnings, warning)
		}
	}
	return warnings
}

// YAML serializes the configuration in the layout LoadConfiguration reads.
func (c *Configuration) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return out, nil
}
