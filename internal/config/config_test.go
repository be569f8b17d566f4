package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-models/pkg/constants"
)

func TestLoadConfiguration(t *testing.T) {
	tests := []struct {
		name       string
		configPath string
		wantError  bool
	}{
		{
			name:       "Non-existent config file",
			configPath: "nonexistent.yaml",
			wantError:  true,
		},
		{
			name:       "Test configuration",
			configPath: "../../test/test_config.yaml",
			wantError:  false,
		},
		{
			name:       "Example configuration",
			configPath: "../../" + constants.ExampleConfigFile,
			wantError:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfiguration(tt.configPath)
			if tt.wantError {
				if err == nil {
					t.Errorf("LoadConfiguration() expected error but got none")
				}
				return
			}
			if err != nil {
				t.Errorf("LoadConfiguration() error = %v", err)
				return
			}
			if config == nil {
				t.Errorf("LoadConfiguration() returned nil config")
			}
		})
	}
}

func TestLoadConfigurationStructure(t *testing.T) {
	config, err := LoadConfiguration("../../test/test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	expected := Inputs{
		RiskFreeRate: 3,
		MarketReturn: 9,
		Beta:         1.5,
		EquityValue:  600000,
		DebtValue:    400000,
		CostOfEquity: 12,
		CostOfDebt:   6,
		TaxRate:      25,
		PresentValue: 5000,
		RateOfReturn: 7,
		Years:        5,
		DiscountRate: 8,
		CashFlows:    "-1000, 500, 600, 700",
	}
	if config.Inputs != expected {
		t.Errorf("Inputs = %+v, expected %+v", config.Inputs, expected)
	}

	if config.Logging.Level != "warn" {
		t.Errorf("Expected logging level warn, got %q", config.Logging.Level)
	}
	if config.Logging.Format != "console" {
		t.Errorf("Expected logging format console, got %q", config.Logging.Format)
	}
	if config.Output.Format != constants.OutputFormatCSV {
		t.Errorf("Expected output format csv, got %q", config.Output.Format)
	}
}

func TestLoadConfigurationExampleMatchesDefaults(t *testing.T) {
	config, err := LoadConfiguration("../../" + constants.ExampleConfigFile)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Inputs != DefaultInputs() {
		t.Errorf("example inputs %+v differ from defaults %+v", config.Inputs, DefaultInputs())
	}
}

func TestLoadConfigurationPartialUsesDefaults(t *testing.T) {
	path := writeConfig(t, `inputs:
  beta: 0.8
  years: 3
`)

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	want := DefaultInputs()
	want.Beta = 0.8
	want.Years = 3
	if config.Inputs != want {
		t.Errorf("Inputs = %+v, expected %+v", config.Inputs, want)
	}
	if config.Logging.Level != "" || config.Output.Format != "" {
		t.Errorf("expected empty logging/output, got %+v %+v", config.Logging, config.Output)
	}
}

func TestLoadConfigurationEnvironmentOverride(t *testing.T) {
	path := writeConfig(t, `inputs:
  beta: 0.8
`)
	t.Setenv("FINANCE_MODELS_INPUTS_BETA", "1.75")
	t.Setenv("FINANCE_MODELS_INPUTS_YEARS", "20")

	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if config.Inputs.Beta != 1.75 {
		t.Errorf("expected env override for beta, got %v", config.Inputs.Beta)
	}
	if config.Inputs.Years != 20 {
		t.Errorf("expected env override for years, got %v", config.Inputs.Years)
	}
}

func TestLoadConfigurationFromReader(t *testing.T) {
	config, err := LoadConfigurationFromReader(strings.NewReader(`inputs:
  discountRate: 10
  cashFlows: "110"
output:
  format: pretty
`))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if config.Inputs.DiscountRate != 10 {
		t.Errorf("expected discount rate 10, got %v", config.Inputs.DiscountRate)
	}
	if config.Inputs.CashFlows != "110" {
		t.Errorf("expected cash flows 110, got %q", config.Inputs.CashFlows)
	}
	if config.Inputs.RiskFreeRate != constants.DefaultRiskFreeRate {
		t.Errorf("expected default risk-free rate, got %v", config.Inputs.RiskFreeRate)
	}

	if _, err := LoadConfigurationFromReader(strings.NewReader("inputs: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestLoadConfigurationInvalidType(t *testing.T) {
	path := writeConfig(t, `inputs:
  years: many
`)
	if _, err := LoadConfiguration(path); err == nil {
		t.Error("expected decode error for non-numeric years")
	}
}

func TestCashFlowValues(t *testing.T) {
	inputs := DefaultInputs()
	flows, err := inputs.CashFlowValues()
	if err != nil {
		t.Fatalf("CashFlowValues() error = %v", err)
	}
	want := []float64{1000, 2000, 3000, 4000, 5000}
	if len(flows) != len(want) {
		t.Fatalf("expected %d flows, got %d", len(want), len(flows))
	}
	for i := range want {
		if math.Abs(flows[i]-want[i]) > 1e-9 {
			t.Errorf("flow %d = %v, expected %v", i, flows[i], want[i])
		}
	}

	inputs.CashFlows = "100, ten"
	if _, err := inputs.CashFlowValues(); err == nil {
		t.Error("expected parse error")
	}
}

func TestConfigurationYAMLRoundTrip(t *testing.T) {
	original := DefaultConfiguration()
	original.Inputs.Beta = 0.9
	original.Output.Format = constants.OutputFormatCSV

	data, err := original.YAML()
	if err != nil {
		t.Fatalf("YAML() error = %v", err)
	}

	loaded, err := LoadConfigurationFromReader(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("LoadConfigurationFromReader() error = %v", err)
	}
	if loaded.Inputs != original.Inputs {
		t.Errorf("round trip inputs = %+v, expected %+v", loaded.Inputs, original.Inputs)
	}
	if loaded.Output.Format != constants.OutputFormatCSV {
		t.Errorf("round trip output format = %q", loaded.Output.Format)
	}
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp config: %v", err)
	}
	return path
}
