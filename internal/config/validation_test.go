package config

import (
	"strings"
	"testing"
)

func TestInputsValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Inputs)
		wantError string
	}{
		{
			name:   "Defaults are valid",
			mutate: func(*Inputs) {},
		},
		{
			name:   "Zero rates are valid",
			mutate: func(in *Inputs) { in.RiskFreeRate, in.TaxRate, in.DiscountRate = 0, 0, 0 },
		},
		{
			name:   "Negative cash flows are valid",
			mutate: func(in *Inputs) { in.CashFlows = "-5000, 1000" },
		},
		{
			name:      "Negative risk-free rate",
			mutate:    func(in *Inputs) { in.RiskFreeRate = -1 },
			wantError: "riskFreeRate",
		},
		{
			name:      "Negative beta",
			mutate:    func(in *Inputs) { in.Beta = -0.2 },
			wantError: "beta",
		},
		{
			name:      "Negative debt value",
			mutate:    func(in *Inputs) { in.DebtValue = -1 },
			wantError: "debtValue",
		},
		{
			name:      "Zero years",
			mutate:    func(in *Inputs) { in.Years = 0 },
			wantError: "years must be at least 1",
		},
		{
			name:      "Negative discount rate",
			mutate:    func(in *Inputs) { in.DiscountRate = -100 },
			wantError: "discountRate",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := DefaultInputs()
			tt.mutate(&inputs)
			err := inputs.Validate()
			if tt.wantError == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error containing %q", tt.wantError)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Validate() error %q missing %q", err.Error(), tt.wantError)
			}
		})
	}
}

func TestValidateConfigurationWarnings(t *testing.T) {
	conf := DefaultConfiguration()
	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Errorf("expected no warnings for defaults, got %v", warnings)
	}

	conf.Inputs.MarketReturn = 1
	conf.Inputs.TaxRate = 120
	conf.Inputs.EquityValue = 0
	conf.Inputs.DebtValue = 0

	warnings := conf.ValidateConfiguration()
	if len(warnings) != 3 {
		t.Fatalf("expected 3 warnings, got %d: %v", len(warnings), warnings)
	}
	t.Logf("Found %d warnings:", len(warnings))
	for _, warning := range warnings {
		t.Logf("  - %s", warning)
	}
}
