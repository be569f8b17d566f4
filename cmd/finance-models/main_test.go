package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iwvelando/finance-models/internal/config"
	"github.com/iwvelando/finance-models/pkg/cashflow"
	"github.com/iwvelando/finance-models/pkg/finance"
	"github.com/iwvelando/finance-models/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env-file", ""}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name     string
		logging  config.LoggingConfig
		override string
		wantErr  bool
	}{
		{"Defaults", config.LoggingConfig{}, "", false},
		{"Console debug", config.LoggingConfig{Level: "debug", Format: "console"}, "", false},
		{"Override wins", config.LoggingConfig{Level: "bogus"}, "warn", false},
		{"Warning alias", config.LoggingConfig{Level: "warning"}, "", false},
		{"Invalid level", config.LoggingConfig{Level: "verbose"}, "", true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.logging, tt.override)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, logger)
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "finance.log")

	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync()
	assert.FileExists(t, path)
}

func TestCAPMCommand(t *testing.T) {
	out, err := execute(t, "capm")
	require.NoError(t, err)
	assert.Equal(t, "Expected Return: 9.20%\n", out)

	out, err = execute(t, "capm", "--risk-free-rate", "3", "--market-return", "9", "--beta", "1.5")
	require.NoError(t, err)
	assert.Equal(t, "Expected Return: 12.00%\n", out)
}

func TestWACCCommand(t *testing.T) {
	out, err := execute(t, "wacc")
	require.NoError(t, err)
	assert.Equal(t, "Weighted Average Cost of Capital: 7.83%\n", out)

	_, err = execute(t, "wacc", "--equity", "0", "--debt", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, finance.ErrDivisionByZero))
}

func TestFutureValueCommand(t *testing.T) {
	out, err := execute(t, "fv", "--present-value", "1000", "--rate", "5", "--years", "10")
	require.NoError(t, err)
	assert.Equal(t, "Future Value: $1,628.89\n", out)
}

func TestNPVCommand(t *testing.T) {
	out, err := execute(t, "npv")
	require.NoError(t, err)
	assert.Equal(t, "Net Present Value: $12,566.39\n", out)

	out, err = execute(t, "npv", "--cash-flows", "", "--discount-rate", "0")
	require.NoError(t, err)
	assert.Equal(t, "Net Present Value: $0.00\n", out)

	_, err = execute(t, "npv", "--cash-flows", "100, oops")
	var parseErr *cashflow.ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestFormulaCommandCSV(t *testing.T) {
	out, err := execute(t, "--output-format", "csv", "capm", "--beta", "0")
	require.NoError(t, err)
	assert.Equal(t, "Metric,Value\nCAPM Expected Return,0.02\n", out)
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := execute(t, "--output-format", "xml", "capm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected output format")
}

func TestReportCommand(t *testing.T) {
	out, err := execute(t, "--config", "../../test/test_config.yaml", "report")
	require.NoError(t, err)
	assert.Equal(t, "Metric,Value", strings.SplitN(out, "\n", 2)[0])
	assert.Contains(t, out, "CAPM Expected Return,0.12")
	assert.Contains(t, out, "WACC,0.09")

	out, err = execute(t, "--config", "../../test/test_config.yaml", "--output-format", "pretty", "report")
	require.NoError(t, err)
	assert.Contains(t, out, "Expected Return: 12.00%")
	assert.Contains(t, out, "Weighted Average Cost of Capital: 9.00%")
	assert.Contains(t, out, "Future Value: $7,012.76")
	assert.Contains(t, out, "Net Present Value: $493.56")
}

func TestReportCommandErrors(t *testing.T) {
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "report")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")

	path := testutil.WriteTempFile(t, "config.yaml", `logging:
  level: error
inputs:
  equityValue: 0
  debtValue: 0
`)
	_, err = execute(t, "--config", path, "report")
	require.Error(t, err)
	assert.True(t, errors.Is(err, finance.ErrDivisionByZero))
}

func TestLoadEnvFile(t *testing.T) {
	assert.NoError(t, loadEnvFile(""))
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := testutil.WriteTempFile(t, ".env", "FINANCE_MODELS_TEST_VALUE=42\n")
	t.Setenv("FINANCE_MODELS_TEST_VALUE", "7")
	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "7", os.Getenv("FINANCE_MODELS_TEST_VALUE"))
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, version+"\n", out)
}
