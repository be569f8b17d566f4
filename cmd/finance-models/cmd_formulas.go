package main

import (
	"fmt"

	"github.com/iwvelando/finance-models/internal/calculator"
	"github.com/iwvelando/finance-models/pkg/cashflow"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/finance"
	"github.com/iwvelando/finance-models/pkg/format"
	"github.com/iwvelando/finance-models/pkg/mathutil"
	"github.com/iwvelando/finance-models/pkg/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Rates on the command line are percentages, as on the web form.

func newCAPMCmd(opts *rootOptions) *cobra.Command {
	var riskFree, marketReturn, beta float64

	cmd := &cobra.Command{
		Use:   "capm",
		Short: "Expected return from the Capital Asset Pricing Model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := finance.CAPM(
				mathutil.PercentToFraction(riskFree),
				mathutil.PercentToFraction(marketReturn),
				beta,
			)
			return writeMetric(cmd, opts, "Expected Return", calculator.Metric{Name: constants.MetricCAPM, Value: result},
				zap.Float64("riskFreeRate", riskFree),
				zap.Float64("marketReturn", marketReturn),
				zap.Float64("beta", beta),
			)
		},
	}

	cmd.Flags().Float64Var(&riskFree, "risk-free-rate", constants.DefaultRiskFreeRate, "risk-free rate (%)")
	cmd.Flags().Float64Var(&marketReturn, "market-return", constants.DefaultMarketReturn, "expected market return (%)")
	cmd.Flags().Float64Var(&beta, "beta", constants.DefaultBeta, "asset beta")
	return cmd
}

func newWACCCmd(opts *rootOptions) *cobra.Command {
	var equity, debt, costOfEquity, costOfDebt, taxRate float64

	cmd := &cobra.Command{
		Use:   "wacc",
		Short: "Weighted average cost of capital",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := finance.WACC(
				equity,
				debt,
				mathutil.PercentToFraction(costOfEquity),
				mathutil.PercentToFraction(costOfDebt),
				mathutil.PercentToFraction(taxRate),
			)
			if err != nil {
				return fmt.Errorf("failed to compute %s: %w", constants.MetricWACC, err)
			}
			return writeMetric(cmd, opts, "Weighted Average Cost of Capital", calculator.Metric{Name: constants.MetricWACC, Value: result},
				zap.Float64("equityValue", equity),
				zap.Float64("debtValue", debt),
			)
		},
	}

	cmd.Flags().Float64Var(&equity, "equity", constants.DefaultEquityValue, "market value of equity")
	cmd.Flags().Float64Var(&debt, "debt", constants.DefaultDebtValue, "market value of debt")
	cmd.Flags().Float64Var(&costOfEquity, "cost-of-equity", constants.DefaultCostOfEquity, "cost of equity (%)")
	cmd.Flags().Float64Var(&costOfDebt, "cost-of-debt", constants.DefaultCostOfDebt, "pre-tax cost of debt (%)")
	cmd.Flags().Float64Var(&taxRate, "tax-rate", constants.DefaultTaxRate, "corporate tax rate (%)")
	return cmd
}

func newFutureValueCmd(opts *rootOptions) *cobra.Command {
	var presentValue, rate float64
	var years int

	cmd := &cobra.Command{
		Use:   "fv",
		Short: "Future value of a present amount under annual compounding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result := finance.FutureValue(presentValue, mathutil.PercentToFraction(rate), years)
			return writeMetric(cmd, opts, "Future Value", calculator.Metric{Name: constants.MetricFutureValue, Value: result},
				zap.Float64("presentValue", presentValue),
				zap.Float64("rate", rate),
				zap.Int("years", years),
			)
		},
	}

	cmd.Flags().Float64Var(&presentValue, "present-value", constants.DefaultPresentValue, "present value")
	cmd.Flags().Float64Var(&rate, "rate", constants.DefaultRateOfReturn, "annual rate of return (%)")
	cmd.Flags().IntVar(&years, "years", constants.DefaultYears, "number of years")
	return cmd
}

func newNPVCmd(opts *rootOptions) *cobra.Command {
	var rate float64
	var flows string

	cmd := &cobra.Command{
		Use:   "npv",
		Short: "Net present value of a series of end-of-period cash flows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			values, err := cashflow.Parse(flows)
			if err != nil {
				return err
			}
			result, err := finance.NPV(mathutil.PercentToFraction(rate), values)
			if err != nil {
				return fmt.Errorf("failed to compute %s: %w", constants.MetricNPV, err)
			}
			return writeMetric(cmd, opts, "Net Present Value", calculator.Metric{Name: constants.MetricNPV, Value: result},
				zap.Float64("discountRate", rate),
				zap.Int("cashFlows", len(values)),
			)
		},
	}

	cmd.Flags().Float64Var(&rate, "discount-rate", constants.DefaultDiscountRate, "discount rate (%)")
	cmd.Flags().StringVar(&flows, "cash-flows", constants.DefaultCashFlowInput, "comma-separated cash flows, first at the end of period 1")
	return cmd
}

// writeMetric prints a single result in the selected output format.
func writeMetric(cmd *cobra.Command, opts *rootOptions, label string, metric calculator.Metric, fields ...zap.Field) error {
	outputFormat, err := resolveOutputFormat("", opts.outputFormat)
	if err != nil {
		return err
	}

	logger, err := commandLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()
	logger.Debug("computed "+metric.Name, append(fields,
		zap.String("op", cmd.Name()),
		zap.Float64("result", metric.Value),
	)...)

	w := cmd.OutOrStdout()
	if outputFormat == constants.OutputFormatCSV {
		return output.WriteMetricsCSV(w, []calculator.Metric{metric})
	}

	display := format.Currency(metric.Value)
	if metric.Name == constants.MetricCAPM || metric.Name == constants.MetricWACC {
		display = format.Percent(metric.Value)
	}
	_, err = fmt.Fprintf(w, "%s: %s\n", label, display)
	return err
}
