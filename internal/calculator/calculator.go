// Package calculator defines the data structures related to a computed report
// and includes functions for running a calculator session.
package calculator

import (
	"fmt"

	"github.com/iwvelando/finance-models/internal/config"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/finance"
	"github.com/iwvelando/finance-models/pkg/mathutil"
	"go.uber.org/zap"
)

// Params holds the inputs actually handed to the formulas, with every rate
// converted to a fraction.
type Params struct {
	RiskFreeRate float64   `json:"riskFreeRate"`
	MarketReturn float64   `json:"marketReturn"`
	Beta         float64   `json:"beta"`
	EquityValue  float64   `json:"equityValue"`
	DebtValue    float64   `json:"debtValue"`
	CostOfEquity float64   `json:"costOfEquity"`
	CostOfDebt   float64   `json:"costOfDebt"`
	TaxRate      float64   `json:"taxRate"`
	PresentValue float64   `json:"presentValue"`
	RateOfReturn float64   `json:"rateOfReturn"`
	Years        int       `json:"years"`
	DiscountRate float64   `json:"discountRate"`
	CashFlows    []float64 `json:"cashFlows"`
}

// Report holds every result of a calculator session.
type Report struct {
	CAPM        float64                `json:"capm"`
	WACC        float64                `json:"wacc"`
	FutureValue float64                `json:"futureValue"`
	NPV         float64                `json:"npv"`
	Params      Params                 `json:"params"`
	Curve       []finance.CurvePoint   `json:"curve"`
	Structure   finance.CapitalWeights `json:"structure"`
}

// Metric is one row of the exported report.
type Metric struct {
	Name  string  `json:"metric"`
	Value float64 `json:"value"`
}

// Metrics returns the report rows in export order: CAPM, WACC, future value, NPV.
func (r *Report) Metrics() []Metric {
	return []Metric{
		{Name: constants.MetricCAPM, Value: r.CAPM},
		{Name: constants.MetricWACC, Value: r.WACC},
		{Name: constants.MetricFutureValue, Value: r.FutureValue},
		{Name: constants.MetricNPV, Value: r.NPV},
	}
}

// NewParams validates inputs and converts them to formula parameters.
func NewParams(inputs config.Inputs) (Params, error) {
	if err := inputs.Validate(); err != nil {
		return Params{}, err
	}

	flows, err := inputs.CashFlowValues()
	if err != nil {
		return Params{}, err
	}

	return Params{
		RiskFreeRate: mathutil.PercentToFraction(inputs.RiskFreeRate),
		MarketReturn: mathutil.PercentToFraction(inputs.MarketReturn),
		Beta:         inputs.Beta,
		EquityValue:  inputs.EquityValue,
		DebtValue:    inputs.DebtValue,
		CostOfEquity: mathutil.PercentToFraction(inputs.CostOfEquity),
		CostOfDebt:   mathutil.PercentToFraction(inputs.CostOfDebt),
		TaxRate:      mathutil.PercentToFraction(inputs.TaxRate),
		PresentValue: inputs.PresentValue,
		RateOfReturn: mathutil.PercentToFraction(inputs.RateOfReturn),
		Years:        inputs.Years,
		DiscountRate: mathutil.PercentToFraction(inputs.DiscountRate),
		CashFlows:    flows,
	}, nil
}

// Compute validates the inputs, evaluates all four formulas and assembles the
// chart series.
func Compute(logger *zap.Logger, inputs config.Inputs) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	params, err := NewParams(inputs)
	if err != nil {
		return nil, err
	}
	return ComputeParams(logger, params)
}

// ComputeParams evaluates the formulas for already converted parameters.
func ComputeParams(logger *zap.Logger, params Params) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	report := &Report{Params: params}

	report.CAPM = finance.CAPM(params.RiskFreeRate, params.MarketReturn, params.Beta)
	logger.Debug("computed CAPM expected return",
		zap.String("op", "calculator.Compute"),
		zap.Float64("riskFreeRate", params.RiskFreeRate),
		zap.Float64("marketReturn", params.MarketReturn),
		zap.Float64("beta", params.Beta),
		zap.Float64("result", report.CAPM),
	)

	wacc, err := finance.WACC(params.EquityValue, params.DebtValue, params.CostOfEquity, params.CostOfDebt, params.TaxRate)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", constants.MetricWACC, err)
	}
	report.WACC = wacc
	logger.Debug("computed WACC",
		zap.String("op", "calculator.Compute"),
		zap.Float64("equityValue", params.EquityValue),
		zap.Float64("debtValue", params.DebtValue),
		zap.Float64("result", report.WACC),
	)

	report.FutureValue = finance.FutureValue(params.PresentValue, params.RateOfReturn, params.Years)
	logger.Debug("computed future value",
		zap.String("op", "calculator.Compute"),
		zap.Float64("presentValue", params.PresentValue),
		zap.Float64("rate", params.RateOfReturn),
		zap.Int("years", params.Years),
		zap.Float64("result", report.FutureValue),
		zap.Float64("resultRounded", mathutil.Round(report.FutureValue)),
	)

	npv, err := finance.NPV(params.DiscountRate, params.CashFlows)
	if err != nil {
		return nil, fmt.Errorf("failed to compute %s: %w", constants.MetricNPV, err)
	}
	report.NPV = npv
	logger.Debug("computed NPV",
		zap.String("op", "calculator.Compute"),
		zap.Float64("discountRate", params.DiscountRate),
		zap.Int("cashFlows", len(params.CashFlows)),
		zap.Float64("result", report.NPV),
		zap.Float64("resultRounded", mathutil.Round(report.NPV)),
	)

	report.Curve = finance.CAPMCurve(params.RiskFreeRate, params.MarketReturn,
		constants.CAPMCurveMinBeta, constants.CAPMCurveMaxBeta, constants.CAPMCurvePoints)

	// WACC already rejected zero total capital.
	report.Structure, err = finance.CapitalStructure(params.EquityValue, params.DebtValue)
	if err != nil {
		return nil, fmt.Errorf("failed to compute capital structure: %w", err)
	}

	return report, nil
}
