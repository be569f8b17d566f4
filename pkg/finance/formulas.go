// Package finance implements the closed-form valuation formulas used by the
// calculator: CAPM, WACC, future value and net present value.
//
// Every function is pure. Rates are fractions (0.05 for 5%), never percentages.
package finance

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivisionByZero is returned when a formula would divide by zero, either
// because WACC has no capital at all or because NPV discounts at exactly -100%.
var ErrDivisionByZero = errors.New("division by zero")

// CAPM returns the expected return of an asset under the Capital Asset Pricing
// Model: riskFree + beta*(marketReturn-riskFree).
func CAPM(riskFree, marketReturn, beta float64) float64 {
	return riskFree + beta*(marketReturn-riskFree)
}

// WACC returns the weighted average cost of capital. The cost of debt is
// reduced by the tax shield (1-taxRate). Inputs are not range checked.
func WACC(equityValue, debtValue, costOfEquity, costOfDebt, taxRate float64) (float64, error) {
	total := equityValue + debtValue
	if total == 0 {
		return 0, fmt.Errorf("wacc: total capital is zero: %w", ErrDivisionByZero)
	}
	return (equityValue/total)*costOfEquity + (debtValue/total)*costOfDebt*(1-taxRate), nil
}

// FutureValue compounds presentValue at rate for the given number of periods.
// Negative periods discount instead of compounding.
func FutureValue(presentValue, rate float64, periods int) float64 {
	return presentValue * math.Pow(1+rate, float64(periods))
}

// NPV discounts each cash flow by (1+discountRate)^i where i starts at 1 for the
// first element, and returns the sum. An empty slice yields 0 for any rate.
func NPV(discountRate float64, cashFlows []float64) (float64, error) {
	if len(cashFlows) == 0 {
		return 0, nil
	}
	base := 1 + discountRate
	if base == 0 {
		return 0, fmt.Errorf("npv: discount rate of %v: %w", discountRate, ErrDivisionByZero)
	}

	total := 0.0
	factor := 1.0
	for _, cf := range cashFlows {
		factor *= base
		total += cf / factor
	}
	return total, nil
}
