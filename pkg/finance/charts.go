package finance

import "fmt"

// CurvePoint is one sample of expected return at a given beta.
type CurvePoint struct {
	Beta           float64 `json:"beta"`
	ExpectedReturn float64 `json:"expectedReturn"`
}

// CapitalWeights holds the share of equity and debt in total capital.
type CapitalWeights struct {
	Equity float64 `json:"equity"`
	Debt   float64 `json:"debt"`
}

// Linspace returns n evenly spaced values from start to stop inclusive.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	values := make([]float64, n)
	if n == 1 {
		values[0] = start
		return values
	}
	step := (stop - start) / float64(n-1)
	for i := range values {
		values[i] = start + float64(i)*step
	}
	// Pin the last sample so accumulated rounding never overshoots.
	values[n-1] = stop
	return values
}

// CAPMCurve samples the security market line between minBeta and maxBeta.
func CAPMCurve(riskFree, marketReturn, minBeta, maxBeta float64, points int) []CurvePoint {
	betas := Linspace(minBeta, maxBeta, points)
	curve := make([]CurvePoint, len(betas))
	for i, beta := range betas {
		curve[i] = CurvePoint{Beta: beta, ExpectedReturn: CAPM(riskFree, marketReturn, beta)}
	}
	return curve
}

// CapitalStructure splits total capital into equity and debt proportions.
func CapitalStructure(equityValue, debtValue float64) (CapitalWeights, error) {
	total := equityValue + debtValue
	if total == 0 {
		return CapitalWeights{}, fmt.Errorf("capital structure: total capital is zero: %w", ErrDivisionByZero)
	}
	return CapitalWeights{Equity: equityValue / total, Debt: debtValue / total}, nil
}
