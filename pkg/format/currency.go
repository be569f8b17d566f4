// Package format renders computed results for people: currency amounts and
// percentages.
package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/iwvelando/finance-models/pkg/constants"
	"github.com/iwvelando/finance-models/pkg/mathutil"
	"github.com/shopspring/decimal"
)

const centsPlaces = 2

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(-math.MaxInt64)
)

// Currency returns a currency string with a dollar sign and thousands separators (e.g., "-$1,234.56").
func Currency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return fmt.Sprintf("%v", amount)
	}
	cents, ok := toCents(amount)
	if !ok {
		return grouped(amount, "$")
	}
	return money.New(cents, constants.CurrencyCode).Display()
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if !mathutil.IsFinite(amount) {
		return fmt.Sprintf("%v", amount)
	}
	cents, ok := toCents(amount)
	if !ok {
		return grouped(amount, "")
	}
	formatter := money.GetCurrency(constants.CurrencyCode).Formatter()
	formatter.Grapheme = ""
	return formatter.Format(cents)
}

// toCents rounds amount to whole cents. ok is false when the cents do not fit
// in the int64 that go-money stores.
func toCents(amount float64) (int64, bool) {
	cents := decimal.NewFromFloat(amount).Round(centsPlaces).Shift(centsPlaces)
	if cents.GreaterThan(maxCents) || cents.LessThan(minCents) {
		return 0, false
	}
	return cents.IntPart(), true
}

// grouped renders amounts beyond go-money's range as "-$1,234.56" using exact
// decimal digits.
func grouped(amount float64, symbol string) string {
	d := decimal.NewFromFloat(amount).Round(centsPlaces)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(centsPlaces)
	whole, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	return sign + symbol + b.String() + "." + frac
}

// Percent renders a fractional rate as a percentage with two decimals
// (0.0765 becomes "7.65%").
func Percent(fraction float64) string {
	if !mathutil.IsFinite(fraction) {
		return fmt.Sprintf("%v", fraction)
	}
	return decimal.NewFromFloat(fraction).
		Mul(decimal.NewFromFloat(constants.PercentageMultiplier)).
		StringFixed(2) + "%"
}
