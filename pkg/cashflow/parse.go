// Package cashflow converts the comma-separated cash flow text entered by a
// user into the sequence consumed by finance.NPV.
package cashflow

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Separator delimits entries in a cash flow string.
const Separator = ","

// ErrInvalidCashFlow is matched by every ParseError.
var ErrInvalidCashFlow = errors.New("invalid cash flow")

// ParseError reports an entry that is not a number.
type ParseError struct {
	Position int // 1-based index among the comma-separated fields
	Entry    string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cash flow %d (%q) is not a number", e.Position, e.Entry)
}

// Unwrap exposes both the sentinel and the underlying strconv error.
func (e *ParseError) Unwrap() []error {
	return []error{ErrInvalidCashFlow, e.Err}
}

// Parse splits input on commas, skips blank entries and parses the rest as
// floats. Underscores between digits ("1_000") are accepted. The first
// malformed or out of range entry aborts parsing with a *ParseError.
func Parse(input string) ([]float64, error) {
	fields := strings.Split(input, Separator)
	flows := make([]float64, 0, len(fields))
	for i, field := range fields {
		entry := strings.TrimSpace(field)
		if entry == "" {
			continue
		}
		value, err := strconv.ParseFloat(stripDigitSeparators(entry), 64)
		if err != nil {
			return nil, &ParseError{Position: i + 1, Entry: entry, Err: err}
		}
		flows = append(flows, value)
	}
	return flows, nil
}

// stripDigitSeparators drops underscores that sit between two digits. Any
// other underscore is kept so that ParseFloat rejects the entry.
func stripDigitSeparators(entry string) string {
	if !strings.Contains(entry, "_") {
		return entry
	}
	var b strings.Builder
	for i := 0; i < len(entry); i++ {
		if entry[i] == '_' && i > 0 && i < len(entry)-1 && isDigit(entry[i-1]) && isDigit(entry[i+1]) {
			continue
		}
		b.WriteByte(entry[i])
	}
	return b.String()
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Format renders flows in the same form Parse accepts, e.g. "1000, 2000.5".
func Format(flows []float64) string {
	parts := make([]string, len(flows))
	for i, flow := range flows {
		parts[i] = strconv.FormatFloat(flow, 'f', -1, 64)
	}
	return strings.Join(parts, Separator+" ")
}
