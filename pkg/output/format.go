// Package output provides utilities for formatting and displaying calculator results.
package output

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/iwvelando/finance-models/internal/calculator"
	"github.com/iwvelando/finance-models/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CSVHeader is the header row of the exported report.
var CSVHeader = []string{"Metric", "Value"}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(report *calculator.Report) {
	_ = WritePretty(os.Stdout, report)
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report *calculator.Report) {
	_ = WriteCSV(os.Stdout, report)
}

// WritePretty writes the result lines shown after each calculation.
func WritePretty(w io.Writer, report *calculator.Report) error {
	p := message.NewPrinter(language.English)
	params := report.Params

	lines := []string{
		"--- Financial model results ---",
		"Expected Return: " + format.Percent(report.CAPM),
		"Weighted Average Cost of Capital: " + format.Percent(report.WACC),
		"Future Value: " + format.Currency(report.FutureValue),
		"Net Present Value: " + format.Currency(report.NPV),
		"",
		fmt.Sprintf("Capital structure: equity %s (%s), debt %s (%s)",
			format.NumericCurrency(params.EquityValue), format.Percent(report.Structure.Equity),
			format.NumericCurrency(params.DebtValue), format.Percent(report.Structure.Debt)),
		p.Sprintf("Compounded over %d years, discounted over %d cash flows",
			params.Years, len(params.CashFlows)),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// WriteCSV writes the two-column Metric,Value table in the fixed row order.
func WriteCSV(w io.Writer, report *calculator.Report) error {
	return WriteMetricsCSV(w, report.Metrics())
}

// WriteMetricsCSV writes metrics as a Metric,Value table in the given order.
func WriteMetricsCSV(w io.Writer, metrics []calculator.Metric) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CSVHeader); err != nil {
		return err
	}
	for _, metric := range metrics {
		if err := writer.Write([]string{metric.Name, FormatValue(metric.Value)}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV report as a string.
func CsvString(report *calculator.Report) string {
	var buf bytes.Buffer
	_ = WriteCSV(&buf, report)
	return buf.String()
}

// FormatValue renders a value with the fewest digits that round-trip exactly.
func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
