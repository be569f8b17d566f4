package validation

import (
	"fmt"

	"github.com/iwvelando/finance-models/pkg/constants"
)

// ValidateOutputFormat accepts the report renderings the CLI can write:
// pretty lines or the Metric,Value CSV table.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	default:
		return fmt.Errorf("expected output format of %s or %s, got %q",
			constants.OutputFormatPretty, constants.OutputFormatCSV, format)
	}
}
