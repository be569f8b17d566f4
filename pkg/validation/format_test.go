package validation

import (
	"strings"
	"testing"

	"github.com/iwvelando/finance-models/pkg/constants"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		format    string
		expectErr bool
	}{
		{constants.OutputFormatPretty, false},
		{constants.OutputFormatCSV, false},
		{"json", true},
		{"", true},
		{"CSV", true},
		{" pretty ", true},
	}

	for _, tt := range tests {
		t.Run("format="+tt.format, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format)
			if tt.expectErr && err == nil {
				t.Fatalf("ValidateOutputFormat(%q) expected error", tt.format)
			}
			if !tt.expectErr && err != nil {
				t.Fatalf("ValidateOutputFormat(%q) unexpected error: %v", tt.format, err)
			}
		})
	}
}

func TestValidateOutputFormatMessage(t *testing.T) {
	err := ValidateOutputFormat("xlsx")
	if err == nil {
		t.Fatal("expected error for xlsx")
	}
	for _, fragment := range []string{"pretty", "csv", "xlsx"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("error %q should mention %q", err.Error(), fragment)
		}
	}
}
