// Package testutil provides common utility functions for testing.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/finance-models/internal/calculator"
)

// FindMetric finds a metric by name in the metrics slice.
// Returns a pointer to the metric if found, nil otherwise.
func FindMetric(metrics []calculator.Metric, name string) *calculator.Metric {
	for i := range metrics {
		if metrics[i].Name == name {
			return &metrics[i]
		}
	}
	return nil
}

// WriteTempFile writes contents to name inside a fresh temporary directory
// and returns the full path.
func WriteTempFile(t testing.TB, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0600); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
