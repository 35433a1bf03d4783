// Package testutils provides helpers shared by tests.
package testutils

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteEnvFile writes content to a new env file inside a test temp dir and returns its path.
func WriteEnvFile(tb testing.TB, content string) string {
	tb.Helper()

	name := filepath.Join(tb.TempDir(), "test.env")
	if err := os.WriteFile(name, []byte(content), 0o600); err != nil {
		tb.Fatalf("os.WriteFile(%q) error = %v, want nil", name, err)
	}
	return name
}
