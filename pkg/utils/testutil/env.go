package testutil

import (
	"os"
	"strings"
	"testing"
)

// GetEnvOrSkip returns the value of the environment variable. If not set, skip the test.
func GetEnvOrSkip(t *testing.T, key string) string {
	t.Helper()
	return GetEnvsOrSkip(t, key)[0]
}

// GetEnvsOrSkip returns values of keys in order, skipping the test unless every one is set.
// Integration tests of external backends are gated on it.
func GetEnvsOrSkip(t *testing.T, keys ...string) []string {
	t.Helper()

	values := make([]string, len(keys))
	var missing []string
	for i, key := range keys {
		values[i] = os.Getenv(key)
		if values[i] == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		t.Skipf("%s not set, skipping test", strings.Join(missing, ", "))
	}
	return values
}
