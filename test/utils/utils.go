package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// PollUntilTimeout calls f every interval until it returns true. The test
// fails if that does not happen within timeout.
func PollUntilTimeout(t *testing.T, interval, timeout time.Duration, f func() bool) {
	t.Helper()
	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		if f() {
			return
		}
		select {
		case <-ticker.C:
		case <-deadline.C:
			t.Fatal("Timeout")
		}
	}
}

func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
