package scan

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain ensures no goroutines leak across scan package tests, most
// importantly Watcher's Run loop.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
