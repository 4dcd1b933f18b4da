package main

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/config"
	chorerrors "github.com/standardbeagle/chorus/internal/errors"
)

func TestExitCodeMapsKnownErrorTypes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"cancellation", chorerrors.NewCancellationError("analyze", 1, 2), 1},
		{"config", chorerrors.NewConfigError("root", "/tmp", nil), 2},
		{"storage", chorerrors.NewStorageError("write", false, nil), 3},
		{"multi", chorerrors.NewMultiError([]error{chorerrors.NewStorageError("x", false, nil)}), 4},
		{"unmapped", chorerrors.NewParseError(0, "a.go", 1, 1, "", nil), 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, exitCode(c.err))
		})
	}
}

func TestValidateConfigFlagsLowLimits(t *testing.T) {
	cfg := &config.Config{
		Performance: config.Performance{MaxMemoryMB: 10},
		Index:       config.Index{MaxTotalSizeMB: 1},
		Confidence:  config.Confidence{MinObservations: 0},
		Contract:    config.Contract{EnabledParadigms: nil},
	}
	warnings := validateConfig(cfg)
	require.Len(t, warnings, 4)
}

func TestValidateConfigHealthyConfigHasNoWarnings(t *testing.T) {
	cfg := &config.Config{
		Performance: config.Performance{MaxMemoryMB: 500},
		Index:       config.Index{MaxTotalSizeMB: 500},
		Confidence:  config.Confidence{MinObservations: 5},
		Contract:    config.Contract{EnabledParadigms: []string{"rest"}},
	}
	require.Empty(t, validateConfig(cfg))
}
