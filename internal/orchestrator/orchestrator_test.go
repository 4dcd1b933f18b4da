package orchestrator

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/events"
	"github.com/standardbeagle/chorus/internal/store"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Project:    config.Project{Root: t.TempDir()},
		Confidence: config.Confidence{PriorAlpha: 1, PriorBeta: 1, CredibleInterval: 0.95, MinObservations: 5},
		Convention: config.Convention{UniversalThreshold: 0.95, ContestedMargin: 0.10, MinFiles: 1, MinOccurrences: 1},
		Contract:   config.Contract{EnabledParadigms: []string{"rest", "graphql", "grpc", "websocket", "event_driven", "typed_procedure"}},
	}
}

func TestNewWiresEverySubsystem(t *testing.T) {
	st, err := store.Open(config.Store{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	o, err := New(testConfig(t), st, nil)
	require.NoError(t, err)
	require.NotNil(t, o.engine)
	require.NotNil(t, o.patterns)
	require.NotNil(t, o.convention)
	require.NotNil(t, o.scorer)
	require.NotNil(t, o.contracts)
	require.NotNil(t, o.crypto)
	require.NotNil(t, o.resolve)
	require.NotNil(t, o.agg)
}

func TestNewAcceptsNilBus(t *testing.T) {
	st, err := store.Open(config.Store{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	o, err := New(testConfig(t), st, nil)
	require.NoError(t, err)
	require.NotNil(t, o.bus)
}

func TestBumpAdvancesRevisionMonotonically(t *testing.T) {
	st, err := store.Open(config.Store{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	o, err := New(testConfig(t), st, events.NewBus())
	require.NoError(t, err)

	first := o.Bump()
	second := o.Bump()
	require.Greater(t, second, first)
}
