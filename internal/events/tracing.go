package events

import (
	"time"

	"github.com/standardbeagle/chorus/internal/debug"
)

// Span wraps one phase of the pipeline (spec §4.1's four per-file phases)
// or one L2 subsystem's aggregation step (convention finalisation,
// posterior update, contract matching, store flush) with field-level
// attributes, written through internal/debug's per-subsystem log
// functions once the span closes — generalized from
// internal/mcp/profiling_integration.go's phase-timing structure in the
// teacher, which times named phases and logs a one-line summary on
// completion.
type Span struct {
	name      string
	subsystem string
	start     time.Time
	fields    map[string]any
}

// logFunc is the per-subsystem debug.Log* signature every span writes
// through at Finish.
type logFunc func(format string, args ...interface{})

var subsystemLoggers = map[string]logFunc{
	"indexing":   debug.LogIndexing,
	"search":     debug.LogSearch,
	"mcp":        debug.LogMCP,
	"convention": debug.LogConvention,
	"confidence": debug.LogConfidence,
	"contract":   debug.LogContract,
	"crypto":     debug.LogCrypto,
	"store":      debug.LogStore,
}

// StartSpan opens a span named name under subsystem's debug log channel.
func StartSpan(subsystem, name string) *Span {
	return &Span{name: name, subsystem: subsystem, start: time.Now(), fields: make(map[string]any)}
}

// SetField attaches one attribute (file counts, finding counts) reported
// when the span finishes.
func (s *Span) SetField(key string, value any) {
	s.fields[key] = value
}

// Finish records the span's duration and logs a summary line through the
// subsystem's debug.Log* function, falling back to the generic
// component-tagged logger for a subsystem with no dedicated one.
func (s *Span) Finish() time.Duration {
	elapsed := time.Since(s.start)
	if logger, ok := subsystemLoggers[s.subsystem]; ok {
		logger("span %s finished in %s fields=%v", s.name, elapsed, s.fields)
	} else {
		debug.Log(s.subsystem, "span %s finished in %s fields=%v", s.name, elapsed, s.fields)
	}
	return elapsed
}
