// Package events implements the pluggable event bus from spec §6: every
// event the core can emit, as a typed variant, delivered through a
// Handler interface with a no-op default so embedding a chorus core never
// requires wiring up observability to get useful results.
//
// Grounded on internal/debug's env-gated per-subsystem logging — that
// package stays as the log-level plumbing; this package adds the typed
// event layer above it, the way a teacher repo's simple Printf-style
// debug logging gets promoted to structured events once a second
// consumer (a store writer, an MCP notification stream) needs the same
// information a log line would otherwise only carry as text.
package events

import (
	"time"

	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/types"
)

// Kind is the closed set of event types spec §6 "Events" names.
type Kind string

const (
	KindFileAnalysisComplete    Kind = "file_analysis_complete"
	KindPatternDetected         Kind = "pattern_detected"
	KindViolationDetected       Kind = "violation_detected"
	KindViolationFixed          Kind = "violation_fixed"
	KindViolationDismissed      Kind = "violation_dismissed"
	KindDetectorAutoDisabled    Kind = "detector_auto_disabled"
	KindAnalysisCancelled       Kind = "analysis_cancelled"
	KindConventionDiscovered    Kind = "convention_discovered"
	KindConventionCategoryChange Kind = "convention_category_changed"
	KindConventionTrendChanged  Kind = "convention_trend_changed"
	KindContestedDetected       Kind = "contested_detected"
	KindContestedResolved       Kind = "contested_resolved"
	KindContractDiscovered      Kind = "contract_discovered"
	KindContractVerified        Kind = "contract_verified"
	KindBreakingChangeDetected  Kind = "breaking_change_detected"
	KindCryptoFindingEmitted    Kind = "crypto_finding_emitted"
)

// Event is one occurrence the core reports through a Handler. Fields
// outside an event's own Kind are left zero; Handler implementations
// switch on Kind to know which are populated.
type Event struct {
	Kind      Kind
	Timestamp time.Time

	// File-scoped events.
	FileID   types.FileID
	FilePath string

	// Pattern/violation events.
	PatternID   string
	DetectorID  string
	ViolationID string
	Severity    model.Severity
	Message     string

	// Convention events.
	ConventionKey   string
	ConventionValue string
	Category        string
	Trend           string

	// Contested-pair events.
	ValueA string
	ValueB string

	// Contract events.
	ContractID string
	Paradigm   string
	ChangeType string

	// Crypto events.
	CryptoCategory string

	// Cancellation.
	Revision    uint64
	NewRevision uint64

	// Detector health.
	PanicCount int
}

// Handler receives every Event the core emits. Implementations must
// return promptly — a slow handler blocks the orchestrator phase that
// raised the event, since delivery is synchronous per spec §5's "no phase
// holds locks across a yield point" (a handler that wants async work
// should hand the event to its own queue and return).
type Handler interface {
	Handle(e Event)
}

// noopHandler discards every event; the default when a caller doesn't
// wire one up.
type noopHandler struct{}

func (noopHandler) Handle(Event) {}

// NoOp is the shared no-op Handler instance.
var NoOp Handler = noopHandler{}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(Event)

// Handle implements Handler.
func (f HandlerFunc) Handle(e Event) { f(e) }

// Bus fans one emitted Event out to every registered Handler. A Bus with
// no handlers behaves like NoOp.
type Bus struct {
	handlers []Handler
}

// NewBus returns a Bus with no handlers registered.
func NewBus() *Bus { return &Bus{} }

// Register adds h to the fan-out list.
func (b *Bus) Register(h Handler) {
	if h == nil {
		return
	}
	b.handlers = append(b.handlers, h)
}

// Emit stamps e.Timestamp if unset and delivers it to every registered
// handler in registration order.
func (b *Bus) Emit(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	for _, h := range b.handlers {
		h.Handle(e)
	}
}
