// Package chorus is the external-interface surface spec §6 describes: the
// language-neutral command/query entry points (analyze, analyze_changed,
// query_findings, query_contracts, query_conventions, record_feedback,
// parse_spec, compare_contracts) a host — an editor/IDE front-end, a CLI
// driver, a CI runner — calls into to run the core and read its results.
// Everything under internal/ stays internal; this package is the one
// doorway a host embeds chorus through, the same role pkg/pathutil plays
// for path conversion but scoped to the whole engine rather than one
// utility.
package chorus

import (
	"context"
	"sync/atomic"

	"github.com/standardbeagle/chorus/internal/aggregate"
	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/confidence"
	"github.com/standardbeagle/chorus/internal/contract"
	"github.com/standardbeagle/chorus/internal/convention"
	"github.com/standardbeagle/chorus/internal/events"
	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/orchestrator"
	"github.com/standardbeagle/chorus/internal/store"

	"github.com/google/jsonschema-go/jsonschema"
)

// Engine is one project root's long-lived analysis session: one store
// connection, one orchestrator, one monotonic scan counter. Safe for
// repeated Analyze/AnalyzeChanged calls; not safe for concurrent calls
// against the same Engine (the orchestrator's revision/cancellation
// protocol assumes one in-flight run at a time per spec §5).
type Engine struct {
	cfg   *config.Config
	st    *store.Store
	bus   *events.Bus
	orch  *orchestrator.Orchestrator
	scans int64
}

// Open builds an Engine for cfg.Project.Root, opening (or creating) the
// on-disk store at cfg.Store.Path and wiring every L1/L2/L3 subsystem
// through internal/orchestrator. bus may be nil; a caller that wants
// tracing/event observation should build one with events.NewBus() and
// register handlers before passing it in.
func Open(cfg *config.Config, bus *events.Bus) (*Engine, error) {
	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	if bus == nil {
		bus = events.NewBus()
	}
	orch, err := orchestrator.New(cfg, st, bus)
	if err != nil {
		st.Close()
		return nil, err
	}
	return &Engine{cfg: cfg, st: st, bus: bus, orch: orch}, nil
}

// Close releases the Engine's store connections. Safe to call once.
func (e *Engine) Close() error { return e.st.Close() }

// nextScanID returns a fresh, monotonically increasing scan identifier —
// the core's command/query entry points own this counter (spec §6), not
// the store, since a store may back more than one Engine instance.
func (e *Engine) nextScanID() int64 { return atomic.AddInt64(&e.scans, 1) }

// Analyze runs spec §6's analyze(root, options) entry point: a full scan
// of every file under the project root the Engine was opened with.
func (e *Engine) Analyze(ctx context.Context) (*aggregate.Result, error) {
	return e.orch.Analyze(ctx, e.nextScanID())
}

// AnalyzeChanged runs spec §6's analyze_changed(root, changed_files,
// options) entry point: an incremental re-scan restricted to changedPaths.
func (e *Engine) AnalyzeChanged(ctx context.Context, changedPaths []string) (*aggregate.Result, error) {
	return e.orch.AnalyzeChanged(ctx, e.nextScanID(), changedPaths)
}

// QueryFindings runs spec §6's query_findings(filter) entry point: a
// paginated, indexed lookup against the store's persisted detections.
func (e *Engine) QueryFindings(filter store.Filter) ([]store.Finding, string, error) {
	return e.st.QueryFindings(filter)
}

// QueryContracts runs spec §6's query_contracts(filter) entry point.
func (e *Engine) QueryContracts(filter store.Filter) ([]contract.Contract, string, error) {
	return e.st.QueryContracts(filter)
}

// QueryConventions runs spec §6's query_conventions(filter) entry point.
func (e *Engine) QueryConventions(filter store.Filter) ([]convention.LearnedConvention, string, error) {
	return e.st.QueryConventions(filter)
}

// QueryViolations returns the convention violations enforcement has
// persisted, the query surface over Analyze/AnalyzeChanged's
// aggregate.Result.Violations for callers that only hold a store handle.
func (e *Engine) QueryViolations(filter store.Filter) ([]model.Violation, string, error) {
	return e.st.QueryViolations(filter)
}

// FeedbackTargetKind distinguishes which posterior record_feedback nudges
// — spec §3's Feedback event targets "a pattern/convention/detector",
// which in this store map to two distinct tables (pattern_posteriors vs.
// convention_feedback), so the caller names which one it means.
type FeedbackTargetKind string

const (
	// FeedbackTargetPattern nudges a pattern's project-scoped posterior.
	FeedbackTargetPattern FeedbackTargetKind = "pattern"
	// FeedbackTargetConvention appends a convention_feedback audit row.
	FeedbackTargetConvention FeedbackTargetKind = "convention"
)

// FeedbackTarget identifies what record_feedback's action applies to.
type FeedbackTarget struct {
	Kind FeedbackTargetKind

	// Populated when Kind == FeedbackTargetPattern.
	PatternID string
	Scope     string

	// Populated when Kind == FeedbackTargetConvention.
	ID         string
	DetectorID string
	ConvKey    string
	Value      string
}

// RecordFeedback runs spec §6's record_feedback(target, action, reason)
// entry point. action is one of the Feedback event's enumerated actions
// (spec §3): Fixed, Dismissed, Approved, NotUseful, Useful, Ignored.
func (e *Engine) RecordFeedback(target FeedbackTarget, action string, reason string) error {
	scanID := e.nextScanID()
	switch target.Kind {
	case FeedbackTargetPattern:
		event, err := feedbackEventFor(action)
		if err != nil {
			return err
		}
		return e.st.ApplyFeedback(target.PatternID, target.Scope, event, scanID)
	default:
		return e.st.RecordConventionFeedback(target.ID, target.DetectorID, target.ConvKey, target.Value, action, reason)
	}
}

func feedbackEventFor(action string) (confidence.FeedbackEvent, error) {
	switch action {
	case "Fixed":
		return confidence.FeedbackFixed, nil
	case "Useful":
		return confidence.FeedbackUseful, nil
	case "Ignored":
		return confidence.FeedbackIgnored, nil
	case "Approved":
		return confidence.FeedbackApprovedDeviation, nil
	case "NotUseful":
		return confidence.FeedbackNotUseful, nil
	case "Dismissed":
		return confidence.FeedbackIgnored, nil
	default:
		return "", &unknownFeedbackActionError{action: action}
	}
}

type unknownFeedbackActionError struct{ action string }

func (e *unknownFeedbackActionError) Error() string {
	return "chorus: unknown feedback action " + e.action
}

// ParseSpec runs spec §6's parse_spec(path, content, spec_type) entry
// point: a standalone parse callable for inspection, independent of any
// Engine/store — a host can validate a specification file before ever
// opening a project.
func ParseSpec(path string, content []byte, specType string) (*contract.Contract, error) {
	registry := contract.NewParserRegistry()
	return registry.ParseSchemaFileAs(specType, content, path)
}

// CompareContracts runs spec §6's compare_contracts(before, after) entry
// point, re-exported from internal/contract since the breaking-change
// classifier has no store or project-root dependency of its own.
func CompareContracts(before, after contract.Contract) []contract.BreakingChange {
	return contract.CompareContracts(before, after)
}

// ContractTypeSchema renders one of a queried Contract's types as a
// github.com/google/jsonschema-go Schema — the shape an editor or
// dashboard consuming query_contracts expects a type to be described in,
// rather than chorus's internal ContractType.
func ContractTypeSchema(t *contract.ContractType) *jsonschema.Schema {
	return contract.TypeToJSONSchema(t)
}
