// Package orchestrator wires every L1/L2/L3 subsystem together behind the
// two entry points spec §6 names: analyze (full project scan) and
// analyze_changed (incremental re-scan of a changed-file set). It owns no
// domain logic of its own — it schedules scanning, the four-phase
// pipeline, convention learning, confidence scoring, contract extraction,
// crypto detection, symbol resolution, persistence, and event emission in
// the order spec §4/§5 describes, and hands the result to
// internal/aggregate for dedup and health scoring.
//
// Grounded on internal/indexing/master_index.go's role in the teacher: the
// single object a CLI or MCP handler calls into to run one indexing pass
// end to end, owning every subsystem's lifetime.
package orchestrator

import (
	"os"
	"path/filepath"

	"github.com/standardbeagle/chorus/internal/aggregate"
	"github.com/standardbeagle/chorus/internal/confidence"
	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/contract"
	"github.com/standardbeagle/chorus/internal/convention"
	"github.com/standardbeagle/chorus/internal/events"
	"github.com/standardbeagle/chorus/internal/intern"
	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/registry"
	"github.com/standardbeagle/chorus/internal/resolve"
	"github.com/standardbeagle/chorus/internal/scan"
	"github.com/standardbeagle/chorus/internal/security/crypto"
	"github.com/standardbeagle/chorus/internal/store"
)

// Orchestrator holds every long-lived subsystem instance for one project
// root. It is safe to reuse across repeated analyze/analyze_changed calls
// — the pipeline's Revision is bumped at the start of each run so any
// stale in-flight work from a previous call is abandoned cleanly.
type Orchestrator struct {
	cfg  *config.Config
	root string

	scanner   *scan.Scanner
	files     *scan.Store
	languages *pipeline.LanguageSet
	interner  *intern.Writer
	revision  *pipeline.Revision
	engine    *pipeline.Engine
	patterns  *registry.Registry

	convention *convention.Engine
	scorer     *confidence.Scorer
	contracts  *contract.ParserRegistry
	crypto     *crypto.Detector
	resolve    *resolve.Index

	store *store.Store
	bus   *events.Bus
	agg   *aggregate.Aggregator

	maxPanicsPerFile int
}

// New builds an Orchestrator for cfg.Project.Root, wiring the registry's
// compiled patterns into the pipeline engine and the convention engine's
// built-in extractors. st and bus may be shared across Orchestrators (one
// database, one event sink per process); agg is created fresh per
// Orchestrator since dedup state shouldn't leak across project roots.
func New(cfg *config.Config, st *store.Store, bus *events.Bus) (*Orchestrator, error) {
	if bus == nil {
		bus = events.NewBus()
	}

	languages := pipeline.NewLanguageSet()
	interner := intern.NewWriter()
	revision := pipeline.NewRevision()

	workerCount := cfg.Analysis.WorkerCount
	engine := pipeline.NewEngine(languages, interner, revision, pipeline.Options{
		EnableNormalizedAST: cfg.Analysis.EnableNormalizedAST,
		WorkerCount:         workerCount,
	})

	patterns := registry.New(languages)
	projectPatternDir := filepath.Join(cfg.Project.Root, ".chorus", "patterns")
	if err := patterns.Load(projectPatternDir, ""); err != nil {
		return nil, err
	}
	patterns.WireEngine(engine)

	convEngine := convention.New(cfg.Convention)
	for _, ex := range convention.BuiltinExtractors() {
		convEngine.Registry.Register(ex)
	}

	maxPanics := cfg.Analysis.MaxPanicsPerFile
	if maxPanics <= 0 {
		maxPanics = 3
	}

	return &Orchestrator{
		cfg:              cfg,
		root:             cfg.Project.Root,
		scanner:          scan.New(cfg),
		files:            scan.NewStore(),
		languages:        languages,
		interner:         interner,
		revision:         revision,
		engine:           engine,
		patterns:         patterns,
		convention:       convEngine,
		scorer:           confidence.New(cfg.Confidence),
		contracts:        contract.NewParserRegistry(),
		crypto:           crypto.NewDetector(crypto.BuiltinRules()),
		resolve:          resolve.New(cfg.Project.Root),
		store:            st,
		bus:              bus,
		agg:              aggregate.New(),
		maxPanicsPerFile: maxPanics,
	}, nil
}

// Bump invalidates any in-flight work scheduled before this call, per
// spec §5's revision/cancellation-token protocol. Called at the start of
// every Analyze/AnalyzeChanged run.
func (o *Orchestrator) Bump() uint64 { return o.revision.Bump() }

// readFile loads path's bytes through the scanner's change-detection
// store, returning its FileID and whether the content differs from what
// was previously loaded (always true the first time a path is seen).
func (o *Orchestrator) readFile(path string) (*scan.Content, bool, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, false, err
	}
	fileID, changed := o.files.Load(path, bytes)
	content, _ := o.files.Get(fileID)
	return content, changed, nil
}
