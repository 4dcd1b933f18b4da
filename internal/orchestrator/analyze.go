package orchestrator

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/standardbeagle/chorus/internal/aggregate"
	"github.com/standardbeagle/chorus/internal/confidence"
	"github.com/standardbeagle/chorus/internal/contract"
	"github.com/standardbeagle/chorus/internal/convention"
	"github.com/standardbeagle/chorus/internal/debug"
	"github.com/standardbeagle/chorus/internal/events"
	"github.com/standardbeagle/chorus/internal/model"
	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/security/crypto"
	"github.com/standardbeagle/chorus/internal/store"
	"github.com/standardbeagle/chorus/internal/types"
)

// projectScope is the scope string every project-wide pattern posterior
// update is keyed at; spec §4.8's scope granularity is per-convention, but
// L1 pattern-detection confidence (distinct from convention learning) is
// tracked at the whole-project level only.
const projectScope = "project"

// Analyze runs a full scan: every file under the project root survives
// scanner filtering is parsed, detected, learned from, and persisted.
// scanID identifies this run for the posterior/history tables' scan_id
// columns (callers own the counter — the CLI and MCP surface both
// increment it once per invocation).
func (o *Orchestrator) Analyze(ctx context.Context, scanID int64) (*aggregate.Result, error) {
	o.Bump()
	files, err := o.scanner.Walk()
	if err != nil {
		return nil, err
	}
	paths := make([]string, len(files), len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return o.analyzePaths(ctx, scanID, paths)
}

// AnalyzeChanged re-scans only changedPaths, leaving every other file's
// persisted state untouched. Convention/contract aggregation still runs
// over the full accumulated posterior/observation history the store
// already holds — only the L1 detection/crypto-finding replace step and
// the resolution index update are scoped to the changed set.
func (o *Orchestrator) AnalyzeChanged(ctx context.Context, scanID int64, changedPaths []string) (*aggregate.Result, error) {
	o.Bump()
	return o.analyzePaths(ctx, scanID, changedPaths)
}

func (o *Orchestrator) analyzePaths(ctx context.Context, scanID int64, paths []string) (*aggregate.Result, error) {
	span := events.StartSpan("indexing", "analyze")
	defer span.Finish()

	tasks := make([]pipeline.Task, 0, len(paths))
	contents := make(map[types.FileID]*contentRef, len(paths))
	for _, path := range paths {
		content, _, err := o.readFile(path)
		if err != nil {
			debug.LogIndexing("skipping unreadable file %s: %v", path, err)
			continue
		}
		tasks = append(tasks, pipeline.Task{
			FileID:      content.FileID,
			Path:        path,
			Content:     content.Bytes,
			ContentHash: content.ContentHash,
		})
		contents[content.FileID] = &contentRef{path: path, bytes: content.Bytes}
	}
	span.SetField("files", len(tasks))

	results, err := o.engine.AnalyzeBatch(ctx, tasks)
	if err != nil {
		return nil, err
	}

	var allObservations []convention.Observation
	var allDetections []model.Detection
	var allCryptoFindings []crypto.Finding
	restOperations := map[string][]contract.Operation{}

	for _, result := range results {
		if result == nil {
			continue
		}
		ref := contents[result.FileID]

		dets := o.detectionsFor(result)
		allDetections = append(allDetections, dets...)

		cryptoFindings := o.runCryptoDetector(result, ref, scanID)
		allCryptoFindings = append(allCryptoFindings, cryptoFindings...)
		for _, f := range cryptoFindings {
			allDetections = append(allDetections, f.ToDetection())
		}

		if err := o.store.ReplaceDetections(result.FileID, scanID, dets); err != nil {
			return nil, err
		}
		if err := o.store.ReplaceCryptoFindings(result.FileID, scanID, cryptoFindings); err != nil {
			return nil, err
		}
		if err := o.store.UpsertFile(store.FileRecord{
			FileID:      result.FileID,
			Path:        result.Path,
			Language:    string(result.Language),
			ContentHash: result.ContentHash,
			Size:        int64(len(ref.bytes)),
		}); err != nil {
			return nil, err
		}

		extractCtx := convention.ExtractionContext{
			ProjectRoot: o.root,
			Language:    result.Language,
			Imports:     result.Imports,
		}
		obs := o.convention.Registry.RunFile(result.Path, ref.bytes, result, extractCtx)
		allObservations = append(allObservations, obs...)

		if ops := contract.RESTRouteExtractor{}.ExtractRoutes(result.FileID, result); len(ops) > 0 {
			restOperations[result.Path] = ops
		}

		if err := o.resolve.IndexFile(result.Path, ref.bytes, nil); err != nil {
			debug.LogIndexing("resolve index failed for %s: %v", result.Path, err)
		}

		o.bus.Emit(events.Event{Kind: events.KindFileAnalysisComplete, FileID: result.FileID, FilePath: result.Path})
	}

	if err := o.resolve.Link(); err != nil {
		debug.LogIndexing("resolve link failed: %v", err)
	}

	if err := o.scorePatternPosteriors(allDetections, len(tasks), scanID); err != nil {
		return nil, err
	}

	scanResult := o.convention.Aggregate(allObservations, scanID, time.Now())
	conventionConfidence := make(map[convention.Key]float64, len(scanResult.Conventions))
	conventionsByGroup := make(map[string][]convention.LearnedConvention)
	for _, lc := range scanResult.Conventions {
		sc := o.scorer.Score(lc.DetectorID+":"+lc.ConvKey, confidence.Posterior{Alpha: lc.Alpha, Beta: lc.Beta}, confidence.Factors{
			Frequency: lc.Frequency(),
			Spread:    spreadOf(lc.FileCount, lc.TotalFiles),
		})
		if err := o.store.SaveConvention(lc, scanID, sc.Tier); err != nil {
			return nil, err
		}
		conventionConfidence[lc.Key] = sc.V2
		groupKey := lc.DetectorID + "|" + lc.ConvKey
		conventionsByGroup[groupKey] = append(conventionsByGroup[groupKey], lc)
	}
	for _, cp := range scanResult.Contested {
		if err := o.store.SaveContestedPair(cp); err != nil {
			return nil, err
		}
		o.bus.Emit(events.Event{Kind: events.KindContestedDetected, ConventionKey: cp.Key, ValueA: cp.ValueA, ValueB: cp.ValueB})
	}

	violationsByFile := o.enforceConventions(allObservations, conventionsByGroup, conventionConfidence, contents)
	var allViolations []model.Violation
	for fileID, vs := range violationsByFile {
		if err := o.store.ReplaceViolations(fileID, scanID, vs); err != nil {
			return nil, err
		}
		allViolations = append(allViolations, vs...)
	}

	contracts := o.buildContracts(restOperations)
	contracts = append(contracts, o.discoverSpecContracts()...)
	for _, c := range contracts {
		if err := o.store.SaveContract(c); err != nil {
			return nil, err
		}
		if err := o.store.SnapshotContract(c.ID, scanID, c); err != nil {
			return nil, err
		}
	}

	fresh := o.agg.AddDetections(allDetections)
	aggregate.SortByLocation(fresh)

	convSummary := aggregate.SummarizeConventions(scanResult.Conventions, scanResult.Contested)
	conSummary := aggregate.SummarizeContracts(contracts)
	crySummary := aggregate.SummarizeCrypto(allCryptoFindings)
	vioSummary := aggregate.SummarizeViolations(allViolations)
	health := aggregate.ComputeHealth(len(tasks), convSummary, conSummary, crySummary, vioSummary, allCryptoFindings)

	return &aggregate.Result{Findings: fresh, Violations: allViolations, Health: health}, nil
}

type contentRef struct {
	path  string
	bytes []byte
}

// detectionsFor converts one file's structural/pattern-match phase output
// into the shared model.Detection shape, looking the matching registry
// pattern up by ID for its declared category and severity.
func (o *Orchestrator) detectionsFor(result *pipeline.ParseResult) []model.Detection {
	var dets []model.Detection
	for _, m := range result.Structural {
		p, _ := o.patterns.Lookup(m.PatternID)
		dets = append(dets, model.Detection{
			ID:             structuralDetectionID(result.FileID, m),
			Category:       model.Category(p.Category),
			PatternID:      m.PatternID,
			Method:         model.MethodStructural,
			Location:       model.Location{File: result.FileID, StartLine: m.Line, StartColumn: m.Column, EndLine: m.Line, EndColumn: m.Column + len(m.Text)},
			MatchedText:    m.Text,
			BaseConfidence: 0.7,
		})
	}
	for _, m := range result.Patterns {
		dets = append(dets, model.Detection{
			ID:             patternDetectionID(result.FileID, m),
			Category:       model.Category(m.Category),
			PatternID:      m.RuleID,
			Method:         model.MethodRegexOnExtracted,
			Location:       model.Location{File: result.FileID, StartLine: m.Literal.Line, StartColumn: m.Literal.Column, EndLine: m.Literal.Line, EndColumn: m.Literal.Column + len(m.Literal.Value)},
			MatchedText:    m.Literal.Value,
			BaseConfidence: 0.6,
		})
	}
	return dets
}

func structuralDetectionID(fileID types.FileID, m pipeline.StructuralMatch) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(fmt.Sprintf("structural|%d|%s|%d|%d", fileID, m.PatternID, m.Line, m.Column))))[:16]
}

func patternDetectionID(fileID types.FileID, m pipeline.PatternMatch) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(fmt.Sprintf("pattern|%d|%s|%d|%d", fileID, m.RuleID, m.Literal.Line, m.Literal.Column))))[:16]
}

// runCryptoDetector builds a disposable VisitorSet for this file only —
// the crypto Handler closures over this file's content/fileID/language,
// so it can't be registered against the shared engine-wide VisitorSet
// without rebuilding that set (and every other registered handler with
// it) for every file. Walking it directly against the tree the engine
// already parsed keeps the crypto pass out of the shared Engine entirely.
// A panic inside the handler is recovered and counted toward the
// detector's auto-disable budget (SPEC_FULL.md Supplemented feature #1)
// rather than aborting the whole batch.
func (o *Orchestrator) runCryptoDetector(result *pipeline.ParseResult, ref *contentRef, scanID int64) []crypto.Finding {
	const detectorID = "crypto"
	if result.Tree == nil || ref == nil {
		return nil
	}
	if disabled, _ := o.store.IsDetectorDisabled(detectorID); disabled {
		return nil
	}

	var findings []crypto.Finding
	func() {
		defer func() {
			if r := recover(); r != nil {
				disabled, _ := o.store.RecordDetectorPanic(detectorID, o.maxPanicsPerFile, scanID, fmt.Sprintf("%v", r))
				if disabled {
					o.bus.Emit(events.Event{Kind: events.KindDetectorAutoDisabled, DetectorID: detectorID, PanicCount: o.maxPanicsPerFile})
				}
			}
		}()

		hctx := crypto.HandlerContext{
			Path:         result.Path,
			Imports:      o.importNames(result.Imports),
			TestPatterns: o.cfg.Crypto.TestPathPatterns,
		}

		vs := pipeline.NewVisitorSet()
		vs.Register(o.crypto.Handler(ref.bytes, result.FileID, string(result.Language), hctx, func(f crypto.Finding) {
			findings = append(findings, f)
		}))
		vs.Walk(result.Tree, ref.bytes, func() bool { return true })
	}()

	return findings
}

// importNames resolves a file's ImportRef.Source handles back to their
// source strings, the "library the function belongs to is imported in the
// file" signal crypto.Detector's Handler needs for its import-confirmed
// confidence factor (spec §4.7 Confidence).
func (o *Orchestrator) importNames(imports []pipeline.ImportRef) []string {
	if len(imports) == 0 {
		return nil
	}
	names := make([]string, 0, len(imports))
	for _, imp := range imports {
		if s := o.interner.String(imp.Source); s != "" {
			names = append(names, s)
		}
	}
	return names
}

// scorePatternPosteriors feeds every L1 detection as one success-trial
// observation into its pattern's project-scoped posterior — a
// simplification of the full per-file trial/non-trial accounting a
// dedicated evaluation corpus would give, adequate for driving the
// tiered confidence score pattern detections carry forward.
func (o *Orchestrator) scorePatternPosteriors(dets []model.Detection, totalFiles int, scanID int64) error {
	occurrences := map[string]int{}
	for _, d := range dets {
		occurrences[d.PatternID]++
	}
	for patternID, count := range occurrences {
		if err := o.store.UpdatePosterior(patternID, projectScope, count, count, scanID); err != nil {
			return err
		}
	}
	return nil
}

// enforceConventions compares every observation against its (detector,
// key) group's dominant convention and emits a Violation per spec §4.3
// Enforcement, grouped by file for the store's replace-on-rescan write
// path. groups is every LearnedConvention this scan touched, bucketed by
// "detectorID|convKey"; confidences is the v2 score each LearnedConvention
// was saved with, keyed by its natural Key.
func (o *Orchestrator) enforceConventions(
	observations []convention.Observation,
	groups map[string][]convention.LearnedConvention,
	confidences map[convention.Key]float64,
	contents map[types.FileID]*contentRef,
) map[types.FileID][]model.Violation {
	if len(groups) == 0 {
		return nil
	}

	excluder := convention.DefaultExcluder{
		ExcludeTests: o.cfg.Convention.ExcludeTestsFromEnforcement,
		TestPatterns: o.cfg.Crypto.TestPathPatterns,
	}
	minimums := convention.EnforcementMinimums{
		MinFiles:       o.cfg.Convention.MinFiles,
		MinOccurrences: o.cfg.Convention.MinOccurrences,
		MinConfidence:  o.cfg.Convention.MinConfidence,
	}

	out := make(map[types.FileID][]model.Violation)
	for _, obs := range observations {
		candidates := groups[obs.DetectorID+"|"+obs.Key]
		if len(candidates) == 0 {
			continue
		}
		ref := contents[obs.File]
		path := ""
		dir := ""
		if ref != nil {
			path = ref.path
			dir = filepath.Dir(ref.path)
		}

		dominant, ok := convention.Dominant(candidates, o.cfg.Convention.ScopesEnabled, dir, "")
		if !ok {
			continue
		}
		conf := confidences[dominant.Key]
		excluded := excluder.Excluded(path)

		v, emitted := convention.Enforce(obs, dominant, minimums, conf, excluded)
		if !emitted {
			continue
		}
		out[obs.File] = append(out[obs.File], v)
	}
	return out
}

// buildContracts assembles one REST contract per file that produced
// route operations — a file-scoped contract grouping rather than a true
// per-service grouping (spec §4.6 doesn't name how code-first routes
// across files should be merged into one service contract, and nothing
// short of a dedicated service-naming heuristic could do better, so this
// keeps the unit at the extraction boundary: one contract per file,
// named by its path).
func (o *Orchestrator) buildContracts(restOperations map[string][]contract.Operation) []contract.Contract {
	var contracts []contract.Contract
	for path, ops := range restOperations {
		contracts = append(contracts, contract.Contract{
			ID:            "rest:" + path,
			Paradigm:      contract.ParadigmREST,
			Service:       filepath.Base(path),
			Operations:    ops,
			Status:        contract.StatusVerified,
			Confidence:    contract.Confidence(contract.ConfidenceSignals{SourceQuality: contract.SourceQualityFor(contract.ProvenanceCode)}, 0, false),
			LastVerified:  time.Now(),
			NeverVerified: false,
		})
	}
	return contracts
}

// discoverSpecContracts implements the schema-first half of spec §4.6's
// "Inputs": files matched by DiscoverSpecFiles' name/extension heuristic
// are parsed into their own Contracts, provenance Spec, distinct from the
// code-first contracts buildContracts already assembled from extracted
// routes. A file that fails to parse is isolated (spec §7 per-file parse
// failures never abort the scan) and simply contributes no contract.
func (o *Orchestrator) discoverSpecContracts() []contract.Contract {
	specs, err := contract.DiscoverSpecFiles(o.root)
	if err != nil {
		debug.LogIndexing("spec discovery failed: %v", err)
		return nil
	}
	var contracts []contract.Contract
	for _, spec := range specs {
		data, err := os.ReadFile(spec.Path)
		if err != nil {
			debug.LogIndexing("skipping unreadable spec file %s: %v", spec.Path, err)
			continue
		}
		c, err := o.contracts.ParseSchemaFileAs(spec.SpecType, data, spec.Path)
		if err != nil {
			debug.LogIndexing("skipping unparseable spec file %s: %v", spec.Path, err)
			continue
		}
		c.ID = "spec:" + spec.Path
		c.Provenance = append(c.Provenance, contract.Provenance{Kind: contract.ProvenanceSpec, SpecType: spec.SpecType})
		c.Confidence = contract.Confidence(contract.ConfidenceSignals{SourceQuality: contract.SourceQualityFor(contract.ProvenanceSpec)}, 0, true)
		contracts = append(contracts, *c)
	}
	return contracts
}

func spreadOf(fileCount, totalFiles int) float64 {
	if totalFiles <= 0 {
		return 0
	}
	return float64(fileCount) / float64(totalFiles)
}
