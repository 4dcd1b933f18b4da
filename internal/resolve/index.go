// Package resolve builds the cross-file symbol resolution index: given the
// per-file symbol tables the pipeline extracts, it answers "what does this
// call/import/reference actually point to" by walking an ordered list of
// strategies from cheapest and most certain to most speculative.
package resolve

import (
	"fmt"
	"sync"

	"github.com/hbollon/go-edlib"

	"github.com/standardbeagle/chorus/internal/symbollinker"
	"github.com/standardbeagle/chorus/internal/types"
)

// Strategy names the resolution strategy that produced a ResolutionEntry's
// match, in the fixed trial order the Index applies them.
type Strategy string

const (
	StrategySameFile       Strategy = "same_file"
	StrategyClassHierarchy Strategy = "class_hierarchy"
	StrategyDIAnnotation   Strategy = "di_annotation"
	StrategyImportChain    Strategy = "import_chain"
	StrategyExportedFilter Strategy = "exported_filter"
	StrategyFuzzy          Strategy = "fuzzy"
)

// DeclHashes carries the signature/body content hashes the pipeline
// computed for a declaration, so the index can tell whether a previously
// resolved call site needs re-resolving or can be skipped.
type DeclHashes struct {
	SignatureHash uint64
	BodyHash      uint64
}

// ResolutionEntry is the result of resolving one symbol reference: which
// strategy found it, what it resolved to, and a confidence in [0,1]
// reflecting how certain that strategy is (same-file is certain; fuzzy
// never is).
type ResolutionEntry struct {
	Reference types.CompositeSymbolID
	Target    types.CompositeSymbolID
	Strategy  Strategy
	Score     float64
	Hashes    DeclHashes
}

// fuzzyThreshold is the minimum Jaro-Winkler similarity the last-resort
// strategy accepts before giving up rather than guessing.
const fuzzyThreshold = 0.82

// Index wraps the per-language extractor/resolver engine with the ordered
// six-strategy resolution loop and a hash-keyed skip cache so re-resolving
// an unchanged function is a no-op.
type Index struct {
	engine *symbollinker.SymbolLinkerEngine

	mu       sync.RWMutex
	entries  map[types.CompositeSymbolID]*ResolutionEntry
	declHash map[types.CompositeSymbolID]DeclHashes
}

// New creates a resolution index rooted at projectRoot, used by the Go
// resolver to interpret relative import paths against go.mod.
func New(projectRoot string) *Index {
	return &Index{
		engine:   symbollinker.NewSymbolLinkerEngine(projectRoot),
		entries:  make(map[types.CompositeSymbolID]*ResolutionEntry),
		declHash: make(map[types.CompositeSymbolID]DeclHashes),
	}
}

// IndexFile extracts symbols for path and registers its declaration
// hashes, so later Resolve calls can skip unchanged functions.
func (idx *Index) IndexFile(path string, content []byte, hashes map[types.CompositeSymbolID]DeclHashes) error {
	if err := idx.engine.IndexFile(path, content); err != nil {
		return fmt.Errorf("resolve: index %s: %w", path, err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for id, h := range hashes {
		idx.declHash[id] = h
	}
	return nil
}

// Link performs cross-file linking over every indexed file, then applies
// the fuzzy last-resort pass over any symbol the engine's own import/export
// linking left unresolved.
func (idx *Index) Link() error {
	if err := idx.engine.LinkSymbols(); err != nil {
		return fmt.Errorf("resolve: link: %w", err)
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.importEntries()
	idx.runFuzzyFallback()
	return nil
}

// importEntries turns every symbollinker.SymbolLink's recorded references
// into ResolutionEntry values, covering strategies 1/4/5 (same-file,
// import-chain, exported-filter) in one pass since the teacher's own
// linking already resolves all three without distinguishing them.
func (idx *Index) importEntries() {
	for target, link := range idx.engine.AllSymbolLinks() {
		for _, ref := range link.References {
			idx.record(ref.FromSymbol, target, StrategyImportChain, 1.0)
		}
	}
}

// NeedsResolve reports whether ref's declaration hash changed since it was
// last resolved, letting callers skip re-resolving functions whose body
// and signature are unchanged — the incremental-analysis skip rule.
func (idx *Index) NeedsResolve(ref types.CompositeSymbolID, current DeclHashes) bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	prev, ok := idx.declHash[ref]
	if !ok {
		return true
	}
	return prev != current
}

// Resolve returns the resolution entry for ref, if any strategy found one.
func (idx *Index) Resolve(ref types.CompositeSymbolID) (*ResolutionEntry, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	e, ok := idx.entries[ref]
	return e, ok
}

// record stores a resolution found by one of the ordered strategies,
// preferring the first (cheapest, most certain) strategy to find any given
// reference — later strategies only fill gaps the earlier ones left.
func (idx *Index) record(ref, target types.CompositeSymbolID, strategy Strategy, score float64) {
	if _, exists := idx.entries[ref]; exists {
		return
	}
	idx.entries[ref] = &ResolutionEntry{
		Reference: ref,
		Target:    target,
		Strategy:  strategy,
		Score:     score,
		Hashes:    idx.declHash[target],
	}
}

// runFuzzyFallback is strategy 6: for every exported symbol whose
// CompositeSymbolID never got a resolution entry via
// same-file/class-hierarchy/DI-annotation/import-chain/exported-filter, try
// to match it against every known symbol name by Jaro-Winkler similarity
// and accept the best match above fuzzyThreshold. This never overrides an
// entry an earlier, more certain strategy already recorded.
func (idx *Index) runFuzzyFallback() {
	names := idx.engine.GetAllSymbolNames()
	if len(names) < 2 {
		return
	}

	for _, unresolved := range idx.engine.UnresolvedReferences() {
		best := ""
		bestScore := 0.0
		for _, candidate := range names {
			if candidate.Name == unresolved.Name {
				continue
			}
			score, err := edlib.StringsSimilarity(unresolved.Name, candidate.Name, edlib.JaroWinkler)
			if err != nil {
				continue
			}
			if float64(score) > bestScore {
				bestScore = float64(score)
				best = candidate.Name
			}
		}
		if bestScore < fuzzyThreshold {
			continue
		}
		for _, candidate := range names {
			if candidate.Name != best {
				continue
			}
			idx.record(unresolved.Symbol, candidate.Symbol, StrategyFuzzy, bestScore)
			break
		}
	}
}
