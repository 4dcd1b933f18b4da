// Package convention implements the convention learning engine: it
// observes how a project actually writes code (error handling style,
// naming, import grouping, and the like) via a registry of per-detector
// extractors, accumulates the evidence into Beta/Dirichlet posteriors per
// (detector, key, value, scope), and classifies + enforces the dominant
// choice once enough evidence exists.
package convention

import (
	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/types"
)

// ExtractionContext is the project-wide context an extractor receives
// alongside a single file's content, letting it reason about the file in
// relation to the rest of the project (package metadata, sibling imports)
// without re-walking the whole tree itself.
type ExtractionContext struct {
	ProjectRoot  string
	ProjectFiles []string
	PackageName  string
	Imports      []pipeline.ImportRef
	Language     pipeline.Language
}

// Observation is one piece of evidence an extractor reports: this file,
// at this location, uses this value for this (detector, key).
type Observation struct {
	DetectorID string
	Key        string
	Value      string
	File       types.FileID
	Line       int
	Column     int
	Confidence float64
	Scope      Scope
}

// Scope is the granularity a convention was observed at, used for
// most-specific-wins enforcement lookup (directory > package > project).
type Scope struct {
	Directory string
	Package   string
}

// ConventionExtractor is the capability trait a detector implements to
// contribute observations to the learning pass. Mirrors the teacher's
// capability-interface idiom (small, focused traits rather than a single
// do-everything analyzer interface).
type ConventionExtractor interface {
	DetectorID() string
	TrackedKeys() []string
	SupportedLanguages() []pipeline.Language
	Extract(path string, content []byte, tree *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error)
}

// Registry dispatches the learning pass to every extractor applicable to a
// file's language.
type Registry struct {
	extractors []ConventionExtractor
}

// NewRegistry creates an empty extractor registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds an extractor to the registry.
func (r *Registry) Register(e ConventionExtractor) {
	r.extractors = append(r.extractors, e)
}

// ExtractorsFor returns every registered extractor that supports lang.
func (r *Registry) ExtractorsFor(lang pipeline.Language) []ConventionExtractor {
	var out []ConventionExtractor
	for _, e := range r.extractors {
		for _, l := range e.SupportedLanguages() {
			if l == lang {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// RunFile dispatches path/content/result to every extractor applicable to
// result's language, collecting all observations. One extractor's error
// does not stop the others, matching the pipeline's per-detector isolation
// policy.
func (r *Registry) RunFile(path string, content []byte, result *pipeline.ParseResult, ctx ExtractionContext) []Observation {
	var all []Observation
	for _, e := range r.ExtractorsFor(result.Language) {
		obs, err := e.Extract(path, content, result, ctx)
		if err != nil {
			continue
		}
		all = append(all, obs...)
	}
	return all
}
