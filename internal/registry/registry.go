package registry

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/chorus/internal/pipeline"
)

//go:embed builtin/*.kdl
var builtinFS embed.FS

// Registry holds every compiled pattern — structural tree queries grouped
// by language, and standalone regexes — keyed by pattern ID so a later
// source (project, then user) overrides an earlier one (built-in) that
// shares the same ID.
type Registry struct {
	languages *pipeline.LanguageSet

	byID       map[string]Pattern
	structural map[pipeline.Language][]pipeline.CompiledQuery
	regexes    []CompiledRegex
}

// CompiledRegex is a compiled regex-kind pattern, ready for any detector
// that scans extracted strings outside the pipeline's own pattern pass
// (e.g. the crypto engine's anti-pattern rules).
type CompiledRegex struct {
	ID       string
	Category string
	Severity string
	Regex    *regexp.Regexp
}

// New returns an empty Registry bound to languages, used to compile
// structural patterns against the right grammar.
func New(languages *pipeline.LanguageSet) *Registry {
	return &Registry{
		languages:  languages,
		byID:       make(map[string]Pattern),
		structural: make(map[pipeline.Language][]pipeline.CompiledQuery),
	}
}

// Load compiles the built-in pattern set, then project and user pattern
// directories in that order, later sources overriding earlier ones by ID.
// Any pattern that fails to compile (bad tree-sitter query syntax, bad
// regexp) aborts loading with a *errors.QueryCompileError naming the file,
// pattern ID, and declared line, per the recovery policy.
func (r *Registry) Load(projectPatternDir, userPatternDir string) error {
	builtin, err := r.loadBuiltin()
	if err != nil {
		return err
	}

	var all []Pattern
	all = append(all, builtin...)

	if projectPatternDir != "" {
		fromDir, err := loadPatternDir(projectPatternDir)
		if err != nil {
			return err
		}
		all = append(all, fromDir...)
	}

	if userPatternDir != "" {
		fromDir, err := loadPatternDir(userPatternDir)
		if err != nil {
			return err
		}
		all = append(all, fromDir...)
	}

	return r.compile(all)
}

func (r *Registry) loadBuiltin() ([]Pattern, error) {
	entries, err := builtinFS.ReadDir("builtin")
	if err != nil {
		return nil, err
	}

	var out []Pattern
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".kdl") {
			continue
		}
		data, err := builtinFS.ReadFile(filepath.Join("builtin", entry.Name()))
		if err != nil {
			return nil, err
		}
		patterns, err := parseKDLPatterns(string(data), "builtin/"+entry.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, patterns...)
	}
	return out, nil
}

// loadPatternDir reads every *.kdl and *.toml file in dir. A missing
// directory is not an error — project/user pattern overrides are optional.
func loadPatternDir(dir string) ([]Pattern, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var out []Pattern
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		switch {
		case strings.HasSuffix(entry.Name(), ".kdl"):
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			patterns, err := parseKDLPatterns(string(data), path)
			if err != nil {
				return nil, err
			}
			out = append(out, patterns...)

		case strings.HasSuffix(entry.Name(), ".toml"):
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, err
			}
			patterns, err := parseTOMLPatterns(data, path)
			if err != nil {
				return nil, err
			}
			out = append(out, patterns...)
		}
	}
	return out, nil
}

// compile validates and compiles every pattern, applying later-wins
// override semantics by ID before building the per-language structural
// index and the flat regex list.
func (r *Registry) compile(patterns []Pattern) error {
	merged := make(map[string]Pattern, len(patterns))
	order := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if err := p.validate(); err != nil {
			return err
		}
		if _, exists := merged[p.ID]; !exists {
			order = append(order, p.ID)
		}
		merged[p.ID] = p
	}

	structural := make(map[pipeline.Language][]pipeline.CompiledQuery)
	var regexes []CompiledRegex

	for _, id := range order {
		p := merged[id]
		switch p.Kind {
		case KindStructural:
			lang := pipeline.Language(p.Language)
			grammar, err := r.languages.Grammar(lang)
			if err != nil {
				return newQueryCompileError(p, err)
			}
			query, queryErr := tree_sitter.NewQuery(grammar, p.Query)
			if queryErr != nil || query == nil {
				return newQueryCompileError(p, fmt.Errorf("query compilation failed"))
			}
			structural[lang] = append(structural[lang], pipeline.CompiledQuery{
				PatternID: p.ID,
				Query:     query,
				Captures:  append([]string(nil), p.Captures...),
			})

		case KindRegex:
			re, err := regexp.Compile(p.Regex)
			if err != nil {
				return newQueryCompileError(p, err)
			}
			regexes = append(regexes, CompiledRegex{ID: p.ID, Category: p.Category, Severity: p.Severity, Regex: re})
		}
	}

	r.byID = merged
	r.structural = structural
	r.regexes = regexes
	return nil
}

// StructuralQueriesFor returns the compiled structural queries for lang,
// ready to hand to pipeline.Engine.SetStructuralQueries.
func (r *Registry) StructuralQueriesFor(lang pipeline.Language) []pipeline.CompiledQuery {
	return r.structural[lang]
}

// Regexes returns every compiled regex-kind pattern.
func (r *Registry) Regexes() []CompiledRegex {
	return r.regexes
}

// Lookup returns the raw Pattern definition for id, e.g. so a detector can
// read its declared Category/Severity.
func (r *Registry) Lookup(id string) (Pattern, bool) {
	p, ok := r.byID[id]
	return p, ok
}

// WireEngine installs every compiled structural query into engine, one
// call per language the registry has patterns for.
func (r *Registry) WireEngine(engine *pipeline.Engine) {
	for lang, queries := range r.structural {
		engine.SetStructuralQueries(lang, queries)
	}
}
