// Package registry loads declarative detector patterns — structural tree
// queries and standalone regexes — from KDL or TOML files, compiles them
// once at startup, and hands the compiled form to the pipeline engine and
// the crypto/convention/contract detectors that key off a pattern ID.
package registry

import (
	"fmt"

	"github.com/standardbeagle/chorus/internal/errors"
)

// Kind distinguishes a structural tree-sitter pattern from a standalone
// regex pattern; both decode into Pattern, letting either format (KDL,
// TOML) override the other by ID regardless of which declared it.
type Kind string

const (
	KindStructural Kind = "structural"
	KindRegex      Kind = "regex"
)

// Pattern is one declarative detector definition, decoded from either KDL
// or TOML into the same shape.
type Pattern struct {
	ID       string `toml:"id"`
	Kind     Kind   `toml:"kind"`
	Language string `toml:"language"` // empty means "applies to every language" (regex kind only)
	Category string `toml:"category"`
	Severity string `toml:"severity"`

	// Query is a tree-sitter query body, used when Kind == KindStructural.
	Query    string   `toml:"query"`
	Captures []string `toml:"captures"`

	// Regex is a Go regexp source, used when Kind == KindRegex.
	Regex string `toml:"regex"`

	// Source records which file this pattern was loaded from, for
	// QueryCompileError diagnostics.
	Source string `toml:"-"`
	Line   int    `toml:"-"`
}

// validate checks the fields required for Kind are present.
func (p Pattern) validate() error {
	if p.ID == "" {
		return fmt.Errorf("pattern in %s is missing an id", p.Source)
	}
	switch p.Kind {
	case KindStructural:
		if p.Language == "" {
			return fmt.Errorf("structural pattern %q in %s is missing a language", p.ID, p.Source)
		}
		if p.Query == "" {
			return fmt.Errorf("structural pattern %q in %s has an empty query", p.ID, p.Source)
		}
	case KindRegex:
		if p.Regex == "" {
			return fmt.Errorf("regex pattern %q in %s has an empty regex", p.ID, p.Source)
		}
	default:
		return fmt.Errorf("pattern %q in %s has unknown kind %q", p.ID, p.Source, p.Kind)
	}
	return nil
}

// newQueryCompileError wraps a Pattern's provenance into the spec's
// dedicated compile-failure error.
func newQueryCompileError(p Pattern, err error) error {
	return errors.NewQueryCompileError(p.Language, p.Query, fmt.Errorf("%s:%d: pattern %q: %w", p.Source, p.Line, p.ID, err))
}
