package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/chorus/internal/intern"
	"github.com/standardbeagle/chorus/internal/types"
)

// ExtractionContext classifies the syntactic position a string literal was
// found in, driving both convention learning and the regex pattern pass.
type ExtractionContext string

const (
	ContextFunctionArgument   ExtractionContext = "FunctionArgument"
	ContextVariableAssignment ExtractionContext = "VariableAssignment"
	ContextObjectProperty     ExtractionContext = "ObjectProperty"
	ContextDecorator          ExtractionContext = "Decorator"
	ContextReturnValue        ExtractionContext = "ReturnValue"
	ContextArrayElement       ExtractionContext = "ArrayElement"
	ContextUnknown            ExtractionContext = "Unknown"
)

// StringLiteral is one string-extraction-pass result.
type StringLiteral struct {
	Value   string
	File    types.FileID
	Line    int
	Column  int
	Context ExtractionContext
}

// minLiteralLength is the spec's floor for a literal to be worth extracting
// (after quote-stripping); shorter strings are noise for both conventions
// and pattern matching.
const minLiteralLength = 4

// StructuralMatch is one capture produced by the structural-query pass —
// a registry pattern matched a node, tagged with the capture name the
// pattern declared (e.g. "route.path", "decorator.name").
type StructuralMatch struct {
	PatternID string
	Capture   string
	Text      string
	Line      int
	Column    int
	Node      *tree_sitter.Node
}

// PatternMatch is one string-pattern-pass hit: a compiled regex from the
// registry's SQL/route/sensitive-data/env/log rule sets matched an
// extracted string literal.
type PatternMatch struct {
	RuleID   string
	Category string // DataAccess, API, Security, Config, Logging
	Literal  StringLiteral
}

// ParseResult is the per-file artifact the pipeline hands to every
// downstream subsystem. It is never persisted — only its derived findings
// and the file's content hash survive past one revision.
type ParseResult struct {
	FileID      types.FileID
	Path        string
	Language    Language
	ContentHash [32]byte

	Tree *tree_sitter.Tree // nil for unsupported languages

	Structural []StructuralMatch
	Literals   []StringLiteral
	Patterns   []PatternMatch

	// Functions/Classes/Imports carry just enough identity (name, span,
	// signature/body hash) for the resolution index to skip re-resolving
	// anything whose hash hasn't changed between revisions.
	Functions []Declaration
	Classes   []Declaration
	Imports   []ImportRef
}

// Declaration is a function/method/class seen in one file, with the
// signature/body hashes the resolution index's incremental policy keys on.
type Declaration struct {
	Name          intern.Handle
	Kind          string // "function", "method", "class"
	Line, Column  int
	SignatureHash uint64
	BodyHash      uint64
}

// ImportRef is one import/require/using statement.
type ImportRef struct {
	Source intern.Handle
	Alias  intern.Handle
	Line   int
}
