// Package model holds the domain entities shared across the detection,
// convention, contract, crypto, and store subsystems: the closed Category
// and Severity enums, the Detection/Violation shapes produced by the
// pipeline and convention engine, and the Location every finding anchors
// to. Keeping these in one leaf package (depending on nothing but
// internal/types) avoids the import cycles that would otherwise appear
// between the pipeline, convention, crypto, contract and store packages,
// which all need to read and write the same finding shapes.
package model

import "github.com/standardbeagle/chorus/internal/types"

// Category is the closed set of detection categories from spec §3.
type Category string

const (
	CategoryAPI            Category = "API"
	CategoryAuth           Category = "Auth"
	CategoryComponents     Category = "Components"
	CategoryConfig         Category = "Config"
	CategoryDataAccess     Category = "DataAccess"
	CategoryDocumentation  Category = "Documentation"
	CategoryErrors         Category = "Errors"
	CategoryLogging        Category = "Logging"
	CategoryPerformance    Category = "Performance"
	CategorySecurity       Category = "Security"
	CategoryStructural     Category = "Structural"
	CategoryStyling        Category = "Styling"
	CategoryTesting        Category = "Testing"
	CategoryTypes          Category = "Types"
	CategoryValidation     Category = "Validation"
	CategoryAccessibility  Category = "Accessibility"
)

// DetectionMethod records which pipeline phase produced a Detection.
type DetectionMethod string

const (
	MethodQueryBased       DetectionMethod = "query-based"
	MethodVisitorBased     DetectionMethod = "visitor-based"
	MethodRegexOnExtracted DetectionMethod = "regex-on-extracted-string"
	MethodStructural       DetectionMethod = "structural"
)

// Severity is the closed severity enum a Violation carries, derived from
// convention category (spec §4.3 Enforcement) or a pattern's declared
// severity.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
	SeverityHint    Severity = "Hint"
)

// Location anchors a Detection or Violation to a byte range in one file.
// Invariant (spec §8.2): 1 <= StartLine <= EndLine, and StartColumn <=
// EndColumn when StartLine == EndLine.
type Location struct {
	File        types.FileID
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Valid reports whether l satisfies the line/column ordering invariant.
func (l Location) Valid() bool {
	if l.StartLine < 1 || l.EndLine < l.StartLine {
		return false
	}
	if l.StartLine == l.EndLine && l.EndColumn < l.StartColumn {
		return false
	}
	return true
}

// Detection is a single pattern match produced during the visitor pipeline.
type Detection struct {
	ID             string
	Category       Category
	PatternID      string
	Method         DetectionMethod
	Location       Location
	MatchedText    string
	BaseConfidence float64
	WeaknessIDs    []int
	OWASP          string
	SuggestedFix   string
	TaintFlow      string
}

// Violation is an enforcement-phase finding: a file's observed value
// deviates from the project's dominant learned convention (or from a
// declarative pattern's own severity when not convention-derived).
type Violation struct {
	ID                  string
	PatternID           string
	DetectorID          string
	Severity            Severity
	Location            Location
	Message             string
	Expected            string
	Actual              string
	Explanation         string
	ConventionCategory  string
	ConventionConfidence float64
	ConventionTrend     string
	AIFlags             []string
}
