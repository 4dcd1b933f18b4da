package convention

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/standardbeagle/chorus/internal/intern"
	"github.com/standardbeagle/chorus/internal/pipeline"
	"github.com/standardbeagle/chorus/internal/semantic"
	"github.com/standardbeagle/chorus/internal/types"
)

// casingStyle classifies an identifier's casing, the convention value the
// naming-case extractor reports. Grounded on the separator categories
// internal/semantic/name_splitter.go already distinguishes, reimplemented
// directly against the raw string since the splitter's detection is
// unexported and this only needs the label, not the split words.
var (
	screamingSnakeRe = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)
	pascalRe         = regexp.MustCompile(`^[A-Z]`)
	camelRe          = regexp.MustCompile(`^[a-z][a-zA-Z0-9]*$`)
)

func casingStyle(name string) string {
	switch {
	case name == "":
		return "unknown"
	case screamingSnakeRe.MatchString(name):
		return "SCREAMING_SNAKE_CASE"
	case strings.Contains(name, "_"):
		return "snake_case"
	case strings.Contains(name, "-"):
		return "kebab-case"
	case pascalRe.MatchString(name):
		return "PascalCase"
	case camelRe.MatchString(name):
		return "camelCase"
	default:
		return "unknown"
	}
}

// NamingCaseExtractor observes the casing convention used for file names
// within the project, one of chorus's built-in ConventionExtractors.
type NamingCaseExtractor struct{}

func (NamingCaseExtractor) DetectorID() string { return "naming-case" }
func (NamingCaseExtractor) TrackedKeys() []string {
	return []string{"file-name-case"}
}
func (NamingCaseExtractor) SupportedLanguages() []pipeline.Language {
	return []pipeline.Language{
		pipeline.LangGo, pipeline.LangPython, pipeline.LangJavaScript,
		pipeline.LangTypeScript, pipeline.LangJava, pipeline.LangCSharp,
		pipeline.LangPHP, pipeline.LangRust, pipeline.LangCPP,
	}
}
func (NamingCaseExtractor) Extract(path string, content []byte, tree *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error) {
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	style := casingStyle(name)
	if style == "unknown" {
		return nil, nil
	}
	var fileID types.FileID
	if tree != nil {
		fileID = tree.FileID
	}
	return []Observation{{
		DetectorID: "naming-case",
		Key:        "file-name-case",
		Value:      style,
		File:       fileID,
		Line:       1,
		Column:     1,
		Confidence: 1.0,
	}}, nil
}

// ImportStyleExtractor observes whether a file's imports favor named,
// default, or namespace specifiers, grounded on types.ImportType already
// declared for the teacher's import analysis.
type ImportStyleExtractor struct{}

func (ImportStyleExtractor) DetectorID() string      { return "import-style" }
func (ImportStyleExtractor) TrackedKeys() []string    { return []string{"import-specifier-style"} }
func (ImportStyleExtractor) SupportedLanguages() []pipeline.Language {
	return []pipeline.Language{pipeline.LangJavaScript, pipeline.LangTypeScript}
}
func (ImportStyleExtractor) Extract(path string, content []byte, result *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error) {
	if result == nil || len(result.Imports) == 0 {
		return nil, nil
	}
	var obs []Observation
	for _, imp := range result.Imports {
		style := "named"
		if imp.Alias != intern.InvalidHandle {
			style = "default"
		}
		obs = append(obs, Observation{
			DetectorID: "import-style",
			Key:        "import-specifier-style",
			Value:      style,
			File:       result.FileID,
			Line:       imp.Line,
			Column:     1,
			Confidence: 0.8,
		})
	}
	return obs, nil
}

// TestLocationExtractor observes whether a project colocates test files
// alongside source (same directory) or under a dedicated test directory.
type TestLocationExtractor struct{}

var testFileRe = regexp.MustCompile(`(?i)(_test\.|\.test\.|\.spec\.|test_)`)
var testDirRe = regexp.MustCompile(`(?i)(^|/)(test|tests|__tests__|spec)(/|$)`)

func (TestLocationExtractor) DetectorID() string   { return "test-location" }
func (TestLocationExtractor) TrackedKeys() []string { return []string{"test-file-location"} }
func (TestLocationExtractor) SupportedLanguages() []pipeline.Language {
	return []pipeline.Language{
		pipeline.LangGo, pipeline.LangPython, pipeline.LangJavaScript,
		pipeline.LangTypeScript, pipeline.LangJava, pipeline.LangCSharp,
		pipeline.LangPHP, pipeline.LangRust, pipeline.LangCPP,
	}
}
func (TestLocationExtractor) Extract(path string, content []byte, result *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error) {
	if !testFileRe.MatchString(filepath.Base(path)) {
		return nil, nil
	}
	value := "colocated"
	if testDirRe.MatchString(filepath.ToSlash(filepath.Dir(path))) {
		value = "dedicated-directory"
	}
	var fileID types.FileID
	if result != nil {
		fileID = result.FileID
	}
	return []Observation{{
		DetectorID: "test-location",
		Key:        "test-file-location",
		Value:      value,
		File:       fileID,
		Line:       1,
		Column:     1,
		Confidence: 0.9,
	}}, nil
}

// ErrorHandlingExtractor observes which error-propagation shape a
// function body favors (Go: error-return vs. panic; Python/JS: try/except
// vs. returned error objects), keyed off the structural try/catch and
// error-return matches the pipeline's structural-query phase already
// extracts under the "error.*" pattern family.
type ErrorHandlingExtractor struct{}

func (ErrorHandlingExtractor) DetectorID() string   { return "error-handling" }
func (ErrorHandlingExtractor) TrackedKeys() []string { return []string{"error-propagation-style"} }
func (ErrorHandlingExtractor) SupportedLanguages() []pipeline.Language {
	return []pipeline.Language{
		pipeline.LangGo, pipeline.LangPython, pipeline.LangJavaScript,
		pipeline.LangTypeScript, pipeline.LangJava,
	}
}
func (ErrorHandlingExtractor) Extract(path string, content []byte, result *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error) {
	if result == nil {
		return nil, nil
	}
	var obs []Observation
	for _, m := range result.Structural {
		var value string
		switch m.PatternID {
		case "error.try_catch":
			value = "try-catch"
		case "error.explicit_return":
			value = "explicit-return"
		case "error.panic_recover":
			value = "panic-recover"
		default:
			continue
		}
		obs = append(obs, Observation{
			DetectorID: "error-handling",
			Key:        "error-propagation-style",
			Value:      value,
			File:       result.FileID,
			Line:       m.Line,
			Column:     m.Column,
			Confidence: 0.7,
		})
	}
	return obs, nil
}

// DocDensityExtractor observes whether a file's declarations are
// documented, and (via the porter2 stemmer, the same one
// internal/semantic/stemmer.go already uses for token normalization) in
// which grammatical tense doc comments are written — "imperative"
// ("Return the..." stems to "return") vs. "third-person" ("Returns the...").
type DocDensityExtractor struct {
	stemmer *semantic.Stemmer
}

// NewDocDensityExtractor returns a DocDensityExtractor backed by a fresh
// porter2 stemmer instance.
func NewDocDensityExtractor() *DocDensityExtractor {
	return &DocDensityExtractor{stemmer: semantic.NewStemmer(true, "porter2", 3, nil)}
}

func (e *DocDensityExtractor) DetectorID() string { return "doc-density" }
func (e *DocDensityExtractor) TrackedKeys() []string {
	return []string{"doc-comment-density", "doc-comment-tense"}
}
func (e *DocDensityExtractor) SupportedLanguages() []pipeline.Language {
	return []pipeline.Language{
		pipeline.LangGo, pipeline.LangPython, pipeline.LangJavaScript,
		pipeline.LangTypeScript, pipeline.LangJava, pipeline.LangCSharp,
	}
}

var docCommentRe = regexp.MustCompile(`(?m)^\s*(//|#|\*)\s*([A-Za-z][A-Za-z']*)\b`)

func (e *DocDensityExtractor) Extract(path string, content []byte, result *pipeline.ParseResult, ctx ExtractionContext) ([]Observation, error) {
	if result == nil {
		return nil, nil
	}
	declCount := len(result.Functions) + len(result.Classes)
	if declCount == 0 {
		return nil, nil
	}
	matches := docCommentRe.FindAllSubmatch(content, -1)
	density := "sparse"
	if len(matches) >= declCount {
		density = "dense"
	} else if len(matches) > 0 {
		density = "partial"
	}
	obs := []Observation{{
		DetectorID: "doc-density",
		Key:        "doc-comment-density",
		Value:      density,
		File:       result.FileID,
		Line:       1,
		Column:     1,
		Confidence: 0.6,
	}}

	for _, m := range matches {
		if len(m) < 3 {
			continue
		}
		word := strings.ToLower(string(m[2]))
		stem := e.stemmer.Stem(word)
		tense := "imperative"
		if strings.HasSuffix(word, "s") && stem != word {
			tense = "third-person"
		}
		obs = append(obs, Observation{
			DetectorID: "doc-density",
			Key:        "doc-comment-tense",
			Value:      tense,
			File:       result.FileID,
			Line:       1,
			Column:     1,
			Confidence: 0.4,
		})
		break // one representative sample per file keeps this an O(1) signal, not a per-comment flood
	}
	return obs, nil
}

// BuiltinExtractors returns every extractor chorus ships out of the box,
// ready to Register into an Engine's Registry.
func BuiltinExtractors() []ConventionExtractor {
	return []ConventionExtractor{
		NamingCaseExtractor{},
		ImportStyleExtractor{},
		TestLocationExtractor{},
		ErrorHandlingExtractor{},
		NewDocDensityExtractor(),
	}
}
