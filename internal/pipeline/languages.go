// Package pipeline runs the per-file analysis protocol: parse with
// tree-sitter, then walk the result through four passes (structural
// queries, normalized-AST visitor, string extraction, string-pattern
// matching) feeding whatever detectors the registry has wired up.
package pipeline

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_csharp "github.com/tree-sitter/tree-sitter-c-sharp/bindings/go"
	tree_sitter_cpp "github.com/tree-sitter/tree-sitter-cpp/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_java "github.com/tree-sitter/tree-sitter-java/bindings/go"
	tree_sitter_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	tree_sitter_php "github.com/tree-sitter/tree-sitter-php/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"

	"github.com/standardbeagle/chorus/internal/errors"
)

// Language names the nine grammars chorus has first-class tree queries for.
// Everything else (Ruby, Kotlin, Swift, ...) only gets the normalized-AST
// and regex-based passes, never the structural-query pass.
type Language string

const (
	LangGo         Language = "go"
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangTypeScript Language = "typescript"
	LangJava       Language = "java"
	LangCSharp     Language = "csharp"
	LangPHP        Language = "php"
	LangRust       Language = "rust"
	LangCPP        Language = "cpp"
)

// extensionLanguages maps a file extension to the grammar that parses it.
var extensionLanguages = map[string]Language{
	".go":   LangGo,
	".py":   LangPython,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".mjs":  LangJavaScript,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".java": LangJava,
	".cs":   LangCSharp,
	".php":  LangPHP,
	".rs":   LangRust,
	".cpp":  LangCPP,
	".cc":   LangCPP,
	".hpp":  LangCPP,
	".h":    LangCPP,
}

// LanguageForPath returns the grammar for path's extension and whether one
// was found. Files with no registered grammar still flow through the
// normalized-AST-free passes (string extraction, pattern matching).
func LanguageForPath(ext string) (Language, bool) {
	lang, ok := extensionLanguages[ext]
	return lang, ok
}

func grammarFor(lang Language) (*tree_sitter.Language, error) {
	switch lang {
	case LangGo:
		return tree_sitter.NewLanguage(tree_sitter_go.Language()), nil
	case LangPython:
		return tree_sitter.NewLanguage(tree_sitter_python.Language()), nil
	case LangJavaScript:
		return tree_sitter.NewLanguage(tree_sitter_javascript.Language()), nil
	case LangTypeScript:
		return tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()), nil
	case LangJava:
		return tree_sitter.NewLanguage(tree_sitter_java.Language()), nil
	case LangCSharp:
		return tree_sitter.NewLanguage(tree_sitter_csharp.Language()), nil
	case LangPHP:
		return tree_sitter.NewLanguage(tree_sitter_php.LanguagePHP()), nil
	case LangRust:
		return tree_sitter.NewLanguage(tree_sitter_rust.Language()), nil
	case LangCPP:
		return tree_sitter.NewLanguage(tree_sitter_cpp.Language()), nil
	default:
		return nil, errors.NewUnsupportedLanguageError(string(lang))
	}
}

// LanguageSet lazily builds and caches one *tree_sitter.Parser per language,
// mirroring the teacher's per-extension lazy-init table but keyed by the
// smaller Language enum instead of raw extensions.
type LanguageSet struct {
	parsers  map[Language]*tree_sitter.Parser
	grammars map[Language]*tree_sitter.Language
}

// NewLanguageSet returns an empty set; parsers are created on first use.
func NewLanguageSet() *LanguageSet {
	return &LanguageSet{
		parsers:  make(map[Language]*tree_sitter.Parser),
		grammars: make(map[Language]*tree_sitter.Language),
	}
}

// Parser returns the tree-sitter parser for lang, creating and caching it on
// first request.
func (ls *LanguageSet) Parser(lang Language) (*tree_sitter.Parser, error) {
	if p, ok := ls.parsers[lang]; ok {
		return p, nil
	}

	grammar, err := grammarFor(lang)
	if err != nil {
		return nil, err
	}

	parser := tree_sitter.NewParser()
	if err := parser.SetLanguage(grammar); err != nil {
		return nil, errors.NewUnsupportedLanguageError(string(lang))
	}

	ls.parsers[lang] = parser
	ls.grammars[lang] = grammar
	return parser, nil
}

// Grammar returns the compiled *tree_sitter.Language for lang, for use by
// the pattern registry when it compiles a query against this grammar.
func (ls *LanguageSet) Grammar(lang Language) (*tree_sitter.Language, error) {
	if _, err := ls.Parser(lang); err != nil {
		return nil, err
	}
	return ls.grammars[lang], nil
}
