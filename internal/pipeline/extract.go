package pipeline

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/standardbeagle/chorus/internal/types"
)

// stringNodeKinds lists the tree-sitter node kinds that hold a string
// literal across the nine supported grammars. The grammars differ in name
// (Go: interpreted_string_literal, Python/JS/etc: string), so this is a
// union rather than a single kind.
var stringNodeKinds = map[string]bool{
	"string":                     true,
	"interpreted_string_literal": true,
	"raw_string_literal":         true,
	"string_literal":             true,
	"template_string":            true,
	"verbatim_string_literal":    true,
}

// extractStringLiterals runs the string-extraction pass: harvest every
// string-literal node, strip its quotes, discard anything shorter than
// minLiteralLength, and classify the syntactic context it was found in.
func extractStringLiterals(content []byte, tree *tree_sitter.Tree, fileID types.FileID) []StringLiteral {
	if tree == nil {
		return nil
	}

	var out []StringLiteral
	var walk func(node *tree_sitter.Node)
	walk = func(node *tree_sitter.Node) {
		if stringNodeKinds[node.Kind()] {
			raw := string(content[node.StartByte():node.EndByte()])
			value := stripQuotes(raw)
			if len(value) >= minLiteralLength {
				out = append(out, StringLiteral{
					Value:   value,
					File:    fileID,
					Line:    int(node.StartPosition().Row) + 1,
					Column:  int(node.StartPosition().Column),
					Context: classifyContext(node),
				})
			}
		}

		count := int(node.ChildCount())
		for i := 0; i < count; i++ {
			if child := node.Child(uint(i)); child != nil {
				walk(child)
			}
		}
	}
	walk(tree.RootNode())

	return out
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' || first == '\'' || first == '`') && first == last {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// classifyContext inspects the literal's immediate parent to decide its
// ExtractionContext, per the seven-way classification the spec defines.
func classifyContext(node *tree_sitter.Node) ExtractionContext {
	parent := node.Parent()
	if parent == nil {
		return ContextUnknown
	}

	switch parent.Kind() {
	case "argument_list", "arguments":
		return ContextFunctionArgument
	case "assignment_expression", "variable_declarator", "short_var_declaration", "assignment":
		return ContextVariableAssignment
	case "pair", "property", "field_declaration":
		return ContextObjectProperty
	case "decorator":
		return ContextDecorator
	case "return_statement":
		return ContextReturnValue
	case "array", "list", "array_literal":
		return ContextArrayElement
	default:
		return ContextUnknown
	}
}
