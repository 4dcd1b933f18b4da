package registry

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"
)

// parseKDLPatterns decodes a `pattern "id" { ... }` node list into Patterns.
// It mirrors the project config's hand-rolled KDL walker (small typed
// argument helpers over the document AST) rather than a generic struct
// decoder, matching the teacher's parsing idiom.
func parseKDLPatterns(content, source string) ([]Pattern, error) {
	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse KDL patterns: %w", source, err)
	}

	var patterns []Pattern
	for _, n := range doc.Nodes {
		if kdlNodeName(n) != "pattern" {
			continue
		}

		p := Pattern{Source: source}
		if id, ok := kdlFirstStringArg(n); ok {
			p.ID = id
		}

		for _, cn := range n.Children {
			switch kdlNodeName(cn) {
			case "kind":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Kind = Kind(s)
				}
			case "language":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Language = s
				}
			case "category":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Category = s
				}
			case "severity":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Severity = s
				}
			case "query":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Query = s
				}
			case "captures":
				p.Captures = kdlCollectStringArgs(cn)
			case "regex":
				if s, ok := kdlFirstStringArg(cn); ok {
					p.Regex = s
				}
			}
		}

		patterns = append(patterns, p)
	}

	return patterns, nil
}

func kdlNodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func kdlFirstStringArg(n *document.Node) (string, bool) {
	if n == nil || len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func kdlCollectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
