package convention

import "strings"

// generatedMarkers are filename fragments that conventionally mark a file
// as machine-generated — spec §4.3 Enforcement excludes these from
// violation emission the same way crypto findings get a severity discount
// for vendor/generated paths (internal/security/crypto.AdjustSeverity).
var generatedMarkers = []string{
	".pb.go", ".pb.gw.go", "_generated.", ".gen.", ".g.go",
	"/generated/", "\\generated\\", ".min.js", "_pb2.py",
}

// DefaultExcluder is the Excluder spec §4.3 Enforcement names: generated
// files are always excluded; test files are excluded only when
// ExcludeTests opts in, matched against TestPatterns the same coarse
// substring check internal/security/crypto.IsTestPath uses.
type DefaultExcluder struct {
	ExcludeTests bool
	TestPatterns []string
	Extra        []string // additional configured exclusion substrings
}

// Excluded reports whether path should be skipped during enforcement.
func (e DefaultExcluder) Excluded(path string) bool {
	if isGeneratedPath(path) {
		return true
	}
	if e.ExcludeTests && matchesAny(path, e.TestPatterns) {
		return true
	}
	return matchesAny(path, e.Extra)
}

func isGeneratedPath(path string) bool {
	return matchesAny(path, generatedMarkers)
}

func matchesAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if p == "" {
			continue
		}
		if strings.Contains(path, p) {
			return true
		}
	}
	return false
}
