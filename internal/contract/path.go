package contract

import (
	"regexp"
	"strings"

	"github.com/yosida95/uritemplate/v3"
)

// paramSyntaxes are the non-RFC-6570 parameter forms spec §4.6 normalizes
// to ":param" — colon-prefix is already canonical, angle-bracket (Flask/
// Sinatra), type-annotated bracket (Falcon/hug: "[int:id]"), and
// template-literal (JS template-string route builders: "${id}").
var (
	angleBracketParam     = regexp.MustCompile(`<([A-Za-z_][A-Za-z0-9_]*)>`)
	typedBracketParam     = regexp.MustCompile(`\[[A-Za-z]+:([A-Za-z_][A-Za-z0-9_]*)\]`)
	templateLiteralParam  = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_.]*)\}`)
	apiVersionSegment     = regexp.MustCompile(`^v[0-9]+(\.[0-9]+)?$`)
)

// NormalizedPath is the result of NormalizePath: the canonical ":param"
// path plus the API version segment, if one was found and extracted.
type NormalizedPath struct {
	Path    string
	Version string
}

// NormalizePath reduces any of the five parameter syntaxes spec §4.6
// describes — colon-prefix, curly-brace (RFC 6570, parsed via
// github.com/yosida95/uritemplate/v3 to recognize the variable span),
// angle-bracket, type-annotated bracket, and template-literal — to a
// common ":param" form. A leading slash is enforced, a trailing slash is
// removed, and an empty path normalizes to "/". Any API version segment
// ("v1", "v2.1") is extracted into NormalizedPath.Version rather than left
// in Path, so version-only differences don't defeat path matching.
func NormalizePath(raw string) NormalizedPath {
	p := raw
	if tmpl, err := uritemplate.New(p); err == nil {
		for _, name := range tmpl.Varnames() {
			p = strings.ReplaceAll(p, "{"+name+"}", ":"+name)
		}
	}
	p = angleBracketParam.ReplaceAllString(p, ":$1")
	p = typedBracketParam.ReplaceAllString(p, ":$1")
	p = templateLiteralParam.ReplaceAllString(p, ":$1")

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		p = "/"
	}

	segments := strings.Split(strings.Trim(p, "/"), "/")
	var version string
	kept := segments[:0]
	for _, seg := range segments {
		if version == "" && apiVersionSegment.MatchString(seg) {
			version = seg
			continue
		}
		kept = append(kept, seg)
	}
	if version != "" {
		p = "/" + strings.Join(kept, "/")
	}

	return NormalizedPath{Path: p, Version: version}
}

// SimilarityWeights are the five factors' default weights, spec §4.6:
// Jaccard/segment-count/suffix/resource-name/param-position at
// 0.30/0.15/0.20/0.25/0.10.
type SimilarityWeights struct {
	Jaccard, SegmentCount, Suffix, ResourceName, ParamPosition float64
}

// DefaultSimilarityWeights returns the spec's default path-similarity
// weights.
func DefaultSimilarityWeights() SimilarityWeights {
	return SimilarityWeights{Jaccard: 0.30, SegmentCount: 0.15, Suffix: 0.20, ResourceName: 0.25, ParamPosition: 0.10}
}

func splitSegments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func isParamSegment(seg string) bool { return strings.HasPrefix(seg, ":") }

func nonParamSegments(segs []string) map[string]bool {
	out := make(map[string]bool)
	for _, s := range segs {
		if !isParamSegment(s) {
			out[s] = true
		}
	}
	return out
}

// PathSimilarity computes spec §4.6's five-factor weighted path-similarity
// score between two already-normalized paths. An exact match short-circuits
// to 1.0.
func PathSimilarity(a, b string, w SimilarityWeights) float64 {
	if a == b {
		return 1.0
	}
	segsA, segsB := splitSegments(a), splitSegments(b)

	jaccard := jaccardScore(nonParamSegments(segsA), nonParamSegments(segsB))
	segCount := segmentCountScore(len(segsA), len(segsB))
	suffix := suffixScore(segsA, segsB)
	resource := resourceNameScore(segsA, segsB)
	paramPos := paramPositionScore(segsA, segsB)

	return jaccard*w.Jaccard + segCount*w.SegmentCount + suffix*w.Suffix +
		resource*w.ResourceName + paramPos*w.ParamPosition
}

func jaccardScore(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	union := make(map[string]bool)
	intersection := 0
	for s := range a {
		union[s] = true
		if b[s] {
			intersection++
		}
	}
	for s := range b {
		union[s] = true
	}
	if len(union) == 0 {
		return 0
	}
	return float64(intersection) / float64(len(union))
}

func segmentCountScore(na, nb int) float64 {
	if na == nb {
		return 1.0
	}
	diff := na - nb
	if diff < 0 {
		diff = -diff
	}
	maxN := na
	if nb > maxN {
		maxN = nb
	}
	if maxN == 0 {
		return 1.0
	}
	return 1.0 - float64(diff)/float64(maxN)
}

func suffixScore(a, b []string) float64 {
	matches := 0
	for i := 0; i < len(a) && i < len(b); i++ {
		ia, ib := len(a)-1-i, len(b)-1-i
		if a[ia] == b[ib] || (isParamSegment(a[ia]) && isParamSegment(b[ib])) {
			matches++
		} else {
			break
		}
	}
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	return float64(matches) / float64(maxLen)
}

// resourceNameScore compares the final non-parameter segment of each path
// — spec §4.6's "resource-name (final non-parameter segment) equality".
func resourceNameScore(a, b []string) float64 {
	ra, oka := lastNonParamSegment(a)
	rb, okb := lastNonParamSegment(b)
	if !oka || !okb {
		return 0
	}
	if ra == rb {
		return 1.0
	}
	return 0
}

func lastNonParamSegment(segs []string) (string, bool) {
	for i := len(segs) - 1; i >= 0; i-- {
		if !isParamSegment(segs[i]) {
			return segs[i], true
		}
	}
	return "", false
}

// paramPositionScore compares whether parameter segments occupy the same
// positional indices in both paths, spec §4.6's "parameter-position
// alignment".
func paramPositionScore(a, b []string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 1.0
	}
	matches := 0
	for i := 0; i < maxLen; i++ {
		var pa, pb bool
		if i < len(a) {
			pa = isParamSegment(a[i])
		}
		if i < len(b) {
			pb = isParamSegment(b[i])
		}
		if pa == pb {
			matches++
		}
	}
	return float64(matches) / float64(maxLen)
}
