package crypto

import (
	"bytes"
	"strings"
)

// securityContextIndicators are substrings in a callee name, an argument,
// or a file path that mark the surrounding code as deliberately
// security-relevant (spec §4.7 severity adjustment: "variable name,
// function name, or file path contains a password/auth indicator").
var securityContextIndicators = []string{
	"password", "passwd", "pwd", "secret", "auth", "login", "credential",
	"token", "session", "apikey", "api_key", "privatekey", "private_key",
}

// HasSecurityContextIndicator reports whether any of name's constituent
// identifiers (a callee, an argument, a path) contains one of
// securityContextIndicators, matched case-insensitively by substring the
// same coarse way LooksSensitive matches field names.
func HasSecurityContextIndicator(name string) bool {
	lower := strings.ToLower(name)
	for _, ind := range securityContextIndicators {
		if strings.Contains(lower, ind) {
			return true
		}
	}
	return false
}

// securityContextFor reports whether site's callee/arguments or path carry
// a password/auth indicator.
func securityContextFor(site CallSite, path string) bool {
	if HasSecurityContextIndicator(site.Callee) || HasSecurityContextIndicator(path) {
		return true
	}
	for _, a := range site.Args {
		if HasSecurityContextIndicator(a) {
			return true
		}
	}
	return false
}

// vendorOrGeneratedMarkers mirror internal/convention's generated-file
// exclusion list (internal/convention.generatedMarkers); duplicated here
// rather than shared since that list is unexported and the two packages
// have no common dependency to host a shared one without adding a new
// cross-cutting package for a half-dozen string constants.
var vendorOrGeneratedMarkers = []string{
	"/vendor/", "\\vendor\\", ".pb.go", ".gen.", "_generated.", ".g.go",
}

func isVendorOrGenerated(path string) bool {
	lower := strings.ToLower(path)
	for _, m := range vendorOrGeneratedMarkers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// suppressionMarkers are comment substrings spec §4.7 names as reducing
// severity: "a todo/fixme comment is adjacent".
var suppressionMarkers = []string{"todo", "fixme", "nolint", "noqa"}

// suppressedNear reports whether any line within one of line (1-indexed,
// tree-sitter row + 1) carries a suppression comment marker — a coarse
// adjacency check rather than a true comment-node lookup, since the crypto
// visitor only sees the call-expression node, not its sibling comments.
func suppressedNear(content []byte, line int) bool {
	lines := bytes.Split(content, []byte("\n"))
	for _, delta := range []int{-1, 0, 1} {
		idx := line - 1 + delta
		if idx < 0 || idx >= len(lines) {
			continue
		}
		lower := strings.ToLower(string(lines[idx]))
		for _, m := range suppressionMarkers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}
