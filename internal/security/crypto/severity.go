package crypto

import "strings"

// severityRank orders Severity from lowest to highest so AdjustSeverity can
// step a finding up or down without a lookup table per transition.
var severityRank = []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}

func rankOf(s Severity) int {
	for i, r := range severityRank {
		if r == s {
			return i
		}
	}
	return 2 // unknown severities land at Medium
}

func atRank(i int) Severity {
	if i < 0 {
		i = 0
	}
	if i >= len(severityRank) {
		i = len(severityRank) - 1
	}
	return severityRank[i]
}

// AdjustSeverity applies spec §4.7's context-aware severity rules: a path
// matching a configured test-path pattern drops the finding one step, a
// finding inside a block already flagged SecurityContext (e.g. a function
// named with "crypto"/"security"/"auth" in scope, signalling the author
// meant to reach for cryptography deliberately rather than by accident)
// raises it one step, and a finding whose surrounding code already disables
// the check with a recognized suppression comment is dropped two steps.
func AdjustSeverity(base Severity, isTestPath, securityContext, suppressed bool) Severity {
	rank := rankOf(base)
	if isTestPath {
		rank--
	}
	if securityContext {
		rank++
	}
	if suppressed {
		rank -= 2
	}
	return atRank(rank)
}

// IsTestPath reports whether path matches one of the configured
// test-path glob-ish patterns (plain substring match, the same
// coarse-grained matching internal/security/file_validator.go already uses
// for its own path heuristics).
func IsTestPath(path string, patterns []string) bool {
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
