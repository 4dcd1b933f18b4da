package convention

import (
	"fmt"

	"github.com/cespare/xxhash/v2"

	"github.com/standardbeagle/chorus/internal/model"
)

// Excluder decides whether a file is exempt from enforcement: generated
// files, configured exclusions, and optionally test files (spec §4.3
// Enforcement).
type Excluder interface {
	Excluded(path string) bool
}

// Dominant picks the dominant convention for a (detector, key) at the
// most specific applicable scope, per spec §4.3's "most-specific scope
// wins: directory > package > project, but only when opt-in scopes are
// enabled". candidates is every LearnedConvention sharing the same
// (detector, key) across scopes; file/pkg identify the enforcement
// target's own scope.
func Dominant(candidates []LearnedConvention, scopesEnabled bool, dir, pkg string) (LearnedConvention, bool) {
	if !scopesEnabled {
		return pickDominant(filterScope(candidates, Scope{}))
	}
	if lc, ok := pickDominant(filterScope(candidates, Scope{Directory: dir})); ok {
		return lc, true
	}
	if lc, ok := pickDominant(filterScope(candidates, Scope{Package: pkg})); ok {
		return lc, true
	}
	return pickDominant(filterScope(candidates, Scope{}))
}

func filterScope(candidates []LearnedConvention, scope Scope) []LearnedConvention {
	var out []LearnedConvention
	for _, c := range candidates {
		if c.Scope == scope {
			out = append(out, c)
		}
	}
	return out
}

// pickDominant returns the highest-frequency convention among candidates
// (all assumed to share one scope already).
func pickDominant(candidates []LearnedConvention) (LearnedConvention, bool) {
	var best LearnedConvention
	found := false
	for _, c := range candidates {
		if !found || c.Frequency() > best.Frequency() {
			best = c
			found = true
		}
	}
	return best, found
}

// Enforceable reports whether dominant meets the spec §4.3 minimum-evidence
// floor and isn't Contested or excluded. Skips: Contested category, below
// minimum evidence, Expired staleness (Stale conventions are excluded from
// enforcement too, per §4.3 Retention, but preserved for trend reporting).
func Enforceable(dominant LearnedConvention, min EnforcementMinimums, confidence float64) bool {
	if dominant.Category == CategoryContested {
		return false
	}
	if dominant.Staleness == StalenessStale || dominant.Staleness == StalenessExpired {
		return false
	}
	if dominant.FileCount < min.MinFiles {
		return false
	}
	if dominant.Occurrences < min.MinOccurrences {
		return false
	}
	if confidence < min.MinConfidence {
		return false
	}
	return true
}

// Enforce compares one file's observation for (detector, key) against the
// dominant convention and, when the observed value differs and the
// dominant convention is enforceable, emits a Violation with severity
// derived from the dominant's category (spec §4.3 Enforcement, §8
// invariant 7).
func Enforce(obs Observation, dominant LearnedConvention, min EnforcementMinimums, confidence float64, excluded bool) (model.Violation, bool) {
	if excluded {
		return model.Violation{}, false
	}
	if !Enforceable(dominant, min, confidence) {
		return model.Violation{}, false
	}
	if obs.Value == dominant.Value {
		return model.Violation{}, false
	}

	loc := model.Location{
		File:        obs.File,
		StartLine:   obs.Line,
		StartColumn: obs.Column,
		EndLine:     obs.Line,
		EndColumn:   obs.Column,
	}
	v := model.Violation{
		ID:                   violationID(obs.DetectorID, loc),
		PatternID:            obs.DetectorID + ":" + obs.Key,
		DetectorID:           obs.DetectorID,
		Severity:             SeverityFor(dominant.Category),
		Location:             loc,
		Message:              fmt.Sprintf("%s: expected %q, found %q", obs.Key, dominant.Value, obs.Value),
		Expected:             dominant.Value,
		Actual:               obs.Value,
		ConventionCategory:   string(dominant.Category),
		ConventionConfidence: confidence,
		ConventionTrend:      string(dominant.Trend),
	}
	return v, true
}

// violationID derives a stable identifier from (pattern, file, range) per
// spec §8 invariant 8: re-running an unchanged file must produce a
// bit-identical identifier, so this is a deterministic hash, never a
// random UUID.
func violationID(detectorID string, loc model.Location) string {
	h := xxhash.New()
	fmt.Fprintf(h, "%s|%d|%d|%d|%d|%d", detectorID, loc.File, loc.StartLine, loc.StartColumn, loc.EndLine, loc.EndColumn)
	return fmt.Sprintf("%016x", h.Sum64())
}
