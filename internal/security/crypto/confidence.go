package crypto

// ConfidenceFactors carries the four inputs spec §4.7's confidence blend
// weighs: the rule's own base confidence, whether the suspect library was
// actually imported in this file (vs. a same-named local function), whether
// the ArgCheck that fired inspected real argument values (vs. a bare
// callee-name match with no arguments to check), and whether the call site
// sits in a function/file already flagged security-relevant.
type ConfidenceFactors struct {
	Base            float64
	ImportConfirmed bool
	ArgValidated    bool
	SecurityContext bool
}

const (
	weightBase            = 0.35
	weightImportConfirmed = 0.25
	weightArgValidated    = 0.25
	weightSecurityContext = 0.15
)

// Confidence blends ConfidenceFactors per spec §4.7's weights
// (0.35/0.25/0.25/0.15) and clamps to [0.1, 0.99] — the same floor/ceiling
// internal/confidence/scorer.go applies to convention confidence, kept
// consistent across both engines so downstream consumers can treat any
// confidence value the same way.
func Confidence(f ConfidenceFactors) float64 {
	score := f.Base * weightBase
	if f.ImportConfirmed {
		score += weightImportConfirmed
	}
	if f.ArgValidated {
		score += weightArgValidated
	}
	if f.SecurityContext {
		score += weightSecurityContext
	}
	switch {
	case score < 0.1:
		return 0.1
	case score > 0.99:
		return 0.99
	default:
		return score
	}
}
