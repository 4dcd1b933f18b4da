package contract

import "math"

// ConfidenceSignals carries spec §4.6's seven independent confidence
// inputs: match confidence (how sure the path/operation matcher was),
// extraction confidence (how sure the parser/extractor was about the
// shape it emitted), source quality (spec+code agreement scores highest,
// a spec-only or code-only source lower, inferred types lowest), test
// coverage, historical stability (how often this contract has changed
// recently), usage frequency (how many consumers reference it), and
// cross-validation (agreement between independent extractors that found
// the same operation).
type ConfidenceSignals struct {
	MatchConfidence      float64
	ExtractionConfidence float64
	SourceQuality        float64
	TestCoverage         float64
	HistoricalStability  float64
	UsageFrequency       float64
	CrossValidation      float64
}

const (
	weightMatch      = 0.25
	weightExtraction = 0.20
	weightSource     = 0.20
	weightTest       = 0.10
	weightStability  = 0.10
	weightUsage      = 0.05
	weightCross      = 0.10
)

// SourceQualityFor scores Provenance.Kind per spec §4.6's ordering:
// spec+code agreement highest, spec-only or code-only in the middle,
// inferred (neither a declared spec nor a recognized framework extractor)
// lowest.
func SourceQualityFor(kind ProvenanceKind) float64 {
	switch kind {
	case ProvenanceBoth:
		return 1.0
	case ProvenanceSpec, ProvenanceContractTest:
		return 0.75
	case ProvenanceCode:
		return 0.5
	default:
		return 0.25
	}
}

// Confidence blends ConfidenceSignals at spec §4.6's weights
// (0.25/0.20/0.20/0.10/0.10/0.05/0.10), then applies an exponential
// verification-recency decay exp(-0.01*daysSinceVerified); a contract that
// has never been verified takes a flat 5% penalty instead of the decay
// term.
func Confidence(s ConfidenceSignals, daysSinceVerified float64, neverVerified bool) float64 {
	base := s.MatchConfidence*weightMatch +
		s.ExtractionConfidence*weightExtraction +
		s.SourceQuality*weightSource +
		s.TestCoverage*weightTest +
		s.HistoricalStability*weightStability +
		s.UsageFrequency*weightUsage +
		s.CrossValidation*weightCross

	if neverVerified {
		return clamp01(base * 0.95)
	}
	decay := math.Exp(-0.01 * daysSinceVerified)
	return clamp01(base * decay)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
