// Package confidence implements the Bayesian confidence scorer: a
// Beta-Binomial posterior per (detector, pattern, scope) blended with a
// classical frequentist factor combination, producing a tiered score that
// drives enforcement behavior.
package confidence

import (
	"fmt"
	"math"

	"github.com/standardbeagle/chorus/internal/config"
)

// Posterior is the Beta(alpha, beta) belief state for one pattern.
type Posterior struct {
	Alpha float64
	Beta  float64
}

// Mean is the posterior mean, alpha/(alpha+beta).
func (p Posterior) Mean() float64 {
	if p.Alpha+p.Beta == 0 {
		return 0
	}
	return p.Alpha / (p.Alpha + p.Beta)
}

// NEffective is the posterior's effective observation count, alpha+beta-2
// (the two degrees of freedom contributed by the prior), floored at zero.
func (p Posterior) NEffective() float64 {
	return math.Max(0, p.Alpha+p.Beta-2)
}

// Factors are the five classical frequentist inputs blended with the
// posterior, computed per spec from raw scan evidence.
type Factors struct {
	Frequency   float64 // occurrences / total_locations
	Consistency float64 // 1 - clamp(variance, 0, 1)
	AgeFactor   float64 // linear ramp from MinAgeFactor at day 0 to 1.0 at MaxAgeDays, decayed on declining frequency
	Spread      float64 // file_count / total_files
	Momentum    float64 // clamp((current-previous)/previous, -1, 1); zero until scan_count>=3 and total_files>=50
}

// Tier is the enforcement tier a Score maps to.
type Tier string

const (
	TierEstablished Tier = "established" // enforce
	TierEmerging    Tier = "emerging"    // flag
	TierTentative   Tier = "tentative"   // inform
	TierUncertain   Tier = "uncertain"   // silent
)

// EnforcementFor returns the action a Tier implies, for callers that want
// the behavior rather than the label.
func EnforcementFor(t Tier) string {
	switch t {
	case TierEstablished:
		return "enforce"
	case TierEmerging:
		return "flag"
	case TierTentative:
		return "inform"
	default:
		return "silent"
	}
}

// Score is the scorer's full output: the v2 posterior-blended score (with
// its tier and credible interval), and the v1 classical score kept
// alongside it during the migration period.
type Score struct {
	V2              float64
	Tier            Tier
	CredibleLower   float64
	CredibleUpper   float64
	PosteriorWeight float64
	V1              float64
}

// CredibleWidth is the width of the v2 credible interval.
func (s Score) CredibleWidth() float64 {
	return s.CredibleUpper - s.CredibleLower
}

// FeedbackEvent is a user action on a finding that nudges its posterior.
type FeedbackEvent string

const (
	FeedbackFixed             FeedbackEvent = "fixed"
	FeedbackUseful            FeedbackEvent = "useful"
	FeedbackIgnored           FeedbackEvent = "ignored"
	FeedbackApprovedDeviation FeedbackEvent = "approved_deviation"
	FeedbackNotUseful         FeedbackEvent = "not_useful"
)

// ApplyFeedback nudges a posterior per a feedback event. Weights are
// intentionally small so real scan evidence continues to dominate.
func ApplyFeedback(p Posterior, event FeedbackEvent) (Posterior, error) {
	switch event {
	case FeedbackFixed, FeedbackUseful:
		p.Alpha += 0.1
	case FeedbackIgnored:
		p.Beta += 0.05
	case FeedbackApprovedDeviation, FeedbackNotUseful:
		p.Beta += 0.1
	default:
		return p, fmt.Errorf("confidence: unknown feedback event %q", event)
	}
	return p, nil
}

// Scorer computes Score values from a Posterior and Factors, memoizing
// results per pattern identity the way the teacher's CachedMetricsCalculator
// memoizes per content hash.
type Scorer struct {
	cfg   config.Confidence
	cache *scoreCache
}

// New creates a Scorer using cfg's priors and credible-interval mass.
func New(cfg config.Confidence) *Scorer {
	return &Scorer{cfg: cfg, cache: newScoreCache(0)}
}

// weights for the v2 blended factor combination (frequency, consistency,
// age, spread, momentum).
const (
	weightFrequency   = 0.30
	weightConsistency = 0.25
	weightAge         = 0.10
	weightSpread      = 0.15
	weightMomentum    = 0.20
)

// v1 weights, kept for the backward-compatible parallel score.
const (
	v1WeightFrequency   = 0.40
	v1WeightConsistency = 0.30
	v1WeightAge         = 0.15
	v1WeightSpread      = 0.15
)

// Score blends factors with posterior into the tiered v2 score, alongside
// the v1 classical score, for patternID's current evidence.
func (s *Scorer) Score(patternID string, posterior Posterior, factors Factors) Score {
	if cached, ok := s.cache.get(patternID, posterior, factors); ok {
		return cached
	}

	weighted := weightFrequency*factors.Frequency +
		weightConsistency*factors.Consistency +
		weightAge*factors.AgeFactor +
		weightSpread*factors.Spread +
		weightMomentum*((factors.Momentum+1)/2)

	nEffective := posterior.NEffective()
	posteriorWeight := math.Min(0.5, nEffective/(nEffective+10))

	mean := posterior.Mean()
	v2 := clamp01(mean*posteriorWeight + weighted*(1-posteriorWeight))

	mass := s.cfg.CredibleInterval
	if mass <= 0 || mass >= 1 {
		mass = 0.95
	}
	lower, upper := credibleInterval(posterior.Alpha, posterior.Beta, mass)

	v1 := v1WeightFrequency*factors.Frequency +
		v1WeightConsistency*factors.Consistency +
		v1WeightAge*factors.AgeFactor +
		v1WeightSpread*factors.Spread

	score := Score{
		V2:              v2,
		Tier:            tierFor(mean, upper-lower),
		CredibleLower:   lower,
		CredibleUpper:   upper,
		PosteriorWeight: posteriorWeight,
		V1:              clamp01(v1),
	}

	s.cache.put(patternID, posterior, factors, score)
	return score
}

// Authoritative returns whichever of V1/V2 the feature flag designates as
// authoritative for enforcement decisions.
func (s Score) Authoritative(v1Flag bool) float64 {
	if v1Flag {
		return s.V1
	}
	return s.V2
}

func tierFor(mean, ciWidth float64) Tier {
	switch {
	case mean > 0.7 && ciWidth < 0.15:
		return TierEstablished
	case mean > 0.5 && ciWidth < 0.25:
		return TierEmerging
	case mean > 0.3 && ciWidth < 0.40:
		return TierTentative
	default:
		return TierUncertain
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ComputeMomentum applies the gating rule: momentum is only active once
// enough scans and files have accumulated, otherwise it's held at zero so
// early, noisy deltas can't swing the score.
func ComputeMomentum(currentFreq, previousFreq float64, scanCount, totalFiles int) float64 {
	if scanCount < 3 || totalFiles < 50 || previousFreq == 0 {
		return 0
	}
	m := (currentFreq - previousFreq) / previousFreq
	if m < -1 {
		return -1
	}
	if m > 1 {
		return 1
	}
	return m
}

// ComputeAgeFactor ramps linearly from minAgeFactor at day 0 to 1.0 at
// maxAgeDays, then applies a multiplicative decay equal to
// current/previous whenever frequency declined between scans (no decay if
// frequency is stable or rising).
func ComputeAgeFactor(ageDays, maxAgeDays int, minAgeFactor, currentFreq, previousFreq float64) float64 {
	if maxAgeDays <= 0 {
		maxAgeDays = 30
	}
	if minAgeFactor <= 0 {
		minAgeFactor = 0.1
	}

	ramp := minAgeFactor + (1-minAgeFactor)*float64(ageDays)/float64(maxAgeDays)
	if ramp > 1 {
		ramp = 1
	}
	if ramp < minAgeFactor {
		ramp = minAgeFactor
	}

	if previousFreq > 0 && currentFreq < previousFreq {
		ramp *= currentFreq / previousFreq
	}
	return ramp
}
