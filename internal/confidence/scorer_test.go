package confidence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/standardbeagle/chorus/internal/config"
)

func defaultConfig() config.Confidence {
	return config.Confidence{
		PriorAlpha:       1.0,
		PriorBeta:        1.0,
		CredibleInterval: 0.95,
		MinObservations:  5,
	}
}

func TestPosterior_Mean(t *testing.T) {
	p := Posterior{Alpha: 8, Beta: 2}
	assert.InDelta(t, 0.8, p.Mean(), 1e-9)
}

func TestPosterior_NEffective_FlooredAtZero(t *testing.T) {
	p := Posterior{Alpha: 1, Beta: 1}
	assert.Equal(t, 0.0, p.NEffective())
}

func TestScorer_Score_EstablishedTierForStrongEvidence(t *testing.T) {
	s := New(defaultConfig())
	posterior := Posterior{Alpha: 95, Beta: 5}
	factors := Factors{Frequency: 0.9, Consistency: 0.95, AgeFactor: 1.0, Spread: 0.8, Momentum: 0}

	score := s.Score("go.error.wrap", posterior, factors)
	assert.Equal(t, TierEstablished, score.Tier)
	assert.Equal(t, "enforce", EnforcementFor(score.Tier))
	assert.True(t, score.V2 > 0.7)
}

func TestScorer_Score_UncertainTierForSparseEvidence(t *testing.T) {
	s := New(defaultConfig())
	posterior := Posterior{Alpha: 1, Beta: 1}
	factors := Factors{Frequency: 0.1, Consistency: 0.2, AgeFactor: 0.1, Spread: 0.05, Momentum: 0}

	score := s.Score("go.rare.pattern", posterior, factors)
	assert.Equal(t, TierUncertain, score.Tier)
	assert.Equal(t, "silent", EnforcementFor(score.Tier))
}

func TestScorer_Score_PosteriorWeightCapsAtHalf(t *testing.T) {
	s := New(defaultConfig())
	posterior := Posterior{Alpha: 5000, Beta: 5}
	factors := Factors{Frequency: 0.5, Consistency: 0.5, AgeFactor: 0.5, Spread: 0.5, Momentum: 0}

	score := s.Score("go.huge.sample", posterior, factors)
	assert.LessOrEqual(t, score.PosteriorWeight, 0.5)
}

func TestScorer_Score_V1IsComputedAlongsideV2(t *testing.T) {
	s := New(defaultConfig())
	posterior := Posterior{Alpha: 10, Beta: 2}
	factors := Factors{Frequency: 1.0, Consistency: 1.0, AgeFactor: 1.0, Spread: 1.0, Momentum: 0}

	score := s.Score("go.full.evidence", posterior, factors)
	assert.InDelta(t, 1.0, score.V1, 1e-9)
}

func TestScore_Authoritative_RespectsFlag(t *testing.T) {
	score := Score{V1: 0.3, V2: 0.9}
	assert.Equal(t, 0.3, score.Authoritative(true))
	assert.Equal(t, 0.9, score.Authoritative(false))
}

func TestScorer_Score_CachesRepeatedCalls(t *testing.T) {
	s := New(defaultConfig())
	posterior := Posterior{Alpha: 4, Beta: 6}
	factors := Factors{Frequency: 0.4, Consistency: 0.5, AgeFactor: 0.6, Spread: 0.3, Momentum: 0.1}

	first := s.Score("go.cached.pattern", posterior, factors)
	second := s.Score("go.cached.pattern", posterior, factors)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), s.cache.hits)
}

func TestApplyFeedback_AdjustsPosteriorBySmallWeights(t *testing.T) {
	p := Posterior{Alpha: 1, Beta: 1}

	fixed, err := ApplyFeedback(p, FeedbackFixed)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, fixed.Alpha, 1e-9)
	assert.InDelta(t, 1.0, fixed.Beta, 1e-9)

	ignored, err := ApplyFeedback(p, FeedbackIgnored)
	require.NoError(t, err)
	assert.InDelta(t, 1.05, ignored.Beta, 1e-9)

	notUseful, err := ApplyFeedback(p, FeedbackNotUseful)
	require.NoError(t, err)
	assert.InDelta(t, 1.1, notUseful.Beta, 1e-9)
}

func TestApplyFeedback_UnknownEventIsError(t *testing.T) {
	_, err := ApplyFeedback(Posterior{Alpha: 1, Beta: 1}, FeedbackEvent("bogus"))
	assert.Error(t, err)
}

func TestComputeMomentum_ZeroBeforeThresholds(t *testing.T) {
	assert.Equal(t, 0.0, ComputeMomentum(0.5, 0.2, 2, 100))
	assert.Equal(t, 0.0, ComputeMomentum(0.5, 0.2, 5, 10))
}

func TestComputeMomentum_ClampsToUnitRange(t *testing.T) {
	assert.Equal(t, 1.0, ComputeMomentum(10, 1, 5, 100))
	assert.Equal(t, -1.0, ComputeMomentum(0, 5, 5, 100))
}

func TestComputeAgeFactor_RampsLinearly(t *testing.T) {
	f := ComputeAgeFactor(15, 30, 0.1, 1.0, 1.0)
	assert.InDelta(t, 0.1+0.9*0.5, f, 1e-9)
}

func TestComputeAgeFactor_DecaysOnDecliningFrequency(t *testing.T) {
	stable := ComputeAgeFactor(30, 30, 0.1, 0.5, 0.5)
	declining := ComputeAgeFactor(30, 30, 0.1, 0.25, 0.5)
	assert.InDelta(t, 1.0, stable, 1e-9)
	assert.InDelta(t, 0.5, declining, 1e-9)
}
