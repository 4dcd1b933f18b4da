package confidence

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegularizedIncompleteBeta_UniformDistributionIsIdentity(t *testing.T) {
	// Beta(1,1) is uniform on [0,1], so I_x(1,1) == x.
	for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		got := regularizedIncompleteBeta(x, 1, 1)
		assert.InDelta(t, x, got, 1e-6)
	}
}

func TestRegularizedIncompleteBeta_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, regularizedIncompleteBeta(0, 2, 3))
	assert.Equal(t, 1.0, regularizedIncompleteBeta(1, 2, 3))
}

func TestBetaInverseCDF_RoundTripsThroughForwardCDF(t *testing.T) {
	alpha, beta := 5.0, 3.0
	for _, p := range []float64{0.1, 0.5, 0.9} {
		x := betaInverseCDF(p, alpha, beta)
		back := regularizedIncompleteBeta(x, alpha, beta)
		assert.InDelta(t, p, back, 1e-3)
	}
}

func TestCredibleInterval_ContainsMean(t *testing.T) {
	alpha, beta := 10.0, 4.0
	lower, upper := credibleInterval(alpha, beta, 0.95)
	mean := alpha / (alpha + beta)
	assert.True(t, lower < mean && mean < upper, "mean %v should fall within [%v, %v]", mean, lower, upper)
	assert.True(t, lower >= 0 && upper <= 1)
}

func TestCredibleInterval_NarrowsWithMoreObservations(t *testing.T) {
	lowSample := func() float64 {
		lo, hi := credibleInterval(2, 2, 0.95)
		return hi - lo
	}()
	highSample := func() float64 {
		lo, hi := credibleInterval(200, 200, 0.95)
		return hi - lo
	}()
	assert.True(t, highSample < lowSample, "more observations should narrow the credible interval")
}

func TestBetaInverseCDF_ExtremesClampToZeroAndOne(t *testing.T) {
	assert.Equal(t, 0.0, betaInverseCDF(0, 2, 2))
	assert.Equal(t, 1.0, betaInverseCDF(1, 2, 2))
}

func TestRegularizedIncompleteBeta_MatchesKnownSymmetricPoint(t *testing.T) {
	// For a == b, I_0.5(a, a) == 0.5 by symmetry of the Beta(a,a) density.
	got := regularizedIncompleteBeta(0.5, 4, 4)
	assert.True(t, math.Abs(got-0.5) < 1e-6)
}
