package convention

import (
	"time"

	"github.com/standardbeagle/chorus/internal/confidence"
)

// ValuePosterior is the Beta(alpha, beta) belief that a given (detector,
// key, value) pair within a scope is the project's dominant choice. Below
// three distinct values per key, each value gets its own independent Beta
// posterior; at three or more, PosteriorSet switches to a single
// Dirichlet-Multinomial so the values compete for the same probability mass
// instead of drifting independently.
type ValuePosterior struct {
	Alpha float64
	Beta  float64

	FirstSeen time.Time
	LastSeen  time.Time
}

// Mean is the posterior's expected frequency.
func (p ValuePosterior) Mean() float64 {
	total := p.Alpha + p.Beta
	if total == 0 {
		return 0
	}
	return p.Alpha / total
}

// CredibleInterval returns the equal-tailed interval at the given mass.
func (p ValuePosterior) CredibleInterval(mass float64) (lower, upper float64) {
	return confidence.CredibleInterval(p.Alpha, p.Beta, mass)
}

// Width returns the credible interval's width at 95% mass, the measure
// classification uses to judge how settled a posterior is.
func (p ValuePosterior) Width() float64 {
	lower, upper := p.CredibleInterval(0.95)
	return upper - lower
}

// PosteriorSet holds one posterior per observed value for a (detector, key,
// scope) triple, switching representation once the value count crosses the
// Dirichlet-Multinomial threshold.
type PosteriorSet struct {
	DetectorID string
	Key        string
	Scope      Scope

	posteriors map[string]*ValuePosterior
	dirichlet  bool
}

// NewPosteriorSet creates an empty posterior set for (detectorID, key, scope).
func NewPosteriorSet(detectorID, key string, scope Scope) *PosteriorSet {
	return &PosteriorSet{
		DetectorID: detectorID,
		Key:        key,
		Scope:      scope,
		posteriors: make(map[string]*ValuePosterior),
	}
}

// Update folds a Distribution's evidence into the posterior set. Every value
// below the distribution's switch to Dirichlet-Multinomial gets a Beta(1,1)
// prior updated by successes (occurrences of that value) against failures
// (occurrences of every other value observed for the same key). Once three
// or more distinct values exist, each value's Beta approximates its
// marginal under a symmetric Dirichlet(1,...,1) prior updated by counts —
// alpha = 1 + occurrences(value), beta = 1 + occurrences(everything else).
// The two update rules collapse to the same arithmetic; IsMultiValued only
// changes how classify.go interprets the resulting posteriors (competing
// shares vs. independent yes/no beliefs).
func (ps *PosteriorSet) Update(dist *Distribution, now time.Time) {
	ps.dirichlet = dist.IsMultiValued()

	totalOccurrences := 0
	for _, v := range dist.Values() {
		totalOccurrences += dist.Occurrences(v)
	}

	for _, v := range dist.Values() {
		occ := dist.Occurrences(v)
		other := totalOccurrences - occ

		p, ok := ps.posteriors[v]
		if !ok {
			p = &ValuePosterior{Alpha: 1, Beta: 1, FirstSeen: now}
			ps.posteriors[v] = p
		}
		p.Alpha = 1 + float64(occ)
		p.Beta = 1 + float64(other)
		p.LastSeen = now
	}
}

// Get returns the posterior for value, if one has been recorded.
func (ps *PosteriorSet) Get(value string) (*ValuePosterior, bool) {
	p, ok := ps.posteriors[value]
	return p, ok
}

// IsDirichlet reports whether this set is in Dirichlet-Multinomial mode
// (three or more competing values).
func (ps *PosteriorSet) IsDirichlet() bool {
	return ps.dirichlet
}

// Values returns every value with a recorded posterior.
func (ps *PosteriorSet) Values() []string {
	out := make([]string, 0, len(ps.posteriors))
	for v := range ps.posteriors {
		out = append(out, v)
	}
	return out
}

// Expired reports whether this posterior set has aged past the expiry
// window (expiryDays + 30, per the retention policy) and should be deleted
// outright rather than merely marked stale.
func (ps *PosteriorSet) Expired(now time.Time, expiryDays int) bool {
	latest := ps.lastSeen()
	if latest.IsZero() {
		return false
	}
	cutoff := latest.AddDate(0, 0, expiryDays+30)
	return now.After(cutoff)
}

// Stale reports whether this posterior set has aged past the retention
// window but not yet past expiry — evidence kept but flagged as aging.
func (ps *PosteriorSet) Stale(now time.Time, retentionDays int) bool {
	latest := ps.lastSeen()
	if latest.IsZero() {
		return false
	}
	cutoff := latest.AddDate(0, 0, retentionDays)
	return now.After(cutoff)
}

func (ps *PosteriorSet) lastSeen() time.Time {
	var latest time.Time
	for _, p := range ps.posteriors {
		if p.LastSeen.After(latest) {
			latest = p.LastSeen
		}
	}
	return latest
}
