// Package convention implements the convention learning engine: it
// observes how a project actually writes code (error handling style,
// naming, import grouping, and the like) via a registry of per-detector
// extractors, accumulates the evidence into Beta/Dirichlet posteriors per
// (detector, key, value, scope), and classifies + enforces the dominant
// choice once enough evidence exists.
package convention

import (
	"time"

	"github.com/standardbeagle/chorus/internal/config"
)

// Staleness marks where a LearnedConvention sits in the retention
// lifecycle (spec §4.3 Retention).
type Staleness string

const (
	StalenessFresh   Staleness = "Fresh"
	StalenessStale   Staleness = "Stale"
	StalenessExpired Staleness = "Expired"
)

// Key identifies one (detector, convention key, value, scope) tuple — the
// granularity a LearnedConvention and its posterior are tracked at.
type Key struct {
	DetectorID string
	ConvKey    string
	Value      string
	Scope      Scope
}

// LearnedConvention is the entity from spec §3: one value of one
// (detector, key) pair at one scope, with its posterior-derived
// classification, trend, and lifecycle state.
type LearnedConvention struct {
	Key

	Alpha, Beta    float64
	FileCount      int
	TotalFiles     int
	Occurrences    int
	Category       Category
	Trend          Trend
	Staleness      Staleness
	FirstSeen      time.Time
	LastUpdated    time.Time
}

// Frequency is the posterior mean, the classification input spec §4.3
// calls "frequency".
func (lc LearnedConvention) Frequency() float64 {
	total := lc.Alpha + lc.Beta
	if total == 0 {
		return 0
	}
	return lc.Alpha / total
}

// state bundles per-(detector,key,scope) tracking that persists across
// scans: one PosteriorSet (per value) and one History per value.
type state struct {
	posteriors *PosteriorSet
	histories  map[string]*History // value -> history
	firstSeen  map[string]time.Time
}

// Engine runs the learning pass, aggregation, classification, and
// enforcement described in spec §4.3. One Engine instance is scoped to one
// project (it owns all cross-scan state for that project).
type Engine struct {
	Registry *Registry
	cfg      config.Convention

	states map[string]*state // keyed by DetectorID|ConvKey|Scope string
}

// New returns an Engine backed by an empty extractor registry and cfg's
// thresholds/retention policy.
func New(cfg config.Convention) *Engine {
	return &Engine{
		Registry: NewRegistry(),
		cfg:      cfg,
		states:   make(map[string]*state),
	}
}

func stateKey(detectorID, key string, scope Scope) string {
	return detectorID + "|" + key + "|" + scope.Directory + "|" + scope.Package
}

func (e *Engine) stateFor(detectorID, key string, scope Scope) *state {
	k := stateKey(detectorID, key, scope)
	st, ok := e.states[k]
	if !ok {
		st = &state{
			posteriors: NewPosteriorSet(detectorID, key, scope),
			histories:  make(map[string]*History),
			firstSeen:  make(map[string]time.Time),
		}
		e.states[k] = st
	}
	return st
}

// ScanResult is one Aggregate call's output: the updated conventions and
// any newly detected contested pairs.
type ScanResult struct {
	Conventions []LearnedConvention
	Contested   []ContestedPair
}

// Aggregate folds one scan's Observations into the Engine's cross-scan
// state and returns every LearnedConvention touched by this scan,
// classified and trended per spec §4.3. scanID and now drive history
// retention and staleness.
func (e *Engine) Aggregate(observations []Observation, scanID int64, now time.Time) ScanResult {
	// Group observations by (detector, key, scope) into Distributions.
	dists := make(map[string]*Distribution)
	scopes := make(map[string]Scope)
	order := make([]string, 0)
	for _, obs := range observations {
		k := stateKey(obs.DetectorID, obs.Key, obs.Scope)
		d, ok := dists[k]
		if !ok {
			d = NewDistribution(obs.DetectorID, obs.Key)
			dists[k] = d
			scopes[k] = obs.Scope
			order = append(order, k)
		}
		d.Add(obs)
	}

	thresholds := DefaultThresholds()
	thresholds.UniversalFrequency = orDefault(e.cfg.UniversalThreshold, thresholds.UniversalFrequency)

	var result ScanResult
	for _, k := range order {
		dist := dists[k]
		scope := scopes[k]
		st := e.stateFor(dist.DetectorID, dist.Key, scope)
		st.posteriors.Update(dist, now)

		contestMargin := orDefault(e.cfg.ContestedMargin, 0.15)
		contestMin := 0.25
		pair, isContested := DetectContested(dist, contestMin, contestMargin)
		if isContested {
			result.Contested = append(result.Contested, pair)
		}

		for _, value := range dist.Values() {
			p, _ := st.posteriors.Get(value)
			hist, ok := st.histories[value]
			if !ok {
				hist = NewHistory()
				st.histories[value] = hist
			}
			freq := dist.Frequency(value)
			hist.Record(scanID, freq)
			hist.Trim(100, scanID-90) // 90-day/100-entry retention, scan-ID-approximated

			trendDelta := orDefault(e.cfg.TrendDelta, 0.05)
			trend := ComputeTrend(hist, trendDelta)

			contested := isContested && pair.Involves(value)
			category := Classify(p.Mean(), trend, contested, thresholds)

			first, ok := st.firstSeen[value]
			if !ok {
				first = now
				st.firstSeen[value] = now
			}

			lc := LearnedConvention{
				Key:         Key{DetectorID: dist.DetectorID, ConvKey: dist.Key, Value: value, Scope: scope},
				Alpha:       p.Alpha,
				Beta:        p.Beta,
				FileCount:   dist.FileCount(value),
				TotalFiles:  dist.TotalFiles(),
				Occurrences: dist.Occurrences(value),
				Category:    category,
				Trend:       trend,
				Staleness:   StalenessFresh,
				FirstSeen:   first,
				LastUpdated: now,
			}
			result.Conventions = append(result.Conventions, lc)
		}
	}
	return result
}

// Retire marks conventions Stale or Expired per the retention window
// (spec §4.3 Retention: Stale between ExpiryWindowDays and
// ExpiryWindowDays+30, Expired — and deleted by the caller — beyond that).
func (e *Engine) Retire(lc *LearnedConvention, now time.Time) {
	retention := e.cfg.RetentionWindowDays
	if retention <= 0 {
		retention = 7
	}
	expiry := e.cfg.ExpiryWindowDays
	if expiry <= 0 {
		expiry = retention
	}
	age := now.Sub(lc.LastUpdated)
	switch {
	case age > time.Duration(expiry+30)*24*time.Hour:
		lc.Staleness = StalenessExpired
	case age > time.Duration(expiry)*24*time.Hour:
		lc.Staleness = StalenessStale
	default:
		lc.Staleness = StalenessFresh
	}
}

// EnforcementMinimums mirrors config.Convention's minimum-evidence floor,
// passed explicitly so enforce.go doesn't need the whole config package.
type EnforcementMinimums struct {
	MinFiles       int
	MinOccurrences int
	MinConfidence  float64
}

func orDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}
