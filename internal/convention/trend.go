package convention

import "sort"

// ScanFrequency is one scan's recorded frequency for a (detector, key,
// value, scope), the unit the retention policy bounds to 90 days or 100
// entries, whichever is smaller.
type ScanFrequency struct {
	ScanID    int64
	Frequency float64
}

// History is the per-scan frequency series backing trend computation and
// retention. Grounded on the teacher's git/frequency_analyzer.go bucketed
// time series, generalized from "per file" to "per (detector,key,value)".
type History struct {
	entries []ScanFrequency
}

// NewHistory returns an empty history.
func NewHistory() *History { return &History{} }

// Record appends a scan's frequency, keeping entries sorted by scan ID.
func (h *History) Record(scanID int64, frequency float64) {
	h.entries = append(h.entries, ScanFrequency{ScanID: scanID, Frequency: frequency})
	sort.Slice(h.entries, func(i, j int) bool { return h.entries[i].ScanID < h.entries[j].ScanID })
}

// Trim enforces the retention bound: at most maxEntries entries, and none
// older than the scan ID cutoff (callers pass the oldest scan ID still
// inside the 90-day window; scan-ID-to-time mapping lives in the store).
func (h *History) Trim(maxEntries int, oldestAllowedScanID int64) {
	kept := h.entries[:0]
	for _, e := range h.entries {
		if e.ScanID >= oldestAllowedScanID {
			kept = append(kept, e)
		}
	}
	h.entries = kept
	if len(h.entries) > maxEntries {
		h.entries = h.entries[len(h.entries)-maxEntries:]
	}
}

// Latest returns the most recent frequency and whether history is non-empty.
func (h *History) Latest() (float64, bool) {
	if len(h.entries) == 0 {
		return 0, false
	}
	return h.entries[len(h.entries)-1].Frequency, true
}

// Previous returns the second-most-recent frequency and whether it exists.
func (h *History) Previous() (float64, bool) {
	if len(h.entries) < 2 {
		return 0, false
	}
	return h.entries[len(h.entries)-2].Frequency, true
}

// Len reports how many scans of history are retained.
func (h *History) Len() int { return len(h.entries) }

// Entries returns the retained history, oldest first.
func (h *History) Entries() []ScanFrequency {
	out := make([]ScanFrequency, len(h.entries))
	copy(out, h.entries)
	return out
}

// ComputeTrend implements spec §4.3 Trend computation: compare latest
// against previous, +0.05 -> Rising, -0.05 -> Declining, else Stable. A
// history with fewer than two scans is always Stable — there is nothing
// to compare against yet.
func ComputeTrend(h *History, delta float64) Trend {
	if delta <= 0 {
		delta = 0.05
	}
	latest, ok := h.Latest()
	if !ok {
		return TrendStable
	}
	previous, ok := h.Previous()
	if !ok {
		return TrendStable
	}
	change := latest - previous
	switch {
	case change > delta:
		return TrendRising
	case change < -delta:
		return TrendDeclining
	default:
		return TrendStable
	}
}

// ExponentialMovingAverage is the spec's named acceptable refinement over
// raw latest-vs-previous trend: a smoothed series a caller may compare
// against the raw latest value instead, for noisier conventions with a
// longer history. alpha in (0,1]; higher alpha tracks recent scans more
// closely.
func ExponentialMovingAverage(h *History, alpha float64) float64 {
	entries := h.entries
	if len(entries) == 0 {
		return 0
	}
	if alpha <= 0 || alpha > 1 {
		alpha = 0.3
	}
	ema := entries[0].Frequency
	for _, e := range entries[1:] {
		ema = alpha*e.Frequency + (1-alpha)*ema
	}
	return ema
}
