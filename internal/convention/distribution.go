package convention

import (
	"sort"

	"github.com/standardbeagle/chorus/internal/types"
)

// valueStats tracks one value's evidence within a (detector, key)
// distribution: which files carry it, how many times total, and how many
// times per file (needed for the consistency/variance factor upstream).
type valueStats struct {
	files  map[types.FileID]int // fileID -> occurrence count in that file
	occurs int
}

func newValueStats() *valueStats {
	return &valueStats{files: make(map[types.FileID]int)}
}

func (vs *valueStats) add(file types.FileID) {
	vs.files[file]++
	vs.occurs++
}

func (vs *valueStats) fileCount() int {
	return len(vs.files)
}

// Distribution aggregates every observation for one (detector, key) pair
// across a scan, the grouping step the learning pass performs right after
// extraction.
type Distribution struct {
	DetectorID string
	Key        string

	values   map[string]*valueStats
	allFiles map[types.FileID]bool
}

// NewDistribution creates an empty distribution for (detectorID, key).
func NewDistribution(detectorID, key string) *Distribution {
	return &Distribution{
		DetectorID: detectorID,
		Key:        key,
		values:     make(map[string]*valueStats),
		allFiles:   make(map[types.FileID]bool),
	}
}

// Add folds one observation into the distribution.
func (d *Distribution) Add(obs Observation) {
	vs, ok := d.values[obs.Value]
	if !ok {
		vs = newValueStats()
		d.values[obs.Value] = vs
	}
	vs.add(obs.File)
	d.allFiles[obs.File] = true
}

// TotalFiles is the union of files across every value observed for this key.
func (d *Distribution) TotalFiles() int {
	return len(d.allFiles)
}

// Values returns every observed value's name.
func (d *Distribution) Values() []string {
	out := make([]string, 0, len(d.values))
	for v := range d.values {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// FileCount returns how many distinct files carry value.
func (d *Distribution) FileCount(value string) int {
	vs, ok := d.values[value]
	if !ok {
		return 0
	}
	return vs.fileCount()
}

// Occurrences returns the total occurrence count for value across all files.
func (d *Distribution) Occurrences(value string) int {
	vs, ok := d.values[value]
	if !ok {
		return 0
	}
	return vs.occurs
}

// Frequency returns value's share of the distribution's total files — the
// basis for classification and the confidence scorer's frequency factor.
func (d *Distribution) Frequency(value string) float64 {
	total := d.TotalFiles()
	if total == 0 {
		return 0
	}
	return float64(d.FileCount(value)) / float64(total)
}

// sortedByFrequency returns every value ordered by descending frequency,
// the order contested-pair detection walks.
func (d *Distribution) sortedByFrequency() []string {
	values := d.Values()
	sort.Slice(values, func(i, j int) bool {
		return d.Frequency(values[i]) > d.Frequency(values[j])
	})
	return values
}

// IsMultiValued reports whether three or more distinct values were
// observed, the threshold at which the posterior model switches from
// per-value Beta to a single Dirichlet-Multinomial.
func (d *Distribution) IsMultiValued() bool {
	return len(d.values) >= 3
}
