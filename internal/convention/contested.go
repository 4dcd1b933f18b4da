package convention

// ContestedPair records two convention values for the same key whose
// frequencies are close enough, and both high enough, that enforcing
// either would be premature (spec §3 Contested pair / §4.3 Contested
// detection).
type ContestedPair struct {
	DetectorID string
	Key        string
	Scope      Scope
	ValueA     string
	FrequencyA float64
	ValueB     string
	FrequencyB float64
}

// DetectContested walks dist's values by descending frequency and emits a
// ContestedPair for the first adjacent pair whose higher-frequency member
// exceeds minFrequency and whose gap to the next value is below margin.
// Only the topmost qualifying pair is reported — spec §4.3 describes
// contested detection as a property of "the dominant convention", and a
// second simultaneous contested pair lower in the ranking has no
// enforceable dominant value to contest in the first place.
func DetectContested(dist *Distribution, minFrequency, margin float64) (ContestedPair, bool) {
	values := dist.sortedByFrequency()
	for i := 0; i+1 < len(values); i++ {
		a, b := values[i], values[i+1]
		freqA, freqB := dist.Frequency(a), dist.Frequency(b)
		if freqA < minFrequency {
			continue
		}
		if freqA-freqB < margin {
			return ContestedPair{
				DetectorID: dist.DetectorID,
				Key:        dist.Key,
				ValueA:     a,
				FrequencyA: freqA,
				ValueB:     b,
				FrequencyB: freqB,
			}, true
		}
	}
	return ContestedPair{}, false
}

// Involves reports whether value is one of the pair's two contested
// members, the check enforcement and classification use to force a
// value's category to Contested.
func (p ContestedPair) Involves(value string) bool {
	return value == p.ValueA || value == p.ValueB
}
