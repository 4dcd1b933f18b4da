package convention

import "github.com/standardbeagle/chorus/internal/model"

// Trend is the direction a convention's frequency has moved since the
// previous scan.
type Trend string

const (
	TrendRising    Trend = "Rising"
	TrendStable    Trend = "Stable"
	TrendDeclining Trend = "Declining"
)

// Category is the 5-way classification a learned convention carries,
// derived purely from (frequency, trend, contested membership) per
// spec §4.3 — a pure function of its inputs, as §8 invariant 5 requires.
type Category string

const (
	CategoryUniversal       Category = "Universal"
	CategoryProjectSpecific Category = "ProjectSpecific"
	CategoryEmerging        Category = "Emerging"
	CategoryLegacy          Category = "Legacy"
	CategoryContested       Category = "Contested"
)

// Thresholds holds the classification cut points, sourced from
// config.Convention so they stay configurable rather than hard-coded.
type Thresholds struct {
	UniversalFrequency float64 // default 0.90
	LegacyMax          float64 // default 0.90 (Legacy upper bound, same as Universal floor)
	LegacyMin          float64 // default 0.30
	ProjectMin         float64 // default 0.60
	ProjectMax         float64 // default 0.90
	EmergingMax        float64 // default 0.60
}

// DefaultThresholds returns the literal bands from spec §4.3.
func DefaultThresholds() Thresholds {
	return Thresholds{
		UniversalFrequency: 0.90,
		LegacyMax:          0.90,
		LegacyMin:          0.30,
		ProjectMin:         0.60,
		ProjectMax:         0.90,
		EmergingMax:        0.60,
	}
}

// Classify implements spec §4.3's classification table exactly:
//
//	Universal:       frequency >= 0.90, irrespective of trend
//	Legacy:          trend == Declining and frequency in [0.30, 0.90)
//	Emerging:        trend == Rising and frequency < 0.60
//	ProjectSpecific: frequency in [0.60, 0.90), trend != Declining
//	Contested:       everything else, or contested==true
//
// contested, when true, forces Contested regardless of every other signal —
// both members of a contested pair are always classified Contested.
func Classify(frequency float64, trend Trend, contested bool, t Thresholds) Category {
	if contested {
		return CategoryContested
	}
	switch {
	case frequency >= t.UniversalFrequency:
		return CategoryUniversal
	case trend == TrendDeclining && frequency >= t.LegacyMin && frequency < t.LegacyMax:
		return CategoryLegacy
	case trend == TrendRising && frequency < t.EmergingMax:
		return CategoryEmerging
	case frequency >= t.ProjectMin && frequency < t.ProjectMax && trend != TrendDeclining:
		return CategoryProjectSpecific
	default:
		return CategoryContested
	}
}

// SeverityFor maps a convention Category to the fixed violation severity
// table from spec §4.3/§8 invariant 7. Contested conventions are never
// enforced (callers should have already skipped them), but the mapping is
// total so the function never panics on an unexpected category.
func SeverityFor(c Category) model.Severity {
	switch c {
	case CategoryUniversal:
		return model.SeverityError
	case CategoryProjectSpecific:
		return model.SeverityWarning
	case CategoryEmerging:
		return model.SeverityInfo
	case CategoryLegacy:
		return model.SeverityHint
	default:
		return model.SeverityInfo
	}
}
