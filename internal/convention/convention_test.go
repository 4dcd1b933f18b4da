package convention

import (
	"testing"
	"time"

	"github.com/standardbeagle/chorus/internal/config"
	"github.com/standardbeagle/chorus/internal/types"
)

// TestContestedNamingConvention reproduces spec §8 scenario S5: 9/20 files
// camelCase, 8/20 snake_case (0.45 vs 0.40, gap 0.05 < 0.15, top above
// 0.25) classifies both Contested and emits exactly one contested pair.
func TestContestedNamingConvention(t *testing.T) {
	dist := NewDistribution("naming-case", "file-name-case")
	fid := types.FileID(1)
	for i := 0; i < 9; i++ {
		dist.Add(Observation{Value: "camelCase", File: fid})
		fid++
	}
	for i := 0; i < 8; i++ {
		dist.Add(Observation{Value: "snake_case", File: fid})
		fid++
	}
	for i := 0; i < 3; i++ {
		dist.Add(Observation{Value: "kebab-case", File: fid})
		fid++
	}

	if dist.TotalFiles() != 20 {
		t.Fatalf("expected 20 total files, got %d", dist.TotalFiles())
	}

	pair, ok := DetectContested(dist, 0.25, 0.15)
	if !ok {
		t.Fatal("expected a contested pair")
	}
	if pair.ValueA != "camelCase" || pair.ValueB != "snake_case" {
		t.Fatalf("unexpected contested pair: %+v", pair)
	}

	thresholds := DefaultThresholds()
	camel := Classify(dist.Frequency("camelCase"), TrendStable, pair.Involves("camelCase"), thresholds)
	snake := Classify(dist.Frequency("snake_case"), TrendStable, pair.Involves("snake_case"), thresholds)
	if camel != CategoryContested || snake != CategoryContested {
		t.Fatalf("expected both Contested, got camel=%s snake=%s", camel, snake)
	}
}

// TestConventionMigration reproduces spec §8 scenario S6: across three
// scans camelCase declines 0.80->0.60->0.30 while snake_case rises
// 0.20->0.40->0.70; after scan 3 camelCase is Legacy, snake_case is
// ProjectSpecific with a Rising trend.
func TestConventionMigration(t *testing.T) {
	camel := NewHistory()
	camel.Record(1, 0.80)
	camel.Record(2, 0.60)
	camel.Record(3, 0.30)

	snake := NewHistory()
	snake.Record(1, 0.20)
	snake.Record(2, 0.40)
	snake.Record(3, 0.70)

	camelTrend := ComputeTrend(camel, 0.05)
	snakeTrend := ComputeTrend(snake, 0.05)

	if camelTrend != TrendDeclining {
		t.Fatalf("expected camelCase Declining, got %s", camelTrend)
	}
	if snakeTrend != TrendRising {
		t.Fatalf("expected snake_case Rising, got %s", snakeTrend)
	}

	thresholds := DefaultThresholds()
	camelCat := Classify(0.30, camelTrend, false, thresholds)
	snakeCat := Classify(0.70, snakeTrend, false, thresholds)

	if camelCat != CategoryLegacy {
		t.Fatalf("expected camelCase Legacy, got %s", camelCat)
	}
	if snakeCat != CategoryProjectSpecific {
		t.Fatalf("expected snake_case ProjectSpecific, got %s", snakeCat)
	}

	latest, _ := snake.Latest()
	previous, _ := snake.Previous()
	momentum := (latest - previous) / previous
	if momentum <= 0 {
		t.Fatalf("expected positive momentum for snake_case, got %f", momentum)
	}
}

func TestClassifyUniversalIrrespectiveOfTrend(t *testing.T) {
	thresholds := DefaultThresholds()
	for _, trend := range []Trend{TrendRising, TrendStable, TrendDeclining} {
		if got := Classify(0.95, trend, false, thresholds); got != CategoryUniversal {
			t.Errorf("frequency 0.95 trend %s: expected Universal, got %s", trend, got)
		}
	}
}

func TestClassifyIsPureFunction(t *testing.T) {
	thresholds := DefaultThresholds()
	a := Classify(0.65, TrendRising, false, thresholds)
	b := Classify(0.65, TrendRising, false, thresholds)
	if a != b {
		t.Fatalf("classify not pure: %s != %s", a, b)
	}
}

func TestSeverityMapping(t *testing.T) {
	cases := map[Category]string{
		CategoryUniversal:       "Error",
		CategoryProjectSpecific: "Warning",
		CategoryEmerging:        "Info",
		CategoryLegacy:          "Hint",
	}
	for cat, want := range cases {
		if got := string(SeverityFor(cat)); got != want {
			t.Errorf("SeverityFor(%s) = %s, want %s", cat, got, want)
		}
	}
}

func TestEnforceSkipsContested(t *testing.T) {
	dominant := LearnedConvention{
		Key:         Key{DetectorID: "naming-case", ConvKey: "file-name-case", Value: "camelCase"},
		Category:    CategoryContested,
		FileCount:   10,
		Occurrences: 20,
	}
	obs := Observation{DetectorID: "naming-case", Key: "file-name-case", Value: "snake_case", File: 1, Line: 1}
	min := EnforcementMinimums{MinFiles: 5, MinOccurrences: 10, MinConfidence: 0.7}

	if _, ok := Enforce(obs, dominant, min, 0.9, false); ok {
		t.Fatal("expected no violation for a contested dominant convention")
	}
}

func TestEnforceEmitsViolationOnDeviation(t *testing.T) {
	dominant := LearnedConvention{
		Key:         Key{DetectorID: "naming-case", ConvKey: "file-name-case", Value: "camelCase"},
		Category:    CategoryUniversal,
		FileCount:   10,
		Occurrences: 20,
	}
	obs := Observation{DetectorID: "naming-case", Key: "file-name-case", Value: "snake_case", File: 1, Line: 3, Column: 1}
	min := EnforcementMinimums{MinFiles: 5, MinOccurrences: 10, MinConfidence: 0.7}

	v, ok := Enforce(obs, dominant, min, 0.9, false)
	if !ok {
		t.Fatal("expected a violation")
	}
	if v.Severity != "Error" {
		t.Fatalf("expected Error severity for Universal convention, got %s", v.Severity)
	}
	if v.Expected != "camelCase" || v.Actual != "snake_case" {
		t.Fatalf("unexpected expected/actual: %+v", v)
	}

	v2, _ := Enforce(obs, dominant, min, 0.9, false)
	if v.ID != v2.ID {
		t.Fatal("violation ID must be stable across runs for the same (pattern, file, range)")
	}
}

func TestEnforceSkipsMatchingValue(t *testing.T) {
	dominant := LearnedConvention{
		Key:         Key{Value: "camelCase"},
		Category:    CategoryUniversal,
		FileCount:   10,
		Occurrences: 20,
	}
	obs := Observation{Value: "camelCase", File: 1, Line: 1}
	min := EnforcementMinimums{MinFiles: 5, MinOccurrences: 10, MinConfidence: 0.7}

	if _, ok := Enforce(obs, dominant, min, 0.9, false); ok {
		t.Fatal("expected no violation when observed value matches the dominant convention")
	}
}

func TestEngineAggregateEndToEnd(t *testing.T) {
	cfg := config.Convention{
		UniversalThreshold: 0.90,
		ContestedMargin:    0.10,
		TrendDelta:         0.05,
		MinFiles:           1,
		MinOccurrences:     1,
		MinConfidence:      0.0,
	}
	e := New(cfg)
	now := time.Now()

	var obs []Observation
	for i := 0; i < 9; i++ {
		obs = append(obs, Observation{DetectorID: "naming-case", Key: "file-name-case", Value: "camelCase", File: types.FileID(i + 1)})
	}

	result := e.Aggregate(obs, 1, now)
	if len(result.Conventions) != 1 {
		t.Fatalf("expected one learned convention, got %d", len(result.Conventions))
	}
	lc := result.Conventions[0]
	if lc.Category != CategoryUniversal {
		t.Fatalf("expected Universal after 9/9 files agree, got %s", lc.Category)
	}
}

func TestZeroTotalFilesYieldsStableZeroFrequency(t *testing.T) {
	dist := NewDistribution("x", "y")
	if dist.TotalFiles() != 0 {
		t.Fatal("expected zero total files")
	}
	if got := dist.Frequency("anything"); got != 0 {
		t.Fatalf("expected 0 frequency on empty distribution, got %f", got)
	}
	thresholds := DefaultThresholds()
	if got := Classify(0, TrendStable, false, thresholds); got == "" {
		t.Fatal("classify must not panic or return empty on zero frequency")
	}
}
