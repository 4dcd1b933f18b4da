package crypto

// HealthWeights assigns a per-severity point cost the health score
// subtracts per finding, spec §4.7's health-score weights (10/5/2/0.5/0.1
// for Critical/High/Medium/Low/Info).
type HealthWeights struct {
	Critical, High, Medium, Low, Info float64
}

// DefaultHealthWeights returns the spec's default per-severity weights.
func DefaultHealthWeights() HealthWeights {
	return HealthWeights{Critical: 10, High: 5, Medium: 2, Low: 0.5, Info: 0.1}
}

func (w HealthWeights) forSeverity(s Severity) float64 {
	switch s {
	case SeverityCritical:
		return w.Critical
	case SeverityHigh:
		return w.High
	case SeverityMedium:
		return w.Medium
	case SeverityLow:
		return w.Low
	default:
		return w.Info
	}
}

// HealthReport is the per-project crypto health summary spec §4.7
// describes: a 0-100 score and a letter grade derived from it.
type HealthReport struct {
	Score         float64
	Grade         string
	TotalFindings int
	BySeverity    map[Severity]int
}

// Health computes a project's crypto health score per spec §4.7:
// 100 - (sum of per-finding severity penalties / fileCount * 100), floored
// at 0 and graded A-F on even 20-point bands. fileCount is the number of
// files the scan covered, not len(findings) — the normalization is what
// keeps a one-file scan with one Critical finding from scoring the same
// as a thousand-file scan with the same single finding.
func Health(findings []Finding, weights HealthWeights, fileCount int) HealthReport {
	report := HealthReport{Score: 100, BySeverity: make(map[Severity]int)}
	var penalty float64
	for _, f := range findings {
		penalty += weights.forSeverity(f.Severity)
		report.BySeverity[f.Severity]++
		report.TotalFindings++
	}
	if fileCount > 0 {
		report.Score = 100 - (penalty/float64(fileCount))*100
	} else if penalty > 0 {
		report.Score = 0
	}
	if report.Score < 0 {
		report.Score = 0
	}
	report.Grade = gradeFor(report.Score)
	return report
}

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}
