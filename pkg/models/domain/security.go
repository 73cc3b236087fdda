package domain

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Finding is one discrete security observation. Findings are produced fresh
// per evaluation and never merged across runs.
type Finding struct {
	Kind     string
	Severity Severity
	Resource string
	Message  string
}

type PostureResult struct {
	Score    int // clamped to [0,100]
	Posture  string
	Findings []Finding
	Critical int
	High     int
	Medium   int
	Low      int
}

// PostureBand maps a score to its qualitative band. Boundaries are inclusive
// on the lower bound of each band.
func PostureBand(score int) string {
	switch {
	case score >= 80:
		return "Good"
	case score >= 60:
		return "Fair"
	case score >= 40:
		return "Poor"
	default:
		return "Critical"
	}
}
