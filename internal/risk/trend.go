package risk

// AlertLevel is the rolling Green/Yellow/Red read on a student's recent chat.
// It is recomputed fresh from the window on every message and never persisted
// as authoritative state; only the profile's isAtRisk flag is.
type AlertLevel string

const (
	AlertGreen  AlertLevel = "Green"
	AlertYellow AlertLevel = "Yellow"
	AlertRed    AlertLevel = "Red"
)

// TrendWindowSize is how many of the most recent messages feed the evaluation.
const TrendWindowSize = 5

// HighCount counts High labels over at most the first TrendWindowSize entries
// of the window (most recent first).
func HighCount(labels []string) int {
	if len(labels) > TrendWindowSize {
		labels = labels[:TrendWindowSize]
	}
	n := 0
	for _, l := range labels {
		if l == "High" {
			n++
		}
	}
	return n
}

// EvaluateWindow derives the alert level from the last window of
// classifications. forceRed short-circuits the count when the just-classified
// message itself tripped the lexicon; the override is independent of the
// High/Low tally.
func EvaluateWindow(labels []string, forceRed bool) AlertLevel {
	if forceRed {
		return AlertRed
	}
	switch high := HighCount(labels); {
	case high >= 4:
		return AlertRed
	case high >= 2:
		return AlertYellow
	default:
		return AlertGreen
	}
}
