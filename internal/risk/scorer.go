package risk

import "math"

// Slider bounds and the neutral default for absent answers.
const (
	SliderMin     = 1
	SliderMax     = 5
	NeutralSlider = 3

	// KeywordBoost is added once when the journal contains any lexicon term.
	KeywordBoost = 20

	// RiskThreshold and CriticalThreshold drive report emission downstream.
	RiskThreshold     = 40
	CriticalThreshold = 75
)

// CheckInInput carries the raw slider answers plus the optional journal.
// Zero means the answer was absent.
type CheckInInput struct {
	Mood        int
	Stress      int
	Sleep       int
	Academic    int
	Social      int
	JournalText string
}

// CheckInScorer turns a check-in into a bounded 0-100 risk score.
// Deterministic, pure, total: absent sliders default to the neutral middle,
// out-of-range values are clamped before scoring.
type CheckInScorer struct {
	detector *Detector
}

func NewCheckInScorer(detector *Detector) *CheckInScorer {
	return &CheckInScorer{detector: detector}
}

// Score computes the bounded risk score for one check-in.
func (s *CheckInScorer) Score(in CheckInInput) int {
	stress := clampSlider(in.Stress)
	sleep := clampSlider(in.Sleep)
	social := clampSlider(in.Social)

	sStress := float64(stress-1) * 10  // 0..40, higher stress raises the score
	sSleep := float64(5-sleep) * 7.5   // 0..30, less sleep raises the score
	sSocial := float64(5-social) * 7.5 // 0..30, less social contact raises the score
	base := sStress + sSleep + sSocial

	boost := 0.0
	if in.JournalText != "" {
		if _, hit := s.detector.Match(in.JournalText); hit {
			boost = KeywordBoost
		}
	}

	return int(math.Round(math.Min(100, base+boost)))
}

func clampSlider(v int) int {
	if v == 0 {
		return NeutralSlider
	}
	if v < SliderMin {
		return SliderMin
	}
	if v > SliderMax {
		return SliderMax
	}
	return v
}
