package risk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newScorer() *CheckInScorer {
	return NewCheckInScorer(NewDetector(Canonical()))
}

func TestScoreFormulaOverFullGrid(t *testing.T) {
	s := newScorer()
	for stress := 1; stress <= 5; stress++ {
		for sleep := 1; sleep <= 5; sleep++ {
			for social := 1; social <= 5; social++ {
				want := int(math.Round(math.Min(100,
					float64(stress-1)*10+float64(5-sleep)*7.5+float64(5-social)*7.5)))
				got := s.Score(CheckInInput{Stress: stress, Sleep: sleep, Social: social})
				if got != want {
					t.Fatalf("stress=%d sleep=%d social=%d: got %d, want %d", stress, sleep, social, got, want)
				}
				if got < 0 || got > 100 {
					t.Fatalf("score %d out of bounds", got)
				}
			}
		}
	}
}

func TestScoreExtremes(t *testing.T) {
	s := newScorer()
	assert.Equal(t, 100, s.Score(CheckInInput{Stress: 5, Sleep: 1, Social: 1}))
	assert.Equal(t, 0, s.Score(CheckInInput{Stress: 1, Sleep: 5, Social: 5}))
}

func TestScoreKeywordBoost(t *testing.T) {
	s := newScorer()

	// pure boost on a zero base
	assert.Equal(t, 20, s.Score(CheckInInput{Stress: 1, Sleep: 5, Social: 5, JournalText: "I feel hopeless"}))

	// boost never pushes past the cap
	assert.Equal(t, 100, s.Score(CheckInInput{Stress: 5, Sleep: 1, Social: 1, JournalText: "I feel hopeless"}))

	// a calm journal adds nothing
	assert.Equal(t, 0, s.Score(CheckInInput{Stress: 1, Sleep: 5, Social: 5, JournalText: "today was a good day"}))
}

func TestScoreDefaultsAndClamping(t *testing.T) {
	s := newScorer()

	// absent sliders read as the neutral middle
	neutral := s.Score(CheckInInput{})
	assert.Equal(t, s.Score(CheckInInput{Stress: 3, Sleep: 3, Social: 3}), neutral)

	// out-of-range values clamp to the bounds
	assert.Equal(t,
		s.Score(CheckInInput{Stress: 5, Sleep: 1, Social: 1}),
		s.Score(CheckInInput{Stress: 11, Sleep: -2, Social: 1}))
}

func TestScoreDeterministic(t *testing.T) {
	s := newScorer()
	in := CheckInInput{Stress: 4, Sleep: 2, Social: 3, JournalText: "feeling stressed about exams"}
	first := s.Score(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, s.Score(in))
	}
}
