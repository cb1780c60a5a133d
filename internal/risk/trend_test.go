package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateWindow(t *testing.T) {
	cases := []struct {
		name     string
		labels   []string // most recent first
		forceRed bool
		want     AlertLevel
	}{
		{"four highs", []string{"High", "High", "High", "High", "Low"}, false, AlertRed},
		{"two highs", []string{"High", "High", "Low", "Low", "Low"}, false, AlertYellow},
		{"all low", []string{"Low", "Low", "Low", "Low", "Low"}, false, AlertGreen},
		{"five highs", []string{"High", "High", "High", "High", "High"}, false, AlertRed},
		{"three highs", []string{"High", "High", "High", "Low", "Low"}, false, AlertYellow},
		{"one high", []string{"High", "Low", "Low", "Low", "Low"}, false, AlertGreen},
		{"empty window", nil, false, AlertGreen},
		{"short window", []string{"High", "High"}, false, AlertYellow},
		{"keyword override beats empty count", []string{"Low", "Low", "Low", "Low", "Low"}, true, AlertRed},
		{"keyword override on empty window", nil, true, AlertRed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EvaluateWindow(tc.labels, tc.forceRed))
		})
	}
}

func TestHighCountIgnoresBeyondWindow(t *testing.T) {
	// older messages past the window must not count
	labels := []string{"Low", "Low", "Low", "Low", "Low", "High", "High", "High", "High"}
	assert.Equal(t, 0, HighCount(labels))
	assert.Equal(t, AlertGreen, EvaluateWindow(labels, false))
}
