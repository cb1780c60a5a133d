package llm

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"CampusMind/pkg/errors"
)

// Classification is the coarse stress read on a single message.
type Classification struct {
	Stress string `json:"stress"` // "High" or "Low"
	Reply  string `json:"reply"`  // empathetic response shown to the student
}

// Classifier represents a generic interface for message stress classification.
// Implementations call an external completion service; a malformed response is
// returned as a tagged error, never a panic, so callers can branch to a
// fallback label.
type Classifier interface {
	// Classify labels the text High/Low and produces a supportive reply
	Classify(ctx context.Context, text string) (Classification, error)
}

const classifyPrompt = `Return ONLY valid JSON. { "stress": "High" or "Low", "reply": "empathetic response" }. Message: %q`

var jsonBlock = regexp.MustCompile(`\{[\s\S]*\}`)

// ParseClassification extracts the JSON object from a raw model response.
// Completion services routinely wrap the JSON in prose or code fences, so the
// first brace-to-brace block is taken.
func ParseClassification(raw string) (Classification, error) {
	match := jsonBlock.FindString(raw)
	if match == "" {
		return Classification{}, errors.WithCodef(errors.CodeClassification, "no JSON object in model response: %.80s", raw)
	}
	var c Classification
	if err := json.Unmarshal([]byte(match), &c); err != nil {
		return Classification{}, errors.WrapCode(err, errors.CodeClassification, "malformed model response")
	}
	if strings.Contains(strings.ToLower(c.Stress), "high") {
		c.Stress = "High"
	} else {
		c.Stress = "Low"
	}
	return c, nil
}
