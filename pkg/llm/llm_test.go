package llm_test

import (
	"testing"

	"CampusMind/pkg/errors"
	"CampusMind/pkg/llm"

	"github.com/stretchr/testify/assert"
)

func TestParseClassification(t *testing.T) {
	t.Run("clean JSON", func(t *testing.T) {
		c, err := llm.ParseClassification(`{"stress": "High", "reply": "I hear you."}`)
		assert.NoError(t, err)
		assert.Equal(t, "High", c.Stress)
		assert.Equal(t, "I hear you.", c.Reply)
	})

	t.Run("JSON wrapped in prose and fences", func(t *testing.T) {
		raw := "Sure, here is the result:\n```json\n{\"stress\": \"low\", \"reply\": \"Keep going!\"}\n```"
		c, err := llm.ParseClassification(raw)
		assert.NoError(t, err)
		assert.Equal(t, "Low", c.Stress)
	})

	t.Run("stress label normalized", func(t *testing.T) {
		c, err := llm.ParseClassification(`{"stress": "HIGH stress", "reply": "ok"}`)
		assert.NoError(t, err)
		assert.Equal(t, "High", c.Stress)

		c, err = llm.ParseClassification(`{"stress": "moderate", "reply": "ok"}`)
		assert.NoError(t, err)
		assert.Equal(t, "Low", c.Stress)
	})

	t.Run("no JSON object", func(t *testing.T) {
		_, err := llm.ParseClassification("I cannot answer that.")
		assert.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeClassification))
	})

	t.Run("broken JSON", func(t *testing.T) {
		_, err := llm.ParseClassification(`{"stress": "High", "reply":`)
		assert.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.CodeClassification))
	})
}
