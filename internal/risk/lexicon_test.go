package risk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchIsFirstHitInCanonicalOrder(t *testing.T) {
	d := NewDetector(Canonical())

	// "suicide" precedes "die" in the canonical order even though both match
	term, ok := d.Match("I want to die, thoughts of suicide")
	assert.True(t, ok)
	assert.Equal(t, "suicide", term)

	// the critical phrase wins over the bare verb it contains
	term, ok = d.MatchCritical("I want to kill myself")
	assert.True(t, ok)
	assert.Equal(t, "kill myself", term)
}

func TestMatchCaseInsensitiveSubstring(t *testing.T) {
	d := NewDetector(Canonical())

	term, ok := d.Match("Feeling HOPELESS today")
	assert.True(t, ok)
	assert.Equal(t, "hopeless", term)

	_, ok = d.Match("lovely picnic at the park")
	assert.False(t, ok)

	_, ok = d.Match("")
	assert.False(t, ok)
}

func TestViewsDeriveFromOneList(t *testing.T) {
	lex := Canonical()
	general := lex.View(ClassGeneral).Terms()
	critical := lex.View(ClassCritical).Terms()

	assert.NotEmpty(t, general)
	assert.NotEmpty(t, critical)

	// every view term exists in the canonical list, order preserved
	all := lex.View(ClassGeneral | ClassCritical).Terms()
	pos := make(map[string]int, len(all))
	for i, term := range all {
		pos[term] = i
	}
	for _, view := range [][]string{general, critical} {
		last := -1
		for _, term := range view {
			i, ok := pos[term]
			if !ok {
				t.Fatalf("view term %q missing from canonical list", term)
			}
			if i < last {
				t.Fatalf("view order diverges from canonical order at %q", term)
			}
			last = i
		}
	}
}

func TestCriticalViewIsSelfHarmAdjacent(t *testing.T) {
	critical := Canonical().View(ClassCritical)
	for _, msg := range []string{
		"i want to kill myself",
		"planning to end my life",
		"been thinking about self harm",
	} {
		_, ok := critical.Match(msg)
		assert.True(t, ok, "expected critical hit for %q", msg)
	}

	// general-only vocabulary must not trip the critical view
	for _, msg := range []string{
		"so stressed about finals",
		"i feel sad and alone",
	} {
		if term, ok := critical.Match(msg); ok {
			t.Fatalf("unexpected critical hit %q for %q", term, msg)
		}
	}
}

func TestCanonicalTermsAreLowercase(t *testing.T) {
	for _, term := range Canonical().View(ClassGeneral | ClassCritical).Terms() {
		assert.Equal(t, strings.ToLower(term), term)
	}
}
