package risk

import "strings"

// Class marks which matching contexts a lexicon term belongs to. A term may
// carry several classes; views are derived from the one canonical list, never
// maintained as separate lists.
type Class uint8

const (
	// ClassGeneral terms flag journals and chat messages for review.
	ClassGeneral Class = 1 << iota
	// ClassCritical terms are self-harm adjacent and bypass the completion
	// service entirely.
	ClassCritical
)

// Term is one entry of the canonical ordered lexicon.
type Term struct {
	Text    string
	Classes Class
}

// Lexicon is a fixed ordered set of risk-indicating terms. Matching is
// first-hit in canonical order; the order is a deliberate tie-break and must
// stay stable so detections are reproducible.
type Lexicon struct {
	terms []Term
}

func NewLexicon(terms []Term) Lexicon {
	return Lexicon{terms: terms}
}

// Canonical returns the one lexicon every matcher derives from. Multi-word
// critical phrases come first so a message like "I want to kill myself" hits
// the phrase, not the bare verb.
func Canonical() Lexicon {
	return NewLexicon([]Term{
		{"suicide", ClassGeneral | ClassCritical},
		{"kill myself", ClassCritical},
		{"end my life", ClassCritical},
		{"self harm", ClassCritical},
		{"cut myself", ClassCritical},
		{"overdose", ClassGeneral | ClassCritical},
		{"gun", ClassGeneral | ClassCritical},
		{"knife", ClassGeneral | ClassCritical},
		{"hang", ClassGeneral | ClassCritical},
		{"drown", ClassGeneral | ClassCritical},
		{"poison", ClassGeneral | ClassCritical},
		{"slash", ClassCritical},
		{"goodbye", ClassCritical},
		{"worthless", ClassCritical},
		{"die", ClassGeneral | ClassCritical},
		{"kill", ClassGeneral},
		{"hurt", ClassGeneral},
		{"pain", ClassGeneral},
		{"hopeless", ClassGeneral | ClassCritical},
		{"end", ClassGeneral},
		{"alone", ClassGeneral},
		{"panic", ClassGeneral},
		{"blood", ClassGeneral},
		{"depression", ClassGeneral},
		{"depressed", ClassGeneral},
		{"anxious", ClassGeneral},
		{"sad", ClassGeneral},
		{"stressed", ClassGeneral},
		{"abuse", ClassGeneral},
		{"rape", ClassGeneral},
		{"assault", ClassGeneral},
		{"shoot", ClassGeneral},
		{"toxic", ClassGeneral},
		{"bomb", ClassGeneral},
		{"ragging", ClassGeneral},
		{"help", ClassGeneral},
		{"lost", ClassGeneral},
	})
}

// View is an ordered subset of the lexicon for one matching context.
type View struct {
	terms []string
}

// View derives the ordered subset carrying the class, canonical order kept.
func (l Lexicon) View(class Class) View {
	var terms []string
	for _, t := range l.terms {
		if t.Classes&class != 0 {
			terms = append(terms, t.Text)
		}
	}
	return View{terms: terms}
}

// Terms returns the view's terms in canonical order.
func (v View) Terms() []string { return v.terms }

// Match returns the first term found as a substring of the lowercased text.
// First hit, not best hit.
func (v View) Match(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, term := range v.terms {
		if strings.Contains(lower, term) {
			return term, true
		}
	}
	return "", false
}
