package risk

// Detector scans free text against the canonical lexicon. The same detector
// serves journal entries and chat messages; the two call sites differ only in
// which view they consult.
type Detector struct {
	general  View
	critical View
}

func NewDetector(lex Lexicon) *Detector {
	return &Detector{
		general:  lex.View(ClassGeneral),
		critical: lex.View(ClassCritical),
	}
}

// Match returns the first general-view term found in the text, if any.
func (d *Detector) Match(text string) (string, bool) {
	return d.general.Match(text)
}

// MatchCritical returns the first critical-view term found in the text, if any.
func (d *Detector) MatchCritical(text string) (string, bool) {
	return d.critical.Match(text)
}
