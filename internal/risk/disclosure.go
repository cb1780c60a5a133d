package risk

// AnonymousName replaces the real display name when disclosure is denied.
const AnonymousName = "Anonymous Student"

// Disclosure is the render-time identity decision for one record.
type Disclosure struct {
	RevealIdentity bool
}

var disclosableSeverities = map[string]bool{
	"High":      true,
	"Critical":  true,
	"Dangerous": true,
	"SOS":       true,
}

// Disclose decides whether a record of the given severity may show the
// subject's real identity. The subject's *current* at-risk flag overrides the
// record's stored severity: once the profile is marked safe again, historical
// records render anonymized even though their severity is unchanged. This is
// a read-time decision; nothing on the record itself changes.
func Disclose(severity string, subjectAtRisk bool) Disclosure {
	return Disclosure{
		RevealIdentity: subjectAtRisk && disclosableSeverities[severity],
	}
}

// DisplayName applies the policy to a stored name snapshot.
func DisplayName(name, severity string, subjectAtRisk bool) string {
	if name == "" {
		return AnonymousName
	}
	if Disclose(severity, subjectAtRisk).RevealIdentity {
		return name
	}
	return AnonymousName
}
