package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisclose(t *testing.T) {
	// current at-risk flag gates disclosure regardless of stored severity
	assert.False(t, Disclose("Critical", false).RevealIdentity)
	assert.True(t, Disclose("Critical", true).RevealIdentity)

	for _, severity := range []string{"High", "Critical", "Dangerous", "SOS"} {
		assert.True(t, Disclose(severity, true).RevealIdentity, severity)
		assert.False(t, Disclose(severity, false).RevealIdentity, severity)
	}

	// unknown severities never disclose
	assert.False(t, Disclose("Info", true).RevealIdentity)
	assert.False(t, Disclose("", true).RevealIdentity)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Jamie Lin", DisplayName("Jamie Lin", "Dangerous", true))
	assert.Equal(t, AnonymousName, DisplayName("Jamie Lin", "Dangerous", false))
	assert.Equal(t, AnonymousName, DisplayName("", "Dangerous", true))
}
