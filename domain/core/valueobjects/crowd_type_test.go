package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCrowdTypeFromString(t *testing.T) {
	tests := []struct {
		input    string
		expected CrowdType
	}{
		{"solo", CrowdSolo},
		{"couple", CrowdCouple},
		{"family", CrowdFamily},
		{"friends", CrowdFriends},
		{"business", CrowdBusiness},
		{"Family", CrowdFamily},
		{" solo ", CrowdSolo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ct, err := NewCrowdTypeFromString(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ct)
		})
	}
}

func TestNewCrowdTypeFromString_EmptyDefaultsToSolo(t *testing.T) {
	ct, err := NewCrowdTypeFromString("")
	require.NoError(t, err)
	assert.Equal(t, DefaultCrowdType, ct)
}

func TestNewCrowdTypeFromString_Unknown(t *testing.T) {
	_, err := NewCrowdTypeFromString("entourage")
	assert.Error(t, err)
}

func TestCrowdTypePhrase(t *testing.T) {
	assert.Equal(t, "a solo traveler", CrowdSolo.Phrase())
	assert.Equal(t, "a family including children", CrowdFamily.Phrase())
}
