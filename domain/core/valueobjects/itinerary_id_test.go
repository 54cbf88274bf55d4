package valueobjects

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItineraryID_JSONRoundTripWithEscapes(t *testing.T) {
	// IDs are opaque strings from earlier client generations, so JSON
	// escapes must survive the round trip
	id, err := NewItineraryIDFromString(`trip "june" \2026`)
	require.NoError(t, err)

	data, err := json.Marshal(id)
	require.NoError(t, err)

	var decoded ItineraryID
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Equals(id))
	assert.Equal(t, `trip "june" \2026`, decoded.String())
}

func TestItineraryID_UnmarshalJSON(t *testing.T) {
	var id ItineraryID
	require.NoError(t, json.Unmarshal([]byte(`"itin-42"`), &id))
	assert.Equal(t, "itin-42", id.String())

	require.NoError(t, json.Unmarshal([]byte(`null`), &id))
	assert.Equal(t, "itin-42", id.String())

	assert.Error(t, json.Unmarshal([]byte(`42`), &id))
}
