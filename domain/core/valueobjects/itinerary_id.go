package valueobjects

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
)

// ItineraryID is a value object representing a unique itinerary identifier.
// IDs are caller-assigned at save time; new ones are UUIDs, but any non-empty
// opaque string from an earlier client generation is accepted on read.
type ItineraryID struct {
	value string
}

// NewItineraryID creates a new random ItineraryID
func NewItineraryID() ItineraryID {
	return ItineraryID{value: uuid.New().String()}
}

// NewItineraryIDFromString creates an ItineraryID from an existing string
func NewItineraryIDFromString(id string) (ItineraryID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return ItineraryID{}, errors.New("itinerary ID cannot be empty")
	}
	return ItineraryID{value: id}, nil
}

// String returns the string representation of the ItineraryID
func (id ItineraryID) String() string {
	return id.value
}

// Equals checks if two ItineraryIDs are equal
func (id ItineraryID) Equals(other ItineraryID) bool {
	return id.value == other.value
}

// IsZero checks if the ItineraryID is the zero value
func (id ItineraryID) IsZero() bool {
	return id.value == ""
}

// MarshalJSON implements json.Marshaler
func (id ItineraryID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.value)
}

// UnmarshalJSON implements json.Unmarshaler
func (id *ItineraryID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return errors.New("ItineraryID must be a string")
	}
	id.value = value
	return nil
}
