package commands

import (
	"errors"

	"compass/domain/core/entities"
)

// UpdateItineraryCommand represents the command to edit a saved itinerary.
// Nil fields are left unchanged; identity and creation time are never
// editable.
type UpdateItineraryCommand struct {
	ItineraryID string         `json:"itinerary_id" validate:"required"`
	UserID      string         `json:"user_id" validate:"required"`
	Destination *string        `json:"destination,omitempty"`
	Preferences *string        `json:"preferences,omitempty"`
	Weather     *string        `json:"weather,omitempty"`
	Plan        *entities.Plan `json:"plan,omitempty"`
}

// Validate validates the command
func (cmd UpdateItineraryCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Destination == nil && cmd.Preferences == nil && cmd.Weather == nil && cmd.Plan == nil {
		return errors.New("update contains no fields")
	}
	if cmd.Destination != nil && (*cmd.Destination == "" || len(*cmd.Destination) > MaxDestinationLength) {
		return errors.New("destination must be non-empty and within maximum length")
	}
	if cmd.Preferences != nil && len(*cmd.Preferences) > MaxPreferencesLength {
		return errors.New("preferences exceed maximum length")
	}
	return nil
}
