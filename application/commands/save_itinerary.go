package commands

import (
	"errors"

	"compass/domain/core/entities"
)

// SaveItineraryCommand represents the command to save a generated itinerary.
// The client assigns the itinerary ID so a retried save lands on the same
// record instead of creating a duplicate.
type SaveItineraryCommand struct {
	ItineraryID string        `json:"itinerary_id"`
	UserID      string        `json:"user_id" validate:"required"`
	Destination string        `json:"destination" validate:"required,max=200"`
	StartDate   string        `json:"start_date" validate:"required"`
	EndDate     string        `json:"end_date"`
	IsDayTrip   bool          `json:"is_day_trip"`
	Preferences string        `json:"preferences" validate:"max=2000"`
	Weather     string        `json:"weather" validate:"max=200"`
	CrowdType   string        `json:"crowd_type"`
	Plan        entities.Plan `json:"plan"`
}

// Validate validates the command
func (cmd SaveItineraryCommand) Validate() error {
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Destination == "" {
		return errors.New("destination is required")
	}
	if len(cmd.Destination) > MaxDestinationLength {
		return errors.New("destination exceeds maximum length")
	}
	if cmd.StartDate == "" {
		return errors.New("start date is required")
	}
	if len(cmd.Preferences) > MaxPreferencesLength {
		return errors.New("preferences exceed maximum length")
	}
	if len(cmd.Plan.Days) == 0 {
		return errors.New("plan must contain at least one day")
	}
	return nil
}

const (
	MaxDestinationLength = 200
	MaxPreferencesLength = 2000
)
