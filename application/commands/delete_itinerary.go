package commands

import "errors"

// DeleteItineraryCommand represents the command to remove a saved itinerary.
// Deleting an itinerary that no longer exists succeeds, so a retried delete
// is harmless.
type DeleteItineraryCommand struct {
	ItineraryID string `json:"itinerary_id" validate:"required"`
	UserID      string `json:"user_id" validate:"required"`
}

// Validate validates the command
func (cmd DeleteItineraryCommand) Validate() error {
	if cmd.ItineraryID == "" {
		return errors.New("itinerary ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	return nil
}
