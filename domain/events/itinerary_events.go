package events

import (
	"time"
)

// Event type constants
const (
	EventItinerarySaved   = "itinerary.saved"
	EventItineraryUpdated = "itinerary.updated"
	EventItineraryDeleted = "itinerary.deleted"
)

// ItinerarySaved is raised after a save is confirmed by the store
type ItinerarySaved struct {
	BaseEvent
	Destination string `json:"destination"`
	IsDayTrip   bool   `json:"is_day_trip"`
}

// NewItinerarySaved creates an ItinerarySaved event
func NewItinerarySaved(itineraryID, userID, destination string, isDayTrip bool, timestamp time.Time) ItinerarySaved {
	return ItinerarySaved{
		BaseEvent: BaseEvent{
			AggregateID: itineraryID,
			EventType:   EventItinerarySaved,
			Timestamp:   timestamp,
			UserID:      userID,
		},
		Destination: destination,
		IsDayTrip:   isDayTrip,
	}
}

// ItineraryUpdated is raised after an edit is confirmed by the store
type ItineraryUpdated struct {
	BaseEvent
	ChangedFields []string `json:"changed_fields"`
}

// NewItineraryUpdated creates an ItineraryUpdated event
func NewItineraryUpdated(itineraryID, userID string, changedFields []string, timestamp time.Time) ItineraryUpdated {
	return ItineraryUpdated{
		BaseEvent: BaseEvent{
			AggregateID: itineraryID,
			EventType:   EventItineraryUpdated,
			Timestamp:   timestamp,
			UserID:      userID,
		},
		ChangedFields: changedFields,
	}
}

// ItineraryDeleted is raised after a removal is confirmed by the store
type ItineraryDeleted struct {
	BaseEvent
}

// NewItineraryDeleted creates an ItineraryDeleted event
func NewItineraryDeleted(itineraryID, userID string, timestamp time.Time) ItineraryDeleted {
	return ItineraryDeleted{
		BaseEvent: BaseEvent{
			AggregateID: itineraryID,
			EventType:   EventItineraryDeleted,
			Timestamp:   timestamp,
			UserID:      userID,
		},
	}
}
