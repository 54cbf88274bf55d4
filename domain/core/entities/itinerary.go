package entities

import (
	"time"

	"compass/domain/core/valueobjects"
	"compass/domain/events"
	pkgerrors "compass/pkg/errors"
)

// DefaultWeather is the decorative weather display string applied when a save
// request carries none. It is never sourced from a weather API.
const DefaultWeather = "Mild and pleasant"

// SavedItinerary is a persisted, user-owned itinerary.
// Identity and creation time are immutable; content fields change only
// through explicit edit methods, which record domain events.
type SavedItinerary struct {
	id          valueobjects.ItineraryID
	userID      string
	destination string
	preferences string
	weather     string
	crowdType   valueobjects.CrowdType
	dates       valueobjects.TripDates
	plan        Plan
	createdAt   time.Time

	events []events.DomainEvent
}

// NewSavedItinerary creates a saved itinerary from a successful generation.
// The caller assigns the ID (a fresh one is minted when id is zero).
func NewSavedItinerary(
	id valueobjects.ItineraryID,
	userID string,
	destination string,
	preferences string,
	weather string,
	crowdType valueobjects.CrowdType,
	dates valueobjects.TripDates,
	plan Plan,
) (*SavedItinerary, error) {
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}
	if destination == "" {
		return nil, pkgerrors.NewValidationError("destination cannot be empty")
	}
	if len(plan.Days) == 0 && !plan.IsLegacy() {
		return nil, pkgerrors.NewValidationError("plan must contain at least one day")
	}

	if id.IsZero() {
		id = valueobjects.NewItineraryID()
	}
	if weather == "" {
		weather = DefaultWeather
	}

	now := time.Now()
	it := &SavedItinerary{
		id:          id,
		userID:      userID,
		destination: destination,
		preferences: preferences,
		weather:     weather,
		crowdType:   crowdType,
		dates:       dates,
		plan:        plan,
		createdAt:   now,
		events:      []events.DomainEvent{},
	}

	it.addEvent(events.NewItinerarySaved(id.String(), userID, destination, dates.IsDayTrip(), now))

	return it, nil
}

// ReconstructItinerary rebuilds a saved itinerary from repository data with
// its original creation time. No events are raised.
func ReconstructItinerary(
	id valueobjects.ItineraryID,
	userID string,
	destination string,
	preferences string,
	weather string,
	crowdType valueobjects.CrowdType,
	dates valueobjects.TripDates,
	plan Plan,
	createdAt time.Time,
) (*SavedItinerary, error) {
	if id.IsZero() {
		return nil, pkgerrors.NewValidationError("itinerary ID cannot be empty")
	}
	if userID == "" {
		return nil, pkgerrors.NewValidationError("userID cannot be empty")
	}

	return &SavedItinerary{
		id:          id,
		userID:      userID,
		destination: destination,
		preferences: preferences,
		weather:     weather,
		crowdType:   crowdType,
		dates:       dates,
		plan:        plan,
		createdAt:   createdAt,
		events:      []events.DomainEvent{},
	}, nil
}

// ContentUpdate names the editable content fields. Nil fields are untouched;
// identity and createdAt are not editable.
type ContentUpdate struct {
	Destination *string
	Preferences *string
	Weather     *string
	Plan        *Plan
}

// ApplyUpdate merges the provided fields into the itinerary and records an
// update event listing what changed. An empty update is rejected, and a
// rejected update leaves the itinerary untouched.
func (it *SavedItinerary) ApplyUpdate(update ContentUpdate) error {
	if update.Destination != nil && *update.Destination == "" {
		return pkgerrors.NewValidationError("destination cannot be empty")
	}
	if update.Plan != nil && len(update.Plan.Days) == 0 && !update.Plan.IsLegacy() {
		return pkgerrors.NewValidationError("plan must contain at least one day")
	}

	var changed []string
	if update.Destination != nil {
		it.destination = *update.Destination
		changed = append(changed, "destination")
	}
	if update.Preferences != nil {
		it.preferences = *update.Preferences
		changed = append(changed, "preferences")
	}
	if update.Weather != nil {
		it.weather = *update.Weather
		changed = append(changed, "weather")
	}
	if update.Plan != nil {
		it.plan = *update.Plan
		changed = append(changed, "plan")
	}

	if len(changed) == 0 {
		return pkgerrors.NewValidationError("update contains no fields")
	}

	it.addEvent(events.NewItineraryUpdated(it.id.String(), it.userID, changed, time.Now()))
	return nil
}

// Accessors

func (it *SavedItinerary) ID() valueobjects.ItineraryID      { return it.id }
func (it *SavedItinerary) UserID() string                    { return it.userID }
func (it *SavedItinerary) Destination() string               { return it.destination }
func (it *SavedItinerary) Preferences() string               { return it.preferences }
func (it *SavedItinerary) Weather() string                   { return it.weather }
func (it *SavedItinerary) CrowdType() valueobjects.CrowdType { return it.crowdType }
func (it *SavedItinerary) Dates() valueobjects.TripDates     { return it.dates }
func (it *SavedItinerary) Plan() Plan                        { return it.plan }
func (it *SavedItinerary) CreatedAt() time.Time              { return it.createdAt }

// GetUncommittedEvents returns events raised since the last commit
func (it *SavedItinerary) GetUncommittedEvents() []events.DomainEvent {
	return it.events
}

// MarkEventsAsCommitted clears the uncommitted event list
func (it *SavedItinerary) MarkEventsAsCommitted() {
	it.events = []events.DomainEvent{}
}

func (it *SavedItinerary) addEvent(event events.DomainEvent) {
	it.events = append(it.events, event)
}
