package ports

import (
	"context"

	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
	"compass/domain/events"
)

// ItineraryRepository defines the interface for itinerary persistence.
// This is a port in hexagonal architecture - the domain doesn't know about the implementation.
type ItineraryRepository interface {
	// Save persists an itinerary under its caller-assigned ID (create or overwrite)
	Save(ctx context.Context, itinerary *entities.SavedItinerary) error

	// GetByID retrieves one of a user's itineraries
	GetByID(ctx context.Context, userID string, id valueobjects.ItineraryID) (*entities.SavedItinerary, error)

	// ListByUser retrieves all itineraries for a user, newest first
	ListByUser(ctx context.Context, userID string) ([]*entities.SavedItinerary, error)

	// Update merges changed fields into an existing itinerary; a missing
	// record is a not-found error, never an implicit create
	Update(ctx context.Context, itinerary *entities.SavedItinerary) error

	// Delete removes an itinerary; deleting an absent record succeeds
	Delete(ctx context.Context, userID string, id valueobjects.ItineraryID) error
}

// UserRepository defines the interface for account persistence
type UserRepository interface {
	// Save persists a new user account
	Save(ctx context.Context, user *entities.User) error

	// GetByEmail retrieves a user by email address
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)
}

// PlanRequest carries everything the planner needs to generate an itinerary
type PlanRequest struct {
	Destination string
	StartDate   string
	EndDate     string
	IsDayTrip   bool
	Preferences string
	CrowdType   valueobjects.CrowdType
}

// Planner defines the interface for structured itinerary generation
type Planner interface {
	// GeneratePlan produces a validated structured plan for the request.
	// Schema violations in the model output surface as generation errors.
	GeneratePlan(ctx context.Context, req PlanRequest) (*entities.Plan, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// GeoPoint is a resolved map coordinate for a suggested location
type GeoPoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves free-form place names to coordinates
type Geocoder interface {
	// Resolve geocodes the given location names near a destination.
	// Names that cannot be resolved are omitted rather than failing the batch.
	Resolve(ctx context.Context, destination string, names []string) ([]GeoPoint, error)
}

// Notifier pushes itinerary-change notifications to a user's connected clients
type Notifier interface {
	// NotifyUser sends a message to every active connection for the user
	NotifyUser(ctx context.Context, userID string, message interface{}) error
}
