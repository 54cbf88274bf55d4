package memory

import (
	"context"
	"sort"
	"sync"

	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
	"compass/pkg/errors"
)

// ItineraryRepository is an in-memory itinerary store used for local
// development and tests. It mirrors the DynamoDB adapter's semantics:
// save is an upsert, update requires an existing record, delete is
// idempotent and list returns newest first.
type ItineraryRepository struct {
	mu     sync.RWMutex
	byUser map[string]map[string]*entities.SavedItinerary
}

// NewItineraryRepository creates an empty in-memory itinerary repository
func NewItineraryRepository() *ItineraryRepository {
	return &ItineraryRepository{
		byUser: make(map[string]map[string]*entities.SavedItinerary),
	}
}

// Save persists an itinerary, overwriting any record with the same ID
func (r *ItineraryRepository) Save(ctx context.Context, itinerary *entities.SavedItinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := r.byUser[itinerary.UserID()]
	if !ok {
		records = make(map[string]*entities.SavedItinerary)
		r.byUser[itinerary.UserID()] = records
	}
	records[itinerary.ID().String()] = itinerary
	return nil
}

// GetByID retrieves one of a user's itineraries
func (r *ItineraryRepository) GetByID(ctx context.Context, userID string, id valueobjects.ItineraryID) (*entities.SavedItinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	itinerary, ok := r.byUser[userID][id.String()]
	if !ok {
		return nil, errors.NewNotFoundError("itinerary")
	}
	return itinerary, nil
}

// ListByUser retrieves all itineraries for a user, newest first
func (r *ItineraryRepository) ListByUser(ctx context.Context, userID string) ([]*entities.SavedItinerary, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := r.byUser[userID]
	out := make([]*entities.SavedItinerary, 0, len(records))
	for _, itinerary := range records {
		out = append(out, itinerary)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// Update replaces an existing itinerary; a missing record is a not-found
// error, never an implicit create
func (r *ItineraryRepository) Update(ctx context.Context, itinerary *entities.SavedItinerary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records, ok := r.byUser[itinerary.UserID()]
	if !ok {
		return errors.NewNotFoundError("itinerary")
	}
	if _, ok := records[itinerary.ID().String()]; !ok {
		return errors.NewNotFoundError("itinerary")
	}
	records[itinerary.ID().String()] = itinerary
	return nil
}

// Delete removes an itinerary; deleting an absent record succeeds
func (r *ItineraryRepository) Delete(ctx context.Context, userID string, id valueobjects.ItineraryID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser[userID], id.String())
	return nil
}
