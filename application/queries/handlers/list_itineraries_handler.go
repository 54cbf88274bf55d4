package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"compass/application/ports"
	"compass/application/queries"
	"compass/application/services"
)

// ListItinerariesHandler handles queries for a user's itinerary list
type ListItinerariesHandler struct {
	itineraryRepo ports.ItineraryRepository
	sessions      *services.SessionManager
	logger        *zap.Logger
}

// NewListItinerariesHandler creates a new list itineraries handler
func NewListItinerariesHandler(
	itineraryRepo ports.ItineraryRepository,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *ListItinerariesHandler {
	return &ListItinerariesHandler{
		itineraryRepo: itineraryRepo,
		sessions:      sessions,
		logger:        logger,
	}
}

// Handle executes the list itineraries query. The repository returns records
// newest first, so the list order is stable across devices.
func (h *ListItinerariesHandler) Handle(ctx context.Context, query queries.ListItinerariesQuery) (*queries.ListItinerariesResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	itineraries, err := h.itineraryRepo.ListByUser(ctx, query.UserID)
	if err != nil {
		h.logger.Error("Failed to list itineraries",
			zap.String("userID", query.UserID),
			zap.Error(err),
		)
		return nil, err
	}

	// Every confirmed fetch replaces the session's local list, so later edit
	// contexts open against store-confirmed records
	h.sessions.Session(query.UserID).SetList(itineraries)

	result := &queries.ListItinerariesResult{
		Itineraries: make([]queries.ItinerarySummary, 0, len(itineraries)),
		TotalCount:  len(itineraries),
	}
	for _, it := range itineraries {
		result.Itineraries = append(result.Itineraries, queries.ItinerarySummary{
			ID:          it.ID().String(),
			Destination: it.Destination(),
			StartDate:   it.Dates().StartDateString(),
			EndDate:     it.Dates().EndDateString(),
			IsDayTrip:   it.Dates().IsDayTrip(),
			CrowdType:   it.CrowdType().String(),
			Weather:     it.Weather(),
			CreatedAt:   it.CreatedAt().Format(timeFormat),
		})
	}

	return result, nil
}
