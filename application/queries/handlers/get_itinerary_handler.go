package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compass/application/ports"
	"compass/application/queries"
	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
)

const timeFormat = time.RFC3339

// GetItineraryHandler handles queries for a single saved itinerary
type GetItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	logger        *zap.Logger
}

// NewGetItineraryHandler creates a new get itinerary handler
func NewGetItineraryHandler(itineraryRepo ports.ItineraryRepository, logger *zap.Logger) *GetItineraryHandler {
	return &GetItineraryHandler{
		itineraryRepo: itineraryRepo,
		logger:        logger,
	}
}

// Handle executes the get itinerary query
func (h *GetItineraryHandler) Handle(ctx context.Context, query queries.GetItineraryQuery) (*queries.GetItineraryResult, error) {
	if err := query.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	id, err := valueobjects.NewItineraryIDFromString(query.ItineraryID)
	if err != nil {
		return nil, fmt.Errorf("invalid itinerary ID: %w", err)
	}

	itinerary, err := h.itineraryRepo.GetByID(ctx, query.UserID, id)
	if err != nil {
		return nil, err
	}

	return BuildItineraryResult(itinerary), nil
}

// BuildItineraryResult maps an itinerary entity to its read model
func BuildItineraryResult(it *entities.SavedItinerary) *queries.GetItineraryResult {
	result := &queries.GetItineraryResult{
		ID:                 it.ID().String(),
		UserID:             it.UserID(),
		Destination:        it.Destination(),
		Preferences:        it.Preferences(),
		Weather:            it.Weather(),
		CrowdType:          it.CrowdType().String(),
		StartDate:          it.Dates().StartDateString(),
		EndDate:            it.Dates().EndDateString(),
		IsDayTrip:          it.Dates().IsDayTrip(),
		SuggestedLocations: it.Plan().SuggestedLocations,
		LegacyText:         it.Plan().LegacyText,
		CreatedAt:          it.CreatedAt().Format(timeFormat),
	}

	for _, day := range it.Plan().Days {
		view := queries.DayView{
			Day:        day.Day,
			Activities: make([]queries.ActivityView, 0, len(day.Activities)),
		}
		for _, act := range day.Activities {
			view.Activities = append(view.Activities, queries.ActivityView{
				Name:          act.Name,
				Description:   act.Description,
				Type:          act.Type,
				Cost:          act.Cost,
				ArrivalTime:   act.ArrivalTime,
				DepartureTime: act.DepartureTime,
			})
		}
		result.Days = append(result.Days, view)
	}

	return result
}
