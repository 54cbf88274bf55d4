package handlers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"compass/application/commands"
	"compass/application/ports"
	"compass/application/services"
	"compass/domain/core/entities"
	"compass/domain/core/valueobjects"
)

// SaveItineraryHandler handles itinerary save commands
type SaveItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	eventBus      ports.EventPublisher
	sessions      *services.SessionManager
	logger        *zap.Logger
}

// NewSaveItineraryHandler creates a new save itinerary handler
func NewSaveItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	eventBus ports.EventPublisher,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *SaveItineraryHandler {
	return &SaveItineraryHandler{
		itineraryRepo: itineraryRepo,
		eventBus:      eventBus,
		sessions:      sessions,
		logger:        logger,
	}
}

// Handle executes the save itinerary command. Saving under an ID that already
// exists overwrites the record, so retries after a lost response converge on
// one copy.
func (h *SaveItineraryHandler) Handle(ctx context.Context, cmd commands.SaveItineraryCommand) (*entities.SavedItinerary, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	var id valueobjects.ItineraryID
	if cmd.ItineraryID != "" {
		parsed, err := valueobjects.NewItineraryIDFromString(cmd.ItineraryID)
		if err != nil {
			return nil, fmt.Errorf("invalid itinerary ID: %w", err)
		}
		id = parsed
	}

	crowdType, err := valueobjects.NewCrowdTypeFromString(cmd.CrowdType)
	if err != nil {
		return nil, fmt.Errorf("invalid crowd type: %w", err)
	}

	dates, err := valueobjects.NewTripDates(cmd.IsDayTrip, cmd.StartDate, cmd.EndDate)
	if err != nil {
		return nil, err
	}

	itinerary, err := entities.NewSavedItinerary(
		id,
		cmd.UserID,
		cmd.Destination,
		cmd.Preferences,
		cmd.Weather,
		crowdType,
		dates,
		cmd.Plan,
	)
	if err != nil {
		return nil, err
	}

	if err := h.itineraryRepo.Save(ctx, itinerary); err != nil {
		return nil, err
	}

	// Events only after the store confirmed the write
	if err := h.eventBus.PublishBatch(ctx, itinerary.GetUncommittedEvents()); err != nil {
		h.logger.Warn("Failed to publish save events",
			zap.String("itineraryID", itinerary.ID().String()),
			zap.Error(err),
		)
	}
	itinerary.MarkEventsAsCommitted()

	// The session's local list changes only on store-confirmed writes
	h.sessions.Session(cmd.UserID).ApplyConfirmedSave(itinerary)

	h.logger.Info("Itinerary saved",
		zap.String("itineraryID", itinerary.ID().String()),
		zap.String("userID", cmd.UserID),
		zap.String("destination", cmd.Destination),
	)

	return itinerary, nil
}
