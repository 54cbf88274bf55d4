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

// UpdateItineraryHandler handles itinerary edit commands
type UpdateItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	eventBus      ports.EventPublisher
	sessions      *services.SessionManager
	logger        *zap.Logger
}

// NewUpdateItineraryHandler creates a new update itinerary handler
func NewUpdateItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	eventBus ports.EventPublisher,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *UpdateItineraryHandler {
	return &UpdateItineraryHandler{
		itineraryRepo: itineraryRepo,
		eventBus:      eventBus,
		sessions:      sessions,
		logger:        logger,
	}
}

// Handle executes the update itinerary command. Updating a record that does
// not exist is a not-found error - an update never creates.
func (h *UpdateItineraryHandler) Handle(ctx context.Context, cmd commands.UpdateItineraryCommand) (*entities.SavedItinerary, error) {
	if err := cmd.Validate(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}

	id, err := valueobjects.NewItineraryIDFromString(cmd.ItineraryID)
	if err != nil {
		return nil, fmt.Errorf("invalid itinerary ID: %w", err)
	}

	itinerary, err := h.itineraryRepo.GetByID(ctx, cmd.UserID, id)
	if err != nil {
		return nil, err
	}

	update := entities.ContentUpdate{
		Destination: cmd.Destination,
		Preferences: cmd.Preferences,
		Weather:     cmd.Weather,
		Plan:        cmd.Plan,
	}
	if err := itinerary.ApplyUpdate(update); err != nil {
		return nil, err
	}

	if err := h.itineraryRepo.Update(ctx, itinerary); err != nil {
		return nil, err
	}

	if err := h.eventBus.PublishBatch(ctx, itinerary.GetUncommittedEvents()); err != nil {
		h.logger.Warn("Failed to publish update events",
			zap.String("itineraryID", cmd.ItineraryID),
			zap.Error(err),
		)
	}
	itinerary.MarkEventsAsCommitted()

	// A confirmed update commits any open edit context and refreshes the
	// session's local list entry
	h.sessions.Session(cmd.UserID).CommitEdit(itinerary)

	h.logger.Info("Itinerary updated",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("userID", cmd.UserID),
	)

	return itinerary, nil
}
