package handlers

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"compass/application/commands"
	"compass/application/ports"
	"compass/application/services"
	"compass/domain/core/valueobjects"
	"compass/domain/events"
)

// DeleteItineraryHandler handles itinerary removal commands
type DeleteItineraryHandler struct {
	itineraryRepo ports.ItineraryRepository
	eventBus      ports.EventPublisher
	sessions      *services.SessionManager
	logger        *zap.Logger
}

// NewDeleteItineraryHandler creates a new delete itinerary handler
func NewDeleteItineraryHandler(
	itineraryRepo ports.ItineraryRepository,
	eventBus ports.EventPublisher,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *DeleteItineraryHandler {
	return &DeleteItineraryHandler{
		itineraryRepo: itineraryRepo,
		eventBus:      eventBus,
		sessions:      sessions,
		logger:        logger,
	}
}

// Handle executes the delete itinerary command. Deleting an absent record
// succeeds so a retried delete reports the same outcome as the first.
func (h *DeleteItineraryHandler) Handle(ctx context.Context, cmd commands.DeleteItineraryCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	id, err := valueobjects.NewItineraryIDFromString(cmd.ItineraryID)
	if err != nil {
		return fmt.Errorf("invalid itinerary ID: %w", err)
	}

	if err := h.itineraryRepo.Delete(ctx, cmd.UserID, id); err != nil {
		return err
	}

	h.sessions.Session(cmd.UserID).ApplyConfirmedDelete(id)

	event := events.NewItineraryDeleted(cmd.ItineraryID, cmd.UserID, time.Now())
	if err := h.eventBus.Publish(ctx, event); err != nil {
		h.logger.Warn("Failed to publish deletion event",
			zap.String("itineraryID", cmd.ItineraryID),
			zap.Error(err),
		)
	}

	h.logger.Info("Itinerary deleted",
		zap.String("itineraryID", cmd.ItineraryID),
		zap.String("userID", cmd.UserID),
	)

	return nil
}
