package handlers

import (
	"encoding/json"
	"net/http"

	"compass/application/commands"
	"compass/application/commands/bus"
	"compass/application/queries"
	querybus "compass/application/queries/bus"
	"compass/application/services"
	"compass/domain/core/validators"
	"compass/domain/core/valueobjects"
	"compass/pkg/auth"
	pkgerrors "compass/pkg/errors"
	"compass/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ItineraryHandler handles saved-itinerary HTTP requests
type ItineraryHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	sessions   *services.SessionManager
	logger     *zap.Logger
}

// NewItineraryHandler creates a new itinerary handler
func NewItineraryHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	sessions *services.SessionManager,
	logger *zap.Logger,
) *ItineraryHandler {
	return &ItineraryHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		sessions:   sessions,
		logger:     logger,
	}
}

// SaveItineraryRequest represents the request body for saving an itinerary.
// The plan arrives as raw JSON and goes through the same schema validation
// as generated output, so a hand-edited plan cannot sneak past the rules.
type SaveItineraryRequest struct {
	ID          string          `json:"id,omitempty"`
	Destination string          `json:"destination" validate:"required,max=200"`
	StartDate   string          `json:"startDate" validate:"required"`
	EndDate     string          `json:"endDate,omitempty"`
	IsDayTrip   bool            `json:"isDayTrip"`
	Preferences string          `json:"preferences,omitempty" validate:"omitempty,max=2000"`
	Weather     string          `json:"weather,omitempty" validate:"omitempty,max=200"`
	CrowdType   string          `json:"crowdType,omitempty"`
	Plan        json.RawMessage `json:"plan" validate:"required"`
}

// UpdateItineraryRequest represents the request body for editing a saved
// itinerary. Nil fields are left unchanged.
type UpdateItineraryRequest struct {
	Destination *string         `json:"destination,omitempty" validate:"omitempty,min=1,max=200"`
	Preferences *string         `json:"preferences,omitempty" validate:"omitempty,max=2000"`
	Weather     *string         `json:"weather,omitempty" validate:"omitempty,max=200"`
	Plan        json.RawMessage `json:"plan,omitempty"`
}

// SaveItineraryResponse represents the response for saving an itinerary
type SaveItineraryResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
	SavedAt string `json:"savedAt"`
}

// SaveItinerary handles POST /itineraries
func (h *ItineraryHandler) SaveItinerary(w http.ResponseWriter, r *http.Request) {
	var req SaveItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if len(req.Plan) == 0 {
		h.respondError(w, http.StatusBadRequest, "Plan is required")
		return
	}
	plan, err := validators.ValidatePlan(req.Plan)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid plan: "+err.Error())
		return
	}

	// The client may assign the ID so a retried save lands on the same
	// record; mint one here otherwise.
	itineraryID := req.ID
	if itineraryID == "" {
		itineraryID = uuid.New().String()
	} else if _, err := uuid.Parse(itineraryID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	cmd := commands.SaveItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsDayTrip:   req.IsDayTrip,
		Preferences: req.Preferences,
		Weather:     req.Weather,
		CrowdType:   req.CrowdType,
		Plan:        *plan,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to save itinerary",
			zap.String("userID", userCtx.UserID),
			zap.String("itineraryID", itineraryID),
			zap.Error(err),
		)
		h.respondAppError(w, err, "Failed to save itinerary")
		return
	}

	h.respondJSON(w, http.StatusCreated, SaveItineraryResponse{
		ID:      itineraryID,
		Message: "Itinerary saved successfully",
		SavedAt: utils.NowRFC3339(),
	})
}

// ListItineraries handles GET /itineraries
func (h *ItineraryHandler) ListItineraries(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListItinerariesQuery{
		UserID: userCtx.UserID,
	})
	if err != nil {
		h.logger.Error("Failed to list itineraries",
			zap.String("userID", userCtx.UserID),
			zap.Error(err),
		)
		h.respondAppError(w, err, "Failed to list itineraries")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// GetItinerary handles GET /itineraries/{itineraryID}
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetItineraryQuery{
		UserID:      userCtx.UserID,
		ItineraryID: itineraryID,
	})
	if err != nil {
		h.respondAppError(w, err, "Failed to retrieve itinerary")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// UpdateItinerary handles PUT /itineraries/{itineraryID}
func (h *ItineraryHandler) UpdateItinerary(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	var req UpdateItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if req.Destination == nil && req.Preferences == nil && req.Weather == nil && len(req.Plan) == 0 {
		h.respondError(w, http.StatusBadRequest, "Update contains no fields")
		return
	}

	cmd := commands.UpdateItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
		Destination: req.Destination,
		Preferences: req.Preferences,
		Weather:     req.Weather,
	}
	if len(req.Plan) > 0 {
		plan, err := validators.ValidatePlan(req.Plan)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "Invalid plan: "+err.Error())
			return
		}
		cmd.Plan = plan
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to update itinerary",
			zap.String("userID", userCtx.UserID),
			zap.String("itineraryID", itineraryID),
			zap.Error(err),
		)
		h.respondAppError(w, err, "Failed to update itinerary")
		return
	}

	// Respond with the merged record so the client can replace its copy
	result, err := h.queryBus.Ask(r.Context(), queries.GetItineraryQuery{
		UserID:      userCtx.UserID,
		ItineraryID: itineraryID,
	})
	if err != nil {
		h.respondAppError(w, err, "Failed to retrieve updated itinerary")
		return
	}

	h.respondJSON(w, http.StatusOK, result)
}

// DeleteItinerary handles DELETE /itineraries/{itineraryID}
func (h *ItineraryHandler) DeleteItinerary(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	cmd := commands.DeleteItineraryCommand{
		ItineraryID: itineraryID,
		UserID:      userCtx.UserID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("Failed to delete itinerary",
			zap.String("userID", userCtx.UserID),
			zap.String("itineraryID", itineraryID),
			zap.Error(err),
		)
		h.respondAppError(w, err, "Failed to delete itinerary")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// BeginEdit handles POST /itineraries/{itineraryID}/edit. The edit context
// binds the user's session to one record from their last fetched list; a
// later PUT commits it, DELETE on the same path cancels it.
func (h *ItineraryHandler) BeginEdit(w http.ResponseWriter, r *http.Request) {
	itineraryID := chi.URLParam(r, "itineraryID")
	if _, err := uuid.Parse(itineraryID); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := valueobjects.NewItineraryIDFromString(itineraryID)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.sessions.Session(userCtx.UserID).BeginEdit(id); err != nil {
		h.respondAppError(w, err, "Failed to open edit context")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"editing": itineraryID,
	})
}

// CancelEdit handles DELETE /itineraries/{itineraryID}/edit. Cancelling has
// no side effects beyond closing the edit context.
func (h *ItineraryHandler) CancelEdit(w http.ResponseWriter, r *http.Request) {
	if _, err := uuid.Parse(chi.URLParam(r, "itineraryID")); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid itinerary ID format")
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	h.sessions.Session(userCtx.UserID).CancelEdit()
	w.WriteHeader(http.StatusNoContent)
}

// Helper methods

func (h *ItineraryHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *ItineraryHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondAppError maps a typed application error to its HTTP status,
// falling back to 500 with a generic message for anything untyped
func (h *ItineraryHandler) respondAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		h.respondError(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	h.respondError(w, http.StatusInternalServerError, fallback)
}
