package handlers

import (
	"encoding/json"
	"net/http"

	"compass/application/ports"
	"compass/application/queries"
	querybus "compass/application/queries/bus"
	"compass/application/services"
	"compass/domain/core/valueobjects"
	"compass/pkg/auth"
	pkgerrors "compass/pkg/errors"
	"compass/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PlannerHandler handles plan generation and map-location HTTP requests
type PlannerHandler struct {
	sessions *services.SessionManager
	planner  ports.Planner
	geocoder ports.Geocoder
	queryBus *querybus.QueryBus
	logger   *zap.Logger
}

// NewPlannerHandler creates a new planner handler
func NewPlannerHandler(
	sessions *services.SessionManager,
	planner ports.Planner,
	geocoder ports.Geocoder,
	queryBus *querybus.QueryBus,
	logger *zap.Logger,
) *PlannerHandler {
	return &PlannerHandler{
		sessions: sessions,
		planner:  planner,
		geocoder: geocoder,
		queryBus: queryBus,
		logger:   logger,
	}
}

// GeneratePlanRequest represents the request body for generating a plan
type GeneratePlanRequest struct {
	Destination string `json:"destination" validate:"required,max=200"`
	StartDate   string `json:"startDate" validate:"required"`
	EndDate     string `json:"endDate,omitempty"`
	IsDayTrip   bool   `json:"isDayTrip"`
	Preferences string `json:"preferences,omitempty" validate:"omitempty,max=2000"`
	CrowdType   string `json:"crowdType,omitempty"`
}

// SessionStatusResponse represents the planner session state for a user
type SessionStatusResponse struct {
	State     string `json:"state"`
	HasResult bool   `json:"hasResult"`
	Editing   string `json:"editing,omitempty"`
	LastError string `json:"lastError,omitempty"`
}

// GeneratePlan handles POST /planner/generate. Generation is synchronous;
// a second request while one is in flight for the same user is rejected busy.
func (h *PlannerHandler) GeneratePlan(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlanRequest
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

	crowd, err := valueobjects.NewCrowdTypeFromString(req.CrowdType)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := valueobjects.NewTripDates(req.IsDayTrip, req.StartDate, req.EndDate); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session := h.sessions.Session(userCtx.UserID)
	plan, err := session.Generate(r.Context(), h.planner, ports.PlanRequest{
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsDayTrip:   req.IsDayTrip,
		Preferences: req.Preferences,
		CrowdType:   crowd,
	})
	if err != nil {
		if !pkgerrors.IsBusy(err) {
			h.logger.Error("Plan generation failed",
				zap.String("userID", userCtx.UserID),
				zap.String("destination", req.Destination),
				zap.Error(err),
			)
		}
		h.respondAppError(w, err, "Plan generation failed")
		return
	}

	h.respondJSON(w, http.StatusOK, plan)
}

// SessionStatus handles GET /planner/session
func (h *PlannerHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	session := h.sessions.Session(userCtx.UserID)
	_, hasResult := session.CurrentResult()

	resp := SessionStatusResponse{
		State:     string(session.State()),
		HasResult: hasResult,
	}
	if editingID, ok := session.EditingID(); ok {
		resp.Editing = editingID.String()
	}
	if lastErr := session.LastError(); lastErr != nil {
		resp.LastError = lastErr.Error()
	}

	h.respondJSON(w, http.StatusOK, resp)
}

// MapLocations handles GET /itineraries/{itineraryID}/locations. It geocodes
// the itinerary's suggested locations; names that cannot be resolved are
// omitted rather than failing the batch.
func (h *PlannerHandler) MapLocations(w http.ResponseWriter, r *http.Request) {
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

	itinerary, ok := result.(*queries.GetItineraryResult)
	if !ok {
		h.respondError(w, http.StatusInternalServerError, "Unexpected query result")
		return
	}

	points := []ports.GeoPoint{}
	if len(itinerary.SuggestedLocations) > 0 {
		points, err = h.geocoder.Resolve(r.Context(), itinerary.Destination, itinerary.SuggestedLocations)
		if err != nil {
			h.logger.Error("Geocoding failed",
				zap.String("itineraryID", itineraryID),
				zap.Error(err),
			)
			h.respondError(w, http.StatusBadGateway, "Failed to resolve map locations")
			return
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"itineraryID": itineraryID,
		"destination": itinerary.Destination,
		"locations":   points,
	})
}

// Helper methods

func (h *PlannerHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *PlannerHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

func (h *PlannerHandler) respondAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		h.respondError(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	h.respondError(w, http.StatusInternalServerError, fallback)
}
