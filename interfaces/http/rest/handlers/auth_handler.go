package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"compass/application/ports"
	"compass/domain/core/entities"
	"compass/pkg/auth"
	pkgerrors "compass/pkg/errors"
	"compass/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuthHandler handles account registration and login
type AuthHandler struct {
	users     ports.UserRepository
	generator *auth.JWTGenerator
	logger    *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	users ports.UserRepository,
	generator *auth.JWTGenerator,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		users:     users,
		generator: generator,
		logger:    logger,
	}
}

// CredentialsRequest represents an email+password request body
type CredentialsRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful register or login response
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Email  string `json:"email"`
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := entities.NewUser(uuid.New().String(), strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		h.respondAppError(w, err, "Registration failed")
		return
	}

	if err := h.users.Save(r.Context(), user); err != nil {
		if !pkgerrors.IsType(err, pkgerrors.ErrorTypeAuthExists) {
			h.logger.Error("Failed to register user", zap.Error(err))
		}
		h.respondAppError(w, err, "Registration failed")
		return
	}

	token, err := h.generator.GenerateToken(user.ID(), user.Email())
	if err != nil {
		h.logger.Error("Failed to issue token", zap.String("userID", user.ID()), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	h.respondJSON(w, http.StatusCreated, AuthResponse{
		Token:  token,
		UserID: user.ID(),
		Email:  user.Email(),
	})
}

// Login handles POST /auth/login. An unknown email and a wrong password
// produce the same credential error, so the response never confirms whether
// an account exists.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.users.GetByEmail(r.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			h.respondError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.logger.Error("Failed to look up user", zap.Error(err))
		h.respondAppError(w, err, "Login failed")
		return
	}

	if !user.CheckPassword(req.Password) {
		h.respondError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.generator.GenerateToken(user.ID(), user.Email())
	if err != nil {
		h.logger.Error("Failed to issue token", zap.String("userID", user.ID()), zap.Error(err))
		h.respondError(w, http.StatusInternalServerError, "Failed to issue token")
		return
	}

	h.respondJSON(w, http.StatusOK, AuthResponse{
		Token:  token,
		UserID: user.ID(),
		Email:  user.Email(),
	})
}

// Helper methods

func (h *AuthHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *AuthHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

func (h *AuthHandler) respondAppError(w http.ResponseWriter, err error, fallback string) {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		h.respondError(w, appErr.HTTPStatus, appErr.Message)
		return
	}
	h.respondError(w, http.StatusInternalServerError, fallback)
}
