package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hanyustudent/backend/internal/auth"
	"github.com/hanyustudent/backend/internal/models"
)

// SessionService is the interface that wraps methods for session progress operations
type SessionService interface {
	// Get retrieves the user's session progress, creating it lazily at zero
	Get(ctx context.Context, userID int) (*models.SessionProgress, error)
	// Update merges the given fields into the user's session progress
	Update(ctx context.Context, userID int, fields models.UpdateSessionProgressRequest) (*models.SessionProgress, error)
	// Reset deletes the session progress row
	Reset(ctx context.Context, userID int) error
}

// SessionProgressHandler handles session progress HTTP requests
type SessionProgressHandler struct {
	BaseHandler
	sessionService SessionService
}

// NewSessionProgressHandler creates a new session progress handler
func NewSessionProgressHandler(sessionService SessionService, logger *zap.Logger) *SessionProgressHandler {
	return &SessionProgressHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		sessionService: sessionService,
	}
}

// RegisterRoutes registers all session progress handler routes
func (h *SessionProgressHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/session-progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Reset)
	})
}

// Get handles GET /session-progress
// @Summary Get session progress
// @Description Returns the user's current session and the derived total session count.
// @Tags session-progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SessionProgress "Session progress"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session-progress [get]
func (h *SessionProgressHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	progress, err := h.sessionService.Get(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get session progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// Update handles PUT /session-progress
// @Summary Update session progress
// @Description Merges the provided fields; omitted fields keep their values.
// @Tags session-progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.UpdateSessionProgressRequest true "Fields to update"
// @Success 200 {object} models.SessionProgress "Updated session progress"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session-progress [put]
func (h *SessionProgressHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateSessionProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	progress, err := h.sessionService.Update(r.Context(), userID, req)
	if err != nil {
		if strings.Contains(err.Error(), "negative") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to update session progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, progress)
}

// Reset handles DELETE /session-progress
// @Summary Reset session progress
// @Description Deletes the row; the next read starts over at session zero.
// @Tags session-progress
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Session progress reset"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /session-progress [delete]
func (h *SessionProgressHandler) Reset(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.sessionService.Reset(r.Context(), userID); err != nil {
		h.Logger.Error("failed to reset session progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "session progress reset"})
}
