package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hanyustudent/backend/internal/auth"
	"github.com/hanyustudent/backend/internal/models"
)

// ChallengeService is the interface that wraps methods for the daily challenge scheduler
type ChallengeService interface {
	// GetToday retrieves today's four challenges with completion and unlock state
	GetToday(ctx context.Context, userID int) ([]models.DailyChallenge, error)
	// MarkComplete records completion of one of today's challenges by position
	MarkComplete(ctx context.Context, userID, position int) error
}

// ChallengeHandler handles daily challenge HTTP requests
type ChallengeHandler struct {
	BaseHandler
	challengeService ChallengeService
}

// NewChallengeHandler creates a new challenge handler
func NewChallengeHandler(challengeService ChallengeService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		BaseHandler:      BaseHandler{Logger: logger},
		challengeService: challengeService,
	}
}

// RegisterRoutes registers all challenge handler routes
func (h *ChallengeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/challenges", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/today", h.GetToday)
		r.Post("/{position}/complete", h.MarkComplete)
	})
}

// GetToday handles GET /challenges/today
// @Summary Get today's daily challenges
// @Description Four steps selected deterministically from the 14-step cycle, with sequential unlock state.
// @Tags challenges
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.DailyChallenge "Today's challenges"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /challenges/today [get]
func (h *ChallengeHandler) GetToday(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	challenges, err := h.challengeService.GetToday(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get daily challenges", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, challenges)
}

// MarkComplete handles POST /challenges/{position}/complete
// @Summary Mark a daily challenge complete
// @Description The position must be unlocked: all earlier positions today must already be complete.
// @Tags challenges
// @Produce json
// @Security ApiKeyAuth
// @Param position path int true "Challenge position (0-3)"
// @Success 200 {object} map[string]string "Challenge marked complete"
// @Failure 400 {object} map[string]string "Invalid position"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Challenge is locked"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /challenges/{position}/complete [post]
func (h *ChallengeHandler) MarkComplete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid position")
		return
	}

	if err := h.challengeService.MarkComplete(r.Context(), userID, position); err != nil {
		if strings.Contains(err.Error(), "locked") {
			h.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		if strings.Contains(err.Error(), "position") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to mark challenge complete", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "challenge marked complete"})
}
