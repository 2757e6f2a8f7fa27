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

// StatsService is the interface that wraps methods for statistics and activity logging
type StatsService interface {
	// GetStats computes the user's aggregate statistics
	GetStats(ctx context.Context, userID int) (*models.Stats, error)
	// LogActivity records a study or test activity event
	LogActivity(ctx context.Context, userID int, req models.LogActivityRequest) error
	// RecordTestCompleted inserts a test completion marker
	RecordTestCompleted(ctx context.Context, userID int) error
}

// StatsHandler handles statistics HTTP requests
type StatsHandler struct {
	BaseHandler
	statsService StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService StatsService, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		statsService: statsService,
	}
}

// RegisterRoutes registers all stats handler routes
func (h *StatsHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/stats", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetStats)
		r.Post("/activity", h.LogActivity)
		r.Post("/test-completed", h.RecordTestCompleted)
	})
}

// GetStats handles GET /stats
// @Summary Get aggregate learning statistics
// @Description Recomputed on every call: totals, per-difficulty counts, streak, study time, and completed tests.
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Stats "Statistics snapshot"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats [get]
func (h *StatsHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	stats, err := h.statsService.GetStats(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to compute stats", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

// LogActivity handles POST /stats/activity
// @Summary Log a study or test activity event
// @Description Study-type entries drive streak computation.
// @Tags stats
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.LogActivityRequest true "Activity to log"
// @Success 200 {object} map[string]string "Activity logged"
// @Failure 400 {object} map[string]string "Invalid request body or activity type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats/activity [post]
func (h *StatsHandler) LogActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.LogActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.statsService.LogActivity(r.Context(), userID, req); err != nil {
		if strings.Contains(err.Error(), "invalid activity type") || strings.Contains(err.Error(), "negative") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.Logger.Error("failed to log activity", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "activity logged"})
}

// RecordTestCompleted handles POST /stats/test-completed
// @Summary Record a completed test
// @Tags stats
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Test completion recorded"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /stats/test-completed [post]
func (h *StatsHandler) RecordTestCompleted(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.statsService.RecordTestCompleted(r.Context(), userID); err != nil {
		h.Logger.Error("failed to record test completion", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "test completion recorded"})
}
