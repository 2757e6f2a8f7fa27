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

// SpeedChallengeService is the interface that wraps methods for the speed challenge
type SpeedChallengeService interface {
	// GetStatus reports whether the user has learned enough words to play
	GetStatus(ctx context.Context, userID int) (*models.SpeedChallengeStatus, error)
	// Start begins a new timed attempt
	Start(ctx context.Context, userID int) (*models.SpeedChallengeSession, error)
	// SubmitAnswer grades one answer within a running attempt
	SubmitAnswer(ctx context.Context, userID int, sessionID string, req models.SubmitAnswerRequest) (*models.AnswerResult, error)
	// Complete finishes an attempt and persists the score
	Complete(ctx context.Context, userID int, sessionID string) (*models.SpeedChallengeResult, error)
	// GetHighScore retrieves the user's best attempt, or nil when none exists
	GetHighScore(ctx context.Context, userID int) (*models.SpeedChallengeScore, error)
}

// SpeedChallengeHandler handles speed challenge HTTP requests
type SpeedChallengeHandler struct {
	BaseHandler
	speedService SpeedChallengeService
}

// NewSpeedChallengeHandler creates a new speed challenge handler
func NewSpeedChallengeHandler(speedService SpeedChallengeService, logger *zap.Logger) *SpeedChallengeHandler {
	return &SpeedChallengeHandler{
		BaseHandler:  BaseHandler{Logger: logger},
		speedService: speedService,
	}
}

// RegisterRoutes registers all speed challenge handler routes
func (h *SpeedChallengeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/speed-challenge", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/status", h.GetStatus)
		r.Get("/high-score", h.GetHighScore)
		r.Post("/start", h.Start)
		r.Post("/{sessionID}/answer", h.SubmitAnswer)
		r.Post("/{sessionID}/complete", h.Complete)
	})
}

// GetStatus handles GET /speed-challenge/status
// @Summary Get speed challenge eligibility
// @Description The challenge unlocks at sixty learned words.
// @Tags speed-challenge
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SpeedChallengeStatus "Eligibility and learned word count"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /speed-challenge/status [get]
func (h *SpeedChallengeHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	status, err := h.speedService.GetStatus(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get speed challenge status", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, status)
}

// Start handles POST /speed-challenge/start
// @Summary Start a speed challenge attempt
// @Description Begins a 60-second attempt with up to 30 questions drawn from learned words.
// @Tags speed-challenge
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SpeedChallengeSession "Session with questions"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Not enough learned words"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /speed-challenge/start [post]
func (h *SpeedChallengeHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	session, err := h.speedService.Start(r.Context(), userID)
	if err != nil {
		if strings.Contains(err.Error(), "requires") {
			h.RespondError(w, http.StatusConflict, err.Error())
			return
		}
		h.Logger.Error("failed to start speed challenge", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, session)
}

// SubmitAnswer handles POST /speed-challenge/{sessionID}/answer
// @Summary Submit an answer in a running attempt
// @Tags speed-challenge
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Param request body models.SubmitAnswerRequest true "Answer"
// @Success 200 {object} models.AnswerResult "Grading result"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or question not found"
// @Failure 410 {object} map[string]string "Challenge expired"
// @Router /speed-challenge/{sessionID}/answer [post]
func (h *SpeedChallengeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.speedService.SubmitAnswer(r.Context(), userID, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		h.respondSessionError(w, err)
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Complete handles POST /speed-challenge/{sessionID}/complete
// @Summary Complete a speed challenge attempt
// @Description Persists the score and reports whether it beats the user's prior best.
// @Tags speed-challenge
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} models.SpeedChallengeResult "Final score"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /speed-challenge/{sessionID}/complete [post]
func (h *SpeedChallengeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	result, err := h.speedService.Complete(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("failed to complete speed challenge", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// GetHighScore handles GET /speed-challenge/high-score
// @Summary Get the user's best speed challenge attempt
// @Description Highest score, ties broken by lower time used. Score zero with no attempts.
// @Tags speed-challenge
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.SpeedChallengeScore "Best attempt"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /speed-challenge/high-score [get]
func (h *SpeedChallengeHandler) GetHighScore(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	best, err := h.speedService.GetHighScore(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get high score", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if best == nil {
		best = &models.SpeedChallengeScore{UserID: userID}
	}
	h.RespondJSON(w, http.StatusOK, best)
}

// respondSessionError maps in-memory session errors onto HTTP statuses
func (h *SpeedChallengeHandler) respondSessionError(w http.ResponseWriter, err error) {
	switch {
	case strings.Contains(err.Error(), "expired"):
		h.RespondError(w, http.StatusGone, err.Error())
	case strings.Contains(err.Error(), "not found"):
		h.RespondError(w, http.StatusNotFound, err.Error())
	case strings.Contains(err.Error(), "already answered"):
		h.RespondError(w, http.StatusConflict, err.Error())
	default:
		h.Logger.Error("failed to grade answer", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
	}
}
