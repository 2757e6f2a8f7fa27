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

// MistakeService is the interface that wraps methods for mistake tracking
type MistakeService interface {
	// Record stores a mistake, deduplicating near-repeats
	Record(ctx context.Context, userID int, req models.RecordMistakeRequest) error
	// Count returns the total number of recorded mistakes
	Count(ctx context.Context, userID int) (int, error)
	// GetMistakeWords retrieves the distinct words the user has gotten wrong
	GetMistakeWords(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// List retrieves the full mistake history, newest first
	List(ctx context.Context, userID int) ([]models.MistakeRecord, error)
	// Clear deletes all mistake rows
	Clear(ctx context.Context, userID int) error
}

// MistakeHandler handles mistake tracking HTTP requests
type MistakeHandler struct {
	BaseHandler
	mistakeService MistakeService
}

// NewMistakeHandler creates a new mistake handler
func NewMistakeHandler(mistakeService MistakeService, logger *zap.Logger) *MistakeHandler {
	return &MistakeHandler{
		BaseHandler:    BaseHandler{Logger: logger},
		mistakeService: mistakeService,
	}
}

// RegisterRoutes registers all mistake handler routes
func (h *MistakeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/mistakes", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.List)
		r.Post("/record", h.Record)
		r.Get("/count", h.Count)
		r.Get("/unique-words", h.GetUniqueWords)
		r.Delete("/", h.Clear)
	})
}

// Record handles POST /mistakes/record
// @Summary Record a mistake
// @Description Stores a wrong answer. Repeats for the same word and test type within five minutes are ignored.
// @Tags mistakes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.RecordMistakeRequest true "Mistake to record"
// @Success 200 {object} map[string]string "Mistake recorded"
// @Failure 400 {object} map[string]string "Invalid request body or test type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mistakes/record [post]
func (h *MistakeHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.RecordMistakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.mistakeService.Record(r.Context(), userID, req); err != nil {
		if strings.Contains(err.Error(), "invalid test type") {
			h.RespondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "word not found")
			return
		}
		h.Logger.Error("failed to record mistake", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "mistake recorded"})
}

// List handles GET /mistakes
// @Summary Get the full mistake history
// @Tags mistakes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.MistakeRecord "Mistakes, newest first"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mistakes [get]
func (h *MistakeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	mistakes, err := h.mistakeService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list mistakes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, mistakes)
}

// Count handles GET /mistakes/count
// @Summary Get the mistake count
// @Description The mistake test unlocks at ten recorded mistakes.
// @Tags mistakes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]int "Total mistake count"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mistakes/count [get]
func (h *MistakeHandler) Count(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	count, err := h.mistakeService.Count(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to count mistakes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]int{"count": count})
}

// GetUniqueWords handles GET /mistakes/unique-words
// @Summary Get the distinct words the user has gotten wrong
// @Tags mistakes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.VocabularyWord "Distinct mistake words"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mistakes/unique-words [get]
func (h *MistakeHandler) GetUniqueWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	words, err := h.mistakeService.GetMistakeWords(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get mistake words", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// Clear handles DELETE /mistakes
// @Summary Clear all mistakes
// @Tags mistakes
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Mistakes cleared"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /mistakes [delete]
func (h *MistakeHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.mistakeService.Clear(r.Context(), userID); err != nil {
		h.Logger.Error("failed to clear mistakes", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "mistakes cleared"})
}
