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

// ProgressService is the interface that wraps methods for word progress operations
type ProgressService interface {
	// MarkLearned marks a word as learned for the user
	MarkLearned(ctx context.Context, userID, wordID int) error
	// GetAllWordsWithLearnedFlag retrieves the full vocabulary with learned flags
	GetAllWordsWithLearnedFlag(ctx context.Context, userID int) ([]models.WordWithProgress, error)
	// GetRecentlyLearned returns the most recently learned words
	GetRecentlyLearned(ctx context.Context, userID int) ([]models.VocabularyWord, error)
	// ResetAll wipes the user's progress, test sessions, and activity log
	ResetAll(ctx context.Context, userID int) error
}

// WordLookup fetches single vocabulary words for the audio endpoint
type WordLookup interface {
	// GetByID retrieves a vocabulary word by ID
	GetByID(ctx context.Context, id int) (*models.VocabularyWord, error)
}

// SpeechSynthesizer converts text into spoken audio bytes
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// VocabularyHandler handles vocabulary and word progress HTTP requests
type VocabularyHandler struct {
	BaseHandler
	progressService ProgressService
	words           WordLookup
	tts             SpeechSynthesizer
}

// NewVocabularyHandler creates a new vocabulary handler
func NewVocabularyHandler(progressService ProgressService, words WordLookup, tts SpeechSynthesizer, logger *zap.Logger) *VocabularyHandler {
	return &VocabularyHandler{
		BaseHandler:     BaseHandler{Logger: logger},
		progressService: progressService,
		words:           words,
		tts:             tts,
	}
}

// RegisterRoutes registers all vocabulary handler routes
func (h *VocabularyHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/vocabulary", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetAllWords)
		r.Get("/recent", h.GetRecentWords)
		r.Post("/{id}/learn", h.MarkLearned)
		r.Get("/{id}/audio", h.GetAudio)
	})
	r.Route("/progress", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/reset", h.ResetProgress)
	})
}

// GetAllWords handles GET /vocabulary
// @Summary Get the full vocabulary with learned flags
// @Tags vocabulary
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.WordWithProgress "All words with the user's learned flags"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocabulary [get]
func (h *VocabularyHandler) GetAllWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	words, err := h.progressService.GetAllWordsWithLearnedFlag(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get words with progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// GetRecentWords handles GET /vocabulary/recent
// @Summary Get the most recently learned words
// @Description Returns ten words per completed session, most recently studied first.
// @Tags vocabulary
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {array} models.VocabularyWord "Recently learned words"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocabulary/recent [get]
func (h *VocabularyHandler) GetRecentWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	words, err := h.progressService.GetRecentlyLearned(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get recently learned words", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, words)
}

// MarkLearned handles POST /vocabulary/{id}/learn
// @Summary Mark a word as learned
// @Description Idempotent upsert; re-studying an already learned word increments its study count.
// @Tags vocabulary
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Word ID"
// @Success 200 {object} map[string]string "Word marked learned"
// @Failure 400 {object} map[string]string "Invalid word ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /vocabulary/{id}/learn [post]
func (h *VocabularyHandler) MarkLearned(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid word ID")
		return
	}

	if err := h.progressService.MarkLearned(r.Context(), userID, wordID); err != nil {
		h.Logger.Error("failed to mark word learned", zap.Error(err), zap.Int("wordID", wordID))
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "word not found")
			return
		}
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "word marked learned"})
}

// GetAudio handles GET /vocabulary/{id}/audio
// @Summary Get spoken audio for a word
// @Description Streams synthesized pronunciation of the Chinese word as audio/mpeg.
// @Tags vocabulary
// @Produce octet-stream
// @Security ApiKeyAuth
// @Param id path int true "Word ID"
// @Success 200 {file} binary "Audio bytes"
// @Failure 400 {object} map[string]string "Invalid word ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Word not found"
// @Failure 502 {object} map[string]string "Speech service unavailable"
// @Router /vocabulary/{id}/audio [get]
func (h *VocabularyHandler) GetAudio(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.GetUserID(r.Context()); !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	wordID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid word ID")
		return
	}

	word, err := h.words.GetByID(r.Context(), wordID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, "word not found")
			return
		}
		h.Logger.Error("failed to get word", zap.Error(err), zap.Int("wordID", wordID))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	audio, err := h.tts.Synthesize(r.Context(), word.Chinese)
	if err != nil {
		h.Logger.Error("failed to synthesize audio", zap.Error(err), zap.Int("wordID", wordID))
		h.RespondError(w, http.StatusBadGateway, "speech service unavailable")
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(audio); err != nil {
		h.Logger.Error("failed to write audio response", zap.Error(err))
	}
}

// ResetProgress handles POST /progress/reset
// @Summary Reset all learning progress
// @Description Deletes the user's progress records, test sessions, and activity log.
// @Tags vocabulary
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} map[string]string "Progress reset"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /progress/reset [post]
func (h *VocabularyHandler) ResetProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	if err := h.progressService.ResetAll(r.Context(), userID); err != nil {
		h.Logger.Error("failed to reset progress", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, map[string]string{"message": "progress reset"})
}
