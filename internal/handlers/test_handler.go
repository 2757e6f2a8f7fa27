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

// TestService is the interface that wraps methods for graded test sessions
type TestService interface {
	// Start generates a graded test from the requested word pool
	Start(ctx context.Context, userID int, req models.StartTestRequest) (*models.StartTestResponse, error)
	// SubmitAnswer grades one answer and records a mistake when it is wrong
	SubmitAnswer(ctx context.Context, userID int, sessionID string, req models.SubmitAnswerRequest) (*models.AnswerResult, error)
	// Complete finishes a test and returns the summary
	Complete(ctx context.Context, userID int, sessionID string) (*models.TestSummary, error)
}

// TestHandler handles graded test HTTP requests
type TestHandler struct {
	BaseHandler
	testService TestService
}

// NewTestHandler creates a new test handler
func NewTestHandler(testService TestService, logger *zap.Logger) *TestHandler {
	return &TestHandler{
		BaseHandler: BaseHandler{Logger: logger},
		testService: testService,
	}
}

// RegisterRoutes registers all test handler routes
func (h *TestHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/tests", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/start", h.Start)
		r.Post("/{sessionID}/answer", h.SubmitAnswer)
		r.Post("/{sessionID}/complete", h.Complete)
	})
}

// Start handles POST /tests/start
// @Summary Start a graded test
// @Description Generates questions from the recently learned words, or from mistake words once ten mistakes are recorded.
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body models.StartTestRequest true "Test type and word pool"
// @Success 200 {object} models.StartTestResponse "Session with questions"
// @Failure 400 {object} map[string]string "Invalid test type or source"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Word pool gate not met"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tests/start [post]
func (h *TestHandler) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.StartTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.testService.Start(r.Context(), userID, req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "invalid"):
			h.RespondError(w, http.StatusBadRequest, err.Error())
		case strings.Contains(err.Error(), "requires"), strings.Contains(err.Error(), "no words"):
			h.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.Logger.Error("failed to start test", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// SubmitAnswer handles POST /tests/{sessionID}/answer
// @Summary Submit an answer in a graded test
// @Description Grades server-side; wrong answers are recorded as mistakes.
// @Tags tests
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Param request body models.SubmitAnswerRequest true "Answer"
// @Success 200 {object} models.AnswerResult "Grading result"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session or question not found"
// @Failure 409 {object} map[string]string "Question already answered"
// @Router /tests/{sessionID}/answer [post]
func (h *TestHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.testService.SubmitAnswer(r.Context(), userID, chi.URLParam(r, "sessionID"), req)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "not found"):
			h.RespondError(w, http.StatusNotFound, err.Error())
		case strings.Contains(err.Error(), "already answered"):
			h.RespondError(w, http.StatusConflict, err.Error())
		default:
			h.Logger.Error("failed to grade answer", zap.Error(err))
			h.RespondError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	h.RespondJSON(w, http.StatusOK, result)
}

// Complete handles POST /tests/{sessionID}/complete
// @Summary Complete a graded test
// @Description Records the test completion and returns the score summary.
// @Tags tests
// @Produce json
// @Security ApiKeyAuth
// @Param sessionID path string true "Session ID"
// @Success 200 {object} models.TestSummary "Score summary"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Session not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /tests/{sessionID}/complete [post]
func (h *TestHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	summary, err := h.testService.Complete(r.Context(), userID, chi.URLParam(r, "sessionID"))
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			h.RespondError(w, http.StatusNotFound, err.Error())
			return
		}
		h.Logger.Error("failed to complete test", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, summary)
}
