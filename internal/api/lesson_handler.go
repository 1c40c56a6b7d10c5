package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/api/middleware"
	"github.com/lingualoop/lingualoop-api/internal/api/shared"
	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/service/lesson"
)

// LessonHandler handles lesson-session API requests.
type LessonHandler struct {
	lessonService lesson.LessonService
	logger        *slog.Logger
}

// NewLessonHandler creates a new LessonHandler with the given dependencies.
func NewLessonHandler(lessonService lesson.LessonService, logger *slog.Logger) *LessonHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &LessonHandler{
		lessonService: lessonService,
		logger:        logger.With(slog.String("component", "lesson_handler")),
	}
}

// StartSession handles POST /lessons/{lessonID}/session.
func (h *LessonHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	mode := session.ReviewMode(req.Mode)
	if mode == "" {
		mode = session.ModeFlashcard
	}

	sess, err := h.lessonService.StartSession(r.Context(), userID, lessonID, req.PathID, mode)
	if err != nil {
		h.respondWithLessonError(w, r, err, "Failed to start session")
		return
	}

	resp, err := newSessionResponse(sess)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to start session", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// GetSession handles GET /lessons/{lessonID}/session.
func (h *LessonHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	sess, err := h.lessonService.GetSession(r.Context(), userID, lessonID)
	if err != nil {
		h.respondWithLessonError(w, r, err, "Failed to get session")
		return
	}

	resp, err := newSessionResponse(sess)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get session", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// SubmitAnswer handles POST /lessons/{lessonID}/session/answers.
func (h *LessonHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.lessonService.SubmitAnswer(
		r.Context(), userID, lessonID, req.PathID, req.Correct, req.TimeSpentSeconds)
	if err != nil {
		h.respondWithLessonError(w, r, err, "Failed to submit answer")
		return
	}

	resp, err := newSubmitAnswerResponse(result)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to submit answer", err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// AbandonSession handles DELETE /lessons/{lessonID}/session.
func (h *LessonHandler) AbandonSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	if err := h.lessonService.AbandonSession(r.Context(), userID, lessonID); err != nil {
		h.respondWithLessonError(w, r, err, "Failed to abandon session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCompletionHistory handles GET /lessons/{lessonID}/completions.
func (h *LessonHandler) GetCompletionHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	lessonID, err := uuid.Parse(chi.URLParam(r, "lessonID"))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid lesson ID")
		return
	}

	completions, err := h.lessonService.GetCompletionHistory(r.Context(), userID, lessonID)
	if err != nil {
		h.respondWithLessonError(w, r, err, "Failed to get completion history")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, newCompletionHistoryResponse(completions))
}

// respondWithLessonError translates lesson-service failures into HTTP
// responses. Unexpected errors are logged and sanitized.
func (h *LessonHandler) respondWithLessonError(
	w http.ResponseWriter,
	r *http.Request,
	err error,
	fallbackMessage string,
) {
	switch {
	case errors.Is(err, lesson.ErrLessonNotFound):
		shared.RespondWithError(w, r, http.StatusNotFound, "Lesson not found")
	case errors.Is(err, lesson.ErrNoActiveSession):
		shared.RespondWithError(w, r, http.StatusNotFound, "No active session for this lesson")
	case errors.Is(err, lesson.ErrNoHearts):
		shared.RespondWithError(w, r, http.StatusConflict, "No hearts available")
	case domain.IsCode(err, domain.CodeLessonAlreadyComplete):
		shared.RespondWithError(w, r, http.StatusConflict, "Lesson session has already finished")
	case domain.IsCode(err, domain.CodeLessonNoFlashcards):
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Lesson has no flashcards")
	case domain.IsValidationError(err):
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid input: "+err.Error())
	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, fallbackMessage, err)
	}
}
