package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/api/middleware"
	"github.com/lingualoop/lingualoop-api/internal/api/shared"
	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/service/review"
)

// defaultDueLimit caps the number of due cards returned when the client
// does not ask for a specific limit.
const defaultDueLimit = 20

// ReviewHandler handles spaced-repetition review API requests.
type ReviewHandler struct {
	reviewService review.ReviewService
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler with the given dependencies.
func NewReviewHandler(reviewService review.ReviewService, logger *slog.Logger) *ReviewHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger.With(slog.String("component", "review_handler")),
	}
}

// SubmitReview handles POST /reviews.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, req.FlashcardID, req.IsCorrect)
	if err != nil {
		if domain.IsValidationError(err) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid input: "+err.Error())
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to submit review", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SubmitReviewResponse{
		FlashcardID:       result.Record.FlashcardID,
		IsCorrect:         result.Record.IsCorrect,
		IntervalDays:      result.Record.IntervalDays,
		NextReviewDate:    result.Record.NextReviewDate,
		FlaggedStruggling: result.FlaggedStruggling,
		ClearedStruggling: result.ClearedStruggling,
	})
}

// GetDueFlashcards handles GET /reviews/due. An empty queue is a normal
// response, not an error.
func (h *ReviewHandler) GetDueFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid limit parameter")
			return
		}
		limit = parsed
	}

	ids, err := h.reviewService.GetDueFlashcards(r.Context(), userID, limit)
	if err != nil {
		if errors.Is(err, review.ErrNoCardsDue) {
			shared.RespondWithJSON(w, r, http.StatusOK, FlashcardListResponse{
				FlashcardIDs: []uuid.UUID{},
			})
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get due flashcards", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardListResponse{
		FlashcardIDs: ids,
		Count:        len(ids),
	})
}

// GetStrugglingFlashcards handles GET /reviews/struggling.
func (h *ReviewHandler) GetStrugglingFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "Authentication required")
		return
	}

	ids, err := h.reviewService.GetStrugglingFlashcards(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to get struggling flashcards", err)
		return
	}
	if ids == nil {
		ids = []uuid.UUID{}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, FlashcardListResponse{
		FlashcardIDs: ids,
		Count:        len(ids),
	})
}
