package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/srs"
	"github.com/lingualoop/lingualoop-api/internal/platform/logger"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// Verify interface compliance at compile time
var _ ReviewService = (*reviewServiceImpl)(nil)

// reviewServiceImpl implements the ReviewService interface.
type reviewServiceImpl struct {
	historyStore store.ReviewHistoryStore
	scheduler    srs.Service
	logger       *slog.Logger
	timeFunc     func() time.Time // injectable for tests
}

// NewReviewService creates a new ReviewService implementation.
func NewReviewService(
	historyStore store.ReviewHistoryStore,
	scheduler srs.Service,
	log *slog.Logger,
	timeFunc func() time.Time,
) (ReviewService, error) {
	if historyStore == nil {
		return nil, fmt.Errorf("review service requires a history store")
	}
	if scheduler == nil {
		return nil, fmt.Errorf("review service requires a scheduler")
	}
	if log == nil {
		log = slog.Default()
	}
	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &reviewServiceImpl{
		historyStore: historyStore,
		scheduler:    scheduler,
		logger:       log.With(slog.String("component", "review_service")),
		timeFunc:     timeFunc,
	}, nil
}

// SubmitReview implements ReviewService.SubmitReview.
//
// The scheduler is pure: it consumes the ordered history and returns a
// decision. All persistence, the appended record and any struggling-queue
// change, happens here at the boundary.
func (s *reviewServiceImpl) SubmitReview(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
	isCorrect bool,
) (*ReviewResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	history, err := s.historyStore.FindByUserAndFlashcard(ctx, userID, flashcardID)
	if err != nil {
		return nil, NewSubmitReviewError("failed to load review history", err)
	}

	decision, err := s.scheduler.CalculateNextInterval(history, isCorrect, now)
	if err != nil {
		return nil, NewSubmitReviewError("failed to schedule next review", err)
	}

	record, err := domain.NewReviewRecord(
		userID, flashcardID, isCorrect,
		now, decision.NextReviewDate, decision.IntervalDays,
	)
	if err != nil {
		return nil, err
	}
	if err := s.historyStore.Save(ctx, record); err != nil {
		return nil, NewSubmitReviewError("failed to save review record", err)
	}

	result := &ReviewResult{Record: record}
	if decision.FlagStruggling {
		if err := s.historyStore.FlagStruggling(ctx, userID, flashcardID); err != nil {
			return nil, NewSubmitReviewError("failed to flag struggling card", err)
		}
		result.FlaggedStruggling = true
	}
	if decision.ClearStruggling {
		if err := s.historyStore.UnflagStruggling(ctx, userID, flashcardID); err != nil {
			return nil, NewSubmitReviewError("failed to unflag struggling card", err)
		}
		result.ClearedStruggling = true
	}

	log.Debug("review processed",
		slog.String("user_id", userID.String()),
		slog.String("flashcard_id", flashcardID.String()),
		slog.Bool("is_correct", isCorrect),
		slog.Int("interval_days", decision.IntervalDays),
		slog.Time("next_review_date", decision.NextReviewDate),
		slog.Bool("flagged_struggling", result.FlaggedStruggling),
		slog.Bool("cleared_struggling", result.ClearedStruggling))

	return result, nil
}

// GetDueFlashcards implements ReviewService.GetDueFlashcards.
func (s *reviewServiceImpl) GetDueFlashcards(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	due, err := s.historyStore.FindDueFlashcards(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find due flashcards: %w", err)
	}
	if len(due) == 0 {
		return nil, ErrNoCardsDue
	}
	return due, nil
}

// GetStrugglingFlashcards implements ReviewService.GetStrugglingFlashcards.
func (s *reviewServiceImpl) GetStrugglingFlashcards(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	ids, err := s.historyStore.FindStrugglingFlashcards(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find struggling flashcards: %w", err)
	}
	return ids, nil
}
