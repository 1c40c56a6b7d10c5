package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// LessonCompletionStore persists completion records. Completions are
// append-only: retries of the same lesson create new rows.
type LessonCompletionStore interface {
	// Save persists a new completion record.
	Save(ctx context.Context, completion *domain.LessonCompletion) error

	// FindByUserAndLesson retrieves all completions for the pair, most
	// recent first. An empty slice is not an error.
	FindByUserAndLesson(ctx context.Context, userID, lessonID uuid.UUID) ([]*domain.LessonCompletion, error)

	// FindBestCompletion retrieves the completion with the highest
	// accuracy for the pair, breaking ties by most XP earned.
	// Returns ErrCompletionNotFound if the user never completed the lesson.
	FindBestCompletion(ctx context.Context, userID, lessonID uuid.UUID) (*domain.LessonCompletion, error)

	// CalculateAverageAccuracy returns the mean accuracy across all of
	// the user's completions, zero when there are none.
	CalculateAverageAccuracy(ctx context.Context, userID uuid.UUID) (float64, error)

	// HasCompletionOnDay reports whether the user completed at least one
	// lesson during the given UTC calendar day. day is midnight UTC; the
	// streak scheduler walks days through this query.
	HasCompletionOnDay(ctx context.Context, userID uuid.UUID, day time.Time) (bool, error)
}

// SettlementStore persists a lesson completion together with the updated
// progress aggregate in one atomic operation, so a crash between the two
// writes cannot award a completion without its XP or vice versa.
type SettlementStore interface {
	SaveCompletionAndProgress(
		ctx context.Context,
		completion *domain.LessonCompletion,
		progress *domain.UserProgress,
	) error
}
