package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// PostgresLessonCompletionStore implements the store.LessonCompletionStore
// interface using a PostgreSQL database as the storage backend.
type PostgresLessonCompletionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonCompletionStore creates a new PostgreSQL implementation
// of the LessonCompletionStore interface. It accepts a database connection
// or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLessonCompletionStore(
	db store.DBTX,
	logger *slog.Logger,
) *PostgresLessonCompletionStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonCompletionStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_completion_store")),
	}
}

// Ensure PostgresLessonCompletionStore implements store.LessonCompletionStore interface
var _ store.LessonCompletionStore = (*PostgresLessonCompletionStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresLessonCompletionStore) WithTx(tx *sql.Tx) *PostgresLessonCompletionStore {
	return &PostgresLessonCompletionStore{db: tx, logger: s.logger}
}

const completionColumns = `id, user_id, lesson_id, completed_at, xp_earned,
	accuracy, time_spent_seconds, hearts_remaining, is_perfect`

// Save implements store.LessonCompletionStore.Save. Completions are
// append-only; there is no update path.
func (s *PostgresLessonCompletionStore) Save(
	ctx context.Context,
	completion *domain.LessonCompletion,
) error {
	if err := completion.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO lesson_completions (` + completionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := s.db.ExecContext(ctx, query,
		completion.ID,
		completion.UserID,
		completion.LessonID,
		completion.CompletedAt,
		completion.XPEarned,
		completion.Accuracy,
		completion.TimeSpentSeconds,
		completion.HeartsRemaining,
		completion.IsPerfect,
	)
	if err != nil {
		s.logger.Error("failed to save lesson completion",
			slog.String("error", err.Error()),
			slog.String("user_id", completion.UserID.String()),
			slog.String("lesson_id", completion.LessonID.String()))
		return MapError(err)
	}

	return nil
}

// FindByUserAndLesson implements store.LessonCompletionStore.FindByUserAndLesson.
func (s *PostgresLessonCompletionStore) FindByUserAndLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) ([]*domain.LessonCompletion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM lesson_completions
		WHERE user_id = $1 AND lesson_id = $2
		ORDER BY completed_at DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, lessonID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	return scanCompletions(rows)
}

// FindBestCompletion implements store.LessonCompletionStore.FindBestCompletion.
// The best completion has the highest accuracy, ties broken by most XP.
func (s *PostgresLessonCompletionStore) FindBestCompletion(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*domain.LessonCompletion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM lesson_completions
		WHERE user_id = $1 AND lesson_id = $2
		ORDER BY accuracy DESC, xp_earned DESC
		LIMIT 1`

	completion, err := scanCompletion(s.db.QueryRowContext(ctx, query, userID, lessonID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrCompletionNotFound
		}
		return nil, MapError(err)
	}
	return completion, nil
}

// CalculateAverageAccuracy implements
// store.LessonCompletionStore.CalculateAverageAccuracy.
func (s *PostgresLessonCompletionStore) CalculateAverageAccuracy(
	ctx context.Context,
	userID uuid.UUID,
) (float64, error) {
	query := `
		SELECT COALESCE(AVG(accuracy), 0)
		FROM lesson_completions
		WHERE user_id = $1`

	var avg float64
	if err := s.db.QueryRowContext(ctx, query, userID).Scan(&avg); err != nil {
		return 0, MapError(err)
	}
	return avg, nil
}

// HasCompletionOnDay implements store.LessonCompletionStore.HasCompletionOnDay.
// day is midnight UTC; the check covers the whole calendar day.
func (s *PostgresLessonCompletionStore) HasCompletionOnDay(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM lesson_completions
			WHERE user_id = $1
			  AND completed_at >= $2
			  AND completed_at < $3
		)`

	dayStart := day.UTC().Truncate(24 * time.Hour)
	dayEnd := dayStart.AddDate(0, 0, 1)

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, userID, dayStart, dayEnd).Scan(&exists); err != nil {
		return false, MapError(err)
	}
	return exists, nil
}

// scanCompletion reads one completion from a row.
func scanCompletion(row *sql.Row) (*domain.LessonCompletion, error) {
	var c domain.LessonCompletion
	err := row.Scan(
		&c.ID, &c.UserID, &c.LessonID, &c.CompletedAt, &c.XPEarned,
		&c.Accuracy, &c.TimeSpentSeconds, &c.HeartsRemaining, &c.IsPerfect,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// scanCompletions reads all completions from a result set.
func scanCompletions(rows *sql.Rows) ([]*domain.LessonCompletion, error) {
	var completions []*domain.LessonCompletion
	for rows.Next() {
		var c domain.LessonCompletion
		err := rows.Scan(
			&c.ID, &c.UserID, &c.LessonID, &c.CompletedAt, &c.XPEarned,
			&c.Accuracy, &c.TimeSpentSeconds, &c.HeartsRemaining, &c.IsPerfect,
		)
		if err != nil {
			return nil, MapError(err)
		}
		completions = append(completions, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}
	return completions, nil
}
