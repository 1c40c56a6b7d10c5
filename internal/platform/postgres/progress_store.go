package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// PostgresUserProgressStore implements the store.UserProgressStore
// interface using a PostgreSQL database as the storage backend.
type PostgresUserProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserProgressStore creates a new PostgreSQL implementation of
// the UserProgressStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresUserProgressStore(db store.DBTX, logger *slog.Logger) *PostgresUserProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_progress_store")),
	}
}

// Ensure PostgresUserProgressStore implements store.UserProgressStore interface
var _ store.UserProgressStore = (*PostgresUserProgressStore)(nil)

// WithTx returns a copy of the store bound to the given transaction.
func (s *PostgresUserProgressStore) WithTx(tx *sql.Tx) *PostgresUserProgressStore {
	return &PostgresUserProgressStore{db: tx, logger: s.logger}
}

// FindByUserAndPath implements store.UserProgressStore.FindByUserAndPath.
// Returns store.ErrProgressNotFound if no row exists for the pair.
func (s *PostgresUserProgressStore) FindByUserAndPath(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*domain.UserProgress, error) {
	query := `
		SELECT user_id, path_id, hearts_current, hearts_max, xp, streak,
		       last_heart_refill, last_activity_date,
		       current_unit_id, current_lesson_id, created_at, updated_at
		FROM user_progress
		WHERE user_id = $1 AND path_id = $2`

	var (
		progress                       domain.UserProgress
		heartsCurrent, heartsMax       int
		xpAmount, streakCount          int
		lastActivity                   sql.NullTime
		currentUnitID, currentLessonID uuid.NullUUID
	)

	err := s.db.QueryRowContext(ctx, query, userID, pathID).Scan(
		&progress.UserID,
		&progress.PathID,
		&heartsCurrent,
		&heartsMax,
		&xpAmount,
		&streakCount,
		&progress.LastHeartRefill,
		&lastActivity,
		&currentUnitID,
		&currentLessonID,
		&progress.CreatedAt,
		&progress.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrProgressNotFound
		}
		return nil, MapError(err)
	}

	if progress.Hearts, err = domain.NewHearts(heartsCurrent, heartsMax); err != nil {
		return nil, fmt.Errorf("corrupt hearts for user %s: %w", userID, err)
	}
	if progress.XP, err = domain.NewXP(xpAmount); err != nil {
		return nil, fmt.Errorf("corrupt xp for user %s: %w", userID, err)
	}
	if progress.Streak, err = domain.NewStreak(streakCount); err != nil {
		return nil, fmt.Errorf("corrupt streak for user %s: %w", userID, err)
	}
	if lastActivity.Valid {
		progress.LastActivityDate = lastActivity.Time
	}
	if currentUnitID.Valid {
		progress.CurrentUnitID = &currentUnitID.UUID
	}
	if currentLessonID.Valid {
		progress.CurrentLessonID = &currentLessonID.UUID
	}

	return &progress, nil
}

// Save implements store.UserProgressStore.Save as an upsert keyed on
// (user_id, path_id).
func (s *PostgresUserProgressStore) Save(
	ctx context.Context,
	progress *domain.UserProgress,
) error {
	if err := progress.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO user_progress (
			user_id, path_id, hearts_current, hearts_max, xp, streak,
			last_heart_refill, last_activity_date,
			current_unit_id, current_lesson_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, path_id) DO UPDATE SET
			hearts_current     = EXCLUDED.hearts_current,
			hearts_max         = EXCLUDED.hearts_max,
			xp                 = EXCLUDED.xp,
			streak             = EXCLUDED.streak,
			last_heart_refill  = EXCLUDED.last_heart_refill,
			last_activity_date = EXCLUDED.last_activity_date,
			current_unit_id    = EXCLUDED.current_unit_id,
			current_lesson_id  = EXCLUDED.current_lesson_id,
			updated_at         = EXCLUDED.updated_at`

	var lastActivity sql.NullTime
	if !progress.LastActivityDate.IsZero() {
		lastActivity = sql.NullTime{Time: progress.LastActivityDate, Valid: true}
	}
	var unitID, lessonID uuid.NullUUID
	if progress.CurrentUnitID != nil {
		unitID = uuid.NullUUID{UUID: *progress.CurrentUnitID, Valid: true}
	}
	if progress.CurrentLessonID != nil {
		lessonID = uuid.NullUUID{UUID: *progress.CurrentLessonID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, query,
		progress.UserID,
		progress.PathID,
		progress.Hearts.Current(),
		progress.Hearts.Max(),
		progress.XP.Amount(),
		progress.Streak.Count(),
		progress.LastHeartRefill,
		lastActivity,
		unitID,
		lessonID,
		progress.CreatedAt,
		progress.UpdatedAt,
	)
	if err != nil {
		s.logger.Error("failed to save user progress",
			slog.String("error", err.Error()),
			slog.String("user_id", progress.UserID.String()))
		return MapError(err)
	}

	return nil
}
