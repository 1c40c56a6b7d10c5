package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// PostgresReviewHistoryStore implements the store.ReviewHistoryStore
// interface using a PostgreSQL database as the storage backend. Review
// records live in review_history; struggling flags live in a separate
// struggling_cards table keyed by (user_id, flashcard_id).
type PostgresReviewHistoryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewHistoryStore creates a new PostgreSQL implementation
// of the ReviewHistoryStore interface. It accepts a database connection
// or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewHistoryStore(db store.DBTX, logger *slog.Logger) *PostgresReviewHistoryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewHistoryStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_history_store")),
	}
}

// Ensure PostgresReviewHistoryStore implements store.ReviewHistoryStore interface
var _ store.ReviewHistoryStore = (*PostgresReviewHistoryStore)(nil)

// Save implements store.ReviewHistoryStore.Save. History is append-only.
func (s *PostgresReviewHistoryStore) Save(ctx context.Context, record *domain.ReviewRecord) error {
	if err := record.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO review_history (
			id, user_id, flashcard_id, is_correct,
			review_date, next_review_date, interval_days
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.FlashcardID,
		record.IsCorrect,
		record.ReviewDate,
		record.NextReviewDate,
		record.IntervalDays,
	)
	if err != nil {
		s.logger.Error("failed to save review record",
			slog.String("error", err.Error()),
			slog.String("user_id", record.UserID.String()),
			slog.String("flashcard_id", record.FlashcardID.String()))
		return MapError(err)
	}

	return nil
}

// FindByUserAndFlashcard implements
// store.ReviewHistoryStore.FindByUserAndFlashcard. The history is
// ordered most recent first, as the scheduler requires.
func (s *PostgresReviewHistoryStore) FindByUserAndFlashcard(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
) ([]*domain.ReviewRecord, error) {
	query := `
		SELECT id, user_id, flashcard_id, is_correct,
		       review_date, next_review_date, interval_days
		FROM review_history
		WHERE user_id = $1 AND flashcard_id = $2
		ORDER BY review_date DESC`

	rows, err := s.db.QueryContext(ctx, query, userID, flashcardID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var records []*domain.ReviewRecord
	for rows.Next() {
		var r domain.ReviewRecord
		err := rows.Scan(
			&r.ID, &r.UserID, &r.FlashcardID, &r.IsCorrect,
			&r.ReviewDate, &r.NextReviewDate, &r.IntervalDays,
		)
		if err != nil {
			return nil, MapError(err)
		}
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return records, nil
}

// FindDueFlashcards implements store.ReviewHistoryStore.FindDueFlashcards.
// Only each card's latest record decides dueness; oldest due first.
func (s *PostgresReviewHistoryStore) FindDueFlashcards(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	query := `
		SELECT flashcard_id FROM (
			SELECT DISTINCT ON (flashcard_id)
				flashcard_id, next_review_date
			FROM review_history
			WHERE user_id = $1
			ORDER BY flashcard_id, review_date DESC
		) latest
		WHERE next_review_date <= NOW()
		ORDER BY next_review_date ASC
		LIMIT $2`

	rows, err := s.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}

// FlagStruggling implements store.ReviewHistoryStore.FlagStruggling.
// Flagging an already-flagged card is a no-op.
func (s *PostgresReviewHistoryStore) FlagStruggling(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
) error {
	query := `
		INSERT INTO struggling_cards (user_id, flashcard_id, flagged_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, flashcard_id) DO NOTHING`

	if _, err := s.db.ExecContext(ctx, query, userID, flashcardID); err != nil {
		return MapError(err)
	}
	return nil
}

// UnflagStruggling implements store.ReviewHistoryStore.UnflagStruggling.
// Unflagging an absent card is a no-op.
func (s *PostgresReviewHistoryStore) UnflagStruggling(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
) error {
	query := `DELETE FROM struggling_cards WHERE user_id = $1 AND flashcard_id = $2`

	if _, err := s.db.ExecContext(ctx, query, userID, flashcardID); err != nil {
		return MapError(err)
	}
	return nil
}

// FindStrugglingFlashcards implements
// store.ReviewHistoryStore.FindStrugglingFlashcards.
func (s *PostgresReviewHistoryStore) FindStrugglingFlashcards(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	query := `
		SELECT flashcard_id FROM struggling_cards
		WHERE user_id = $1
		ORDER BY flagged_at ASC`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}
