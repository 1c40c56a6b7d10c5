package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// PostgresLessonStore implements the store.LessonStore interface using a
// PostgreSQL database as the storage backend. Lessons and flashcards are
// authored content; this store only reads them.
type PostgresLessonStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresLessonStore creates a new PostgreSQL implementation of the
// LessonStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresLessonStore(db store.DBTX, logger *slog.Logger) *PostgresLessonStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLessonStore{
		db:     db,
		logger: logger.With(slog.String("component", "lesson_store")),
	}
}

// Ensure PostgresLessonStore implements store.LessonStore interface
var _ store.LessonStore = (*PostgresLessonStore)(nil)

// FindByID implements store.LessonStore.FindByID.
// Returns store.ErrLessonNotFound if the lesson does not exist.
func (s *PostgresLessonStore) FindByID(
	ctx context.Context,
	lessonID uuid.UUID,
) (*domain.Lesson, error) {
	query := `
		SELECT id, unit_id, title, position, base_xp_reward
		FROM lessons
		WHERE id = $1`

	var (
		lesson domain.Lesson
		unitID uuid.NullUUID
	)
	err := s.db.QueryRowContext(ctx, query, lessonID).Scan(
		&lesson.ID, &unitID, &lesson.Title, &lesson.Position, &lesson.BaseXPReward,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLessonNotFound
		}
		return nil, MapError(err)
	}
	if unitID.Valid {
		lesson.UnitID = &unitID.UUID
	}

	return &lesson, nil
}

// FindFlashcardsForLesson implements store.LessonStore.FindFlashcardsForLesson.
// Flashcards come back in their authored order. A lesson with no
// flashcards yields an empty slice; a missing lesson yields
// store.ErrLessonNotFound.
func (s *PostgresLessonStore) FindFlashcardsForLesson(
	ctx context.Context,
	lessonID uuid.UUID,
) ([]domain.Flashcard, error) {
	// Existence check first, so an empty lesson and a missing lesson are
	// distinguishable.
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM lessons WHERE id = $1)`, lessonID,
	).Scan(&exists)
	if err != nil {
		return nil, MapError(err)
	}
	if !exists {
		return nil, store.ErrLessonNotFound
	}

	query := `
		SELECT id, question, answer, difficulty
		FROM flashcards
		WHERE lesson_id = $1
		ORDER BY position ASC`

	rows, err := s.db.QueryContext(ctx, query, lessonID)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	cards := []domain.Flashcard{}
	for rows.Next() {
		var card domain.Flashcard
		if err := rows.Scan(&card.ID, &card.Question, &card.Answer, &card.Difficulty); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return cards, nil
}
