package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// LessonStore reads authored lesson content. The core never writes
// lessons; authoring belongs to the admin surface.
type LessonStore interface {
	// FindByID retrieves a lesson by its ID.
	// Returns ErrLessonNotFound if the lesson does not exist.
	FindByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error)

	// FindFlashcardsForLesson retrieves the lesson's flashcards in their
	// authored order. Returns ErrLessonNotFound if the lesson does not
	// exist; a lesson with no flashcards returns an empty slice.
	FindFlashcardsForLesson(ctx context.Context, lessonID uuid.UUID) ([]domain.Flashcard, error)
}
