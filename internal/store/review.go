package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// ReviewHistoryStore persists the append-only review history per
// (user, flashcard), plus the struggling-queue flags the scheduler
// decides on.
type ReviewHistoryStore interface {
	// Save appends a new review record.
	Save(ctx context.Context, record *domain.ReviewRecord) error

	// FindByUserAndFlashcard retrieves the pair's review history ordered
	// most recent first, the ordering the scheduler requires. An empty
	// slice is not an error.
	FindByUserAndFlashcard(ctx context.Context, userID, flashcardID uuid.UUID) ([]*domain.ReviewRecord, error)

	// FindDueFlashcards returns IDs of flashcards whose latest
	// next-review date is not after now, oldest due first, up to limit.
	FindDueFlashcards(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)

	// FlagStruggling adds the flashcard to the user's struggling queue.
	// Flagging an already-flagged card is not an error.
	FlagStruggling(ctx context.Context, userID, flashcardID uuid.UUID) error

	// UnflagStruggling removes the flashcard from the user's struggling
	// queue. Unflagging an absent card is not an error.
	UnflagStruggling(ctx context.Context, userID, flashcardID uuid.UUID) error

	// FindStrugglingFlashcards returns the IDs currently in the user's
	// struggling queue.
	FindStrugglingFlashcards(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}
