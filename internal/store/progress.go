package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// UserProgressStore persists the per-user, per-path gamification
// aggregate.
type UserProgressStore interface {
	// FindByUserAndPath retrieves the progress row for the pair.
	// Returns ErrProgressNotFound if none exists; callers recreate
	// defaults rather than treating absence as failure.
	FindByUserAndPath(ctx context.Context, userID, pathID uuid.UUID) (*domain.UserProgress, error)

	// Save upserts the progress row.
	Save(ctx context.Context, progress *domain.UserProgress) error
}
