// Package stats serves the user gamification read path. Streaks and
// heart refills are lazily settled here: reading stats folds in any
// hearts regenerated since the last refill and recomputes the streak
// from completion history, persisting only when something changed.
package stats

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// UserStats is the assembled gamification snapshot for one user+path.
type UserStats struct {
	Hearts           domain.Hearts
	XP               domain.XP
	Streak           domain.Streak
	NextRefillAt     *time.Time // nil when hearts are full
	RefillProgress   float64    // fraction [0, 1) toward the next heart
	AverageAccuracy  float64
	LastActivityDate time.Time
}

// StatsService assembles gamification stats for users.
type StatsService interface {
	// GetUserStats returns the user's current stats, settling lazy heart
	// refills and streak recomputation as a side effect. A user with no
	// progress row gets defaults; absence is not an error.
	GetUserStats(ctx context.Context, userID, pathID uuid.UUID) (*UserStats, error)

	// RefillHearts applies any accrued heart refill immediately and
	// returns the updated progress aggregate.
	RefillHearts(ctx context.Context, userID, pathID uuid.UUID) (*domain.UserProgress, error)
}
