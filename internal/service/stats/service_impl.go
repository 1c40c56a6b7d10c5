package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/platform/logger"
	"github.com/lingualoop/lingualoop-api/internal/service/hearts"
	"github.com/lingualoop/lingualoop-api/internal/service/streak"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// Verify interface compliance at compile time
var _ StatsService = (*statsServiceImpl)(nil)

// statsServiceImpl implements the StatsService interface.
type statsServiceImpl struct {
	progressStore   store.UserProgressStore
	completionStore store.LessonCompletionStore
	heartsService   *hearts.Service
	maxHearts       int
	logger          *slog.Logger
	timeFunc        func() time.Time // injectable for tests
}

// NewStatsService creates a new StatsService implementation.
func NewStatsService(
	progressStore store.UserProgressStore,
	completionStore store.LessonCompletionStore,
	heartsService *hearts.Service,
	maxHearts int,
	log *slog.Logger,
	timeFunc func() time.Time,
) (StatsService, error) {
	if progressStore == nil || completionStore == nil {
		return nil, fmt.Errorf("stats service requires progress and completion stores")
	}
	if heartsService == nil {
		return nil, fmt.Errorf("stats service requires a hearts service")
	}
	if maxHearts <= 0 {
		return nil, fmt.Errorf("max hearts must be positive, got %d", maxHearts)
	}
	if log == nil {
		log = slog.Default()
	}
	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &statsServiceImpl{
		progressStore:   progressStore,
		completionStore: completionStore,
		heartsService:   heartsService,
		maxHearts:       maxHearts,
		logger:          log.With(slog.String("component", "stats_service")),
		timeFunc:        timeFunc,
	}, nil
}

// GetUserStats implements StatsService.GetUserStats.
func (s *statsServiceImpl) GetUserStats(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*UserStats, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	progress, _, err := s.loadProgress(ctx, userID, pathID, now)
	if err != nil {
		return nil, err
	}

	dirty := s.heartsService.Apply(progress, now) > 0

	newStreak, err := streak.Recalculate(ctx, now, func(ctx context.Context, day time.Time) (bool, error) {
		return s.completionStore.HasCompletionOnDay(ctx, userID, day)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to recalculate streak: %w", err)
	}
	if progress.UpdateStreak(newStreak, now) {
		dirty = true
	}

	// A row built just for this read is persisted only once something
	// actually changed on it.
	if dirty {
		if err := s.progressStore.Save(ctx, progress); err != nil {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
		log.Debug("settled lazy progress state on read",
			slog.String("user_id", userID.String()),
			slog.Int("streak", newStreak.Count()),
			slog.Int("hearts", progress.Hearts.Current()))
	}

	avgAccuracy, err := s.completionStore.CalculateAverageAccuracy(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate average accuracy: %w", err)
	}

	stats := &UserStats{
		Hearts:           progress.Hearts,
		XP:               progress.XP,
		Streak:           progress.Streak,
		RefillProgress:   s.heartsService.Progress(progress.Hearts, progress.LastHeartRefill, now),
		AverageAccuracy:  avgAccuracy,
		LastActivityDate: progress.LastActivityDate,
	}
	if next, ok := s.heartsService.NextRefillAt(progress.Hearts, progress.LastHeartRefill, now); ok {
		stats.NextRefillAt = &next
	}

	return stats, nil
}

// RefillHearts implements StatsService.RefillHearts.
func (s *statsServiceImpl) RefillHearts(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*domain.UserProgress, error) {
	now := s.timeFunc()

	progress, _, err := s.loadProgress(ctx, userID, pathID, now)
	if err != nil {
		return nil, err
	}

	if s.heartsService.Apply(progress, now) > 0 {
		if err := s.progressStore.Save(ctx, progress); err != nil {
			return nil, fmt.Errorf("failed to save progress: %w", err)
		}
	}

	return progress, nil
}

// loadProgress fetches the progress aggregate, building the default row
// when absent. The second return reports whether the row was created
// rather than loaded.
func (s *statsServiceImpl) loadProgress(
	ctx context.Context,
	userID, pathID uuid.UUID,
	now time.Time,
) (*domain.UserProgress, bool, error) {
	progress, err := s.progressStore.FindByUserAndPath(ctx, userID, pathID)
	if err != nil {
		if store.IsNotFoundError(err) {
			fresh, err := domain.NewUserProgress(userID, pathID, s.maxHearts, now)
			if err != nil {
				return nil, false, err
			}
			return fresh, true, nil
		}
		return nil, false, fmt.Errorf("failed to load progress: %w", err)
	}
	return progress, false, nil
}
