package lesson

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/platform/logger"
	"github.com/lingualoop/lingualoop-api/internal/service/hearts"
	"github.com/lingualoop/lingualoop-api/internal/service/streak"
	"github.com/lingualoop/lingualoop-api/internal/service/xp"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

// Verify interface compliance at compile time
var _ LessonService = (*lessonServiceImpl)(nil)

// lessonServiceImpl implements the LessonService interface.
type lessonServiceImpl struct {
	lessonStore     store.LessonStore
	sessionStore    store.SessionStore
	progressStore   store.UserProgressStore
	completionStore store.LessonCompletionStore
	settlementStore store.SettlementStore
	xpService       xp.Service
	heartsService   *hearts.Service
	maxHearts       int
	defaultLessonXP int
	logger          *slog.Logger
	timeFunc        func() time.Time // injectable for tests
}

// Config carries the construction dependencies for the lesson service.
type Config struct {
	LessonStore     store.LessonStore
	SessionStore    store.SessionStore
	ProgressStore   store.UserProgressStore
	CompletionStore store.LessonCompletionStore

	// SettlementStore, when set, persists the completion record and the
	// updated progress atomically. Without it the two writes happen
	// sequentially.
	SettlementStore store.SettlementStore

	XPService     xp.Service
	HeartsService *hearts.Service
	MaxHearts     int

	// DefaultLessonXP is the base reward for lessons that carry none of
	// their own.
	DefaultLessonXP int

	Logger   *slog.Logger
	TimeFunc func() time.Time
}

// NewLessonService creates a new LessonService implementation.
func NewLessonService(cfg Config) (LessonService, error) {
	if cfg.LessonStore == nil || cfg.SessionStore == nil ||
		cfg.ProgressStore == nil || cfg.CompletionStore == nil {
		return nil, fmt.Errorf("lesson service requires all stores")
	}
	if cfg.XPService == nil || cfg.HeartsService == nil {
		return nil, fmt.Errorf("lesson service requires xp and hearts services")
	}
	if cfg.MaxHearts <= 0 {
		return nil, fmt.Errorf("max hearts must be positive, got %d", cfg.MaxHearts)
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	timeFunc := cfg.TimeFunc
	if timeFunc == nil {
		timeFunc = time.Now
	}

	return &lessonServiceImpl{
		lessonStore:     cfg.LessonStore,
		sessionStore:    cfg.SessionStore,
		progressStore:   cfg.ProgressStore,
		completionStore: cfg.CompletionStore,
		settlementStore: cfg.SettlementStore,
		xpService:       cfg.XPService,
		heartsService:   cfg.HeartsService,
		maxHearts:       cfg.MaxHearts,
		defaultLessonXP: cfg.DefaultLessonXP,
		logger:          log.With(slog.String("component", "lesson_service")),
		timeFunc:        timeFunc,
	}, nil
}

// StartSession implements LessonService.StartSession.
func (s *lessonServiceImpl) StartSession(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	mode session.ReviewMode,
) (*session.LessonSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	log.Debug("starting lesson session",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()))

	lesson, err := s.lessonStore.FindByID(ctx, lessonID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, NewStartSessionError("failed to load lesson", err)
	}

	cards, err := s.lessonStore.FindFlashcardsForLesson(ctx, lessonID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, NewStartSessionError("failed to load flashcards", err)
	}

	progress, err := s.loadOrCreateProgress(ctx, userID, pathID, now)
	if err != nil {
		return nil, NewStartSessionError("failed to load progress", err)
	}

	// Fold in hearts regenerated since the last refill before deciding
	// whether the user can play.
	refilled := s.heartsService.Apply(progress, now)
	if refilled > 0 {
		log.Debug("applied heart refill",
			slog.String("user_id", userID.String()),
			slog.Int("hearts_added", refilled))
	}

	if progress.Hearts.IsEmpty() {
		nextAt, _ := s.heartsService.NextRefillAt(progress.Hearts, progress.LastHeartRefill, now)
		log.Debug("session start refused: no hearts",
			slog.String("user_id", userID.String()),
			slog.Time("next_refill_at", nextAt))
		return nil, ErrNoHearts
	}

	sess, err := session.Start(lessonID, cards, progress.Hearts, mode, now)
	if err != nil {
		return nil, err
	}

	progress.SetPosition(lesson.UnitID, &lessonID, now)
	if err := s.progressStore.Save(ctx, progress); err != nil {
		return nil, NewStartSessionError("failed to save progress", err)
	}

	if err := s.sessionStore.Save(ctx, userID, sess); err != nil {
		return nil, NewStartSessionError("failed to save session", err)
	}

	log.Info("lesson session started",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()),
		slog.Int("cards", len(cards)),
		slog.Int("hearts", progress.Hearts.Current()))

	return sess, nil
}

// GetSession implements LessonService.GetSession.
func (s *lessonServiceImpl) GetSession(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*session.LessonSession, error) {
	sess, err := s.sessionStore.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return sess, nil
}

// SubmitAnswer implements LessonService.SubmitAnswer.
func (s *lessonServiceImpl) SubmitAnswer(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	correct bool,
	timeSpentSeconds int,
) (*SubmitResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	now := s.timeFunc()

	sess, err := s.sessionStore.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return nil, ErrNoActiveSession
		}
		return nil, NewSubmitAnswerError("failed to load session", err)
	}

	event, err := sess.SubmitAnswer(correct, timeSpentSeconds, now)
	if err != nil {
		return nil, err
	}

	result := &SubmitResult{Event: event, Session: sess}

	switch e := event.(type) {
	case session.LessonCompleted:
		if err := s.settleCompletion(ctx, userID, lessonID, pathID, sess, e, now, result); err != nil {
			return nil, NewSubmitAnswerError("failed to settle completion", err)
		}
	case session.LessonFailed:
		if err := s.settleFailure(ctx, userID, lessonID, pathID, sess, now); err != nil {
			return nil, NewSubmitAnswerError("failed to settle failure", err)
		}
		log.Info("lesson failed",
			slog.String("user_id", userID.String()),
			slog.String("lesson_id", lessonID.String()),
			slog.Int("accuracy", e.Accuracy),
			slog.Int("cards_reviewed", e.CardsReviewed))
	default:
		// Non-terminal: persist the mutated aggregate for the next call.
		if err := s.sessionStore.Save(ctx, userID, sess); err != nil {
			return nil, NewSubmitAnswerError("failed to save session", err)
		}
	}

	return result, nil
}

// AbandonSession implements LessonService.AbandonSession.
func (s *lessonServiceImpl) AbandonSession(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) error {
	if err := s.sessionStore.Delete(ctx, userID, lessonID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// GetCompletionHistory implements LessonService.GetCompletionHistory.
func (s *lessonServiceImpl) GetCompletionHistory(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) ([]*domain.LessonCompletion, error) {
	completions, err := s.completionStore.FindByUserAndLesson(ctx, userID, lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}
	return completions, nil
}

// settleCompletion settles a successful run: lesson XP, lazy streak
// recompute, completion record, progress update, session removal. The
// order matters: the streak is computed counting today's completion, and
// the total XP (streak bonus, combo multiplier, perfect bonus) is derived
// from that streak before anything is persisted.
func (s *lessonServiceImpl) settleCompletion(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	sess *session.LessonSession,
	event session.LessonCompleted,
	now time.Time,
	result *SubmitResult,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	lesson, err := s.lessonStore.FindByID(ctx, lessonID)
	if err != nil {
		return fmt.Errorf("failed to load lesson: %w", err)
	}

	accuracy, err := domain.NewAccuracy(event.Accuracy)
	if err != nil {
		return err
	}

	baseXP := lesson.BaseXPReward
	if baseXP == 0 {
		baseXP = s.defaultLessonXP
	}

	lessonXP, err := s.xpService.CalculateLessonXP(baseXP, accuracy, event.IsPerfect)
	if err != nil {
		return fmt.Errorf("failed to calculate lesson xp: %w", err)
	}

	// The completion being settled counts as today's activity even though
	// its record has not been persisted yet.
	newStreak, err := streak.Recalculate(ctx, now, s.completionCheckerCountingToday(userID, now))
	if err != nil {
		return fmt.Errorf("failed to recalculate streak: %w", err)
	}

	totalXP, err := s.xpService.CalculateTotalXP(lessonXP, newStreak, event.IsPerfect, sess.ConsecutiveCorrect())
	if err != nil {
		return fmt.Errorf("failed to calculate total xp: %w", err)
	}

	completion, err := domain.NewLessonCompletion(
		userID, lessonID, now,
		totalXP.Amount(), accuracy,
		int(sess.TimeSpent(now).Seconds()),
		event.HeartsRemaining, event.IsPerfect,
	)
	if err != nil {
		return err
	}

	isNewBest, err := s.beatsPreviousBest(ctx, userID, lessonID, completion)
	if err != nil {
		return err
	}

	progress, err := s.loadOrCreateProgress(ctx, userID, pathID, now)
	if err != nil {
		return err
	}
	progress.ApplyLessonCompletion(sess.Hearts(), totalXP.Amount(), now)
	progress.UpdateStreak(newStreak, now)

	if s.settlementStore != nil {
		if err := s.settlementStore.SaveCompletionAndProgress(ctx, completion, progress); err != nil {
			return fmt.Errorf("failed to settle completion: %w", err)
		}
	} else {
		if err := s.completionStore.Save(ctx, completion); err != nil {
			return fmt.Errorf("failed to save completion: %w", err)
		}
		if err := s.progressStore.Save(ctx, progress); err != nil {
			return fmt.Errorf("failed to save progress: %w", err)
		}
	}

	if err := s.sessionStore.Delete(ctx, userID, lessonID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	result.Completion = completion
	result.XPEarned = totalXP.Amount()
	result.Streak = newStreak
	result.IsNewBest = isNewBest

	log.Info("lesson completed",
		slog.String("user_id", userID.String()),
		slog.String("lesson_id", lessonID.String()),
		slog.Int("accuracy", event.Accuracy),
		slog.Int("xp_earned", totalXP.Amount()),
		slog.Int("streak", newStreak.Count()),
		slog.Bool("is_perfect", event.IsPerfect))

	return nil
}

// settleFailure settles a failed run: the spent hearts are folded into
// the progress aggregate and the session is removed. No XP, no streak
// credit, no completion record.
func (s *lessonServiceImpl) settleFailure(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	sess *session.LessonSession,
	now time.Time,
) error {
	progress, err := s.loadOrCreateProgress(ctx, userID, pathID, now)
	if err != nil {
		return err
	}
	progress.ApplyLessonFailure(sess.Hearts(), now)
	if err := s.progressStore.Save(ctx, progress); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}

	if err := s.sessionStore.Delete(ctx, userID, lessonID); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// beatsPreviousBest reports whether the in-flight completion outranks
// the user's stored best for the lesson. It must run before the
// completion is persisted so the comparison only sees prior runs.
func (s *lessonServiceImpl) beatsPreviousBest(
	ctx context.Context,
	userID, lessonID uuid.UUID,
	completion *domain.LessonCompletion,
) (bool, error) {
	best, err := s.completionStore.FindBestCompletion(ctx, userID, lessonID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return true, nil
		}
		return false, fmt.Errorf("failed to load best completion: %w", err)
	}
	if completion.Accuracy != best.Accuracy {
		return completion.Accuracy > best.Accuracy, nil
	}
	return completion.XPEarned > best.XPEarned, nil
}

// loadOrCreateProgress fetches the progress aggregate, recreating the
// default row when absent. Absent progress is never an error.
func (s *lessonServiceImpl) loadOrCreateProgress(
	ctx context.Context,
	userID, pathID uuid.UUID,
	now time.Time,
) (*domain.UserProgress, error) {
	progress, err := s.progressStore.FindByUserAndPath(ctx, userID, pathID)
	if err != nil {
		if store.IsNotFoundError(err) {
			return domain.NewUserProgress(userID, pathID, s.maxHearts, now)
		}
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	return progress, nil
}

// completionCheckerCountingToday adapts the completion store into the
// streak scheduler's lookup, treating the in-flight completion as
// today's activity.
func (s *lessonServiceImpl) completionCheckerCountingToday(
	userID uuid.UUID,
	now time.Time,
) streak.CompletionChecker {
	today := now.UTC().Truncate(24 * time.Hour)
	return func(ctx context.Context, day time.Time) (bool, error) {
		if day.Equal(today) {
			return true, nil
		}
		return s.completionStore.HasCompletionOnDay(ctx, userID, day)
	}
}
