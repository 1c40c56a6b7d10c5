package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/service/auth"
	"github.com/lingualoop/lingualoop-api/internal/service/lesson"
	"github.com/lingualoop/lingualoop-api/internal/service/review"
	"github.com/lingualoop/lingualoop-api/internal/service/stats"
)

// MockLessonService is a testify mock for lesson.LessonService.
type MockLessonService struct {
	mock.Mock
}

var _ lesson.LessonService = (*MockLessonService)(nil)

func (m *MockLessonService) StartSession(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	mode session.ReviewMode,
) (*session.LessonSession, error) {
	args := m.Called(ctx, userID, lessonID, pathID, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.LessonSession), args.Error(1)
}

func (m *MockLessonService) GetSession(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*session.LessonSession, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.LessonSession), args.Error(1)
}

func (m *MockLessonService) SubmitAnswer(
	ctx context.Context,
	userID, lessonID, pathID uuid.UUID,
	correct bool,
	timeSpentSeconds int,
) (*lesson.SubmitResult, error) {
	args := m.Called(ctx, userID, lessonID, pathID, correct, timeSpentSeconds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lesson.SubmitResult), args.Error(1)
}

func (m *MockLessonService) AbandonSession(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) error {
	args := m.Called(ctx, userID, lessonID)
	return args.Error(0)
}

func (m *MockLessonService) GetCompletionHistory(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) ([]*domain.LessonCompletion, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LessonCompletion), args.Error(1)
}

// MockReviewService is a testify mock for review.ReviewService.
type MockReviewService struct {
	mock.Mock
}

var _ review.ReviewService = (*MockReviewService)(nil)

func (m *MockReviewService) SubmitReview(
	ctx context.Context,
	userID, flashcardID uuid.UUID,
	isCorrect bool,
) (*review.ReviewResult, error) {
	args := m.Called(ctx, userID, flashcardID, isCorrect)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*review.ReviewResult), args.Error(1)
}

func (m *MockReviewService) GetDueFlashcards(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockReviewService) GetStrugglingFlashcards(
	ctx context.Context,
	userID uuid.UUID,
) ([]uuid.UUID, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

// MockStatsService is a testify mock for stats.StatsService.
type MockStatsService struct {
	mock.Mock
}

var _ stats.StatsService = (*MockStatsService)(nil)

func (m *MockStatsService) GetUserStats(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*stats.UserStats, error) {
	args := m.Called(ctx, userID, pathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stats.UserStats), args.Error(1)
}

func (m *MockStatsService) RefillHearts(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID, pathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

// MockUserStore is a testify mock for store.UserStore.
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockJWTService is a testify mock for auth.JWTService.
type MockJWTService struct {
	mock.Mock
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}

func (m *MockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Claims), args.Error(1)
}
