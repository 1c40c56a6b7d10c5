package lesson

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
)

// MockLessonStore mocks the store.LessonStore interface
type MockLessonStore struct {
	mock.Mock
}

func (m *MockLessonStore) FindByID(ctx context.Context, lessonID uuid.UUID) (*domain.Lesson, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lesson), args.Error(1)
}

func (m *MockLessonStore) FindFlashcardsForLesson(
	ctx context.Context,
	lessonID uuid.UUID,
) ([]domain.Flashcard, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Flashcard), args.Error(1)
}

// MockSessionStore mocks the store.SessionStore interface
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(
	ctx context.Context,
	userID uuid.UUID,
	sess *session.LessonSession,
) error {
	args := m.Called(ctx, userID, sess)
	return args.Error(0)
}

func (m *MockSessionStore) FindByUserAndLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*session.LessonSession, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.LessonSession), args.Error(1)
}

func (m *MockSessionStore) Delete(ctx context.Context, userID, lessonID uuid.UUID) error {
	args := m.Called(ctx, userID, lessonID)
	return args.Error(0)
}

// MockUserProgressStore mocks the store.UserProgressStore interface
type MockUserProgressStore struct {
	mock.Mock
}

func (m *MockUserProgressStore) FindByUserAndPath(
	ctx context.Context,
	userID, pathID uuid.UUID,
) (*domain.UserProgress, error) {
	args := m.Called(ctx, userID, pathID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserProgress), args.Error(1)
}

func (m *MockUserProgressStore) Save(ctx context.Context, progress *domain.UserProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

// MockLessonCompletionStore mocks the store.LessonCompletionStore interface
type MockLessonCompletionStore struct {
	mock.Mock
}

func (m *MockLessonCompletionStore) Save(
	ctx context.Context,
	completion *domain.LessonCompletion,
) error {
	args := m.Called(ctx, completion)
	return args.Error(0)
}

func (m *MockLessonCompletionStore) FindByUserAndLesson(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) ([]*domain.LessonCompletion, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.LessonCompletion), args.Error(1)
}

func (m *MockLessonCompletionStore) FindBestCompletion(
	ctx context.Context,
	userID, lessonID uuid.UUID,
) (*domain.LessonCompletion, error) {
	args := m.Called(ctx, userID, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LessonCompletion), args.Error(1)
}

func (m *MockLessonCompletionStore) CalculateAverageAccuracy(
	ctx context.Context,
	userID uuid.UUID,
) (float64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockLessonCompletionStore) HasCompletionOnDay(
	ctx context.Context,
	userID uuid.UUID,
	day time.Time,
) (bool, error) {
	args := m.Called(ctx, userID, day)
	return args.Bool(0), args.Error(1)
}

// MockSettlementStore mocks the store.SettlementStore interface
type MockSettlementStore struct {
	mock.Mock
}

func (m *MockSettlementStore) SaveCompletionAndProgress(
	ctx context.Context,
	completion *domain.LessonCompletion,
	progress *domain.UserProgress,
) error {
	args := m.Called(ctx, completion, progress)
	return args.Error(0)
}
