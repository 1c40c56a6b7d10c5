package lesson

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
	"github.com/lingualoop/lingualoop-api/internal/service/hearts"
	"github.com/lingualoop/lingualoop-api/internal/service/xp"
	"github.com/lingualoop/lingualoop-api/internal/store"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type testFixture struct {
	lessonStore     *MockLessonStore
	sessionStore    *MockSessionStore
	progressStore   *MockUserProgressStore
	completionStore *MockLessonCompletionStore
	service         LessonService
}

func newFixture(t *testing.T) *testFixture {
	t.Helper()

	f := &testFixture{
		lessonStore:     new(MockLessonStore),
		sessionStore:    new(MockSessionStore),
		progressStore:   new(MockUserProgressStore),
		completionStore: new(MockLessonCompletionStore),
	}

	svc, err := NewLessonService(Config{
		LessonStore:     f.lessonStore,
		SessionStore:    f.sessionStore,
		ProgressStore:   f.progressStore,
		CompletionStore: f.completionStore,
		XPService:       xp.NewDefaultService(),
		HeartsService:   hearts.NewService(hearts.DefaultPolicy()),
		MaxHearts:       5,
		TimeFunc:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	f.service = svc
	return f
}

func testCards(n int) []domain.Flashcard {
	cards := make([]domain.Flashcard, n)
	for i := range cards {
		cards[i] = domain.Flashcard{
			ID:         uuid.New(),
			Question:   "question",
			Answer:     "answer",
			Difficulty: domain.DifficultyEasy,
		}
	}
	return cards
}

func testLesson(id uuid.UUID) *domain.Lesson {
	return &domain.Lesson{ID: id, Title: "Greetings", BaseXPReward: 10}
}

func testProgress(t *testing.T, userID, pathID uuid.UUID, current int) *domain.UserProgress {
	t.Helper()
	progress, err := domain.NewUserProgress(userID, pathID, 5, testNow)
	require.NoError(t, err)
	h, err := domain.NewHearts(current, 5)
	require.NoError(t, err)
	progress.Hearts = h
	progress.LastHeartRefill = testNow
	return progress
}

func TestStartSessionHappyPath(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.lessonStore.On("FindFlashcardsForLesson", ctx, lessonID).Return(testCards(3), nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(nil, store.ErrProgressNotFound)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).Return(nil)
	f.sessionStore.On("Save", ctx, userID, mock.AnythingOfType("*session.LessonSession")).
		Return(nil)

	sess, err := f.service.StartSession(ctx, userID, lessonID, pathID, session.ModeFlashcard)
	require.NoError(t, err)

	assert.Equal(t, session.StateInProgress, sess.State())
	assert.Equal(t, 0, sess.CurrentIndex())
	assert.Equal(t, 5, sess.Hearts().Current())
	f.sessionStore.AssertExpectations(t)
	f.progressStore.AssertExpectations(t)
}

func TestStartSessionLessonNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	f.lessonStore.On("FindByID", ctx, lessonID).Return(nil, store.ErrLessonNotFound)

	_, err := f.service.StartSession(ctx, userID, lessonID, pathID, session.ModeFlashcard)
	assert.ErrorIs(t, err, ErrLessonNotFound)
	f.sessionStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartSessionNoHearts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.lessonStore.On("FindFlashcardsForLesson", ctx, lessonID).Return(testCards(3), nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 0), nil)

	_, err := f.service.StartSession(ctx, userID, lessonID, pathID, session.ModeFlashcard)
	assert.ErrorIs(t, err, ErrNoHearts)
}

func TestStartSessionRefillsBeforeHeartsCheck(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	// Zero hearts, but the last refill was over an hour ago: two hearts
	// have regenerated and the session may start.
	progress := testProgress(t, userID, pathID, 0)
	progress.LastHeartRefill = testNow.Add(-61 * time.Minute)

	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.lessonStore.On("FindFlashcardsForLesson", ctx, lessonID).Return(testCards(3), nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).Return(progress, nil)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).Return(nil)
	f.sessionStore.On("Save", ctx, userID, mock.AnythingOfType("*session.LessonSession")).
		Return(nil)

	sess, err := f.service.StartSession(ctx, userID, lessonID, pathID, session.ModeFlashcard)
	require.NoError(t, err)
	assert.Equal(t, 2, sess.Hearts().Current())
}

func TestStartSessionRejectsEmptyLesson(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.lessonStore.On("FindFlashcardsForLesson", ctx, lessonID).
		Return([]domain.Flashcard{}, nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 5), nil)

	_, err := f.service.StartSession(ctx, userID, lessonID, pathID, session.ModeFlashcard)
	assert.True(t, domain.IsCode(err, domain.CodeLessonNoFlashcards))
}

func TestSubmitAnswerNoActiveSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).
		Return(nil, store.ErrSessionNotFound)

	_, err := f.service.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestSubmitAnswerNonTerminalSavesSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(3), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.sessionStore.On("Save", ctx, userID, sess).Return(nil)

	result, err := f.service.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	require.NoError(t, err)

	advanced, ok := result.Event.(session.CardAdvanced)
	require.True(t, ok)
	assert.Equal(t, 1, advanced.CurrentIndex)
	assert.Nil(t, result.Completion)
	f.sessionStore.AssertExpectations(t)
	f.completionStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmitAnswerCompletionSettlesRewards(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	// Session at the last card, both prior answers correct.
	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(3), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := sess.SubmitAnswer(true, 5, testNow)
		require.NoError(t, err)
	}

	yesterday := testNow.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, yesterday).Return(false, nil)
	f.completionStore.On("FindBestCompletion", ctx, userID, lessonID).
		Return(nil, store.ErrCompletionNotFound)
	f.completionStore.On("Save", ctx, mock.AnythingOfType("*domain.LessonCompletion")).
		Return(nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 5), nil)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).Return(nil)
	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	result, err := f.service.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	require.NoError(t, err)

	completed, ok := result.Event.(session.LessonCompleted)
	require.True(t, ok)
	assert.Equal(t, 100, completed.Accuracy)
	assert.True(t, completed.IsPerfect)
	assert.True(t, result.IsNewBest)

	// Lesson XP: 10 base + 15 flawless tier + 10 flawless stack = 35.
	// Total: streak 1 adds no milestone bonus, combo of 3 consecutive
	// correct applies 1.2x (35 -> 42), perfect adds 25 -> 67.
	assert.Equal(t, 67, result.XPEarned)
	assert.Equal(t, 1, result.Streak.Count())
	require.NotNil(t, result.Completion)
	assert.Equal(t, 67, result.Completion.XPEarned)
	assert.Equal(t, 100, result.Completion.Accuracy)
	assert.True(t, result.Completion.IsPerfect)

	f.completionStore.AssertExpectations(t)
	f.sessionStore.AssertExpectations(t)
	f.progressStore.AssertExpectations(t)
}

func TestSubmitAnswerCompletionUsesSettlementStore(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	settlementStore := new(MockSettlementStore)

	svc, err := NewLessonService(Config{
		LessonStore:     f.lessonStore,
		SessionStore:    f.sessionStore,
		ProgressStore:   f.progressStore,
		CompletionStore: f.completionStore,
		SettlementStore: settlementStore,
		XPService:       xp.NewDefaultService(),
		HeartsService:   hearts.NewService(hearts.DefaultPolicy()),
		MaxHearts:       5,
		TimeFunc:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(1), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)

	yesterday := testNow.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, yesterday).Return(false, nil)
	f.completionStore.On("FindBestCompletion", ctx, userID, lessonID).
		Return(nil, store.ErrCompletionNotFound)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 5), nil)
	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	settlementStore.On("SaveCompletionAndProgress", ctx,
		mock.AnythingOfType("*domain.LessonCompletion"),
		mock.AnythingOfType("*domain.UserProgress")).
		Return(nil)

	result, err := svc.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	require.NoError(t, err)
	require.NotNil(t, result.Completion)

	// Both writes go through the settlement store, never the individual ones.
	settlementStore.AssertExpectations(t)
	f.completionStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.progressStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSubmitAnswerFallsBackToDefaultLessonXP(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	svc, err := NewLessonService(Config{
		LessonStore:     f.lessonStore,
		SessionStore:    f.sessionStore,
		ProgressStore:   f.progressStore,
		CompletionStore: f.completionStore,
		XPService:       xp.NewDefaultService(),
		HeartsService:   hearts.NewService(hearts.DefaultPolicy()),
		MaxHearts:       5,
		DefaultLessonXP: 10,
		TimeFunc:        func() time.Time { return testNow },
	})
	require.NoError(t, err)

	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(1), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)

	yesterday := testNow.UTC().Truncate(24 * time.Hour).AddDate(0, 0, -1)

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.lessonStore.On("FindByID", ctx, lessonID).
		Return(&domain.Lesson{ID: lessonID, Title: "Greetings"}, nil)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, yesterday).Return(false, nil)
	f.completionStore.On("FindBestCompletion", ctx, userID, lessonID).
		Return(nil, store.ErrCompletionNotFound)
	f.completionStore.On("Save", ctx, mock.AnythingOfType("*domain.LessonCompletion")).
		Return(nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 5), nil)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).Return(nil)
	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	result, err := svc.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	require.NoError(t, err)

	// The lesson carries no reward of its own, so the configured default
	// of 10 applies: 10 base + 15 flawless tier + 10 flawless stack = 35,
	// no streak or combo bonus, perfect adds 25 -> 60.
	assert.Equal(t, 60, result.XPEarned)
}

func TestSubmitAnswerCompletionExtendsStreak(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(1), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)

	// Completions on the two prior days: today's settlement makes three.
	today := testNow.UTC().Truncate(24 * time.Hour)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, today.AddDate(0, 0, -1)).
		Return(true, nil)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, today.AddDate(0, 0, -2)).
		Return(true, nil)
	f.completionStore.On("HasCompletionOnDay", ctx, userID, today.AddDate(0, 0, -3)).
		Return(false, nil)

	// A stored perfect run with more XP: this completion is not a new best.
	previousBest := &domain.LessonCompletion{
		UserID:   userID,
		LessonID: lessonID,
		Accuracy: 100,
		XPEarned: 90,
	}

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.lessonStore.On("FindByID", ctx, lessonID).Return(testLesson(lessonID), nil)
	f.completionStore.On("FindBestCompletion", ctx, userID, lessonID).
		Return(previousBest, nil)
	f.completionStore.On("Save", ctx, mock.AnythingOfType("*domain.LessonCompletion")).
		Return(nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 5), nil)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).Return(nil)
	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	result, err := f.service.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Streak.Count())
	// Lesson XP 35, streak 3 adds 10 -> 45, single correct answer applies
	// no combo tier, perfect adds 25 -> 70.
	assert.Equal(t, 70, result.XPEarned)
	assert.False(t, result.IsNewBest)
}

func TestSubmitAnswerFailureSettlesHearts(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.NewHearts(1, 5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(3), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)

	var savedProgress *domain.UserProgress
	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)
	f.progressStore.On("FindByUserAndPath", ctx, userID, pathID).
		Return(testProgress(t, userID, pathID, 1), nil)
	f.progressStore.On("Save", ctx, mock.AnythingOfType("*domain.UserProgress")).
		Run(func(args mock.Arguments) {
			savedProgress = args.Get(1).(*domain.UserProgress)
		}).
		Return(nil)
	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	result, err := f.service.SubmitAnswer(ctx, userID, lessonID, pathID, false, 5)
	require.NoError(t, err)

	failed, ok := result.Event.(session.LessonFailed)
	require.True(t, ok)
	assert.Equal(t, 0, failed.Accuracy)
	assert.Equal(t, 1, failed.CardsReviewed)

	require.NotNil(t, savedProgress)
	assert.Equal(t, 0, savedProgress.Hearts.Current())
	assert.Equal(t, 0, savedProgress.XP.Amount())
	f.completionStore.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	f.sessionStore.AssertExpectations(t)
}

func TestSubmitAnswerAfterTerminalRejected(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID, pathID := uuid.New(), uuid.New(), uuid.New()
	ctx := context.Background()

	h, err := domain.FullHearts(5)
	require.NoError(t, err)
	sess, err := session.Start(lessonID, testCards(1), h, session.ModeFlashcard, testNow)
	require.NoError(t, err)
	_, err = sess.SubmitAnswer(true, 5, testNow)
	require.NoError(t, err)

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(sess, nil)

	_, err = f.service.SubmitAnswer(ctx, userID, lessonID, pathID, true, 5)
	assert.True(t, domain.IsCode(err, domain.CodeLessonAlreadyComplete))
}

func TestGetSessionNotFound(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID := uuid.New(), uuid.New()
	ctx := context.Background()

	f.sessionStore.On("FindByUserAndLesson", ctx, userID, lessonID).
		Return(nil, store.ErrSessionNotFound)

	_, err := f.service.GetSession(ctx, userID, lessonID)
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestGetCompletionHistory(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID := uuid.New(), uuid.New()
	ctx := context.Background()

	history := []*domain.LessonCompletion{
		{UserID: userID, LessonID: lessonID, Accuracy: 100, XPEarned: 70},
		{UserID: userID, LessonID: lessonID, Accuracy: 80, XPEarned: 45},
	}
	f.completionStore.On("FindByUserAndLesson", ctx, userID, lessonID).Return(history, nil)

	got, err := f.service.GetCompletionHistory(ctx, userID, lessonID)
	require.NoError(t, err)
	assert.Equal(t, history, got)
}

func TestAbandonSession(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	userID, lessonID := uuid.New(), uuid.New()
	ctx := context.Background()

	f.sessionStore.On("Delete", ctx, userID, lessonID).Return(nil)

	require.NoError(t, f.service.AbandonSession(ctx, userID, lessonID))
	f.sessionStore.AssertExpectations(t)
}
