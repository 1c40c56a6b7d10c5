// Package lesson orchestrates lesson sessions: it loads content, starts
// and resumes sessions, routes answer submissions to the aggregate and,
// on terminal events, settles rewards and progress before discarding the
// session.
package lesson

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
	"github.com/lingualoop/lingualoop-api/internal/domain/session"
)

// Common error types for LessonService
var (
	// ErrLessonNotFound indicates the lesson does not exist.
	ErrLessonNotFound = errors.New("lesson not found")

	// ErrNoActiveSession indicates there is no in-flight session for the
	// (user, lesson) pair.
	ErrNoActiveSession = errors.New("no active session for lesson")

	// ErrNoHearts indicates the user has no hearts left to start a session.
	ErrNoHearts = errors.New("no hearts available")
)

// SubmitResult is the outcome of one answer submission. Event is always
// set; Completion, XPEarned and Streak are populated only when the
// submission completed the lesson.
type SubmitResult struct {
	// Event is the single event produced by this submission.
	Event session.Event

	// Session is the aggregate after the submission. On terminal events it
	// has already been removed from the session store.
	Session *session.LessonSession

	// Completion is the persisted record of a successful run, nil unless
	// the submission completed the lesson.
	Completion *domain.LessonCompletion

	// XPEarned is the total XP awarded for a completed lesson.
	XPEarned int

	// IsNewBest is true when this completion beat the user's previous
	// best run of the lesson (higher accuracy, or same accuracy with
	// more XP). A first completion is always a best.
	IsNewBest bool

	// Streak is the recomputed streak after a completed lesson.
	Streak domain.Streak
}

// LessonService drives lesson sessions end to end. All state mutations
// flow through here: the aggregate is persisted after every submission,
// and terminal events settle XP, streak and progress atomically from the
// caller's point of view.
type LessonService interface {
	// StartSession begins a new session for the user on the lesson,
	// replacing any existing in-flight session for the pair. Hearts are
	// refilled from elapsed time before the check; starting with no hearts
	// returns ErrNoHearts.
	StartSession(
		ctx context.Context,
		userID, lessonID, pathID uuid.UUID,
		mode session.ReviewMode,
	) (*session.LessonSession, error)

	// GetSession retrieves the in-flight session for the pair.
	// Returns ErrNoActiveSession if none exists.
	GetSession(ctx context.Context, userID, lessonID uuid.UUID) (*session.LessonSession, error)

	// SubmitAnswer submits an answer for the session's current flashcard.
	// Non-terminal events leave the session persisted for the next call;
	// terminal events settle rewards and remove the session.
	SubmitAnswer(
		ctx context.Context,
		userID, lessonID, pathID uuid.UUID,
		correct bool,
		timeSpentSeconds int,
	) (*SubmitResult, error)

	// AbandonSession discards the in-flight session for the pair, if any.
	// Hearts already lost in the session are not restored to the progress
	// aggregate; they were never deducted from it.
	AbandonSession(ctx context.Context, userID, lessonID uuid.UUID) error

	// GetCompletionHistory returns the user's completions of the lesson,
	// most recent first. A lesson never completed yields an empty slice,
	// not an error.
	GetCompletionHistory(
		ctx context.Context,
		userID, lessonID uuid.UUID,
	) ([]*domain.LessonCompletion, error)
}

// ServiceError wraps errors from the lesson service with operation
// context, so consumers can differentiate failures with errors.As
// instead of string matching.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "start_session").
	Operation string
	// Message is a human-readable description of the error.
	Message string
	// Err is the underlying error that caused the failure.
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s operation failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s operation failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewStartSessionError returns a ServiceError for the start_session operation.
func NewStartSessionError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "start_session", Message: message, Err: err}
}

// NewSubmitAnswerError returns a ServiceError for the submit_answer operation.
func NewSubmitAnswerError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_answer", Message: message, Err: err}
}
