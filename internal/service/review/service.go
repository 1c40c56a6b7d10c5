// Package review orchestrates review-mode submissions: one flashcard at
// a time, outside any lesson session. It feeds the card's history to the
// interval scheduler and applies the resulting decision at the storage
// boundary, including struggling-queue changes.
package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// Common error types for ReviewService
var (
	// ErrNoCardsDue indicates the user has no flashcards due for review.
	ErrNoCardsDue = errors.New("no flashcards due for review")
)

// ReviewResult is the outcome of one review submission.
type ReviewResult struct {
	// Record is the persisted review record.
	Record *domain.ReviewRecord

	// FlaggedStruggling is true when this submission added the card to
	// the struggling queue.
	FlaggedStruggling bool

	// ClearedStruggling is true when this submission removed the card
	// from the struggling queue.
	ClearedStruggling bool
}

// ReviewService processes spaced-repetition reviews.
type ReviewService interface {
	// SubmitReview records the outcome of reviewing one flashcard and
	// schedules its next appearance.
	SubmitReview(
		ctx context.Context,
		userID, flashcardID uuid.UUID,
		isCorrect bool,
	) (*ReviewResult, error)

	// GetDueFlashcards returns IDs of flashcards due for review, oldest
	// due first, up to limit. Returns ErrNoCardsDue when none are due.
	GetDueFlashcards(ctx context.Context, userID uuid.UUID, limit int) ([]uuid.UUID, error)

	// GetStrugglingFlashcards returns the IDs currently in the user's
	// struggling queue. An empty queue is not an error.
	GetStrugglingFlashcards(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ServiceError wraps errors from the review service with operation
// context.
type ServiceError struct {
	Operation string
	Message   string
	Err       error
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

// NewSubmitReviewError returns a ServiceError for the submit_review operation.
func NewSubmitReviewError(message string, err error) *ServiceError {
	return &ServiceError{Operation: "submit_review", Message: message, Err: err}
}
