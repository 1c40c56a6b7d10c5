package domain

import (
	"errors"
	"fmt"
)

// ErrorCode is a stable, machine-readable identifier for a class of domain
// error. Codes are part of the public contract: callers dispatch on them
// when translating domain failures into user-visible responses.
type ErrorCode string

// Domain error codes.
const (
	// CodeLessonNoFlashcards indicates an attempt to start a lesson session
	// with an empty flashcard set.
	CodeLessonNoFlashcards ErrorCode = "LESSON_NO_FLASHCARDS"

	// CodeLessonAlreadyComplete indicates an answer was submitted to a
	// session that has already reached a terminal state.
	CodeLessonAlreadyComplete ErrorCode = "LESSON_ALREADY_COMPLETE"

	// CodeLessonInvalidIndex indicates the session's current index fell
	// outside the flashcard sequence. This is a defensive code and should
	// be unreachable in correct code.
	CodeLessonInvalidIndex ErrorCode = "LESSON_INVALID_INDEX"

	// CodeSessionNotFound indicates no active session exists for a
	// (user, lesson) pair. It is surfaced by callers of the session store,
	// never by the aggregate itself.
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
)

// Error is the single error type for lesson-flow failures. It carries a
// stable code plus a human-readable message.
type Error struct {
	Code    ErrorCode
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewError creates a domain error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// IsCode reports whether err is a domain error carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ErrValidation is the root of the validation-error kind. Out-of-range
// inputs to value object constructors wrap this sentinel, keeping them
// distinct from lesson-flow errors.
var ErrValidation = errors.New("validation failed")

// Validation errors for value objects and entities.
var (
	// ErrHeartsOutOfRange is returned when a hearts value falls outside [0, max].
	ErrHeartsOutOfRange = fmt.Errorf("%w: hearts must be between 0 and max", ErrValidation)

	// ErrHeartsMaxNotPositive is returned when the hearts maximum is zero or negative.
	ErrHeartsMaxNotPositive = fmt.Errorf("%w: max hearts must be positive", ErrValidation)

	// ErrXPNegative is returned when an XP amount is negative.
	ErrXPNegative = fmt.Errorf("%w: xp amount cannot be negative", ErrValidation)

	// ErrXPFactorNegative is returned when an XP multiplier is negative.
	ErrXPFactorNegative = fmt.Errorf("%w: xp multiplier cannot be negative", ErrValidation)

	// ErrStreakNegative is returned when a streak count is negative.
	ErrStreakNegative = fmt.Errorf("%w: streak cannot be negative", ErrValidation)

	// ErrAccuracyOutOfRange is returned when an accuracy percentage falls outside [0, 100].
	ErrAccuracyOutOfRange = fmt.Errorf("%w: accuracy must be between 0 and 100", ErrValidation)

	// ErrAccuracyNegativeCounts is returned when accuracy is derived from negative counts.
	ErrAccuracyNegativeCounts = fmt.Errorf("%w: answer counts cannot be negative", ErrValidation)

	// ErrProgressExceedsTotal is returned when completed exceeds total.
	ErrProgressExceedsTotal = fmt.Errorf("%w: completed cannot exceed total", ErrValidation)

	// ErrProgressNegative is returned when progress counts are negative.
	ErrProgressNegative = fmt.Errorf("%w: progress counts cannot be negative", ErrValidation)

	// ErrFlashcardIDEmpty is returned when a flashcard ID is empty or nil.
	ErrFlashcardIDEmpty = fmt.Errorf("%w: flashcard ID cannot be empty", ErrValidation)

	// ErrFlashcardQuestionEmpty is returned when a flashcard's question is empty.
	ErrFlashcardQuestionEmpty = fmt.Errorf("%w: flashcard question cannot be empty", ErrValidation)

	// ErrFlashcardAnswerEmpty is returned when a flashcard's answer is empty.
	ErrFlashcardAnswerEmpty = fmt.Errorf("%w: flashcard answer cannot be empty", ErrValidation)

	// ErrAnswerTimeNegative is returned when an answer's time spent is negative.
	ErrAnswerTimeNegative = fmt.Errorf("%w: time spent cannot be negative", ErrValidation)

	// ErrCompletionUserIDEmpty is returned when a lesson completion's user ID is empty.
	ErrCompletionUserIDEmpty = fmt.Errorf("%w: completion user ID cannot be empty", ErrValidation)

	// ErrCompletionLessonIDEmpty is returned when a lesson completion's lesson ID is empty.
	ErrCompletionLessonIDEmpty = fmt.Errorf("%w: completion lesson ID cannot be empty", ErrValidation)

	// ErrCompletionTimeNegative is returned when a completion's time spent is negative.
	ErrCompletionTimeNegative = fmt.Errorf("%w: completion time spent cannot be negative", ErrValidation)

	// ErrReviewUserIDEmpty is returned when a review record's user ID is empty.
	ErrReviewUserIDEmpty = fmt.Errorf("%w: review user ID cannot be empty", ErrValidation)

	// ErrReviewFlashcardIDEmpty is returned when a review record's flashcard ID is empty.
	ErrReviewFlashcardIDEmpty = fmt.Errorf("%w: review flashcard ID cannot be empty", ErrValidation)

	// ErrReviewIntervalInvalid is returned when a review interval is not one
	// of the supported interval tiers.
	ErrReviewIntervalInvalid = fmt.Errorf("%w: review interval must be 1, 3 or 7 days", ErrValidation)

	// ErrProgressUserIDEmpty is returned when a user progress record's user ID is empty.
	ErrProgressUserIDEmpty = fmt.Errorf("%w: progress user ID cannot be empty", ErrValidation)

	// ErrProgressPathIDEmpty is returned when a user progress record's path ID is empty.
	ErrProgressPathIDEmpty = fmt.Errorf("%w: progress path ID cannot be empty", ErrValidation)
)

// IsValidationError reports whether err belongs to the validation-error kind.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation)
}
