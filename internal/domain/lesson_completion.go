package domain

import (
	"time"

	"github.com/google/uuid"
)

// LessonCompletion is the persisted record of one successful lesson run.
// It is created once per completion and never mutated afterwards; a user
// retrying a lesson produces a new record.
type LessonCompletion struct {
	ID               uuid.UUID `json:"id"` // uuid.Nil until persisted
	UserID           uuid.UUID `json:"user_id"`
	LessonID         uuid.UUID `json:"lesson_id"`
	CompletedAt      time.Time `json:"completed_at"`
	XPEarned         int       `json:"xp_earned"`
	Accuracy         int       `json:"accuracy"`
	TimeSpentSeconds int       `json:"time_spent_seconds"`
	HeartsRemaining  int       `json:"hearts_remaining"`
	IsPerfect        bool      `json:"is_perfect"`
}

// NewLessonCompletion creates a LessonCompletion for the given user and
// lesson. The ID is generated here; stores persist it as-is.
// Returns an error if validation fails.
func NewLessonCompletion(
	userID, lessonID uuid.UUID,
	completedAt time.Time,
	xpEarned int,
	accuracy Accuracy,
	timeSpentSeconds int,
	heartsRemaining int,
	isPerfect bool,
) (*LessonCompletion, error) {
	completion := &LessonCompletion{
		ID:               uuid.New(),
		UserID:           userID,
		LessonID:         lessonID,
		CompletedAt:      completedAt,
		XPEarned:         xpEarned,
		Accuracy:         accuracy.Percent(),
		TimeSpentSeconds: timeSpentSeconds,
		HeartsRemaining:  heartsRemaining,
		IsPerfect:        isPerfect,
	}

	if err := completion.Validate(); err != nil {
		return nil, err
	}

	return completion, nil
}

// Validate checks if the LessonCompletion has valid data.
// Returns an error if any field fails validation.
func (c *LessonCompletion) Validate() error {
	if c.UserID == uuid.Nil {
		return ErrCompletionUserIDEmpty
	}
	if c.LessonID == uuid.Nil {
		return ErrCompletionLessonIDEmpty
	}
	if c.Accuracy < 0 || c.Accuracy > 100 {
		return ErrAccuracyOutOfRange
	}
	if c.TimeSpentSeconds < 0 {
		return ErrCompletionTimeNegative
	}
	if c.XPEarned < 0 {
		return ErrXPNegative
	}
	return nil
}
