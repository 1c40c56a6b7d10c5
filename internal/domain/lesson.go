package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Lesson-specific validation errors
var (
	// ErrLessonIDEmpty is returned when a lesson ID is empty or nil.
	ErrLessonIDEmpty = fmt.Errorf("%w: lesson ID cannot be empty", ErrValidation)

	// ErrLessonTitleEmpty is returned when a lesson's title is empty.
	ErrLessonTitleEmpty = fmt.Errorf("%w: lesson title cannot be empty", ErrValidation)

	// ErrLessonXPRewardNegative is returned when a lesson's base XP reward is negative.
	ErrLessonXPRewardNegative = fmt.Errorf("%w: lesson xp reward cannot be negative", ErrValidation)
)

// Lesson is an ordered set of flashcards a user completes in one sitting.
// Lessons are authored content; this core only reads them.
type Lesson struct {
	ID           uuid.UUID  `json:"id"`
	UnitID       *uuid.UUID `json:"unit_id,omitempty"`
	Title        string     `json:"title"`
	Position     int        `json:"position"`
	BaseXPReward int        `json:"base_xp_reward"`
}

// Validate checks if the Lesson has valid data.
// Returns an error if any field fails validation.
func (l *Lesson) Validate() error {
	if l.ID == uuid.Nil {
		return ErrLessonIDEmpty
	}
	if l.Title == "" {
		return ErrLessonTitleEmpty
	}
	if l.BaseXPReward < 0 {
		return ErrLessonXPRewardNegative
	}
	return nil
}
