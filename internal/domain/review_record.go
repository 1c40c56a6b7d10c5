package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReviewIntervalDays lists the supported spaced-repetition interval tiers.
var ReviewIntervalDays = []int{1, 3, 7}

// ReviewRecord is one entry in a flashcard's append-only review history
// for a user. The ordered history (most recent first) is the sole input
// to the interval scheduler.
type ReviewRecord struct {
	ID             uuid.UUID `json:"id"`
	UserID         uuid.UUID `json:"user_id"`
	FlashcardID    uuid.UUID `json:"flashcard_id"`
	IsCorrect      bool      `json:"is_correct"`
	ReviewDate     time.Time `json:"review_date"`
	NextReviewDate time.Time `json:"next_review_date"`
	IntervalDays   int       `json:"interval_days"`
}

// NewReviewRecord creates a ReviewRecord for the given user and flashcard.
// Returns an error if validation fails.
func NewReviewRecord(
	userID, flashcardID uuid.UUID,
	isCorrect bool,
	reviewDate, nextReviewDate time.Time,
	intervalDays int,
) (*ReviewRecord, error) {
	record := &ReviewRecord{
		ID:             uuid.New(),
		UserID:         userID,
		FlashcardID:    flashcardID,
		IsCorrect:      isCorrect,
		ReviewDate:     reviewDate,
		NextReviewDate: nextReviewDate,
		IntervalDays:   intervalDays,
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	return record, nil
}

// Validate checks if the ReviewRecord has valid data.
// Returns an error if any field fails validation.
func (r *ReviewRecord) Validate() error {
	if r.UserID == uuid.Nil {
		return ErrReviewUserIDEmpty
	}
	if r.FlashcardID == uuid.Nil {
		return ErrReviewFlashcardIDEmpty
	}
	if !IsValidReviewInterval(r.IntervalDays) {
		return ErrReviewIntervalInvalid
	}
	return nil
}

// IsValidReviewInterval reports whether days is a supported interval tier.
func IsValidReviewInterval(days int) bool {
	for _, d := range ReviewIntervalDays {
		if d == days {
			return true
		}
	}
	return false
}
