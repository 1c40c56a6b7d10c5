package domain

import (
	"time"

	"github.com/google/uuid"
)

// Answer records the outcome of a single flashcard within a lesson
// session. Answers are immutable and owned exclusively by the session
// that created them.
type Answer struct {
	FlashcardID      uuid.UUID `json:"flashcard_id"`
	Correct          bool      `json:"correct"`
	AnsweredAt       time.Time `json:"answered_at"`
	TimeSpentSeconds int       `json:"time_spent_seconds,omitempty"` // 0 when not reported by the client
}

// NewAnswer creates an Answer for the given flashcard. timeSpentSeconds
// may be zero when the client does not report it. Returns a validation
// error if the flashcard ID is empty or time spent is negative.
func NewAnswer(flashcardID uuid.UUID, correct bool, answeredAt time.Time, timeSpentSeconds int) (Answer, error) {
	if flashcardID == uuid.Nil {
		return Answer{}, ErrFlashcardIDEmpty
	}
	if timeSpentSeconds < 0 {
		return Answer{}, ErrAnswerTimeNegative
	}
	return Answer{
		FlashcardID:      flashcardID,
		Correct:          correct,
		AnsweredAt:       answeredAt,
		TimeSpentSeconds: timeSpentSeconds,
	}, nil
}
