package domain

import (
	"github.com/google/uuid"
)

// Difficulty grades how hard a flashcard is considered to be. It is
// authored content, carried through to reporting, and has no effect on
// session transitions.
type Difficulty string

// Possible difficulty values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Flashcard is a single question/answer pair within a lesson. The sequence
// of flashcards for a session is fixed at session start.
type Flashcard struct {
	ID         uuid.UUID  `json:"id"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

// Validate checks if the Flashcard has valid data.
// Returns an error if any field fails validation.
func (f *Flashcard) Validate() error {
	if f.ID == uuid.Nil {
		return ErrFlashcardIDEmpty
	}
	if f.Question == "" {
		return ErrFlashcardQuestionEmpty
	}
	if f.Answer == "" {
		return ErrFlashcardAnswerEmpty
	}
	return nil
}
