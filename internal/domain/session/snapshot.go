package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// Snapshot is the serializable form of a LessonSession, suitable for a
// volatile session store. Restoring a snapshot and replaying the same
// answer sequence reproduces identical transition outputs.
//
// The event log is deliberately not part of the snapshot: events are a
// per-process delivery concern and are drained by the orchestration layer
// before the session is put away.
type Snapshot struct {
	LessonID     uuid.UUID          `json:"lesson_id"`
	Flashcards   []domain.Flashcard `json:"flashcards"`
	CurrentIndex int                `json:"current_index"`
	Hearts       int                `json:"hearts"`
	MaxHearts    int                `json:"max_hearts"`
	Answers      []domain.Answer    `json:"answers"`
	ReviewMode   ReviewMode         `json:"review_mode"`
	StartedAt    time.Time          `json:"started_at"`
}

// Snapshot captures the session's current state.
func (s *LessonSession) Snapshot() Snapshot {
	cards := make([]domain.Flashcard, len(s.flashcards))
	copy(cards, s.flashcards)
	answers := make([]domain.Answer, len(s.answers))
	copy(answers, s.answers)

	return Snapshot{
		LessonID:     s.lessonID,
		Flashcards:   cards,
		CurrentIndex: s.currentIndex,
		Hearts:       s.hearts.Current(),
		MaxHearts:    s.hearts.Max(),
		Answers:      answers,
		ReviewMode:   s.reviewMode,
		StartedAt:    s.startedAt,
	}
}

// Restore rebuilds a session from a snapshot, re-validating the same
// invariants Start enforces plus the index bound.
func Restore(snap Snapshot) (*LessonSession, error) {
	if len(snap.Flashcards) == 0 {
		return nil, domain.NewError(domain.CodeLessonNoFlashcards,
			"cannot restore a session with no flashcards")
	}
	if snap.CurrentIndex < 0 || snap.CurrentIndex >= len(snap.Flashcards) {
		return nil, domain.NewError(domain.CodeLessonInvalidIndex,
			"restored index outside flashcard range")
	}

	hearts, err := domain.NewHearts(snap.Hearts, snap.MaxHearts)
	if err != nil {
		return nil, err
	}

	cards := make([]domain.Flashcard, len(snap.Flashcards))
	copy(cards, snap.Flashcards)
	answers := make([]domain.Answer, len(snap.Answers))
	copy(answers, snap.Answers)

	return &LessonSession{
		lessonID:     snap.LessonID,
		flashcards:   cards,
		currentIndex: snap.CurrentIndex,
		hearts:       hearts,
		answers:      answers,
		reviewMode:   snap.ReviewMode,
		startedAt:    snap.StartedAt,
	}, nil
}
