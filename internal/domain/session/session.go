package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// ReviewMode tags how the lesson is being presented. It is carried
// through to reporting and has no effect on session transitions.
type ReviewMode string

// Possible review modes.
const (
	ModeFlashcard ReviewMode = "flashcard"
	ModeQuiz      ReviewMode = "quiz"
	ModeRecall    ReviewMode = "recall"
)

// State is the lifecycle state of a lesson session.
type State string

// Possible session states. InProgress is the only non-terminal state.
const (
	StateInProgress State = "in_progress"
	StateCompleted  State = "completed"
	StateFailed     State = "failed"
)

// ErrNoHearts is returned when a session is started with no hearts
// remaining.
var ErrNoHearts = fmt.Errorf("%w: cannot start a session with no hearts", domain.ErrValidation)

// LessonSession drives one user through one lesson's flashcards. The
// flashcard sequence is fixed at start; the session mutates only through
// SubmitAnswer, which produces exactly one event per call.
//
// The session performs no locking of its own. The session store contract
// guarantees at most one in-flight session per (user, lesson) pair and
// serializes concurrent submissions.
type LessonSession struct {
	lessonID     uuid.UUID
	flashcards   []domain.Flashcard
	currentIndex int
	hearts       domain.Hearts
	answers      []domain.Answer
	reviewMode   ReviewMode
	startedAt    time.Time
	events       []Event
}

// Start creates a new session over the given flashcards with the given
// hearts. The flashcard set must be non-empty and every card valid;
// hearts must not be exhausted. The session begins in progress at index 0.
func Start(
	lessonID uuid.UUID,
	flashcards []domain.Flashcard,
	hearts domain.Hearts,
	mode ReviewMode,
	now time.Time,
) (*LessonSession, error) {
	if len(flashcards) == 0 {
		return nil, domain.NewError(domain.CodeLessonNoFlashcards,
			"cannot start a lesson with no flashcards")
	}
	for i := range flashcards {
		if err := flashcards[i].Validate(); err != nil {
			return nil, err
		}
	}
	if hearts.IsEmpty() {
		return nil, ErrNoHearts
	}

	cards := make([]domain.Flashcard, len(flashcards))
	copy(cards, flashcards)

	return &LessonSession{
		lessonID:   lessonID,
		flashcards: cards,
		hearts:     hearts,
		reviewMode: mode,
		startedAt:  now,
	}, nil
}

// SubmitAnswer records an answer for the current flashcard and advances
// the state machine. Exactly one event is returned per call, in priority
// order: LessonFailed, LessonCompleted, HeartLost, CardAdvanced. The
// returned event is also appended to the session's event log.
//
// Submitting after a terminal state is illegal and returns a domain error
// with code LESSON_ALREADY_COMPLETE.
func (s *LessonSession) SubmitAnswer(correct bool, timeSpentSeconds int, now time.Time) (Event, error) {
	if s.State() != StateInProgress {
		return nil, domain.NewError(domain.CodeLessonAlreadyComplete,
			"lesson session has already finished")
	}
	if s.currentIndex < 0 || s.currentIndex >= len(s.flashcards) {
		return nil, domain.NewError(domain.CodeLessonInvalidIndex,
			fmt.Sprintf("current index %d outside flashcard range", s.currentIndex))
	}

	card := s.flashcards[s.currentIndex]
	answer, err := domain.NewAnswer(card.ID, correct, now, timeSpentSeconds)
	if err != nil {
		return nil, err
	}
	s.answers = append(s.answers, answer)

	if !correct {
		s.hearts = s.hearts.Deduct()
		if s.hearts.IsEmpty() {
			accuracy, err := s.Accuracy()
			if err != nil {
				return nil, err
			}
			return s.record(LessonFailed{
				Accuracy:      accuracy.Percent(),
				CardsReviewed: len(s.answers),
			}), nil
		}
	}

	// Final card answered with hearts remaining finishes the lesson even
	// when the last answer was wrong.
	if s.currentIndex == len(s.flashcards)-1 {
		accuracy, err := s.Accuracy()
		if err != nil {
			return nil, err
		}
		return s.record(LessonCompleted{
			Accuracy:        accuracy.Percent(),
			HeartsRemaining: s.hearts.Current(),
			CardsReviewed:   len(s.answers),
			IsPerfect:       s.IsPerfect(),
		}), nil
	}

	s.currentIndex++
	if !correct {
		return s.record(HeartLost{HeartsRemaining: s.hearts.Current()}), nil
	}
	return s.record(CardAdvanced{
		CurrentIndex: s.currentIndex,
		TotalCards:   len(s.flashcards),
	}), nil
}

// record appends an event to the session log and returns it.
func (s *LessonSession) record(e Event) Event {
	s.events = append(s.events, e)
	return e
}

// State derives the session's lifecycle state. Exhausted hearts always
// mean failure, even when the last answer was for the final card.
func (s *LessonSession) State() State {
	if s.hearts.IsEmpty() {
		return StateFailed
	}
	if len(s.answers) == len(s.flashcards) {
		return StateCompleted
	}
	return StateInProgress
}

// IsComplete reports whether every flashcard was answered with hearts
// remaining.
func (s *LessonSession) IsComplete() bool { return s.State() == StateCompleted }

// IsFailed reports whether hearts ran out before completion.
func (s *LessonSession) IsFailed() bool { return s.State() == StateFailed }

// IsPerfect reports whether every recorded answer so far is correct. It
// can be provisionally true mid-session; callers deciding rewards must
// check it at completion time.
func (s *LessonSession) IsPerfect() bool {
	if len(s.answers) == 0 {
		return false
	}
	for _, a := range s.answers {
		if !a.Correct {
			return false
		}
	}
	return true
}

// ConsecutiveCorrect returns the length of the trailing run of correct
// answers. It feeds the combo multiplier at completion time.
func (s *LessonSession) ConsecutiveCorrect() int {
	run := 0
	for i := len(s.answers) - 1; i >= 0; i-- {
		if !s.answers[i].Correct {
			break
		}
		run++
	}
	return run
}

// Accuracy computes the share of attempted cards answered correctly.
// Sessions that failed early are scored only on cards actually attempted.
func (s *LessonSession) Accuracy() (domain.Accuracy, error) {
	correct := 0
	for _, a := range s.answers {
		if a.Correct {
			correct++
		}
	}
	return domain.AccuracyFromRatio(correct, len(s.answers))
}

// Progress reports answered/total cards.
func (s *LessonSession) Progress() (domain.Progress, error) {
	return domain.NewProgress(len(s.answers), len(s.flashcards))
}

// LessonID returns the lesson this session runs over.
func (s *LessonSession) LessonID() uuid.UUID { return s.lessonID }

// CurrentIndex returns the index of the flashcard awaiting an answer.
func (s *LessonSession) CurrentIndex() int { return s.currentIndex }

// CurrentCard returns the flashcard awaiting an answer. The second return
// is false once the session is terminal.
func (s *LessonSession) CurrentCard() (domain.Flashcard, bool) {
	if s.State() != StateInProgress {
		return domain.Flashcard{}, false
	}
	return s.flashcards[s.currentIndex], true
}

// Hearts returns the session's current hearts.
func (s *LessonSession) Hearts() domain.Hearts { return s.hearts }

// Answers returns a copy of the recorded answers in submission order.
func (s *LessonSession) Answers() []domain.Answer {
	out := make([]domain.Answer, len(s.answers))
	copy(out, s.answers)
	return out
}

// ReviewMode returns the presentation mode tag.
func (s *LessonSession) ReviewMode() ReviewMode { return s.reviewMode }

// StartedAt returns when the session was started. It is used only for
// elapsed-time reporting, never for transition decisions.
func (s *LessonSession) StartedAt() time.Time { return s.startedAt }

// TimeSpent reports elapsed wall-clock time since the session started.
func (s *LessonSession) TimeSpent(now time.Time) time.Duration {
	return now.Sub(s.startedAt)
}

// Events returns a copy of all events emitted since the last drain.
func (s *LessonSession) Events() []Event {
	out := make([]Event, len(s.events))
	copy(out, s.events)
	return out
}

// ClearEvents drains the event log.
func (s *LessonSession) ClearEvents() {
	s.events = nil
}
