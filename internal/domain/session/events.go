// Package session contains the lesson-session aggregate: the state
// machine that drives a user through one lesson's flashcards, one answer
// at a time, emitting exactly one domain event per submission.
package session

// EventType identifies the variant of a session event.
type EventType string

// Possible event types.
const (
	EventTypeHeartLost       EventType = "heart_lost"
	EventTypeCardAdvanced    EventType = "card_advanced"
	EventTypeLessonCompleted EventType = "lesson_completed"
	EventTypeLessonFailed    EventType = "lesson_failed"
)

// Event is the closed set of domain events a lesson session can emit.
// The four variants below are the only implementations; callers dispatch
// with a type switch.
type Event interface {
	Type() EventType

	// sealed prevents implementations outside this package, keeping the
	// variant set closed so type switches stay exhaustive.
	sealed()
}

// HeartLost is emitted when an incorrect answer costs a heart but the
// session survives.
type HeartLost struct {
	HeartsRemaining int `json:"hearts_remaining"`
}

// CardAdvanced is emitted when the session moves on to the next flashcard.
type CardAdvanced struct {
	CurrentIndex int `json:"current_index"`
	TotalCards   int `json:"total_cards"`
}

// LessonCompleted is the terminal event for a session that answered the
// last flashcard with at least one heart remaining.
type LessonCompleted struct {
	Accuracy        int  `json:"accuracy"`
	HeartsRemaining int  `json:"hearts_remaining"`
	CardsReviewed   int  `json:"cards_reviewed"`
	IsPerfect       bool `json:"is_perfect"`
}

// LessonFailed is the terminal event for a session whose hearts ran out
// before the last flashcard was answered. Accuracy covers only the cards
// actually attempted.
type LessonFailed struct {
	Accuracy      int `json:"accuracy"`
	CardsReviewed int `json:"cards_reviewed"`
}

// Type implements Event.
func (e HeartLost) Type() EventType { return EventTypeHeartLost }

// Type implements Event.
func (e CardAdvanced) Type() EventType { return EventTypeCardAdvanced }

// Type implements Event.
func (e LessonCompleted) Type() EventType { return EventTypeLessonCompleted }

// Type implements Event.
func (e LessonFailed) Type() EventType { return EventTypeLessonFailed }

func (e HeartLost) sealed()       {}
func (e CardAdvanced) sealed()    {}
func (e LessonCompleted) sealed() {}
func (e LessonFailed) sealed()    {}

// IsTerminal reports whether the event ends the session.
func IsTerminal(e Event) bool {
	switch e.(type) {
	case LessonCompleted, LessonFailed:
		return true
	default:
		return false
	}
}
