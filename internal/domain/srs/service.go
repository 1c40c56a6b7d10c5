package srs

import (
	"errors"
	"time"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// Common errors
var (
	ErrUnorderedHistory = errors.New("review history must be ordered most recent first")
)

// Decision is the scheduler's output for one review submission. It is
// pure data: the orchestration layer persists the review record and
// applies the struggling-queue changes, keeping this package free of
// storage dependencies.
type Decision struct {
	// IntervalDays is the new interval tier for the card.
	IntervalDays int

	// NextReviewDate is when the card becomes due again, at UTC day
	// granularity.
	NextReviewDate time.Time

	// FlagStruggling is set when repeated recent failures indicate the
	// card should join the struggling queue.
	FlagStruggling bool

	// ClearStruggling is set when the review demonstrates sustained
	// improvement and any struggling flag should be removed.
	ClearStruggling bool
}

// Service defines the interface for review scheduling operations.
type Service interface {
	// CalculateNextInterval computes the scheduling decision for a review
	// being submitted now, given the card's ordered history (most recent
	// first).
	CalculateNextInterval(
		history []*domain.ReviewRecord,
		isCorrect bool,
		now time.Time,
	) (Decision, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new scheduler service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new scheduler service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// CalculateNextInterval implements the Service interface.
func (s *defaultService) CalculateNextInterval(
	history []*domain.ReviewRecord,
	isCorrect bool,
	now time.Time,
) (Decision, error) {
	// Guard the ordering contract; a history sorted oldest-first would
	// silently advance from the wrong tier.
	for i := 1; i < len(history); i++ {
		if history[i].ReviewDate.After(history[i-1].ReviewDate) {
			return Decision{}, ErrUnorderedHistory
		}
	}

	interval := calculateNextInterval(history, isCorrect, s.params)
	flag, clear := evaluateStruggling(history, isCorrect, s.params)

	return Decision{
		IntervalDays:    interval,
		NextReviewDate:  calculateNextReviewDate(interval, now),
		FlagStruggling:  flag,
		ClearStruggling: clear,
	}, nil
}
