package srs

import (
	"time"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// calculateNextInterval determines the interval in days until the
// flashcard is due again.
//
// The scheduler is a small state machine over the interval ladder,
// keyed per (user, flashcard):
//   - No prior history: the first (shortest) interval.
//   - Incorrect answer: full reset to the first interval, regardless of
//     the prior tier.
//   - Correct answer: advance one rung from the most recent record's
//     interval, saturating at the top rung.
//
// history is ordered most recent first, matching the review history
// store contract.
func calculateNextInterval(history []*domain.ReviewRecord, isCorrect bool, params *Params) int {
	if !isCorrect {
		return params.FirstInterval()
	}
	if len(history) == 0 {
		return params.FirstInterval()
	}
	return params.NextInterval(history[0].IntervalDays)
}

// calculateNextReviewDate converts an interval into the due date. The
// decision is made at UTC day granularity so the time of day a review
// happens never affects scheduling.
func calculateNextReviewDate(intervalDays int, now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, intervalDays)
}

// evaluateStruggling decides whether the card should be flagged for the
// struggling queue, or unflagged, based on the review being submitted and
// the recent history.
//
// A card is flagged when the most recent reviews are a run of failures of
// at least StrugglingMinConsecutiveFailures AND failures make up at least
// half of the attempts inside the window. The flag is cleared only by a
// correct review on a card already sitting at the clear tier or above:
// a flagged card resets to the bottom rung, so one correct answer climbs
// it back to the clear tier and a second correct answer at that tier
// demonstrates the sustained improvement that removes the flag.
func evaluateStruggling(
	history []*domain.ReviewRecord,
	isCorrect bool,
	params *Params,
) (flag, clear bool) {
	if isCorrect {
		clear = len(history) > 0 &&
			history[0].IntervalDays >= params.StrugglingClearIntervalDays
		return false, clear
	}

	// Outcomes inside the window, current review first.
	outcomes := make([]bool, 0, params.StrugglingWindow)
	outcomes = append(outcomes, isCorrect)
	for _, r := range history {
		if len(outcomes) == params.StrugglingWindow {
			break
		}
		outcomes = append(outcomes, r.IsCorrect)
	}

	consecutiveFailures := 0
	for _, correct := range outcomes {
		if correct {
			break
		}
		consecutiveFailures++
	}

	failures := 0
	for _, correct := range outcomes {
		if !correct {
			failures++
		}
	}

	flag = consecutiveFailures >= params.StrugglingMinConsecutiveFailures &&
		failures*2 >= len(outcomes)
	return flag, false
}
