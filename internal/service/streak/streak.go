// Package streak recomputes consecutive-day lesson streaks on access.
// There is no background job: callers invoke Recalculate whenever streak
// freshness is needed (on lesson completion and on stats reads) and
// persist the result only when it changed.
package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// maxWalkDays bounds the backward walk over completion history. A streak
// longer than a year is reported as a year.
const maxWalkDays = 365

// CompletionChecker reports whether the user completed at least one
// lesson on the given UTC calendar day. The day argument is always
// midnight UTC.
type CompletionChecker func(ctx context.Context, day time.Time) (bool, error)

// Recalculate computes the user's current streak as of now.
//
// Days are UTC calendar days. If the user completed a lesson today, the
// streak is the count of consecutive completed days walking backward from
// today. If they completed one yesterday but not yet today, the streak
// holds at 1: at risk, not broken. Otherwise it is 0.
func Recalculate(ctx context.Context, now time.Time, completedOn CompletionChecker) (domain.Streak, error) {
	today := now.UTC().Truncate(24 * time.Hour)

	doneToday, err := completedOn(ctx, today)
	if err != nil {
		return domain.Streak{}, fmt.Errorf("failed to check today's completions: %w", err)
	}

	if !doneToday {
		yesterday := today.AddDate(0, 0, -1)
		doneYesterday, err := completedOn(ctx, yesterday)
		if err != nil {
			return domain.Streak{}, fmt.Errorf("failed to check yesterday's completions: %w", err)
		}
		if doneYesterday {
			return domain.NewStreak(1)
		}
		return domain.ZeroStreak(), nil
	}

	count := 0
	for day := today; count < maxWalkDays; day = day.AddDate(0, 0, -1) {
		done, err := completedOn(ctx, day)
		if err != nil {
			return domain.Streak{}, fmt.Errorf("failed to check completions for %s: %w",
				day.Format("2006-01-02"), err)
		}
		if !done {
			break
		}
		count++
	}

	return domain.NewStreak(count)
}
