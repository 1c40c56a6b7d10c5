package domain

// Streak counts consecutive qualifying days with at least one lesson
// completion. Streak is immutable: Increment and Reset return new values.
type Streak struct {
	count int
}

// NewStreak creates a Streak value. Returns a validation error if count
// is negative.
func NewStreak(count int) (Streak, error) {
	if count < 0 {
		return Streak{}, ErrStreakNegative
	}
	return Streak{count: count}, nil
}

// ZeroStreak returns a streak of zero days.
func ZeroStreak() Streak { return Streak{} }

// Count returns the number of consecutive days.
func (s Streak) Count() int { return s.count }

// Increment returns a new Streak extended by one day.
func (s Streak) Increment() Streak {
	return Streak{count: s.count + 1}
}

// Reset returns a zero streak.
func (s Streak) Reset() Streak { return Streak{} }
