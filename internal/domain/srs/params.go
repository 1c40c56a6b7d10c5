package srs

// Params defines all configurable parameters for the review scheduler.
type Params struct {
	// IntervalLadder is the ordered set of interval tiers in days. A
	// correct review advances one rung; the top rung saturates.
	IntervalLadder []int

	// StrugglingWindow is how many recent reviews (including the one being
	// submitted) are considered when deciding whether a card is struggling.
	StrugglingWindow int

	// StrugglingMinConsecutiveFailures is the minimum run of most-recent
	// failures before a card can be flagged.
	StrugglingMinConsecutiveFailures int

	// StrugglingClearIntervalDays is the interval tier a correct review
	// must reach before a struggling flag is cleared. Gating on the higher
	// tier means removal requires sustained improvement, not a single
	// correct answer from the bottom rung.
	StrugglingClearIntervalDays int
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		IntervalLadder:                   []int{1, 3, 7},
		StrugglingWindow:                 5,
		StrugglingMinConsecutiveFailures: 2,
		StrugglingClearIntervalDays:      3,
	}
}

// FirstInterval returns the bottom rung of the ladder.
func (p *Params) FirstInterval() int {
	return p.IntervalLadder[0]
}

// NextInterval returns the rung above current, saturating at the top.
// An unknown current interval restarts from the bottom rung.
func (p *Params) NextInterval(current int) int {
	for i, days := range p.IntervalLadder {
		if days == current {
			if i+1 < len(p.IntervalLadder) {
				return p.IntervalLadder[i+1]
			}
			return days
		}
	}
	return p.FirstInterval()
}
