package domain

// Hearts is a bounded life counter for a lesson session. Reaching zero
// fails the lesson. Hearts is immutable: Deduct and Refill return a new
// value rather than mutating in place.
type Hearts struct {
	current int
	max     int
}

// NewHearts creates a Hearts value with the given current and maximum
// counts. Returns a validation error if max is not positive or current
// falls outside [0, max].
func NewHearts(current, max int) (Hearts, error) {
	if max <= 0 {
		return Hearts{}, ErrHeartsMaxNotPositive
	}
	if current < 0 || current > max {
		return Hearts{}, ErrHeartsOutOfRange
	}
	return Hearts{current: current, max: max}, nil
}

// FullHearts creates a Hearts value at its maximum.
func FullHearts(max int) (Hearts, error) {
	return NewHearts(max, max)
}

// Current returns the current heart count.
func (h Hearts) Current() int { return h.current }

// Max returns the maximum heart count.
func (h Hearts) Max() int { return h.max }

// Deduct returns a new Hearts value with one heart removed, clamped at
// zero. Hearts never go negative.
func (h Hearts) Deduct() Hearts {
	if h.current == 0 {
		return h
	}
	return Hearts{current: h.current - 1, max: h.max}
}

// Refill returns a new Hearts value with n hearts added, capped at max.
// A non-positive n leaves the value unchanged.
func (h Hearts) Refill(n int) Hearts {
	if n <= 0 {
		return h
	}
	current := h.current + n
	if current > h.max {
		current = h.max
	}
	return Hearts{current: current, max: h.max}
}

// IsEmpty reports whether all hearts are exhausted.
func (h Hearts) IsEmpty() bool { return h.current == 0 }

// IsFull reports whether hearts are at their maximum.
func (h Hearts) IsFull() bool { return h.current == h.max }
