package domain

import "math"

// Accuracy is an integer percentage in [0, 100] of attempted cards
// answered correctly.
type Accuracy struct {
	percent int
}

// NewAccuracy creates an Accuracy from an integer percentage. Returns a
// validation error if percent falls outside [0, 100].
func NewAccuracy(percent int) (Accuracy, error) {
	if percent < 0 || percent > 100 {
		return Accuracy{}, ErrAccuracyOutOfRange
	}
	return Accuracy{percent: percent}, nil
}

// AccuracyFromRatio derives an Accuracy from correct/total counts, rounded
// to the nearest integer percent. A zero total yields 0, never NaN.
func AccuracyFromRatio(correct, total int) (Accuracy, error) {
	if correct < 0 || total < 0 {
		return Accuracy{}, ErrAccuracyNegativeCounts
	}
	if correct > total {
		return Accuracy{}, ErrAccuracyOutOfRange
	}
	if total == 0 {
		return Accuracy{}, nil
	}
	percent := int(math.Round(float64(correct) / float64(total) * 100))
	return Accuracy{percent: percent}, nil
}

// Percent returns the accuracy as an integer percentage.
func (a Accuracy) Percent() int { return a.percent }

// IsPerfect reports whether accuracy is exactly 100%.
func (a Accuracy) IsPerfect() bool { return a.percent == 100 }

// Progress captures completed/total counts for a unit of work, with
// completed never exceeding total.
type Progress struct {
	completed int
	total     int
}

// NewProgress creates a Progress value. Returns a validation error if
// either count is negative or completed exceeds total.
func NewProgress(completed, total int) (Progress, error) {
	if completed < 0 || total < 0 {
		return Progress{}, ErrProgressNegative
	}
	if completed > total {
		return Progress{}, ErrProgressExceedsTotal
	}
	return Progress{completed: completed, total: total}, nil
}

// Completed returns the number of completed items.
func (p Progress) Completed() int { return p.completed }

// Total returns the total number of items.
func (p Progress) Total() int { return p.total }

// IsDone reports whether all items are completed.
func (p Progress) IsDone() bool { return p.total > 0 && p.completed == p.total }
