package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is the per-user, per-path aggregate of gamification state:
// hearts, total XP, streak, heart-refill bookkeeping and position pointers.
// It is never deleted; absent rows are recreated with defaults.
type UserProgress struct {
	UserID           uuid.UUID  `json:"user_id"`
	PathID           uuid.UUID  `json:"path_id"`
	Hearts           Hearts     `json:"hearts"`
	XP               XP         `json:"xp"`
	Streak           Streak     `json:"streak"`
	LastHeartRefill  time.Time  `json:"last_heart_refill"`
	LastActivityDate time.Time  `json:"last_activity_date"`
	CurrentUnitID    *uuid.UUID `json:"current_unit_id,omitempty"`   // position pointer, not ownership
	CurrentLessonID  *uuid.UUID `json:"current_lesson_id,omitempty"` // position pointer, not ownership
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// NewUserProgress creates default progress for a user on a path: full
// hearts, zero XP, zero streak. Returns an error if validation fails.
func NewUserProgress(userID, pathID uuid.UUID, maxHearts int, now time.Time) (*UserProgress, error) {
	hearts, err := FullHearts(maxHearts)
	if err != nil {
		return nil, err
	}

	progress := &UserProgress{
		UserID:          userID,
		PathID:          pathID,
		Hearts:          hearts,
		XP:              ZeroXP(),
		Streak:          ZeroStreak(),
		LastHeartRefill: now,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the UserProgress has valid data.
// Returns an error if any field fails validation.
func (p *UserProgress) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrProgressUserIDEmpty
	}
	if p.PathID == uuid.Nil {
		return ErrProgressPathIDEmpty
	}
	return nil
}

// ApplyLessonCompletion folds a finished lesson into the aggregate: the
// session's remaining hearts replace the stored count, earned XP is added
// and the activity timestamp advances.
func (p *UserProgress) ApplyLessonCompletion(heartsRemaining Hearts, xpEarned int, now time.Time) {
	p.Hearts = heartsRemaining
	p.XP = p.XP.Add(xpEarned)
	p.LastActivityDate = now
	p.UpdatedAt = now
}

// ApplyLessonFailure folds a failed lesson into the aggregate: the spent
// hearts replace the stored count and the activity timestamp advances.
// No XP is awarded for a failed run.
func (p *UserProgress) ApplyLessonFailure(heartsRemaining Hearts, now time.Time) {
	p.Hearts = heartsRemaining
	p.LastActivityDate = now
	p.UpdatedAt = now
}

// RefillHearts applies a computed replenishment of n hearts and resets the
// refill timestamp. The refill cadence itself is owned by the refill
// service, not the aggregate.
func (p *UserProgress) RefillHearts(n int, now time.Time) {
	if n <= 0 {
		return
	}
	p.Hearts = p.Hearts.Refill(n)
	p.LastHeartRefill = now
	p.UpdatedAt = now
}

// UpdateStreak replaces the stored streak with the recomputed value.
// Returns true if the value actually changed, so callers can skip
// redundant writes.
func (p *UserProgress) UpdateStreak(streak Streak, now time.Time) bool {
	if p.Streak.Count() == streak.Count() {
		return false
	}
	p.Streak = streak
	p.UpdatedAt = now
	return true
}

// SetPosition moves the user's position pointers to the given unit and
// lesson. Either pointer may be nil to clear it.
func (p *UserProgress) SetPosition(unitID, lessonID *uuid.UUID, now time.Time) {
	p.CurrentUnitID = unitID
	p.CurrentLessonID = lessonID
	p.UpdatedAt = now
}
