// Package hearts owns the heart-refill cadence: how many hearts have
// regenerated since the last refill, when the next one lands and how far
// along it is. The session state machine never sees any of this; it only
// consumes the resulting Hearts value.
package hearts

import (
	"time"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// Policy configures the refill cadence.
type Policy struct {
	// RefillInterval is the wall-clock time to regenerate one heart.
	RefillInterval time.Duration
}

// DefaultPolicy returns the standard cadence of one heart per 30 minutes.
func DefaultPolicy() Policy {
	return Policy{RefillInterval: 30 * time.Minute}
}

// Service computes refill decisions from elapsed wall-clock time.
type Service struct {
	policy Policy
}

// NewService creates a refill service with the given policy. A zero or
// negative interval falls back to the default cadence.
func NewService(policy Policy) *Service {
	if policy.RefillInterval <= 0 {
		policy = DefaultPolicy()
	}
	return &Service{policy: policy}
}

// Accrued returns how many hearts have regenerated since lastRefill,
// capped at the number currently missing.
func (s *Service) Accrued(current domain.Hearts, lastRefill, now time.Time) int {
	if current.IsFull() {
		return 0
	}
	elapsed := now.Sub(lastRefill)
	if elapsed <= 0 {
		return 0
	}
	accrued := int(elapsed / s.policy.RefillInterval)
	missing := current.Max() - current.Current()
	if accrued > missing {
		return missing
	}
	return accrued
}

// CanRefill reports whether at least one heart has regenerated.
func (s *Service) CanRefill(current domain.Hearts, lastRefill, now time.Time) bool {
	return s.Accrued(current, lastRefill, now) > 0
}

// NextRefillAt returns when the next heart lands. The second return is
// false when hearts are already full.
func (s *Service) NextRefillAt(current domain.Hearts, lastRefill, now time.Time) (time.Time, bool) {
	if current.IsFull() {
		return time.Time{}, false
	}
	next := lastRefill.Add(s.policy.RefillInterval)
	for !next.After(now) {
		next = next.Add(s.policy.RefillInterval)
	}
	return next, true
}

// Progress returns the fraction [0, 1) of the way toward the next heart,
// or 0 when hearts are full.
func (s *Service) Progress(current domain.Hearts, lastRefill, now time.Time) float64 {
	if current.IsFull() {
		return 0
	}
	elapsed := now.Sub(lastRefill)
	if elapsed <= 0 {
		return 0
	}
	remainder := elapsed % s.policy.RefillInterval
	return float64(remainder) / float64(s.policy.RefillInterval)
}

// Apply folds the accrued refill into the progress aggregate and resets
// its refill timestamp. Returns the number of hearts added.
func (s *Service) Apply(progress *domain.UserProgress, now time.Time) int {
	accrued := s.Accrued(progress.Hearts, progress.LastHeartRefill, now)
	if accrued == 0 {
		return 0
	}
	progress.RefillHearts(accrued, now)
	return accrued
}
