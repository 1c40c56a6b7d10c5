package xp

import (
	"github.com/lingualoop/lingualoop-api/internal/domain"
)

// Service defines the interface for XP reward calculations.
type Service interface {
	// CalculateLessonXP computes the reward for one lesson completion:
	// the lesson's base reward, plus a flat accuracy tier bonus, plus a
	// flawless bonus when the whole lesson was answered correctly at
	// 100% accuracy.
	CalculateLessonXP(baseReward int, accuracy domain.Accuracy, isPerfect bool) (domain.XP, error)

	// CalculateTotalXP layers gamification state onto a base amount:
	// the streak milestone bonus is added first, then the combo
	// multiplier scales the subtotal, then the flat perfect bonus is
	// added. The multiplier applies to base plus streak bonus, not to
	// base alone.
	CalculateTotalXP(
		base domain.XP,
		streak domain.Streak,
		isPerfect bool,
		consecutiveCorrect int,
	) (domain.XP, error)

	// CalculateAccuracyBonus returns the flat bonus for an accuracy tier.
	CalculateAccuracyBonus(accuracy domain.Accuracy) int

	// CalculatePerfectBonus returns the flat bonus for a flawless lesson,
	// zero otherwise.
	CalculatePerfectBonus(isPerfect bool) int
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a new XP service with default reward values.
func NewDefaultService() Service {
	return &defaultService{params: NewDefaultParams()}
}

// NewServiceWithParams creates a new XP service with custom reward values.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// CalculateLessonXP implements the Service interface.
func (s *defaultService) CalculateLessonXP(
	baseReward int,
	accuracy domain.Accuracy,
	isPerfect bool,
) (domain.XP, error) {
	total, err := domain.NewXP(baseReward)
	if err != nil {
		return domain.XP{}, err
	}

	total = total.Add(s.CalculateAccuracyBonus(accuracy))

	// The flawless bonus requires both a clean answer sheet and 100%
	// accuracy; it stacks with the flawless tier bonus above.
	if isPerfect && accuracy.IsPerfect() {
		total = total.Add(s.params.FlawlessBonus)
	}

	return total, nil
}

// CalculateTotalXP implements the Service interface.
func (s *defaultService) CalculateTotalXP(
	base domain.XP,
	streak domain.Streak,
	isPerfect bool,
	consecutiveCorrect int,
) (domain.XP, error) {
	total := base.Add(s.streakBonus(streak))

	total, err := total.Multiply(s.comboFactor(consecutiveCorrect))
	if err != nil {
		return domain.XP{}, err
	}

	total = total.Add(s.CalculatePerfectBonus(isPerfect))
	return total, nil
}

// CalculateAccuracyBonus implements the Service interface.
func (s *defaultService) CalculateAccuracyBonus(accuracy domain.Accuracy) int {
	percent := accuracy.Percent()
	switch {
	case percent == 100:
		return s.params.FlawlessTierBonus
	case percent > 90:
		return s.params.HighTierBonus
	case percent > 80:
		return s.params.MidTierBonus
	default:
		return 0
	}
}

// CalculatePerfectBonus implements the Service interface.
func (s *defaultService) CalculatePerfectBonus(isPerfect bool) int {
	if !isPerfect {
		return 0
	}
	return s.params.PerfectBonus
}

// streakBonus returns the milestone bonus for the highest threshold the
// streak has reached.
func (s *defaultService) streakBonus(streak domain.Streak) int {
	for _, sb := range s.params.StreakBonuses {
		if streak.Count() >= sb.Threshold {
			return sb.Bonus
		}
	}
	return 0
}

// comboFactor returns the multiplier for the highest threshold the
// consecutive-correct count has reached, or 1.0 when no tier applies.
func (s *defaultService) comboFactor(consecutiveCorrect int) float64 {
	for _, cm := range s.params.ComboMultipliers {
		if consecutiveCorrect >= cm.Threshold {
			return cm.Factor
		}
	}
	return 1.0
}
