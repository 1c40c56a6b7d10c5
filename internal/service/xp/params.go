// Package xp computes gamification rewards for lesson completions and
// review runs. All calculations are pure functions of their inputs; the
// exact ordering of bonus addition and multiplier application is part of
// the contract, since reordering changes totals.
package xp

// StreakBonus awards a flat XP bonus once a streak reaches a threshold.
type StreakBonus struct {
	Threshold int
	Bonus     int
}

// ComboMultiplier scales the running XP total once the consecutive
// correct-answer count reaches a threshold.
type ComboMultiplier struct {
	Threshold int
	Factor    float64
}

// Params defines all configurable reward values.
type Params struct {
	// Accuracy tier bonuses for the lesson-completion path.
	FlawlessTierBonus int // accuracy == 100
	HighTierBonus     int // accuracy > 90
	MidTierBonus      int // accuracy > 80

	// FlawlessBonus stacks on top of the flawless tier bonus when the
	// whole lesson was answered correctly.
	FlawlessBonus int

	// PerfectBonus is the flat increment added at the end of the total-XP
	// path for a flawless lesson.
	PerfectBonus int

	// StreakBonuses are checked highest threshold first; only the first
	// match applies.
	StreakBonuses []StreakBonus

	// ComboMultipliers are checked highest threshold first; only the
	// first match applies.
	ComboMultipliers []ComboMultiplier
}

// NewDefaultParams creates a new Params instance with default values.
func NewDefaultParams() *Params {
	return &Params{
		FlawlessTierBonus: 15,
		HighTierBonus:     10,
		MidTierBonus:      5,
		FlawlessBonus:     10,
		PerfectBonus:      25,
		StreakBonuses: []StreakBonus{
			{Threshold: 100, Bonus: 100},
			{Threshold: 30, Bonus: 30},
			{Threshold: 14, Bonus: 20},
			{Threshold: 7, Bonus: 15},
			{Threshold: 3, Bonus: 10},
		},
		ComboMultipliers: []ComboMultiplier{
			{Threshold: 10, Factor: 2.0},
			{Threshold: 5, Factor: 1.5},
			{Threshold: 3, Factor: 1.2},
		},
	}
}
