package domain

import "math"

// XP is a non-negative experience point amount. XP is immutable: Add and
// Multiply return a new value rather than mutating in place.
type XP struct {
	amount int
}

// NewXP creates an XP value. Returns a validation error if amount is negative.
func NewXP(amount int) (XP, error) {
	if amount < 0 {
		return XP{}, ErrXPNegative
	}
	return XP{amount: amount}, nil
}

// ZeroXP returns an XP value of zero.
func ZeroXP() XP { return XP{} }

// Amount returns the XP amount.
func (x XP) Amount() int { return x.amount }

// Add returns a new XP value increased by n. A negative n is treated as
// zero; XP amounts never decrease below zero.
func (x XP) Add(n int) XP {
	if n < 0 {
		return x
	}
	return XP{amount: x.amount + n}
}

// Multiply returns a new XP value scaled by factor, rounded to the nearest
// integer. The rounding rule is fixed here so reward totals are
// reproducible regardless of where the multiplier is applied.
func (x XP) Multiply(factor float64) (XP, error) {
	if factor < 0 {
		return XP{}, ErrXPFactorNegative
	}
	return XP{amount: int(math.Round(float64(x.amount) * factor))}, nil
}
