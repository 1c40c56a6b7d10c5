package domain

import (
	"errors"
	"testing"
)

func TestNewHearts(t *testing.T) {
	t.Parallel()

	if _, err := NewHearts(3, 0); !errors.Is(err, ErrHeartsMaxNotPositive) {
		t.Errorf("Expected ErrHeartsMaxNotPositive, got %v", err)
	}
	if _, err := NewHearts(6, 5); !errors.Is(err, ErrHeartsOutOfRange) {
		t.Errorf("Expected ErrHeartsOutOfRange, got %v", err)
	}
	if _, err := NewHearts(-1, 5); !errors.Is(err, ErrHeartsOutOfRange) {
		t.Errorf("Expected ErrHeartsOutOfRange, got %v", err)
	}

	h, err := NewHearts(3, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if h.Current() != 3 || h.Max() != 5 {
		t.Errorf("Expected 3/5 hearts, got %d/%d", h.Current(), h.Max())
	}
}

func TestHeartsDeductClampsAtZero(t *testing.T) {
	t.Parallel()

	h, err := NewHearts(2, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	h = h.Deduct()
	if h.Current() != 1 {
		t.Errorf("Expected 1 heart, got %d", h.Current())
	}

	h = h.Deduct()
	if !h.IsEmpty() {
		t.Errorf("Expected empty hearts, got %d", h.Current())
	}

	// Deducting past zero must not go negative.
	h = h.Deduct()
	if h.Current() != 0 {
		t.Errorf("Expected hearts clamped at 0, got %d", h.Current())
	}
}

func TestHeartsRefillCapsAtMax(t *testing.T) {
	t.Parallel()

	h, err := NewHearts(3, 5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	h = h.Refill(10)
	if !h.IsFull() {
		t.Errorf("Expected full hearts, got %d/%d", h.Current(), h.Max())
	}

	// Non-positive refill is a no-op.
	h = h.Refill(-2)
	if h.Current() != 5 {
		t.Errorf("Expected 5 hearts, got %d", h.Current())
	}
}

func TestXP(t *testing.T) {
	t.Parallel()

	if _, err := NewXP(-10); !errors.Is(err, ErrXPNegative) {
		t.Errorf("Expected ErrXPNegative, got %v", err)
	}

	x, err := NewXP(10)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	x = x.Add(25)
	if x.Amount() != 35 {
		t.Errorf("Expected 35 XP, got %d", x.Amount())
	}

	// Multiply rounds to nearest integer.
	scaled, err := x.Multiply(1.5)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if scaled.Amount() != 53 { // 35 * 1.5 = 52.5 → 53
		t.Errorf("Expected 53 XP, got %d", scaled.Amount())
	}

	if _, err := x.Multiply(-1); !errors.Is(err, ErrXPFactorNegative) {
		t.Errorf("Expected ErrXPFactorNegative, got %v", err)
	}

	// Original value is untouched by Add/Multiply.
	if x.Amount() != 35 {
		t.Errorf("Expected original XP to remain 35, got %d", x.Amount())
	}
}

func TestStreak(t *testing.T) {
	t.Parallel()

	if _, err := NewStreak(-1); !errors.Is(err, ErrStreakNegative) {
		t.Errorf("Expected ErrStreakNegative, got %v", err)
	}

	s, err := NewStreak(6)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if s.Increment().Count() != 7 {
		t.Errorf("Expected incremented streak of 7, got %d", s.Increment().Count())
	}
	if s.Reset().Count() != 0 {
		t.Errorf("Expected reset streak of 0, got %d", s.Reset().Count())
	}
	if s.Count() != 6 {
		t.Errorf("Expected original streak to remain 6, got %d", s.Count())
	}
}
