package xp

import (
	"testing"

	"github.com/lingualoop/lingualoop-api/internal/domain"
)

func accuracy(t *testing.T, percent int) domain.Accuracy {
	t.Helper()
	a, err := domain.NewAccuracy(percent)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return a
}

func streak(t *testing.T, count int) domain.Streak {
	t.Helper()
	s, err := domain.NewStreak(count)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return s
}

func xpAmount(t *testing.T, amount int) domain.XP {
	t.Helper()
	x, err := domain.NewXP(amount)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	return x
}

func TestCalculateLessonXP(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	testCases := []struct {
		name      string
		base      int
		accuracy  int
		isPerfect bool
		expected  int
	}{
		{
			name:      "flawless run stacks tier and flawless bonuses",
			base:      10,
			accuracy:  100,
			isPerfect: true,
			expected:  35, // 10 + 15 + 10
		},
		{
			name:      "full accuracy without clean sheet earns tier only",
			base:      10,
			accuracy:  100,
			isPerfect: false,
			expected:  25, // 10 + 15
		},
		{
			name:     "high tier above 90",
			base:     10,
			accuracy: 95,
			expected: 20, // 10 + 10
		},
		{
			name:     "mid tier above 80",
			base:     10,
			accuracy: 85,
			expected: 15, // 10 + 5
		},
		{
			name:     "boundary 90 falls into mid tier",
			base:     10,
			accuracy: 90,
			expected: 15, // 10 + 5
		},
		{
			name:     "boundary 80 earns no bonus",
			base:     10,
			accuracy: 80,
			expected: 10,
		},
		{
			name:     "low accuracy earns base only",
			base:     10,
			accuracy: 50,
			expected: 10,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CalculateLessonXP(tc.base, accuracy(t, tc.accuracy), tc.isPerfect)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.Amount() != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got.Amount())
			}
		})
	}
}

func TestCalculateTotalXP(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	testCases := []struct {
		name               string
		base               int
		streak             int
		isPerfect          bool
		consecutiveCorrect int
		expected           int
	}{
		{
			name:     "no modifiers passes base through",
			base:     50,
			expected: 50,
		},
		{
			name:     "streak milestone added before multiplier",
			base:     50,
			streak:   7,
			expected: 65, // 50 + 15
		},
		{
			name:               "combo multiplier scales base plus streak bonus",
			base:               50,
			streak:             7,
			consecutiveCorrect: 5,
			expected:           98, // (50 + 15) * 1.5 = 97.5 rounded
		},
		{
			name:               "perfect bonus is flat and added last",
			base:               50,
			streak:             7,
			isPerfect:          true,
			consecutiveCorrect: 5,
			expected:           123, // (50 + 15) * 1.5 + 25
		},
		{
			name:               "top combo tier doubles",
			base:               40,
			consecutiveCorrect: 12,
			expected:           80,
		},
		{
			name:               "combo below lowest tier leaves total unchanged",
			base:               40,
			consecutiveCorrect: 2,
			expected:           40,
		},
		{
			name:     "hundred day streak milestone",
			base:     10,
			streak:   120,
			expected: 110, // 10 + 100
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := svc.CalculateTotalXP(
				xpAmount(t, tc.base),
				streak(t, tc.streak),
				tc.isPerfect,
				tc.consecutiveCorrect,
			)
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got.Amount() != tc.expected {
				t.Errorf("Expected %d XP, got %d", tc.expected, got.Amount())
			}
		})
	}
}

func TestNarrowHelpers(t *testing.T) {
	t.Parallel()
	svc := NewDefaultService()

	if got := svc.CalculateAccuracyBonus(accuracy(t, 100)); got != 15 {
		t.Errorf("Expected 15, got %d", got)
	}
	if got := svc.CalculateAccuracyBonus(accuracy(t, 91)); got != 10 {
		t.Errorf("Expected 10, got %d", got)
	}
	if got := svc.CalculatePerfectBonus(true); got != 25 {
		t.Errorf("Expected 25, got %d", got)
	}
	if got := svc.CalculatePerfectBonus(false); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
}
