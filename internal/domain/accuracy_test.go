package domain

import (
	"errors"
	"testing"
)

func TestAccuracyFromRatio(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		correct  int
		total    int
		expected int
		wantErr  error
	}{
		{
			name:     "zero attempts yields zero not NaN",
			correct:  0,
			total:    0,
			expected: 0,
		},
		{
			name:     "half correct rounds to 50",
			correct:  1,
			total:    2,
			expected: 50,
		},
		{
			name:     "two thirds rounds to 67",
			correct:  2,
			total:    3,
			expected: 67,
		},
		{
			name:     "one third rounds to 33",
			correct:  1,
			total:    3,
			expected: 33,
		},
		{
			name:     "all correct is 100",
			correct:  5,
			total:    5,
			expected: 100,
		},
		{
			name:    "negative counts rejected",
			correct: -1,
			total:   3,
			wantErr: ErrAccuracyNegativeCounts,
		},
		{
			name:    "correct exceeding total rejected",
			correct: 4,
			total:   3,
			wantErr: ErrAccuracyOutOfRange,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			acc, err := AccuracyFromRatio(tc.correct, tc.total)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("Expected error %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if acc.Percent() != tc.expected {
				t.Errorf("Expected %d%%, got %d%%", tc.expected, acc.Percent())
			}
		})
	}
}

func TestAccuracyValidation(t *testing.T) {
	t.Parallel()

	if _, err := NewAccuracy(101); !errors.Is(err, ErrAccuracyOutOfRange) {
		t.Errorf("Expected ErrAccuracyOutOfRange, got %v", err)
	}
	if _, err := NewAccuracy(-1); !errors.Is(err, ErrAccuracyOutOfRange) {
		t.Errorf("Expected ErrAccuracyOutOfRange, got %v", err)
	}
	if !IsValidationError(func() error { _, err := NewAccuracy(200); return err }()) {
		t.Error("Expected out-of-range accuracy to be a validation error")
	}

	acc, err := NewAccuracy(100)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !acc.IsPerfect() {
		t.Error("Expected 100% accuracy to be perfect")
	}
}

func TestProgress(t *testing.T) {
	t.Parallel()

	if _, err := NewProgress(5, 3); !errors.Is(err, ErrProgressExceedsTotal) {
		t.Errorf("Expected ErrProgressExceedsTotal, got %v", err)
	}
	if _, err := NewProgress(-1, 3); !errors.Is(err, ErrProgressNegative) {
		t.Errorf("Expected ErrProgressNegative, got %v", err)
	}

	p, err := NewProgress(3, 3)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !p.IsDone() {
		t.Error("Expected 3/3 progress to be done")
	}

	empty, err := NewProgress(0, 0)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if empty.IsDone() {
		t.Error("Expected 0/0 progress to not be done")
	}
}
