package scheduler

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	day := func(d, h, m int) time.Time {
		return time.Date(2026, 3, d, h, m, 0, 0, time.UTC)
	}

	testCases := []struct {
		name     string
		times    []string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "before first slot picks it",
			times:    []string{"09:00", "18:00"},
			now:      day(1, 7, 30),
			expected: day(1, 9, 0),
		},
		{
			name:     "between slots picks the later one",
			times:    []string{"09:00", "18:00"},
			now:      day(1, 12, 0),
			expected: day(1, 18, 0),
		},
		{
			name:     "after last slot rolls to tomorrow",
			times:    []string{"09:00", "18:00"},
			now:      day(1, 20, 0),
			expected: day(2, 9, 0),
		},
		{
			name:     "exactly on a slot moves past it",
			times:    []string{"09:00"},
			now:      day(1, 9, 0),
			expected: day(2, 9, 0),
		},
		{
			name:     "invalid entries are skipped",
			times:    []string{"nonsense", "18:00"},
			now:      day(1, 12, 0),
			expected: day(1, 18, 0),
		},
		{
			name:     "no valid times falls back to daily",
			times:    []string{"nonsense"},
			now:      day(1, 12, 0),
			expected: day(2, 12, 0),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(nil, tc.times)
			if got := s.nextRun(tc.now); !got.Equal(tc.expected) {
				t.Errorf("Expected %s, got %s", tc.expected, got)
			}
		})
	}
}
