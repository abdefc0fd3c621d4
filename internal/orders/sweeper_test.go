package orders

import (
	"testing"
	"time"
)

func TestCancelCutoff(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	want := time.Date(2025, 6, 2, 11, 45, 0, 0, time.UTC)
	if got := CancelCutoff(start); !got.Equal(want) {
		t.Errorf("CancelCutoff = %v, want %v", got, want)
	}
}

func TestDueForCancel(t *testing.T) {
	start := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before cutoff", start.Add(-1 * time.Hour), false},
		{"one second before cutoff", start.Add(-SweepCutoff - time.Second), false},
		{"exactly at cutoff", start.Add(-SweepCutoff), true},
		{"between cutoff and start", start.Add(-5 * time.Minute), true},
		{"at slot start", start, true},
		{"after slot start", start.Add(time.Hour), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dueForCancel(tc.now, start); got != tc.want {
				t.Errorf("dueForCancel(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}
