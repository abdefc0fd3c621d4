package slots

import (
	"testing"
	"time"
)

func TestEffectiveCapacity(t *testing.T) {
	cases := []struct {
		in, want int
	}{
		{0, 0},
		{1, 1},
		{29, 29},
		{30, 30},
		{31, 30}, // clamp ke hard cap
		{1000, 30},
		{-5, 0},
	}
	for _, tc := range cases {
		if got := EffectiveCapacity(tc.in); got != tc.want {
			t.Errorf("EffectiveCapacity(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRemaining(t *testing.T) {
	cases := []struct {
		capacity, active, want int
	}{
		{10, 0, 10},
		{10, 10, 0},
		{10, 12, 0}, // overshoot tidak boleh negatif
		{0, 0, 0},
	}
	for _, tc := range cases {
		if got := Remaining(tc.capacity, tc.active); got != tc.want {
			t.Errorf("Remaining(%d, %d) = %d, want %d", tc.capacity, tc.active, got, tc.want)
		}
	}
}

func TestIsWeekday(t *testing.T) {
	// 2025-06-02 adalah Senin
	mon := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for d := 0; d < 7; d++ {
		day := mon.AddDate(0, 0, d)
		want := d < 5
		if got := IsWeekday(day); got != want {
			t.Errorf("IsWeekday(%s) = %v, want %v", day.Weekday(), got, want)
		}
	}
}

func TestNormalizeTime(t *testing.T) {
	if got := NormalizeTime("07:15"); got != "07:15:00" {
		t.Errorf("NormalizeTime(07:15) = %q", got)
	}
	if got := NormalizeTime("07:15:00"); got != "07:15:00" {
		t.Errorf("NormalizeTime(07:15:00) = %q", got)
	}
}

func TestInServiceWindow(t *testing.T) {
	cases := []struct {
		start string
		want  bool
	}{
		{"07:00", true},
		{"07:00:00", true},
		{"12:30", true},
		{"17:00:00", true},
		{"06:59:59", false},
		{"17:00:01", false},
		{"22:00", false},
	}
	for _, tc := range cases {
		if got := InServiceWindow(tc.start); got != tc.want {
			t.Errorf("InServiceWindow(%q) = %v, want %v", tc.start, got, tc.want)
		}
	}
}

func TestStartTimestamp(t *testing.T) {
	ts, err := StartTimestamp("2025-06-02", "12:15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2025, 6, 2, 12, 15, 0, 0, time.Local)
	if !ts.Equal(want) {
		t.Errorf("StartTimestamp = %v, want %v", ts, want)
	}

	if _, err := StartTimestamp("2025-13-99", "12:15"); err == nil {
		t.Error("want error for invalid date")
	}
}

func TestAddMinutes(t *testing.T) {
	if got := AddMinutes("07:00", 15); got != "07:15:00" {
		t.Errorf("AddMinutes(07:00, 15) = %q", got)
	}
	if got := AddMinutes("16:45:00", 15); got != "17:00:00" {
		t.Errorf("AddMinutes(16:45:00, 15) = %q", got)
	}
	if got := AddMinutes("23:50:00", 15); got != "00:05:00" {
		t.Errorf("AddMinutes wrap = %q", got)
	}
}
