package slots

import (
	"fmt"
	"time"
)

// HardCap: batas kapasitas per slot system-wide; max_orders di DB tetap
// di-clamp ke angka ini.
const HardCap = 30

// Service window untuk listing slot.
const (
	WindowOpen  = "07:00:00"
	WindowClose = "17:00:00"
)

// EffectiveCapacity clamps a slot's configured capacity to the hard cap.
func EffectiveCapacity(maxOrders int) int {
	if maxOrders > HardCap {
		return HardCap
	}
	if maxOrders < 0 {
		return 0
	}
	return maxOrders
}

// Remaining never reports below zero even if active overshoots capacity.
func Remaining(capacity, active int) int {
	if r := capacity - active; r > 0 {
		return r
	}
	return 0
}

// IsWeekday: slot hanya tersedia Senin-Jumat.
func IsWeekday(date time.Time) bool {
	wd := date.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// NormalizeTime accepts "HH:MM" or "HH:MM:SS" and returns "HH:MM:SS".
func NormalizeTime(t string) string {
	if len(t) == 5 {
		return t + ":00"
	}
	return t
}

// InServiceWindow reports whether a start time falls inside the daily
// 07:00-17:00 window. Perbandingan string aman karena format fixed-width.
func InServiceWindow(start string) bool {
	s := NormalizeTime(start)
	return s >= WindowOpen && s <= WindowClose
}

// StartTimestamp combines a slot's date ("YYYY-MM-DD") and start time into
// a wall-clock timestamp in server-local time.
func StartTimestamp(date, start string) (time.Time, error) {
	ts, err := time.ParseInLocation("2006-01-02 15:04:05", date+" "+NormalizeTime(start), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse slot start %q %q: %w", date, start, err)
	}
	return ts, nil
}

// AddMinutes shifts an "HH:MM:SS" time-of-day by n minutes (wraps at
// midnight). Dipakai untuk default end_time = start + 15 menit.
func AddMinutes(start string, n int) string {
	t, err := time.Parse("15:04:05", NormalizeTime(start))
	if err != nil {
		return ""
	}
	return t.Add(time.Duration(n) * time.Minute).Format("15:04:05")
}
