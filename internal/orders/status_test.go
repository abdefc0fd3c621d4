package orders

import "testing"

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		// happy-path forward transitions
		{StatusPending, StatusPaid, true},
		{StatusPaid, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		// cancel dari semua status non-terminal
		{StatusPending, StatusCanceled, true},
		{StatusPaid, StatusCanceled, true},
		{StatusPreparing, StatusCanceled, true},
		{StatusReady, StatusCanceled, true},
		// terminal: tidak ada edge keluar
		{StatusCompleted, StatusPending, false},
		{StatusCompleted, StatusCanceled, false},
		{StatusCanceled, StatusPending, false},
		{StatusCanceled, StatusPaid, false},
		{StatusCanceled, StatusCompleted, false},
		// tidak boleh skip / mundur
		{StatusPending, StatusPreparing, false},
		{StatusPending, StatusReady, false},
		{StatusPending, StatusCompleted, false},
		{StatusPaid, StatusReady, false},
		{StatusReady, StatusPending, false},
		{StatusPreparing, StatusPaid, false},
		// self-loop selalu false
		{StatusPending, StatusPending, false},
		{StatusPaid, StatusPaid, false},
		{StatusCanceled, StatusCanceled, false},
		// input tak dikenal / kosong
		{"", StatusPaid, false},
		{StatusPending, "", false},
		{"SHIPPED", StatusPaid, false},
		{StatusPending, "SHIPPED", false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

// Tidak boleh ada edge yang keluar dari CANCELED/COMPLETED ke status
// manapun; kapasitas slot tidak pernah perlu divalidasi ulang di jalur
// update karena reinstatement memang tidak ada.
func TestTerminalStatesHaveNoOutgoingEdges(t *testing.T) {
	all := []Status{StatusPending, StatusPaid, StatusPreparing, StatusReady, StatusCompleted, StatusCanceled}
	for _, terminal := range []Status{StatusCompleted, StatusCanceled} {
		for _, to := range all {
			if CanTransition(terminal, to) {
				t.Errorf("terminal %s must not transition to %s", terminal, to)
			}
		}
	}
}

func TestIsOpen(t *testing.T) {
	for _, s := range OpenStatuses {
		if !IsOpen(s) {
			t.Errorf("IsOpen(%s) = false, want true", s)
		}
		if IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = true, want false", s)
		}
	}
	for _, s := range []Status{StatusCompleted, StatusCanceled} {
		if IsOpen(s) {
			t.Errorf("IsOpen(%s) = true, want false", s)
		}
		if !IsTerminal(s) {
			t.Errorf("IsTerminal(%s) = false, want true", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("PAID"); !ok || s != StatusPaid {
		t.Errorf("ParseStatus(PAID) = %q, %v", s, ok)
	}
	for _, raw := range []string{"", "paid", "SHIPPED", "PENDING "} {
		if _, ok := ParseStatus(raw); ok {
			t.Errorf("ParseStatus(%q) accepted, want reject", raw)
		}
	}
}
