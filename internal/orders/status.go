package orders

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusCompleted Status = "COMPLETED"
	StatusCanceled  Status = "CANCELED"
)

// validNext: tabel transisi status order. COMPLETED & CANCELED terminal,
// tidak ada edge keluar.
var validNext = map[Status]map[Status]bool{
	StatusPending:   {StatusPaid: true, StatusCanceled: true},
	StatusPaid:      {StatusPreparing: true, StatusCanceled: true},
	StatusPreparing: {StatusReady: true, StatusCanceled: true},
	StatusReady:     {StatusCompleted: true, StatusCanceled: true},
	StatusCompleted: {},
	StatusCanceled:  {},
}

// OpenStatuses: status non-terminal (order masih aktif).
var OpenStatuses = []Status{StatusPending, StatusPaid, StatusPreparing, StatusReady}

// CanTransition returns false for empty/unknown statuses, terminal
// statuses, and edges missing from the table. Safe for raw client input.
func CanTransition(from, to Status) bool {
	return validNext[from][to]
}

func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCanceled
}

func IsOpen(s Status) bool {
	for _, o := range OpenStatuses {
		if s == o {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status string coming over the wire.
func ParseStatus(raw string) (Status, bool) {
	switch s := Status(raw); s {
	case StatusPending, StatusPaid, StatusPreparing, StatusReady, StatusCompleted, StatusCanceled:
		return s, true
	}
	return "", false
}
