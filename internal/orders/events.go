package orders

import (
	"encoding/json"
	"time"
)

const (
	EventOrderPlaced        = "OrderPlaced"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "pickup-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // biasanya order_id
	Payload       json.RawMessage `json:"payload"`
}

// ---- Payload tipe per event ----

type PlacedItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Qty       int     `json:"qty"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
}

type OrderPlacedPayload struct {
	OrderID   string       `json:"order_id"`
	StudentID string       `json:"student_id"`
	SlotID    string       `json:"slot_id"`
	Items     []PlacedItem `json:"items"`
	Subtotal  float64      `json:"subtotal"`
	ExpiresAt time.Time    `json:"expires_at"`
}

type OrderStatusChangedPayload struct {
	OrderID    string `json:"order_id"`
	FromStatus Status `json:"from_status"`
	ToStatus   Status `json:"to_status"`
	Actor      string `json:"actor"` // "staff" | "sweeper"
}
