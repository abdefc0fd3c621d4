package orders

import "time"

type Order struct {
	OrderID     string    `json:"orderId"`
	StudentID   string    `json:"studentId"`
	StudentName string    `json:"studentName,omitempty"`
	SlotID      string    `json:"slotId"`
	Status      Status    `json:"status"`
	Subtotal    float64   `json:"subtotal"`
	CreatedAt   time.Time `json:"createdAt"`
	ExpiresAt   time.Time `json:"expiresAt"`

	// Slot echo (diisi saat join ke pickup_slots).
	SlotDate  string `json:"slotDate,omitempty"`
	SlotStart string `json:"slotStart,omitempty"`
	SlotEnd   string `json:"slotEnd,omitempty"`

	Items []OrderItem `json:"items,omitempty"`
}

type OrderItem struct {
	OrderItemID int64   `json:"orderItemId"`
	ItemID      string  `json:"itemId"`
	Name        string  `json:"name"`
	Qty         int     `json:"qty"`
	Price       float64 `json:"price"`
	LineTotal   float64 `json:"lineTotal"`
}

// ItemInput: raw line item dari client. Harga tetap divalidasi dan
// subtotal dihitung ulang server-side, jangan trust angka dari caller.
type ItemInput struct {
	ItemID string  `json:"itemId"`
	Name   string  `json:"name"`
	Qty    float64 `json:"qty"`
	Price  float64 `json:"price"`
}

// PlaceOrderInput: payload lengkap untuk PlaceOrderTx, sudah melewati
// ValidatePlacement.
type PlaceOrderInput struct {
	StudentID   string
	StudentName string
	SlotID      string
	Items       []OrderItem
	Subtotal    float64

	// Optional: dipakai untuk lazy-create slot kalau slot_id belum ada.
	PickupDate      string
	PickupStartTime string
	PickupEndTime   string
}

// ListFilter: kombinasi filter untuk listing order (staff & student).
type ListFilter struct {
	StudentID string
	Status    Status
	Date      string // filter DATE(created_at)
	SlotID    string
}
