package slots

type Slot struct {
	SlotID    string `json:"slotId"`
	Date      string `json:"date"` // YYYY-MM-DD
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	MaxOrders int    `json:"maxOrders"`
}

// Availability: satu baris hasil listing slot terbuka.
type Availability struct {
	SlotID       string `json:"slotId"`
	Date         string `json:"date"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	MaxOrders    int    `json:"maxOrders"`
	ActiveOrders int    `json:"activeOrders"`
	Remaining    int    `json:"remaining"`
}
