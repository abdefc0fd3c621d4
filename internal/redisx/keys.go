package redisx

import "time"

const (
	// Cache status order: order_status:{order_id} -> {"status": "..."}
	KeyOrderStatus = "order_status:%s"

	// Cache listing slot terbuka (satu key, TTL pendek)
	KeyOpenSlots = "slots:open"

	// Dedup event processing: dedup:{service}:{event_id}
	KeyDedup = "dedup:%s:%s"
)

var (
	TTLStatusCache = 5 * time.Minute
	TTLOpenSlots   = 15 * time.Second
	TTLDedup       = 48 * time.Hour
)
