package orders

const (
	TopicOrderPlaced        = "pickup.order.placed"
	TopicOrderStatusChanged = "pickup.order.status"
)

// Partition key = order_id, supaya semua event 1 order maintain urutan.
func PartitionKey(orderID string) []byte { return []byte(orderID) }
