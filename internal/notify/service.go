package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pickup-orders.git/internal/kafka"
	"github.com/ariefcatur/go-pickup-orders.git/internal/orders"
	"github.com/ariefcatur/go-pickup-orders.git/internal/redisx"
)

// Service keeps the Redis order-status cache in sync from the lifecycle
// event stream, jadi GET status tetap cepat walau status diubah oleh
// sweeper atau instance API lain.
type Service struct {
	Redis       *redis.Client
	ServiceName string
}

// HandleEvent: dipasang sebagai handler consumer untuk kedua topic order.
func (s *Service) HandleEvent(ctx context.Context, m kafkago.Message) error {
	var env orders.Envelope
	if err := json.Unmarshal(m.Value, &env); err != nil {
		return err
	}

	// dedup via Redis (pakai event_id)
	dkey := fmt.Sprintf(redisx.KeyDedup, "notify", env.EventID)
	exists, _ := redisx.Exists(ctx, s.Redis, dkey)
	if exists {
		return nil
	}
	_ = s.Redis.Set(ctx, dkey, "1", redisx.TTLDedup).Err()

	switch env.EventType {
	case orders.EventOrderPlaced:
		p, err := kafkax.UnwrapPayload[orders.OrderPlacedPayload](env.Payload)
		if err != nil {
			return err
		}
		return s.setStatus(ctx, p.OrderID, orders.StatusPending)

	case orders.EventOrderStatusChanged:
		p, err := kafkax.UnwrapPayload[orders.OrderStatusChangedPayload](env.Payload)
		if err != nil {
			return err
		}
		log.Printf("order %s: %s -> %s (%s)", p.OrderID, p.FromStatus, p.ToStatus, p.Actor)
		return s.setStatus(ctx, p.OrderID, p.ToStatus)
	}

	return nil // event lain: ignore
}

func (s *Service) setStatus(ctx context.Context, orderID string, status orders.Status) error {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	return s.Redis.Set(ctx, key, string(status), redisx.TTLStatusCache).Err()
}
