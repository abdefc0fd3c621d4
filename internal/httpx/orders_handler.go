package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pickup-orders.git/internal/kafka"
	"github.com/ariefcatur/go-pickup-orders.git/internal/orders"
	"github.com/ariefcatur/go-pickup-orders.git/internal/redisx"
)

type OrdersHandler struct {
	Repo           *orders.Repo
	PlacedProducer *kafkax.Producer
	Redis          *redis.Client
	Service        string
	UnpaidExpiry   time.Duration
}

type CreateOrderReq struct {
	StudentID       string             `json:"studentId"`
	StudentName     string             `json:"studentName"`
	SlotID          string             `json:"slotId"`
	Items           []orders.ItemInput `json:"items"`
	PickupDate      string             `json:"pickupDate"`
	PickupStartTime string             `json:"pickupStartTime"`
	PickupEndTime   string             `json:"pickupEndTime"`
}

type pickupSlotResp struct {
	SlotID    string `json:"slotId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

type CreateOrderResp struct {
	OrderID    string         `json:"orderId"`
	PickupSlot pickupSlotResp `json:"pickupSlot"`
	Status     orders.Status  `json:"status"`
	Subtotal   float64        `json:"subtotal"`
	CreatedAt  time.Time      `json:"createdAt"`
	ExpiresAt  time.Time      `json:"expiresAt"`
}

func (h *OrdersHandler) Register(r *chi.Mux) {
	r.Post("/api/orders", h.createOrder)
	r.Get("/api/orders", h.listOrders)
	r.Get("/api/orders/{id}", h.getOrder)
	r.Get("/api/orders/{id}/status", h.getOrderStatus)
}

func (h *OrdersHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	in, err := orders.ValidatePlacement(req.StudentID, req.StudentName, req.SlotID, req.Items)
	if err != nil {
		writeOrderError(w, "orders:create", err)
		return
	}
	in.PickupDate = req.PickupDate
	in.PickupStartTime = req.PickupStartTime
	in.PickupEndTime = req.PickupEndTime

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	o, err := h.Repo.PlaceOrderTx(ctx, in, h.UnpaidExpiry)
	if err != nil {
		writeOrderError(w, "orders:create", err)
		return
	}

	// Cache status (PENDING) agar polling status cepat
	statusKey := fmt.Sprintf(redisx.KeyOrderStatus, o.OrderID)
	_ = h.Redis.Set(ctx, statusKey, string(o.Status), redisx.TTLStatusCache).Err()

	h.publishPlaced(o, r.Header.Get("X-Request-Id"))

	writeJSON(w, http.StatusCreated, CreateOrderResp{
		OrderID: o.OrderID,
		PickupSlot: pickupSlotResp{
			SlotID:    o.SlotID,
			Date:      o.SlotDate,
			StartTime: o.SlotStart,
			EndTime:   o.SlotEnd,
		},
		Status:    o.Status,
		Subtotal:  o.Subtotal,
		CreatedAt: o.CreatedAt,
		ExpiresAt: o.ExpiresAt,
	})
}

func (h *OrdersHandler) publishPlaced(o *orders.Order, traceID string) {
	items := make([]orders.PlacedItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orders.PlacedItem{
			ItemID: it.ItemID, Name: it.Name, Qty: it.Qty, Price: it.Price, LineTotal: it.LineTotal,
		})
	}
	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderPlaced,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: o.OrderID,
		Payload: kafkax.MustMarshal(orders.OrderPlacedPayload{
			OrderID:   o.OrderID,
			StudentID: o.StudentID,
			SlotID:    o.SlotID,
			Items:     items,
			Subtotal:  o.Subtotal,
			ExpiresAt: o.ExpiresAt,
		}),
	}
	h.PlacedProducer.Publish(orders.PartitionKey(o.OrderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderPlaced)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (h *OrdersHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	list, err := h.Repo.ListOrders(ctx, orders.ListFilter{
		StudentID: r.URL.Query().Get("studentId"),
	})
	if err != nil {
		writeOrderError(w, "orders:list", err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *OrdersHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeOrderError(w, "orders:get", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// getOrderStatus: fast path status-only via Redis, fallback DB.
func (h *OrdersHandler) getOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	if orderID == "" {
		writeError(w, http.StatusBadRequest, "missing order id")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	if s, err := h.Redis.Get(ctx, key).Result(); err == nil && s != "" {
		writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "status": s})
		return
	}

	o, err := h.Repo.GetOrder(ctx, orderID)
	if err != nil {
		writeOrderError(w, "orders:status", err)
		return
	}
	_ = h.Redis.Set(ctx, key, string(o.Status), redisx.TTLStatusCache).Err()
	writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "status": string(o.Status)})
}
