package httpx

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"

	kafkax "github.com/ariefcatur/go-pickup-orders.git/internal/kafka"
	"github.com/ariefcatur/go-pickup-orders.git/internal/orders"
	"github.com/ariefcatur/go-pickup-orders.git/internal/redisx"
)

type StaffHandler struct {
	Repo           *orders.Repo
	StatusProducer *kafkax.Producer
	Redis          *redis.Client
	Service        string
	Token          string
}

func (h *StaffHandler) Register(r *chi.Mux) {
	r.Route("/api/staff", func(r chi.Router) {
		r.Use(StaffAuth(h.Token))
		r.Get("/orders", h.listOrders)
		r.Get("/orders/{id}", h.getOrder)
		r.Patch("/orders/{id}", h.transition)
		r.Patch("/orders/{id}/pay", h.markPaid)
	})
}

func (h *StaffHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	q := r.URL.Query()
	f := orders.ListFilter{
		StudentID: q.Get("studentId"),
		Date:      q.Get("date"),
		SlotID:    q.Get("slot"),
	}
	if raw := q.Get("status"); raw != "" {
		s, ok := orders.ParseStatus(strings.ToUpper(raw))
		if !ok {
			writeError(w, http.StatusBadRequest, "invalid status")
			return
		}
		f.Status = s
	}

	list, err := h.Repo.ListOrders(ctx, f)
	if err != nil {
		writeOrderError(w, "staff:orders:list", err)
		return
	}
	if list == nil {
		list = []orders.Order{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *StaffHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	o, err := h.Repo.GetOrder(ctx, chi.URLParam(r, "id"))
	if err != nil {
		writeOrderError(w, "staff:orders:get", err)
		return
	}
	writeJSON(w, http.StatusOK, o)
}

type transitionReq struct {
	NewStatus string `json:"newStatus"`
}

func (h *StaffHandler) transition(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req transitionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	next, ok := orders.ParseStatus(strings.ToUpper(strings.TrimSpace(req.NewStatus)))
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	from, err := h.Repo.Transition(ctx, orderID, next)
	if err != nil {
		writeOrderError(w, "staff:orders:update", err)
		return
	}

	h.afterStatusChange(ctx, orderID, from, next, r.Header.Get("X-Request-Id"))
	writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "status": string(next)})
}

func (h *StaffHandler) markPaid(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := h.Repo.MarkPaid(ctx, orderID); err != nil {
		writeOrderError(w, "staff:orders:pay", err)
		return
	}

	h.afterStatusChange(ctx, orderID, orders.StatusPending, orders.StatusPaid, r.Header.Get("X-Request-Id"))
	writeJSON(w, http.StatusOK, map[string]string{"orderId": orderID, "status": string(orders.StatusPaid)})
}

// afterStatusChange: refresh cache status + publish event perubahan.
func (h *StaffHandler) afterStatusChange(ctx context.Context, orderID string, from, to orders.Status, traceID string) {
	key := fmt.Sprintf(redisx.KeyOrderStatus, orderID)
	_ = h.Redis.Set(ctx, key, string(to), redisx.TTLStatusCache).Err()

	ev := orders.Envelope{
		EventID:       uuid.NewString(),
		EventType:     orders.EventOrderStatusChanged,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      h.Service,
		TraceID:       traceID,
		CorrelationID: orderID,
		Payload: kafkax.MustMarshal(orders.OrderStatusChangedPayload{
			OrderID:    orderID,
			FromStatus: from,
			ToStatus:   to,
			Actor:      "staff",
		}),
	}
	h.StatusProducer.Publish(orders.PartitionKey(orderID), kafkax.MustMarshal(ev),
		kafkago.Header{Key: "x-event-type", Value: []byte(orders.EventOrderStatusChanged)},
		kafkago.Header{Key: "x-event-version", Value: []byte("1")},
	)
}
