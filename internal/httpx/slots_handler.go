package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"

	"github.com/ariefcatur/go-pickup-orders.git/internal/redisx"
	"github.com/ariefcatur/go-pickup-orders.git/internal/slots"
)

type SlotsHandler struct {
	Repo  *slots.Repo
	Redis *redis.Client
}

func (h *SlotsHandler) Register(r *chi.Mux) {
	r.Get("/api/slots", h.listOpen)
}

// listOpen serves the availability listing, dengan cache Redis ber-TTL
// pendek. Listing boleh sedikit stale: kapasitas tetap di-enforce di
// jalur tulis, bukan di sini.
func (h *SlotsHandler) listOpen(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if cached, err := h.Redis.Get(ctx, redisx.KeyOpenSlots).Result(); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(cached))
		return
	}

	list, err := h.Repo.ListOpen(ctx)
	if err != nil {
		writeOrderError(w, "slots:list", err)
		return
	}
	if list == nil {
		list = []slots.Availability{}
	}

	b, err := json.Marshal(list)
	if err != nil {
		writeOrderError(w, "slots:list", err)
		return
	}
	_ = h.Redis.Set(ctx, redisx.KeyOpenSlots, b, redisx.TTLOpenSlots).Err()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(b)
}
