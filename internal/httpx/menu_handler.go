package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ariefcatur/go-pickup-orders.git/internal/menu"
)

type MenuHandler struct {
	Repo *menu.Repo
}

func (h *MenuHandler) Register(r *chi.Mux) {
	r.Get("/api/menu", h.list)
}

func (h *MenuHandler) list(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	items, err := h.Repo.List(ctx)
	if err != nil {
		writeOrderError(w, "menu:list", err)
		return
	}
	if items == nil {
		items = []menu.Item{}
	}
	writeJSON(w, http.StatusOK, items)
}
