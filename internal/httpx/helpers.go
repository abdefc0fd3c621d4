package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ariefcatur/go-pickup-orders.git/internal/orders"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeOrderError maps the orders error taxonomy onto HTTP classes.
// Validation & business-rule errors bawa alasan singkat; internal error
// cuma pesan generik, detail ke log.
func writeOrderError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, orders.ErrValidation),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, orders.ErrNotPendingForPayment):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, orders.ErrNotFound),
		errors.Is(err, orders.ErrSlotNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, orders.ErrActiveOrder),
		errors.Is(err, orders.ErrSlotFull),
		errors.Is(err, orders.ErrSlotTooSoon),
		errors.Is(err, orders.ErrTerminalStatus):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("%s: %v", op, err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
