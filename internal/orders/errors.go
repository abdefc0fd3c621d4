package orders

import "errors"

// Sentinel errors per kelas kegagalan; httpx yang mapping ke status code.
var (
	// ErrValidation: input caller salah (400). Selalu dibungkus dengan
	// alasan singkat, cek pakai errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrNotFound     = errors.New("order not found")
	ErrSlotNotFound = errors.New("pickup slot not found")

	ErrActiveOrder = errors.New("student already has an active order")
	ErrSlotFull    = errors.New("pickup slot is full")
	ErrSlotTooSoon = errors.New("pickup slot is too soon")

	ErrTerminalStatus       = errors.New("order can no longer change status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrOrderIDExhausted     = errors.New("unable to generate unique order id")
	ErrNotPendingForPayment = errors.New("only pending orders can be paid")
)
