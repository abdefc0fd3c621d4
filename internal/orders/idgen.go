package orders

import (
	"context"
	"fmt"
	"math/rand"
)

// ExistsFunc reports whether a candidate order ID is already taken.
// Decoupled dari store supaya generator bisa dites tanpa DB.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

const idGenAttempts = 5

// GenerateOrderID picks a random 6-digit ID and retries against the
// uniqueness check up to idGenAttempts times. Exhausting the budget is an
// internal error (ID space pressure), bukan salah input.
func GenerateOrderID(ctx context.Context, exists ExistsFunc) (string, error) {
	for i := 0; i < idGenAttempts; i++ {
		candidate := fmt.Sprintf("%06d", rand.Intn(900000)+100000)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrOrderIDExhausted
}
