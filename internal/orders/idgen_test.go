package orders

import (
	"context"
	"errors"
	"regexp"
	"testing"
)

func TestGenerateOrderIDFormat(t *testing.T) {
	ctx := context.Background()
	sixDigits := regexp.MustCompile(`^[1-9][0-9]{5}$`)

	id, err := GenerateOrderID(ctx, func(context.Context, string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !sixDigits.MatchString(id) {
		t.Errorf("id = %q, want 6-digit", id)
	}
}

func TestGenerateOrderIDRetriesOnCollision(t *testing.T) {
	ctx := context.Background()
	calls := 0
	id, err := GenerateOrderID(ctx, func(context.Context, string) (bool, error) {
		calls++
		return calls <= 2, nil // dua kandidat pertama tabrakan
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
	if id == "" {
		t.Error("empty id")
	}
}

func TestGenerateOrderIDExhausted(t *testing.T) {
	ctx := context.Background()
	_, err := GenerateOrderID(ctx, func(context.Context, string) (bool, error) { return true, nil })
	if !errors.Is(err, ErrOrderIDExhausted) {
		t.Errorf("err = %v, want ErrOrderIDExhausted", err)
	}
}

func TestGenerateOrderIDPropagatesStoreError(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")
	_, err := GenerateOrderID(ctx, func(context.Context, string) (bool, error) { return false, boom })
	if !errors.Is(err, boom) {
		t.Errorf("err = %v, want boom", err)
	}
}
