package orders

import (
	"context"
	"log"
	"time"

	"github.com/ariefcatur/go-pickup-orders.git/internal/slots"
)

// SweepCutoff: order PENDING dibatalkan mulai 15 menit sebelum slot start.
// Konstanta terpisah dari MinLeadTime (10 menit), jangan disatukan.
const SweepCutoff = 15 * time.Minute

const DefaultSweepInterval = 60 * time.Second

// Sweeper force-cancels pending orders that were never paid before their
// slot's cutoff. Setiap tick independen & idempotent; error cuma di-log
// dan dicoba lagi di tick berikutnya.
type Sweeper struct {
	Repo     *Repo
	Interval time.Duration

	// OnCanceled is invoked after a tick cancels orders, di luar jalur
	// error tick (dipakai cmd/api untuk publish event Kafka).
	OnCanceled func(orderIDs []string)
}

// CancelCutoff: titik waktu mulai kapan order PENDING untuk slot ini layak
// dibatalkan.
func CancelCutoff(slotStart time.Time) time.Time {
	return slotStart.Add(-SweepCutoff)
}

func dueForCancel(now, slotStart time.Time) bool {
	return !now.Before(CancelCutoff(slotStart))
}

// Run executes one tick immediately, then on every interval until the
// context is done.
func (s *Sweeper) Run(ctx context.Context) {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	s.tickLogged(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tickLogged(ctx)
		}
	}
}

func (s *Sweeper) tickLogged(ctx context.Context) {
	if _, err := s.Tick(ctx); err != nil {
		log.Printf("auto-cancel sweep failed: %v", err)
	}
}

// Tick selects expirable PENDING orders and bulk-cancels them in one
// update. Re-select order yang sudah CANCELED tidak mungkin karena filter
// status = PENDING.
func (s *Sweeper) Tick(ctx context.Context) (int64, error) {
	now := time.Now()

	pending, err := s.Repo.ListPendingWithSlot(ctx)
	if err != nil {
		return 0, err
	}

	var due []string
	for _, p := range pending {
		start, err := slots.StartTimestamp(p.SlotDate, p.SlotStart)
		if err != nil {
			log.Printf("auto-cancel: skip order %s, bad slot schedule: %v", p.OrderID, err)
			continue
		}
		if dueForCancel(now, start) {
			due = append(due, p.OrderID)
		}
	}
	if len(due) == 0 {
		return 0, nil
	}

	n, err := s.Repo.CancelPending(ctx, due)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		log.Printf("auto-cancel: %d pending orders canceled (15-min cutoff)", n)
		if s.OnCanceled != nil {
			s.OnCanceled(due)
		}
	}
	return n, nil
}
