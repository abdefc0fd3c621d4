package orders

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ariefcatur/go-pickup-orders.git/internal/slots"
)

// MinLeadTime: jarak minimum antara waktu pesan dan mulai slot. Sengaja
// beda dengan SweepCutoff (15 menit), dua konstanta independen.
const MinLeadTime = 10 * time.Minute

// uniqOpenOrderConstraint backs the one-open-order-per-student invariant
// at the DB level. Row locks tidak mencegah phantom insert antar slot,
// jadi index parsial ini yang menangkap race-nya.
const uniqOpenOrderConstraint = "uniq_orders_student_open"

// PlaceOrderTx runs the whole reservation under one transaction. The slot
// row is locked FOR UPDATE so the capacity read and the insert are
// serialized against concurrent placements on the same slot. Any failure
// rolls back everything; partial order/items are never visible.
func (r *Repo) PlaceOrderTx(ctx context.Context, in PlaceOrderInput, unpaidExpiry time.Duration) (*Order, error) {
	now := time.Now()

	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// 1) Lock slot row (lazy-create kalau belum ada & client kasih jadwal)
	slot, err := lockSlot(ctx, tx, in)
	if err != nil {
		return nil, err
	}

	// 2) Enforce lead time: slot start harus > now + 10 menit
	slotStart, err := slots.StartTimestamp(slot.Date, slot.StartTime)
	if err != nil {
		return nil, err
	}
	if !slotStart.After(now.Add(MinLeadTime)) {
		return nil, ErrSlotTooSoon
	}

	// 3) Satu order aktif per student
	var openCount int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE student_id = $1 AND status = ANY($2)`,
		in.StudentID, openStatusStrings(),
	).Scan(&openCount)
	if err != nil {
		return nil, err
	}
	if openCount > 0 {
		return nil, ErrActiveOrder
	}

	// 4) Kapasitas slot (hitung order non-CANCELED)
	var active int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM orders
		WHERE slot_id = $1 AND status <> $2`,
		slot.SlotID, string(StatusCanceled),
	).Scan(&active)
	if err != nil {
		return nil, err
	}
	if active >= slots.EffectiveCapacity(slot.MaxOrders) {
		return nil, ErrSlotFull
	}

	// 5) Short ID dengan retry terbatas, uniqueness dicek di tx yang sama
	orderID, err := GenerateOrderID(ctx, func(ctx context.Context, id string) (bool, error) {
		var one int
		err := tx.QueryRow(ctx, `SELECT 1 FROM orders WHERE order_id = $1`, id).Scan(&one)
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return err == nil, err
	})
	if err != nil {
		return nil, err
	}

	expiresAt := now.Add(unpaidExpiry)
	o := &Order{
		OrderID:     orderID,
		StudentID:   in.StudentID,
		StudentName: in.StudentName,
		SlotID:      slot.SlotID,
		Status:      StatusPending,
		Subtotal:    in.Subtotal,
		CreatedAt:   now,
		ExpiresAt:   expiresAt,
		SlotDate:    slot.Date,
		SlotStart:   slot.StartTime,
		SlotEnd:     slot.EndTime,
		Items:       in.Items,
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO orders (order_id, student_id, student_name, slot_id, status, subtotal, created_at, expires_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8)`,
		o.OrderID, o.StudentID, o.StudentName, o.SlotID, string(o.Status), o.Subtotal, o.CreatedAt, o.ExpiresAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == uniqOpenOrderConstraint {
			return nil, ErrActiveOrder
		}
		return nil, err
	}

	for _, it := range in.Items {
		_, err = tx.Exec(ctx, `
			INSERT INTO order_items (order_id, item_id, item_name, qty, item_price, line_total)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			o.OrderID, it.ItemID, it.Name, it.Qty, it.Price, it.LineTotal,
		)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

// lockSlot reads the slot row FOR UPDATE; the lock is held until commit or
// rollback so concurrent placements on the same slot queue up behind it.
func lockSlot(ctx context.Context, tx pgx.Tx, in PlaceOrderInput) (*slots.Slot, error) {
	const q = `
		SELECT slot_id, date::text, start_time, end_time, max_orders
		FROM pickup_slots WHERE slot_id = $1 FOR UPDATE`

	var s slots.Slot
	err := tx.QueryRow(ctx, q, in.SlotID).Scan(&s.SlotID, &s.Date, &s.StartTime, &s.EndTime, &s.MaxOrders)
	if err == nil {
		return &s, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	// Slot belum ada: create on the fly kalau client kirim jadwalnya.
	if in.PickupDate == "" || in.PickupStartTime == "" {
		return nil, ErrSlotNotFound
	}
	start := slots.NormalizeTime(in.PickupStartTime)
	end := slots.NormalizeTime(in.PickupEndTime)
	if end == "" {
		end = slots.AddMinutes(start, 15)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO pickup_slots (slot_id, date, start_time, end_time, max_orders)
		VALUES ($1, $2::date, $3, $4, $5)
		ON CONFLICT (slot_id) DO NOTHING`,
		in.SlotID, in.PickupDate, start, end, slots.HardCap,
	)
	if err != nil {
		return nil, err
	}

	err = tx.QueryRow(ctx, q, in.SlotID).Scan(&s.SlotID, &s.Date, &s.StartTime, &s.EndTime, &s.MaxOrders)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func openStatusStrings() []string {
	out := make([]string, 0, len(OpenStatuses))
	for _, s := range OpenStatuses {
		out = append(out, string(s))
	}
	return out
}
