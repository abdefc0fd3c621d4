package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

const orderColumns = `
	o.order_id, o.student_id, COALESCE(o.student_name, ''), o.slot_id,
	o.status, o.subtotal, o.created_at, o.expires_at,
	COALESCE(ps.date::text, ''), COALESCE(ps.start_time, ''), COALESCE(ps.end_time, '')`

const orderFrom = `
	FROM orders o
	LEFT JOIN pickup_slots ps ON ps.slot_id = o.slot_id`

func scanOrder(row pgx.Row) (*Order, error) {
	var o Order
	err := row.Scan(
		&o.OrderID, &o.StudentID, &o.StudentName, &o.SlotID,
		&o.Status, &o.Subtotal, &o.CreatedAt, &o.ExpiresAt,
		&o.SlotDate, &o.SlotStart, &o.SlotEnd,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// GetOrder loads one order plus its items and slot echo.
func (r *Repo) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	o, err := scanOrder(r.DB.QueryRow(ctx,
		`SELECT`+orderColumns+orderFrom+` WHERE o.order_id = $1`, orderID))
	if err != nil {
		return nil, err
	}

	rows, err := r.DB.Query(ctx, `
		SELECT order_item_id, COALESCE(item_id, ''), item_name, qty, item_price, line_total
		FROM order_items WHERE order_id = $1 ORDER BY order_item_id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it OrderItem
		if err := rows.Scan(&it.OrderItemID, &it.ItemID, &it.Name, &it.Qty, &it.Price, &it.LineTotal); err != nil {
			return nil, err
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// ListOrders: filter kombinasi studentId/status/date/slotId, terbaru dulu.
// Snapshot read tanpa tx, boleh sedikit stale.
func (r *Repo) ListOrders(ctx context.Context, f ListFilter) ([]Order, error) {
	sql := `SELECT` + orderColumns + orderFrom + ` WHERE 1=1`
	args := []any{}
	if f.StudentID != "" {
		args = append(args, f.StudentID)
		sql += fmt.Sprintf(" AND o.student_id = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, string(f.Status))
		sql += fmt.Sprintf(" AND o.status = $%d", len(args))
	}
	if f.Date != "" {
		args = append(args, f.Date)
		sql += fmt.Sprintf(" AND DATE(o.created_at) = $%d::date", len(args))
	}
	if f.SlotID != "" {
		args = append(args, f.SlotID)
		sql += fmt.Sprintf(" AND o.slot_id = $%d", len(args))
	}
	sql += " ORDER BY o.created_at DESC"

	rows, err := r.DB.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		var o Order
		err := rows.Scan(
			&o.OrderID, &o.StudentID, &o.StudentName, &o.SlotID,
			&o.Status, &o.Subtotal, &o.CreatedAt, &o.ExpiresAt,
			&o.SlotDate, &o.SlotStart, &o.SlotEnd,
		)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *Repo) getStatus(ctx context.Context, orderID string) (Status, error) {
	var s string
	err := r.DB.QueryRow(ctx, `SELECT status FROM orders WHERE order_id = $1`, orderID).Scan(&s)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return Status(s), nil
}

// Transition applies one status-machine edge. Update-nya optimistic
// (WHERE status = from); kalah race berarti status sudah berubah, dinilai
// ulang terhadap nilai terbaru.
func (r *Repo) Transition(ctx context.Context, orderID string, next Status) (from Status, err error) {
	for {
		current, err := r.getStatus(ctx, orderID)
		if err != nil {
			return "", err
		}
		if IsTerminal(current) {
			return "", ErrTerminalStatus
		}
		if !CanTransition(current, next) {
			return "", ErrInvalidTransition
		}

		tag, err := r.DB.Exec(ctx, `
			UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`,
			string(next), orderID, string(current),
		)
		if err != nil {
			return "", err
		}
		if tag.RowsAffected() == 1 {
			return current, nil
		}
		// status berubah di tengah jalan; coba evaluasi lagi
	}
}

// MarkPaid: konfirmasi pembayaran, khusus PENDING -> PAID.
func (r *Repo) MarkPaid(ctx context.Context, orderID string) error {
	current, err := r.getStatus(ctx, orderID)
	if err != nil {
		return err
	}
	if current != StatusPending {
		return ErrNotPendingForPayment
	}
	tag, err := r.DB.Exec(ctx, `
		UPDATE orders SET status = $1 WHERE order_id = $2 AND status = $3`,
		string(StatusPaid), orderID, string(StatusPending),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return ErrNotPendingForPayment
	}
	return nil
}

// PendingSlot: baris PENDING + jadwal slot-nya, bahan satu tick sweeper.
type PendingSlot struct {
	OrderID   string
	SlotDate  string
	SlotStart string
}

func (r *Repo) ListPendingWithSlot(ctx context.Context) ([]PendingSlot, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT o.order_id, ps.date::text, ps.start_time
		FROM orders o
		JOIN pickup_slots ps ON ps.slot_id = o.slot_id
		WHERE o.status = $1`, string(StatusPending))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []PendingSlot
	for rows.Next() {
		var p PendingSlot
		if err := rows.Scan(&p.OrderID, &p.SlotDate, &p.SlotStart); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CancelPending bulk-cancels in one update. Filter status=PENDING bikin
// operasi ini idempotent; order yang sudah lanjut (mis. PAID) tidak
// tersentuh.
func (r *Repo) CancelPending(ctx context.Context, orderIDs []string) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}
	tag, err := r.DB.Exec(ctx, `
		UPDATE orders SET status = $1
		WHERE order_id = ANY($2) AND status = $3`,
		string(StatusCanceled), orderIDs, string(StatusPending),
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
