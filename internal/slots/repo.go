package slots

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

// ListOpen returns future weekday slots inside the service window that
// still have capacity left, ascending by date then start time. Active =
// count order non-CANCELED per slot. Snapshot read tanpa lock; enforcement
// kapasitas tetap di jalur tulis (PlaceOrderTx).
func (r *Repo) ListOpen(ctx context.Context) ([]Availability, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT s.slot_id,
		       s.date::text,
		       s.start_time,
		       s.end_time,
		       s.max_orders,
		       COALESCE(o.active_orders, 0)
		FROM pickup_slots s
		LEFT JOIN (
			SELECT slot_id, COUNT(*) AS active_orders
			FROM orders
			WHERE status <> 'CANCELED'
			GROUP BY slot_id
		) o ON o.slot_id = s.slot_id
		WHERE EXTRACT(DOW FROM s.date) NOT IN (0, 6)
		  AND s.date >= CURRENT_DATE
		  AND s.start_time BETWEEN $1 AND $2
		ORDER BY s.date ASC, s.start_time ASC`,
		WindowOpen, WindowClose,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Availability
	for rows.Next() {
		var a Availability
		if err := rows.Scan(&a.SlotID, &a.Date, &a.StartTime, &a.EndTime, &a.MaxOrders, &a.ActiveOrders); err != nil {
			return nil, err
		}
		a.MaxOrders = EffectiveCapacity(a.MaxOrders)
		a.Remaining = Remaining(a.MaxOrders, a.ActiveOrders)
		if a.Remaining > 0 {
			out = append(out, a)
		}
	}
	return out, rows.Err()
}
