package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS menu (
	item_id   TEXT PRIMARY KEY,
	item_name TEXT NOT NULL,
	price     NUMERIC(10,2) NOT NULL DEFAULT 0,
	category  TEXT
);

CREATE TABLE IF NOT EXISTS pickup_slots (
	slot_id    TEXT PRIMARY KEY,
	date       DATE NOT NULL,
	start_time TEXT NOT NULL,
	end_time   TEXT NOT NULL,
	max_orders INTEGER NOT NULL DEFAULT 30
);

CREATE TABLE IF NOT EXISTS orders (
	order_id     TEXT PRIMARY KEY,
	student_id   TEXT NOT NULL,
	student_name TEXT,
	slot_id      TEXT NOT NULL REFERENCES pickup_slots(slot_id) ON UPDATE CASCADE ON DELETE RESTRICT,
	status       TEXT NOT NULL,
	subtotal     NUMERIC(10,2) NOT NULL,
	created_at   TIMESTAMPTZ NOT NULL,
	expires_at   TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS order_items (
	order_item_id BIGSERIAL PRIMARY KEY,
	order_id      TEXT NOT NULL REFERENCES orders(order_id) ON UPDATE CASCADE ON DELETE CASCADE,
	item_id       TEXT,
	item_name     TEXT NOT NULL,
	qty           INTEGER NOT NULL,
	item_price    NUMERIC(10,2) NOT NULL,
	line_total    NUMERIC(10,2) NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_orders_student ON orders(student_id);
CREATE INDEX IF NOT EXISTS idx_orders_slot ON orders(slot_id);
CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status);

-- Backstop untuk invariant satu order aktif per student: row lock slot
-- tidak mencegah phantom insert lintas slot, index parsial ini yang jaga.
CREATE UNIQUE INDEX IF NOT EXISTS uniq_orders_student_open
	ON orders(student_id)
	WHERE status IN ('PENDING', 'PAID', 'PREPARING', 'READY');
`

// EnsureSchema creates all tables and indexes if missing. Aman dipanggil
// setiap boot.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, schema)
	return err
}

// SeedDefaults populates the menu and the next two weeks of weekday pickup
// slots, only when the tables are empty.
func SeedDefaults(ctx context.Context, db *pgxpool.Pool) error {
	var menuCount int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM menu`).Scan(&menuCount); err != nil {
		return err
	}
	if menuCount == 0 {
		seed := [][]any{
			{"PA1", "Vegetarian Lasagna", 205.0, "Pasta"},
			{"PA2", "Ravioli Spinach", 225.0, "Pasta"},
			{"PI1", "Margherita", 125.0, "Pizza"},
			{"DR1", "Coca-Cola", 55.0, "Drink"},
		}
		for _, row := range seed {
			_, err := db.Exec(ctx, `
				INSERT INTO menu (item_id, item_name, price, category)
				VALUES ($1, $2, $3, $4) ON CONFLICT (item_id) DO NOTHING`, row...)
			if err != nil {
				return err
			}
		}
	}

	var slotCount int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM pickup_slots`).Scan(&slotCount); err != nil {
		return err
	}
	if slotCount > 0 {
		return nil
	}

	// 2 minggu ke depan, weekday only, window 07:00-17:00 step 15 menit
	const daysToSeed = 14
	now := time.Now()
	for offset := 1; offset <= daysToSeed; offset++ {
		day := now.AddDate(0, 0, offset)
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		dateStr := day.Format("2006-01-02")
		for minutes := 7 * 60; minutes < 17*60; minutes += 15 {
			start := fmt.Sprintf("%02d:%02d:00", minutes/60, minutes%60)
			end := fmt.Sprintf("%02d:%02d:00", (minutes+15)/60, (minutes+15)%60)
			slotID := fmt.Sprintf("%s-%02d%02d", day.Format("20060102"), minutes/60, minutes%60)
			_, err := db.Exec(ctx, `
				INSERT INTO pickup_slots (slot_id, date, start_time, end_time, max_orders)
				VALUES ($1, $2::date, $3, $4, $5) ON CONFLICT (slot_id) DO NOTHING`,
				slotID, dateStr, start, end, 30,
			)
			if err != nil {
				return err
			}
		}
	}
	return nil
}
