package menu

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Item struct {
	ItemID   string  `json:"itemId"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
}

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) List(ctx context.Context) ([]Item, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT item_id, item_name, price, COALESCE(category, '')
		FROM menu ORDER BY category, item_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ItemID, &it.Name, &it.Price, &it.Category); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
