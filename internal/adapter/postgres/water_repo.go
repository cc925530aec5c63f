package postgres

import (
	"context"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// AddWaterEvent inserts a new water adjustment for day.
func (d *DB) AddWaterEvent(ctx context.Context, day string, deltaMl int, createdAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO water_events(day, delta_ml, created_at) VALUES($1, $2, $3) RETURNING id;",
		day, deltaMl, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteWaterEvent removes a water event by ID.
func (d *DB) DeleteWaterEvent(ctx context.Context, id int64) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM water_events WHERE id=$1;", id)
	return err
}

// ClearWaterEvents removes every water event.
func (d *DB) ClearWaterEvents(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM water_events;")
	return err
}

// ListRecentWaterEvents returns the most recent water events up to limit.
func (d *DB) ListRecentWaterEvents(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT id, day, delta_ml, created_at FROM water_events ORDER BY created_at DESC, id DESC LIMIT $1;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make([]domain.WaterEvent, 0, limit)
	for rows.Next() {
		var e domain.WaterEvent
		if err := rows.Scan(&e.ID, &e.Day, &e.DeltaMl, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// WaterTotalForDay returns the summed adjustments of day.
func (d *DB) WaterTotalForDay(ctx context.Context, day string) (int, error) {
	var total int
	err := d.sql.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(delta_ml), 0) FROM water_events WHERE day = $1;", day,
	).Scan(&total)
	return total, err
}

// WaterTotalsBetween returns per-day totals for from <= day <= to.
func (d *DB) WaterTotalsBetween(ctx context.Context, from, to string) (domain.WaterLog, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT day, SUM(delta_ml) FROM water_events WHERE day >= $1 AND day <= $2 GROUP BY day;", from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make(domain.WaterLog)
	for rows.Next() {
		var day string
		var total int
		if err := rows.Scan(&day, &total); err != nil {
			return nil, err
		}
		out[day] = total
	}
	return out, rows.Err()
}
