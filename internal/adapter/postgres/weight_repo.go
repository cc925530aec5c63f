package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

const weightColumns = "id, value, unit, created_at"

// scanWeight reads one weight row and keys it by the local day it was taken.
func scanWeight(row rowScanner) (domain.WeightEntry, error) {
	var e domain.WeightEntry
	if err := row.Scan(&e.ID, &e.Value, &e.Unit, &e.CreatedAt); err != nil {
		return domain.WeightEntry{}, err
	}
	e.CreatedAt = e.CreatedAt.UTC()
	e.Day = domain.DayKey(e.CreatedAt)
	return e, nil
}

func (d *DB) AddWeightEvent(ctx context.Context, value float64, unit string, createdAt time.Time) (int64, error) {
	var id int64
	err := d.sql.QueryRowContext(ctx,
		"INSERT INTO weight_events(value, unit, created_at) VALUES($1, $2, $3) RETURNING id;",
		value, unit, createdAt.UTC(),
	).Scan(&id)
	return id, err
}

// DeleteLatestWeightEvent removes the newest event and reports whether one
// existed.
func (d *DB) DeleteLatestWeightEvent(ctx context.Context) (bool, error) {
	res, err := d.sql.ExecContext(ctx,
		"DELETE FROM weight_events WHERE id = (SELECT id FROM weight_events ORDER BY created_at DESC, id DESC LIMIT 1);")
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// LatestWeightForLocalDay bounds the query by the local day's start and end
// so the created_at index is used.
func (d *DB) LatestWeightForLocalDay(ctx context.Context, localDay string) (*domain.WeightEntry, error) {
	start, end, err := domain.DayStartLocal(localDay)
	if err != nil {
		return nil, err
	}
	e, err := scanWeight(d.sql.QueryRowContext(ctx,
		"SELECT "+weightColumns+" FROM weight_events WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at DESC, id DESC LIMIT 1;",
		start.UTC(), end.UTC(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// LatestWeightsBetween reads the window oldest first so the newest event of
// each day is the one kept.
func (d *DB) LatestWeightsBetween(ctx context.Context, from, to string) (domain.WeightLog, error) {
	start, _, err := domain.DayStartLocal(from)
	if err != nil {
		return nil, err
	}
	_, end, err := domain.DayStartLocal(to)
	if err != nil {
		return nil, err
	}
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+weightColumns+" FROM weight_events WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at, id;",
		start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := make(domain.WeightLog)
	for rows.Next() {
		e, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		out[e.Day] = e
	}
	return out, rows.Err()
}

func (d *DB) ListRecentWeightEvents(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+weightColumns+" FROM weight_events ORDER BY created_at DESC, id DESC LIMIT $1;", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	var out []domain.WeightEntry
	for rows.Next() {
		e, err := scanWeight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
