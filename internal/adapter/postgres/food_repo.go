package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

const entryColumns = "id, day, meal, name, brand, serving_qty, serving_unit, calories, protein, carbs, fat, created_at"

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (domain.FoodLogEntry, error) {
	var e domain.FoodLogEntry
	err := row.Scan(&e.ID, &e.Date, &e.Meal, &e.Name, &e.Brand, &e.ServingQty, &e.ServingUnit,
		&e.Calories, &e.Protein, &e.Carbs, &e.Fat, &e.CreatedAt)
	e.CreatedAt = e.CreatedAt.UTC()
	return e, err
}

// AddEntry inserts a food log entry.
func (d *DB) AddEntry(ctx context.Context, e domain.FoodLogEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO food_entries ("+entryColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)",
		e.ID, e.Date, e.Meal, e.Name, e.Brand, e.ServingQty, e.ServingUnit,
		e.Calories, e.Protein, e.Carbs, e.Fat, e.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("entry %s already exists: %w", e.ID, err)
	}
	return err
}

// GetEntry returns the entry with id.
func (d *DB) GetEntry(ctx context.Context, id string) (*domain.FoodLogEntry, error) {
	e, err := scanEntry(d.sql.QueryRowContext(ctx,
		"SELECT "+entryColumns+" FROM food_entries WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry overwrites every mutable column of an existing entry.
func (d *DB) UpdateEntry(ctx context.Context, e domain.FoodLogEntry) error {
	return expectOne(d.sql.ExecContext(ctx,
		`UPDATE food_entries SET day = $2, meal = $3, name = $4, brand = $5, serving_qty = $6,
			serving_unit = $7, calories = $8, protein = $9, carbs = $10, fat = $11
		WHERE id = $1`,
		e.ID, e.Date, e.Meal, e.Name, e.Brand, e.ServingQty, e.ServingUnit,
		e.Calories, e.Protein, e.Carbs, e.Fat,
	))
}

// DeleteEntry removes the entry with id.
func (d *DB) DeleteEntry(ctx context.Context, id string) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM food_entries WHERE id = $1", id))
}

// ClearEntries empties the food log.
func (d *DB) ClearEntries(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM food_entries")
	return err
}

// ListEntriesForDay returns the entries logged on day in insertion order.
func (d *DB) ListEntriesForDay(ctx context.Context, day string) ([]domain.FoodLogEntry, error) {
	return d.listEntries(ctx, day, day)
}

// ListEntriesBetween returns entries with from <= day <= to.
func (d *DB) ListEntriesBetween(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	return d.listEntries(ctx, from, to)
}

func (d *DB) listEntries(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+entryColumns+" FROM food_entries WHERE day >= $1 AND day <= $2 ORDER BY day, created_at, id",
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.FoodLogEntry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
