// Package postgres implements the domain repositories on PostgreSQL through
// database/sql and github.com/lib/pq.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// DB wraps a *sql.DB and implements domain repository interfaces.
type DB struct {
	sql *sql.DB
}

var (
	_ domain.WeightRepository     = (*DB)(nil)
	_ domain.WaterRepository      = (*DB)(nil)
	_ domain.UserRepository       = (*DB)(nil)
	_ domain.ProfileRepository    = (*DB)(nil)
	_ domain.FoodLogRepository    = (*DB)(nil)
	_ domain.CustomFoodRepository = (*DB)(nil)
	_ domain.RecipeRepository     = (*DB)(nil)
	_ domain.SessionRepository    = (*SessionRepo)(nil)
)

// Open connects to PostgreSQL, pings, and runs migrations.
func Open(connStr string) (*DB, error) {
	s, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}
	s.SetMaxOpenConns(10)
	s.SetMaxIdleConns(5)
	s.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.PingContext(ctx); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	d := &DB{sql: s}
	if err := d.migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return d, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

func (d *DB) migrate(ctx context.Context) error {
	stmts := []string{
		"CREATE TABLE IF NOT EXISTS weight_events (id BIGSERIAL PRIMARY KEY, value DOUBLE PRECISION NOT NULL, unit TEXT NOT NULL CHECK(unit IN ('kg','lb')), created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_weight_events_created_at ON weight_events(created_at);",
		"CREATE TABLE IF NOT EXISTS water_events (id BIGSERIAL PRIMARY KEY, day TEXT NOT NULL, delta_ml INTEGER NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_water_events_day ON water_events(day);",
		"CREATE INDEX IF NOT EXISTS idx_water_events_created_at ON water_events(created_at);",
		"CREATE TABLE IF NOT EXISTS users (id BIGSERIAL PRIMARY KEY, username TEXT UNIQUE NOT NULL, password_hash TEXT NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE TABLE IF NOT EXISTS sessions (token TEXT PRIMARY KEY, user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE, user_agent TEXT NOT NULL DEFAULT '', ip TEXT NOT NULL DEFAULT '', expires_at TIMESTAMPTZ NOT NULL, created_at TIMESTAMPTZ NOT NULL);",
		"CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions(expires_at);",
		`CREATE TABLE IF NOT EXISTS profile (
			id SMALLINT PRIMARY KEY CHECK (id = 1),
			age INTEGER NOT NULL,
			gender TEXT NOT NULL CHECK (gender IN ('male','female')),
			height_cm DOUBLE PRECISION NOT NULL,
			weight_kg DOUBLE PRECISION NOT NULL,
			activity_level TEXT NOT NULL,
			goal TEXT NOT NULL CHECK (goal IN ('lose','maintain','gain')),
			calorie_target INTEGER NOT NULL,
			calorie_target_overridden BOOLEAN NOT NULL DEFAULT FALSE,
			macro_ratios JSONB,
			weight_goal JSONB,
			updated_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS food_entries (
			id TEXT PRIMARY KEY,
			day TEXT NOT NULL,
			meal TEXT NOT NULL CHECK (meal IN ('breakfast','lunch','dinner','snack')),
			name TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			serving_qty DOUBLE PRECISION NOT NULL CHECK (serving_qty > 0),
			serving_unit TEXT NOT NULL,
			calories DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			carbs DOUBLE PRECISION NOT NULL,
			fat DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		"CREATE INDEX IF NOT EXISTS idx_food_entries_day ON food_entries(day);",
		`CREATE TABLE IF NOT EXISTS custom_foods (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			brand TEXT NOT NULL DEFAULT '',
			serving_size DOUBLE PRECISION NOT NULL,
			serving_unit TEXT NOT NULL,
			calories DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			carbs DOUBLE PRECISION NOT NULL,
			fat DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS recipes (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			servings INTEGER NOT NULL CHECK (servings >= 1),
			ingredients JSONB NOT NULL,
			calories DOUBLE PRECISION NOT NULL,
			protein DOUBLE PRECISION NOT NULL,
			carbs DOUBLE PRECISION NOT NULL,
			fat DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);`,
	}

	for _, stmt := range stmts {
		if _, err := d.sql.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// expectOne maps a zero-row write to domain.ErrNotFound.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Truncate empties every table. Intended for tests against a disposable database.
func (d *DB) Truncate(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx,
		"TRUNCATE weight_events, water_events, sessions, users, profile, food_entries, custom_foods, recipes RESTART IDENTITY CASCADE")
	return err
}
