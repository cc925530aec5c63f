package sqlite_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshua-Precious/Nutrical/internal/adapter/repotest"
	"github.com/Joshua-Precious/Nutrical/internal/adapter/sqlite"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

func openTemp(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(filepath.Join(t.TempDir(), "nutrical.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestRepositories(t *testing.T) {
	repotest.Run(t, func(t *testing.T) (repotest.Store, domain.SessionRepository) {
		db := openTemp(t)
		return db, sqlite.NewSessionRepo(db)
	})
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nutrical.db")
	ctx := context.Background()

	db, err := sqlite.Open(path)
	require.NoError(t, err)
	_, err = db.AddWaterEvent(ctx, "2026-03-10", 500, time.Now())
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = sqlite.Open(path)
	require.NoError(t, err)
	defer db.Close() //nolint:errcheck

	total, err := db.WaterTotalForDay(ctx, "2026-03-10")
	require.NoError(t, err)
	assert.Equal(t, 500, total)
}

func TestWaterTotalsBetween_GroupsByDay(t *testing.T) {
	db := openTemp(t)
	ctx := context.Background()
	now := time.Now()

	for _, ev := range []struct {
		day   string
		delta int
	}{
		{"2026-03-09", 250},
		{"2026-03-10", 250},
		{"2026-03-10", 500},
		{"2026-03-10", -250},
		{"2026-03-12", 1000},
	} {
		_, err := db.AddWaterEvent(ctx, ev.day, ev.delta, now)
		require.NoError(t, err)
	}

	totals, err := db.WaterTotalsBetween(ctx, "2026-03-10", "2026-03-11")
	require.NoError(t, err)
	assert.Equal(t, domain.WaterLog{"2026-03-10": 500}, totals)
}
