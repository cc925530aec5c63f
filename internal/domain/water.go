package domain

import (
	"context"
	"time"
)

// WaterEvent is a signed milliliter adjustment to one day's water total.
type WaterEvent struct {
	ID        int64     `json:"id"`
	Day       string    `json:"day"`
	DeltaMl   int       `json:"deltaMl"`
	CreatedAt time.Time `json:"createdAt"`
}

// WaterRepository is the port for water persistence.
type WaterRepository interface {
	AddWaterEvent(ctx context.Context, day string, deltaMl int, createdAt time.Time) (int64, error)
	DeleteWaterEvent(ctx context.Context, id int64) error
	ListRecentWaterEvents(ctx context.Context, limit int) ([]WaterEvent, error)
	WaterTotalForDay(ctx context.Context, day string) (int, error)
	// WaterTotalsBetween returns per-day totals for from <= day <= to; days
	// without events are absent.
	WaterTotalsBetween(ctx context.Context, from, to string) (WaterLog, error)
	ClearWaterEvents(ctx context.Context) error
}
