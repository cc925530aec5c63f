package domain

import (
	"context"
	"time"
)

// WeightEntry is a single body-weight measurement.
type WeightEntry struct {
	ID        int64     `json:"id"`
	Day       string    `json:"day"`
	Value     float64   `json:"value"`
	Unit      string    `json:"unit"`
	CreatedAt time.Time `json:"createdAt"`
}

// Kg returns the measurement in kilograms.
func (e WeightEntry) Kg() float64 {
	return ConvertWeight(e.Value, e.Unit, "kg")
}

// WeightLog is the latest weigh-in of each day, keyed by local day.
type WeightLog map[string]WeightEntry

// WeightRepository is the port for weight persistence.
type WeightRepository interface {
	AddWeightEvent(ctx context.Context, value float64, unit string, createdAt time.Time) (int64, error)
	DeleteLatestWeightEvent(ctx context.Context) (bool, error)
	// LatestWeightForLocalDay returns nil, nil when the day has no entry.
	LatestWeightForLocalDay(ctx context.Context, localDay string) (*WeightEntry, error)
	ListRecentWeightEvents(ctx context.Context, limit int) ([]WeightEntry, error)
	// LatestWeightsBetween returns the latest entry of every local day with
	// from <= day <= to; days without a weigh-in are absent.
	LatestWeightsBetween(ctx context.Context, from, to string) (WeightLog, error)
}
