package sqlite

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// --- WeightRepository ---

// AddWeightEvent inserts a new weight event.
func (d *DB) AddWeightEvent(ctx context.Context, value float64, unit string, createdAt time.Time) (int64, error) {
	ev := weightEvent{Value: value, Unit: unit, CreatedAt: createdAt.UTC()}
	if err := d.gorm.WithContext(ctx).Create(&ev).Error; err != nil {
		return 0, err
	}
	return ev.ID, nil
}

// DeleteLatestWeightEvent removes the most recent weight event.
func (d *DB) DeleteLatestWeightEvent(ctx context.Context) (bool, error) {
	deleted := false
	err := d.gorm.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ev weightEvent
		err := tx.Order("created_at DESC, id DESC").First(&ev).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		res := tx.Delete(&weightEvent{}, ev.ID)
		deleted = res.RowsAffected > 0
		return res.Error
	})
	return deleted, err
}

// LatestWeightForLocalDay returns the most recent weight entry for a local calendar day.
func (d *DB) LatestWeightForLocalDay(ctx context.Context, localDay string) (*domain.WeightEntry, error) {
	start, end, err := domain.DayStartLocal(localDay)
	if err != nil {
		return nil, err
	}
	var ev weightEvent
	err = d.gorm.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Order("created_at DESC, id DESC").
		First(&ev).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	e := ev.toDomain()
	e.Day = localDay
	return &e, nil
}

// ListRecentWeightEvents returns the most recent weight events up to limit.
func (d *DB) ListRecentWeightEvents(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	var rows []weightEvent
	if err := d.gorm.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.WeightEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
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
	var rows []weightEvent
	if err := d.gorm.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", start.UTC(), end.UTC()).
		Order("created_at, id").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(domain.WeightLog, len(rows))
	for _, r := range rows {
		e := r.toDomain()
		out[e.Day] = e
	}
	return out, nil
}

func (w weightEvent) toDomain() domain.WeightEntry {
	at := w.CreatedAt.UTC()
	return domain.WeightEntry{ID: w.ID, Day: domain.DayKey(at), Value: w.Value, Unit: w.Unit, CreatedAt: at}
}

// --- WaterRepository ---

// AddWaterEvent inserts a new water adjustment for day.
func (d *DB) AddWaterEvent(ctx context.Context, day string, deltaMl int, createdAt time.Time) (int64, error) {
	ev := waterEvent{Day: day, DeltaMl: deltaMl, CreatedAt: createdAt.UTC()}
	if err := d.gorm.WithContext(ctx).Create(&ev).Error; err != nil {
		return 0, err
	}
	return ev.ID, nil
}

// DeleteWaterEvent removes a water event by ID.
func (d *DB) DeleteWaterEvent(ctx context.Context, id int64) error {
	return d.gorm.WithContext(ctx).Delete(&waterEvent{}, id).Error
}

// ClearWaterEvents removes every water event.
func (d *DB) ClearWaterEvents(ctx context.Context) error {
	return d.gorm.WithContext(ctx).Where("1 = 1").Delete(&waterEvent{}).Error
}

// ListRecentWaterEvents returns the most recent water events up to limit.
func (d *DB) ListRecentWaterEvents(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	var rows []waterEvent
	if err := d.gorm.WithContext(ctx).Order("created_at DESC, id DESC").Limit(limit).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.WaterEvent, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.WaterEvent{ID: r.ID, Day: r.Day, DeltaMl: r.DeltaMl, CreatedAt: r.CreatedAt.UTC()})
	}
	return out, nil
}

// WaterTotalForDay returns the summed adjustments of day.
func (d *DB) WaterTotalForDay(ctx context.Context, day string) (int, error) {
	var total int
	err := d.gorm.WithContext(ctx).Model(&waterEvent{}).
		Select("COALESCE(SUM(delta_ml), 0)").
		Where("day = ?", day).
		Row().Scan(&total)
	return total, err
}

// WaterTotalsBetween returns per-day totals for from <= day <= to.
func (d *DB) WaterTotalsBetween(ctx context.Context, from, to string) (domain.WaterLog, error) {
	var rows []struct {
		Day   string
		Total int
	}
	err := d.gorm.WithContext(ctx).Model(&waterEvent{}).
		Select("day, SUM(delta_ml) AS total").
		Where("day >= ? AND day <= ?", from, to).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(domain.WaterLog, len(rows))
	for _, r := range rows {
		out[r.Day] = r.Total
	}
	return out, nil
}
