package app

import (
	"context"
	"sync"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

const (
	// WaterGlassMl is the size of one glass.
	WaterGlassMl = 250
	// WaterTargetMl is the daily water goal.
	WaterTargetMl = 2000
	// MaxWaterDeltaMl bounds a single adjustment.
	MaxWaterDeltaMl = 5000
	// MaxWaterDayMl bounds an absolute daily total set by the user.
	MaxWaterDayMl = 20000
)

// WaterService encapsulates water-tracking use cases.
type WaterService struct {
	repo domain.WaterRepository
	now  func() time.Time

	// mu serializes read-then-write adjustments so the day total never
	// goes below zero.
	mu sync.Mutex
}

// NewWaterService creates a WaterService backed by the given repository.
func NewWaterService(repo domain.WaterRepository) *WaterService {
	return &WaterService{repo: repo, now: time.Now}
}

// WaterDay is a day's total and progress toward WaterTargetMl.
type WaterDay struct {
	Day      string  `json:"day"`
	TotalMl  int     `json:"totalMl"`
	TargetMl int     `json:"targetMl"`
	Glasses  int     `json:"glasses"`
	Progress float64 `json:"progress"`
}

// NewWaterDay builds the progress view of a day total. Progress is capped at 1.
func NewWaterDay(day string, totalMl int) WaterDay {
	return WaterDay{
		Day:      day,
		TotalMl:  totalMl,
		TargetMl: WaterTargetMl,
		Glasses:  totalMl / WaterGlassMl,
		Progress: min(1, float64(totalMl)/WaterTargetMl),
	}
}

// GetTotal returns the milliliters logged on day.
func (s *WaterService) GetTotal(ctx context.Context, day string) (WaterDay, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return WaterDay{}, err
	}
	total, err := s.repo.WaterTotalForDay(ctx, day)
	if err != nil {
		return WaterDay{}, err
	}
	return NewWaterDay(day, total), nil
}

// RecordEvent validates and stores a signed adjustment. A removal larger than
// the day's total is reduced to exactly the total; an adjustment that ends up
// zero is not stored and returns id 0.
func (s *WaterService) RecordEvent(ctx context.Context, day string, deltaMl int) (int64, WaterDay, error) {
	if deltaMl == 0 || deltaMl < -MaxWaterDeltaMl || deltaMl > MaxWaterDeltaMl {
		return 0, WaterDay{}, domain.Invalid("deltaMl", "must be non-zero and within [-%d, %d]", MaxWaterDeltaMl, MaxWaterDeltaMl)
	}
	return s.apply(ctx, day, func(int) int { return deltaMl })
}

// AddGlass adds one glass to day.
func (s *WaterService) AddGlass(ctx context.Context, day string) (int64, WaterDay, error) {
	return s.RecordEvent(ctx, day, WaterGlassMl)
}

// RemoveGlass removes one glass from day, never going below zero.
func (s *WaterService) RemoveGlass(ctx context.Context, day string) (int64, WaterDay, error) {
	return s.RecordEvent(ctx, day, -WaterGlassMl)
}

// Set records whatever adjustment brings day's total to ml.
func (s *WaterService) Set(ctx context.Context, day string, ml int) (int64, WaterDay, error) {
	if ml < 0 || ml > MaxWaterDayMl {
		return 0, WaterDay{}, domain.Invalid("totalMl", "must be within [0, %d]", MaxWaterDayMl)
	}
	return s.apply(ctx, day, func(total int) int { return ml - total })
}

func (s *WaterService) apply(ctx context.Context, day string, delta func(total int) int) (int64, WaterDay, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return 0, WaterDay{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	total, err := s.repo.WaterTotalForDay(ctx, day)
	if err != nil {
		return 0, WaterDay{}, err
	}
	d := delta(total)
	if total+d < 0 {
		d = -total
	}
	if d == 0 {
		return 0, NewWaterDay(day, total), nil
	}
	id, err := s.repo.AddWaterEvent(ctx, day, d, s.now())
	if err != nil {
		return 0, WaterDay{}, err
	}
	return id, NewWaterDay(day, total+d), nil
}

// ListRecent returns the most recent water events up to limit.
func (s *WaterService) ListRecent(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	return s.repo.ListRecentWaterEvents(ctx, limit)
}

// UndoLast deletes the most recent water event.
func (s *WaterService) UndoLast(ctx context.Context) (bool, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.repo.ListRecentWaterEvents(ctx, 1)
	if err != nil {
		return false, 0, err
	}
	if len(items) == 0 {
		return false, 0, nil
	}
	if err := s.repo.DeleteWaterEvent(ctx, items[0].ID); err != nil {
		return false, 0, err
	}
	return true, items[0].ID, nil
}
