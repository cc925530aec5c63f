package app

import (
	"context"
	"math"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// MaxRecentWeights caps ListRecent.
const MaxRecentWeights = 100

// WeightService records body-weight measurements and keeps the profile's
// weight, and with it the derived calorie target, in step.
type WeightService struct {
	repo     domain.WeightRepository
	profiles *ProfileService
	now      func() time.Time
}

// NewWeightService creates a WeightService backed by the given repository.
// When profiles is non-nil every recorded weight is synced into the profile.
func NewWeightService(repo domain.WeightRepository, profiles *ProfileService) *WeightService {
	return &WeightService{repo: repo, profiles: profiles, now: time.Now}
}

// WeightDay is the latest weigh-in of a day.
type WeightDay struct {
	Day   string              `json:"today"`
	Entry *domain.WeightEntry `json:"entry"`
	Kg    *float64            `json:"kg,omitempty"`
	// Profile is the profile as re-derived by the recording, when one exists.
	Profile *domain.UserProfile `json:"profile,omitempty"`
}

func newWeightDay(day string, e *domain.WeightEntry) WeightDay {
	wd := WeightDay{Day: day, Entry: e}
	if e != nil {
		kg := math.Round(e.Kg()*10) / 10
		wd.Kg = &kg
	}
	return wd
}

// Day returns the latest weigh-in for day, with a nil Entry when there is none.
func (s *WeightService) Day(ctx context.Context, day string) (WeightDay, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return WeightDay{}, err
	}
	e, err := s.repo.LatestWeightForLocalDay(ctx, day)
	if err != nil {
		return WeightDay{}, err
	}
	return newWeightDay(day, e), nil
}

// Record stores a measurement taken now and syncs it into the profile.
func (s *WeightService) Record(ctx context.Context, value float64, unit string) (WeightDay, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return WeightDay{}, domain.Invalid("value", "must be > 0")
	}
	if !domain.ValidWeightUnit(unit) {
		return WeightDay{}, domain.Invalid("unit", "must be %q or %q", domain.UnitKg, domain.UnitLb)
	}
	// The profile is re-derived before the event is stored so a measurement
	// the profile rejects leaves nothing behind.
	var profile *domain.UserProfile
	if s.profiles != nil {
		p, err := s.profiles.withWeight(ctx, domain.ConvertWeight(value, unit, domain.UnitKg))
		if err != nil {
			return WeightDay{}, err
		}
		profile = p
	}

	now := s.now()
	day := domain.DayKey(now)
	if _, err := s.repo.AddWeightEvent(ctx, value, unit, now); err != nil {
		return WeightDay{}, err
	}
	if profile != nil {
		if err := s.profiles.repo.SaveProfile(ctx, profile); err != nil {
			return WeightDay{}, err
		}
	}

	e, err := s.repo.LatestWeightForLocalDay(ctx, day)
	if err != nil {
		return WeightDay{}, err
	}
	wd := newWeightDay(day, e)
	wd.Profile = profile
	return wd, nil
}

// ListRecent returns up to limit events, newest first. Out-of-range limits
// fall back to MaxRecentWeights.
func (s *WeightService) ListRecent(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	if limit <= 0 || limit > MaxRecentWeights {
		limit = MaxRecentWeights
	}
	return s.repo.ListRecentWeightEvents(ctx, limit)
}

// UndoLast deletes the most recent event and reports today's weigh-in after
// the removal. The profile keeps the weight it was last synced with.
func (s *WeightService) UndoLast(ctx context.Context) (bool, WeightDay, error) {
	day := domain.DayKey(s.now())
	deleted, err := s.repo.DeleteLatestWeightEvent(ctx)
	if err != nil {
		return false, WeightDay{}, err
	}
	e, err := s.repo.LatestWeightForLocalDay(ctx, day)
	if err != nil {
		return deleted, WeightDay{}, err
	}
	return deleted, newWeightDay(day, e), nil
}
