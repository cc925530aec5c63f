package app

import (
	"context"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/nutrition"
)

// ProfileService manages the single user profile and its derived targets.
type ProfileService struct {
	repo domain.ProfileRepository
	now  func() time.Time
}

// NewProfileService creates a ProfileService backed by the given repository.
func NewProfileService(repo domain.ProfileRepository) *ProfileService {
	return &ProfileService{repo: repo, now: time.Now}
}

// Get returns the stored profile, or nil before onboarding.
func (s *ProfileService) Get(ctx context.Context) (*domain.UserProfile, error) {
	return s.repo.GetProfile(ctx)
}

// Save validates p, re-derives its calorie target unless the user overrode
// it, and stores it.
func (s *ProfileService) Save(ctx context.Context, p domain.UserProfile) (*domain.UserProfile, error) {
	derived, err := s.derive(p)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveProfile(ctx, derived); err != nil {
		return nil, err
	}
	return derived, nil
}

// derive validates p and fills in the derived calorie target without
// storing anything.
func (s *ProfileService) derive(p domain.UserProfile) (*domain.UserProfile, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.CalorieTargetOverridden {
		target, err := nutrition.DailyCalorieTarget(p)
		if err != nil {
			return nil, err
		}
		p.CalorieTarget = target
	}
	p.UpdatedAt = s.now()
	return &p, nil
}

// Clear removes the profile.
func (s *ProfileService) Clear(ctx context.Context) error {
	return s.repo.DeleteProfile(ctx)
}

// Targets returns the derived targets of the stored profile, or nil when no
// profile exists.
func (s *ProfileService) Targets(ctx context.Context) (*nutrition.Targets, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil || p == nil {
		return nil, err
	}
	t, err := nutrition.ComputeTargets(*p)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// SyncWeight applies a new body-weight measurement to the profile. It is a
// no-op before onboarding.
func (s *ProfileService) SyncWeight(ctx context.Context, weightKg float64) (*domain.UserProfile, error) {
	p, err := s.withWeight(ctx, weightKg)
	if err != nil || p == nil {
		return nil, err
	}
	if err := s.repo.SaveProfile(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// withWeight returns the stored profile re-derived for weightKg, unsaved, or
// nil before onboarding.
func (s *ProfileService) withWeight(ctx context.Context, weightKg float64) (*domain.UserProfile, error) {
	p, err := s.repo.GetProfile(ctx)
	if err != nil || p == nil {
		return nil, err
	}
	p.WeightKg = weightKg
	if p.WeightGoal != nil {
		p.WeightGoal.Current = weightKg
	}
	return s.derive(*p)
}
