package app

import (
	"context"
	"fmt"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// ResetService wipes the nutrition data of the installation: the food log,
// water intake, custom foods, recipes and the profile. Weight history and
// accounts are kept.
type ResetService struct {
	entries  domain.FoodLogRepository
	water    domain.WaterRepository
	foods    domain.CustomFoodRepository
	recipes  domain.RecipeRepository
	profiles domain.ProfileRepository
}

// NewResetService creates a ResetService over the given repositories.
func NewResetService(entries domain.FoodLogRepository, water domain.WaterRepository, foods domain.CustomFoodRepository, recipes domain.RecipeRepository, profiles domain.ProfileRepository) *ResetService {
	return &ResetService{entries: entries, water: water, foods: foods, recipes: recipes, profiles: profiles}
}

// ClearAll stops at the first failing store. Every step is idempotent, so
// a retry finishes the job.
func (s *ResetService) ClearAll(ctx context.Context) error {
	steps := []struct {
		name  string
		clear func(context.Context) error
	}{
		{"food log", s.entries.ClearEntries},
		{"water", s.water.ClearWaterEvents},
		{"recipes", s.recipes.ClearRecipes},
		{"custom foods", s.foods.ClearCustomFoods},
		{"profile", s.profiles.DeleteProfile},
	}
	for _, step := range steps {
		if err := step.clear(ctx); err != nil {
			return fmt.Errorf("clear %s: %w", step.name, err)
		}
	}
	return nil
}
