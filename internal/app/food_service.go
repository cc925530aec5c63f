package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/nutrition"
)

// FoodService manages custom foods and recipes.
type FoodService struct {
	foods   domain.CustomFoodRepository
	recipes domain.RecipeRepository
	now     func() time.Time
	newID   func() string
}

// NewFoodService creates a FoodService backed by the given repositories.
func NewFoodService(foods domain.CustomFoodRepository, recipes domain.RecipeRepository) *FoodService {
	return &FoodService{foods: foods, recipes: recipes, now: time.Now, newID: uuid.NewString}
}

// AddCustomFood validates and stores a custom food under a new ID.
func (s *FoodService) AddCustomFood(ctx context.Context, f domain.CustomFood) (*domain.CustomFood, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	f.ID = s.newID()
	f.CreatedAt = s.now()
	if err := s.foods.AddCustomFood(ctx, f); err != nil {
		return nil, err
	}
	return &f, nil
}

// ListCustomFoods returns every custom food.
func (s *FoodService) ListCustomFoods(ctx context.Context) ([]domain.CustomFood, error) {
	return s.foods.ListCustomFoods(ctx)
}

// DeleteCustomFood removes a custom food. Recipes that used it keep their
// already computed totals.
func (s *FoodService) DeleteCustomFood(ctx context.Context, id string) error {
	return s.foods.DeleteCustomFood(ctx, id)
}

// AddRecipe stores a recipe under a new ID. Ingredients that reference a
// custom food get their totals computed from it; the recipe totals are the
// sum of ingredient totals.
func (s *FoodService) AddRecipe(ctx context.Context, r domain.Recipe) (*domain.Recipe, error) {
	ingredients := make([]domain.RecipeIngredient, len(r.Ingredients))
	for i, in := range r.Ingredients {
		if in.FoodID != "" {
			f, err := s.foods.GetCustomFood(ctx, in.FoodID)
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.Invalid("ingredients.foodId", "unknown custom food %q", in.FoodID)
			}
			if err != nil {
				return nil, err
			}
			if in.Unit == "" {
				in.Unit = f.ServingUnit
			}
			totals, err := nutrition.ScaleProduct(f.Product(), in.Quantity, in.Unit)
			if err != nil {
				return nil, err
			}
			in.FoodName = f.Name
			in.Totals = totals
		}
		ingredients[i] = in
	}
	r.Ingredients = ingredients
	if err := r.Validate(); err != nil {
		return nil, err
	}
	r.Totals = nutrition.RecipeTotals(r.Ingredients)
	r.ID = s.newID()
	r.CreatedAt = s.now()
	if err := s.recipes.AddRecipe(ctx, r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipe returns a recipe by ID.
func (s *FoodService) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	return s.recipes.GetRecipe(ctx, id)
}

// ListRecipes returns every recipe.
func (s *FoodService) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	return s.recipes.ListRecipes(ctx)
}

// DeleteRecipe removes a recipe.
func (s *FoodService) DeleteRecipe(ctx context.Context, id string) error {
	return s.recipes.DeleteRecipe(ctx, id)
}
