package app_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

func TestAddCustomFood(t *testing.T) {
	var stored domain.CustomFood
	foods := &mockCustomFoodRepo{
		addFn: func(_ context.Context, f domain.CustomFood) error {
			stored = f
			return nil
		},
	}
	svc := app.NewFoodService(foods, &mockRecipeRepo{})

	got, err := svc.AddCustomFood(context.Background(), domain.CustomFood{
		Name: "Granola", ServingSize: 45, ServingUnit: "g",
		Per100g: domain.Nutrients{Calories: 471, Protein: 10, Carbs: 64, Fat: 20},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" || stored.ID != got.ID {
		t.Fatalf("expected ID to be assigned and stored")
	}

	_, err = svc.AddCustomFood(context.Background(), domain.CustomFood{Name: "Bad", ServingSize: 0, ServingUnit: "g"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddRecipe_ComputesTotals(t *testing.T) {
	foods := &mockCustomFoodRepo{
		getFn: func(_ context.Context, id string) (*domain.CustomFood, error) {
			if id != "oats" {
				return nil, domain.ErrNotFound
			}
			return &domain.CustomFood{
				ID: "oats", Name: "Oats", ServingSize: 40, ServingUnit: "g",
				Per100g: domain.Nutrients{Calories: 389, Protein: 16.9, Carbs: 66.3, Fat: 6.9},
			}, nil
		},
	}
	var stored domain.Recipe
	recipes := &mockRecipeRepo{
		addFn: func(_ context.Context, r domain.Recipe) error {
			stored = r
			return nil
		},
	}
	svc := app.NewFoodService(foods, recipes)

	got, err := svc.AddRecipe(context.Background(), domain.Recipe{
		Name:     "Overnight oats",
		Servings: 2,
		Ingredients: []domain.RecipeIngredient{
			{FoodID: "oats", Quantity: 100},
			{FoodName: "Milk", Quantity: 200, Unit: "ml", Totals: domain.Nutrients{Calories: 100, Protein: 7, Carbs: 10, Fat: 3.5}},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Ingredients[0].FoodName != "Oats" || got.Ingredients[0].Unit != "g" {
		t.Fatalf("expected ingredient resolved from custom food, got %+v", got.Ingredients[0])
	}
	if got.Totals.Calories != 489 {
		t.Fatalf("expected 489 kcal, got %v", got.Totals.Calories)
	}
	if stored.ID != got.ID || stored.ID == "" {
		t.Fatal("expected recipe stored under generated ID")
	}
}

func TestAddRecipe_UnknownFood(t *testing.T) {
	svc := app.NewFoodService(&mockCustomFoodRepo{}, &mockRecipeRepo{})
	_, err := svc.AddRecipe(context.Background(), domain.Recipe{
		Name: "x", Servings: 1,
		Ingredients: []domain.RecipeIngredient{{FoodID: "missing", Quantity: 10}},
	})
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field != "ingredients.foodId" {
		t.Fatalf("expected ingredients.foodId validation error, got %v", err)
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatal("an unknown ingredient is a bad request, not a missing resource")
	}
}

func TestAddRecipe_RequiresIngredients(t *testing.T) {
	svc := app.NewFoodService(&mockCustomFoodRepo{}, &mockRecipeRepo{})
	_, err := svc.AddRecipe(context.Background(), domain.Recipe{Name: "Empty", Servings: 1})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}
