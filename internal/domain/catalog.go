package domain

import (
	"context"
	"strings"
	"time"
)

// Product is a per-100 g (or per-100 ml) nutrient record supplied by a food
// source: a lookup service, a custom food, or a manual form.
type Product struct {
	Name    string    `json:"name"`
	Brand   string    `json:"brand,omitempty"`
	Per100g Nutrients `json:"per100g"`

	Fiber        *float64 `json:"fiber,omitempty"`
	Sugar        *float64 `json:"sugar,omitempty"`
	Sodium       *float64 `json:"sodium,omitempty"`
	SaturatedFat *float64 `json:"saturatedFat,omitempty"`
	Cholesterol  *float64 `json:"cholesterol,omitempty"`

	Source string `json:"source,omitempty"`
}

// Validate checks the product's name and core nutrients.
func (p *Product) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	return p.Per100g.Validate("per100g.")
}

// CustomFood is a user-defined per-100 g record with a default serving.
type CustomFood struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	ServingSize float64   `json:"servingSize"`
	ServingUnit string    `json:"servingUnit"`
	Per100g     Nutrients `json:"per100g"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Validate checks the custom food's fields.
func (f *CustomFood) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if !finite(f.ServingSize) || f.ServingSize <= 0 {
		return Invalid("servingSize", "must be > 0")
	}
	if strings.TrimSpace(f.ServingUnit) == "" {
		return Invalid("servingUnit", "must not be empty")
	}
	return f.Per100g.Validate("per100g.")
}

// Product returns the custom food as a product record.
func (f *CustomFood) Product() Product {
	return Product{Name: f.Name, Brand: f.Brand, Per100g: f.Per100g, Source: "custom"}
}

// RecipeIngredient is one component of a recipe with nutrients already
// scaled to its quantity.
type RecipeIngredient struct {
	FoodID   string    `json:"foodId,omitempty"`
	FoodName string    `json:"foodName"`
	Quantity float64   `json:"quantity"`
	Unit     string    `json:"unit"`
	Totals   Nutrients `json:"totals"`
}

// Recipe is a multi-ingredient composition. Totals cover the whole recipe.
type Recipe struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Servings    int                `json:"servings"`
	Ingredients []RecipeIngredient `json:"ingredients"`
	Totals      Nutrients          `json:"totals"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// Validate checks the recipe's fields and ingredients.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if r.Servings < 1 {
		return Invalid("servings", "must be >= 1")
	}
	if len(r.Ingredients) == 0 {
		return Invalid("ingredients", "must not be empty")
	}
	for _, in := range r.Ingredients {
		if strings.TrimSpace(in.FoodName) == "" {
			return Invalid("ingredients.foodName", "must not be empty")
		}
		if !finite(in.Quantity) || in.Quantity <= 0 {
			return Invalid("ingredients.quantity", "must be > 0")
		}
		if err := in.Totals.Validate("ingredients.totals."); err != nil {
			return err
		}
	}
	return nil
}

// CustomFoodRepository is the port for custom food persistence.
type CustomFoodRepository interface {
	AddCustomFood(ctx context.Context, f CustomFood) error
	// GetCustomFood returns ErrNotFound when id is unknown.
	GetCustomFood(ctx context.Context, id string) (*CustomFood, error)
	ListCustomFoods(ctx context.Context) ([]CustomFood, error)
	DeleteCustomFood(ctx context.Context, id string) error
	ClearCustomFoods(ctx context.Context) error
}

// RecipeRepository is the port for recipe persistence.
type RecipeRepository interface {
	AddRecipe(ctx context.Context, r Recipe) error
	// GetRecipe returns ErrNotFound when id is unknown.
	GetRecipe(ctx context.Context, id string) (*Recipe, error)
	ListRecipes(ctx context.Context) ([]Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
	ClearRecipes(ctx context.Context) error
}
