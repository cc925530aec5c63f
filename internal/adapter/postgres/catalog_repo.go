package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// --- CustomFoodRepository ---

// AddCustomFood inserts a custom food.
func (d *DB) AddCustomFood(ctx context.Context, f domain.CustomFood) error {
	_, err := d.sql.ExecContext(ctx,
		`INSERT INTO custom_foods (id, name, brand, serving_size, serving_unit, calories, protein, carbs, fat, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		f.ID, f.Name, f.Brand, f.ServingSize, f.ServingUnit,
		f.Per100g.Calories, f.Per100g.Protein, f.Per100g.Carbs, f.Per100g.Fat, f.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("custom food %s already exists: %w", f.ID, err)
	}
	return err
}

func scanCustomFood(row rowScanner) (domain.CustomFood, error) {
	var f domain.CustomFood
	err := row.Scan(&f.ID, &f.Name, &f.Brand, &f.ServingSize, &f.ServingUnit,
		&f.Per100g.Calories, &f.Per100g.Protein, &f.Per100g.Carbs, &f.Per100g.Fat, &f.CreatedAt)
	f.CreatedAt = f.CreatedAt.UTC()
	return f, err
}

const customFoodColumns = "id, name, brand, serving_size, serving_unit, calories, protein, carbs, fat, created_at"

// GetCustomFood returns the custom food with id.
func (d *DB) GetCustomFood(ctx context.Context, id string) (*domain.CustomFood, error) {
	f, err := scanCustomFood(d.sql.QueryRowContext(ctx,
		"SELECT "+customFoodColumns+" FROM custom_foods WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// ListCustomFoods returns every custom food ordered by name.
func (d *DB) ListCustomFoods(ctx context.Context) ([]domain.CustomFood, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+customFoodColumns+" FROM custom_foods ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.CustomFood{}
	for rows.Next() {
		f, err := scanCustomFood(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// DeleteCustomFood removes the custom food with id.
func (d *DB) DeleteCustomFood(ctx context.Context, id string) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM custom_foods WHERE id = $1", id))
}

// ClearCustomFoods removes every custom food.
func (d *DB) ClearCustomFoods(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM custom_foods")
	return err
}

// --- RecipeRepository ---

const recipeColumns = "id, name, servings, ingredients, calories, protein, carbs, fat, created_at"

// AddRecipe inserts a recipe. Ingredients are stored as JSONB.
func (d *DB) AddRecipe(ctx context.Context, r domain.Recipe) error {
	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		"INSERT INTO recipes ("+recipeColumns+") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		r.ID, r.Name, r.Servings, string(ingredients),
		r.Totals.Calories, r.Totals.Protein, r.Totals.Carbs, r.Totals.Fat, r.CreatedAt.UTC(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("recipe %s already exists: %w", r.ID, err)
	}
	return err
}

func scanRecipe(row rowScanner) (domain.Recipe, error) {
	var (
		r           domain.Recipe
		ingredients []byte
	)
	if err := row.Scan(&r.ID, &r.Name, &r.Servings, &ingredients,
		&r.Totals.Calories, &r.Totals.Protein, &r.Totals.Carbs, &r.Totals.Fat, &r.CreatedAt); err != nil {
		return r, err
	}
	r.CreatedAt = r.CreatedAt.UTC()
	if err := json.Unmarshal(ingredients, &r.Ingredients); err != nil {
		return r, fmt.Errorf("recipe %s ingredients: %w", r.ID, err)
	}
	return r, nil
}

// GetRecipe returns the recipe with id.
func (d *DB) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	r, err := scanRecipe(d.sql.QueryRowContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRecipes returns every recipe ordered by name.
func (d *DB) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT "+recipeColumns+" FROM recipes ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close() //nolint:errcheck

	out := []domain.Recipe{}
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// DeleteRecipe removes the recipe with id.
func (d *DB) DeleteRecipe(ctx context.Context, id string) error {
	return expectOne(d.sql.ExecContext(ctx, "DELETE FROM recipes WHERE id = $1", id))
}

// ClearRecipes removes every recipe.
func (d *DB) ClearRecipes(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM recipes")
	return err
}
