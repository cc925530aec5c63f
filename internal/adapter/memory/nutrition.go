package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// --- ProfileRepository ---

// GetProfile returns a copy of the stored profile.
func (db *DB) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.profile == nil {
		return nil, nil
	}
	return cloneProfile(db.profile), nil
}

// SaveProfile replaces the stored profile.
func (db *DB) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profile = cloneProfile(p)
	return nil
}

// DeleteProfile removes the stored profile.
func (db *DB) DeleteProfile(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.profile = nil
	return nil
}

func cloneProfile(p *domain.UserProfile) *domain.UserProfile {
	cp := *p
	if p.MacroRatios != nil {
		r := *p.MacroRatios
		cp.MacroRatios = &r
	}
	if p.WeightGoal != nil {
		g := *p.WeightGoal
		cp.WeightGoal = &g
	}
	return &cp
}

// --- FoodLogRepository ---

// AddEntry stores a new entry. IDs must be unique.
func (db *DB) AddEntry(ctx context.Context, e domain.FoodLogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.entries[e.ID]; ok {
		return fmt.Errorf("entry %s already exists", e.ID)
	}
	db.entries[e.ID] = e
	return nil
}

// GetEntry returns an entry by ID.
func (db *DB) GetEntry(ctx context.Context, id string) (*domain.FoodLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	e, ok := db.entries[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &e, nil
}

// UpdateEntry replaces an existing entry.
func (db *DB) UpdateEntry(ctx context.Context, e domain.FoodLogEntry) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.entries[e.ID]; !ok {
		return domain.ErrNotFound
	}
	db.entries[e.ID] = e
	return nil
}

// DeleteEntry removes an entry.
func (db *DB) DeleteEntry(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.entries[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.entries, id)
	return nil
}

// ListEntriesForDay returns the day's entries in logging order.
func (db *DB) ListEntriesForDay(ctx context.Context, day string) ([]domain.FoodLogEntry, error) {
	return db.ListEntriesBetween(ctx, day, day)
}

// ListEntriesBetween returns entries with from <= date <= to, ordered by date
// and then logging time, read under one lock.
func (db *DB) ListEntriesBetween(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := []domain.FoodLogEntry{}
	for _, e := range db.entries {
		if e.Date >= from && e.Date <= to {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// ClearEntries empties the food log.
func (db *DB) ClearEntries(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.entries = make(map[string]domain.FoodLogEntry)
	return nil
}

// --- CustomFoodRepository ---

// AddCustomFood stores a custom food.
func (db *DB) AddCustomFood(ctx context.Context, f domain.CustomFood) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.customFoods[f.ID]; ok {
		return fmt.Errorf("custom food %s already exists", f.ID)
	}
	db.customFoods[f.ID] = f
	return nil
}

// GetCustomFood returns a custom food by ID.
func (db *DB) GetCustomFood(ctx context.Context, id string) (*domain.CustomFood, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	f, ok := db.customFoods[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &f, nil
}

// ListCustomFoods returns every custom food, by name.
func (db *DB) ListCustomFoods(ctx context.Context) ([]domain.CustomFood, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.CustomFood, 0, len(db.customFoods))
	for _, f := range db.customFoods {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteCustomFood removes a custom food.
func (db *DB) DeleteCustomFood(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.customFoods[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.customFoods, id)
	return nil
}

// ClearCustomFoods removes every custom food.
func (db *DB) ClearCustomFoods(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.customFoods = make(map[string]domain.CustomFood)
	return nil
}

// --- RecipeRepository ---

// AddRecipe stores a recipe.
func (db *DB) AddRecipe(ctx context.Context, r domain.Recipe) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.recipes[r.ID]; ok {
		return fmt.Errorf("recipe %s already exists", r.ID)
	}
	r.Ingredients = append([]domain.RecipeIngredient(nil), r.Ingredients...)
	db.recipes[r.ID] = r
	return nil
}

// GetRecipe returns a recipe by ID.
func (db *DB) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	r, ok := db.recipes[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	r.Ingredients = append([]domain.RecipeIngredient(nil), r.Ingredients...)
	return &r, nil
}

// ListRecipes returns every recipe, by name.
func (db *DB) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Recipe, 0, len(db.recipes))
	for _, r := range db.recipes {
		r.Ingredients = append([]domain.RecipeIngredient(nil), r.Ingredients...)
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// DeleteRecipe removes a recipe.
func (db *DB) DeleteRecipe(ctx context.Context, id string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if _, ok := db.recipes[id]; !ok {
		return domain.ErrNotFound
	}
	delete(db.recipes, id)
	return nil
}

// ClearRecipes removes every recipe.
func (db *DB) ClearRecipes(ctx context.Context) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.recipes = make(map[string]domain.Recipe)
	return nil
}
