package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/nutrition"
)

// FoodLogService encapsulates food logging use cases.
type FoodLogService struct {
	entries domain.FoodLogRepository
	foods   domain.CustomFoodRepository
	recipes domain.RecipeRepository
	now     func() time.Time
	newID   func() string
}

// NewFoodLogService creates a FoodLogService. Custom foods and recipes are
// read when logging from them.
func NewFoodLogService(entries domain.FoodLogRepository, foods domain.CustomFoodRepository, recipes domain.RecipeRepository) *FoodLogService {
	return &FoodLogService{
		entries: entries,
		foods:   foods,
		recipes: recipes,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// ProductLog is a request to log a quantity of a per-100 g product.
type ProductLog struct {
	Product     domain.Product `json:"product"`
	Date        string         `json:"date"`
	Meal        domain.Meal    `json:"meal"`
	ServingQty  float64        `json:"servingQty"`
	ServingUnit string         `json:"servingUnit"`
}

// LogProduct scales the product to the logged quantity and stores the entry.
func (s *FoodLogService) LogProduct(ctx context.Context, req ProductLog) (*domain.FoodLogEntry, error) {
	e, err := nutrition.NewEntryFromProduct(req.Product, req.Date, req.Meal, req.ServingQty, req.ServingUnit)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, e)
}

// LogEntry stores a manual entry whose nutrients are already totals.
func (s *FoodLogService) LogEntry(ctx context.Context, e domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	e.ID = ""
	return s.insert(ctx, e)
}

// LogCustomFood logs qty of unit of a custom food. A zero qty logs the
// food's default serving.
func (s *FoodLogService) LogCustomFood(ctx context.Context, id, date string, meal domain.Meal, qty float64, unit string) (*domain.FoodLogEntry, error) {
	f, err := s.foods.GetCustomFood(ctx, id)
	if err != nil {
		return nil, err
	}
	if qty == 0 {
		qty, unit = f.ServingSize, f.ServingUnit
	}
	if unit == "" {
		unit = f.ServingUnit
	}
	e, err := nutrition.NewEntryFromProduct(f.Product(), date, meal, qty, unit)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, e)
}

// LogRecipe logs the given number of servings of a recipe.
func (s *FoodLogService) LogRecipe(ctx context.Context, id, date string, meal domain.Meal, servings float64) (*domain.FoodLogEntry, error) {
	r, err := s.recipes.GetRecipe(ctx, id)
	if err != nil {
		return nil, err
	}
	e, err := nutrition.NewEntryFromRecipe(*r, date, meal, servings)
	if err != nil {
		return nil, err
	}
	return s.insert(ctx, e)
}

func (s *FoodLogService) insert(ctx context.Context, e domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	if err := s.entries.AddEntry(ctx, e); err != nil {
		return nil, err
	}
	return &e, nil
}

// EntryUpdate holds the editable fields of a log entry. Nil fields are kept.
type EntryUpdate struct {
	ServingQty *float64     `json:"servingQty,omitempty"`
	Meal       *domain.Meal `json:"meal,omitempty"`
}

// Edit changes an entry's meal and/or quantity. A new quantity rescales all
// four nutrient fields by new/old.
func (s *FoodLogService) Edit(ctx context.Context, id string, u EntryUpdate) (*domain.FoodLogEntry, error) {
	e, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := *e
	if u.ServingQty != nil {
		updated, err = nutrition.RescaleEntry(updated, *u.ServingQty)
		if err != nil {
			return nil, err
		}
	}
	if u.Meal != nil {
		if !u.Meal.Valid() {
			return nil, domain.Invalid("meal", "unknown meal %q", *u.Meal)
		}
		updated.Meal = *u.Meal
	}
	if err := s.entries.UpdateEntry(ctx, updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes an entry and returns it so the caller can offer undo.
func (s *FoodLogService) Delete(ctx context.Context, id string) (*domain.FoodLogEntry, error) {
	e, err := s.entries.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.entries.DeleteEntry(ctx, id); err != nil {
		return nil, err
	}
	return e, nil
}

// Restore re-inserts a deleted entry under its original ID.
func (s *FoodLogService) Restore(ctx context.Context, e domain.FoodLogEntry) (*domain.FoodLogEntry, error) {
	if e.ID == "" {
		return nil, domain.Invalid("id", "must not be empty")
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.entries.GetEntry(ctx, e.ID); err == nil {
		return nil, domain.Invalid("id", "entry %s already exists", e.ID)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.insert(ctx, e)
}

// ListDay returns the entries logged on day.
func (s *FoodLogService) ListDay(ctx context.Context, day string) ([]domain.FoodLogEntry, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	return s.entries.ListEntriesForDay(ctx, day)
}
