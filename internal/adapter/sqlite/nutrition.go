package sqlite

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

const profileID = 1

// --- ProfileRepository ---

// GetProfile returns the stored profile, or nil when none has been saved.
func (d *DB) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var row profileRow
	err := d.gorm.WithContext(ctx).First(&row, profileID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := &domain.UserProfile{
		Age:                     row.Age,
		Gender:                  domain.Gender(row.Gender),
		HeightCm:                row.HeightCm,
		WeightKg:                row.WeightKg,
		ActivityLevel:           domain.ActivityLevel(row.ActivityLevel),
		Goal:                    domain.Goal(row.Goal),
		CalorieTarget:           row.CalorieTarget,
		CalorieTargetOverridden: row.CalorieTargetOverridden,
		UpdatedAt:               row.UpdatedAt.UTC(),
	}
	if row.MacroRatios != nil {
		p.MacroRatios = new(domain.MacroRatios)
		if err := json.Unmarshal([]byte(*row.MacroRatios), p.MacroRatios); err != nil {
			return nil, err
		}
	}
	if row.WeightGoal != nil {
		p.WeightGoal = new(domain.WeightGoal)
		if err := json.Unmarshal([]byte(*row.WeightGoal), p.WeightGoal); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveProfile upserts the single profile row.
func (d *DB) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	row := profileRow{
		ID:                      profileID,
		Age:                     p.Age,
		Gender:                  string(p.Gender),
		HeightCm:                p.HeightCm,
		WeightKg:                p.WeightKg,
		ActivityLevel:           string(p.ActivityLevel),
		Goal:                    string(p.Goal),
		CalorieTarget:           p.CalorieTarget,
		CalorieTargetOverridden: p.CalorieTargetOverridden,
		UpdatedAt:               p.UpdatedAt.UTC(),
	}
	var err error
	if row.MacroRatios, err = jsonText(p.MacroRatios != nil, p.MacroRatios); err != nil {
		return err
	}
	if row.WeightGoal, err = jsonText(p.WeightGoal != nil, p.WeightGoal); err != nil {
		return err
	}
	return d.gorm.WithContext(ctx).Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}

// DeleteProfile removes the stored profile.
func (d *DB) DeleteProfile(ctx context.Context) error {
	return d.gorm.WithContext(ctx).Delete(&profileRow{}, profileID).Error
}

func jsonText(present bool, v any) (*string, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// --- FoodLogRepository ---

func entryRow(e domain.FoodLogEntry) foodEntry {
	return foodEntry{
		ID:          e.ID,
		Day:         e.Date,
		Meal:        string(e.Meal),
		Name:        e.Name,
		Brand:       e.Brand,
		ServingQty:  e.ServingQty,
		ServingUnit: e.ServingUnit,
		Calories:    e.Calories,
		Protein:     e.Protein,
		Carbs:       e.Carbs,
		Fat:         e.Fat,
		CreatedAt:   e.CreatedAt.UTC(),
	}
}

func (r foodEntry) toDomain() domain.FoodLogEntry {
	return domain.FoodLogEntry{
		ID:          r.ID,
		Date:        r.Day,
		Meal:        domain.Meal(r.Meal),
		Name:        r.Name,
		Brand:       r.Brand,
		ServingQty:  r.ServingQty,
		ServingUnit: r.ServingUnit,
		Calories:    r.Calories,
		Protein:     r.Protein,
		Carbs:       r.Carbs,
		Fat:         r.Fat,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// AddEntry inserts a food log entry.
func (d *DB) AddEntry(ctx context.Context, e domain.FoodLogEntry) error {
	row := entryRow(e)
	return d.gorm.WithContext(ctx).Create(&row).Error
}

// GetEntry returns the entry with id.
func (d *DB) GetEntry(ctx context.Context, id string) (*domain.FoodLogEntry, error) {
	var row foodEntry
	err := d.gorm.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	e := row.toDomain()
	return &e, nil
}

// UpdateEntry overwrites every mutable column of an existing entry.
func (d *DB) UpdateEntry(ctx context.Context, e domain.FoodLogEntry) error {
	res := d.gorm.WithContext(ctx).Model(&foodEntry{}).Where("id = ?", e.ID).Updates(map[string]any{
		"day":          e.Date,
		"meal":         string(e.Meal),
		"name":         e.Name,
		"brand":        e.Brand,
		"serving_qty":  e.ServingQty,
		"serving_unit": e.ServingUnit,
		"calories":     e.Calories,
		"protein":      e.Protein,
		"carbs":        e.Carbs,
		"fat":          e.Fat,
	})
	return affectedOne(res)
}

// DeleteEntry removes the entry with id.
func (d *DB) DeleteEntry(ctx context.Context, id string) error {
	return affectedOne(d.gorm.WithContext(ctx).Where("id = ?", id).Delete(&foodEntry{}))
}

// ClearEntries empties the food log.
func (d *DB) ClearEntries(ctx context.Context) error {
	return d.gorm.WithContext(ctx).Where("1 = 1").Delete(&foodEntry{}).Error
}

// ListEntriesForDay returns the entries logged on day in insertion order.
func (d *DB) ListEntriesForDay(ctx context.Context, day string) ([]domain.FoodLogEntry, error) {
	return d.listEntries(ctx, day, day)
}

// ListEntriesBetween returns entries with from <= day <= to.
func (d *DB) ListEntriesBetween(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	return d.listEntries(ctx, from, to)
}

func (d *DB) listEntries(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	var rows []foodEntry
	err := d.gorm.WithContext(ctx).
		Where("day >= ? AND day <= ?", from, to).
		Order("day, created_at, id").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.FoodLogEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

func affectedOne(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// --- CustomFoodRepository ---

// AddCustomFood inserts a custom food.
func (d *DB) AddCustomFood(ctx context.Context, f domain.CustomFood) error {
	return d.gorm.WithContext(ctx).Create(&customFood{
		ID:          f.ID,
		Name:        f.Name,
		Brand:       f.Brand,
		ServingSize: f.ServingSize,
		ServingUnit: f.ServingUnit,
		Calories:    f.Per100g.Calories,
		Protein:     f.Per100g.Protein,
		Carbs:       f.Per100g.Carbs,
		Fat:         f.Per100g.Fat,
		CreatedAt:   f.CreatedAt.UTC(),
	}).Error
}

func (r customFood) toDomain() domain.CustomFood {
	return domain.CustomFood{
		ID:          r.ID,
		Name:        r.Name,
		Brand:       r.Brand,
		ServingSize: r.ServingSize,
		ServingUnit: r.ServingUnit,
		Per100g:     domain.Nutrients{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fat: r.Fat},
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// GetCustomFood returns the custom food with id.
func (d *DB) GetCustomFood(ctx context.Context, id string) (*domain.CustomFood, error) {
	var row customFood
	err := d.gorm.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	f := row.toDomain()
	return &f, nil
}

// ListCustomFoods returns every custom food ordered by name.
func (d *DB) ListCustomFoods(ctx context.Context) ([]domain.CustomFood, error) {
	var rows []customFood
	if err := d.gorm.WithContext(ctx).Order("name, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.CustomFood, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteCustomFood removes the custom food with id.
func (d *DB) DeleteCustomFood(ctx context.Context, id string) error {
	return affectedOne(d.gorm.WithContext(ctx).Where("id = ?", id).Delete(&customFood{}))
}

// ClearCustomFoods removes every custom food.
func (d *DB) ClearCustomFoods(ctx context.Context) error {
	return d.gorm.WithContext(ctx).Where("1 = 1").Delete(&customFood{}).Error
}

// --- RecipeRepository ---

// AddRecipe inserts a recipe.
func (d *DB) AddRecipe(ctx context.Context, r domain.Recipe) error {
	return d.gorm.WithContext(ctx).Create(&recipe{
		ID:          r.ID,
		Name:        r.Name,
		Servings:    r.Servings,
		Ingredients: ingredientList(r.Ingredients),
		Calories:    r.Totals.Calories,
		Protein:     r.Totals.Protein,
		Carbs:       r.Totals.Carbs,
		Fat:         r.Totals.Fat,
		CreatedAt:   r.CreatedAt.UTC(),
	}).Error
}

func (r recipe) toDomain() domain.Recipe {
	return domain.Recipe{
		ID:          r.ID,
		Name:        r.Name,
		Servings:    r.Servings,
		Ingredients: []domain.RecipeIngredient(r.Ingredients),
		Totals:      domain.Nutrients{Calories: r.Calories, Protein: r.Protein, Carbs: r.Carbs, Fat: r.Fat},
		CreatedAt:   r.CreatedAt.UTC(),
	}
}

// GetRecipe returns the recipe with id.
func (d *DB) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	var row recipe
	err := d.gorm.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	r := row.toDomain()
	return &r, nil
}

// ListRecipes returns every recipe ordered by name.
func (d *DB) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	var rows []recipe
	if err := d.gorm.WithContext(ctx).Order("name, id").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Recipe, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// DeleteRecipe removes the recipe with id.
func (d *DB) DeleteRecipe(ctx context.Context, id string) error {
	return affectedOne(d.gorm.WithContext(ctx).Where("id = ?", id).Delete(&recipe{}))
}

// ClearRecipes removes every recipe.
func (d *DB) ClearRecipes(ctx context.Context) error {
	return d.gorm.WithContext(ctx).Where("1 = 1").Delete(&recipe{}).Error
}
