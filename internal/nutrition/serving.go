package nutrition

import (
	"math"
	"strings"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// ServingFactor converts a logged quantity into a multiplier of a per-100 g
// record: 1 for serving-denominated units, qty/100 otherwise.
func ServingFactor(qty float64, unit string) (float64, error) {
	if math.IsNaN(qty) || math.IsInf(qty, 0) || qty <= 0 {
		return 0, domain.Invalid("servingQty", "must be > 0")
	}
	if strings.TrimSpace(unit) == "" {
		return 0, domain.Invalid("servingUnit", "must not be empty")
	}
	if domain.IsServingUnit(unit) {
		return 1, nil
	}
	return qty / 100, nil
}

// ScaleProduct returns the product's nutrients for qty of unit. Calories are
// rounded to whole numbers and macros to one decimal, all clamped at 0.
func ScaleProduct(p domain.Product, qty float64, unit string) (domain.Nutrients, error) {
	if err := p.Validate(); err != nil {
		return domain.Nutrients{}, err
	}
	f, err := ServingFactor(qty, unit)
	if err != nil {
		return domain.Nutrients{}, err
	}
	s := p.Per100g.Scale(f)
	return domain.Nutrients{
		Calories: math.Max(0, float64(Round(s.Calories))),
		Protein:  math.Max(0, round1(s.Protein)),
		Carbs:    math.Max(0, round1(s.Carbs)),
		Fat:      math.Max(0, round1(s.Fat)),
	}, nil
}

// NewEntryFromProduct builds an unsaved log entry for qty of p. The caller
// assigns ID and CreatedAt.
func NewEntryFromProduct(p domain.Product, date string, meal domain.Meal, qty float64, unit string) (domain.FoodLogEntry, error) {
	n, err := ScaleProduct(p, qty, unit)
	if err != nil {
		return domain.FoodLogEntry{}, err
	}
	e := domain.FoodLogEntry{
		Date:        date,
		Meal:        meal,
		Name:        p.Name,
		Brand:       p.Brand,
		ServingQty:  qty,
		ServingUnit: unit,
	}
	e.SetNutrients(n)
	if err := e.Validate(); err != nil {
		return domain.FoodLogEntry{}, err
	}
	return e, nil
}

// RescaleEntry returns e with servingQty set to newQty and every nutrient
// multiplied by newQty/oldQty. Values are not rounded, so rescaling by f and
// then by 1/f restores the original within float tolerance.
func RescaleEntry(e domain.FoodLogEntry, newQty float64) (domain.FoodLogEntry, error) {
	if math.IsNaN(newQty) || math.IsInf(newQty, 0) || newQty <= 0 {
		return domain.FoodLogEntry{}, domain.Invalid("servingQty", "must be > 0")
	}
	if e.ServingQty <= 0 {
		return domain.FoodLogEntry{}, domain.Invalid("servingQty", "stored quantity must be > 0")
	}
	ratio := newQty / e.ServingQty
	e.SetNutrients(e.Nutrients().Scale(ratio))
	e.ServingQty = newQty
	return e, nil
}

// RecipeTotals sums the ingredient totals.
func RecipeTotals(ingredients []domain.RecipeIngredient) domain.Nutrients {
	var n domain.Nutrients
	for _, in := range ingredients {
		n = n.Add(in.Totals)
	}
	return n
}

// PerServing divides the recipe totals by its servings. A recipe without
// servings yields zero.
func PerServing(r domain.Recipe) domain.Nutrients {
	if r.Servings <= 0 {
		return domain.Nutrients{}
	}
	return r.Totals.Scale(1 / float64(r.Servings))
}

// NewEntryFromRecipe builds an unsaved log entry for servings portions of r.
func NewEntryFromRecipe(r domain.Recipe, date string, meal domain.Meal, servings float64) (domain.FoodLogEntry, error) {
	if math.IsNaN(servings) || math.IsInf(servings, 0) || servings <= 0 {
		return domain.FoodLogEntry{}, domain.Invalid("servings", "must be > 0")
	}
	s := PerServing(r).Scale(servings)
	e := domain.FoodLogEntry{
		Date:        date,
		Meal:        meal,
		Name:        r.Name,
		ServingQty:  servings,
		ServingUnit: "serving",
	}
	e.SetNutrients(domain.Nutrients{
		Calories: float64(Round(s.Calories)),
		Protein:  round1(s.Protein),
		Carbs:    round1(s.Carbs),
		Fat:      round1(s.Fat),
	})
	if err := e.Validate(); err != nil {
		return domain.FoodLogEntry{}, err
	}
	return e, nil
}
