package domain

import (
	"context"
	"strings"
	"time"
)

// Meal is the slot a food entry was eaten in.
type Meal string

const (
	MealBreakfast Meal = "breakfast"
	MealLunch     Meal = "lunch"
	MealDinner    Meal = "dinner"
	MealSnack     Meal = "snack"
)

// Meals lists every meal slot in display order.
var Meals = []Meal{MealBreakfast, MealLunch, MealDinner, MealSnack}

// Valid reports whether m is a known meal slot.
func (m Meal) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// Nutrients is an energy and macro total. Depending on context it is either
// per 100 g/ml or already scaled to a logged quantity.
type Nutrients struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// Add returns the field-wise sum of n and o.
func (n Nutrients) Add(o Nutrients) Nutrients {
	return Nutrients{
		Calories: n.Calories + o.Calories,
		Protein:  n.Protein + o.Protein,
		Carbs:    n.Carbs + o.Carbs,
		Fat:      n.Fat + o.Fat,
	}
}

// Scale returns n with every field multiplied by f.
func (n Nutrients) Scale(f float64) Nutrients {
	return Nutrients{
		Calories: n.Calories * f,
		Protein:  n.Protein * f,
		Carbs:    n.Carbs * f,
		Fat:      n.Fat * f,
	}
}

// Validate rejects negative or non-finite fields.
func (n Nutrients) Validate(prefix string) error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"calories", n.Calories}, {"protein", n.Protein}, {"carbs", n.Carbs}, {"fat", n.Fat}} {
		if !finite(f.v) || f.v < 0 {
			return Invalid(prefix+f.name, "must be a non-negative number")
		}
	}
	return nil
}

// FoodLogEntry is one logged item. Nutrient fields are totals for the logged
// quantity, never per unit.
type FoodLogEntry struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"`
	Meal        Meal      `json:"meal"`
	Name        string    `json:"name"`
	Brand       string    `json:"brand,omitempty"`
	ServingQty  float64   `json:"servingQty"`
	ServingUnit string    `json:"servingUnit"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Nutrients returns the entry's totals.
func (e FoodLogEntry) Nutrients() Nutrients {
	return Nutrients{Calories: e.Calories, Protein: e.Protein, Carbs: e.Carbs, Fat: e.Fat}
}

// SetNutrients overwrites the entry's totals.
func (e *FoodLogEntry) SetNutrients(n Nutrients) {
	e.Calories, e.Protein, e.Carbs, e.Fat = n.Calories, n.Protein, n.Carbs, n.Fat
}

// Validate checks the entry's fields. The ID is assigned by the service and
// is not checked here.
func (e *FoodLogEntry) Validate() error {
	if _, err := ParseDay(e.Date); err != nil {
		return err
	}
	if !e.Meal.Valid() {
		return Invalid("meal", "unknown meal %q", e.Meal)
	}
	if strings.TrimSpace(e.Name) == "" {
		return Invalid("name", "must not be empty")
	}
	if !finite(e.ServingQty) || e.ServingQty <= 0 {
		return Invalid("servingQty", "must be > 0")
	}
	if strings.TrimSpace(e.ServingUnit) == "" {
		return Invalid("servingUnit", "must not be empty")
	}
	return e.Nutrients().Validate("")
}

// DailyLog is a snapshot of food entries keyed by day. Absent days have no
// entries.
type DailyLog map[string][]FoodLogEntry

// NewDailyLog groups entries by their date.
func NewDailyLog(entries []FoodLogEntry) DailyLog {
	log := make(DailyLog)
	for _, e := range entries {
		log[e.Date] = append(log[e.Date], e)
	}
	return log
}

// Entries returns the entries logged on day.
func (l DailyLog) Entries(day string) []FoodLogEntry {
	return l[day]
}

// WaterLog is a snapshot of cumulative milliliters keyed by day.
type WaterLog map[string]int

// Total returns the milliliters logged on day, or 0.
func (w WaterLog) Total(day string) int {
	return w[day]
}

// FoodLogRepository is the port for food log persistence.
type FoodLogRepository interface {
	AddEntry(ctx context.Context, e FoodLogEntry) error
	// GetEntry returns ErrNotFound when id is unknown.
	GetEntry(ctx context.Context, id string) (*FoodLogEntry, error)
	UpdateEntry(ctx context.Context, e FoodLogEntry) error
	DeleteEntry(ctx context.Context, id string) error
	ListEntriesForDay(ctx context.Context, day string) ([]FoodLogEntry, error)
	// ListEntriesBetween returns entries with from <= date <= to as one
	// consistent read.
	ListEntriesBetween(ctx context.Context, from, to string) ([]FoodLogEntry, error)
	ClearEntries(ctx context.Context) error
}
