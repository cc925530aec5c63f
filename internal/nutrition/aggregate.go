package nutrition

import "github.com/Joshua-Precious/Nutrical/internal/domain"

// DayTotal is the nutrient total of one calendar day.
type DayTotal struct {
	Date string `json:"date"`
	domain.Nutrients
}

// TotalsForDate sums every entry logged on date. A day without entries
// yields all-zero totals.
func TotalsForDate(log domain.DailyLog, date string) domain.Nutrients {
	return SumEntries(log.Entries(date))
}

// SumEntries sums the nutrient fields of entries.
func SumEntries(entries []domain.FoodLogEntry) domain.Nutrients {
	var n domain.Nutrients
	for _, e := range entries {
		n = n.Add(e.Nutrients())
	}
	return n
}

// TotalsForRange returns per-date totals in the order of dates.
func TotalsForRange(log domain.DailyLog, dates []string) []DayTotal {
	out := make([]DayTotal, 0, len(dates))
	for _, d := range dates {
		out = append(out, DayTotal{Date: d, Nutrients: TotalsForDate(log, d)})
	}
	return out
}

// AverageOverRange divides the calories of dates by the window length, so
// days without data pull the average down. An empty window averages to 0.
func AverageOverRange(log domain.DailyLog, dates []string) float64 {
	var sum float64
	for _, d := range dates {
		sum += TotalsForDate(log, d).Calories
	}
	return sum / float64(max(1, len(dates)))
}

// AverageOverLoggedDays divides the calories of dates by the number of those
// days with calories > 0. No logged day averages to 0.
func AverageOverLoggedDays(log domain.DailyLog, dates []string) float64 {
	var sum float64
	var n int
	for _, d := range dates {
		if c := TotalsForDate(log, d).Calories; c > 0 {
			sum += c
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// DaysLogged counts the dates with calories > 0.
func DaysLogged(log domain.DailyLog, dates []string) int {
	var n int
	for _, d := range dates {
		if TotalsForDate(log, d).Calories > 0 {
			n++
		}
	}
	return n
}

// MealGroups partitions a day's entries by meal. Every meal key is present.
type MealGroups map[domain.Meal][]domain.FoodLogEntry

// GroupByMeal partitions entries by their meal tag. Meals without entries map
// to an empty, non-nil slice. Entries with an unknown meal are dropped.
func GroupByMeal(entries []domain.FoodLogEntry) MealGroups {
	g := make(MealGroups, len(domain.Meals))
	for _, m := range domain.Meals {
		g[m] = []domain.FoodLogEntry{}
	}
	for _, e := range entries {
		if _, ok := g[e.Meal]; ok {
			g[e.Meal] = append(g[e.Meal], e)
		}
	}
	return g
}

// MealCalories returns the calories of each meal in g.
func MealCalories(g MealGroups) map[domain.Meal]float64 {
	out := make(map[domain.Meal]float64, len(domain.Meals))
	for _, m := range domain.Meals {
		out[m] = SumEntries(g[m]).Calories
	}
	return out
}

// WaterTotalForDate returns the milliliters logged on date, or 0.
func WaterTotalForDate(w domain.WaterLog, date string) int {
	return w.Total(date)
}

// Progress returns value/target, or 0 when target is not positive.
func Progress(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return value / target
}

// Percent returns value as a percentage of target, or 0 when target is not
// positive. The multiplication happens first so exact cutoffs stay exact.
func Percent(value, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return value * 100 / target
}

// KcalPerKg is the energy equivalent of one kilogram of body weight.
const KcalPerKg = 7700

// TotalDeficit sums target minus calories over days. Days over target
// contribute negatively.
func TotalDeficit(days []DayTotal, calorieTarget int) float64 {
	var sum float64
	for _, d := range days {
		sum += float64(calorieTarget) - d.Calories
	}
	return sum
}

// EstimatedWeightChangeKg converts a calorie deficit into kilograms of body
// weight. A positive deficit yields a negative change.
func EstimatedWeightChangeKg(deficit float64) float64 {
	return -deficit / KcalPerKg
}
