package app

import (
	"context"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
	"github.com/Joshua-Precious/Nutrical/internal/nutrition"
)

// MaxRangeDays bounds Range windows.
const MaxRangeDays = 366

// SummaryService loads log snapshots and runs the nutrition engine over them.
type SummaryService struct {
	food     domain.FoodLogRepository
	water    domain.WaterRepository
	weight   domain.WeightRepository
	profiles domain.ProfileRepository
}

// NewSummaryService creates a SummaryService backed by the given repositories.
func NewSummaryService(food domain.FoodLogRepository, water domain.WaterRepository, weight domain.WeightRepository, profiles domain.ProfileRepository) *SummaryService {
	return &SummaryService{food: food, water: water, weight: weight, profiles: profiles}
}

// targets returns nil, nil when no profile exists.
func (s *SummaryService) targets(ctx context.Context) (*domain.UserProfile, *nutrition.Targets, error) {
	p, err := s.profiles.GetProfile(ctx)
	if err != nil || p == nil {
		return nil, nil, err
	}
	t, err := nutrition.ComputeTargets(*p)
	if err != nil {
		return nil, nil, err
	}
	return p, &t, nil
}

// logFor reads the food log for the n days ending at today as one snapshot.
func (s *SummaryService) logFor(ctx context.Context, today string, n int) (domain.DailyLog, []string, error) {
	days, err := domain.LastNDays(today, n)
	if err != nil {
		return nil, nil, err
	}
	entries, err := s.food.ListEntriesBetween(ctx, days[0], days[len(days)-1])
	if err != nil {
		return nil, nil, err
	}
	return domain.NewDailyLog(entries), days, nil
}

// Progress holds guarded intake/target ratios; each is 0 when its target is 0.
type Progress struct {
	Calories          float64 `json:"calories"`
	Protein           float64 `json:"protein"`
	Carbs             float64 `json:"carbs"`
	Fat               float64 `json:"fat"`
	CaloriesRemaining float64 `json:"caloriesRemaining"`
}

// DailySummary is everything the day view shows.
type DailySummary struct {
	Date         string                  `json:"date"`
	Totals       domain.Nutrients        `json:"totals"`
	Meals        nutrition.MealGroups    `json:"meals"`
	MealCalories map[domain.Meal]float64 `json:"mealCalories"`
	Water        WaterDay                `json:"water"`
	Targets      *nutrition.Targets      `json:"targets,omitempty"`
	Progress     *Progress               `json:"progress,omitempty"`
}

// Daily summarizes one day.
func (s *SummaryService) Daily(ctx context.Context, day string) (*DailySummary, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	entries, err := s.food.ListEntriesForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	water, err := s.water.WaterTotalForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	_, t, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}

	meals := nutrition.GroupByMeal(entries)
	totals := nutrition.SumEntries(entries)
	out := &DailySummary{
		Date:         day,
		Totals:       totals,
		Meals:        meals,
		MealCalories: nutrition.MealCalories(meals),
		Water:        NewWaterDay(day, water),
		Targets:      t,
	}
	if t != nil {
		out.Progress = &Progress{
			Calories:          nutrition.Progress(totals.Calories, float64(t.CalorieTarget)),
			Protein:           nutrition.Progress(totals.Protein, float64(t.Macros.Protein)),
			Carbs:             nutrition.Progress(totals.Carbs, float64(t.Macros.Carbs)),
			Fat:               nutrition.Progress(totals.Fat, float64(t.Macros.Fat)),
			CaloriesRemaining: float64(t.CalorieTarget) - totals.Calories,
		}
	}
	return out, nil
}

// DayPoint is one day of a range summary.
type DayPoint struct {
	Day string `json:"day"`
	domain.Nutrients
	WaterMl int          `json:"waterMl"`
	Weight  *WeightPoint `json:"weight"`
}

// WeightPoint is the optional weight value within a DayPoint.
type WeightPoint struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// RangeSummary covers consecutive days ending today, oldest first.
type RangeSummary struct {
	Days                  []DayPoint `json:"days"`
	AverageCalories       float64    `json:"averageCalories"`
	AverageLoggedCalories float64    `json:"averageLoggedCalories"`
	DaysLogged            int        `json:"daysLogged"`
	CalorieTarget         int        `json:"calorieTarget,omitempty"`
	TotalDeficit          *float64   `json:"totalDeficit,omitempty"`
	EstimatedWeightChange *float64   `json:"estimatedWeightChangeKg,omitempty"`
}

// Range returns per-day totals for the last days days with weights converted
// to unit. days is clamped to [1, MaxRangeDays].
func (s *SummaryService) Range(ctx context.Context, today string, days int, unit string) (*RangeSummary, error) {
	if !domain.ValidWeightUnit(unit) {
		return nil, domain.Invalid("unit", "must be %q or %q", domain.UnitKg, domain.UnitLb)
	}
	days = max(1, min(days, MaxRangeDays))

	log, keys, err := s.logFor(ctx, today, days)
	if err != nil {
		return nil, err
	}
	water, err := s.water.WaterTotalsBetween(ctx, keys[0], keys[len(keys)-1])
	if err != nil {
		return nil, err
	}
	weights, err := s.weight.LatestWeightsBetween(ctx, keys[0], keys[len(keys)-1])
	if err != nil {
		return nil, err
	}

	totals := nutrition.TotalsForRange(log, keys)
	points := make([]DayPoint, 0, len(keys))
	for _, dt := range totals {
		var wp *WeightPoint
		if entry, ok := weights[dt.Date]; ok {
			wp = &WeightPoint{Value: domain.ConvertWeight(entry.Value, entry.Unit, unit), Unit: unit}
		}
		points = append(points, DayPoint{
			Day:       dt.Date,
			Nutrients: dt.Nutrients,
			WaterMl:   nutrition.WaterTotalForDate(water, dt.Date),
			Weight:    wp,
		})
	}

	out := &RangeSummary{
		Days:                  points,
		AverageCalories:       nutrition.AverageOverRange(log, keys),
		AverageLoggedCalories: nutrition.AverageOverLoggedDays(log, keys),
		DaysLogged:            nutrition.DaysLogged(log, keys),
	}
	_, t, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	if t != nil {
		deficit := nutrition.TotalDeficit(totals, t.CalorieTarget)
		change := nutrition.EstimatedWeightChangeKg(deficit)
		out.CalorieTarget = t.CalorieTarget
		out.TotalDeficit = &deficit
		out.EstimatedWeightChange = &change
	}
	return out, nil
}

// StreakSummary is the streak and weekly consistency as of a day.
type StreakSummary struct {
	Streak      int                   `json:"streak"`
	Milestone   string                `json:"milestone,omitempty"`
	Consistency nutrition.Consistency `json:"consistency"`
}

// Streak computes the logging streak ending at today and the consistency of
// the week ending at today.
func (s *SummaryService) Streak(ctx context.Context, today string) (*StreakSummary, error) {
	log, keys, err := s.logFor(ctx, today, nutrition.MaxStreakDays)
	if err != nil {
		return nil, err
	}
	streak, err := nutrition.CurrentStreak(log, today)
	if err != nil {
		return nil, err
	}
	c, err := nutrition.WeeklyConsistency(log, keys[len(keys)-nutrition.WeekLength:])
	if err != nil {
		return nil, err
	}
	return &StreakSummary{Streak: streak, Milestone: nutrition.StreakMilestone(streak), Consistency: c}, nil
}

// Insights evaluates the insight rules for day. Without a profile there are
// no targets to compare against and the result is empty.
func (s *SummaryService) Insights(ctx context.Context, day string) ([]nutrition.Insight, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	p, t, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return []nutrition.Insight{}, nil
	}
	entries, err := s.food.ListEntriesForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	return nutrition.GenerateInsights(nutrition.InsightInput{
		Goal:          p.Goal,
		CalorieTarget: t.CalorieTarget,
		Macros:        t.Macros,
		Totals:        nutrition.SumEntries(entries),
		Entries:       entries,
	}), nil
}

// Recommendations filters the goal's suggestion catalog against what is left
// of day's budget. It returns ErrProfileRequired before onboarding.
func (s *SummaryService) Recommendations(ctx context.Context, day string) (*nutrition.Recommendation, error) {
	if _, err := domain.ParseDay(day); err != nil {
		return nil, err
	}
	p, t, err := s.targets(ctx)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProfileRequired
	}
	entries, err := s.food.ListEntriesForDay(ctx, day)
	if err != nil {
		return nil, err
	}
	totals := nutrition.SumEntries(entries)
	r, err := nutrition.Recommend(nutrition.RecommendInput{
		Goal:            p.Goal,
		CalorieTarget:   t.CalorieTarget,
		ProteinTarget:   t.Macros.Protein,
		CurrentCalories: totals.Calories,
		CurrentProtein:  totals.Protein,
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}
