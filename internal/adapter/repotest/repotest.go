// Package repotest holds behaviour checks shared by every storage adapter.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// Store is the full set of ports an adapter provides.
type Store interface {
	domain.WeightRepository
	domain.WaterRepository
	domain.UserRepository
	domain.ProfileRepository
	domain.FoodLogRepository
	domain.CustomFoodRepository
	domain.RecipeRepository
}

// Factory returns a fresh, empty store and its session repository.
type Factory func(t *testing.T) (Store, domain.SessionRepository)

// Run executes every check against stores built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Weight", func(t *testing.T) { s, _ := newStore(t); testWeight(t, s) })
	t.Run("Water", func(t *testing.T) { s, _ := newStore(t); testWater(t, s) })
	t.Run("Users", func(t *testing.T) { s, _ := newStore(t); testUsers(t, s) })
	t.Run("Sessions", func(t *testing.T) { s, r := newStore(t); testSessions(t, s, r) })
	t.Run("Profile", func(t *testing.T) { s, _ := newStore(t); testProfile(t, s) })
	t.Run("FoodLog", func(t *testing.T) { s, _ := newStore(t); testFoodLog(t, s) })
	t.Run("CustomFoods", func(t *testing.T) { s, _ := newStore(t); testCustomFoods(t, s) })
	t.Run("Recipes", func(t *testing.T) { s, _ := newStore(t); testRecipes(t, s) })
}

func testWeight(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now()

	id, err := s.AddWeightEvent(ctx, 70.0, "kg", now.Add(-time.Minute))
	require.NoError(t, err)
	assert.NotZero(t, id)
	_, err = s.AddWeightEvent(ctx, 155.0, "lb", now)
	require.NoError(t, err)

	events, err := s.ListRecentWeightEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, 155.0, events[0].Value)
	assert.Equal(t, "lb", events[0].Unit)
	assert.NotEmpty(t, events[0].Day)

	limited, err := s.ListRecentWeightEvents(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	latest, err := s.LatestWeightForLocalDay(ctx, domain.DayKey(now))
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, 155.0, latest.Value)

	none, err := s.LatestWeightForLocalDay(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Nil(t, none)

	ok, err := s.DeleteLatestWeightEvent(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	events, err = s.ListRecentWeightEvents(ctx, 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 70.0, events[0].Value)

	_, _ = s.DeleteLatestWeightEvent(ctx)
	ok, err = s.DeleteLatestWeightEvent(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	noon := time.Date(2026, 1, 10, 12, 0, 0, 0, time.Local)
	_, err = s.AddWeightEvent(ctx, 80.0, "kg", noon)
	require.NoError(t, err)
	_, err = s.AddWeightEvent(ctx, 79.5, "kg", noon.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.AddWeightEvent(ctx, 79.0, "kg", noon.AddDate(0, 0, 2))
	require.NoError(t, err)

	weights, err := s.LatestWeightsBetween(ctx, "2026-01-09", "2026-01-11")
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, 79.5, weights["2026-01-10"].Value)
	assert.Equal(t, "2026-01-10", weights["2026-01-10"].Day)

	weights, err = s.LatestWeightsBetween(ctx, "2026-01-12", "2026-01-12")
	require.NoError(t, err)
	assert.Equal(t, 79.0, weights["2026-01-12"].Value)

	_, err = s.LatestWeightsBetween(ctx, "bad", "2026-01-12")
	assert.Error(t, err)
}

func testWater(t *testing.T, s Store) {
	ctx := context.Background()
	now := time.Now()

	_, err := s.AddWaterEvent(ctx, "2026-02-08", 250, now)
	require.NoError(t, err)
	_, err = s.AddWaterEvent(ctx, "2026-02-08", 500, now.Add(time.Minute))
	require.NoError(t, err)
	last, err := s.AddWaterEvent(ctx, "2026-02-08", -100, now.Add(2*time.Minute))
	require.NoError(t, err)
	_, err = s.AddWaterEvent(ctx, "2026-02-06", 1000, now.Add(3*time.Minute))
	require.NoError(t, err)

	total, err := s.WaterTotalForDay(ctx, "2026-02-08")
	require.NoError(t, err)
	assert.Equal(t, 650, total)

	totals, err := s.WaterTotalsBetween(ctx, "2026-02-07", "2026-02-08")
	require.NoError(t, err)
	assert.Equal(t, domain.WaterLog{"2026-02-08": 650}, totals)

	events, err := s.ListRecentWaterEvents(ctx, 2)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "2026-02-06", events[0].Day)
	assert.Equal(t, last, events[1].ID)

	require.NoError(t, s.DeleteWaterEvent(ctx, last))
	total, err = s.WaterTotalForDay(ctx, "2026-02-08")
	require.NoError(t, err)
	assert.Equal(t, 750, total)

	require.NoError(t, s.ClearWaterEvents(ctx))
	totals, err = s.WaterTotalsBetween(ctx, "2026-02-01", "2026-02-28")
	require.NoError(t, err)
	assert.Empty(t, totals)
	events, err = s.ListRecentWaterEvents(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func testUsers(t *testing.T, s Store) {
	ctx := context.Background()

	count, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	u, err := s.Create(ctx, "bob", "hash")
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)
	assert.NotZero(t, u.ID)

	u2, err := s.GetByUsername(ctx, "bob")
	require.NoError(t, err)
	require.NotNil(t, u2)
	assert.Equal(t, u.ID, u2.ID)
	assert.Equal(t, "hash", u2.PasswordHash)

	byID, err := s.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "bob", byID.Username)

	missing, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, missing)

	_, err = s.Create(ctx, "bob", "other")
	assert.Error(t, err, "usernames are unique")

	count, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func testSessions(t *testing.T, s Store, r domain.SessionRepository) {
	ctx := context.Background()

	u, err := s.Create(ctx, "owner", "hash")
	require.NoError(t, err)

	require.NoError(t, r.Create(ctx, u.ID, "token123", "agent", "127.0.0.1", time.Now().Add(time.Hour)))
	require.NoError(t, r.Create(ctx, u.ID, "old", "agent", "127.0.0.1", time.Now().Add(-time.Hour)))

	sess, err := r.GetByToken(ctx, "token123")
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, u.ID, sess.UserID)
	assert.Equal(t, "agent", sess.UserAgent)

	require.NoError(t, r.DeleteExpired(ctx))
	old, err := r.GetByToken(ctx, "old")
	require.NoError(t, err)
	assert.Nil(t, old)

	require.NoError(t, r.Delete(ctx, "token123"))
	sess, err = r.GetByToken(ctx, "token123")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func testProfile(t *testing.T, s Store) {
	ctx := context.Background()

	p, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)

	in := &domain.UserProfile{
		Age: 30, Gender: domain.GenderFemale, HeightCm: 165, WeightKg: 60,
		ActivityLevel: domain.ActivityLight, Goal: domain.GoalMaintain, CalorieTarget: 1815,
		MacroRatios: &domain.MacroRatios{Protein: 25, Carbs: 45, Fat: 30},
		WeightGoal:  &domain.WeightGoal{Current: 60, Target: 58, WeeklyChange: -0.25},
		UpdatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.SaveProfile(ctx, in))

	in.Age = 99
	in.MacroRatios.Protein = 99
	got, err := s.GetProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Age, "stored copy must not alias the caller's value")
	require.NotNil(t, got.MacroRatios)
	assert.Equal(t, 25.0, got.MacroRatios.Protein)
	require.NotNil(t, got.WeightGoal)
	assert.Equal(t, -0.25, got.WeightGoal.WeeklyChange)

	got.Age = 31
	got.MacroRatios = nil
	require.NoError(t, s.SaveProfile(ctx, got))
	again, err := s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, 31, again.Age)
	assert.Nil(t, again.MacroRatios)

	require.NoError(t, s.DeleteProfile(ctx))
	p, err = s.GetProfile(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func sampleEntry(id, date string, meal domain.Meal, cal float64, at time.Time) domain.FoodLogEntry {
	return domain.FoodLogEntry{
		ID: id, Date: date, Meal: meal, Name: "Food " + id, Brand: "B",
		ServingQty: 150, ServingUnit: "g",
		Calories: cal, Protein: 10.5, Carbs: 20.25, Fat: 3,
		CreatedAt: at.UTC().Truncate(time.Second),
	}
}

func testFoodLog(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Now()

	require.NoError(t, s.AddEntry(ctx, sampleEntry("b", "2026-03-10", domain.MealLunch, 600, base.Add(time.Minute))))
	require.NoError(t, s.AddEntry(ctx, sampleEntry("a", "2026-03-10", domain.MealBreakfast, 300, base)))
	require.NoError(t, s.AddEntry(ctx, sampleEntry("c", "2026-03-08", domain.MealDinner, 900, base)))
	require.NoError(t, s.AddEntry(ctx, sampleEntry("d", "2026-03-11", domain.MealSnack, 100, base)))
	assert.Error(t, s.AddEntry(ctx, sampleEntry("a", "2026-03-10", domain.MealSnack, 1, base)), "duplicate id")

	got, err := s.GetEntry(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, sampleEntry("a", "2026-03-10", domain.MealBreakfast, 300, base), *got)

	_, err = s.GetEntry(ctx, "zzz")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	day, err := s.ListEntriesForDay(ctx, "2026-03-10")
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "a", day[0].ID)
	assert.Equal(t, "b", day[1].ID)

	between, err := s.ListEntriesBetween(ctx, "2026-03-08", "2026-03-10")
	require.NoError(t, err)
	require.Len(t, between, 3)
	assert.Equal(t, "c", between[0].ID)

	got.Calories = 450
	got.ServingQty = 225
	require.NoError(t, s.UpdateEntry(ctx, *got))
	updated, err := s.GetEntry(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 450.0, updated.Calories)
	assert.Equal(t, 225.0, updated.ServingQty)

	assert.True(t, errors.Is(s.UpdateEntry(ctx, sampleEntry("zzz", "2026-03-10", domain.MealLunch, 1, base)), domain.ErrNotFound))

	require.NoError(t, s.DeleteEntry(ctx, "a"))
	assert.True(t, errors.Is(s.DeleteEntry(ctx, "a"), domain.ErrNotFound))

	empty, err := s.ListEntriesForDay(ctx, "2026-01-01")
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, s.ClearEntries(ctx))
	between, err = s.ListEntriesBetween(ctx, "2026-01-01", "2026-12-31")
	require.NoError(t, err)
	assert.Empty(t, between)
	require.NoError(t, s.ClearEntries(ctx))
}

func testCustomFoods(t *testing.T, s Store) {
	ctx := context.Background()
	f := domain.CustomFood{
		ID: "f1", Name: "Granola", Brand: "Home", ServingSize: 45, ServingUnit: "g",
		Per100g:   domain.Nutrients{Calories: 471, Protein: 10, Carbs: 64, Fat: 20},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.AddCustomFood(ctx, f))
	require.NoError(t, s.AddCustomFood(ctx, domain.CustomFood{ID: "f2", Name: "Almond milk", ServingSize: 250, ServingUnit: "ml"}))

	got, err := s.GetCustomFood(ctx, "f1")
	require.NoError(t, err)
	assert.Equal(t, f, *got)

	list, err := s.ListCustomFoods(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Almond milk", list[0].Name)

	require.NoError(t, s.DeleteCustomFood(ctx, "f1"))
	_, err = s.GetCustomFood(ctx, "f1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.True(t, errors.Is(s.DeleteCustomFood(ctx, "f1"), domain.ErrNotFound))

	require.NoError(t, s.ClearCustomFoods(ctx))
	list, err = s.ListCustomFoods(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func testRecipes(t *testing.T, s Store) {
	ctx := context.Background()
	r := domain.Recipe{
		ID: "r1", Name: "Chili", Servings: 4,
		Ingredients: []domain.RecipeIngredient{
			{FoodID: "f1", FoodName: "Beans", Quantity: 400, Unit: "g", Totals: domain.Nutrients{Calories: 500, Protein: 30}},
			{FoodName: "Beef", Quantity: 500, Unit: "g", Totals: domain.Nutrients{Calories: 1100, Protein: 90, Fat: 60}},
		},
		Totals:    domain.Nutrients{Calories: 1600, Protein: 120, Fat: 60},
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.AddRecipe(ctx, r))

	got, err := s.GetRecipe(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, r, *got)

	list, err := s.ListRecipes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].Ingredients, 2)

	require.NoError(t, s.DeleteRecipe(ctx, "r1"))
	_, err = s.GetRecipe(ctx, "r1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	r.ID = "r2"
	require.NoError(t, s.AddRecipe(ctx, r))
	require.NoError(t, s.ClearRecipes(ctx))
	list, err = s.ListRecipes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
