package app_test

import (
	"context"
	"time"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

type mockUserRepo struct {
	getByUsernameFn func(ctx context.Context, username string) (*domain.User, error)
	getByIDFn       func(ctx context.Context, id int64) (*domain.User, error)
	createFn        func(ctx context.Context, username, passwordHash string) (*domain.User, error)
	countFn         func(ctx context.Context) (int, error)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	if m.createFn != nil {
		return m.createFn(ctx, username, passwordHash)
	}
	return &domain.User{ID: 1, Username: username, PasswordHash: passwordHash}, nil
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockSessionRepo struct {
	createFn        func(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error
	getByTokenFn    func(ctx context.Context, token string) (*domain.Session, error)
	deleteFn        func(ctx context.Context, token string) error
	deleteExpiredFn func(ctx context.Context) error
}

func (m *mockSessionRepo) Create(ctx context.Context, userID int64, token, userAgent, ip string, expiresAt time.Time) error {
	if m.createFn != nil {
		return m.createFn(ctx, userID, token, userAgent, ip, expiresAt)
	}
	return nil
}

func (m *mockSessionRepo) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	if m.getByTokenFn != nil {
		return m.getByTokenFn(ctx, token)
	}
	return nil, nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, token string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, token)
	}
	return nil
}

func (m *mockSessionRepo) DeleteExpired(ctx context.Context) error {
	if m.deleteExpiredFn != nil {
		return m.deleteExpiredFn(ctx)
	}
	return nil
}

type mockWaterRepo struct {
	addFn     func(ctx context.Context, day string, deltaMl int, t time.Time) (int64, error)
	delFn     func(ctx context.Context, id int64) error
	listFn    func(ctx context.Context, limit int) ([]domain.WaterEvent, error)
	totalFn   func(ctx context.Context, day string) (int, error)
	betweenFn func(ctx context.Context, from, to string) (domain.WaterLog, error)
	clearFn   func(ctx context.Context) error
}

func (m *mockWaterRepo) ClearWaterEvents(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

func (m *mockWaterRepo) AddWaterEvent(ctx context.Context, day string, deltaMl int, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, day, deltaMl, t)
	}
	return 0, nil
}

func (m *mockWaterRepo) DeleteWaterEvent(ctx context.Context, id int64) error {
	if m.delFn != nil {
		return m.delFn(ctx, id)
	}
	return nil
}

func (m *mockWaterRepo) ListRecentWaterEvents(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

func (m *mockWaterRepo) WaterTotalForDay(ctx context.Context, day string) (int, error) {
	if m.totalFn != nil {
		return m.totalFn(ctx, day)
	}
	return 0, nil
}

func (m *mockWaterRepo) WaterTotalsBetween(ctx context.Context, from, to string) (domain.WaterLog, error) {
	if m.betweenFn != nil {
		return m.betweenFn(ctx, from, to)
	}
	return domain.WaterLog{}, nil
}

type mockWeightRepo struct {
	addFn    func(ctx context.Context, v float64, u string, t time.Time) (int64, error)
	delFn    func(ctx context.Context) (bool, error)
	latestFn func(ctx context.Context, day string) (*domain.WeightEntry, error)
	listFn   func(ctx context.Context, limit int) ([]domain.WeightEntry, error)
	rangeFn  func(ctx context.Context, from, to string) (domain.WeightLog, error)
}

func (m *mockWeightRepo) LatestWeightsBetween(ctx context.Context, from, to string) (domain.WeightLog, error) {
	if m.rangeFn != nil {
		return m.rangeFn(ctx, from, to)
	}
	return domain.WeightLog{}, nil
}

func (m *mockWeightRepo) AddWeightEvent(ctx context.Context, v float64, u string, t time.Time) (int64, error) {
	if m.addFn != nil {
		return m.addFn(ctx, v, u, t)
	}
	return 0, nil
}

func (m *mockWeightRepo) DeleteLatestWeightEvent(ctx context.Context) (bool, error) {
	if m.delFn != nil {
		return m.delFn(ctx)
	}
	return false, nil
}

func (m *mockWeightRepo) LatestWeightForLocalDay(ctx context.Context, day string) (*domain.WeightEntry, error) {
	if m.latestFn != nil {
		return m.latestFn(ctx, day)
	}
	return nil, nil
}

func (m *mockWeightRepo) ListRecentWeightEvents(ctx context.Context, limit int) ([]domain.WeightEntry, error) {
	if m.listFn != nil {
		return m.listFn(ctx, limit)
	}
	return nil, nil
}

type mockProfileRepo struct {
	getFn    func(ctx context.Context) (*domain.UserProfile, error)
	saveFn   func(ctx context.Context, p *domain.UserProfile) error
	deleteFn func(ctx context.Context) error
}

func (m *mockProfileRepo) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	if m.getFn != nil {
		return m.getFn(ctx)
	}
	return nil, nil
}

func (m *mockProfileRepo) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return nil
}

func (m *mockProfileRepo) DeleteProfile(ctx context.Context) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx)
	}
	return nil
}

type mockFoodLogRepo struct {
	addFn     func(ctx context.Context, e domain.FoodLogEntry) error
	getFn     func(ctx context.Context, id string) (*domain.FoodLogEntry, error)
	updateFn  func(ctx context.Context, e domain.FoodLogEntry) error
	deleteFn  func(ctx context.Context, id string) error
	dayFn     func(ctx context.Context, day string) ([]domain.FoodLogEntry, error)
	betweenFn func(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error)
	clearFn   func(ctx context.Context) error
}

func (m *mockFoodLogRepo) ClearEntries(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

func (m *mockFoodLogRepo) AddEntry(ctx context.Context, e domain.FoodLogEntry) error {
	if m.addFn != nil {
		return m.addFn(ctx, e)
	}
	return nil
}

func (m *mockFoodLogRepo) GetEntry(ctx context.Context, id string) (*domain.FoodLogEntry, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockFoodLogRepo) UpdateEntry(ctx context.Context, e domain.FoodLogEntry) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, e)
	}
	return nil
}

func (m *mockFoodLogRepo) DeleteEntry(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockFoodLogRepo) ListEntriesForDay(ctx context.Context, day string) ([]domain.FoodLogEntry, error) {
	if m.dayFn != nil {
		return m.dayFn(ctx, day)
	}
	return nil, nil
}

func (m *mockFoodLogRepo) ListEntriesBetween(ctx context.Context, from, to string) ([]domain.FoodLogEntry, error) {
	if m.betweenFn != nil {
		return m.betweenFn(ctx, from, to)
	}
	return nil, nil
}

type mockCustomFoodRepo struct {
	addFn    func(ctx context.Context, f domain.CustomFood) error
	getFn    func(ctx context.Context, id string) (*domain.CustomFood, error)
	listFn   func(ctx context.Context) ([]domain.CustomFood, error)
	deleteFn func(ctx context.Context, id string) error
	clearFn  func(ctx context.Context) error
}

func (m *mockCustomFoodRepo) ClearCustomFoods(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

func (m *mockCustomFoodRepo) AddCustomFood(ctx context.Context, f domain.CustomFood) error {
	if m.addFn != nil {
		return m.addFn(ctx, f)
	}
	return nil
}

func (m *mockCustomFoodRepo) GetCustomFood(ctx context.Context, id string) (*domain.CustomFood, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockCustomFoodRepo) ListCustomFoods(ctx context.Context) ([]domain.CustomFood, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockCustomFoodRepo) DeleteCustomFood(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

type mockRecipeRepo struct {
	addFn    func(ctx context.Context, r domain.Recipe) error
	getFn    func(ctx context.Context, id string) (*domain.Recipe, error)
	listFn   func(ctx context.Context) ([]domain.Recipe, error)
	deleteFn func(ctx context.Context, id string) error
	clearFn  func(ctx context.Context) error
}

func (m *mockRecipeRepo) ClearRecipes(ctx context.Context) error {
	if m.clearFn != nil {
		return m.clearFn(ctx)
	}
	return nil
}

func (m *mockRecipeRepo) AddRecipe(ctx context.Context, r domain.Recipe) error {
	if m.addFn != nil {
		return m.addFn(ctx, r)
	}
	return nil
}

func (m *mockRecipeRepo) GetRecipe(ctx context.Context, id string) (*domain.Recipe, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (m *mockRecipeRepo) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockRecipeRepo) DeleteRecipe(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}
