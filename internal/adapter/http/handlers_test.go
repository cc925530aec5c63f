package adapthttp_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	adapthttp "github.com/Joshua-Precious/Nutrical/internal/adapter/http"
	"github.com/Joshua-Precious/Nutrical/internal/adapter/memory"
	"github.com/Joshua-Precious/Nutrical/internal/app"
	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// ---------------------------------------------------------------------------
// Failing water repository (function-fields pattern) for error paths
// ---------------------------------------------------------------------------

type mockWaterRepo struct {
	totalFn func(ctx context.Context, day string) (int, error)
}

func (m *mockWaterRepo) AddWaterEvent(ctx context.Context, day string, deltaMl int, createdAt time.Time) (int64, error) {
	return 1, nil
}

func (m *mockWaterRepo) DeleteWaterEvent(ctx context.Context, id int64) error { return nil }

func (m *mockWaterRepo) ListRecentWaterEvents(ctx context.Context, limit int) ([]domain.WaterEvent, error) {
	return nil, nil
}

func (m *mockWaterRepo) WaterTotalForDay(ctx context.Context, day string) (int, error) {
	if m.totalFn != nil {
		return m.totalFn(ctx, day)
	}
	return 0, nil
}

func (m *mockWaterRepo) WaterTotalsBetween(ctx context.Context, from, to string) (domain.WaterLog, error) {
	return domain.WaterLog{}, nil
}

func (m *mockWaterRepo) ClearWaterEvents(ctx context.Context) error { return nil }

// ---------------------------------------------------------------------------
// Test-server helper
// ---------------------------------------------------------------------------

type serverOpts struct {
	water domain.WaterRepository
	auth  bool
}

func newTestServer(t *testing.T, opts serverOpts) *httptest.Server {
	t.Helper()

	db := memory.New()
	var water domain.WaterRepository = db
	if opts.water != nil {
		water = opts.water
	}

	profiles := app.NewProfileService(db)
	svc := adapthttp.Services{
		Profile: profiles,
		FoodLog: app.NewFoodLogService(db, db, db),
		Foods:   app.NewFoodService(db, db),
		Water:   app.NewWaterService(water),
		Weight:  app.NewWeightService(db, profiles),
		Summary: app.NewSummaryService(db, water, db, db),
		Auth:    app.NewAuthService(db, db.NewSessionRepo()),
		Reset:   app.NewResetService(db, water, db, db, db),
	}

	webDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(webDir, "index.html"), []byte("<html></html>"), 0o600); err != nil {
		t.Fatal(err)
	}

	srv := adapthttp.New(svc, webDir, nil)
	if !opts.auth {
		srv = srv.WithoutAuth()
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

// do sends a JSON request and decodes the JSON response into a map.
func do(t *testing.T, client *http.Client, method, url string, payload any) (int, map[string]any) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var m map[string]any
	if resp.Header.Get("Content-Type") == "application/json; charset=utf-8" {
		if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
			t.Fatalf("failed to decode response body: %v", err)
		}
	}
	return resp.StatusCode, m
}

func object(t *testing.T, m map[string]any, key string) map[string]any {
	t.Helper()
	v, ok := m[key].(map[string]any)
	if !ok {
		t.Fatalf("response missing %q object: %v", key, m)
	}
	return v
}

func items(t *testing.T, m map[string]any) []any {
	t.Helper()
	arr, ok := m["items"].([]any)
	if !ok {
		t.Fatalf("response missing 'items' array: %v", m)
	}
	return arr
}

var validProfile = map[string]any{
	"age": 30, "gender": "male", "heightCm": 180, "weightKg": 80,
	"activityLevel": "moderate", "goal": "lose",
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestHealthEndpoint(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	status, body := do(t, nil, http.MethodGet, ts.URL+"/api/health", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if body["ok"] != true {
		t.Fatalf("expected ok=true, got %v", body["ok"])
	}
}

func TestProfileLifecycle(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	status, body := do(t, nil, http.MethodGet, ts.URL+"/api/profile", nil)
	if status != http.StatusOK || body["profile"] != nil {
		t.Fatalf("expected empty profile, got %d %v", status, body)
	}

	status, body = do(t, nil, http.MethodPut, ts.URL+"/api/profile", validProfile)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if got := object(t, body, "profile")["calorieTarget"]; got != 2359.0 {
		t.Fatalf("expected derived calorieTarget 2359, got %v", got)
	}

	status, body = do(t, nil, http.MethodGet, ts.URL+"/api/profile/targets", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	targets := object(t, body, "targets")
	if targets["bmr"] != 1780.0 {
		t.Fatalf("expected bmr 1780, got %v", targets["bmr"])
	}
	if macros := object(t, targets, "macros"); macros["protein"] != 236.0 {
		t.Fatalf("expected 236 g protein, got %v", macros["protein"])
	}

	status, _ = do(t, nil, http.MethodDelete, ts.URL+"/api/profile", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/profile/targets", nil)
	if body["targets"] != nil {
		t.Fatalf("expected no targets after clear, got %v", body["targets"])
	}
}

func TestProfileValidation(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	tests := []struct {
		name    string
		payload any
	}{
		{"zero age", map[string]any{"age": 0, "gender": "male", "heightCm": 180, "weightKg": 80, "activityLevel": "moderate", "goal": "lose"}},
		{"unknown gender", map[string]any{"age": 30, "gender": "x", "heightCm": 180, "weightKg": 80, "activityLevel": "moderate", "goal": "lose"}},
		{"unknown activity", map[string]any{"age": 30, "gender": "male", "heightCm": 180, "weightKg": 80, "activityLevel": "extreme", "goal": "lose"}},
		{"ratios off", map[string]any{"age": 30, "gender": "male", "heightCm": 180, "weightKg": 80, "activityLevel": "moderate", "goal": "lose", "macroRatios": map[string]any{"protein": 50, "carbs": 50, "fat": 50}}},
		{"unknown field", map[string]any{"age": 30, "shoeSize": 44}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, nil, http.MethodPut, ts.URL+"/api/profile", tc.payload)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", status, body)
			}
			if _, ok := body["error"]; !ok {
				t.Fatalf("expected error body, got %v", body)
			}
		})
	}
}

func TestFoodLogFlow(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	const day = "2026-02-08"

	status, body := do(t, nil, http.MethodPost, ts.URL+"/api/food/log", map[string]any{
		"product": map[string]any{
			"name":    "Oats",
			"per100g": map[string]any{"calories": 200, "protein": 10, "carbs": 30, "fat": 5},
		},
		"date": day, "meal": "breakfast", "servingQty": 150, "servingUnit": "g",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	entry := object(t, body, "entry")
	if entry["calories"] != 300.0 || entry["fat"] != 7.5 {
		t.Fatalf("unexpected scaled entry: %v", entry)
	}
	id, _ := entry["id"].(string)
	if id == "" {
		t.Fatal("entry has no id")
	}

	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/food/day?date="+day, nil)
	if n := len(items(t, body)); n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}

	status, body = do(t, nil, http.MethodPut, ts.URL+"/api/food/log/"+id, map[string]any{"servingQty": 300, "meal": "lunch"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if e := object(t, body, "entry"); e["calories"] != 600.0 || e["meal"] != "lunch" {
		t.Fatalf("unexpected edited entry: %v", e)
	}

	status, body = do(t, nil, http.MethodDelete, ts.URL+"/api/food/log/"+id, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	deleted := object(t, body, "deleted")

	status, _ = do(t, nil, http.MethodDelete, ts.URL+"/api/food/log/"+id, nil)
	if status != http.StatusNotFound {
		t.Fatalf("expected 404 for second delete, got %d", status)
	}

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/food/log/restore", deleted)
	if status != http.StatusOK {
		t.Fatalf("expected 200 on restore, got %d: %v", status, body)
	}
	if got := object(t, body, "entry")["id"]; got != id {
		t.Fatalf("restore changed id: %v", got)
	}
}

func TestFoodLogRequestShape(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{"neither product nor entry", map[string]any{"meal": "lunch"}, http.StatusBadRequest},
		{
			"both product and entry",
			map[string]any{
				"product": map[string]any{"name": "A", "per100g": map[string]any{}},
				"entry":   map[string]any{"name": "B"},
			},
			http.StatusBadRequest,
		},
		{
			"manual entry",
			map[string]any{"entry": map[string]any{
				"date": "2026-02-08", "meal": "snack", "name": "Apple", "servingQty": 1, "servingUnit": "piece",
				"calories": 95, "protein": 0.5, "carbs": 25, "fat": 0.3,
			}},
			http.StatusOK,
		},
		{
			"manual entry bad meal",
			map[string]any{"entry": map[string]any{
				"date": "2026-02-08", "meal": "brunch", "name": "Apple", "servingQty": 1, "servingUnit": "piece",
			}},
			http.StatusBadRequest,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, nil, http.MethodPost, ts.URL+"/api/food/log", tc.payload)
			if status != tc.want {
				t.Fatalf("expected %d, got %d: %v", tc.want, status, body)
			}
		})
	}
}

func TestCustomFoodsAndRecipes(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	status, body := do(t, nil, http.MethodPost, ts.URL+"/api/foods/custom", map[string]any{
		"name": "Granola", "servingSize": 50, "servingUnit": "g",
		"per100g": map[string]any{"calories": 400, "protein": 10, "carbs": 60, "fat": 12},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	foodID, _ := object(t, body, "food")["id"].(string)

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/foods/custom/"+foodID+"/log", map[string]any{
		"date": "2026-02-08", "meal": "breakfast",
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if got := object(t, body, "entry")["calories"]; got != 200.0 {
		t.Fatalf("expected default serving of 200 kcal, got %v", got)
	}

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/recipes", map[string]any{
		"name": "Overnight oats", "servings": 2,
		"ingredients": []any{
			map[string]any{"foodName": "Oats", "quantity": 80, "unit": "g", "totals": map[string]any{"calories": 300, "protein": 10, "carbs": 54, "fat": 6}},
			map[string]any{"foodName": "Milk", "quantity": 200, "unit": "ml", "totals": map[string]any{"calories": 100, "protein": 7, "carbs": 10, "fat": 4}},
		},
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	recipe := object(t, body, "recipe")
	if object(t, recipe, "totals")["calories"] != 400.0 {
		t.Fatalf("unexpected recipe totals: %v", recipe)
	}
	recipeID, _ := recipe["id"].(string)

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/recipes", map[string]any{
		"name": "Ghost bowl", "servings": 1,
		"ingredients": []any{map[string]any{"foodId": "no-such-food", "quantity": 50}},
	})
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown ingredient food, got %d: %v", status, body)
	}

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/recipes/"+recipeID+"/log", map[string]any{
		"date": "2026-02-08", "meal": "breakfast", "servings": 1,
	})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if got := object(t, body, "entry")["calories"]; got != 200.0 {
		t.Fatalf("expected one serving of 200 kcal, got %v", got)
	}

	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/recipes", nil)
	if n := len(items(t, body)); n != 1 {
		t.Fatalf("expected 1 recipe, got %d", n)
	}

	if status, _ = do(t, nil, http.MethodDelete, ts.URL+"/api/recipes/"+recipeID, nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ = do(t, nil, http.MethodGet, ts.URL+"/api/recipes/"+recipeID, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
	if status, _ = do(t, nil, http.MethodDelete, ts.URL+"/api/foods/custom/"+foodID, nil); status != http.StatusOK {
		t.Fatalf("expected 200, got %d", status)
	}
	if status, _ = do(t, nil, http.MethodDelete, ts.URL+"/api/foods/custom/"+foodID, nil); status != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", status)
	}
}

func TestClearAllData(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	const day = "2026-02-08"

	seed := []struct {
		method, path string
		payload      any
	}{
		{http.MethodPut, "/api/profile", validProfile},
		{http.MethodPost, "/api/food/log", map[string]any{
			"product": map[string]any{"name": "Oats", "per100g": map[string]any{"calories": 200}},
			"date":    day, "meal": "breakfast", "servingQty": 100, "servingUnit": "g",
		}},
		{http.MethodPost, "/api/water/event", map[string]any{"date": day, "deltaMl": 500}},
		{http.MethodPost, "/api/foods/custom", map[string]any{
			"name": "Granola", "servingSize": 50, "servingUnit": "g",
			"per100g": map[string]any{"calories": 400},
		}},
		{http.MethodPost, "/api/recipes", map[string]any{
			"name": "Bowl", "servings": 1,
			"ingredients": []any{map[string]any{"foodName": "Oats", "quantity": 80, "unit": "g", "totals": map[string]any{"calories": 300}}},
		}},
		{http.MethodPut, "/api/weight/today", map[string]any{"value": 80, "unit": "kg"}},
	}
	for _, req := range seed {
		if status, body := do(t, nil, req.method, ts.URL+req.path, req.payload); status != http.StatusOK {
			t.Fatalf("%s %s: expected 200, got %d: %v", req.method, req.path, status, body)
		}
	}

	status, body := do(t, nil, http.MethodDelete, ts.URL+"/api/data", nil)
	if status != http.StatusOK || body["ok"] != true {
		t.Fatalf("expected ok, got %d %v", status, body)
	}

	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/profile", nil); body["profile"] != nil {
		t.Fatalf("expected profile cleared, got %v", body["profile"])
	}
	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/food/day?date="+day, nil); len(items(t, body)) != 0 {
		t.Fatalf("expected empty food log, got %v", body)
	}
	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/water/today?date="+day, nil); waterTotal(t, body) != 0 {
		t.Fatalf("expected no water, got %v", body)
	}
	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/foods/custom", nil); len(items(t, body)) != 0 {
		t.Fatalf("expected no custom foods, got %v", body)
	}
	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/recipes", nil); len(items(t, body)) != 0 {
		t.Fatalf("expected no recipes, got %v", body)
	}
	if _, body = do(t, nil, http.MethodGet, ts.URL+"/api/weight/recent", nil); len(items(t, body)) != 1 {
		t.Fatalf("expected weight history kept, got %v", body)
	}
}

func waterTotal(t *testing.T, body map[string]any) float64 {
	t.Helper()
	v, _ := object(t, body, "water")["totalMl"].(float64)
	return v
}

func TestWaterEndpoints(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	const day = "2026-02-08"

	status, body := do(t, nil, http.MethodPost, ts.URL+"/api/water/event", map[string]any{"date": day, "deltaMl": 500})
	if status != http.StatusOK || waterTotal(t, body) != 500 {
		t.Fatalf("expected 500 ml, got %d %v", status, body)
	}

	_, body = do(t, nil, http.MethodPost, ts.URL+"/api/water/glass?date="+day, nil)
	if waterTotal(t, body) != 750 {
		t.Fatalf("expected 750 ml after a glass, got %v", body)
	}

	_, body = do(t, nil, http.MethodDelete, ts.URL+"/api/water/glass?date="+day, nil)
	if waterTotal(t, body) != 500 {
		t.Fatalf("expected 500 ml after removing a glass, got %v", body)
	}

	status, body = do(t, nil, http.MethodPost, ts.URL+"/api/water/event", map[string]any{"date": day, "deltaMl": -5000})
	if status != http.StatusOK || waterTotal(t, body) != 0 {
		t.Fatalf("expected clamp to 0, got %d %v", status, body)
	}

	status, body = do(t, nil, http.MethodPut, ts.URL+"/api/water/today?date="+day, map[string]any{"totalMl": 2000})
	if status != http.StatusOK || waterTotal(t, body) != 2000 {
		t.Fatalf("expected 2000 ml, got %d %v", status, body)
	}
	if p := object(t, body, "water")["progress"]; p != 1.0 {
		t.Fatalf("expected progress 1, got %v", p)
	}

	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/water/recent?limit=2", nil)
	if n := len(items(t, body)); n != 2 {
		t.Fatalf("expected 2 recent events, got %d", n)
	}

	_, body = do(t, nil, http.MethodPost, ts.URL+"/api/water/undo-last", nil)
	if body["undone"] != true {
		t.Fatalf("expected undone=true, got %v", body)
	}
	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/water/today?date="+day, nil)
	if waterTotal(t, body) != 0 {
		t.Fatalf("expected 0 ml after undo, got %v", body)
	}
}

func TestWaterEventValidation(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"zero delta", map[string]any{"deltaMl": 0}},
		{"too large", map[string]any{"deltaMl": 6000}},
		{"too small", map[string]any{"deltaMl": -6000}},
		{"bad date", map[string]any{"deltaMl": 250, "date": "08/02/2026"}},
		{"liters field", map[string]any{"deltaLiters": 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, nil, http.MethodPost, ts.URL+"/api/water/event", tc.payload)
			if status != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %v", status, body)
			}
		})
	}
}

func TestServerErrorIsMasked(t *testing.T) {
	ts := newTestServer(t, serverOpts{water: &mockWaterRepo{
		totalFn: func(context.Context, string) (int, error) {
			return 0, errors.New("connection refused to 10.0.0.5")
		},
	}})

	status, body := do(t, nil, http.MethodGet, ts.URL+"/api/water/today", nil)
	if status != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", status)
	}
	if body["error"] != "internal error" {
		t.Fatalf("expected masked error, got %v", body["error"])
	}
}

func TestWeightTodayPut(t *testing.T) {
	tests := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{"valid kg", map[string]any{"value": 85.5, "unit": "kg"}, http.StatusOK},
		{"valid lb", map[string]any{"value": 190.0, "unit": "lb"}, http.StatusOK},
		{"value zero", map[string]any{"value": 0, "unit": "kg"}, http.StatusBadRequest},
		{"value negative", map[string]any{"value": -5.0, "unit": "kg"}, http.StatusBadRequest},
		{"invalid unit", map[string]any{"value": 80.0, "unit": "stone"}, http.StatusBadRequest},
	}

	ts := newTestServer(t, serverOpts{})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, nil, http.MethodPut, ts.URL+"/api/weight/today", tc.payload)
			if status != tc.wantStatus {
				t.Fatalf("expected %d, got %d; body: %v", tc.wantStatus, status, body)
			}
			if tc.wantStatus == http.StatusOK {
				if _, ok := body["entry"]; !ok {
					t.Fatal("response missing 'entry' field")
				}
			}
		})
	}
}

func TestWeightSyncsProfile(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	if status, body := do(t, nil, http.MethodPut, ts.URL+"/api/profile", validProfile); status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	status, body := do(t, nil, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"value": 154.32, "unit": "lb"})
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if body["kg"] != 70.0 {
		t.Fatalf("expected 70 kg, got %v", body["kg"])
	}
	if _, ok := body["profile"]; !ok {
		t.Fatal("expected re-derived profile in response")
	}

	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/profile", nil)
	if got := object(t, body, "profile")["weightKg"].(float64); math.Abs(got-70) > 0.01 {
		t.Fatalf("expected profile weight ~70, got %v", got)
	}
}

func TestWeightRecentAndUndo(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	for _, v := range []float64{80, 81} {
		if status, _ := do(t, nil, http.MethodPut, ts.URL+"/api/weight/today", map[string]any{"value": v, "unit": "kg"}); status != http.StatusOK {
			t.Fatalf("expected 200, got %d", status)
		}
	}

	_, body := do(t, nil, http.MethodGet, ts.URL+"/api/weight/recent?limit=5", nil)
	if n := len(items(t, body)); n != 2 {
		t.Fatalf("expected 2 items, got %d", n)
	}

	status, body := do(t, nil, http.MethodGet, ts.URL+"/api/weight/today?date=2000-01-01", nil)
	if status != http.StatusOK || body["entry"] != nil {
		t.Fatalf("expected empty past day, got %d %v", status, body)
	}

	_, body = do(t, nil, http.MethodPost, ts.URL+"/api/weight/undo-last", nil)
	if body["ok"] != true || body["deleted"] != true {
		t.Fatalf("expected ok and deleted, got %v", body)
	}
	if got := object(t, body, "entry")["value"]; got != 80.0 {
		t.Fatalf("expected remaining entry of 80, got %v", got)
	}
}

func TestSummaryEndpoints(t *testing.T) {
	ts := newTestServer(t, serverOpts{})
	const day = "2026-02-08"

	status, body := do(t, nil, http.MethodGet, ts.URL+"/api/recommendations?date="+day, nil)
	if status != http.StatusConflict {
		t.Fatalf("expected 409 without a profile, got %d: %v", status, body)
	}
	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/insights?date="+day, nil)
	if n := len(items(t, body)); n != 0 {
		t.Fatalf("expected no insights without a profile, got %d", n)
	}

	do(t, nil, http.MethodPut, ts.URL+"/api/profile", validProfile)
	for _, meal := range []string{"breakfast", "lunch", "dinner"} {
		status, body := do(t, nil, http.MethodPost, ts.URL+"/api/food/log", map[string]any{"entry": map[string]any{
			"date": day, "meal": meal, "name": "Meal", "servingQty": 1, "servingUnit": "serving",
			"calories": 600, "protein": 40, "carbs": 60, "fat": 20,
		}})
		if status != http.StatusOK {
			t.Fatalf("expected 200, got %d: %v", status, body)
		}
	}

	status, body = do(t, nil, http.MethodGet, ts.URL+"/api/summary/daily?date="+day, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if got := object(t, body, "totals")["calories"]; got != 1800.0 {
		t.Fatalf("expected 1800 kcal, got %v", got)
	}
	meals := object(t, body, "meals")
	if len(meals) != 4 {
		t.Fatalf("expected all four meal keys, got %v", meals)
	}

	status, body = do(t, nil, http.MethodGet, ts.URL+"/api/summary/range?days=7", nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if days, _ := object(t, body, "summary")["days"].([]any); len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}

	status, _ = do(t, nil, http.MethodGet, ts.URL+"/api/summary/range?unit=stone", nil)
	if status != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad unit, got %d", status)
	}

	_, body = do(t, nil, http.MethodGet, ts.URL+"/api/streak?date="+day, nil)
	if body["streak"] != 1.0 {
		t.Fatalf("expected streak 1, got %v", body)
	}

	status, body = do(t, nil, http.MethodGet, ts.URL+"/api/recommendations?date="+day, nil)
	if status != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", status, body)
	}
	if _, ok := body["suggestions"]; !ok {
		t.Fatalf("response missing suggestions: %v", body)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	tests := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/profile"},
		{http.MethodPost, "/api/profile/targets"},
		{http.MethodGet, "/api/data"},
		{http.MethodGet, "/api/food/log"},
		{http.MethodPost, "/api/food/log/abc"},
		{http.MethodGet, "/api/food/log/restore"},
		{http.MethodPut, "/api/foods/custom"},
		{http.MethodGet, "/api/foods/custom/abc/log"},
		{http.MethodPut, "/api/recipes/abc"},
		{http.MethodDelete, "/api/weight/today"},
		{http.MethodPost, "/api/weight/recent"},
		{http.MethodGet, "/api/weight/undo-last"},
		{http.MethodPost, "/api/water/today"},
		{http.MethodGet, "/api/water/event"},
		{http.MethodGet, "/api/water/glass"},
		{http.MethodPost, "/api/water/recent"},
		{http.MethodGet, "/api/water/undo-last"},
		{http.MethodPost, "/api/summary/daily"},
		{http.MethodPost, "/api/streak"},
		{http.MethodGet, "/api/auth/login"},
	}

	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, _ := do(t, nil, tc.method, ts.URL+tc.path, nil)
			if status != http.StatusMethodNotAllowed {
				t.Fatalf("expected 405, got %d", status)
			}
		})
	}
}

func TestSPAFallback(t *testing.T) {
	ts := newTestServer(t, serverOpts{})

	resp, err := http.Get(ts.URL + "/diary/2026-02-08")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close() //nolint:errcheck

	b, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(b) != "<html></html>" {
		t.Fatalf("expected index.html, got %d %q", resp.StatusCode, b)
	}
	if cc := resp.Header.Get("Cache-Control"); cc != "no-store" {
		t.Fatalf("expected no-store, got %q", cc)
	}
}
