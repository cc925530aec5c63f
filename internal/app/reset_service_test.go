package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Joshua-Precious/Nutrical/internal/app"
)

func TestResetClearAll(t *testing.T) {
	var cleared []string
	mark := func(name string) func(context.Context) error {
		return func(context.Context) error {
			cleared = append(cleared, name)
			return nil
		}
	}
	svc := app.NewResetService(
		&mockFoodLogRepo{clearFn: mark("entries")},
		&mockWaterRepo{clearFn: mark("water")},
		&mockCustomFoodRepo{clearFn: mark("foods")},
		&mockRecipeRepo{clearFn: mark("recipes")},
		&mockProfileRepo{deleteFn: mark("profile")},
	)

	if err := svc.ClearAll(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(cleared, ","); got != "entries,water,recipes,foods,profile" {
		t.Fatalf("unexpected clear order %s", got)
	}
}

func TestResetClearAll_StopsOnError(t *testing.T) {
	boom := errors.New("locked")
	svc := app.NewResetService(
		&mockFoodLogRepo{},
		&mockWaterRepo{clearFn: func(context.Context) error { return boom }},
		&mockCustomFoodRepo{},
		&mockRecipeRepo{clearFn: func(context.Context) error {
			t.Fatal("recipes should not be cleared after a failure")
			return nil
		}},
		&mockProfileRepo{deleteFn: func(context.Context) error {
			t.Fatal("profile should not be cleared after a failure")
			return nil
		}},
	)

	err := svc.ClearAll(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if !strings.Contains(err.Error(), "clear water") {
		t.Fatalf("expected failing store in message, got %v", err)
	}
}
