package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// GetProfile returns the stored profile, or nil when none has been saved.
func (d *DB) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var (
		p             domain.UserProfile
		ratios, wgoal []byte
	)
	err := d.sql.QueryRowContext(ctx,
		`SELECT age, gender, height_cm, weight_kg, activity_level, goal, calorie_target,
			calorie_target_overridden, macro_ratios, weight_goal, updated_at
		FROM profile WHERE id = 1`,
	).Scan(&p.Age, &p.Gender, &p.HeightCm, &p.WeightKg, &p.ActivityLevel, &p.Goal,
		&p.CalorieTarget, &p.CalorieTargetOverridden, &ratios, &wgoal, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if ratios != nil {
		p.MacroRatios = new(domain.MacroRatios)
		if err := json.Unmarshal(ratios, p.MacroRatios); err != nil {
			return nil, err
		}
	}
	if wgoal != nil {
		p.WeightGoal = new(domain.WeightGoal)
		if err := json.Unmarshal(wgoal, p.WeightGoal); err != nil {
			return nil, err
		}
	}
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

// SaveProfile upserts the single profile row.
func (d *DB) SaveProfile(ctx context.Context, p *domain.UserProfile) error {
	ratios, err := nullableJSON(p.MacroRatios != nil, p.MacroRatios)
	if err != nil {
		return err
	}
	wgoal, err := nullableJSON(p.WeightGoal != nil, p.WeightGoal)
	if err != nil {
		return err
	}
	_, err = d.sql.ExecContext(ctx,
		`INSERT INTO profile (id, age, gender, height_cm, weight_kg, activity_level, goal,
			calorie_target, calorie_target_overridden, macro_ratios, weight_goal, updated_at)
		VALUES (1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			age = EXCLUDED.age, gender = EXCLUDED.gender, height_cm = EXCLUDED.height_cm,
			weight_kg = EXCLUDED.weight_kg, activity_level = EXCLUDED.activity_level,
			goal = EXCLUDED.goal, calorie_target = EXCLUDED.calorie_target,
			calorie_target_overridden = EXCLUDED.calorie_target_overridden,
			macro_ratios = EXCLUDED.macro_ratios, weight_goal = EXCLUDED.weight_goal,
			updated_at = EXCLUDED.updated_at`,
		p.Age, p.Gender, p.HeightCm, p.WeightKg, p.ActivityLevel, p.Goal,
		p.CalorieTarget, p.CalorieTargetOverridden, ratios, wgoal, p.UpdatedAt.UTC(),
	)
	return err
}

// DeleteProfile removes the stored profile.
func (d *DB) DeleteProfile(ctx context.Context) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM profile WHERE id = 1")
	return err
}

func nullableJSON(present bool, v any) (any, error) {
	if !present {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}
