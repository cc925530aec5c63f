package domain

import (
	"context"
	"math"
	"time"
)

// Gender selects the Mifflin-St Jeor constant. Only the two values below are
// supported.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Valid reports whether g is a supported value.
func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale
}

// ActivityLevel is the user's self-reported activity.
type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// Goal is the direction of the user's weight plan.
type Goal string

const (
	GoalLose     Goal = "lose"
	GoalMaintain Goal = "maintain"
	GoalGain     Goal = "gain"
)

// Valid reports whether g is a supported value.
func (g Goal) Valid() bool {
	switch g {
	case GoalLose, GoalMaintain, GoalGain:
		return true
	}
	return false
}

// MacroRatios are percentages of the calorie target.
type MacroRatios struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// RatioTolerance is the allowed deviation of a ratio sum from 100.
const RatioTolerance = 0.1

// Validate checks that every percentage is finite and non-negative and that
// they sum to 100 within RatioTolerance.
func (r MacroRatios) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{{"macroRatios.protein", r.Protein}, {"macroRatios.carbs", r.Carbs}, {"macroRatios.fat", r.Fat}} {
		if !finite(f.v) || f.v < 0 {
			return Invalid(f.name, "must be a non-negative number")
		}
	}
	if sum := r.Protein + r.Carbs + r.Fat; math.Abs(sum-100) > RatioTolerance {
		return Invalid("macroRatios", "must sum to 100, got %.2f", sum)
	}
	return nil
}

// WeightGoal tracks progress toward a target body weight in kg.
type WeightGoal struct {
	Current      float64 `json:"current"`
	Target       float64 `json:"target"`
	WeeklyChange float64 `json:"weeklyChange"`
}

// MacroTargets are daily gram targets derived from a calorie target.
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// UserProfile holds the body metrics and goal of the single installation user.
type UserProfile struct {
	Age                     int           `json:"age"`
	Gender                  Gender        `json:"gender"`
	HeightCm                float64       `json:"heightCm"`
	WeightKg                float64       `json:"weightKg"`
	ActivityLevel           ActivityLevel `json:"activityLevel"`
	Goal                    Goal          `json:"goal"`
	CalorieTarget           int           `json:"calorieTarget"`
	CalorieTargetOverridden bool          `json:"calorieTargetOverridden"`
	MacroRatios             *MacroRatios  `json:"macroRatios,omitempty"`
	WeightGoal              *WeightGoal   `json:"weightGoal,omitempty"`
	UpdatedAt               time.Time     `json:"updatedAt"`
}

// ValidateMetrics checks the inputs of the calorie calculation.
func ValidateMetrics(gender Gender, age int, heightCm, weightKg float64) error {
	if !gender.Valid() {
		return Invalid("gender", "must be %q or %q", GenderMale, GenderFemale)
	}
	if age <= 0 {
		return Invalid("age", "must be > 0")
	}
	if !finite(heightCm) || heightCm <= 0 {
		return Invalid("heightCm", "must be > 0")
	}
	if !finite(weightKg) || weightKg <= 0 {
		return Invalid("weightKg", "must be > 0")
	}
	return nil
}

// Validate checks every field of the profile. An overridden calorie target
// must be positive; a derived one is recomputed by the caller.
func (p *UserProfile) Validate() error {
	if err := ValidateMetrics(p.Gender, p.Age, p.HeightCm, p.WeightKg); err != nil {
		return err
	}
	switch p.ActivityLevel {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
	default:
		return Invalid("activityLevel", "unknown level %q", p.ActivityLevel)
	}
	if !p.Goal.Valid() {
		return Invalid("goal", "unknown goal %q", p.Goal)
	}
	if p.CalorieTargetOverridden && p.CalorieTarget <= 0 {
		return Invalid("calorieTarget", "must be > 0 when overridden")
	}
	if p.MacroRatios != nil {
		if err := p.MacroRatios.Validate(); err != nil {
			return err
		}
	}
	if wg := p.WeightGoal; wg != nil {
		if !finite(wg.Current) || wg.Current <= 0 {
			return Invalid("weightGoal.current", "must be > 0")
		}
		if !finite(wg.Target) || wg.Target <= 0 {
			return Invalid("weightGoal.target", "must be > 0")
		}
		if !finite(wg.WeeklyChange) {
			return Invalid("weightGoal.weeklyChange", "must be a number")
		}
		if p.Goal == GoalLose && wg.WeeklyChange > 0 {
			return Invalid("weightGoal.weeklyChange", "must be <= 0 for goal %q", p.Goal)
		}
		if p.Goal == GoalGain && wg.WeeklyChange < 0 {
			return Invalid("weightGoal.weeklyChange", "must be >= 0 for goal %q", p.Goal)
		}
	}
	return nil
}

// ProfileRepository persists the single user profile.
type ProfileRepository interface {
	// GetProfile returns nil, nil when no profile has been saved.
	GetProfile(ctx context.Context) (*UserProfile, error)
	SaveProfile(ctx context.Context, p *UserProfile) error
	DeleteProfile(ctx context.Context) error
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
