package nutrition

import (
	"math"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

const (
	// MinLoseTarget is the lowest calorie target produced for a weight-loss goal.
	MinLoseTarget = 1200

	loseDeficit = 400
	gainSurplus = 300

	kcalPerGramProtein = 4
	kcalPerGramCarbs   = 4
	kcalPerGramFat     = 9
)

var activityMultipliers = map[domain.ActivityLevel]float64{
	domain.ActivitySedentary:  1.2,
	domain.ActivityLight:      1.375,
	domain.ActivityModerate:   1.55,
	domain.ActivityActive:     1.725,
	domain.ActivityVeryActive: 1.9,
}

// Round rounds half away from negative infinity, so 2.5 becomes 3 and -2.5
// becomes -2.
func Round(x float64) int {
	return int(math.Floor(x + 0.5))
}

func round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// ComputeBMR returns the Mifflin-St Jeor basal metabolic rate.
func ComputeBMR(gender domain.Gender, age int, heightCm, weightKg float64) (int, error) {
	if err := domain.ValidateMetrics(gender, age, heightCm, weightKg); err != nil {
		return 0, err
	}
	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if gender == domain.GenderMale {
		return Round(base + 5), nil
	}
	return Round(base - 161), nil
}

// ActivityMultiplier returns the TDEE multiplier for level. Unknown levels
// are rejected.
func ActivityMultiplier(level domain.ActivityLevel) (float64, error) {
	m, ok := activityMultipliers[level]
	if !ok {
		return 0, domain.Invalid("activityLevel", "unknown level %q", level)
	}
	return m, nil
}

// AdjustForGoal applies the goal's deficit or surplus to a TDEE. Extreme
// metrics can push the Mifflin-St Jeor estimate below zero: a loss target
// still gets the MinLoseTarget floor and the other goals floor at 0.
func AdjustForGoal(tdee float64, goal domain.Goal) (int, error) {
	if math.IsNaN(tdee) || math.IsInf(tdee, 0) {
		return 0, domain.Invalid("tdee", "must be a number")
	}
	switch goal {
	case domain.GoalLose:
		return max(MinLoseTarget, Round(tdee-loseDeficit)), nil
	case domain.GoalGain:
		return max(0, Round(tdee+gainSurplus)), nil
	case domain.GoalMaintain:
		return max(0, Round(tdee)), nil
	}
	return 0, domain.Invalid("goal", "unknown goal %q", goal)
}

// TDEE returns BMR multiplied by the activity multiplier, unrounded.
func TDEE(p domain.UserProfile) (float64, error) {
	bmr, err := ComputeBMR(p.Gender, p.Age, p.HeightCm, p.WeightKg)
	if err != nil {
		return 0, err
	}
	m, err := ActivityMultiplier(p.ActivityLevel)
	if err != nil {
		return 0, err
	}
	return float64(bmr) * m, nil
}

// DailyCalorieTarget derives the calorie target from the profile's metrics,
// activity and goal. The stored CalorieTarget is ignored.
func DailyCalorieTarget(p domain.UserProfile) (int, error) {
	tdee, err := TDEE(p)
	if err != nil {
		return 0, err
	}
	return AdjustForGoal(tdee, p.Goal)
}

// DefaultMacroRatios returns the goal's default split. Every result sums to 100.
func DefaultMacroRatios(goal domain.Goal) (domain.MacroRatios, error) {
	switch goal {
	case domain.GoalLose:
		return domain.MacroRatios{Protein: 40, Carbs: 30, Fat: 30}, nil
	case domain.GoalGain, domain.GoalMaintain:
		return domain.MacroRatios{Protein: 30, Carbs: 40, Fat: 30}, nil
	}
	return domain.MacroRatios{}, domain.Invalid("goal", "unknown goal %q", goal)
}

// EffectiveRatios returns the profile's own ratios when set, otherwise the
// goal default.
func EffectiveRatios(p domain.UserProfile) (domain.MacroRatios, error) {
	if p.MacroRatios != nil {
		if err := p.MacroRatios.Validate(); err != nil {
			return domain.MacroRatios{}, err
		}
		return *p.MacroRatios, nil
	}
	return DefaultMacroRatios(p.Goal)
}

// MacroTargetsGrams splits a calorie target into gram targets. Each macro is
// rounded on its own, so the energy of the result need not equal the target.
func MacroTargetsGrams(calorieTarget int, ratios domain.MacroRatios) (domain.MacroTargets, error) {
	if calorieTarget < 0 {
		return domain.MacroTargets{}, domain.Invalid("calorieTarget", "must be >= 0")
	}
	if err := ratios.Validate(); err != nil {
		return domain.MacroTargets{}, err
	}
	cal := float64(calorieTarget)
	return domain.MacroTargets{
		Protein: Round(cal * ratios.Protein / 100 / kcalPerGramProtein),
		Carbs:   Round(cal * ratios.Carbs / 100 / kcalPerGramCarbs),
		Fat:     Round(cal * ratios.Fat / 100 / kcalPerGramFat),
	}, nil
}

// WeeksToGoal returns the whole weeks needed to move from current to target
// at rate kg/week, or 0 when rate is 0. The sign of rate is not checked.
func WeeksToGoal(current, target, rate float64) (int, error) {
	for _, f := range []struct {
		name string
		v    float64
	}{{"current", current}, {"target", target}, {"weeklyChange", rate}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return 0, domain.Invalid(f.name, "must be a number")
		}
	}
	if rate == 0 {
		return 0, nil
	}
	return int(math.Ceil(math.Abs(target-current) / math.Abs(rate))), nil
}

// Targets is the full set of derived numbers for a profile.
type Targets struct {
	BMR           int                 `json:"bmr"`
	TDEE          float64             `json:"tdee"`
	CalorieTarget int                 `json:"calorieTarget"`
	Ratios        domain.MacroRatios  `json:"ratios"`
	Macros        domain.MacroTargets `json:"macros"`
	WeeksToGoal   *int                `json:"weeksToGoal,omitempty"`
}

// ComputeTargets derives every target for p. When the profile carries an
// overridden calorie target it is used in place of the derived one.
func ComputeTargets(p domain.UserProfile) (Targets, error) {
	bmr, err := ComputeBMR(p.Gender, p.Age, p.HeightCm, p.WeightKg)
	if err != nil {
		return Targets{}, err
	}
	tdee, err := TDEE(p)
	if err != nil {
		return Targets{}, err
	}
	target, err := AdjustForGoal(tdee, p.Goal)
	if err != nil {
		return Targets{}, err
	}
	if p.CalorieTargetOverridden && p.CalorieTarget > 0 {
		target = p.CalorieTarget
	}
	ratios, err := EffectiveRatios(p)
	if err != nil {
		return Targets{}, err
	}
	macros, err := MacroTargetsGrams(target, ratios)
	if err != nil {
		return Targets{}, err
	}
	t := Targets{BMR: bmr, TDEE: tdee, CalorieTarget: target, Ratios: ratios, Macros: macros}
	if wg := p.WeightGoal; wg != nil {
		weeks, err := WeeksToGoal(wg.Current, wg.Target, wg.WeeklyChange)
		if err != nil {
			return Targets{}, err
		}
		t.WeeksToGoal = &weeks
	}
	return t, nil
}
