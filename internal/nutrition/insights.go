package nutrition

import (
	"fmt"

	"github.com/Joshua-Precious/Nutrical/internal/domain"
)

// InsightKind classifies an insight for display.
type InsightKind string

const (
	InsightSuccess InsightKind = "success"
	InsightWarning InsightKind = "warning"
	InsightInfo    InsightKind = "info"
)

// Insight is one piece of qualitative feedback.
type Insight struct {
	Kind    InsightKind `json:"kind"`
	Message string      `json:"message"`
}

// InsightInput is the snapshot the rules are evaluated against.
type InsightInput struct {
	Goal          domain.Goal
	CalorieTarget int
	Macros        domain.MacroTargets
	Totals        domain.Nutrients
	// Entries are the day's log entries, used for meal distribution.
	Entries []domain.FoodLogEntry
}

// Rule thresholds. Comparisons are exact: see each rule for its operator.
const (
	underTargetKcal = 300
	overTargetKcal  = -200

	proteinLowPct       = 80
	proteinExcellentMin = 90
	proteinExcellentMax = 110
	carbsHighLosePct    = 120
	carbsLowGainPct     = 80
	fatLowPct           = 60
	mealSkewPct         = 50
	minMealSlots        = 3
	frequencyTotalShare = 0.5
)

// GenerateInsights evaluates the rules in their fixed order and returns
// every insight that applies. Macro rules are skipped when their target is 0.
func GenerateInsights(in InsightInput) []Insight {
	var out []Insight
	out = append(out, calorieInsight(in))
	out = append(out, macroInsights(in)...)
	if ins, ok := mealSkewInsight(in); ok {
		out = append(out, ins)
	}
	if ins, ok := mealFrequencyInsight(in); ok {
		out = append(out, ins)
	}
	return out
}

func calorieInsight(in InsightInput) Insight {
	remaining := float64(in.CalorieTarget) - in.Totals.Calories
	switch {
	case remaining > underTargetKcal:
		msg := fmt.Sprintf("You have %d calories remaining today. ", Round(remaining))
		switch in.Goal {
		case domain.GoalGain:
			msg += "Consider adding a protein-rich snack to meet your bulking goals."
		case domain.GoalLose:
			msg += "Great progress! You're in a calorie deficit."
		default:
			msg += "You're on track for maintenance."
		}
		return Insight{Kind: InsightInfo, Message: msg}
	case remaining < overTargetKcal:
		msg := fmt.Sprintf("You've exceeded your target by %d calories. ", Round(-remaining))
		switch in.Goal {
		case domain.GoalLose:
			msg += "This might slow your weight loss progress."
		case domain.GoalGain:
			msg += "This is acceptable for bulking, but ensure quality calories."
		default:
			msg += "Consider adjusting portions tomorrow."
		}
		return Insight{Kind: InsightWarning, Message: msg}
	}
	return Insight{Kind: InsightSuccess, Message: "Perfect! You're right on target with your calorie intake."}
}

func macroInsights(in InsightInput) []Insight {
	var out []Insight

	if in.Macros.Protein > 0 {
		pct := Percent(in.Totals.Protein, float64(in.Macros.Protein))
		switch {
		case pct < proteinLowPct:
			out = append(out, Insight{Kind: InsightWarning, Message: fmt.Sprintf(
				"Protein intake is low (%dg / %dg). Add lean meats, eggs, or protein shakes to preserve muscle mass.",
				Round(in.Totals.Protein), in.Macros.Protein)})
		case pct >= proteinExcellentMin && pct <= proteinExcellentMax:
			out = append(out, Insight{Kind: InsightSuccess, Message: "Excellent protein intake! This supports " + proteinPurpose(in.Goal) + "."})
		}
	}

	if in.Macros.Carbs > 0 {
		pct := Percent(in.Totals.Carbs, float64(in.Macros.Carbs))
		switch {
		case in.Goal == domain.GoalLose && pct > carbsHighLosePct:
			out = append(out, Insight{Kind: InsightInfo, Message: "Carb intake is high for weight loss. Consider replacing some carbs with vegetables or lean protein."})
		case in.Goal == domain.GoalGain && pct < carbsLowGainPct:
			out = append(out, Insight{Kind: InsightInfo, Message: "Increase carbs to fuel your workouts and muscle growth. Add rice, pasta, or oats."})
		}
	}

	if in.Macros.Fat > 0 && Percent(in.Totals.Fat, float64(in.Macros.Fat)) < fatLowPct {
		out = append(out, Insight{Kind: InsightWarning, Message: "Fat intake is low. Healthy fats are essential for hormone production. Add nuts, avocado, or olive oil."})
	}
	return out
}

func proteinPurpose(g domain.Goal) string {
	switch g {
	case domain.GoalGain:
		return "muscle growth"
	case domain.GoalLose:
		return "muscle preservation during weight loss"
	}
	return "muscle maintenance"
}

// mealSkewInsight names the largest meal when it holds more than half of the
// day's calories. Ties go to the earlier meal.
func mealSkewInsight(in InsightInput) (Insight, bool) {
	cals := MealCalories(GroupByMeal(in.Entries))
	var total float64
	for _, c := range cals {
		total += c
	}
	if total <= 0 {
		return Insight{}, false
	}
	top := domain.Meals[0]
	for _, m := range domain.Meals[1:] {
		if cals[m] > cals[top] {
			top = m
		}
	}
	share := Percent(cals[top], total)
	if share <= mealSkewPct {
		return Insight{}, false
	}
	return Insight{Kind: InsightInfo, Message: fmt.Sprintf(
		"Your %s contains %d%% of today's calories. Consider spreading calories more evenly for better energy levels.",
		top, Round(share))}, true
}

func mealFrequencyInsight(in InsightInput) (Insight, bool) {
	if in.CalorieTarget <= 0 {
		return Insight{}, false
	}
	slots := 0
	for _, c := range MealCalories(GroupByMeal(in.Entries)) {
		if c > 0 {
			slots++
		}
	}
	if slots >= minMealSlots || in.Totals.Calories < frequencyTotalShare*float64(in.CalorieTarget) {
		return Insight{}, false
	}
	noun := "meals"
	if slots == 1 {
		noun = "meal"
	}
	reason := "manage hunger and energy levels"
	if in.Goal == domain.GoalGain {
		reason = "meet your calorie surplus"
	}
	return Insight{Kind: InsightInfo, Message: fmt.Sprintf(
		"You've logged %d %s. Eating more frequently can help %s.", slots, noun, reason)}, true
}
