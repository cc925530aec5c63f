package nutrition

import "github.com/Joshua-Precious/Nutrical/internal/domain"

// Suggestion is a catalog food with a short rationale.
type Suggestion struct {
	Name      string  `json:"name"`
	Calories  float64 `json:"calories"`
	Protein   float64 `json:"protein"`
	Carbs     float64 `json:"carbs"`
	Fat       float64 `json:"fat"`
	Rationale string  `json:"rationale"`
}

var catalog = map[domain.Goal][]Suggestion{
	domain.GoalLose: {
		{"Grilled Chicken Breast", 165, 31, 0, 3.6, "High protein, low calorie - perfect for weight loss"},
		{"Greek Yogurt (0%)", 59, 10, 4, 0.4, "Protein-rich, keeps you full longer"},
		{"Mixed Green Salad", 30, 2, 6, 0.3, "High volume, low calorie - fills you up"},
		{"Egg White Omelette", 52, 11, 0.7, 0.2, "Pure protein with minimal calories"},
		{"Steamed Vegetables", 50, 3, 10, 0.5, "Fiber-rich, nutrient-dense, low calorie"},
	},
	domain.GoalGain: {
		{"Salmon Fillet", 206, 22, 0, 13, "Protein + healthy fats for muscle growth"},
		{"Brown Rice (1 cup)", 216, 5, 45, 1.8, "Complex carbs for energy and glycogen"},
		{"Peanut Butter (2 tbsp)", 190, 8, 7, 16, "Calorie-dense, good fats, easy to add"},
		{"Whole Eggs (2)", 155, 13, 1, 11, "Complete protein, nutrient-rich"},
		{"Avocado (half)", 120, 1.5, 6, 11, "Healthy fats, calorie-dense"},
		{"Oatmeal with Banana", 240, 7, 45, 4, "Pre-workout fuel, sustained energy"},
	},
	domain.GoalMaintain: {
		{"Grilled Fish", 143, 26, 0, 3, "Lean protein, omega-3 fatty acids"},
		{"Sweet Potato", 112, 2, 26, 0.1, "Complex carbs, vitamins, fiber"},
		{"Mixed Nuts (handful)", 170, 5, 6, 15, "Healthy fats, protein, satisfying"},
		{"Chicken & Quinoa Bowl", 320, 35, 30, 8, "Balanced macros, complete meal"},
	},
}

// Catalog returns a copy of the suggestions tagged with goal, in catalog order.
func Catalog(goal domain.Goal) []Suggestion {
	return append([]Suggestion(nil), catalog[goal]...)
}

// RecommendInput is the budget snapshot recommendations are filtered by.
type RecommendInput struct {
	Goal            domain.Goal
	CalorieTarget   int
	ProteinTarget   int
	CurrentCalories float64
	CurrentProtein  float64
}

// Recommendation is the filtered suggestion list. When the calorie budget is
// spent, Suggestions is empty and Message holds encouragement instead.
type Recommendation struct {
	CaloriesRemaining float64      `json:"caloriesRemaining"`
	ProteinRemaining  float64      `json:"proteinRemaining"`
	Suggestions       []Suggestion `json:"suggestions"`
	Message           string       `json:"message,omitempty"`
}

const (
	minBudgetKcal       = 100
	proteinNeedGrams    = 20
	minSuggestedProtein = 10
	tightBudgetKcal     = 200
	maxTightKcal        = 200
)

// Recommend filters the goal's catalog against the remaining budget.
func Recommend(in RecommendInput) (Recommendation, error) {
	if !in.Goal.Valid() {
		return Recommendation{}, domain.Invalid("goal", "unknown goal %q", in.Goal)
	}
	r := Recommendation{
		CaloriesRemaining: float64(in.CalorieTarget) - in.CurrentCalories,
		ProteinRemaining:  float64(in.ProteinTarget) - in.CurrentProtein,
		Suggestions:       []Suggestion{},
	}
	if r.CaloriesRemaining < minBudgetKcal {
		r.Message = encouragement(in.Goal)
		return r, nil
	}
	for _, s := range catalog[in.Goal] {
		if r.ProteinRemaining > proteinNeedGrams && s.Protein < minSuggestedProtein {
			continue
		}
		if r.CaloriesRemaining < tightBudgetKcal && s.Calories > maxTightKcal {
			continue
		}
		r.Suggestions = append(r.Suggestions, s)
	}
	return r, nil
}

func encouragement(g domain.Goal) string {
	msg := "You've hit your calorie target! "
	switch g {
	case domain.GoalLose:
		return msg + "Great job staying in a deficit!"
	case domain.GoalGain:
		return msg + "Consider adding one more small meal if you're still hungry."
	}
	return msg + "Perfect for maintenance!"
}
