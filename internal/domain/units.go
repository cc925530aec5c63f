package domain

import "strings"

const (
	kgToLb = 2.2046226218

	// UnitKg and UnitLb are the accepted body-weight units.
	UnitKg = "kg"
	UnitLb = "lb"
)

// ValidWeightUnit reports whether u is "kg" or "lb".
func ValidWeightUnit(u string) bool {
	return u == UnitKg || u == UnitLb
}

// ConvertWeight converts v between kg and lb. Unknown or equal units return
// v unchanged.
func ConvertWeight(v float64, from, to string) float64 {
	switch {
	case from == to:
		return v
	case from == UnitKg && to == UnitLb:
		return v * kgToLb
	case from == UnitLb && to == UnitKg:
		return v / kgToLb
	}
	return v
}

// IsServingUnit reports whether a serving unit counts servings rather than
// grams or milliliters.
func IsServingUnit(unit string) bool {
	return strings.Contains(strings.ToLower(unit), "serv")
}
