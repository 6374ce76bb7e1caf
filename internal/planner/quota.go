package planner

import "math"

// optimalCulturalMeals computes how many slots of a plan should come from
// the cultural pool, scaled by the caller's cultural weight and clamped
// into a bracket keyed by plan size.
func optimalCulturalMeals(totalSlots int, culturalWeight float64) int {
	if totalSlots <= 0 {
		return 0
	}
	if culturalWeight < 0 {
		culturalWeight = 0
	} else if culturalWeight > 1 {
		culturalWeight = 1
	}

	basePortion := float64(totalSlots) * 0.25
	adjustment := culturalWeight * 0.15
	raw := int(math.Ceil(basePortion + basePortion*adjustment))

	var lo, hi int
	switch {
	case totalSlots <= 7:
		lo, hi = 1, 3
	case totalSlots <= 14:
		lo, hi = 2, 4
	default:
		lo, hi = 3, 6
	}
	if raw < lo {
		return lo
	}
	if raw > hi {
		return hi
	}
	return raw
}
