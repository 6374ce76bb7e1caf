package culture

import "meal-plan-engine/internal/knowledge"

// qualityScore rates a fetched payload on pool size and per-entry detail
// richness, capped at 100. Size dominates (6 points per meal up to 60);
// detail fills up to 30 and the summary up to 10. The constants are tunable
// defaults.
func qualityScore(data *knowledge.CuisineData) float64 {
	size := float64(len(data.Meals)) * 6
	if size > 60 {
		size = 60
	}

	detail := 0.0
	if len(data.Meals) > 0 {
		sum := 0.0
		for _, m := range data.Meals {
			richness := 0.0
			if len(m.CookingTechniques) > 0 {
				richness++
			}
			if len(m.HealthyIngredients) > 0 {
				richness++
			}
			if len(m.HealthyModifications) > 0 {
				richness++
			}
			if len(m.Description) > 40 {
				richness++
			}
			sum += richness / 4
		}
		detail = sum / float64(len(data.Meals)) * 30
	}

	summary := 0.0
	if len(data.Summary.CommonHealthyIngredients) > 0 {
		summary += 5
	}
	if len(data.Summary.CommonCookingTechniques) > 0 {
		summary += 5
	}

	score := size + detail + summary
	if score > 100 {
		score = 100
	}
	return score
}
