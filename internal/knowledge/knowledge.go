// Package knowledge talks to the external cultural knowledge service. The
// service is treated as unreliable and rate-limited; resilience (retries,
// rate limiting, caching) lives in the culture package, while this client
// only adds fail-fast behavior through a circuit breaker.
package knowledge

import "context"

// MealEntry is one meal as described by the knowledge service.
type MealEntry struct {
	Name                 string   `json:"name"`
	Description          string   `json:"description"`
	CookingTechniques    []string `json:"cooking_techniques"`
	HealthyIngredients   []string `json:"healthy_ingredients"`
	HealthyModifications []string `json:"healthy_modifications"`
}

// Summary aggregates cuisine-wide staples and techniques.
type Summary struct {
	CommonHealthyIngredients []string `json:"common_healthy_ingredients"`
	CommonCookingTechniques  []string `json:"common_cooking_techniques"`
}

// CuisineData is the full payload for one cuisine.
type CuisineData struct {
	Meals   []MealEntry `json:"meals"`
	Summary Summary     `json:"summary"`
}

// Fetcher retrieves the knowledge payload for a cuisine. The culture cache
// owns all retry and rate-limit behavior around it.
type Fetcher interface {
	Fetch(ctx context.Context, cuisine string) (*CuisineData, error)
}
