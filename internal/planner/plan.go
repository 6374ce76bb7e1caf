// Package planner orchestrates full-plan generation: it walks meal slots,
// decides cultural-pool vs. synthesized sourcing, and assembles the plan.
package planner

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"meal-plan-engine/internal/meal"
)

// Request is the caller-supplied plan shape and profile.
type Request struct {
	NumDays              int                `json:"num_days" validate:"required,gte=1,lte=31"`
	MealsPerDay          int                `json:"meals_per_day" validate:"required,gte=1,lte=4"`
	Profile              meal.WeightProfile `json:"profile"`
	DietaryRestrictions  []string           `json:"dietary_restrictions"`
	CulturalBackground   []string           `json:"cultural_background"`
	AvailableIngredients []string           `json:"available_ingredients"`
	ExcludeIngredients   []string           `json:"exclude_ingredients"`
}

// TotalSlots is the number of meals the plan will contain.
func (r *Request) TotalSlots() int {
	return r.NumDays * r.MealsPerDay
}

// WeightSatisfaction reports how well one meal serves each caller priority.
type WeightSatisfaction struct {
	Cost     float64 `json:"cost"`
	Health   float64 `json:"health"`
	Cultural float64 `json:"cultural"`
	Variety  float64 `json:"variety"`
	Time     float64 `json:"time"`
}

// PlanMeal is one placed meal in the response.
type PlanMeal struct {
	Title              string                 `json:"title"`
	Description        string                 `json:"description,omitempty"`
	Ingredients        []string               `json:"ingredients"`
	Instructions       []string               `json:"instructions"`
	Nutrition          meal.NutritionEstimate `json:"nutrition"`
	CookTimeMinutes    int                    `json:"cook_time_minutes"`
	Difficulty         int                    `json:"difficulty"`
	CulturalSource     string                 `json:"cultural_source,omitempty"`
	ObjectiveOverlap   []string               `json:"objective_overlap,omitempty"`
	WeightSatisfaction WeightSatisfaction     `json:"weight_satisfaction"`
	DietaryWarnings    []string               `json:"dietary_warnings,omitempty"`
	AdaptationNotes    []string               `json:"adaptation_notes,omitempty"`
}

// Summary aggregates plan-wide numbers for the caller.
type Summary struct {
	TotalSlots             int      `json:"total_slots"`
	CulturalMealsUsed      int      `json:"cultural_meals_used"`
	OptimalCulturalMeals   int      `json:"optimal_cultural_meals"`
	SynthesizedMeals       int      `json:"synthesized_meals"`
	FallbackMeals          int      `json:"fallback_meals"`
	CompliancePercentage   float64  `json:"compliance_percentage"`
	HeroIngredients        []string `json:"hero_ingredients"`
	HeroRationale          string   `json:"hero_rationale,omitempty"`
	EstimatedWeeklySavings float64  `json:"estimated_weekly_savings"`
}

// Plan is the full response: day_<k> -> meal type -> placed meal.
type Plan struct {
	Days    map[string]map[meal.MealType]PlanMeal `json:"days"`
	Summary Summary                               `json:"summary"`
}

// ValidationError reports a malformed request; it is never retried.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid plan request: %v", e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// validateRequest rejects malformed plan shapes before any slot work starts.
func validateRequest(req *Request) error {
	if req == nil {
		return &ValidationError{Err: fmt.Errorf("request is nil")}
	}
	if err := requestValidator.Struct(req); err != nil {
		return &ValidationError{Err: err}
	}
	return nil
}

// mealTypesFor maps a meals-per-day count onto concrete slot types.
func mealTypesFor(mealsPerDay int) []meal.MealType {
	switch mealsPerDay {
	case 1:
		return []meal.MealType{meal.Dinner}
	case 2:
		return []meal.MealType{meal.Lunch, meal.Dinner}
	case 3:
		return []meal.MealType{meal.Breakfast, meal.Lunch, meal.Dinner}
	default:
		return []meal.MealType{meal.Breakfast, meal.Lunch, meal.Dinner, meal.Snack}
	}
}
