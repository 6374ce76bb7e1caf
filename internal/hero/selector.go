// Package hero selects a small set of versatile, cost-efficient ingredients
// to reuse across a plan, cutting cost and waste.
package hero

import (
	"fmt"
	"sort"
	"strings"

	"meal-plan-engine/internal/adapt"
	"meal-plan-engine/internal/meal"
)

const (
	minSelection = 3
	maxSelection = 5
)

// requiredBuckets are the usage-context buckets a selection tries to cover.
var requiredBuckets = []string{meal.ContextProtein, meal.ContextVegetable, meal.ContextAromatic, meal.ContextBase}

// Selection is the outcome of a hero-ingredient pick.
type Selection struct {
	Ingredients            []meal.HeroIngredient `json:"ingredients"`
	Rationale              string                `json:"rationale"`
	EstimatedWeeklySavings float64               `json:"estimated_weekly_savings"`
	Coverage               map[string]bool       `json:"coverage"`
}

// Selector scores and picks hero ingredients from a fixed catalog.
type Selector struct {
	catalog []meal.HeroIngredient
}

// NewSelector returns a Selector over the built-in catalog.
func NewSelector() *Selector {
	return &Selector{catalog: defaultCatalog}
}

// NewSelectorWithCatalog is intended for tests and custom catalogs.
func NewSelectorWithCatalog(catalog []meal.HeroIngredient) *Selector {
	return &Selector{catalog: catalog}
}

type scored struct {
	ingredient meal.HeroIngredient
	score      float64
}

// Select filters the catalog to ingredients safe for every restriction,
// scores the survivors, and greedily picks 3..5 of them, preferring picks
// that fill an uncovered usage-context bucket. This is bucket-coverage
// greedy, not optimal set cover; the catalog is small enough that the
// difference does not matter.
func (s *Selector) Select(culturalBackground []string, availableIngredients []string, costPriority float64, dietaryRestrictions []string) Selection {
	if costPriority < 0 {
		costPriority = 0
	} else if costPriority > 1 {
		costPriority = 1
	}

	available := make(map[string]bool, len(availableIngredients))
	for _, ing := range availableIngredients {
		available[strings.ToLower(strings.TrimSpace(ing))] = true
	}
	cultures := make(map[string]bool, len(culturalBackground))
	for _, c := range culturalBackground {
		cultures[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var candidates []scored
	for _, ing := range s.catalog {
		if !safeForAll(ing, dietaryRestrictions) {
			continue
		}
		candidates = append(candidates, scored{ingredient: ing, score: s.score(ing, cultures, available, costPriority)})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].ingredient.Name < candidates[j].ingredient.Name
	})

	covered := make(map[string]bool, len(requiredBuckets))
	picked := make([]meal.HeroIngredient, 0, maxSelection)
	taken := make(map[string]bool, maxSelection)

	// First pass: fill uncovered buckets highest-score-first.
	for _, bucket := range requiredBuckets {
		if len(picked) >= maxSelection {
			break
		}
		for _, c := range candidates {
			if taken[c.ingredient.Name] || !hasContext(c.ingredient, bucket) {
				continue
			}
			picked = append(picked, c.ingredient)
			taken[c.ingredient.Name] = true
			markCovered(covered, c.ingredient)
			break
		}
	}
	// Second pass: top up to the minimum (and beyond, while high scorers
	// still add a new bucket) purely by score.
	for _, c := range candidates {
		if len(picked) >= maxSelection {
			break
		}
		if taken[c.ingredient.Name] {
			continue
		}
		if len(picked) >= minSelection && !addsBucket(covered, c.ingredient) {
			continue
		}
		picked = append(picked, c.ingredient)
		taken[c.ingredient.Name] = true
		markCovered(covered, c.ingredient)
	}

	coverage := make(map[string]bool, len(requiredBuckets))
	for _, bucket := range requiredBuckets {
		coverage[bucket] = covered[bucket]
	}
	return Selection{
		Ingredients:            picked,
		Rationale:              rationale(picked, coverage, costPriority),
		EstimatedWeeklySavings: estimateSavings(picked),
		Coverage:               coverage,
	}
}

func (s *Selector) score(ing meal.HeroIngredient, cultures, available map[string]bool, costPriority float64) float64 {
	culturalMatch := 0.0
	for _, m := range ing.CulturalMatches {
		if cultures[strings.ToLower(m)] {
			culturalMatch = 1.0
			break
		}
	}
	alreadyAvailable := 0.0
	if available[strings.ToLower(ing.Name)] {
		alreadyAvailable = 1.0
	}
	longStorage := 0.0
	if ing.StorageLifeDays >= 14 {
		longStorage = 1.0
	}
	bulk := 0.0
	if ing.BulkFriendly {
		bulk = 1.0
	}
	return 0.3*ing.Versatility +
		(0.2+0.2*costPriority)*ing.CostEfficiency +
		0.15*culturalMatch +
		0.1*alreadyAvailable +
		0.05*longStorage +
		0.05*bulk
}

// safeForAll checks an ingredient against every restriction. Allergy-style
// entries exclude ingredients whose name carries the allergen token; category
// restrictions require the matching safety tag. Restrictions the catalog has
// no tag for are left to the adaptation stage rather than emptying the
// selection.
func safeForAll(ing meal.HeroIngredient, restrictions []string) bool {
	name := strings.ToLower(ing.Name)
	for _, r := range restrictions {
		if strings.TrimSpace(r) == "" {
			continue
		}
		if allergens := adapt.ParseAllergy(r); allergens != nil {
			for _, allergen := range allergens {
				if strings.Contains(name, allergen) {
					return false
				}
			}
			continue
		}
		normalized := adapt.NormalizeRestriction(r)
		if !adapt.Known(normalized) {
			continue
		}
		found := false
		for _, tag := range ing.DietarySafe {
			if tag == normalized {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func hasContext(ing meal.HeroIngredient, bucket string) bool {
	for _, c := range ing.Contexts {
		if c == bucket {
			return true
		}
	}
	return false
}

func markCovered(covered map[string]bool, ing meal.HeroIngredient) {
	for _, c := range ing.Contexts {
		covered[c] = true
	}
}

func addsBucket(covered map[string]bool, ing meal.HeroIngredient) bool {
	for _, c := range ing.Contexts {
		if !covered[c] {
			return true
		}
	}
	return false
}

// estimateSavings is a rough weekly figure: cheap bulk-friendly staples
// save more than delicate ones.
func estimateSavings(picked []meal.HeroIngredient) float64 {
	total := 0.0
	for _, ing := range picked {
		per := 3.0 * ing.CostEfficiency
		if ing.BulkFriendly {
			per += 1.5
		}
		total += per
	}
	return total
}

func rationale(picked []meal.HeroIngredient, coverage map[string]bool, costPriority float64) string {
	names := make([]string, len(picked))
	for i, ing := range picked {
		names[i] = ing.Name
	}
	missing := make([]string, 0, len(requiredBuckets))
	for _, bucket := range requiredBuckets {
		if !coverage[bucket] {
			missing = append(missing, bucket)
		}
	}
	focus := "balanced cost and versatility"
	if costPriority > 0.7 {
		focus = "strong cost focus"
	}
	msg := fmt.Sprintf("Selected %s with %s.", strings.Join(names, ", "), focus)
	if len(missing) > 0 {
		msg += fmt.Sprintf(" No safe option covered: %s.", strings.Join(missing, ", "))
	}
	return msg
}
