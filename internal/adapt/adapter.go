// Package adapt enforces hard dietary restrictions on meal candidates by
// ingredient substitution or removal, and reports compliance against the
// adapted result.
package adapt

import (
	"fmt"
	"sort"
	"strings"

	"meal-plan-engine/internal/meal"
)

// incoherenceThreshold flags an allergy adaptation that stripped so much of
// the meal it may no longer hang together.
const incoherenceThreshold = 0.3

// Adapter applies restriction rules to candidates. Stateless; safe for
// concurrent use.
type Adapter struct{}

// New returns an Adapter using the default rule tables.
func New() *Adapter { return &Adapter{} }

// NormalizeRestriction canonicalizes a user-supplied restriction string.
func NormalizeRestriction(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.ReplaceAll(key, "_", "-")
	key = strings.ReplaceAll(key, " ", "-")
	switch key {
	case "glutenfree":
		return RestrictionGlutenFree
	case "dairyfree", "lactose-free", "lactose-intolerant":
		return RestrictionDairyFree
	case "eggfree":
		return RestrictionEggFree
	case "plant-based":
		return RestrictionVegan
	}
	return key
}

// Known reports whether a restriction maps to an enforced category table.
// Allergy-style restrictions are recognized by ParseAllergy instead.
func Known(restriction string) bool {
	_, ok := forbiddenCategories[NormalizeRestriction(restriction)]
	return ok
}

// ParseAllergy extracts allergen tokens from an allergy-style restriction
// ("allergic to peanuts", "peanut allergy"). Returns nil when the
// restriction is not allergy-shaped.
func ParseAllergy(raw string) []string {
	low := strings.ToLower(raw)
	if !strings.Contains(low, "allerg") {
		return nil
	}
	if _, after, found := strings.Cut(low, "allergic to "); found {
		low = after
	} else {
		low = strings.ReplaceAll(low, "allergies", "")
		low = strings.ReplaceAll(low, "allergy", "")
		low = strings.ReplaceAll(low, "allergic", "")
	}
	var allergens []string
	for _, tok := range strings.FieldsFunc(low, func(r rune) bool {
		return r == ',' || r == ' ' || r == ';'
	}) {
		tok = strings.TrimSpace(tok)
		if tok == "" || tok == "and" || tok == "to" {
			continue
		}
		allergens = append(allergens, strings.TrimSuffix(tok, "s"))
	}
	return allergens
}

// selectBestSubstitute picks from a substitute list: economical options when
// cost dominates, nutrient-dense when health dominates, else the first
// listed.
func selectBestSubstitute(subs []Substitute, weights meal.Weights) Substitute {
	if weights.Cost >= weights.Health && weights.Cost > 0.6 {
		for _, s := range subs {
			if s.Economical {
				return s
			}
		}
	}
	if weights.Health > 0.6 {
		for _, s := range subs {
			if s.NutrientDense {
				return s
			}
		}
	}
	return subs[0]
}

// sortedKeys orders rule items longest first so "chicken breast" wins over
// "chicken", with alphabetical order as the deterministic tie-break.
func sortedKeys(m map[string][]Substitute) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}

// Adapt transforms a candidate to satisfy every restriction, substituting
// forbidden ingredients (allergens are removed outright) and propagating
// substitutions into instruction text. The returned report carries one note
// per change and the compliance scan of the adapted result.
func (a *Adapter) Adapt(c meal.Candidate, restrictions []string, weights meal.Weights) meal.AdaptationReport {
	adapted := c.Clone()
	weights = weights.Clamp()
	var notes []string

	for _, raw := range restrictions {
		if allergens := ParseAllergy(raw); allergens != nil {
			adapted, notes = removeAllergens(adapted, allergens, raw, notes)
			continue
		}

		rules, ok := substitutionRules[NormalizeRestriction(raw)]
		if !ok {
			continue
		}
		for _, item := range sortedKeys(rules) {
			if !anyIngredientMatches(adapted.Ingredients, item) {
				continue
			}
			sub := selectBestSubstitute(rules[item], weights)
			for i, ing := range adapted.Ingredients {
				if containsToken(ing, item) {
					adapted.Ingredients[i] = replaceFold(ing, item, sub.Name)
				}
			}
			for i, inst := range adapted.Instructions {
				if containsToken(inst, item) {
					adapted.Instructions[i] = replaceFold(inst, item, sub.Name)
				}
			}
			notes = append(notes, fmt.Sprintf("Replaced %s with %s to satisfy %s", item, sub.Name, raw))
		}
	}

	adapted.Dietary = DeriveTags(adapted.Ingredients)
	compliant, violations := a.CheckCompliance(adapted, restrictions)
	return meal.AdaptationReport{
		Candidate:  adapted,
		Notes:      notes,
		Compliant:  compliant,
		Violations: violations,
	}
}

func anyIngredientMatches(ingredients []string, item string) bool {
	for _, ing := range ingredients {
		if containsToken(ing, item) {
			return true
		}
	}
	return false
}

func removeAllergens(c meal.Candidate, allergens []string, raw string, notes []string) (meal.Candidate, []string) {
	before := len(c.Ingredients)
	if before == 0 {
		return c, notes
	}
	kept := c.Ingredients[:0]
	for _, ing := range c.Ingredients {
		hit := false
		for _, allergen := range allergens {
			if containsToken(ing, allergen) {
				hit = true
				notes = append(notes, fmt.Sprintf("Removed %s due to %s", ing, raw))
				break
			}
		}
		if !hit {
			kept = append(kept, ing)
		}
	}
	c.Ingredients = kept

	removed := before - len(kept)
	if removed > 0 && float64(removed)/float64(before) > incoherenceThreshold {
		notes = append(notes, fmt.Sprintf(
			"Warning: removed %d of %d ingredients for %s; the meal may need rebalancing", removed, before, raw))
	}
	return c, notes
}

// CheckCompliance scans a candidate's ingredient text for forbidden tokens.
// It reports the specific violated category per restriction. Callers must
// pass the adapted candidate; adaptation always re-checks its own output.
func (a *Adapter) CheckCompliance(c meal.Candidate, restrictions []string) (bool, []meal.Violation) {
	var violations []meal.Violation

	for _, raw := range restrictions {
		if allergens := ParseAllergy(raw); allergens != nil {
			for _, ing := range c.Ingredients {
				for _, allergen := range allergens {
					if containsToken(ing, allergen) {
						violations = append(violations, meal.Violation{
							Restriction: raw, Category: "allergen", Item: ing,
						})
					}
				}
			}
			continue
		}

		categories, ok := forbiddenCategories[NormalizeRestriction(raw)]
		if !ok {
			continue
		}
		catNames := make([]string, 0, len(categories))
		for name := range categories {
			catNames = append(catNames, name)
		}
		sort.Strings(catNames)
		for _, category := range catNames {
			for _, token := range categories[category] {
				for _, ing := range c.Ingredients {
					if containsToken(ing, token) {
						violations = append(violations, meal.Violation{
							Restriction: raw, Category: category, Item: ing,
						})
					}
				}
			}
		}
	}
	return len(violations) == 0, violations
}

// DeriveTags computes dietary tags from an ingredient list. Tags are always
// derived, never trusted from upstream.
func DeriveTags(ingredients []string) meal.DietaryTags {
	chk := func(restriction string) bool {
		categories := forbiddenCategories[restriction]
		for _, tokens := range categories {
			for _, token := range tokens {
				for _, ing := range ingredients {
					if containsToken(ing, token) {
						return false
					}
				}
			}
		}
		return true
	}
	return meal.DietaryTags{
		Vegetarian: chk(RestrictionVegetarian),
		Vegan:      chk(RestrictionVegan),
		GlutenFree: chk(RestrictionGlutenFree),
		DairyFree:  chk(RestrictionDairyFree),
		EggFree:    chk(RestrictionEggFree),
	}
}
