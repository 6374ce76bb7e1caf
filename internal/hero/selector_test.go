package hero

import (
	"testing"

	"meal-plan-engine/internal/meal"
)

func TestSelectReturnsBetweenThreeAndFive(t *testing.T) {
	s := NewSelector()
	cases := []struct {
		name         string
		restrictions []string
	}{
		{"no restrictions", nil},
		{"vegan", []string{"vegan"}},
		{"vegan and gluten-free", []string{"vegan", "gluten-free"}},
		{"all categories", []string{"vegan", "vegetarian", "gluten-free", "dairy-free", "egg-free"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := s.Select([]string{"korean"}, nil, 0.5, tc.restrictions)
			if n := len(sel.Ingredients); n < 3 || n > 5 {
				t.Fatalf("expected 3..5 ingredients, got %d", n)
			}
		})
	}
}

func TestSelectHandlesAllergyAndLooseSpellings(t *testing.T) {
	s := NewSelector()
	cases := []struct {
		name         string
		restrictions []string
	}{
		{"allergy phrasing", []string{"allergic to peanuts"}},
		{"category plus allergy", []string{"vegan", "allergic to soy"}},
		{"non-canonical spelling", []string{"Gluten Free"}},
		{"unknown restriction", []string{"low-fodmap"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sel := s.Select(nil, nil, 0.5, tc.restrictions)
			if n := len(sel.Ingredients); n < 3 || n > 5 {
				t.Fatalf("expected 3..5 ingredients, got %d for %v", n, tc.restrictions)
			}
		})
	}
}

func TestSelectExcludesNamedAllergens(t *testing.T) {
	s := NewSelector()
	sel := s.Select(nil, nil, 0.5, []string{"allergic to eggs"})
	if n := len(sel.Ingredients); n < 3 || n > 5 {
		t.Fatalf("expected 3..5 ingredients, got %d", n)
	}
	for _, ing := range sel.Ingredients {
		if ing.Name == "eggs" {
			t.Fatal("egg allergy still selected eggs")
		}
	}
}

func TestSelectRespectsDietarySafety(t *testing.T) {
	s := NewSelector()
	restrictions := []string{"vegan", "gluten-free"}
	sel := s.Select([]string{"indian"}, nil, 0.8, restrictions)
	for _, ing := range sel.Ingredients {
		for _, r := range restrictions {
			safe := false
			for _, tag := range ing.DietarySafe {
				if tag == r {
					safe = true
					break
				}
			}
			if !safe {
				t.Errorf("ingredient %q is not tagged safe for %q", ing.Name, r)
			}
		}
	}
}

func TestSelectCoversUsageBuckets(t *testing.T) {
	s := NewSelector()
	sel := s.Select([]string{"korean"}, nil, 0.5, nil)
	for _, bucket := range requiredBuckets {
		if !sel.Coverage[bucket] {
			t.Errorf("bucket %q not covered by %v", bucket, sel.Ingredients)
		}
	}
}

func TestSelectPrefersCulturalMatches(t *testing.T) {
	catalog := []meal.HeroIngredient{
		{Name: "gochujang-friendly", Versatility: 0.5, CostEfficiency: 0.5, CulturalMatches: []string{"korean"}, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}},
		{Name: "neutral", Versatility: 0.5, CostEfficiency: 0.5, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}},
		{Name: "veg", Versatility: 0.5, CostEfficiency: 0.5, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}},
		{Name: "aroma", Versatility: 0.5, CostEfficiency: 0.5, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}},
		{Name: "base", Versatility: 0.5, CostEfficiency: 0.5, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}},
	}
	s := NewSelectorWithCatalog(catalog)
	sel := s.Select([]string{"korean"}, nil, 0.5, nil)
	if len(sel.Ingredients) == 0 || sel.Ingredients[0].Name != "gochujang-friendly" {
		t.Fatalf("expected cultural match picked first, got %v", sel.Ingredients)
	}
}

func TestSelectCostPriorityShiftsRanking(t *testing.T) {
	catalog := []meal.HeroIngredient{
		{Name: "versatile-pricey", Versatility: 1.0, CostEfficiency: 0.2, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}},
		{Name: "cheap-plain", Versatility: 0.4, CostEfficiency: 1.0, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}},
		{Name: "veg", Versatility: 0.1, CostEfficiency: 0.1, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}},
		{Name: "aroma", Versatility: 0.1, CostEfficiency: 0.1, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}},
		{Name: "base", Versatility: 0.1, CostEfficiency: 0.1, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}},
	}
	s := NewSelectorWithCatalog(catalog)

	low := s.Select(nil, nil, 0.0, nil)
	if low.Ingredients[0].Name != "versatile-pricey" {
		t.Fatalf("low cost priority: expected versatile pick first, got %q", low.Ingredients[0].Name)
	}
	high := s.Select(nil, nil, 1.0, nil)
	if high.Ingredients[0].Name != "cheap-plain" {
		t.Fatalf("high cost priority: expected cheap pick first, got %q", high.Ingredients[0].Name)
	}
}

func TestSelectAvailabilityBonus(t *testing.T) {
	s := NewSelector()
	with := s.Select(nil, []string{"rice"}, 0.5, nil)
	found := false
	for _, ing := range with.Ingredients {
		if ing.Name == "rice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected already-available rice to be selected, got %v", with.Ingredients)
	}
}
