package adapt

import (
	"strings"
	"testing"

	"meal-plan-engine/internal/meal"
)

func TestAdaptChickenBreastUnderVegan(t *testing.T) {
	a := New()
	c := meal.Candidate{
		Name:         "Chicken Stir-Fry",
		Ingredients:  []string{"chicken breast", "broccoli", "soy sauce", "rice"},
		Instructions: []string{"Slice the chicken breast thinly", "Stir-fry with broccoli"},
	}

	report := a.Adapt(c, []string{"vegan"}, meal.Weights{})
	if !report.Compliant {
		t.Fatalf("Expected compliant result, got violations: %+v", report.Violations)
	}

	_, violations := a.CheckCompliance(report.Candidate, []string{"vegan"})
	if len(violations) != 0 {
		t.Errorf("Adapted ingredients still violate vegan: %+v", violations)
	}

	foundNote := false
	for _, note := range report.Notes {
		if strings.Contains(note, "chicken breast") && strings.Contains(note, "Replaced") {
			foundNote = true
		}
	}
	if !foundNote {
		t.Errorf("Expected a substitution note for chicken breast, got %v", report.Notes)
	}

	for _, inst := range report.Candidate.Instructions {
		if strings.Contains(strings.ToLower(inst), "chicken") {
			t.Errorf("Substitution not propagated into instructions: %q", inst)
		}
	}
}

func TestAdaptPrefersEconomicalSubstituteWhenCostDominates(t *testing.T) {
	a := New()
	c := meal.Candidate{Ingredients: []string{"milk"}}

	costly := a.Adapt(c, []string{"dairy-free"}, meal.Weights{Cost: 0.9, Health: 0.2})
	if costly.Candidate.Ingredients[0] != "oat milk" {
		t.Errorf("Expected economical substitute under high cost weight, got %q", costly.Candidate.Ingredients[0])
	}

	healthy := a.Adapt(c, []string{"dairy-free"}, meal.Weights{Cost: 0.2, Health: 0.9})
	if healthy.Candidate.Ingredients[0] != "soy milk" {
		t.Errorf("Expected nutrient-dense substitute under high health weight, got %q", healthy.Candidate.Ingredients[0])
	}
}

func TestAdaptAllergyRemovesInsteadOfSubstituting(t *testing.T) {
	a := New()
	c := meal.Candidate{Ingredients: []string{"peanuts", "rice", "carrots", "onion"}}

	report := a.Adapt(c, []string{"allergic to peanuts"}, meal.Weights{})
	for _, ing := range report.Candidate.Ingredients {
		if strings.Contains(ing, "peanut") {
			t.Errorf("Allergen survived adaptation: %q", ing)
		}
	}
	if len(report.Candidate.Ingredients) != 3 {
		t.Errorf("Expected 3 ingredients after removal, got %v", report.Candidate.Ingredients)
	}
	if !report.Compliant {
		t.Errorf("Expected compliance after allergen removal, got %+v", report.Violations)
	}
}

func TestAdaptWarnsWhenAllergyGutsTheMeal(t *testing.T) {
	a := New()
	c := meal.Candidate{Ingredients: []string{"peanuts", "peanut oil", "rice"}}

	report := a.Adapt(c, []string{"allergic to peanuts"}, meal.Weights{})
	warned := false
	for _, note := range report.Notes {
		if strings.Contains(note, "Warning") {
			warned = true
		}
	}
	if !warned {
		t.Errorf("Expected incoherence warning after removing 2 of 3 ingredients, got %v", report.Notes)
	}
}

func TestCheckComplianceReportsSpecificCategory(t *testing.T) {
	a := New()
	c := meal.Candidate{Ingredients: []string{"tofu", "parmesan cheese"}}

	compliant, violations := a.CheckCompliance(c, []string{"vegan"})
	if compliant {
		t.Fatal("Expected non-compliance for cheese under vegan")
	}
	if len(violations) != 1 {
		t.Fatalf("Expected 1 violation, got %+v", violations)
	}
	if violations[0].Category != "dairy" {
		t.Errorf("Expected dairy category, got %q", violations[0].Category)
	}
	if violations[0].Restriction != "vegan" {
		t.Errorf("Expected vegan restriction, got %q", violations[0].Restriction)
	}
}

func TestTokenMatchingAvoidsFalsePositives(t *testing.T) {
	cases := []struct {
		text  string
		token string
		want  bool
	}{
		{"peanut butter", "butter", false},
		{"butternut squash", "butter", false},
		{"melted butter", "butter", true},
		{"eggplant", "egg", false},
		{"two eggs", "egg", true},
		{"oat milk", "milk", false},
		{"whole milk", "milk", true},
		{"rice flour", "flour", false},
		{"wheat flour", "flour", true},
	}
	for _, tc := range cases {
		if got := containsToken(tc.text, tc.token); got != tc.want {
			t.Errorf("containsToken(%q, %q) = %v, want %v", tc.text, tc.token, got, tc.want)
		}
	}
}

func TestDeriveTags(t *testing.T) {
	tags := DeriveTags([]string{"rice", "tofu", "broccoli"})
	if !tags.Vegan || !tags.Vegetarian || !tags.GlutenFree || !tags.DairyFree || !tags.EggFree {
		t.Errorf("Expected fully-safe tags for plant ingredients, got %+v", tags)
	}

	tags = DeriveTags([]string{"chicken", "cream", "pasta"})
	if tags.Vegan || tags.Vegetarian || tags.GlutenFree || tags.DairyFree {
		t.Errorf("Expected restricted tags, got %+v", tags)
	}
	if !tags.EggFree {
		t.Errorf("Expected egg-free to hold, got %+v", tags)
	}
}

func TestNormalizeRestriction(t *testing.T) {
	cases := map[string]string{
		"Gluten Free":  "gluten-free",
		"dairy_free":   "dairy-free",
		"VEGAN":        "vegan",
		"plant-based":  "vegan",
		"lactose-free": "dairy-free",
	}
	for in, want := range cases {
		if got := NormalizeRestriction(in); got != want {
			t.Errorf("NormalizeRestriction(%q) = %q, want %q", in, got, want)
		}
	}
}
