package synth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"meal-plan-engine/internal/meal"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeGenerator) GenerateContent(_ context.Context, prompt string) (ContentResponse, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return ContentResponse{}, f.err
	}
	return ContentResponse{Content: f.response}, nil
}

const validResponse = `{
	"title": "Spiced Chickpea Skillet",
	"description": "Quick chickpeas with tomato and cumin.",
	"ingredients": ["1 cup canned chickpeas", "1 cup canned tomatoes", "1 tsp cumin"],
	"instructions": ["Simmer everything for 10 minutes."],
	"nutrition": {"calories": 430, "protein_grams": 15, "carb_grams": 60, "fat_grams": 12},
	"prep_time_minutes": 5,
	"cook_time_minutes": 10,
	"difficulty": 2
}`

func TestSynthesizeParsesValidResponse(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	s := NewSynthesizer(gen)

	got, err := s.Synthesize(context.Background(), Brief{MealType: meal.Dinner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Spiced Chickpea Skillet" {
		t.Errorf("unexpected title %q", got.Name)
	}
	if got.ID != "synth/spiced-chickpea-skillet" {
		t.Errorf("unexpected id %q", got.ID)
	}
	if got.CookMinutes != 10 || got.Difficulty != 2 {
		t.Errorf("cook/difficulty not carried over: %+v", got)
	}
	if got.Nutrition.Calories != 430 {
		t.Errorf("nutrition not carried over: %+v", got.Nutrition)
	}
}

func TestSynthesizeStripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + validResponse + "\n```"}
	s := NewSynthesizer(gen)

	got, err := s.Synthesize(context.Background(), Brief{MealType: meal.Lunch})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "Spiced Chickpea Skillet" {
		t.Errorf("unexpected title %q", got.Name)
	}
}

func TestSynthesizePromptCarriesBrief(t *testing.T) {
	gen := &fakeGenerator{response: validResponse}
	s := NewSynthesizer(gen)

	brief := Brief{
		MealType:        meal.Dinner,
		Weights:         meal.Weights{Health: 0.9, Cost: 0.4, Time: 0.5},
		HeroIngredients: []string{"lentils", "garlic"},
		Restrictions:    []string{"vegan"},
		AvoidTitles:     []string{"Lentil Soup"},
	}
	if _, err := s.Synthesize(context.Background(), brief); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	prompt := gen.prompts[0]
	for _, want := range []string{"dinner", "0.90", "lentils", "vegan", "Lentil Soup"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSynthesizeGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("quota exceeded")}
	s := NewSynthesizer(gen)

	_, err := s.Synthesize(context.Background(), Brief{MealType: meal.Dinner})
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected *SynthesisError, got %v", err)
	}
	if synthErr.Stage != "generate" {
		t.Errorf("expected generate stage, got %q", synthErr.Stage)
	}
}

func TestSynthesizeMalformedJSON(t *testing.T) {
	gen := &fakeGenerator{response: "here is your recipe: lentil soup"}
	s := NewSynthesizer(gen)

	_, err := s.Synthesize(context.Background(), Brief{MealType: meal.Dinner})
	var synthErr *SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected *SynthesisError, got %v", err)
	}
	if synthErr.Stage != "parse" {
		t.Errorf("expected parse stage, got %q", synthErr.Stage)
	}
}

func TestSynthesizeSchemaViolations(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"missing title", `{"ingredients":["a","b"],"instructions":["x"],"nutrition":{"calories":400},"cook_time_minutes":10,"difficulty":2}`},
		{"one ingredient", `{"title":"Soup","ingredients":["water"],"instructions":["x"],"nutrition":{"calories":400},"cook_time_minutes":10,"difficulty":2}`},
		{"difficulty out of range", `{"title":"Soup","ingredients":["a","b"],"instructions":["x"],"nutrition":{"calories":400},"cook_time_minutes":10,"difficulty":9}`},
		{"zero cook time", `{"title":"Soup","ingredients":["a","b"],"instructions":["x"],"nutrition":{"calories":400},"difficulty":2}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSynthesizer(&fakeGenerator{response: tc.response})
			_, err := s.Synthesize(context.Background(), Brief{MealType: meal.Dinner})
			var synthErr *SynthesisError
			if !errors.As(err, &synthErr) {
				t.Fatalf("expected *SynthesisError, got %v", err)
			}
			if synthErr.Stage != "validate" {
				t.Errorf("expected validate stage, got %q", synthErr.Stage)
			}
		})
	}
}

func TestFallbackLibraryCoversAllMealTypes(t *testing.T) {
	lib := NewFallbackLibrary()
	for _, mt := range []meal.MealType{meal.Breakfast, meal.Lunch, meal.Dinner, meal.Snack} {
		c := lib.MealFor(mt)
		if c.Name == "" || len(c.Ingredients) == 0 || len(c.Instructions) == 0 {
			t.Errorf("fallback for %s is incomplete: %+v", mt, c)
		}
		if !c.Dietary.Vegan || !c.Dietary.GlutenFree || !c.Dietary.DairyFree || !c.Dietary.EggFree {
			t.Errorf("fallback for %s is not universally safe: %+v", mt, c.Dietary)
		}
	}
}

func TestFallbackMealForUnknownTypeDefaultsToDinner(t *testing.T) {
	lib := NewFallbackLibrary()
	c := lib.MealFor(meal.MealType("brunch"))
	if c.ID != "fallback/lentil-vegetable-stew" {
		t.Errorf("expected dinner fallback, got %q", c.ID)
	}
}
