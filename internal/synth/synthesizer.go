// Package synth turns a constraint brief into a candidate meal via an
// external generative model, validating the response schema before any
// other component touches it.
package synth

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"meal-plan-engine/internal/meal"
)

//go:embed synthesize_prompt.md
var synthesizePrompt string

// Brief is the constraint bundle handed to the generative model for one slot.
type Brief struct {
	MealType        meal.MealType
	Weights         meal.Weights
	HeroIngredients []string
	Restrictions    []string
	AvoidTitles     []string
}

// generatedMeal is the wire schema expected back from the model. No trust
// is extended to the response: every field below is checked before use.
type generatedMeal struct {
	Title        string   `json:"title" validate:"required,min=3"`
	Description  string   `json:"description"`
	Ingredients  []string `json:"ingredients" validate:"required,min=2,dive,required"`
	Instructions []string `json:"instructions" validate:"required,min=1,dive,required"`
	Nutrition    struct {
		Calories     int     `json:"calories" validate:"required,gt=0"`
		ProteinGrams float64 `json:"protein_grams" validate:"gte=0"`
		CarbGrams    float64 `json:"carb_grams" validate:"gte=0"`
		FatGrams     float64 `json:"fat_grams" validate:"gte=0"`
	} `json:"nutrition" validate:"required"`
	PrepTimeMinutes int `json:"prep_time_minutes" validate:"gte=0"`
	CookTimeMinutes int `json:"cook_time_minutes" validate:"required,gt=0"`
	Difficulty      int `json:"difficulty" validate:"required,gte=1,lte=5"`
}

// Synthesizer generates one-off meals for slots the cultural pool cannot
// serve.
type Synthesizer struct {
	textGen  TextGenerator
	validate *validator.Validate
}

func NewSynthesizer(textGen TextGenerator) *Synthesizer {
	return &Synthesizer{
		textGen:  textGen,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Synthesize builds the prompt from the brief, calls the generator and
// returns the schema-validated candidate. Any failure comes back as a
// *SynthesisError so the caller can fall back instead of aborting the plan.
func (s *Synthesizer) Synthesize(ctx context.Context, brief Brief) (meal.Candidate, error) {
	prompt, err := buildSynthesisPrompt(brief)
	if err != nil {
		return meal.Candidate{}, &SynthesisError{Stage: "generate", Err: err}
	}

	resp, err := s.textGen.GenerateContent(ctx, prompt)
	if err != nil {
		return meal.Candidate{}, &SynthesisError{Stage: "generate", Err: err}
	}

	var gen generatedMeal
	if err := json.Unmarshal([]byte(stripFences(resp.Content)), &gen); err != nil {
		return meal.Candidate{}, &SynthesisError{Stage: "parse", Err: fmt.Errorf("failed to parse generated meal: %w", err)}
	}
	if err := s.validate.Struct(&gen); err != nil {
		return meal.Candidate{}, &SynthesisError{Stage: "validate", Err: fmt.Errorf("generated meal failed schema validation: %w", err)}
	}

	return meal.Candidate{
		ID:           "synth/" + slugify(gen.Title),
		Name:         gen.Title,
		Description:  gen.Description,
		Ingredients:  gen.Ingredients,
		Instructions: gen.Instructions,
		Nutrition: meal.NutritionEstimate{
			Calories:     gen.Nutrition.Calories,
			ProteinGrams: gen.Nutrition.ProteinGrams,
			CarbsGrams:   gen.Nutrition.CarbGrams,
			FatGrams:     gen.Nutrition.FatGrams,
		},
		PrepMinutes: gen.PrepTimeMinutes,
		CookMinutes: gen.CookTimeMinutes,
		Difficulty:  gen.Difficulty,
	}, nil
}

func buildSynthesisPrompt(brief Brief) (string, error) {
	tmpl, err := template.New("synthesize").Parse(synthesizePrompt)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, brief); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// stripFences removes a markdown code fence if the model wrapped its JSON
// in one despite instructions.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
