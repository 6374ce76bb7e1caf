package planner

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"meal-plan-engine/internal/hero"
	"meal-plan-engine/internal/meal"
	"meal-plan-engine/internal/ranking"
	"meal-plan-engine/internal/scoring"
	"meal-plan-engine/internal/synth"
)

// CulturalSelector serves ranked candidates from the cultural pools.
type CulturalSelector interface {
	Top(ctx context.Context, cuisines []string, profile meal.WeightProfile, usedTitles map[string]bool, maxResults int) []ranking.Ranked
}

// MealSynthesizer generates a one-off candidate for a slot.
type MealSynthesizer interface {
	Synthesize(ctx context.Context, brief synth.Brief) (meal.Candidate, error)
}

// FallbackSource hands out guaranteed-valid meals when synthesis fails.
type FallbackSource interface {
	MealFor(mealType meal.MealType) meal.Candidate
}

// AdaptationEngine rewrites candidates to satisfy hard restrictions.
type AdaptationEngine interface {
	Adapt(c meal.Candidate, restrictions []string, weights meal.Weights) meal.AdaptationReport
	CheckCompliance(c meal.Candidate, restrictions []string) (bool, []meal.Violation)
}

// HeroManager picks the reusable ingredient set for a plan.
type HeroManager interface {
	Select(culturalBackground []string, availableIngredients []string, costPriority float64, dietaryRestrictions []string) hero.Selection
}

// Allocator builds a full plan, one slot at a time. Slot n+1's source
// decision depends on state accumulated through slot n, so slots are
// processed sequentially.
type Allocator struct {
	selector    CulturalSelector
	synthesizer MealSynthesizer
	fallback    FallbackSource
	adapter     AdaptationEngine
	heroes      HeroManager
	scorer      *scoring.Scorer
	rng         *rand.Rand
	log         zerolog.Logger
}

// AllocatorOption customizes an Allocator.
type AllocatorOption func(*Allocator)

// WithRand injects the random source used for the top-3 draw. This is the
// only randomness in plan generation; tests seed it to force a pick.
func WithRand(rng *rand.Rand) AllocatorOption {
	return func(a *Allocator) { a.rng = rng }
}

// WithLogger sets the allocator's logger.
func WithLogger(log zerolog.Logger) AllocatorOption {
	return func(a *Allocator) { a.log = log }
}

// NewAllocator creates an Allocator over its collaborators.
func NewAllocator(selector CulturalSelector, synthesizer MealSynthesizer, fallback FallbackSource, adapter AdaptationEngine, heroes HeroManager, opts ...AllocatorOption) *Allocator {
	a := &Allocator{
		selector:    selector,
		synthesizer: synthesizer,
		fallback:    fallback,
		adapter:     adapter,
		heroes:      heroes,
		scorer:      scoring.New(),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Generate builds a complete plan for the request. Only a malformed plan
// shape fails the whole operation; every per-slot failure degrades to the
// fallback meal.
func (a *Allocator) Generate(ctx context.Context, req *Request) (*Plan, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile := req.Profile.Clamp()
	weights := profile.Priorities
	restrictions := gatherRestrictions(req, profile)
	// Ranking pre-filters on the profile's restriction list, so the merged
	// set has to be in place before any candidate is scored.
	profile.Restrictions = restrictions

	selection := a.heroes.Select(req.CulturalBackground, req.AvailableIngredients, weights.Cost, restrictions)
	heroNames := make([]string, len(selection.Ingredients))
	for i, ing := range selection.Ingredients {
		heroNames[i] = ing.Name
	}

	totalSlots := req.TotalSlots()
	pc := meal.PlanContext{
		TotalSlots:           totalSlots,
		OptimalCulturalMeals: optimalCulturalMeals(totalSlots, weights.Cultural),
		HeroIngredients:      heroNames,
	}
	usedTitles := make(map[string]bool, totalSlots)

	plan := &Plan{Days: make(map[string]map[meal.MealType]PlanMeal, req.NumDays)}
	slotTypes := mealTypesFor(req.MealsPerDay)
	compliantSlots := 0
	synthesized := 0
	fallbacks := 0
	slotIndex := 0

	for day := 1; day <= req.NumDays; day++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dayKey := fmt.Sprintf("day_%d", day)
		plan.Days[dayKey] = make(map[meal.MealType]PlanMeal, len(slotTypes))

		for _, mt := range slotTypes {
			sc := meal.SlotContext{Day: day, Meal: mt, Index: slotIndex, Prior: pc.LastN(3)}
			candidate, axes, cultural, usedFallback := a.fillSlot(ctx, req, profile, restrictions, &pc, usedTitles, sc)
			if usedFallback {
				fallbacks++
			} else if !cultural {
				synthesized++
			}

			report := a.adapter.Adapt(candidate, restrictions, weights)
			compliant, violations := a.adapter.CheckCompliance(report.Candidate, restrictions)
			if compliant {
				compliantSlots++
			}

			placed := a.buildPlanMeal(report, axes, weights, cultural, usedTitles, compliant, violations)
			plan.Days[dayKey][mt] = placed

			if cultural {
				pc.CulturalMealsUsed++
			}
			pc.History = append(pc.History, meal.PlacedMeal{Title: placed.Title, Cuisine: report.Candidate.Cuisine, Cultural: cultural})
			usedTitles[placed.Title] = true
			slotIndex++
		}
	}

	compliance := 0.0
	if totalSlots > 0 {
		compliance = float64(compliantSlots) / float64(totalSlots) * 100
	}
	plan.Summary = Summary{
		TotalSlots:             totalSlots,
		CulturalMealsUsed:      pc.CulturalMealsUsed,
		OptimalCulturalMeals:   pc.OptimalCulturalMeals,
		SynthesizedMeals:       synthesized,
		FallbackMeals:          fallbacks,
		CompliancePercentage:   compliance,
		HeroIngredients:        heroNames,
		HeroRationale:          selection.Rationale,
		EstimatedWeeklySavings: selection.EstimatedWeeklySavings,
	}
	return plan, nil
}

// fillSlot picks one candidate for a slot, preferring the cultural pool
// when the source decision says so, and degrading synthesize failures to
// the guaranteed fallback.
func (a *Allocator) fillSlot(ctx context.Context, req *Request, profile meal.WeightProfile, restrictions []string, pc *meal.PlanContext, usedTitles map[string]bool, sc meal.SlotContext) (meal.Candidate, meal.AxisScores, bool, bool) {
	if a.decideSource(pc, sc, profile.Priorities) {
		if top := a.selector.Top(ctx, req.CulturalBackground, profile, usedTitles, 3); len(top) > 0 {
			picked := a.weightedPick(top)
			return picked.Candidate, picked.Axes, true, false
		}
		a.log.Debug().Int("slot", sc.Index).Msg("cultural pool empty, synthesizing instead")
	}

	brief := synth.Brief{
		MealType:        sc.Meal,
		Weights:         profile.Priorities,
		HeroIngredients: pc.HeroIngredients,
		Restrictions:    restrictions,
		AvoidTitles:     recentTitles(pc, 6),
	}
	cand, err := a.synthesizer.Synthesize(ctx, brief)
	if err != nil {
		a.log.Warn().Err(err).Int("slot", sc.Index).Str("meal_type", string(sc.Meal)).Msg("synthesis failed, using fallback meal")
		fb := a.fallback.MealFor(sc.Meal)
		return fb, a.scorer.Score(fb), false, true
	}
	return cand, a.scorer.Score(cand), false, false
}

// decideSource computes the per-slot probability of drawing from the
// cultural pool and rolls against it.
func (a *Allocator) decideSource(pc *meal.PlanContext, sc meal.SlotContext, w meal.Weights) bool {
	if pc.OptimalCulturalMeals <= 0 {
		return false
	}
	if pc.CulturalMealsUsed >= pc.OptimalCulturalMeals {
		// Past quota: only a very strong cultural preference keeps
		// pulling from the pool.
		return w.Cultural > 0.8
	}

	p := w.Cultural
	pace := float64(sc.Index) / float64(pc.TotalSlots)
	if float64(pc.CulturalMealsUsed)/float64(pc.OptimalCulturalMeals) < pace {
		p += 0.2
	}
	switch sc.Meal {
	case meal.Dinner:
		p += 0.1
	case meal.Breakfast:
		p -= 0.1
	}
	culturalRecent := 0
	for _, m := range sc.Prior {
		if m.Cultural {
			culturalRecent++
		}
	}
	if culturalRecent >= 2 {
		p -= 0.3
	}
	if p < 0 {
		p = 0
	} else if p > 1 {
		p = 1
	}
	return a.rng.Float64() < p
}

// weightedPick draws among the top candidates proportionally to their
// total scores, so repeat plans don't always open with the same meal.
func (a *Allocator) weightedPick(top []ranking.Ranked) ranking.Ranked {
	sum := 0.0
	for _, r := range top {
		if r.Total > 0 {
			sum += r.Total
		}
	}
	if sum <= 0 {
		return top[a.rng.Intn(len(top))]
	}
	roll := a.rng.Float64() * sum
	for _, r := range top {
		if r.Total <= 0 {
			continue
		}
		roll -= r.Total
		if roll <= 0 {
			return r
		}
	}
	return top[len(top)-1]
}

func (a *Allocator) buildPlanMeal(report meal.AdaptationReport, axes meal.AxisScores, w meal.Weights, cultural bool, usedTitles map[string]bool, compliant bool, violations []meal.Violation) PlanMeal {
	c := report.Candidate
	variety := 1.0
	if usedTitles[c.Name] {
		variety = 0.4
	}
	satisfaction := WeightSatisfaction{
		Cost:     axes.Cost,
		Health:   axes.Health,
		Cultural: axes.Cultural,
		Variety:  variety,
		Time:     axes.Time,
	}

	var overlap []string
	for _, obj := range []struct {
		name   string
		score  float64
		weight float64
	}{
		{"cultural", axes.Cultural, w.Cultural},
		{"health", axes.Health, w.Health},
		{"cost", axes.Cost, w.Cost},
		{"time", axes.Time, w.Time},
	} {
		if obj.score >= 0.7 && obj.weight >= 0.5 {
			overlap = append(overlap, obj.name)
		}
	}

	var warnings []string
	if !compliant {
		for _, v := range violations {
			warnings = append(warnings, fmt.Sprintf("restriction %q: %s still present (%s)", v.Restriction, v.Item, v.Category))
		}
	}

	pm := PlanMeal{
		Title:              c.Name,
		Description:        c.Description,
		Ingredients:        c.Ingredients,
		Instructions:       c.Instructions,
		Nutrition:          c.Nutrition,
		CookTimeMinutes:    c.CookMinutes,
		Difficulty:         c.Difficulty,
		ObjectiveOverlap:   overlap,
		WeightSatisfaction: satisfaction,
		DietaryWarnings:    warnings,
		AdaptationNotes:    report.Notes,
	}
	if cultural {
		pm.CulturalSource = c.Cuisine
	}
	return pm
}

// gatherRestrictions merges the request's restriction list, the profile's
// restrictions and excluded ingredients (treated as allergy removals).
func gatherRestrictions(req *Request, profile meal.WeightProfile) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(r string) {
		if r == "" || seen[r] {
			return
		}
		seen[r] = true
		out = append(out, r)
	}
	for _, r := range req.DietaryRestrictions {
		add(r)
	}
	for _, r := range profile.Restrictions {
		add(r)
	}
	for _, ing := range req.ExcludeIngredients {
		add("allergic to " + ing)
	}
	return out
}

func recentTitles(pc *meal.PlanContext, n int) []string {
	recent := pc.LastN(n)
	titles := make([]string, len(recent))
	for i, m := range recent {
		titles[i] = m.Title
	}
	return titles
}
