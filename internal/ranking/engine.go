// Package ranking orders meal candidates by a user's weighted objectives.
package ranking

import (
	"fmt"
	"sort"
	"strings"

	"meal-plan-engine/internal/meal"
	"meal-plan-engine/internal/scoring"
)

// ComplianceChecker filters candidates against hard restrictions before any
// scoring happens.
type ComplianceChecker interface {
	CheckCompliance(c meal.Candidate, restrictions []string) (bool, []meal.Violation)
}

// Ranked is one scored entry in a ranking result.
type Ranked struct {
	Candidate   meal.Candidate
	Total       float64
	Axes        meal.AxisScores
	Explanation string
}

// Engine combines feature scores with a weight profile.
type Engine struct {
	scorer  *scoring.Scorer
	checker ComplianceChecker
}

// New creates an Engine.
func New(scorer *scoring.Scorer, checker ComplianceChecker) *Engine {
	return &Engine{scorer: scorer, checker: checker}
}

// Rank filters the pool to restriction-compliant candidates, scores each
// against the profile, sorts descending, trims entries below
// relevanceThreshold × best score and caps the result at maxResults.
// Non-compliant candidates are excluded before scoring so they cannot
// influence order even as rejected tail entries.
func (e *Engine) Rank(pool []meal.Candidate, staples []string, profile meal.WeightProfile, maxResults int, relevanceThreshold float64) []Ranked {
	profile = profile.Clamp()
	w := profile.Priorities

	var ranked []Ranked
	for _, c := range pool {
		if ok, _ := e.checker.CheckCompliance(c, profile.Restrictions); !ok {
			continue
		}

		axes := c.Scores
		pref := profile.CuisinePreferences[c.Cuisine]
		axes.Cultural = pref * e.scorer.Authenticity(c, staples)

		// Variety is a selection-time penalty applied by the allocator, not
		// part of the per-candidate sum.
		denom := w.Cultural + w.Health + w.Cost + w.Time
		var total float64
		if denom <= 0 {
			total = (axes.Cultural + axes.Health + axes.Cost + axes.Time) / 4
		} else {
			total = (w.Cultural*axes.Cultural + w.Health*axes.Health + w.Cost*axes.Cost + w.Time*axes.Time) / denom
		}

		ranked = append(ranked, Ranked{
			Candidate:   c,
			Total:       total,
			Axes:        axes,
			Explanation: explain(axes),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })

	if len(ranked) == 0 {
		return ranked
	}
	if relevanceThreshold > 0 {
		cutoff := relevanceThreshold * ranked[0].Total
		trimmed := ranked[:0]
		for _, r := range ranked {
			if r.Total >= cutoff {
				trimmed = append(trimmed, r)
			}
		}
		ranked = trimmed
	}
	if maxResults > 0 && len(ranked) > maxResults {
		ranked = ranked[:maxResults]
	}
	return ranked
}

func explain(axes meal.AxisScores) string {
	type axis struct {
		name  string
		value float64
	}
	all := []axis{
		{"cultural fit", axes.Cultural},
		{"health", axes.Health},
		{"cost", axes.Cost},
		{"time", axes.Time},
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].value > all[j].value })

	var strong []string
	for _, a := range all {
		if a.value >= 0.7 {
			strong = append(strong, a.name)
		}
	}
	if len(strong) == 0 {
		return fmt.Sprintf("balanced profile, strongest on %s", all[0].name)
	}
	return "strong on " + strings.Join(strong, ", ")
}
