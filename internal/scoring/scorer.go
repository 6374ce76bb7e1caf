// Package scoring derives normalized objective scores for meal candidates
// from their text and metadata. Scoring is deterministic: no randomness, no
// I/O, so two calls with identical input produce identical scores.
package scoring

import (
	"sort"
	"strings"

	"meal-plan-engine/internal/meal"
)

const (
	scoreFloor = 0.2
	scoreCeil  = 1.0
	baseline   = 0.6
)

// Keyword weights are empirically tuned defaults, not invariants. Keep the
// structure (weighted hits over bounded sub-scores) when retuning.
var defaultHealthSignals = map[string]float64{
	"steamed":    0.10,
	"grilled":    0.08,
	"baked":      0.06,
	"poached":    0.08,
	"fresh":      0.05,
	"vegetable":  0.06,
	"salad":      0.06,
	"lean":       0.05,
	"whole":      0.04,
	"legume":     0.05,
	"fried":      -0.12,
	"deep-fried": -0.15,
	"cream":      -0.08,
	"butter":     -0.06,
	"sugar":      -0.08,
	"syrup":      -0.07,
	"bacon":      -0.08,
	"sausage":    -0.07,
	"battered":   -0.10,
}

var defaultCostSignals = map[string]float64{
	"rice":     0.08,
	"beans":    0.08,
	"lentil":   0.08,
	"cabbage":  0.06,
	"potato":   0.07,
	"egg":      0.06,
	"oat":      0.06,
	"pasta":    0.06,
	"carrot":   0.05,
	"onion":    0.05,
	"seasonal": 0.04,
	"saffron":  -0.12,
	"lobster":  -0.15,
	"truffle":  -0.15,
	"steak":    -0.08,
	"salmon":   -0.06,
	"shrimp":   -0.05,
	"imported": -0.06,
}

var defaultTimeSignals = map[string]float64{
	"quick":     0.10,
	"stir-fry":  0.08,
	"one-pan":   0.08,
	"one-pot":   0.07,
	"simple":    0.05,
	"no-cook":   0.10,
	"braise":    -0.12,
	"braised":   -0.12,
	"marinate":  -0.08,
	"marinated": -0.08,
	"overnight": -0.12,
	"slow":      -0.10,
	"roast":     -0.05,
	"simmer":    -0.05,
	"ferment":   -0.12,
}

// signal is one keyword rule in evaluation order.
type signal struct {
	keyword string
	weight  float64
}

// orderSignals fixes a table's evaluation order. Float summation is not
// associative, so map iteration order would make repeat scores of the same
// candidate differ in their last bits.
func orderSignals(m map[string]float64) []signal {
	out := make([]signal, 0, len(m))
	for kw, w := range m {
		out = append(out, signal{keyword: kw, weight: w})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].keyword < out[j].keyword })
	return out
}

// Scorer converts a raw candidate's text and metadata into axis scores.
// The zero value is not usable; call New.
type Scorer struct {
	health []signal
	cost   []signal
	time   []signal
}

// New returns a Scorer using the default keyword tables.
func New() *Scorer {
	return &Scorer{
		health: orderSignals(defaultHealthSignals),
		cost:   orderSignals(defaultCostSignals),
		time:   orderSignals(defaultTimeSignals),
	}
}

func clampScore(v float64) float64 {
	if v < scoreFloor {
		return scoreFloor
	}
	if v > scoreCeil {
		return scoreCeil
	}
	return v
}

// corpus builds the lowercase text a candidate is scored against.
func corpus(c meal.Candidate) string {
	var b strings.Builder
	b.WriteString(c.Name)
	b.WriteByte(' ')
	b.WriteString(c.Description)
	for _, ing := range c.Ingredients {
		b.WriteByte(' ')
		b.WriteString(ing)
	}
	for _, t := range c.Techniques {
		b.WriteByte(' ')
		b.WriteString(t)
	}
	return strings.ToLower(b.String())
}

func applySignals(text string, signals []signal) float64 {
	score := baseline
	for _, sig := range signals {
		if strings.Contains(text, sig.keyword) {
			score += sig.weight
		}
	}
	return clampScore(score)
}

// Score derives health, cost-efficiency and time-efficiency for a candidate.
// The cultural axis is left at its floor here; ranking combines authenticity
// with the caller's per-cuisine preference instead.
func (s *Scorer) Score(c meal.Candidate) meal.AxisScores {
	text := corpus(c)

	timeScore := applySignals(text, s.time)
	// Long combined prep+cook times drag time-efficiency down regardless of
	// keywords.
	total := c.PrepMinutes + c.CookMinutes
	switch {
	case total > 90:
		timeScore = clampScore(timeScore - 0.2)
	case total > 60:
		timeScore = clampScore(timeScore - 0.1)
	case total > 0 && total <= 20:
		timeScore = clampScore(timeScore + 0.1)
	}

	return meal.AxisScores{
		Cultural: scoreFloor,
		Health:   applySignals(text, s.health),
		Cost:     applySignals(text, s.cost),
		Time:     timeScore,
	}
}

// Authenticity scores how strongly a candidate overlaps a cuisine's declared
// staple ingredients. Returned value is in [0.2, 1.0].
func (s *Scorer) Authenticity(c meal.Candidate, staples []string) float64 {
	if len(staples) == 0 {
		return scoreFloor
	}
	text := corpus(c)
	hits := 0
	for _, staple := range staples {
		if staple == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(staple)) {
			hits++
		}
	}
	return clampScore(float64(hits) / float64(len(staples)) * 1.5)
}
