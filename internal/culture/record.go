// Package culture owns every piece of shared cache state for cultural
// candidate pools: the TTL-bound record map, hit/miss counters, the
// sliding-window rate limit on upstream fetches and the periodic eviction
// sweep. No other component reads or writes cache internals directly.
package culture

import (
	"strings"
	"time"

	"meal-plan-engine/internal/adapt"
	"meal-plan-engine/internal/knowledge"
	"meal-plan-engine/internal/meal"
	"meal-plan-engine/internal/scoring"
)

// Pool is the set of scored candidates available for one cuisine.
type Pool struct {
	Cuisine    string           `json:"cuisine"`
	Candidates []meal.Candidate `json:"candidates"`
	Staples    []string         `json:"staples"`
	Techniques []string         `json:"techniques"`
}

// CacheRecord wraps a pool with its cache bookkeeping. A record is created
// on first successful fetch, fully replaced on refresh (never partially
// written), and has its access fields mutated on every hit. CreatedAt marks
// the first fetch and survives refreshes; UpdatedAt moves on every refresh.
type CacheRecord struct {
	Cuisine      string
	Pool         Pool
	DataVersion  int
	QualityScore float64
	AccessCount  int
	LastAccessed time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Age returns how old the record's data is, measured from the last refresh.
func (r *CacheRecord) Age(now time.Time) time.Duration {
	return now.Sub(r.UpdatedAt)
}

// Clock abstracts time for the store so tests can drive TTL and rate-limit
// behavior deterministically.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			b.WriteByte('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

// buildPool converts a raw knowledge payload into a scored candidate pool.
// Candidate IDs are deterministic slugs so repeated refreshes of identical
// upstream data produce identical pools.
func buildPool(cuisine string, data *knowledge.CuisineData, scorer *scoring.Scorer) Pool {
	pool := Pool{
		Cuisine:    cuisine,
		Staples:    append([]string(nil), data.Summary.CommonHealthyIngredients...),
		Techniques: append([]string(nil), data.Summary.CommonCookingTechniques...),
	}
	for _, entry := range data.Meals {
		if strings.TrimSpace(entry.Name) == "" {
			continue
		}
		prep, cook, difficulty := estimateEffort(entry)
		c := meal.Candidate{
			ID:          slug(cuisine) + "/" + slug(entry.Name),
			Name:        entry.Name,
			Cuisine:     cuisine,
			Description: entry.Description,
			Ingredients: append([]string(nil), entry.HealthyIngredients...),
			Techniques:  append([]string(nil), entry.CookingTechniques...),
			PrepMinutes: prep,
			CookMinutes: cook,
			Difficulty:  difficulty,
		}
		for _, mod := range entry.HealthyModifications {
			if mod != "" {
				c.Instructions = append(c.Instructions, mod)
			}
		}
		c.Dietary = adapt.DeriveTags(c.Ingredients)
		c = c.WithScores(scorer.Score(c))
		pool.Candidates = append(pool.Candidates, c)
	}
	return pool
}

// estimateEffort derives rough prep/cook minutes and difficulty from the
// entry's techniques. Deterministic per entry.
func estimateEffort(entry knowledge.MealEntry) (prep, cook, difficulty int) {
	prep, cook, difficulty = 15, 25, 2
	text := strings.ToLower(entry.Description + " " + strings.Join(entry.CookingTechniques, " "))
	for kw, extra := range map[string]int{"braise": 60, "slow": 45, "roast": 25, "simmer": 20, "ferment": 90} {
		if strings.Contains(text, kw) {
			cook += extra
			difficulty++
		}
	}
	if strings.Contains(text, "marinate") || strings.Contains(text, "overnight") {
		prep += 20
		difficulty++
	}
	if len(entry.CookingTechniques) > 3 {
		difficulty++
	}
	if difficulty > 5 {
		difficulty = 5
	}
	return prep, cook, difficulty
}
