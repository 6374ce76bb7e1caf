package planner

import (
	"context"
	"sort"

	"github.com/rs/zerolog"

	"meal-plan-engine/internal/culture"
	"meal-plan-engine/internal/meal"
	"meal-plan-engine/internal/ranking"
)

// PoolSelector serves ranked cultural candidates by combining the cache
// store with the ranking engine. Stale pools returned alongside a fetch
// error are still usable; staleness is logged, not fatal.
type PoolSelector struct {
	store              *culture.Store
	engine             *ranking.Engine
	relevanceThreshold float64
	varietyThreshold   float64
	log                zerolog.Logger
}

func NewPoolSelector(store *culture.Store, engine *ranking.Engine, relevanceThreshold, varietyThreshold float64, log zerolog.Logger) *PoolSelector {
	return &PoolSelector{
		store:              store,
		engine:             engine,
		relevanceThreshold: relevanceThreshold,
		varietyThreshold:   varietyThreshold,
		log:                log,
	}
}

// Top returns up to maxResults ranked candidates across the given cuisines,
// skipping titles already used in the plan. If too few candidates clear the
// relevance threshold, a second pass runs at the looser variety threshold.
func (s *PoolSelector) Top(ctx context.Context, cuisines []string, profile meal.WeightProfile, usedTitles map[string]bool, maxResults int) []ranking.Ranked {
	pools := s.collect(ctx, cuisines)
	if len(pools) == 0 {
		return nil
	}

	results := s.rank(pools, profile, usedTitles, maxResults, s.relevanceThreshold)
	if len(results) < maxResults {
		// Variety boost: admit lower-relevance candidates before
		// falling back to synthesis.
		results = s.rank(pools, profile, usedTitles, maxResults, s.varietyThreshold)
	}
	if len(results) == 0 {
		// Last resort: allow repeats rather than returning nothing.
		results = s.rank(pools, profile, nil, maxResults, s.varietyThreshold)
	}
	return results
}

func (s *PoolSelector) collect(ctx context.Context, cuisines []string) []*culture.Pool {
	var pools []*culture.Pool
	for _, cuisine := range cuisines {
		pool, err := s.store.Get(ctx, cuisine, false)
		if err != nil {
			if pool == nil {
				s.log.Warn().Err(err).Str("cuisine", cuisine).Msg("cultural pool unavailable")
				continue
			}
			s.log.Warn().Err(err).Str("cuisine", cuisine).Msg("serving stale cultural pool")
		}
		pools = append(pools, pool)
	}
	return pools
}

func (s *PoolSelector) rank(pools []*culture.Pool, profile meal.WeightProfile, usedTitles map[string]bool, maxResults int, threshold float64) []ranking.Ranked {
	var merged []ranking.Ranked
	for _, pool := range pools {
		candidates := pool.Candidates
		if len(usedTitles) > 0 {
			candidates = make([]meal.Candidate, 0, len(pool.Candidates))
			for _, c := range pool.Candidates {
				if !usedTitles[c.Name] {
					candidates = append(candidates, c)
				}
			}
		}
		merged = append(merged, s.engine.Rank(candidates, pool.Staples, profile, maxResults, threshold)...)
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Total > merged[j].Total })
	if len(merged) > maxResults {
		merged = merged[:maxResults]
	}
	return merged
}
