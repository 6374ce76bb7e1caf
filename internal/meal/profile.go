package meal

// Weights is the user's priority vector. Values need not sum to 1; relative
// magnitude drives tie-break priority. Variety is applied at selection time
// against plan history, not in per-candidate totals.
type Weights struct {
	Cultural float64 `json:"cultural" toml:"cultural"`
	Health   float64 `json:"health" toml:"health"`
	Cost     float64 `json:"cost" toml:"cost"`
	Time     float64 `json:"time" toml:"time"`
	Variety  float64 `json:"variety" toml:"variety"`
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Clamp returns a copy with every weight forced into [0,1].
func (w Weights) Clamp() Weights {
	return Weights{
		Cultural: clamp01(w.Cultural),
		Health:   clamp01(w.Health),
		Cost:     clamp01(w.Cost),
		Time:     clamp01(w.Time),
		Variety:  clamp01(w.Variety),
	}
}

// WeightProfile captures everything the engine needs to know about a user:
// soft objectives and their priorities, plus non-negotiable restrictions.
type WeightProfile struct {
	// CuisinePreferences maps cuisine name to a preference in [0,1].
	CuisinePreferences map[string]float64 `json:"cuisine_preferences"`
	Priorities         Weights            `json:"priorities"`
	// Restrictions are hard dietary constraints, in priority order.
	Restrictions []string `json:"restrictions"`
}

// Clamp returns a copy of the profile safe for use: weights and cuisine
// preferences are clamped into [0,1].
func (p WeightProfile) Clamp() WeightProfile {
	out := p
	out.Priorities = p.Priorities.Clamp()
	if len(p.CuisinePreferences) > 0 {
		out.CuisinePreferences = make(map[string]float64, len(p.CuisinePreferences))
		for k, v := range p.CuisinePreferences {
			out.CuisinePreferences[k] = clamp01(v)
		}
	}
	return out
}
