package meal

// PlacedMeal records one already-filled slot, used for anti-clustering and
// variety penalties.
type PlacedMeal struct {
	Title    string
	Cuisine  string
	Cultural bool
}

// PlanContext tracks plan-wide state while slots are being filled.
type PlanContext struct {
	TotalSlots           int
	OptimalCulturalMeals int
	CulturalMealsUsed    int
	HeroIngredients      []string
	History              []PlacedMeal
}

// LastN returns up to n most recent placed meals, oldest first.
func (p *PlanContext) LastN(n int) []PlacedMeal {
	if len(p.History) <= n {
		return p.History
	}
	return p.History[len(p.History)-n:]
}

// SlotContext identifies the slot currently being filled.
type SlotContext struct {
	Day   int
	Meal  MealType
	Index int
	Prior []PlacedMeal
}

// HeroIngredient is a versatile, cost-efficient ingredient deliberately
// reused across a plan to cut cost and waste.
type HeroIngredient struct {
	Name            string   `json:"name"`
	Versatility     float64  `json:"versatility"`
	CostEfficiency  float64  `json:"cost_efficiency"`
	CulturalMatches []string `json:"cultural_matches,omitempty"`
	StorageLifeDays int      `json:"storage_life_days"`
	DietarySafe     []string `json:"dietary_safe"`
	Contexts        []string `json:"contexts"`
	BulkFriendly    bool     `json:"bulk_friendly"`
}

// Usage-context buckets a hero-ingredient set should cover.
const (
	ContextProtein   = "protein"
	ContextVegetable = "vegetable"
	ContextAromatic  = "aromatic"
	ContextBase      = "base"
)

// Violation names the specific restriction category a candidate still
// breaks after adaptation.
type Violation struct {
	Restriction string `json:"restriction"`
	Category    string `json:"category"`
	Item        string `json:"item"`
}

// AdaptationReport is the result of forcing a candidate to satisfy hard
// restrictions. Violations is empty exactly when Compliant is true.
type AdaptationReport struct {
	Candidate  Candidate   `json:"candidate"`
	Notes      []string    `json:"notes"`
	Compliant  bool        `json:"compliant"`
	Violations []Violation `json:"violations,omitempty"`
}
