package meal

// MealType identifies the slot a meal is planned for.
type MealType string

const (
	Breakfast MealType = "breakfast"
	Lunch     MealType = "lunch"
	Dinner    MealType = "dinner"
	Snack     MealType = "snack"
)

// AxisScores holds the four normalized objective scores for a candidate.
// Each axis lives in [0.2, 1.0]; the floor avoids zero divisions downstream.
type AxisScores struct {
	Cultural float64 `json:"cultural"`
	Health   float64 `json:"health"`
	Cost     float64 `json:"cost"`
	Time     float64 `json:"time"`
}

// DietaryTags are derived from a candidate's ingredients, never asserted by
// the upstream source.
type DietaryTags struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
	EggFree    bool `json:"egg_free"`
}

// NutritionEstimate is a rough per-serving estimate; exact macros are not a
// contract of the engine.
type NutritionEstimate struct {
	Calories     int     `json:"calories"`
	ProteinGrams float64 `json:"protein_grams"`
	CarbsGrams   float64 `json:"carbs_grams"`
	FatGrams     float64 `json:"fat_grams"`
}

// Candidate is a single meal under consideration. A Candidate is immutable
// once scored; re-scoring or adaptation produces a new value.
type Candidate struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Cuisine      string            `json:"cuisine,omitempty"`
	Description  string            `json:"description"`
	Ingredients  []string          `json:"ingredients"`
	Instructions []string          `json:"instructions"`
	Techniques   []string          `json:"techniques,omitempty"`
	Scores       AxisScores        `json:"scores"`
	Dietary      DietaryTags       `json:"dietary"`
	Nutrition    NutritionEstimate `json:"nutrition"`
	PrepMinutes  int               `json:"prep_minutes"`
	CookMinutes  int               `json:"cook_minutes"`
	Difficulty   int               `json:"difficulty"`
}

// WithScores returns a copy of the candidate carrying the given axis scores.
func (c Candidate) WithScores(s AxisScores) Candidate {
	c.Scores = s
	return c
}

// Clone returns a deep copy so adaptations never mutate the original.
func (c Candidate) Clone() Candidate {
	out := c
	out.Ingredients = append([]string(nil), c.Ingredients...)
	out.Instructions = append([]string(nil), c.Instructions...)
	out.Techniques = append([]string(nil), c.Techniques...)
	return out
}
