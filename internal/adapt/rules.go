package adapt

// Substitute is one replacement option for a forbidden ingredient. The
// flags steer selectBestSubstitute when the user's cost or health weight
// dominates.
type Substitute struct {
	Name          string
	Economical    bool
	NutrientDense bool
}

// Restriction keys the engine knows how to enforce.
const (
	RestrictionVegan      = "vegan"
	RestrictionVegetarian = "vegetarian"
	RestrictionGlutenFree = "gluten-free"
	RestrictionDairyFree  = "dairy-free"
	RestrictionEggFree    = "egg-free"
)

var meatSubs = map[string][]Substitute{
	"chicken breast": {{Name: "tofu", Economical: true}, {Name: "tempeh", NutrientDense: true}, {Name: "chickpeas", Economical: true}},
	"chicken":        {{Name: "tofu", Economical: true}, {Name: "tempeh", NutrientDense: true}, {Name: "chickpeas", Economical: true}},
	"beef":           {{Name: "lentils", Economical: true, NutrientDense: true}, {Name: "mushrooms"}, {Name: "seitan"}},
	"pork":           {{Name: "jackfruit"}, {Name: "tempeh", NutrientDense: true}, {Name: "mushrooms", Economical: true}},
	"lamb":           {{Name: "lentils", Economical: true, NutrientDense: true}, {Name: "eggplant"}},
	"turkey":         {{Name: "tofu", Economical: true}, {Name: "tempeh", NutrientDense: true}},
	"bacon":          {{Name: "smoked tempeh", NutrientDense: true}, {Name: "coconut flakes"}},
	"ham":            {{Name: "smoked tofu", Economical: true}},
	"sausage":        {{Name: "plant-based sausage"}, {Name: "seasoned beans", Economical: true}},
	"meatball":       {{Name: "lentil balls", Economical: true, NutrientDense: true}},
	"duck":           {{Name: "seitan"}},
}

var seafoodSubs = map[string][]Substitute{
	"fish":    {{Name: "tofu", Economical: true}, {Name: "hearts of palm"}},
	"salmon":  {{Name: "marinated carrots", Economical: true}, {Name: "tofu"}},
	"tuna":    {{Name: "mashed chickpeas", Economical: true, NutrientDense: true}},
	"shrimp":  {{Name: "king oyster mushrooms"}},
	"prawn":   {{Name: "king oyster mushrooms"}},
	"crab":    {{Name: "hearts of palm"}},
	"lobster": {{Name: "hearts of palm"}},
	"anchovy": {{Name: "capers", Economical: true}},
}

var dairySubs = map[string][]Substitute{
	"milk":   {{Name: "oat milk", Economical: true}, {Name: "soy milk", NutrientDense: true}},
	"butter": {{Name: "olive oil", NutrientDense: true}, {Name: "coconut oil"}, {Name: "margarine", Economical: true}},
	"cheese": {{Name: "nutritional yeast", NutrientDense: true}, {Name: "cashew cheese"}},
	"cream":  {{Name: "coconut cream"}, {Name: "blended silken tofu", Economical: true, NutrientDense: true}},
	"yogurt": {{Name: "coconut yogurt"}, {Name: "soy yogurt", Economical: true, NutrientDense: true}},
	"ghee":   {{Name: "olive oil", NutrientDense: true}},
}

var eggSubs = map[string][]Substitute{
	"egg":        {{Name: "flax egg", Economical: true, NutrientDense: true}, {Name: "chia egg"}, {Name: "mashed banana", Economical: true}},
	"mayonnaise": {{Name: "vegan mayonnaise"}, {Name: "mashed avocado", NutrientDense: true}},
}

var otherAnimalSubs = map[string][]Substitute{
	"honey":   {{Name: "maple syrup"}, {Name: "agave syrup", Economical: true}},
	"gelatin": {{Name: "agar agar"}},
}

var glutenSubs = map[string][]Substitute{
	"wheat flour": {{Name: "rice flour", Economical: true}, {Name: "buckwheat flour", NutrientDense: true}},
	"flour":       {{Name: "rice flour", Economical: true}, {Name: "chickpea flour", NutrientDense: true}},
	"pasta":       {{Name: "rice noodles", Economical: true}},
	"noodles":     {{Name: "rice noodles", Economical: true}},
	"bread":       {{Name: "corn tortillas", Economical: true}},
	"breadcrumbs": {{Name: "crushed rice crackers"}},
	"soy sauce":   {{Name: "tamari"}},
	"couscous":    {{Name: "quinoa", NutrientDense: true}},
	"barley":      {{Name: "quinoa", NutrientDense: true}},
}

func merge(maps ...map[string][]Substitute) map[string][]Substitute {
	out := make(map[string][]Substitute)
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// substitutionRules maps a restriction to its forbidden-item → substitutes
// table. Tunable data, not logic.
var substitutionRules = map[string]map[string][]Substitute{
	RestrictionVegan:      merge(meatSubs, seafoodSubs, dairySubs, eggSubs, otherAnimalSubs),
	RestrictionVegetarian: merge(meatSubs, seafoodSubs),
	RestrictionGlutenFree: glutenSubs,
	RestrictionDairyFree:  dairySubs,
	RestrictionEggFree:    eggSubs,
}

// forbiddenCategories maps a restriction to named token categories; the
// compliance scan reports the specific violated category, never a generic
// failure.
var forbiddenCategories = map[string]map[string][]string{
	RestrictionVegan: {
		"meat":    {"chicken", "beef", "pork", "lamb", "turkey", "bacon", "ham", "sausage", "meatball", "veal", "duck"},
		"seafood": {"fish", "salmon", "tuna", "shrimp", "prawn", "crab", "lobster", "anchovy", "squid"},
		"dairy":   {"milk", "butter", "cheese", "cream", "yogurt", "ghee"},
		"egg":     {"egg", "mayonnaise"},
		"animal":  {"honey", "gelatin", "lard"},
	},
	RestrictionVegetarian: {
		"meat":    {"chicken", "beef", "pork", "lamb", "turkey", "bacon", "ham", "sausage", "meatball", "veal", "duck", "lard"},
		"seafood": {"fish", "salmon", "tuna", "shrimp", "prawn", "crab", "lobster", "anchovy", "squid"},
	},
	RestrictionGlutenFree: {
		"gluten": {"wheat", "barley", "rye", "pasta", "noodles", "bread", "breadcrumbs", "flour", "couscous", "soy sauce", "seitan"},
	},
	RestrictionDairyFree: {
		"dairy": {"milk", "butter", "cheese", "cream", "yogurt", "ghee"},
	},
	RestrictionEggFree: {
		"egg": {"egg", "mayonnaise"},
	},
}

// safePrefixes lists qualifying words that make an otherwise-forbidden
// token harmless ("oat milk", "peanut butter", "flax egg").
var safePrefixes = map[string][]string{
	"milk":       {"oat", "soy", "almond", "coconut", "rice", "cashew"},
	"butter":     {"peanut", "almond", "cashew", "cocoa", "sunflower"},
	"cheese":     {"vegan", "cashew"},
	"cream":      {"coconut"},
	"yogurt":     {"coconut", "soy"},
	"egg":        {"flax", "chia"},
	"mayonnaise": {"vegan"},
	"sausage":    {"plant-based", "vegan"},
	"flour":      {"rice", "almond", "chickpea", "corn", "oat", "buckwheat", "gluten-free"},
	"bread":      {"gluten-free"},
	"noodles":    {"rice", "glass"},
	"pasta":      {"gluten-free"},
}

// exemptWords are whole words that merely contain a token ("eggplant" is
// not an egg, "butternut" is not butter).
var exemptWords = map[string][]string{
	"egg":    {"eggplant"},
	"butter": {"butternut"},
	"ham":    {"hamburger"},
	"fish":   {"fishless"},
	"meat":   {"meatless"},
}
