package hero

import "meal-plan-engine/internal/meal"

// allSafe marks an ingredient safe for every category restriction the
// engine enforces.
var allSafe = []string{"vegetarian", "vegan", "gluten-free", "dairy-free", "egg-free"}

// defaultCatalog is the built-in hero-ingredient catalog. Versatility and
// cost-efficiency values are tuned defaults; keep the weighted-sum
// selection structure when adjusting them.
var defaultCatalog = []meal.HeroIngredient{
	{Name: "chicken thighs", Versatility: 0.9, CostEfficiency: 0.8, CulturalMatches: []string{"korean", "mexican", "italian", "indian", "thai"}, StorageLifeDays: 3, DietarySafe: []string{"gluten-free", "dairy-free", "egg-free"}, Contexts: []string{meal.ContextProtein}, BulkFriendly: true},
	{Name: "eggs", Versatility: 0.95, CostEfficiency: 0.9, CulturalMatches: []string{"korean", "japanese", "mexican", "italian"}, StorageLifeDays: 21, DietarySafe: []string{"vegetarian", "gluten-free", "dairy-free"}, Contexts: []string{meal.ContextProtein}},
	{Name: "tofu", Versatility: 0.85, CostEfficiency: 0.8, CulturalMatches: []string{"korean", "japanese", "chinese", "thai", "vietnamese"}, StorageLifeDays: 7, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}},
	{Name: "lentils", Versatility: 0.75, CostEfficiency: 0.95, CulturalMatches: []string{"indian", "middle eastern", "ethiopian"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}, BulkFriendly: true},
	{Name: "chickpeas", Versatility: 0.8, CostEfficiency: 0.9, CulturalMatches: []string{"indian", "middle eastern", "mediterranean"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}, BulkFriendly: true},
	{Name: "black beans", Versatility: 0.75, CostEfficiency: 0.95, CulturalMatches: []string{"mexican", "brazilian", "cuban"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextProtein}, BulkFriendly: true},
	{Name: "greek yogurt", Versatility: 0.7, CostEfficiency: 0.6, CulturalMatches: []string{"greek", "indian", "middle eastern"}, StorageLifeDays: 14, DietarySafe: []string{"vegetarian", "gluten-free", "egg-free"}, Contexts: []string{meal.ContextProtein}},
	{Name: "cabbage", Versatility: 0.8, CostEfficiency: 0.95, CulturalMatches: []string{"korean", "german", "polish", "chinese"}, StorageLifeDays: 30, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}, BulkFriendly: true},
	{Name: "carrots", Versatility: 0.85, CostEfficiency: 0.9, CulturalMatches: []string{"french", "korean", "moroccan"}, StorageLifeDays: 21, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}, BulkFriendly: true},
	{Name: "spinach", Versatility: 0.8, CostEfficiency: 0.7, CulturalMatches: []string{"indian", "greek", "italian", "korean"}, StorageLifeDays: 5, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}},
	{Name: "bell peppers", Versatility: 0.8, CostEfficiency: 0.65, CulturalMatches: []string{"mexican", "italian", "chinese", "hungarian"}, StorageLifeDays: 10, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable}},
	{Name: "canned tomatoes", Versatility: 0.85, CostEfficiency: 0.9, CulturalMatches: []string{"italian", "mexican", "indian", "spanish"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextVegetable, meal.ContextBase}, BulkFriendly: true},
	{Name: "onions", Versatility: 0.95, CostEfficiency: 0.95, CulturalMatches: []string{"french", "indian", "mexican", "italian", "korean"}, StorageLifeDays: 30, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}, BulkFriendly: true},
	{Name: "garlic", Versatility: 0.95, CostEfficiency: 0.9, CulturalMatches: []string{"korean", "italian", "chinese", "thai", "spanish"}, StorageLifeDays: 60, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}},
	{Name: "ginger", Versatility: 0.8, CostEfficiency: 0.8, CulturalMatches: []string{"korean", "chinese", "indian", "thai", "japanese"}, StorageLifeDays: 21, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}},
	{Name: "scallions", Versatility: 0.75, CostEfficiency: 0.8, CulturalMatches: []string{"korean", "chinese", "japanese", "vietnamese"}, StorageLifeDays: 7, DietarySafe: allSafe, Contexts: []string{meal.ContextAromatic}},
	{Name: "rice", Versatility: 0.95, CostEfficiency: 0.95, CulturalMatches: []string{"korean", "japanese", "chinese", "indian", "mexican", "thai"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}, BulkFriendly: true},
	{Name: "potatoes", Versatility: 0.9, CostEfficiency: 0.95, CulturalMatches: []string{"german", "irish", "peruvian", "indian"}, StorageLifeDays: 30, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}, BulkFriendly: true},
	{Name: "rolled oats", Versatility: 0.7, CostEfficiency: 0.95, CulturalMatches: []string{"american", "scottish"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}, BulkFriendly: true},
	{Name: "rice noodles", Versatility: 0.7, CostEfficiency: 0.8, CulturalMatches: []string{"thai", "vietnamese", "chinese"}, StorageLifeDays: 365, DietarySafe: allSafe, Contexts: []string{meal.ContextBase}, BulkFriendly: true},
}
