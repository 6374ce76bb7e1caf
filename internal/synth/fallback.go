package synth

import "meal-plan-engine/internal/meal"

// FallbackLibrary hands out minimal guaranteed-valid meals when synthesis
// fails. Every entry is free of meat, seafood, dairy, eggs and gluten so it
// passes any supported restriction without adaptation.
type FallbackLibrary struct {
	byType map[meal.MealType]meal.Candidate
}

func NewFallbackLibrary() *FallbackLibrary {
	safe := meal.DietaryTags{Vegetarian: true, Vegan: true, GlutenFree: true, DairyFree: true, EggFree: true}
	return &FallbackLibrary{byType: map[meal.MealType]meal.Candidate{
		meal.Breakfast: {
			ID:           "fallback/oatmeal-banana",
			Name:         "Oatmeal with Banana and Peanut Butter",
			Description:  "Certified gluten-free rolled oats simmered in water, topped with sliced banana and a spoon of peanut butter.",
			Ingredients:  []string{"1 cup gluten-free rolled oats", "2 cups water", "1 banana", "1 tbsp peanut butter", "pinch of salt"},
			Instructions: []string{"Simmer oats in salted water for 5 minutes.", "Top with sliced banana and peanut butter."},
			Dietary:      safe,
			Nutrition:    meal.NutritionEstimate{Calories: 420, ProteinGrams: 12, CarbsGrams: 68, FatGrams: 12},
			PrepMinutes:  5,
			CookMinutes:  5,
			Difficulty:   1,
		},
		meal.Lunch: {
			ID:           "fallback/chickpea-rice-bowl",
			Name:         "Chickpea and Rice Bowl",
			Description:  "Warm rice bowl with spiced chickpeas, carrots and olive oil.",
			Ingredients:  []string{"1 cup cooked rice", "1 cup canned chickpeas", "1 carrot", "1 tbsp olive oil", "1 tsp cumin", "salt"},
			Instructions: []string{"Warm chickpeas with cumin and olive oil.", "Serve over rice with grated carrot."},
			Dietary:      safe,
			Nutrition:    meal.NutritionEstimate{Calories: 520, ProteinGrams: 16, CarbsGrams: 82, FatGrams: 14},
			PrepMinutes:  5,
			CookMinutes:  10,
			Difficulty:   1,
		},
		meal.Dinner: {
			ID:           "fallback/lentil-vegetable-stew",
			Name:         "Lentil and Vegetable Stew",
			Description:  "One-pot stew of red lentils, potatoes, carrots and onions.",
			Ingredients:  []string{"1 cup red lentils", "2 potatoes", "2 carrots", "1 onion", "2 cloves garlic", "1 tbsp olive oil", "4 cups water", "salt", "black pepper"},
			Instructions: []string{"Soften onion and garlic in olive oil.", "Add lentils, chopped vegetables and water.", "Simmer 25 minutes and season."},
			Dietary:      safe,
			Nutrition:    meal.NutritionEstimate{Calories: 560, ProteinGrams: 24, CarbsGrams: 92, FatGrams: 10},
			PrepMinutes:  10,
			CookMinutes:  30,
			Difficulty:   2,
		},
		meal.Snack: {
			ID:           "fallback/apple-peanut-butter",
			Name:         "Apple with Peanut Butter",
			Description:  "Sliced apple with peanut butter for dipping.",
			Ingredients:  []string{"1 apple", "2 tbsp peanut butter"},
			Instructions: []string{"Slice the apple and serve with peanut butter."},
			Dietary:      safe,
			Nutrition:    meal.NutritionEstimate{Calories: 280, ProteinGrams: 8, CarbsGrams: 32, FatGrams: 16},
			PrepMinutes:  3,
			CookMinutes:  1,
			Difficulty:   1,
		},
	}}
}

// MealFor returns a copy of the fallback meal for the given slot type,
// defaulting to the dinner entry for unknown types.
func (l *FallbackLibrary) MealFor(mealType meal.MealType) meal.Candidate {
	c, ok := l.byType[mealType]
	if !ok {
		c = l.byType[meal.Dinner]
	}
	return c.Clone()
}
