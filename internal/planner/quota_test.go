package planner

import "testing"

func TestOptimalCulturalMeals(t *testing.T) {
	cases := []struct {
		name           string
		totalSlots     int
		culturalWeight float64
		want           int
	}{
		{"nine slots strong preference", 9, 0.8, 3},
		{"zero slots", 0, 0.8, 0},
		{"single day", 3, 0.5, 1},
		{"week of dinners", 7, 0.0, 2},
		{"week of dinners max weight", 7, 1.0, 3},
		{"two weeks clamped to bracket", 14, 1.0, 4},
		{"large plan clamps high", 28, 1.0, 6},
		{"large plan clamps low", 15, 0.0, 4},
		{"weight clamped above one", 9, 5.0, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := optimalCulturalMeals(tc.totalSlots, tc.culturalWeight)
			if got != tc.want {
				t.Errorf("optimalCulturalMeals(%d, %v) = %d, want %d", tc.totalSlots, tc.culturalWeight, got, tc.want)
			}
		})
	}
}

func TestOptimalCulturalMealsMonotonicInWeight(t *testing.T) {
	for slots := 1; slots <= 30; slots++ {
		prev := 0
		for _, w := range []float64{0.0, 0.25, 0.5, 0.75, 1.0} {
			got := optimalCulturalMeals(slots, w)
			if got < prev {
				t.Fatalf("quota decreased with weight: slots=%d weight=%v got=%d prev=%d", slots, w, got, prev)
			}
			prev = got
		}
	}
}
