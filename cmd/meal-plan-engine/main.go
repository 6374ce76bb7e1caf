package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/joho/godotenv"

	"meal-plan-engine/internal/app"
	"meal-plan-engine/internal/config"
	"meal-plan-engine/internal/logging"
	"meal-plan-engine/internal/meal"
	"meal-plan-engine/internal/metrics"
	"meal-plan-engine/internal/planner"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	log := logging.New(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT") == "json")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx := context.Background()
	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize application")
	}
	defer application.Close()

	switch os.Args[1] {
	case "plan":
		runPlan(ctx, application, os.Args[2:])
	case "warm-cache":
		runWarmCache(ctx, application, os.Args[2:])
	case "cache-stats":
		runCacheStats(ctx, application, os.Args[2:])
	case "maintain":
		evicted, dropped, err := application.Maintain(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("maintenance failed")
		}
		fmt.Printf("Evicted %d expired cache records, removed %d old metric rows.\n", evicted, dropped)
	case "history":
		runHistory(ctx, application, os.Args[2:])
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runPlan(ctx context.Context, application *app.App, args []string) {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	days := planCmd.Int("days", 7, "Number of days to plan")
	meals := planCmd.Int("meals", 3, "Meals per day (1-4)")
	cuisines := planCmd.String("cuisines", "", "Comma-separated cultural background cuisines")
	restrictions := planCmd.String("restrictions", "", "Comma-separated dietary restrictions")
	exclude := planCmd.String("exclude", "", "Comma-separated ingredients to exclude")
	available := planCmd.String("available", "", "Comma-separated ingredients already on hand")
	wCultural := planCmd.Float64("w-cultural", 0.5, "Cultural priority weight [0,1]")
	wHealth := planCmd.Float64("w-health", 0.5, "Health priority weight [0,1]")
	wCost := planCmd.Float64("w-cost", 0.5, "Cost priority weight [0,1]")
	wTime := planCmd.Float64("w-time", 0.5, "Time priority weight [0,1]")
	wVariety := planCmd.Float64("w-variety", 0.5, "Variety priority weight [0,1]")
	planCmd.Parse(args)

	prefs := make(map[string]float64)
	for _, c := range splitCSV(*cuisines) {
		prefs[c] = 1.0
	}
	req := &planner.Request{
		NumDays:     *days,
		MealsPerDay: *meals,
		Profile: meal.WeightProfile{
			CuisinePreferences: prefs,
			Priorities: meal.Weights{
				Cultural: *wCultural,
				Health:   *wHealth,
				Cost:     *wCost,
				Time:     *wTime,
				Variety:  *wVariety,
			},
		},
		DietaryRestrictions:  splitCSV(*restrictions),
		CulturalBackground:   splitCSV(*cuisines),
		AvailableIngredients: splitCSV(*available),
		ExcludeIngredients:   splitCSV(*exclude),
	}

	plan, id, err := application.GeneratePlan(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Plan generation failed: %v\n", err)
		os.Exit(1)
	}

	renderPlan(plan)
	if id != "" {
		fmt.Printf("\nPlan saved with id %s\n", id)
	}
}

func runWarmCache(ctx context.Context, application *app.App, args []string) {
	warmCmd := flag.NewFlagSet("warm-cache", flag.ExitOnError)
	cuisines := warmCmd.String("cuisines", "", "Comma-separated cuisines to pre-fetch")
	warmCmd.Parse(args)

	names := splitCSV(*cuisines)
	if len(names) == 0 {
		fmt.Fprintln(os.Stderr, "warm-cache requires -cuisines")
		os.Exit(1)
	}

	result := application.WarmCache(ctx, names)
	fmt.Printf("Warmed %d cuisines.\n", len(result.Succeeded))
	for _, name := range result.Failed {
		fmt.Printf("  failed: %s (%v)\n", name, result.Errors[name])
	}
}

func runCacheStats(ctx context.Context, application *app.App, args []string) {
	statsCmd := flag.NewFlagSet("cache-stats", flag.ExitOnError)
	days := statsCmd.Int("days", 7, "Days of usage history to include")
	statsCmd.Parse(args)

	stats, usage, err := application.CacheStats(ctx, *days)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load stats: %v\n", err)
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Cached cuisines", stats.Records},
		{"Hits", stats.Hits},
		{"Misses", stats.Misses},
		{"Errors", stats.Errors},
		{"Refreshes", stats.Refreshes},
		{"Evictions", stats.Evictions},
	})
	t.Render()

	if len(usage) > 0 {
		u := table.NewWriter()
		u.SetOutputMirror(os.Stdout)
		u.SetStyle(table.StyleLight)
		u.AppendHeader(table.Row{"Day", "Runs", "Hits", "Misses", "Synthesized", "Fallbacks", "Failures"})
		for _, d := range usage {
			u.AppendRow(table.Row{d.Day, d.Runs, d.CacheHits, d.CacheMisses, d.SynthesizedMeals, d.FallbackMeals, d.Failures})
		}
		u.Render()
	}

	sys := metrics.GetSysHealth("data")
	fmt.Printf("Process: %d goroutines, %d MB allocated, data dir %s\n", sys.Goroutines, sys.AllocMB, sys.DataDirSize)
}

func runHistory(ctx context.Context, application *app.App, args []string) {
	historyCmd := flag.NewFlagSet("history", flag.ExitOnError)
	limit := historyCmd.Int("limit", 10, "Number of recent plans to list")
	historyCmd.Parse(args)

	plans, err := application.RecentPlans(ctx, *limit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to list plans: %v\n", err)
		os.Exit(1)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Created", "Days", "Meals/Day", "Compliance %"})
	for _, p := range plans {
		t.AppendRow(table.Row{
			p.ID,
			p.CreatedAt.Format("2006-01-02 15:04"),
			p.Request.NumDays,
			p.Request.MealsPerDay,
			fmt.Sprintf("%.0f", p.Plan.Summary.CompliancePercentage),
		})
	}
	t.Render()
}

func renderPlan(plan *planner.Plan) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Day", "Meal", "Title", "Cook (min)", "Source", "Warnings"})

	dayKeys := make([]string, 0, len(plan.Days))
	for k := range plan.Days {
		dayKeys = append(dayKeys, k)
	}
	sort.Slice(dayKeys, func(i, j int) bool {
		var a, b int
		fmt.Sscanf(dayKeys[i], "day_%d", &a)
		fmt.Sscanf(dayKeys[j], "day_%d", &b)
		return a < b
	})

	mealOrder := []meal.MealType{meal.Breakfast, meal.Lunch, meal.Dinner, meal.Snack}
	for _, day := range dayKeys {
		for _, mt := range mealOrder {
			m, ok := plan.Days[day][mt]
			if !ok {
				continue
			}
			source := m.CulturalSource
			if source == "" {
				source = "synthesized"
			}
			t.AppendRow(table.Row{day, mt, m.Title, m.CookTimeMinutes, source, strings.Join(m.DietaryWarnings, "; ")})
		}
	}
	t.Render()

	s := plan.Summary
	fmt.Printf("\nCultural meals: %d/%d (optimal), synthesized: %d, fallbacks: %d, compliance: %.0f%%\n",
		s.CulturalMealsUsed, s.OptimalCulturalMeals, s.SynthesizedMeals, s.FallbackMeals, s.CompliancePercentage)
	fmt.Printf("Hero ingredients: %s (est. weekly savings $%.2f)\n",
		strings.Join(s.HeroIngredients, ", "), s.EstimatedWeeklySavings)
	if s.HeroRationale != "" {
		fmt.Println(s.HeroRationale)
	}
}

func splitCSV(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func printUsage() {
	fmt.Println("Usage: meal-plan-engine <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan         Generate a meal plan")
	fmt.Println("  warm-cache   Pre-fetch cultural pools for a list of cuisines")
	fmt.Println("  cache-stats  Show cache counters and recent usage")
	fmt.Println("  maintain     Sweep expired cache records and trim old metrics")
	fmt.Println("  history      List recently generated plans")
}
