package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"mealpal/internal/app"
	"mealpal/internal/config"
	"mealpal/internal/weekplan"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	if !knownCommand(os.Args[1]) {
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer application.Close()

	if err := run(application, os.Args[1], os.Args[2:]); err != nil {
		application.Close()
		log.Fatalf("%s failed: %v", os.Args[1], err)
	}
}

var commands = []string{"show", "add", "remove", "reset", "status", "metrics", "metrics-cleanup"}

func knownCommand(name string) bool {
	for _, c := range commands {
		if c == name {
			return true
		}
	}
	return false
}

func run(application *app.App, command string, args []string) error {
	switch command {
	case "show":
		plan, err := application.Show()
		if err != nil {
			return err
		}
		printPlan(plan)
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("usage: mealpal add <day> <meal>")
		}
		plan, err := application.AddMeal(args[0], strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		printPlan(plan)
	case "remove":
		if len(args) != 2 {
			return fmt.Errorf("usage: mealpal remove <day> <index>")
		}
		index, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[1], err)
		}
		plan, err := application.RemoveMeal(args[0], index)
		if err != nil {
			return err
		}
		printPlan(plan)
	case "reset":
		plan, err := application.Reset()
		if err != nil {
			return err
		}
		printPlan(plan)
	case "status":
		h := application.Status()
		fmt.Printf("Data size:  %s\n", h.DataSize)
		fmt.Printf("Memory:     %d MB allocated, %d MB from OS\n", h.AllocMB, h.SysMB)
		fmt.Printf("GC cycles:  %d\n", h.NumGC)
		fmt.Printf("Goroutines: %d\n", h.Goroutines)
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Summarize the last N days")
		metricsCmd.Parse(args)

		summary, err := application.MetricsSummary(*days)
		if err != nil {
			return err
		}
		for _, s := range summary {
			fmt.Printf("%-5s calls=%d failures=%d avg=%.1fms\n", s.Operation, s.Count, s.Failures, s.AvgLatencyMS)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(args)

		affected, err := application.CleanupMetrics(*days)
		if err != nil {
			return err
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
	return nil
}

func printPlan(plan weekplan.MealPlan) {
	for _, day := range weekplan.Days(plan) {
		meals := plan[day]
		if len(meals) == 0 {
			fmt.Printf("%-10s -\n", day)
			continue
		}
		for i, meal := range meals {
			label := ""
			if i == 0 {
				label = day
			}
			fmt.Printf("%-10s %d. %s\n", label, i, meal)
		}
	}
}

func printUsage() {
	fmt.Println("Usage: mealpal <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  show                  Print the weekly meal plan")
	fmt.Println("  add <day> <meal>      Append a meal to a day")
	fmt.Println("  remove <day> <index>  Remove a meal by its position")
	fmt.Println("  reset                 Clear every day, keeping the days")
	fmt.Println("  status                Print process and data size information")
	fmt.Println("  metrics [-days N]     Summarize store operations (MEALPAL_METRICS=true)")
	fmt.Println("  metrics-cleanup       Remove old metric records")
}
