// ABOUTME: CLI command showing per-category totals for one date.
// ABOUTME: Sleep hours come from the remote store; the rest from the cache.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var todayDate string

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show daily totals",
	Long: `Show the four category totals for a calendar date (today by default).

  Sleep    total hours across the date's sessions
  Workout  total exercise minutes
  Water    total ounces
  Meal     total calories

EXAMPLES:

  healthlog today
  healthlog today --date 2024-01-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(todayDate)
		if err != nil {
			return err
		}

		sleepHours := eng.TotalHours(cmd.Context(), date)
		for _, category := range models.CountableCategories {
			if err := eng.Refresh(cmd.Context(), category, date, 1); err != nil {
				return fmt.Errorf("failed to load %s entries: %w", category, err)
			}
		}

		fmt.Printf("Totals for %s\n\n", models.DateKey(date))
		color.New(color.FgMagenta).Printf("  Sleep    ")
		fmt.Printf("%.1f hrs\n", sleepHours)
		color.New(color.FgGreen).Printf("  Workout  ")
		fmt.Printf("%d mins\n", eng.TotalForDate(models.CategoryWorkout, date))
		color.New(color.FgBlue).Printf("  Water    ")
		fmt.Printf("%d oz\n", eng.TotalForDate(models.CategoryWater, date))
		color.New(color.FgYellow).Printf("  Meal     ")
		fmt.Printf("%d calories\n", eng.TotalForDate(models.CategoryDiet, date))

		return nil
	},
}

func init() {
	todayCmd.Flags().StringVarP(&todayDate, "date", "d", "", "calendar date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(todayCmd)
}
