// ABOUTME: CLI command for listing a category's entries on a date.
// ABOUTME: Sleep is re-fetched from the remote store; others read the cache.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var logDate string

var logCmd = &cobra.Command{
	Use:     "log <category>",
	Aliases: []string{"ls", "l"},
	Short:   "List entries for a date",
	Long: `List a category's entries for a calendar date (today by default).

OUTPUT FORMAT:

  Each line shows: ID  DATE  VALUE  (DETAILS)

  The ID is an 8-character prefix you can use with the delete command.

Sleep entries are always fetched fresh from the remote store. Workout,
water, and meal entries are read from the session cache.

EXAMPLES:

  healthlog log sleep                   # Today's sleep entries
  healthlog log water --date 2024-01-01
  healthlog log meal`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if name == "meal" {
			name = string(models.CategoryDiet)
		}
		if !models.IsValidCategory(name) {
			return fmt.Errorf("unknown category: %s\nValid categories: sleep, workout, water, meal", args[0])
		}
		category := models.Category(name)

		date, err := resolveDate(logDate)
		if err != nil {
			return err
		}

		faint := color.New(color.Faint)

		if category == models.CategorySleep {
			records, err := eng.FetchForDateErr(cmd.Context(), date)
			if err != nil {
				return fmt.Errorf("failed to list sleep entries: %w", err)
			}
			if len(records) == 0 {
				fmt.Println("No entries found.")
				return nil
			}
			for _, r := range records {
				fmt.Printf("%s %s %s - %s  %.1f hrs\n",
					faint.Sprint(r.ID.String()[:8]),
					models.DateKey(r.Date),
					r.StartTime.Format("15:04"),
					r.EndTime.Format("15:04"),
					r.Duration())
			}
			return nil
		}

		if err := eng.Refresh(cmd.Context(), category, date, 1); err != nil {
			return fmt.Errorf("failed to list %s entries: %w", category, err)
		}
		records := eng.Query(category, date)
		if len(records) == 0 {
			fmt.Println("No entries found.")
			return nil
		}
		for _, r := range records {
			fmt.Printf("%s %s %s%s\n",
				faint.Sprint(r.RecordID().String()[:8]),
				models.DateKey(r.Day()),
				padRight(fmt.Sprintf("%d %s", r.Count(), category.Unit()), 14),
				countableDetails(r))
		}
		return nil
	},
}

// countableDetails renders the category-specific fields of a record.
func countableDetails(r models.CountableRecord) string {
	switch rec := r.(type) {
	case *models.WorkoutRecord:
		if rec.Activity != "" {
			return color.New(color.Faint).Sprintf(" (%s)", rec.Activity)
		}
	case *models.DietRecord:
		label := string(rec.Meal)
		if rec.Food != "" {
			label += ": " + truncate(rec.Food, 30)
		}
		return color.New(color.Faint).Sprintf(" (%s)", label)
	}
	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func init() {
	logCmd.Flags().StringVarP(&logDate, "date", "d", "", "calendar date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(logCmd)
}
