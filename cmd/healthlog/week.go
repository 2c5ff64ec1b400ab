// ABOUTME: CLI command rendering the 7-day rollup for a category.
// ABOUTME: Weekly buckets come from the aggregator's chart series.
package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/aggregate"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var weekDate string

const barWidth = 30

var weekCmd = &cobra.Command{
	Use:     "week <category>",
	Aliases: []string{"w"},
	Short:   "Show the 7-day rollup",
	Long: `Show a category's last seven days as a bar chart, oldest day first.

Days with no data are dropped from the chart. For sleep, the configured
nightly goal (sleep_goal_hours, default 8) is printed above the chart.

EXAMPLES:

  healthlog week sleep
  healthlog week water --date 2024-01-07`,
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

		base, err := resolveDate(weekDate)
		if err != nil {
			return err
		}

		if category == models.CategorySleep {
			return renderSleepWeek(cmd, base)
		}
		if err := eng.Refresh(cmd.Context(), category, base, 7); err != nil {
			return fmt.Errorf("failed to load %s entries: %w", category, err)
		}
		return renderCountableWeek(category, base)
	},
}

func renderSleepWeek(cmd *cobra.Command, base time.Time) error {
	buckets := aggregate.WeeklySleep(cmd.Context(), eng, base)
	series := aggregate.SleepChartSeries(buckets)

	fmt.Printf("Sleep, week ending %s\n", models.DateKey(base))
	color.New(color.Faint).Printf("Goal: %d hrs/night\n\n", cfg.GetSleepGoalHours())

	if len(series) == 0 {
		fmt.Println("No data in the last 7 days.")
		return nil
	}

	var max float64
	for _, r := range series {
		if r.Duration() > max {
			max = r.Duration()
		}
	}
	for _, r := range series {
		fmt.Printf("  %s %s %s %.1f hrs\n",
			r.Date.Format("Mon"),
			color.New(color.Faint).Sprint(models.DateKey(r.Date)),
			padRight(bar(r.Duration(), max), barWidth),
			r.Duration())
	}
	return nil
}

func renderCountableWeek(category models.Category, base time.Time) error {
	buckets := aggregate.WeeklyCountables(eng, category, base)
	series := aggregate.CountableChartSeries(buckets)

	name := string(category)
	fmt.Printf("%s, week ending %s\n\n", strings.ToUpper(name[:1])+name[1:], models.DateKey(base))

	if len(series) == 0 {
		fmt.Println("No data in the last 7 days.")
		return nil
	}

	var max float64
	for _, r := range series {
		if float64(r.Count()) > max {
			max = float64(r.Count())
		}
	}
	for _, r := range series {
		fmt.Printf("  %s %s %s %d %s\n",
			r.Day().Format("Mon"),
			color.New(color.Faint).Sprint(models.DateKey(r.Day())),
			padRight(bar(float64(r.Count()), max), barWidth),
			r.Count(), category.Unit())
	}
	return nil
}

// bar renders a proportional bar for a value against the week's maximum.
func bar(value, max float64) string {
	if max <= 0 {
		return ""
	}
	n := int(value / max * barWidth)
	if n < 1 && value > 0 {
		n = 1
	}
	return strings.Repeat("█", n)
}

func init() {
	weekCmd.Flags().StringVarP(&weekDate, "date", "d", "", "base date (YYYY-MM-DD), defaults to today")
	rootCmd.AddCommand(weekCmd)
}
