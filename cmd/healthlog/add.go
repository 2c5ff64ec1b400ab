// ABOUTME: CLI commands for adding health records.
// ABOUTME: One subcommand per category: sleep, workout, water, meal.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/spf13/cobra"
)

var (
	addDate     string
	sleepStart  string
	sleepEnd    string
	addActivity string
	addMeal     string
	addFood     string
)

var addCmd = &cobra.Command{
	Use:     "add",
	Aliases: []string{"a"},
	Short:   "Add a health record",
	Long: `Add a health record to one of the four categories.

All records are bucketed by calendar date. Use --date to log for a day
other than today.

EXAMPLES:

  healthlog add sleep --start 23:00 --end 07:00
  healthlog add sleep --start "2024-01-01 23:00" --end "2024-01-02 07:00"
  healthlog add workout 45 --activity swimming
  healthlog add water 12
  healthlog add meal 800 --meal dinner --food "pad thai"
  healthlog add water 8 --date 2024-01-01`,
}

var addSleepCmd = &cobra.Command{
	Use:   "sleep",
	Short: "Log a sleep session",
	Long: `Log a sleep session with start and end times.

An end time earlier than the start time on the same clock face is read
as an overnight session crossing midnight: 23:00 to 07:00 is 8 hours.

The entry is written to the remote store immediately, bucketed under the
session's date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := resolveDate(addDate)
		if err != nil {
			return err
		}
		if sleepStart == "" || sleepEnd == "" {
			return fmt.Errorf("both --start and --end are required")
		}
		start, err := parseClock(sleepStart, date)
		if err != nil {
			return fmt.Errorf("invalid start time: %s", sleepStart)
		}
		end, err := parseClock(sleepEnd, date)
		if err != nil {
			return fmt.Errorf("invalid end time: %s", sleepEnd)
		}

		rec := models.NewSleepRecord(date, start, end)
		if err := eng.CreateSleep(cmd.Context(), rec); err != nil {
			return fmt.Errorf("failed to add sleep record: %w", err)
		}

		color.Green("✓ Logged sleep")
		fmt.Printf("  %s %s  %.1f hrs\n",
			color.New(color.Faint).Sprint(rec.ID.String()[:8]),
			models.DateKey(rec.Date), rec.Duration())
		return nil
	},
}

var addWorkoutCmd = &cobra.Command{
	Use:   "workout <minutes>",
	Short: "Log workout minutes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes: %s", args[0])
		}
		date, err := resolveDate(addDate)
		if err != nil {
			return err
		}

		rec := models.NewWorkoutRecord(date, addActivity, minutes)
		return addCountable(models.CategoryWorkout, rec, fmt.Sprintf("%d mins", minutes))
	},
}

var addWaterCmd = &cobra.Command{
	Use:   "water <ounces>",
	Short: "Log water intake",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ounces, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ounces: %s", args[0])
		}
		date, err := resolveDate(addDate)
		if err != nil {
			return err
		}

		rec := models.NewWaterRecord(date, ounces)
		return addCountable(models.CategoryWater, rec, fmt.Sprintf("%d oz", ounces))
	},
}

var addMealCmd = &cobra.Command{
	Use:     "meal <calories>",
	Aliases: []string{"diet"},
	Short:   "Log a meal's calories",
	Long: `Log a meal's calories.

Meal types: breakfast, lunch, dinner, brunch, snack, fruit.
Defaults to snack when --meal is not given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		calories, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid calories: %s", args[0])
		}
		date, err := resolveDate(addDate)
		if err != nil {
			return err
		}

		meal := models.MealSnack
		if addMeal != "" {
			if !models.IsValidMealType(addMeal) {
				return fmt.Errorf("unknown meal type: %s\nValid types: breakfast, lunch, dinner, brunch, snack, fruit", addMeal)
			}
			meal = models.MealType(addMeal)
		}

		rec := models.NewDietRecord(date, meal, addFood, calories)
		return addCountable(models.CategoryDiet, rec, fmt.Sprintf("%d calories", calories))
	},
}

// addCountable runs the optimistic insert and prints confirmation. The
// remote persist continues in the background and settles on exit.
func addCountable(category models.Category, rec models.CountableRecord, display string) error {
	if err := eng.Create(category, rec); err != nil {
		return fmt.Errorf("failed to add %s record: %w", category, err)
	}

	color.Green("✓ Logged %s", category)
	fmt.Printf("  %s %s  %s\n",
		color.New(color.Faint).Sprint(rec.RecordID().String()[:8]),
		models.DateKey(rec.Day()), display)
	return nil
}

// resolveDate parses --date, defaulting to today.
func resolveDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date (want YYYY-MM-DD): %s", s)
	}
	return t, nil
}

// parseClock parses a timestamp that may be a bare clock time, in which
// case it is anchored to the given date.
func parseClock(s string, date time.Time) (time.Time, error) {
	if t, err := time.ParseInLocation("15:04", s, time.Local); err == nil {
		return time.Date(date.Year(), date.Month(), date.Day(),
			t.Hour(), t.Minute(), 0, 0, time.Local), nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}

func init() {
	addCmd.PersistentFlags().StringVarP(&addDate, "date", "d", "", "calendar date (YYYY-MM-DD), defaults to today")
	addSleepCmd.Flags().StringVar(&sleepStart, "start", "", "start time (HH:MM or YYYY-MM-DD HH:MM)")
	addSleepCmd.Flags().StringVar(&sleepEnd, "end", "", "end time (HH:MM or YYYY-MM-DD HH:MM)")
	addWorkoutCmd.Flags().StringVarP(&addActivity, "activity", "a", "", "activity label (running, swimming, ...)")
	addMealCmd.Flags().StringVarP(&addMeal, "meal", "m", "", "meal type (defaults to snack)")
	addMealCmd.Flags().StringVarP(&addFood, "food", "f", "", "food label")

	addCmd.AddCommand(addSleepCmd)
	addCmd.AddCommand(addWorkoutCmd)
	addCmd.AddCommand(addWaterCmd)
	addCmd.AddCommand(addMealCmd)
	rootCmd.AddCommand(addCmd)
}
