// ABOUTME: MCP tool implementations for health records.
// ABOUTME: Exposes log/query/delete commands and daily/weekly summaries.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthlog/internal/aggregate"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// log_sleep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_sleep",
		Description: "Record a sleep session with start and end times",
	}, s.handleLogSleep)

	// log_entry
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_entry",
		Description: "Record a workout (minutes), water (ounces), or diet (calories) entry",
	}, s.handleLogEntry)

	// list_entries
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "list_entries",
		Description: "List entries of a category for a calendar date",
	}, s.handleListEntries)

	// delete_sleep
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_sleep",
		Description: "Delete a sleep entry by ID and date",
	}, s.handleDeleteSleep)

	// daily_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_summary",
		Description: "Get per-category totals for a calendar date",
	}, s.handleDailySummary)

	// weekly_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "weekly_summary",
		Description: "Get the 7-day rollup for a category ending at a date",
	}, s.handleWeeklySummary)
}

// Tool input/output types

type logSleepInput struct {
	Date  string `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
	Start string `json:"start" jsonschema:"Start time (ISO 8601 or YYYY-MM-DD HH:MM)"`
	End   string `json:"end" jsonschema:"End time (ISO 8601 or YYYY-MM-DD HH:MM)"`
}

type sleepOutput struct {
	ID            string  `json:"id"`
	Date          string  `json:"date"`
	DurationHours float64 `json:"duration_hours"`
	Message       string  `json:"message"`
}

type logEntryInput struct {
	Category string `json:"category" jsonschema:"Category (workout, water, diet)"`
	Value    int    `json:"value" jsonschema:"Minutes for workout, ounces for water, calories for diet"`
	Date     string `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
	Activity string `json:"activity,omitempty" jsonschema:"Activity label (workout only)"`
	Meal     string `json:"meal,omitempty" jsonschema:"Meal type (breakfast, lunch, dinner, brunch, snack, fruit; diet only)"`
	Food     string `json:"food,omitempty" jsonschema:"Food label (diet only)"`
}

type entryOutput struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Value    int    `json:"value"`
	Message  string `json:"message"`
}

type listEntriesInput struct {
	Category string `json:"category" jsonschema:"Category (sleep, workout, water, diet)"`
	Date     string `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
}

type deleteSleepInput struct {
	ID   string `json:"id" jsonschema:"Sleep record UUID"`
	Date string `json:"date" jsonschema:"Calendar date (YYYY-MM-DD) of the record's bucket"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type dateInput struct {
	Date string `json:"date,omitempty" jsonschema:"Calendar date (YYYY-MM-DD), defaults to today"`
}

type dailySummaryOutput struct {
	Date           string  `json:"date"`
	SleepHours     float64 `json:"sleep_hours"`
	WorkoutMinutes int     `json:"workout_minutes"`
	WaterOunces    int     `json:"water_ounces"`
	DietCalories   int     `json:"diet_calories"`
}

type weeklySummaryInput struct {
	Category string `json:"category" jsonschema:"Category (sleep, workout, water, diet)"`
	Date     string `json:"date,omitempty" jsonschema:"Base date (YYYY-MM-DD), defaults to today"`
}

type weeklyPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// parseDate parses a YYYY-MM-DD date, defaulting to now when empty.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", s)
}

// parseTimestamp parses ISO 8601 or a friendlier local form.
func parseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}

// Tool handlers

func (s *Server) handleLogSleep(ctx context.Context, req *mcp.CallToolRequest, input logSleepInput) (*mcp.CallToolResult, sleepOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, sleepOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}
	start, err := parseTimestamp(input.Start)
	if err != nil {
		return nil, sleepOutput{}, fmt.Errorf("invalid start time: %s", input.Start)
	}
	end, err := parseTimestamp(input.End)
	if err != nil {
		return nil, sleepOutput{}, fmt.Errorf("invalid end time: %s", input.End)
	}

	rec := models.NewSleepRecord(date, start, end)
	if err := s.engine.CreateSleep(ctx, rec); err != nil {
		return nil, sleepOutput{}, fmt.Errorf("failed to log sleep: %w", err)
	}

	return nil, sleepOutput{
		ID:            rec.ID.String()[:8],
		Date:          models.DateKey(rec.Date),
		DurationHours: rec.Duration(),
		Message:       fmt.Sprintf("Logged %.1f hrs sleep on %s (ID: %s)", rec.Duration(), models.DateKey(rec.Date), rec.ID.String()[:8]),
	}, nil
}

func (s *Server) handleLogEntry(ctx context.Context, req *mcp.CallToolRequest, input logEntryInput) (*mcp.CallToolResult, entryOutput, error) {
	category := models.Category(input.Category)
	if !category.IsCountable() {
		return nil, entryOutput{}, fmt.Errorf("unknown countable category: %s (want workout, water, or diet)", input.Category)
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, entryOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	var rec models.CountableRecord
	switch category {
	case models.CategoryWorkout:
		rec = models.NewWorkoutRecord(date, input.Activity, input.Value)
	case models.CategoryWater:
		rec = models.NewWaterRecord(date, input.Value)
	case models.CategoryDiet:
		meal := models.MealSnack
		if input.Meal != "" {
			if !models.IsValidMealType(input.Meal) {
				return nil, entryOutput{}, fmt.Errorf("unknown meal type: %s", input.Meal)
			}
			meal = models.MealType(input.Meal)
		}
		rec = models.NewDietRecord(date, meal, input.Food, input.Value)
	}

	if err := s.engine.Create(category, rec); err != nil {
		return nil, entryOutput{}, fmt.Errorf("failed to log entry: %w", err)
	}

	return nil, entryOutput{
		ID:       rec.RecordID().String()[:8],
		Category: input.Category,
		Value:    input.Value,
		Message:  fmt.Sprintf("Logged %d %s of %s on %s (ID: %s)", input.Value, category.Unit(), input.Category, models.DateKey(date), rec.RecordID().String()[:8]),
	}, nil
}

func (s *Server) handleListEntries(ctx context.Context, req *mcp.CallToolRequest, input listEntriesInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidCategory(input.Category) {
		return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
	}

	date, err := parseDate(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date: %s", input.Date)
	}

	category := models.Category(input.Category)
	if category == models.CategorySleep {
		records, err := s.engine.FetchForDateErr(ctx, date)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to list sleep entries: %w", err)
		}
		if len(records) == 0 {
			return nil, map[string]any{"message": "No entries found."}, nil
		}
		return nil, records, nil
	}

	if err := s.engine.Refresh(ctx, category, date, 1); err != nil {
		return nil, nil, fmt.Errorf("failed to list %s entries: %w", category, err)
	}
	records := s.engine.Query(category, date)
	if len(records) == 0 {
		return nil, map[string]any{"message": "No entries found."}, nil
	}
	return nil, records, nil
}

func (s *Server) handleDeleteSleep(ctx context.Context, req *mcp.CallToolRequest, input deleteSleepInput) (*mcp.CallToolResult, simpleOutput, error) {
	id, err := uuid.Parse(input.ID)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid id: %s", input.ID)
	}
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	if err := s.engine.DeleteSleep(ctx, id, date); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete sleep entry: %w", err)
	}
	s.engine.Cache().RemoveSleep(id)

	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted sleep entry %s", input.ID),
	}, nil
}

func (s *Server) handleDailySummary(ctx context.Context, req *mcp.CallToolRequest, input dateInput) (*mcp.CallToolResult, dailySummaryOutput, error) {
	date, err := parseDate(input.Date)
	if err != nil {
		return nil, dailySummaryOutput{}, fmt.Errorf("invalid date: %s", input.Date)
	}

	for _, category := range models.CountableCategories {
		if err := s.engine.Refresh(ctx, category, date, 1); err != nil {
			return nil, dailySummaryOutput{}, fmt.Errorf("failed to load %s entries: %w", category, err)
		}
	}

	return nil, dailySummaryOutput{
		Date:           models.DateKey(date),
		SleepHours:     s.engine.TotalHours(ctx, date),
		WorkoutMinutes: s.engine.TotalForDate(models.CategoryWorkout, date),
		WaterOunces:    s.engine.TotalForDate(models.CategoryWater, date),
		DietCalories:   s.engine.TotalForDate(models.CategoryDiet, date),
	}, nil
}

func (s *Server) handleWeeklySummary(ctx context.Context, req *mcp.CallToolRequest, input weeklySummaryInput) (*mcp.CallToolResult, any, error) {
	if !models.IsValidCategory(input.Category) {
		return nil, nil, fmt.Errorf("unknown category: %s", input.Category)
	}

	base, err := parseDate(input.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date: %s", input.Date)
	}

	var points []weeklyPoint
	if models.Category(input.Category) == models.CategorySleep {
		buckets := aggregate.WeeklySleep(ctx, s.engine, base)
		for _, rec := range aggregate.SleepChartSeries(buckets) {
			points = append(points, weeklyPoint{
				Date:  models.DateKey(rec.Date),
				Value: rec.Duration(),
			})
		}
	} else {
		category := models.Category(input.Category)
		if err := s.engine.Refresh(ctx, category, base, 7); err != nil {
			return nil, nil, fmt.Errorf("failed to load %s entries: %w", category, err)
		}
		buckets := aggregate.WeeklyCountables(s.engine, category, base)
		for _, rec := range aggregate.CountableChartSeries(buckets) {
			points = append(points, weeklyPoint{
				Date:  models.DateKey(rec.Day()),
				Value: float64(rec.Count()),
			})
		}
	}

	if len(points) == 0 {
		return nil, map[string]any{"message": "No data in the last 7 days."}, nil
	}
	return nil, points, nil
}
