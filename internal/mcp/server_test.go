// ABOUTME: Tests for MCP tool handlers over an in-memory engine.
// ABOUTME: Handlers are invoked directly, bypassing the stdio transport.
package mcp

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/engine"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/store"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	eng := engine.New(store.NewMemoryStore(), engine.WithLogger(log.New(io.Discard)))
	s, err := NewServer(eng)
	if err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
	return s
}

func TestHandleLogSleep(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleLogSleep(ctx, nil, logSleepInput{
		Date:  "2024-01-01",
		Start: "2024-01-01 23:00",
		End:   "2024-01-02 07:00",
	})
	if err != nil {
		t.Fatalf("handleLogSleep failed: %v", err)
	}
	if out.DurationHours != 8.0 {
		t.Errorf("DurationHours = %v, want 8.0", out.DurationHours)
	}
	if out.Date != "2024-01-01" {
		t.Errorf("Date = %q, want 2024-01-01", out.Date)
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	records, err := s.engine.FetchForDateErr(ctx, date)
	if err != nil {
		t.Fatalf("FetchForDateErr failed: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("got %d persisted records, want 1", len(records))
	}
}

func TestHandleLogSleepRejectsBadInput(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleLogSleep(ctx, nil, logSleepInput{Start: "whenever", End: "07:00"}); err == nil {
		t.Error("accepted invalid start time")
	}
	if _, _, err := s.handleLogSleep(ctx, nil, logSleepInput{Date: "01/01/2024", Start: "2024-01-01 23:00", End: "2024-01-02 07:00"}); err == nil {
		t.Error("accepted invalid date")
	}
}

func TestHandleLogEntry(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, out, err := s.handleLogEntry(ctx, nil, logEntryInput{
		Category: "water",
		Value:    8,
		Date:     "2024-01-01",
	})
	if err != nil {
		t.Fatalf("handleLogEntry failed: %v", err)
	}
	if out.Value != 8 || out.Category != "water" {
		t.Errorf("output = %+v", out)
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if got := s.engine.TotalForDate(models.CategoryWater, date); got != 8 {
		t.Errorf("TotalForDate = %d, want 8", got)
	}
}

func TestHandleLogEntryRejectsSleep(t *testing.T) {
	s := setupServer(t)

	_, _, err := s.handleLogEntry(context.Background(), nil, logEntryInput{Category: "sleep", Value: 8})
	if err == nil {
		t.Fatal("accepted sleep as a countable category")
	}
}

func TestHandleLogEntryDietMeal(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	_, _, err := s.handleLogEntry(ctx, nil, logEntryInput{
		Category: "diet",
		Value:    550,
		Date:     "2024-01-01",
		Meal:     "lunch",
		Food:     "burrito",
	})
	if err != nil {
		t.Fatalf("handleLogEntry failed: %v", err)
	}

	if _, _, err := s.handleLogEntry(ctx, nil, logEntryInput{Category: "diet", Value: 100, Meal: "supper"}); err == nil {
		t.Error("accepted unknown meal type")
	}
}

func TestHandleListEntries(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleLogEntry(ctx, nil, logEntryInput{Category: "workout", Value: 30, Date: "2024-01-01", Activity: "running"}); err != nil {
		t.Fatalf("handleLogEntry failed: %v", err)
	}

	_, out, err := s.handleListEntries(ctx, nil, listEntriesInput{Category: "workout", Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("handleListEntries failed: %v", err)
	}
	records, ok := out.([]models.CountableRecord)
	if !ok {
		t.Fatalf("output is %T, want []models.CountableRecord", out)
	}
	if len(records) != 1 {
		t.Errorf("got %d records, want 1", len(records))
	}
}

func TestHandleDeleteSleep(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleLogSleep(ctx, nil, logSleepInput{
		Date:  "2024-01-01",
		Start: "2024-01-01 23:00",
		End:   "2024-01-02 07:00",
	}); err != nil {
		t.Fatalf("handleLogSleep failed: %v", err)
	}

	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	records, err := s.engine.FetchForDateErr(ctx, date)
	if err != nil || len(records) != 1 {
		t.Fatalf("setup fetch failed: %v (%d records)", err, len(records))
	}

	_, _, err = s.handleDeleteSleep(ctx, nil, deleteSleepInput{
		ID:   records[0].ID.String(),
		Date: "2024-01-01",
	})
	if err != nil {
		t.Fatalf("handleDeleteSleep failed: %v", err)
	}

	remaining, err := s.engine.FetchForDateErr(ctx, date)
	if err != nil {
		t.Fatalf("FetchForDateErr failed: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("got %d records after delete, want 0", len(remaining))
	}
}

func TestHandleDailySummary(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleLogSleep(ctx, nil, logSleepInput{Date: "2024-01-01", Start: "2024-01-01 23:00", End: "2024-01-02 07:00"}); err != nil {
		t.Fatalf("handleLogSleep failed: %v", err)
	}
	for _, oz := range []int{8, 8, 4} {
		if _, _, err := s.handleLogEntry(ctx, nil, logEntryInput{Category: "water", Value: oz, Date: "2024-01-01"}); err != nil {
			t.Fatalf("handleLogEntry failed: %v", err)
		}
	}

	_, out, err := s.handleDailySummary(ctx, nil, dateInput{Date: "2024-01-01"})
	if err != nil {
		t.Fatalf("handleDailySummary failed: %v", err)
	}
	if out.SleepHours != 8.0 {
		t.Errorf("SleepHours = %v, want 8.0", out.SleepHours)
	}
	if out.WaterOunces != 20 {
		t.Errorf("WaterOunces = %d, want 20", out.WaterOunces)
	}
	if out.WorkoutMinutes != 0 || out.DietCalories != 0 {
		t.Errorf("expected zero workout/diet totals, got %+v", out)
	}
}

func TestHandleWeeklySummaryEmpty(t *testing.T) {
	s := setupServer(t)

	_, out, err := s.handleWeeklySummary(context.Background(), nil, weeklySummaryInput{Category: "water", Date: "2024-01-07"})
	if err != nil {
		t.Fatalf("handleWeeklySummary failed: %v", err)
	}
	if _, ok := out.(map[string]any); !ok {
		t.Errorf("expected empty-data message, got %T", out)
	}
}

func TestHandleWeeklySummarySleep(t *testing.T) {
	s := setupServer(t)
	ctx := context.Background()

	if _, _, err := s.handleLogSleep(ctx, nil, logSleepInput{Date: "2024-01-05", Start: "2024-01-05 23:00", End: "2024-01-06 07:00"}); err != nil {
		t.Fatalf("handleLogSleep failed: %v", err)
	}

	_, out, err := s.handleWeeklySummary(ctx, nil, weeklySummaryInput{Category: "sleep", Date: "2024-01-07"})
	if err != nil {
		t.Fatalf("handleWeeklySummary failed: %v", err)
	}
	points, ok := out.([]weeklyPoint)
	if !ok {
		t.Fatalf("output is %T, want []weeklyPoint", out)
	}
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0].Value != 8.0 {
		t.Errorf("Value = %v, want 8.0", points[0].Value)
	}
	if points[0].Date != "2024-01-05" {
		t.Errorf("Date = %q, want 2024-01-05", points[0].Date)
	}
}
