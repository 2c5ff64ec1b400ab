// ABOUTME: Tests for daily totals and weekly rollup series.
// ABOUTME: Drives the aggregator through an in-memory engine.
package aggregate

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

func setupEngine(t *testing.T) *engine.Engine {
	t.Helper()
	return engine.New(store.NewMemoryStore(), engine.WithLogger(log.New(io.Discard)))
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.Local)
}

func TestDailyTotalSameDayOnly(t *testing.T) {
	records := []models.Countable{
		models.NewWaterRecord(day(1).Add(-10*time.Hour), 8),
		models.NewWaterRecord(day(1).Add(8*time.Hour), 8),
		models.NewWaterRecord(day(1), 4),
		models.NewWaterRecord(day(2), 16),
	}

	if got := DailyTotal(records, day(1)); got != 20 {
		t.Errorf("DailyTotal = %d, want 20", got)
	}
	if got := DailyTotal(records, day(3)); got != 0 {
		t.Errorf("DailyTotal on empty day = %d, want 0", got)
	}
}

func TestDailyTotalGenericOverConcreteSlices(t *testing.T) {
	workouts := []*models.WorkoutRecord{
		models.NewWorkoutRecord(day(1), "run", 30),
		models.NewWorkoutRecord(day(1), "lift", 20),
	}

	if got := DailyTotal(workouts, day(1)); got != 50 {
		t.Errorf("DailyTotal = %d, want 50", got)
	}
}

func TestWeeklyCountablesShape(t *testing.T) {
	eng := setupEngine(t)
	base := day(10)

	// Data on the base day and three days back.
	if err := eng.Create(models.CategoryWater, models.NewWaterRecord(day(10), 8)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := eng.Create(models.CategoryWater, models.NewWaterRecord(day(7), 12)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	buckets := WeeklyCountables(eng, models.CategoryWater, base)

	// Bucket 0 is the base day, bucket 3 is three days back; every other
	// day holds its single zero placeholder.
	if len(buckets[0]) != 1 || buckets[0][0].Count() != 8 {
		t.Error("bucket 0 does not hold the base day's record")
	}
	if len(buckets[3]) != 1 || buckets[3][0].Count() != 12 {
		t.Error("bucket 3 does not hold the record from three days back")
	}
	for _, i := range []int{1, 2, 4, 5, 6} {
		if len(buckets[i]) != 1 || buckets[i][0].Count() != 0 {
			t.Errorf("bucket %d: want exactly one zero placeholder", i)
		}
	}
}

func TestCountableChartSeriesChronologicalAndNonzero(t *testing.T) {
	eng := setupEngine(t)
	base := day(10)

	if err := eng.Create(models.CategoryWater, models.NewWaterRecord(day(10), 8)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := eng.Create(models.CategoryWater, models.NewWaterRecord(day(7), 12)); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	series := CountableChartSeries(WeeklyCountables(eng, models.CategoryWater, base))

	if len(series) != 2 {
		t.Fatalf("got %d chart points, want 2 (placeholders filtered)", len(series))
	}
	// Oldest first.
	if series[0].Count() != 12 || series[1].Count() != 8 {
		t.Errorf("series = [%d %d], want chronological [12 8]", series[0].Count(), series[1].Count())
	}
}

func TestEmptyWeekYieldsEmptyChart(t *testing.T) {
	eng := setupEngine(t)
	ctx := context.Background()
	base := day(10)

	for _, category := range models.CountableCategories {
		buckets := WeeklyCountables(eng, category, base)
		for i, b := range buckets {
			if len(b) != 1 {
				t.Errorf("%s bucket %d: got %d records, want 1 placeholder", category, i, len(b))
			}
		}
		if series := CountableChartSeries(buckets); len(series) != 0 {
			t.Errorf("%s: got %d chart points on empty data, want 0", category, len(series))
		}
	}

	sleepBuckets := WeeklySleep(ctx, eng, base)
	for i, b := range sleepBuckets {
		if len(b) != 1 {
			t.Fatalf("sleep bucket %d: got %d records, want 1 placeholder", i, len(b))
		}
		if b[0].Duration() != 0 {
			t.Errorf("sleep bucket %d: placeholder duration = %v, want 0", i, b[0].Duration())
		}
	}
	if series := SleepChartSeries(sleepBuckets); len(series) != 0 {
		t.Errorf("sleep: got %d chart points on empty data, want 0", len(series))
	}
}

func TestSleepChartSeries(t *testing.T) {
	eng := setupEngine(t)
	ctx := context.Background()
	base := day(10)

	// An 8-hour overnight session two days back.
	date := day(8)
	rec := models.NewSleepRecord(date,
		time.Date(2024, 1, 8, 23, 0, 0, 0, time.Local),
		time.Date(2024, 1, 8, 7, 0, 0, 0, time.Local))
	if err := eng.CreateSleep(ctx, rec); err != nil {
		t.Fatalf("CreateSleep failed: %v", err)
	}

	series := SleepChartSeries(WeeklySleep(ctx, eng, base))
	if len(series) != 1 {
		t.Fatalf("got %d chart points, want 1", len(series))
	}
	if series[0].Duration() != 8.0 {
		t.Errorf("Duration = %v, want 8.0", series[0].Duration())
	}
}
