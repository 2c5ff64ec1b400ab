// ABOUTME: Tests for record types, duration derivation, and day bucketing.
// ABOUTME: Covers overnight wraparound and the countable capability.
package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestSleepDurationSameDay(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	start := time.Date(2024, 1, 1, 22, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 1, 23, 30, 0, 0, time.Local)

	rec := NewSleepRecord(date, start, end)
	if got := rec.Duration(); got != 1.5 {
		t.Errorf("Duration = %v, want 1.5", got)
	}
}

func TestSleepDurationOvernightWraparound(t *testing.T) {
	// 23:00 to 07:00 on the same clock face crosses midnight: 8 hours.
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	start := time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local)
	end := time.Date(2024, 1, 1, 7, 0, 0, 0, time.Local)

	rec := NewSleepRecord(date, start, end)
	if got := rec.Duration(); got != 8.0 {
		t.Errorf("Duration = %v, want 8.0", got)
	}
}

func TestSleepDurationNeverNegative(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	cases := []struct {
		name       string
		start, end time.Time
	}{
		{"zero interval", date, date},
		{"end before start", date.Add(10 * time.Hour), date.Add(2 * time.Hour)},
		{"end after start", date.Add(2 * time.Hour), date.Add(10 * time.Hour)},
		{"one minute back", date.Add(time.Hour), date.Add(59 * time.Minute)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := NewSleepRecord(date, tc.start, tc.end)
			if got := rec.Duration(); got < 0 {
				t.Errorf("Duration = %v, want >= 0", got)
			}
		})
	}
}

func TestDateKey(t *testing.T) {
	d := time.Date(2024, 3, 7, 18, 45, 0, 0, time.Local)
	if got := DateKey(d); got != "2024-03-07" {
		t.Errorf("DateKey = %q, want 2024-03-07", got)
	}
}

func TestSameDayIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2024, 1, 1, 6, 0, 0, 0, time.Local)
	night := time.Date(2024, 1, 1, 23, 59, 0, 0, time.Local)
	nextDay := time.Date(2024, 1, 2, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, night) {
		t.Error("expected same calendar day for morning and night")
	}
	if SameDay(night, nextDay) {
		t.Error("expected different calendar days across midnight")
	}
}

func TestCountableCapability(t *testing.T) {
	date := time.Date(2024, 1, 1, 12, 0, 0, 0, time.Local)

	records := []CountableRecord{
		NewWorkoutRecord(date, "running", 30),
		NewWaterRecord(date, 8),
		NewDietRecord(date, MealLunch, "salad", 400),
	}

	wantCounts := []int{30, 8, 400}
	for i, r := range records {
		if r.Count() != wantCounts[i] {
			t.Errorf("record %d: Count = %d, want %d", i, r.Count(), wantCounts[i])
		}
		if !SameDay(r.Day(), date) {
			t.Errorf("record %d: Day not on expected calendar day", i)
		}
		if r.RecordID().String() == "" {
			t.Errorf("record %d: missing generated ID", i)
		}
	}
}

func TestIsValidCategory(t *testing.T) {
	for _, c := range AllCategories {
		if !IsValidCategory(string(c)) {
			t.Errorf("IsValidCategory(%q) = false, want true", c)
		}
	}
	if IsValidCategory("steps") {
		t.Error("IsValidCategory(steps) = true, want false")
	}
}

func TestIsCountable(t *testing.T) {
	if CategorySleep.IsCountable() {
		t.Error("sleep should not be countable")
	}
	for _, c := range CountableCategories {
		if !c.IsCountable() {
			t.Errorf("%s should be countable", c)
		}
	}
}

func TestIsValidMealType(t *testing.T) {
	for _, mt := range AllMealTypes {
		if !IsValidMealType(string(mt)) {
			t.Errorf("IsValidMealType(%q) = false, want true", mt)
		}
	}
	if IsValidMealType("supper") {
		t.Error("IsValidMealType(supper) = true, want false")
	}
}

func TestSleepRecordJSONShape(t *testing.T) {
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rec := NewSleepRecord(date, date.Add(-time.Hour), date.Add(7*time.Hour))

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	for _, field := range []string{"id", "date", "startTime", "endTime"} {
		if _, ok := doc[field]; !ok {
			t.Errorf("missing wire field %q", field)
		}
	}
	// Duration is derived, never persisted.
	if _, ok := doc["duration"]; ok {
		t.Error("duration must not be persisted")
	}
}

func TestDietRecordJSONShape(t *testing.T) {
	rec := NewDietRecord(time.Now(), MealDinner, "pad thai", 800)

	data, err := json.Marshal(rec)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if doc["type"] != "dinner" {
		t.Errorf("type = %v, want dinner", doc["type"])
	}
	if doc["food"] != "pad thai" {
		t.Errorf("food = %v, want pad thai", doc["food"])
	}
	if doc["data"] != float64(800) {
		t.Errorf("data = %v, want 800", doc["data"])
	}
}
