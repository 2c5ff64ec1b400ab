// ABOUTME: WorkoutRecord, WaterRecord, and DietRecord models.
// ABOUTME: All three share the Countable capability for generic aggregation.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Record is anything addressable by its generated identifier.
type Record interface {
	RecordID() uuid.UUID
}

// Countable is the structural capability shared by workout, water, and
// diet records: a calendar day plus an integer magnitude. Aggregation is
// generic over it.
type Countable interface {
	Day() time.Time
	Count() int
}

// CountableRecord is a Countable with identity, as held by the cache.
type CountableRecord interface {
	Record
	Countable
}

// WorkoutRecord represents exercise minutes on a calendar day.
// Equality is by ID.
type WorkoutRecord struct {
	ID       uuid.UUID `json:"id"`
	Date     time.Time `json:"date"`
	Activity string    `json:"type"`
	Data     int       `json:"data"`
}

// NewWorkoutRecord creates a WorkoutRecord with a generated UUID.
func NewWorkoutRecord(date time.Time, activity string, minutes int) *WorkoutRecord {
	return &WorkoutRecord{
		ID:       uuid.New(),
		Date:     date,
		Activity: activity,
		Data:     minutes,
	}
}

func (w *WorkoutRecord) RecordID() uuid.UUID { return w.ID }
func (w *WorkoutRecord) Day() time.Time      { return w.Date }
func (w *WorkoutRecord) Count() int          { return w.Data }

// WaterRecord represents water intake in ounces on a calendar day.
type WaterRecord struct {
	ID   uuid.UUID `json:"id"`
	Date time.Time `json:"date"`
	Data int       `json:"data"`
}

// NewWaterRecord creates a WaterRecord with a generated UUID.
func NewWaterRecord(date time.Time, ounces int) *WaterRecord {
	return &WaterRecord{
		ID:   uuid.New(),
		Date: date,
		Data: ounces,
	}
}

func (w *WaterRecord) RecordID() uuid.UUID { return w.ID }
func (w *WaterRecord) Day() time.Time      { return w.Date }
func (w *WaterRecord) Count() int          { return w.Data }

// DietRecord represents a meal's calories on a calendar day.
type DietRecord struct {
	ID   uuid.UUID `json:"id"`
	Date time.Time `json:"date"`
	Meal MealType  `json:"type"`
	Food string    `json:"food"`
	Data int       `json:"data"`
}

// NewDietRecord creates a DietRecord with a generated UUID.
func NewDietRecord(date time.Time, meal MealType, food string, calories int) *DietRecord {
	return &DietRecord{
		ID:   uuid.New(),
		Date: date,
		Meal: meal,
		Food: food,
		Data: calories,
	}
}

func (d *DietRecord) RecordID() uuid.UUID { return d.ID }
func (d *DietRecord) Day() time.Time      { return d.Date }
func (d *DietRecord) Count() int          { return d.Data }
