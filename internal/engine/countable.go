// ABOUTME: Optimistic-local operations for workout, water, and diet records.
// ABOUTME: Inserts hit the cache first; remote persistence is fire-and-forget.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/store"
)

// Create appends the record to the cache immediately, then persists it to
// the remote store in the background. A persistence failure is logged and
// does not roll back the insert: the cache and the store may diverge
// until the next session (eventually consistent, session-durable).
func (e *Engine) Create(category models.Category, rec models.CountableRecord) error {
	if !category.IsCountable() {
		return fmt.Errorf("category %s does not hold countable records", category)
	}

	e.cache.Append(category, rec)

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.persist(category, rec)
	}()
	return nil
}

// persist writes one countable record's document. Failures are logged,
// never surfaced.
func (e *Engine) persist(category models.Category, rec models.CountableRecord) {
	doc, err := marshalDoc(rec)
	if err != nil {
		e.logger.Error("encode record failed", "category", category, "id", rec.RecordID(),
			"err", store.NewError(store.KindSerialization, "encode", err))
		return
	}

	dateKey := models.DateKey(rec.Day())
	// Detached from the caller's context: the optimistic insert has
	// already returned.
	if err := e.store.Put(context.Background(), category, dateKey, rec.RecordID().String(), doc); err != nil {
		e.logger.Error("persist record failed", "category", category, "id", rec.RecordID(), "err", err)
	}
}

// Refresh merges remote documents into the cache for a countable
// category, covering the date buckets 0..days-1 days before base. The
// merge is a single atomic cache mutation deduplicating by record ID, so
// records inserted while the fetch was in flight are never clobbered.
// Invalid documents are logged and skipped. Call at session start to
// warm an empty cache.
func (e *Engine) Refresh(ctx context.Context, category models.Category, base time.Time, days int) error {
	if !category.IsCountable() {
		return fmt.Errorf("category %s does not hold countable records", category)
	}

	var fetched []models.CountableRecord
	for i := 0; i < days; i++ {
		dateKey := models.DateKey(models.DaysBefore(base, i))
		docs, err := e.store.ListUnder(ctx, category, dateKey)
		if err != nil {
			return fmt.Errorf("refresh %s %s: %w", category, dateKey, err)
		}
		for id, doc := range docs {
			rec, err := decodeCountable(category, doc)
			if err != nil {
				e.logger.Warn("skipping invalid document", "category", category, "id", id, "date", dateKey, "err", store.NewError(store.KindSerialization, "decode", err))
				continue
			}
			fetched = append(fetched, rec)
		}
	}

	e.cache.Merge(category, fetched)
	return nil
}

// decodeCountable decodes a remote document into the category's concrete
// record type.
func decodeCountable(category models.Category, doc []byte) (models.CountableRecord, error) {
	switch category {
	case models.CategoryWorkout:
		rec, err := unmarshalDoc[models.WorkoutRecord](doc)
		if err != nil {
			return nil, err
		}
		return rec, nil
	case models.CategoryWater:
		rec, err := unmarshalDoc[models.WaterRecord](doc)
		if err != nil {
			return nil, err
		}
		return rec, nil
	default:
		rec, err := unmarshalDoc[models.DietRecord](doc)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// Query returns the cached records of a category on the same calendar day
// as date. Exact-day match, not a time window.
func (e *Engine) Query(category models.Category, date time.Time) []models.CountableRecord {
	return e.cache.ListForDay(category, date)
}

// QueryWithDefault is Query, except an empty result yields exactly one
// zero-valued placeholder for display. The placeholder is never inserted
// into the cache, unlike the sleep default.
func (e *Engine) QueryWithDefault(category models.Category, date time.Time) []models.CountableRecord {
	records := e.Query(category, date)
	if len(records) == 0 {
		return []models.CountableRecord{defaultCountable(category, date)}
	}
	return records
}

// TotalForDate sums the magnitudes of a category's cached records on the
// same calendar day as date.
func (e *Engine) TotalForDate(category models.Category, date time.Time) int {
	var total int
	for _, rec := range e.Query(category, date) {
		total += rec.Count()
	}
	return total
}

// defaultCountable synthesizes the display placeholder for a date with no
// data: zero magnitude, empty category fields.
func defaultCountable(category models.Category, date time.Time) models.CountableRecord {
	switch category {
	case models.CategoryWorkout:
		return models.NewWorkoutRecord(date, "", 0)
	case models.CategoryWater:
		return models.NewWaterRecord(date, 0)
	default:
		return models.NewDietRecord(date, models.MealSnack, "", 0)
	}
}
