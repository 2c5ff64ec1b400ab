// ABOUTME: Fetch-authoritative sleep operations for the sync engine.
// ABOUTME: Sleep is always re-fetched from the remote store, never trusted from cache.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthlog/internal/models"
	"github.com/harperreed/healthlog/internal/store"
)

// FetchForDateErr fetches all sleep records in the date's bucket.
// Documents that fail to deserialize are logged and skipped. This is the
// error-surfacing variant; most callers want FetchForDate.
func (e *Engine) FetchForDateErr(ctx context.Context, date time.Time) ([]*models.SleepRecord, error) {
	dateKey := models.DateKey(date)
	docs, err := e.store.ListUnder(ctx, models.CategorySleep, dateKey)
	if err != nil {
		return nil, fmt.Errorf("fetch sleep %s: %w", dateKey, err)
	}

	var records []*models.SleepRecord
	for id, doc := range docs {
		rec, err := unmarshalDoc[models.SleepRecord](doc)
		if err != nil {
			e.logger.Warn("skipping invalid sleep document", "id", id, "date", dateKey,
				"err", store.NewError(store.KindSerialization, "decode", err))
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

// FetchForDate fetches all sleep records for a date. Transport failures
// degrade to an empty result and are logged, never surfaced.
func (e *Engine) FetchForDate(ctx context.Context, date time.Time) []*models.SleepRecord {
	records, err := e.FetchForDateErr(ctx, date)
	if err != nil {
		e.logger.Warn("sleep fetch failed, returning empty", "date", models.DateKey(date), "err", err)
		return nil
	}
	return records
}

// FetchWithDefault fetches sleep records for a date; when the bucket is
// empty it synthesizes one zero-duration placeholder for display. The
// fetched-or-default set becomes the cache's sleep slice, unless a newer
// fetch has been issued in the meantime.
func (e *Engine) FetchWithDefault(ctx context.Context, date time.Time) []*models.SleepRecord {
	seq := e.fetchSeq.Add(1)

	records := e.FetchForDate(ctx, date)
	if len(records) == 0 {
		now := time.Now()
		records = []*models.SleepRecord{models.NewSleepRecord(date, now, now)}
	}

	// Last-issued wins: a superseded fetch may not write the cache. The
	// mutex makes check-and-write atomic against competing fetches.
	e.fetchMu.Lock()
	if seq == e.fetchSeq.Load() {
		e.cache.ReplaceAllSleep(records)
	}
	e.fetchMu.Unlock()
	return records
}

// CreateSleep persists a sleep record, addressed by the record's own date.
// Identifiers are generated client-side and assumed unique; no collision
// check is made.
func (e *Engine) CreateSleep(ctx context.Context, rec *models.SleepRecord) error {
	doc, err := marshalDoc(rec)
	if err != nil {
		return fmt.Errorf("encode sleep record: %w", store.NewError(store.KindSerialization, "encode", err))
	}

	dateKey := models.DateKey(rec.Date)
	if err := e.store.Put(ctx, models.CategorySleep, dateKey, rec.ID.String(), doc); err != nil {
		return fmt.Errorf("persist sleep record: %w", err)
	}
	return nil
}

// DeleteSleep removes the remote document for (id, date). Deleting an
// absent document succeeds. The cache is not touched; callers who mirror
// the record locally must also remove it from the cache.
func (e *Engine) DeleteSleep(ctx context.Context, id uuid.UUID, date time.Time) error {
	dateKey := models.DateKey(date)
	if err := e.store.Delete(ctx, models.CategorySleep, dateKey, id.String()); err != nil {
		return fmt.Errorf("delete sleep record: %w", err)
	}
	return nil
}

// TotalHours fetches the date's sleep records and sums their durations,
// updating the observable sleep-hours scalar. Rounding is a display
// concern.
func (e *Engine) TotalHours(ctx context.Context, date time.Time) float64 {
	var total float64
	for _, rec := range e.FetchForDate(ctx, date) {
		total += rec.Duration()
	}
	e.cache.SetSleepHours(total)
	return total
}
