// ABOUTME: Observable in-memory cache of records per category.
// ABOUTME: Mutations notify subscribers synchronously, before the call returns.
package cache

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/healthlog/internal/models"
)

// Cache holds the in-memory view of records per category, in insertion
// order. It is mutated only by the sync engine; presentation collaborators
// read snapshots and subscribe to change notifications.
type Cache struct {
	mu         sync.RWMutex
	sleep      []*models.SleepRecord
	countables map[models.Category][]models.CountableRecord
	sleepHours float64

	subs    map[int]func(models.Category)
	nextSub int
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{
		countables: make(map[models.Category][]models.CountableRecord),
		subs:       make(map[int]func(models.Category)),
	}
}

// Subscribe registers fn to be called synchronously after every mutation
// of the given cache, with the mutated category. Returns a handle for
// Unsubscribe.
func (c *Cache) Subscribe(fn func(models.Category)) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextSub++
	c.subs[c.nextSub] = fn
	return c.nextSub
}

// Unsubscribe removes a subscription by its handle.
func (c *Cache) Unsubscribe(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subs, id)
}

// notify invokes subscribers outside the lock so they may read the cache.
// Called after the mutation is applied, so delivery is synchronous with
// respect to the mutating call.
func (c *Cache) notify(category models.Category) {
	c.mu.RLock()
	fns := make([]func(models.Category), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.RUnlock()
	for _, fn := range fns {
		fn(category)
	}
}

// ReplaceAllSleep atomically replaces the sleep collection, used after a
// full remote fetch for the displayed date.
func (c *Cache) ReplaceAllSleep(records []*models.SleepRecord) {
	c.mu.Lock()
	c.sleep = append([]*models.SleepRecord(nil), records...)
	c.mu.Unlock()
	c.notify(models.CategorySleep)
}

// RemoveSleep removes a sleep record by ID. Removing an absent ID is a
// no-op.
func (c *Cache) RemoveSleep(id uuid.UUID) {
	c.mu.Lock()
	for i, r := range c.sleep {
		if r.ID == id {
			c.sleep = append(c.sleep[:i], c.sleep[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notify(models.CategorySleep)
}

// Sleep returns a snapshot of the current sleep slice.
func (c *Cache) Sleep() []*models.SleepRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]*models.SleepRecord(nil), c.sleep...)
}

// SetSleepHours updates the observable sleep-hours scalar.
func (c *Cache) SetSleepHours(hours float64) {
	c.mu.Lock()
	c.sleepHours = hours
	c.mu.Unlock()
	c.notify(models.CategorySleep)
}

// SleepHours returns the last computed daily sleep total.
func (c *Cache) SleepHours() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sleepHours
}

// ReplaceAll atomically replaces the collection for a countable category.
func (c *Cache) ReplaceAll(category models.Category, records []models.CountableRecord) {
	c.mu.Lock()
	c.countables[category] = append([]models.CountableRecord(nil), records...)
	c.mu.Unlock()
	c.notify(category)
}

// Append performs the optimistic insert used on creation, before remote
// persistence completes.
func (c *Cache) Append(category models.Category, record models.CountableRecord) {
	c.mu.Lock()
	c.countables[category] = append(c.countables[category], record)
	c.mu.Unlock()
	c.notify(category)
}

// Merge appends the given records whose IDs are not already present, as
// one atomic mutation. Records already in the collection always survive
// a merge, so an optimistic insert landing concurrently is never lost.
func (c *Cache) Merge(category models.Category, records []models.CountableRecord) {
	c.mu.Lock()
	seen := make(map[uuid.UUID]bool, len(c.countables[category]))
	for _, r := range c.countables[category] {
		seen[r.RecordID()] = true
	}
	changed := false
	for _, r := range records {
		if seen[r.RecordID()] {
			continue
		}
		seen[r.RecordID()] = true
		c.countables[category] = append(c.countables[category], r)
		changed = true
	}
	c.mu.Unlock()
	if changed {
		c.notify(category)
	}
}

// Remove removes a record by ID from a countable category. Removing an
// absent ID is a no-op.
func (c *Cache) Remove(category models.Category, id uuid.UUID) {
	c.mu.Lock()
	records := c.countables[category]
	for i, r := range records {
		if r.RecordID() == id {
			c.countables[category] = append(records[:i], records[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	c.notify(category)
}

// List returns a snapshot of a countable category's collection, in
// insertion order.
func (c *Cache) List(category models.Category) []models.CountableRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]models.CountableRecord(nil), c.countables[category]...)
}

// ListForDay returns the records of a countable category that fall on the
// same calendar day as date.
func (c *Cache) ListForDay(category models.Category, date time.Time) []models.CountableRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.CountableRecord
	for _, r := range c.countables[category] {
		if models.SameDay(r.Day(), date) {
			out = append(out, r)
		}
	}
	return out
}
