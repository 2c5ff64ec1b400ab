// ABOUTME: In-memory backend for the remote document store.
// ABOUTME: Used by tests and the "memory" config backend.
package store

import (
	"context"
	"sync"

	"github.com/harperreed/healthlog/internal/models"
)

// MemoryStore keeps documents in process memory. Buckets are keyed by
// category + dateKey; last write wins within a bucket.
type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]map[string][]byte),
	}
}

func memBucketKey(category models.Category, dateKey string) string {
	return string(category) + keySep + dateKey
}

// Put upserts one document in its date bucket.
func (s *MemoryStore) Put(ctx context.Context, category models.Category, dateKey, recordID string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bk := memBucketKey(category, dateKey)
	bucket, ok := s.buckets[bk]
	if !ok {
		bucket = make(map[string][]byte)
		s.buckets[bk] = bucket
	}
	cp := make([]byte, len(doc))
	copy(cp, doc)
	bucket[recordID] = cp
	return nil
}

// Delete removes one document. Absent documents are not an error.
func (s *MemoryStore) Delete(ctx context.Context, category models.Category, dateKey, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if bucket, ok := s.buckets[memBucketKey(category, dateKey)]; ok {
		delete(bucket, recordID)
	}
	return nil
}

// ListUnder returns every document in a date bucket by record ID.
func (s *MemoryStore) ListUnder(ctx context.Context, category models.Category, dateKey string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make(map[string][]byte)
	for id, doc := range s.buckets[memBucketKey(category, dateKey)] {
		cp := make([]byte, len(doc))
		copy(cp, doc)
		results[id] = cp
	}
	return results, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }
