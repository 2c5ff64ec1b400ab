// ABOUTME: Charm KV backend for the remote document store.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
	"github.com/dgraph-io/badger/v3"
	"github.com/harperreed/healthlog/internal/models"
)

const (
	dbName    = "healthlog"
	charmHost = "charm.2389.dev"

	keySep = ":"
)

var (
	globalCharm *CharmStore
	charmOnce   sync.Once
	charmErr    error
)

// CharmStore stores date-bucketed documents in Charm KV, synced to
// Charm Cloud after each write.
type CharmStore struct {
	kv       *kv.KV
	autoSync bool
	mu       sync.RWMutex
}

// InitCharmStore initializes the global Charm-backed store.
// Thread-safe; can be called multiple times.
func InitCharmStore() (*CharmStore, error) {
	charmOnce.Do(func() {
		// Set server before opening KV
		if err := os.Setenv("CHARM_HOST", charmHost); err != nil {
			charmErr = err
			return
		}

		db, err := kv.OpenWithDefaultsFallback(dbName)
		if err != nil {
			charmErr = err
			return
		}

		globalCharm = &CharmStore{
			kv:       db,
			autoSync: true,
		}

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalCharm, charmErr
}

// bucketKey builds the full key for one document:
// {category}:{dateKey}:{recordID}.
func bucketKey(category models.Category, dateKey, recordID string) string {
	return string(category) + keySep + dateKey + keySep + recordID
}

// Put upserts one document in its date bucket.
func (s *CharmStore) Put(ctx context.Context, category models.Category, dateKey, recordID string, doc []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return NewError(KindNetwork, "put",
			fmt.Errorf("database is locked by another process (MCP server?)"))
	}

	key := bucketKey(category, dateKey, recordID)
	if err := s.kv.Set([]byte(key), doc); err != nil {
		return NewError(KindNetwork, "put", err)
	}
	s.syncIfEnabled()
	return nil
}

// Delete removes one document. Absent documents are not an error.
func (s *CharmStore) Delete(ctx context.Context, category models.Category, dateKey, recordID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.kv.IsReadOnly() {
		return NewError(KindNetwork, "delete",
			fmt.Errorf("database is locked by another process (MCP server?)"))
	}

	key := bucketKey(category, dateKey, recordID)
	if err := s.kv.Delete([]byte(key)); err != nil {
		return NewError(KindNetwork, "delete", err)
	}
	s.syncIfEnabled()
	return nil
}

// ListUnder returns every document in a date bucket by record ID.
func (s *CharmStore) ListUnder(ctx context.Context, category models.Category, dateKey string) (map[string][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := []byte(string(category) + keySep + dateKey + keySep)

	keys, err := s.kv.Keys()
	if err != nil {
		return nil, NewError(KindNetwork, "list", err)
	}

	results := make(map[string][]byte)
	for _, key := range keys {
		if !bytes.HasPrefix(key, prefix) {
			continue
		}
		val, err := s.kv.Get(key)
		if err != nil {
			kerr := classifyKV("list", err)
			if kerr.Kind == KindNotFound {
				// Key vanished between Keys and Get (concurrent
				// delete or sync); absent keys are not listed.
				continue
			}
			return nil, kerr
		}
		id := strings.TrimPrefix(string(key), string(prefix))
		results[id] = val
	}

	return results, nil
}

// classifyKV maps a KV failure onto the store error taxonomy. Badger
// reports a missing key as ErrKeyNotFound; everything else from the KV
// layer is treated as a transport failure.
func classifyKV(op string, err error) *StoreError {
	if errors.Is(err, badger.ErrKeyNotFound) {
		return NewError(KindNotFound, op, err)
	}
	return NewError(KindNetwork, op, err)
}

// Close closes the KV database connection.
func (s *CharmStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kv != nil {
		return s.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process holds the lock.
func (s *CharmStore) IsReadOnly() bool {
	return s.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (s *CharmStore) Sync() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.kv.IsReadOnly() {
		return nil
	}
	return s.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (s *CharmStore) syncIfEnabled() {
	if s.autoSync && !s.kv.IsReadOnly() {
		_ = s.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (s *CharmStore) SetAutoSync(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (s *CharmStore) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (s *CharmStore) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.kv.Reset()
}
