// ABOUTME: Sync engine reconciling the local cache with the remote store.
// ABOUTME: Owns the cache, the default-entry policies, and failure logging.
package engine

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/harperreed/healthlog/internal/cache"
	"github.com/harperreed/healthlog/internal/store"
)

// Engine is the only component that writes to the cache or the remote
// store. Sleep entries use a fetch-authoritative strategy; workout, water,
// and diet entries use an optimistic-local strategy.
type Engine struct {
	store  store.Store
	cache  *cache.Cache
	logger *log.Logger

	// fetchSeq guards overlapping sleep fetches: only the most recently
	// issued fetch may write the cache when it completes. fetchMu holds
	// the check and the cache write together, so a stale fetch can never
	// slip its write in after a newer fetch has written.
	fetchSeq atomic.Uint64
	fetchMu  sync.Mutex

	// wg tracks in-flight fire-and-forget persists.
	wg sync.WaitGroup
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for swallowed read/write failures.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New creates an Engine over the given store with an empty cache.
func New(st store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		cache:  cache.New(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cache returns the engine-owned observable cache. Presentation
// collaborators read and subscribe; they never mutate it.
func (e *Engine) Cache() *cache.Cache {
	return e.cache
}

// Store returns the remote store backend the engine was built over.
func (e *Engine) Store() store.Store {
	return e.store
}

// Flush waits for all in-flight background persists to settle. Call
// before process exit so fire-and-forget writes are not lost.
func (e *Engine) Flush() {
	e.wg.Wait()
}

// Close flushes pending persists and closes the store.
func (e *Engine) Close() error {
	e.Flush()
	return e.store.Close()
}

// marshalDoc encodes a record for the remote store.
func marshalDoc(v any) ([]byte, error) {
	return json.Marshal(v)
}

// unmarshalDoc decodes a remote document.
func unmarshalDoc[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
