// ABOUTME: Store interface and error taxonomy for the remote document store.
// ABOUTME: Documents are addressed by (category, dateKey, recordID), JSON-encoded.
package store

import (
	"context"
	"fmt"

	"github.com/harperreed/healthlog/internal/models"
)

// ErrorKind classifies store failures.
type ErrorKind string

const (
	KindNetwork       ErrorKind = "network"
	KindSerialization ErrorKind = "serialization"
	KindNotFound      ErrorKind = "notFound"
)

// StoreError is the typed failure for every store operation.
type StoreError struct {
	Kind ErrorKind
	Op   string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s (%s): %v", e.Op, e.Kind, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// NewError wraps err as a StoreError for the given operation.
func NewError(kind ErrorKind, op string, err error) *StoreError {
	return &StoreError{Kind: kind, Op: op, Err: err}
}

// Store is the remote document store, addressed per date bucket.
// This interface allows swapping backends (charm, sqlite, memory).
type Store interface {
	// Put upserts one document under /{category}/{dateKey}/{recordID}.
	Put(ctx context.Context, category models.Category, dateKey, recordID string, doc []byte) error

	// Delete removes one document. Deleting an absent document succeeds.
	Delete(ctx context.Context, category models.Category, dateKey, recordID string) error

	// ListUnder returns recordID -> document for every record in the
	// bucket. A missing bucket yields an empty map, not an error.
	ListUnder(ctx context.Context, category models.Category, dateKey string) (map[string][]byte, error)

	// Lifecycle
	Close() error
}
