// Package kv defines the key-value persistence collaborator shared by all
// domain stores.
//
// Values are whole JSON documents and every write replaces the full document
// for its key (read collection, mutate in memory, write collection back).
// There is no coordination between concurrent writers of the same key: the
// last writer wins. Shared ledgers inherit this limitation from the data
// model and it is intentionally preserved rather than papered over with a
// merge protocol.
package kv

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value exists for the key.
var ErrNotFound = errors.New("kv: key not found")

// Store is a string-keyed document store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes the value under key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// List returns all key/value pairs whose key starts with prefix.
	List(ctx context.Context, prefix string) (map[string][]byte, error)
}
