// Package store defines the key-value capability the task list is persisted
// through. Backends live in subpackages.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("store: key not found")

// KV is an opaque key-value slot store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backend names accepted by configuration.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Backends lists every supported backend name.
var Backends = []string{BackendJSON, BackendSQLite, BackendRedis, BackendMemory}
