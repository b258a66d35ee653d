// Package memstore is an in-process KV used for ephemeral sessions and tests.
package memstore

import (
	"context"
	"sync"

	"github.com/Makepad-fr/todomvc/internal/store"
)

type Store struct {
	mu    sync.Mutex
	slots map[string][]byte

	// SetErr, when non-nil, is returned by every Set.
	SetErr error
	// Writes counts successful Set calls.
	Writes int
}

func New() *Store {
	return &Store{slots: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.slots[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.slots[key] = append([]byte(nil), value...)
	s.Writes++
	return nil
}

func (s *Store) Close() error { return nil }
