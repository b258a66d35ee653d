package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Makepad-fr/todomvc/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// The file holds one object mapping keys to JSON documents.
// No locking; fine for a local single-user tool.

const DefaultFileName = "todos.json"

// Store keeps every slot in one JSON file.
type Store struct {
	path string
}

// New returns a store backed by the file at path. An empty path means
// todos.json in the working directory.
func New(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) load() (map[string]json.RawMessage, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]json.RawMessage{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	slots := map[string]json.RawMessage{}
	if len(b) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return slots, nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	slots, err := s.load()
	if err != nil {
		return nil, err
	}
	v, ok := slots[key]
	if !ok {
		return nil, store.ErrNotFound
	}
	return []byte(v), nil
}

// Set stores value under key. value must be a JSON document.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	if !json.Valid(value) {
		return fmt.Errorf("set %q: value is not valid JSON", key)
	}
	slots, err := s.load()
	if err != nil {
		return err
	}
	slots[key] = json.RawMessage(value)
	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func (s *Store) Close() error { return nil }
