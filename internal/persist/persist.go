// Package persist encodes the task list into the single key-value slot it is
// stored under, and restores it on startup.
package persist

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/Makepad-fr/todomvc/internal/model"
	"github.com/Makepad-fr/todomvc/internal/store"
)

// DefaultKey is the slot the task list is stored under.
const DefaultKey = "todomvc"

const schemaURL = "tasklist.schema.json"

const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["content", "completed"],
    "properties": {
      "content": {"type": "string"},
      "completed": {"type": "boolean"}
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	return compiler.Compile(schemaURL)
})

// Encode serializes the list as an ordered array of {content, completed}.
func Encode(items model.TaskList) ([]byte, error) {
	if items == nil {
		items = model.TaskList{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode validates and parses a stored document. Every item gets a fresh ID.
func Decode(b []byte) (model.TaskList, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	var doc any
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var items model.TaskList
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = model.TaskList{}
	}
	for i := range items {
		items[i].ID = model.NewID()
	}
	return items, nil
}

// Load reads the list stored under key. It never fails: a missing or
// unreadable slot yields an empty list.
func Load(ctx context.Context, kv store.KV, key string, logger *log.Logger) model.TaskList {
	b, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		logger.Debug("no stored task list", "key", key)
		return model.TaskList{}
	}
	if err != nil {
		logger.Warn("read task list, starting empty", "key", key, "err", err)
		return model.TaskList{}
	}
	items, err := Decode(b)
	if err != nil {
		logger.Warn("decode task list, starting empty", "key", key, "err", err)
		return model.TaskList{}
	}
	logger.Debug("loaded task list", "key", key, "items", len(items))
	return items
}

// Save writes the list under key.
func Save(ctx context.Context, kv store.KV, key string, items model.TaskList) error {
	b, err := Encode(items)
	if err != nil {
		return err
	}
	if err := kv.Set(ctx, key, b); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
