package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Accessor layers JSON records on top of a Store. Indexes compose it instead of
// talking to the Store directly for record reads and writes.
type Accessor struct {
	store Store
}

// NewAccessor wraps s.
func NewAccessor(s Store) *Accessor {
	return &Accessor{store: s}
}

// Store exposes the underlying store for sorted-set and existence queries.
func (a *Accessor) Store() Store {
	return a.store
}

// GetJSON loads key into dest. It returns false when the key is missing.
func (a *Accessor) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	raw, found, err := a.store.GetString(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON builds a batch write storing v as JSON under key.
func SetJSON(key string, v any) (Op, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return Op{}, fmt.Errorf("encode %s: %w", key, err)
	}
	return Set(key, string(data)), nil
}
