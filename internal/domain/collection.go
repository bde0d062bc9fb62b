// Package domain provides the generic entity service instantiated per
// entity family, and the collection codec that maps typed records onto
// the untyped key-value store.
package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"kontora/internal/storage/kv"
)

// Collection maps one entity family onto the store under a fixed key
// prefix. T is the pointer type of the family's record struct.
type Collection[T any] struct {
	store  kv.Store
	prefix string
	newFn  func() T
}

// NewCollection creates a collection codec.
func NewCollection[T any](store kv.Store, prefix string, newFn func() T) *Collection[T] {
	return &Collection[T]{
		store:  store,
		prefix: prefix,
		newFn:  newFn,
	}
}

// Prefix returns the collection's key prefix.
func (c *Collection[T]) Prefix() string { return c.prefix }

// New allocates an empty record via the family constructor.
func (c *Collection[T]) New() T { return c.newFn() }

// Store exposes the underlying store (for cross-collection components).
func (c *Collection[T]) Store() kv.Store { return c.store }

// Key builds the storage key for an entity id.
func (c *Collection[T]) Key(id string) string { return kv.Key(c.prefix, id) }

// Get reads one record; returns the zero T when the key is absent.
func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	var zero T

	raw, err := c.store.Get(ctx, c.Key(id))
	if err != nil {
		return zero, fmt.Errorf("get %s: %w", c.prefix, err)
	}
	if raw == nil {
		return zero, nil
	}

	rec := c.newFn()
	if err := json.Unmarshal(raw, rec); err != nil {
		return zero, fmt.Errorf("decode %s %s: %w", c.prefix, id, err)
	}
	return rec, nil
}

// Put writes one record.
func (c *Collection[T]) Put(ctx context.Context, id string, rec T) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode %s %s: %w", c.prefix, id, err)
	}
	if err := c.store.Set(ctx, c.Key(id), raw); err != nil {
		return fmt.Errorf("put %s: %w", c.prefix, err)
	}
	return nil
}

// Delete removes one record.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, c.Key(id)); err != nil {
		return fmt.Errorf("delete %s: %w", c.prefix, err)
	}
	return nil
}

// All scans the full collection in store iteration order.
func (c *Collection[T]) All(ctx context.Context) ([]T, error) {
	raws, err := c.store.List(ctx, c.prefix)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.prefix, err)
	}

	recs := make([]T, 0, len(raws))
	for _, raw := range raws {
		rec := c.newFn()
		if err := json.Unmarshal(raw, rec); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.prefix, err)
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
