package kv

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGetAbsent(t *testing.T) {
	store := NewMemory()

	v, err := store.Get(context.Background(), "clients:missing")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestMemoryReadAfterWrite(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "clients:1", json.RawMessage(`{"id":"1"}`)))

	v, err := store.Get(ctx, "clients:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(v))
}

func TestMemoryDeleteAbsentIsNoError(t *testing.T) {
	store := NewMemory()

	assert.NoError(t, store.Delete(context.Background(), "clients:missing"))
}

func TestMemoryListScopedToPrefix(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "clients:1", json.RawMessage(`{"id":"1"}`)))
	require.NoError(t, store.Set(ctx, "clients:2", json.RawMessage(`{"id":"2"}`)))
	require.NoError(t, store.Set(ctx, "client_notes:1", json.RawMessage(`{"id":"n1"}`)))

	values, err := store.List(ctx, "clients")
	require.NoError(t, err)
	assert.Len(t, values, 2)

	keys, err := store.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"client_notes:1", "clients:1", "clients:2"}, keys)
}

func TestMemoryValueIsolation(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	original := json.RawMessage(`{"id":"1"}`)
	require.NoError(t, store.Set(ctx, "clients:1", original))

	// Mutating the caller's slice must not affect the stored value.
	original[2] = 'x'

	v, err := store.Get(ctx, "clients:1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"1"}`, string(v))
}
