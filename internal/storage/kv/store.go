// Package kv defines the key-value store port the entity layer is built on.
// Keys are namespaced per collection: "{collectionPrefix}:{id}".
package kv

import (
	"context"
	"encoding/json"
	"strings"
)

// Store is the persistence contract consumed by the entity layer.
// Implementations must provide read-your-writes consistency within a
// single process; no multi-key transactions are offered.
type Store interface {
	// Get returns the value at key, or nil when the key is absent.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set writes value at key, inserting or overwriting.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every value whose key starts with "{prefix}:".
	List(ctx context.Context, prefix string) ([]json.RawMessage, error)

	// Keys returns all keys in the store.
	Keys(ctx context.Context) ([]string, error)
}

// Key builds the storage key for an entity.
func Key(prefix, id string) string {
	return prefix + ":" + id
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// LikePrefix builds a SQL LIKE pattern matching every key under prefix.
// LIKE metacharacters in the prefix are escaped with a backslash, so an
// underscore in a collection name ("purchase_orders") cannot match keys
// of another collection. Use with ESCAPE '\' where the dialect has no
// default escape character.
func LikePrefix(prefix string) string {
	return likeEscaper.Replace(prefix) + ":%"
}
