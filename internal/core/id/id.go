// Package id provides entity identifier generation.
// IDs are opaque strings; the default generator emits UUIDv7 so that
// identifiers sort roughly by creation time.
package id

import (
	"fmt"

	"github.com/google/uuid"
)

// Generator produces unique identifiers for new entities.
// Injected into services so tests can substitute a deterministic fake.
type Generator interface {
	NewID() string
}

// UUID is the production Generator (UUIDv7 per RFC 9562).
type UUID struct{}

// NewID generates a new time-ordered identifier.
func (UUID) NewID() string {
	v7, err := uuid.NewV7()
	if err != nil {
		// Fallback to V4 if V7 fails (should never happen)
		return uuid.New().String()
	}
	return v7.String()
}

// Sequence is a deterministic Generator for tests: prefix-1, prefix-2, ...
// Not safe for concurrent use.
type Sequence struct {
	Prefix string
	n      int
}

// NewID returns the next sequential identifier.
func (s *Sequence) NewID() string {
	s.n++
	prefix := s.Prefix
	if prefix == "" {
		prefix = "id"
	}
	return fmt.Sprintf("%s-%d", prefix, s.n)
}
