package entity

import (
	"context"
	"time"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without store access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Base contains common fields for all persisted records.
// ID is assigned once at creation and immutable thereafter;
// UpdatedAt is refreshed on every successful mutation.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Meta exposes the embedded base to generic code.
func (b *Base) Meta() *Base { return b }

// StampCreated sets both timestamps at creation time.
func (b *Base) StampCreated(now time.Time) {
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch refreshes the updated timestamp.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// Record is the constraint for entities managed by the generic service:
// self-validating, carrying base metadata, and projectable into search
// filter terms.
type Record interface {
	Validatable
	Meta() *Base
}
