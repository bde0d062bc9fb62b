package domain

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/id"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

// Entity is the constraint for records managed by the generic service:
// pointer types that validate themselves, expose base metadata, and
// project into search filter terms.
type Entity interface {
	comparable
	entity.Record
	FilterTarget() filter.Target
}

// Service provides the per-family entity operations: CRUD, search and
// counting. Family-specific behavior (numbering, payment marking,
// cascades) is layered on top via embedding and hooks.
//
// Multi-step operations (read-modify-write, scan-then-aggregate) assume
// no concurrent writer; the store is single-writer by contract.
type Service[T Entity] struct {
	col   *Collection[T]
	hooks *HookRegistry[T]
	ids   id.Generator
	now   func() time.Time

	// entityName for error messages
	entityName string
}

// Options carries the injectable capabilities shared by every family
// service. Zero values select the production defaults.
type Options struct {
	IDs id.Generator
	Now func() time.Time
}

// Config configures a generic entity service.
type Config[T Entity] struct {
	Store      kv.Store
	Prefix     string
	EntityName string
	New        func() T

	// IDs defaults to UUIDv7; Now defaults to time.Now.
	// Both are injectable for deterministic tests.
	IDs id.Generator
	Now func() time.Time
}

// NewService creates a generic entity service.
func NewService[T Entity](cfg Config[T]) *Service[T] {
	ids := cfg.IDs
	if ids == nil {
		ids = id.UUID{}
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service[T]{
		col:        NewCollection(cfg.Store, cfg.Prefix, cfg.New),
		hooks:      NewHookRegistry[T](),
		ids:        ids,
		now:        now,
		entityName: cfg.EntityName,
	}
}

// Hooks returns the hook registry for external registration.
func (s *Service[T]) Hooks() *HookRegistry[T] { return s.hooks }

// Collection exposes the underlying collection codec.
func (s *Service[T]) Collection() *Collection[T] { return s.col }

// New returns a fresh empty record of the family type.
func (s *Service[T]) New() T { return s.col.New() }

// Prefix returns the collection's key prefix.
func (s *Service[T]) Prefix() string { return s.col.Prefix() }

// Now returns the service clock reading.
func (s *Service[T]) Now() time.Time { return s.now() }

func (s *Service[T]) normalizeValidationErr(err error) error {
	if err == nil {
		return nil
	}
	if apperror.IsAppError(err) {
		return err
	}
	return apperror.NewValidation(err.Error())
}

// All returns the full collection ordered by createdAt descending,
// ties broken by store iteration order. No side effects.
func (s *Service[T]) All(ctx context.Context) ([]T, error) {
	recs, err := s.col.All(ctx)
	if err != nil {
		return nil, apperror.NewStorage("list "+s.entityName, err)
	}
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Meta().CreatedAt.After(recs[j].Meta().CreatedAt)
	})
	return recs, nil
}

// Get retrieves one record; the zero T when absent.
// Fails with INVALID_INPUT on a blank id.
func (s *Service[T]) Get(ctx context.Context, entityID string) (T, error) {
	var zero T
	if entityID == "" {
		return zero, apperror.NewInvalidInput(s.entityName + " id is required").
			WithDetail("field", "id")
	}
	rec, err := s.col.Get(ctx, entityID)
	if err != nil {
		return zero, apperror.NewStorage("get "+s.entityName, err)
	}
	return rec, nil
}

// mustGet retrieves one record or fails with NOT_FOUND.
func (s *Service[T]) mustGet(ctx context.Context, entityID string) (T, error) {
	var zero T
	rec, err := s.Get(ctx, entityID)
	if err != nil {
		return zero, err
	}
	if rec == zero {
		return zero, apperror.NewNotFound(s.entityName, entityID)
	}
	return rec, nil
}

// Create validates the record, assigns a fresh id and timestamps, and
// writes it. The write is visible to an immediately following Get/All.
func (s *Service[T]) Create(ctx context.Context, rec T) error {
	if err := rec.Validate(ctx); err != nil {
		return s.normalizeValidationErr(err)
	}
	if err := s.hooks.Run(ctx, BeforeCreate, rec); err != nil {
		return err
	}

	meta := rec.Meta()
	meta.ID = s.ids.NewID()
	meta.StampCreated(s.now())

	if err := s.col.Put(ctx, meta.ID, rec); err != nil {
		return apperror.NewStorage("create "+s.entityName, err)
	}

	if err := s.hooks.Run(ctx, AfterCreate, rec); err != nil {
		return err
	}
	return nil
}

// Update merges the JSON patch onto the stored record. Only fields
// present in the patch change; id and createdAt are immutable and
// updatedAt is refreshed. The merged record is re-validated before the
// write. Fails with NOT_FOUND when the id does not exist.
func (s *Service[T]) Update(ctx context.Context, entityID string, patch json.RawMessage) (T, error) {
	var zero T

	rec, err := s.mustGet(ctx, entityID)
	if err != nil {
		return zero, err
	}

	meta := rec.Meta()
	keepID, keepCreated := meta.ID, meta.CreatedAt

	if err := json.Unmarshal(patch, rec); err != nil {
		return zero, apperror.NewValidation("invalid " + s.entityName + " patch").
			WithCause(err)
	}

	meta.ID = keepID
	meta.CreatedAt = keepCreated

	if err := rec.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}
	if err := s.hooks.Run(ctx, BeforeUpdate, rec); err != nil {
		return zero, err
	}

	meta.Touch(s.now())

	if err := s.col.Put(ctx, meta.ID, rec); err != nil {
		return zero, apperror.NewStorage("update "+s.entityName, err)
	}

	if err := s.hooks.Run(ctx, AfterUpdate, rec); err != nil {
		return zero, err
	}
	return rec, nil
}

// Mutate applies a typed mutation to the stored record, re-validates,
// refreshes updatedAt and writes. Used by family-specific operations
// such as marking a bill paid.
func (s *Service[T]) Mutate(ctx context.Context, entityID string, fn func(T) error) (T, error) {
	var zero T

	rec, err := s.mustGet(ctx, entityID)
	if err != nil {
		return zero, err
	}

	meta := rec.Meta()
	keepID, keepCreated := meta.ID, meta.CreatedAt

	if err := fn(rec); err != nil {
		return zero, err
	}

	meta.ID = keepID
	meta.CreatedAt = keepCreated

	if err := rec.Validate(ctx); err != nil {
		return zero, s.normalizeValidationErr(err)
	}

	meta.Touch(s.now())

	if err := s.col.Put(ctx, meta.ID, rec); err != nil {
		return zero, apperror.NewStorage("update "+s.entityName, err)
	}
	return rec, nil
}

// Delete removes the record. Fails with NOT_FOUND when absent.
// Does not cascade; cascading is the relations manager's concern.
func (s *Service[T]) Delete(ctx context.Context, entityID string) error {
	rec, err := s.mustGet(ctx, entityID)
	if err != nil {
		return err
	}
	if err := s.hooks.Run(ctx, BeforeDelete, rec); err != nil {
		return err
	}
	if err := s.col.Delete(ctx, entityID); err != nil {
		return apperror.NewStorage("delete "+s.entityName, err)
	}
	return s.hooks.Run(ctx, AfterDelete, rec)
}

// Search loads the full collection and applies every set predicate
// (logical AND). An unset predicate is ignored, not "match empty".
func (s *Service[T]) Search(ctx context.Context, f filter.Filter) ([]T, error) {
	recs, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	if f.IsZero() {
		return recs, nil
	}

	matched := make([]T, 0, len(recs))
	for _, rec := range recs {
		if filter.Match(f, rec.FilterTarget()) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Count returns the collection size.
func (s *Service[T]) Count(ctx context.Context) (int, error) {
	recs, err := s.col.All(ctx)
	if err != nil {
		return 0, apperror.NewStorage("count "+s.entityName, err)
	}
	return len(recs), nil
}
