// Package relations maintains referential integrity between parent and
// child entity families. The store has no multi-key transactions, so a
// cascade is best-effort: an interruption part-way through can leave
// orphaned child records. This is a documented limitation, accepted for
// a single-process store rather than paid for with an intent log.
package relations

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"kontora/internal/storage/kv"
	"kontora/pkg/logger"
)

// Child declares one dependent collection of a parent family.
type Child struct {
	// Prefix is the child collection's key prefix.
	Prefix string

	// ForeignKey is the JSON field on child records holding the parent id.
	ForeignKey string
}

// Manager performs cascading deletes over declared parent/child edges.
type Manager struct {
	store kv.Store
}

// NewManager creates a relations manager on the shared store.
func NewManager(store kv.Store) *Manager {
	return &Manager{store: store}
}

// CascadeDelete removes the parent's store entry and every record in
// every declared child collection whose foreign key equals parentID.
//
// Child families are processed concurrently with no ordering between
// them; within one family every deletion is awaited before that family
// is considered done. A failure in one family does not stop the others;
// the first failure is surfaced to the caller.
func (m *Manager) CascadeDelete(ctx context.Context, parentPrefix, parentID string, children []Child) error {
	var g errgroup.Group

	g.Go(func() error {
		if err := m.store.Delete(ctx, kv.Key(parentPrefix, parentID)); err != nil {
			return fmt.Errorf("delete %s %s: %w", parentPrefix, parentID, err)
		}
		return nil
	})

	for _, child := range children {
		g.Go(func() error {
			return m.deleteChildren(ctx, child, parentID)
		})
	}

	return g.Wait()
}

// deleteChildren scans one child collection and deletes every record
// referencing parentID. There is no secondary index; matching is a full
// scan filtered on the foreign key.
func (m *Manager) deleteChildren(ctx context.Context, child Child, parentID string) error {
	raws, err := m.store.List(ctx, child.Prefix)
	if err != nil {
		return fmt.Errorf("scan %s: %w", child.Prefix, err)
	}

	deleted := 0
	for _, raw := range raws {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("decode %s record: %w", child.Prefix, err)
		}

		fk, _ := fields[child.ForeignKey].(string)
		if fk != parentID {
			continue
		}

		childID, _ := fields["id"].(string)
		if childID == "" {
			continue
		}

		if err := m.store.Delete(ctx, kv.Key(child.Prefix, childID)); err != nil {
			return fmt.Errorf("delete %s %s: %w", child.Prefix, childID, err)
		}
		deleted++
	}

	if deleted > 0 {
		logger.Debug(ctx, "cascade deleted children",
			"collection", child.Prefix,
			"parent_id", parentID,
			"count", deleted,
		)
	}
	return nil
}
