// Package usergroup provides the UserGroup catalog. A group's UserCount
// is derived from the users collection by full scan and is refreshed
// after any membership change or user deletion.
package usergroup

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces user group keys in the store.
const CollectionPrefix = "user_groups"

// UserGroup represents a named set of permissions shared by its members.
type UserGroup struct {
	entity.Base

	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Permissions []string `json:"permissions,omitempty"`

	// UserCount is derived from the users collection, not stored state
	// to be edited directly.
	UserCount int `json:"userCount"`
}

// Validate implements entity.Validatable.
func (g *UserGroup) Validate(ctx context.Context) error {
	if g.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

// FilterTarget projects the group into search terms.
func (g *UserGroup) FilterTarget() filter.Target {
	return filter.Target{
		Text: []string{g.Name, g.Description},
		Date: g.CreatedAt,
	}
}
