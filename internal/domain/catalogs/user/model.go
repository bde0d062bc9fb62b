// Package user provides the User catalog. Group membership is stored
// denormalized on the user record only (the Groups array); groups keep
// a derived member count that is recomputed by scan, never maintained
// incrementally.
package user

import (
	"context"
	"regexp"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

// CollectionPrefix namespaces user keys in the store.
const CollectionPrefix = "users"

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Status defines the user account state.
type Status string

const (
	StatusActive   Status = "active"
	StatusDisabled Status = "disabled"
)

// User represents an account in the records console.
type User struct {
	entity.Base

	Name  string `json:"name"`
	Email string `json:"email"`

	Status Status `json:"status"`

	// Groups lists the ids of the user groups this user belongs to
	Groups []string `json:"groups,omitempty"`
}

// Validate implements entity.Validatable.
func (u *User) Validate(ctx context.Context) error {
	if u.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if u.Email == "" {
		return apperror.NewValidation("email is required").
			WithDetail("field", "email")
	}
	if !emailRE.MatchString(u.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	if u.Status != StatusActive && u.Status != StatusDisabled {
		return apperror.NewValidation("invalid user status").
			WithDetail("field", "status").
			WithDetail("value", string(u.Status))
	}
	return nil
}

// FilterTarget projects the user into search terms.
func (u *User) FilterTarget() filter.Target {
	return filter.Target{
		Text:   []string{u.Name, u.Email},
		Status: string(u.Status),
		Date:   u.CreatedAt,
	}
}

// MemberOf reports whether the user lists the group.
func (u *User) MemberOf(groupID string) bool {
	for _, g := range u.Groups {
		if g == groupID {
			return true
		}
	}
	return false
}

// Service provides business logic for the User catalog.
type Service struct {
	*domain.Service[*User]
}

// NewService creates a new User service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*User]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "user",
		New:        func() *User { return &User{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}
