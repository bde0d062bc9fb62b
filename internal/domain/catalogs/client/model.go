// Package client provides the Client catalog: the businesses and people
// the company sells to. Clients own contracts, payments, usage metrics
// and notifications; deleting a client cascades over all of them.
package client

import (
	"context"
	"regexp"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces client keys in the store.
const CollectionPrefix = "clients"

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Status defines the client lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// Client represents a customer record.
type Client struct {
	entity.Base

	// Name is the display name (required)
	Name string `json:"name"`

	// Company is the legal/company name, when distinct from Name
	Company string `json:"company,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Address string `json:"address,omitempty"`

	Status Status `json:"status"`

	Tags []string `json:"tags,omitempty"`

	// Notes is a free-form comment
	Notes string `json:"notes,omitempty"`
}

// New creates a Client with required fields.
func New(name string, status Status) *Client {
	return &Client{Name: name, Status: status}
}

// Validate implements entity.Validatable.
func (c *Client) Validate(ctx context.Context) error {
	if c.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if !isValidStatus(c.Status) {
		return apperror.NewValidation("invalid client status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	if c.Email != "" && !emailRE.MatchString(c.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	return nil
}

// FilterTarget projects the client into search terms.
// Searchable text: name, email, company.
func (c *Client) FilterTarget() filter.Target {
	return filter.Target{
		Text:   []string{c.Name, c.Email, c.Company},
		Status: string(c.Status),
		Date:   c.CreatedAt,
		Tags:   c.Tags,
	}
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusPending:
		return true
	}
	return false
}
