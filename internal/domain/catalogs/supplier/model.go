// Package supplier provides the Supplier catalog: vendors the company
// buys from. Suppliers own purchase orders, invoices, payments and
// metrics; deleting a supplier cascades over all of them.
package supplier

import (
	"context"
	"regexp"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces supplier keys in the store.
const CollectionPrefix = "suppliers"

var emailRE = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Status defines the supplier lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Supplier represents a vendor record.
type Supplier struct {
	entity.Base

	Name string `json:"name"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	// Category groups suppliers (e.g. "logistics", "software")
	Category string `json:"category,omitempty"`

	// ContactPerson is the primary contact name
	ContactPerson string `json:"contactPerson,omitempty"`

	// PaymentTerms is a free-form terms note (e.g. "net 30")
	PaymentTerms string `json:"paymentTerms,omitempty"`

	Status Status `json:"status"`

	// Rating is a 0-100 vendor score
	Rating int `json:"rating"`

	Tags []string `json:"tags,omitempty"`
}

// New creates a Supplier with required fields.
func New(name string, status Status) *Supplier {
	return &Supplier{Name: name, Status: status}
}

// Validate implements entity.Validatable.
func (s *Supplier) Validate(ctx context.Context) error {
	if s.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if s.Status != StatusActive && s.Status != StatusInactive {
		return apperror.NewValidation("invalid supplier status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}
	if s.Rating < 0 || s.Rating > 100 {
		return apperror.NewValidation("rating must be between 0 and 100").
			WithDetail("field", "rating").
			WithDetail("value", s.Rating)
	}
	if s.Email != "" && !emailRE.MatchString(s.Email) {
		return apperror.NewValidation("invalid email format").
			WithDetail("field", "email")
	}
	return nil
}

// FilterTarget projects the supplier into search terms.
// Searchable text: name, email, contact person.
func (s *Supplier) FilterTarget() filter.Target {
	return filter.Target{
		Text:     []string{s.Name, s.Email, s.ContactPerson},
		Status:   string(s.Status),
		Category: s.Category,
		Date:     s.CreatedAt,
		Tags:     s.Tags,
	}
}
