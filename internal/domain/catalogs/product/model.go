// Package product provides the Product catalog.
package product

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces product keys in the store.
const CollectionPrefix = "products"

// Status defines the product lifecycle state.
type Status string

const (
	StatusDraft        Status = "draft"
	StatusActive       Status = "active"
	StatusDiscontinued Status = "discontinued"
)

// Product represents a sellable item or service.
type Product struct {
	entity.Base

	Name        string `json:"name"`
	Description string `json:"description,omitempty"`

	// SKU is an optional stock-keeping code
	SKU string `json:"sku,omitempty"`

	// Price must be non-negative
	Price types.Money `json:"price"`

	Category string `json:"category,omitempty"`

	Status Status `json:"status"`

	Tags []string `json:"tags,omitempty"`
}

// New creates a Product with required fields.
func New(name string, price types.Money, status Status) *Product {
	return &Product{Name: name, Price: price, Status: status}
}

// Validate implements entity.Validatable.
func (p *Product) Validate(ctx context.Context) error {
	if p.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if p.Status != StatusDraft && p.Status != StatusActive && p.Status != StatusDiscontinued {
		return apperror.NewValidation("invalid product status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	if p.Price.IsNegative() {
		return apperror.NewValidation("price must not be negative").
			WithDetail("field", "price")
	}
	return nil
}

// FilterTarget projects the product into search terms.
// Searchable text: name, description, SKU.
func (p *Product) FilterTarget() filter.Target {
	return filter.Target{
		Text:      []string{p.Name, p.Description, p.SKU},
		Status:    string(p.Status),
		Category:  p.Category,
		Date:      p.CreatedAt,
		Amount:    p.Price,
		HasAmount: true,
		Tags:      p.Tags,
	}
}
