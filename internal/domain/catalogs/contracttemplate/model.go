// Package contracttemplate provides the ContractTemplate catalog.
package contracttemplate

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

// CollectionPrefix namespaces contract template keys in the store.
const CollectionPrefix = "contract_templates"

// Status defines the template lifecycle state.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// ContractTemplate is a reusable contract body with substitution
// variables.
type ContractTemplate struct {
	entity.Base

	Name     string `json:"name"`
	Body     string `json:"body"`
	Category string `json:"category,omitempty"`

	// Variables lists placeholder names the body expects, e.g. clientName
	Variables []string `json:"variables,omitempty"`

	Status Status `json:"status"`
}

// Validate implements entity.Validatable.
func (t *ContractTemplate) Validate(ctx context.Context) error {
	if t.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if t.Body == "" {
		return apperror.NewValidation("body is required").
			WithDetail("field", "body")
	}
	if t.Status != StatusDraft && t.Status != StatusActive && t.Status != StatusArchived {
		return apperror.NewValidation("invalid template status").
			WithDetail("field", "status").
			WithDetail("value", string(t.Status))
	}
	return nil
}

// FilterTarget projects the template into search terms.
func (t *ContractTemplate) FilterTarget() filter.Target {
	return filter.Target{
		Text:     []string{t.Name, t.Category},
		Status:   string(t.Status),
		Category: t.Category,
		Date:     t.CreatedAt,
	}
}

// Service provides business logic for the ContractTemplate catalog.
type Service struct {
	*domain.Service[*ContractTemplate]
}

// NewService creates a new ContractTemplate service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*ContractTemplate]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "contract template",
		New:        func() *ContractTemplate { return &ContractTemplate{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}
