// Package contract provides the Contract document, a client-owned
// agreement removed by cascade when the client is deleted.
package contract

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

// CollectionPrefix namespaces contract keys in the store.
const CollectionPrefix = "contracts"

// Status defines the contract lifecycle state.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusActive     Status = "active"
	StatusExpired    Status = "expired"
	StatusTerminated Status = "terminated"
)

// Contract represents an agreement with a client.
type Contract struct {
	entity.Base

	ClientID string `json:"clientId"`
	Title    string `json:"title"`

	Value  types.Money `json:"value"`
	Status Status      `json:"status"`

	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	TemplateID string `json:"templateId,omitempty"`
	Notes      string `json:"notes,omitempty"`
}

// Validate implements entity.Validatable.
func (c *Contract) Validate(ctx context.Context) error {
	if c.ClientID == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "clientId")
	}
	if c.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if c.Value.IsNegative() {
		return apperror.NewValidation("value must be non-negative").
			WithDetail("field", "value")
	}
	switch c.Status {
	case StatusDraft, StatusActive, StatusExpired, StatusTerminated:
	default:
		return apperror.NewValidation("invalid contract status").
			WithDetail("field", "status").
			WithDetail("value", string(c.Status))
	}
	if c.EndDate != nil && c.EndDate.Before(c.StartDate) {
		return apperror.NewValidation("end date before start date").
			WithDetail("field", "endDate")
	}
	return nil
}

// FilterTarget projects the contract into search terms.
func (c *Contract) FilterTarget() filter.Target {
	return filter.Target{
		Text:      []string{c.Title, c.Notes},
		Status:    string(c.Status),
		Date:      c.StartDate,
		Amount:    c.Value,
		HasAmount: true,
	}
}

// Service provides business logic for the Contract document.
type Service struct {
	*domain.Service[*Contract]
}

// NewService creates a new Contract service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Contract]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "contract",
		New:        func() *Contract { return &Contract{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// ByClient lists contracts referencing the client.
func (s *Service) ByClient(ctx context.Context, clientID string) ([]*Contract, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Contract, 0)
	for _, c := range all {
		if c.ClientID == clientID {
			matched = append(matched, c)
		}
	}
	return matched, nil
}
