// Package payment provides the Payment document: money received from a
// client, removed by cascade when the client is deleted.
package payment

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

// CollectionPrefix namespaces payment keys in the store.
const CollectionPrefix = "payments"

// Status defines the payment processing state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
)

// Payment represents money received from a client.
type Payment struct {
	entity.Base

	ClientID string `json:"clientId"`

	Amount types.Money `json:"amount"`
	Status Status      `json:"status"`

	Date   time.Time `json:"date"`
	Method string    `json:"method,omitempty"`

	Reference string `json:"reference,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Validate implements entity.Validatable.
func (p *Payment) Validate(ctx context.Context) error {
	if p.ClientID == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "clientId")
	}
	if p.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	switch p.Status {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded:
	default:
		return apperror.NewValidation("invalid payment status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	if p.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// FilterTarget projects the payment into search terms.
func (p *Payment) FilterTarget() filter.Target {
	return filter.Target{
		Text:          []string{p.Reference, p.Notes},
		Status:        string(p.Status),
		PaymentMethod: p.Method,
		Date:          p.Date,
		Amount:        p.Amount,
		HasAmount:     true,
	}
}

// Service provides business logic for the Payment document.
type Service struct {
	*domain.Service[*Payment]
}

// NewService creates a new Payment service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Payment]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "payment",
		New:        func() *Payment { return &Payment{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// ByClient lists payments referencing the client.
func (s *Service) ByClient(ctx context.Context, clientID string) ([]*Payment, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Payment, 0)
	for _, p := range all {
		if p.ClientID == clientID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
