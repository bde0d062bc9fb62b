// Package subscription provides the ProductSubscription document: a
// recurring purchase of a product by a client.
package subscription

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

// CollectionPrefix namespaces subscription keys in the store.
const CollectionPrefix = "product_subscriptions"

// Status defines the subscription state.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCancelled Status = "cancelled"
)

// BillingPeriod defines how often the subscription bills.
type BillingPeriod string

const (
	BillingMonthly BillingPeriod = "monthly"
	BillingYearly  BillingPeriod = "yearly"
)

// Subscription represents a client's recurring purchase of a product.
type Subscription struct {
	entity.Base

	ProductID string `json:"productId"`
	ClientID  string `json:"clientId"`

	Price  types.Money `json:"price"`
	Status Status      `json:"status"`

	BillingPeriod BillingPeriod `json:"billingPeriod"`

	StartDate   time.Time  `json:"startDate"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
}

// Validate implements entity.Validatable.
func (s *Subscription) Validate(ctx context.Context) error {
	if s.ProductID == "" {
		return apperror.NewValidation("product id is required").
			WithDetail("field", "productId")
	}
	if s.ClientID == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "clientId")
	}
	if s.Price.IsNegative() {
		return apperror.NewValidation("price must be non-negative").
			WithDetail("field", "price")
	}
	switch s.Status {
	case StatusActive, StatusPaused, StatusCancelled:
	default:
		return apperror.NewValidation("invalid subscription status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}
	if s.BillingPeriod != BillingMonthly && s.BillingPeriod != BillingYearly {
		return apperror.NewValidation("invalid billing period").
			WithDetail("field", "billingPeriod").
			WithDetail("value", string(s.BillingPeriod))
	}
	return nil
}

// FilterTarget projects the subscription into search terms.
func (s *Subscription) FilterTarget() filter.Target {
	return filter.Target{
		Status:    string(s.Status),
		Type:      string(s.BillingPeriod),
		Date:      s.StartDate,
		Amount:    s.Price,
		HasAmount: true,
	}
}

// Service provides business logic for the Subscription document.
type Service struct {
	*domain.Service[*Subscription]
}

// NewService creates a new Subscription service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Subscription]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "subscription",
		New:        func() *Subscription { return &Subscription{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// Cancel transitions the subscription to cancelled, stamping the
// cancellation time from the service clock.
func (s *Service) Cancel(ctx context.Context, subscriptionID string) (*Subscription, error) {
	return s.Mutate(ctx, subscriptionID, func(sub *Subscription) error {
		sub.Status = StatusCancelled
		when := s.Now()
		sub.CancelledAt = &when
		return nil
	})
}

// ByClient lists subscriptions referencing the client.
func (s *Service) ByClient(ctx context.Context, clientID string) ([]*Subscription, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Subscription, 0)
	for _, sub := range all {
		if sub.ClientID == clientID {
			matched = append(matched, sub)
		}
	}
	return matched, nil
}
