// Package supplierpayment provides the SupplierPayment document: money
// paid out to a supplier, removed by cascade when the supplier is
// deleted.
package supplierpayment

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

// CollectionPrefix namespaces supplier payment keys in the store.
const CollectionPrefix = "supplier_payments"

// Status defines the payment processing state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// SupplierPayment represents money paid to a supplier.
type SupplierPayment struct {
	entity.Base

	SupplierID string `json:"supplierId"`
	InvoiceID  string `json:"invoiceId,omitempty"`

	Amount types.Money `json:"amount"`
	Status Status      `json:"status"`

	Date   time.Time `json:"date"`
	Method string    `json:"method,omitempty"`

	Reference string `json:"reference,omitempty"`
}

// Validate implements entity.Validatable.
func (p *SupplierPayment) Validate(ctx context.Context) error {
	if p.SupplierID == "" {
		return apperror.NewValidation("supplier id is required").
			WithDetail("field", "supplierId")
	}
	if p.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	switch p.Status {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		return apperror.NewValidation("invalid supplier payment status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	if p.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// FilterTarget projects the supplier payment into search terms.
func (p *SupplierPayment) FilterTarget() filter.Target {
	return filter.Target{
		Text:          []string{p.Reference},
		Status:        string(p.Status),
		PaymentMethod: p.Method,
		Date:          p.Date,
		Amount:        p.Amount,
		HasAmount:     true,
	}
}

// Service provides business logic for the SupplierPayment document.
type Service struct {
	*domain.Service[*SupplierPayment]
}

// NewService creates a new SupplierPayment service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*SupplierPayment]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "supplier payment",
		New:        func() *SupplierPayment { return &SupplierPayment{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// BySupplier lists payments referencing the supplier.
func (s *Service) BySupplier(ctx context.Context, supplierID string) ([]*SupplierPayment, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*SupplierPayment, 0)
	for _, p := range all {
		if p.SupplierID == supplierID {
			matched = append(matched, p)
		}
	}
	return matched, nil
}
