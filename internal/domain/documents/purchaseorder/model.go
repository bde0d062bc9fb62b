// Package purchaseorder provides the PurchaseOrder document: an order
// placed with a supplier, numbered per year and removed by cascade when
// the supplier is deleted.
package purchaseorder

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces purchase order keys in the store.
const CollectionPrefix = "purchase_orders"

// NumberPrefix is the purchase order number series, e.g. PO-2026-0001.
const NumberPrefix = "PO"

// Status defines the purchase order lifecycle state.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusReceived  Status = "received"
	StatusCancelled Status = "cancelled"
)

// PurchaseOrder represents an order placed with a supplier.
type PurchaseOrder struct {
	entity.Base

	Number     string `json:"number"`
	SupplierID string `json:"supplierId"`

	Amount types.Money `json:"amount"`
	Status Status      `json:"status"`

	OrderDate        time.Time  `json:"orderDate"`
	ExpectedDelivery *time.Time `json:"expectedDelivery,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Validate implements entity.Validatable.
func (p *PurchaseOrder) Validate(ctx context.Context) error {
	if p.Number == "" {
		return apperror.NewValidation("number is required").
			WithDetail("field", "number")
	}
	if p.SupplierID == "" {
		return apperror.NewValidation("supplier id is required").
			WithDetail("field", "supplierId")
	}
	if p.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	switch p.Status {
	case StatusDraft, StatusSent, StatusReceived, StatusCancelled:
	default:
		return apperror.NewValidation("invalid purchase order status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}
	return nil
}

// FilterTarget projects the purchase order into search terms.
func (p *PurchaseOrder) FilterTarget() filter.Target {
	return filter.Target{
		Text:      []string{p.Number, p.Notes},
		Status:    string(p.Status),
		Date:      p.OrderDate,
		Amount:    p.Amount,
		HasAmount: true,
	}
}
