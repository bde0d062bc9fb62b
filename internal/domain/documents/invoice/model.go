// Package invoice provides the Invoice document: a supplier-issued
// payable with a year-scoped number series.
package invoice

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces invoice keys in the store.
const CollectionPrefix = "invoices"

// NumberPrefix is the invoice number series, e.g. INV-2026-0001.
const NumberPrefix = "INV"

// Status defines the invoice payment state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Invoice represents a supplier invoice.
type Invoice struct {
	entity.Base

	Number     string `json:"number"`
	SupplierID string `json:"supplierId"`

	Amount   types.Money `json:"amount"`
	Category string      `json:"category,omitempty"`

	Status Status `json:"status"`

	IssueDate time.Time  `json:"issueDate"`
	DueDate   time.Time  `json:"dueDate"`
	PaidDate  *time.Time `json:"paidDate,omitempty"`

	PaymentMethod string `json:"paymentMethod,omitempty"`

	Notes string `json:"notes,omitempty"`
}

// Validate implements entity.Validatable.
func (i *Invoice) Validate(ctx context.Context) error {
	if i.Number == "" {
		return apperror.NewValidation("number is required").
			WithDetail("field", "number")
	}
	if i.SupplierID == "" {
		return apperror.NewValidation("supplier id is required").
			WithDetail("field", "supplierId")
	}
	if i.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	switch i.Status {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
	default:
		return apperror.NewValidation("invalid invoice status").
			WithDetail("field", "status").
			WithDetail("value", string(i.Status))
	}
	return nil
}

// FilterTarget projects the invoice into search terms.
func (i *Invoice) FilterTarget() filter.Target {
	return filter.Target{
		Text:          []string{i.Number, i.Category, i.Notes},
		Status:        string(i.Status),
		Category:      i.Category,
		PaymentMethod: i.PaymentMethod,
		Date:          i.IssueDate,
		Amount:        i.Amount,
		HasAmount:     true,
	}
}
