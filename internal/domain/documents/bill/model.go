// Package bill provides the Bill document: a payable with a due date,
// a payment lifecycle and a categorical breakdown for the dashboard.
package bill

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces bill keys in the store.
const CollectionPrefix = "bills"

// Status defines the bill payment state.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusOverdue   Status = "overdue"
	StatusCancelled Status = "cancelled"
)

// Bill represents a payable obligation.
type Bill struct {
	entity.Base

	Title    string      `json:"title"`
	Amount   types.Money `json:"amount"`
	Category string      `json:"category,omitempty"`

	Status Status `json:"status"`

	DueDate  time.Time  `json:"dueDate"`
	PaidDate *time.Time `json:"paidDate,omitempty"`

	PaymentMethod string `json:"paymentMethod,omitempty"`

	Notes string   `json:"notes,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// Validate implements entity.Validatable.
func (b *Bill) Validate(ctx context.Context) error {
	if b.Title == "" {
		return apperror.NewValidation("title is required").
			WithDetail("field", "title")
	}
	if b.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	switch b.Status {
	case StatusPending, StatusPaid, StatusOverdue, StatusCancelled:
	default:
		return apperror.NewValidation("invalid bill status").
			WithDetail("field", "status").
			WithDetail("value", string(b.Status))
	}
	if b.DueDate.IsZero() {
		return apperror.NewValidation("due date is required").
			WithDetail("field", "dueDate")
	}
	return nil
}

// FilterTarget projects the bill into search terms.
func (b *Bill) FilterTarget() filter.Target {
	return filter.Target{
		Text:          []string{b.Title, b.Category, b.Notes},
		Status:        string(b.Status),
		Category:      b.Category,
		PaymentMethod: b.PaymentMethod,
		Date:          b.DueDate,
		Amount:        b.Amount,
		HasAmount:     true,
		Tags:          b.Tags,
	}
}
