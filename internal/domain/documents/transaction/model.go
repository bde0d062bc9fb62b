// Package transaction provides the Transaction document: a dated
// income or expense entry with a year-scoped number series.
package transaction

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/core/types"
	"kontora/internal/domain/filter"
)

// CollectionPrefix namespaces transaction keys in the store.
const CollectionPrefix = "transactions"

// NumberPrefix is the transaction number series, e.g. TXN-2026-0001.
const NumberPrefix = "TXN"

// Type distinguishes money in from money out.
type Type string

const (
	TypeIncome  Type = "income"
	TypeExpense Type = "expense"
)

// Transaction represents a single dated money movement.
type Transaction struct {
	entity.Base

	Number      string `json:"number"`
	Description string `json:"description"`

	Type     Type        `json:"type"`
	Amount   types.Money `json:"amount"`
	Category string      `json:"category,omitempty"`

	Date time.Time `json:"date"`

	PaymentMethod string   `json:"paymentMethod,omitempty"`
	Tags          []string `json:"tags,omitempty"`
}

// Validate implements entity.Validatable.
func (t *Transaction) Validate(ctx context.Context) error {
	if t.Description == "" {
		return apperror.NewValidation("description is required").
			WithDetail("field", "description")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return apperror.NewValidation("invalid transaction type").
			WithDetail("field", "type").
			WithDetail("value", string(t.Type))
	}
	if t.Amount.IsNegative() {
		return apperror.NewValidation("amount must be non-negative").
			WithDetail("field", "amount")
	}
	if t.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// FilterTarget projects the transaction into search terms.
func (t *Transaction) FilterTarget() filter.Target {
	return filter.Target{
		Text:          []string{t.Number, t.Description, t.Category},
		Category:      t.Category,
		Type:          string(t.Type),
		PaymentMethod: t.PaymentMethod,
		Date:          t.Date,
		Amount:        t.Amount,
		HasAmount:     true,
		Tags:          t.Tags,
	}
}
