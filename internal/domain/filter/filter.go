// Package filter provides the declarative search filter applied to
// full-collection scans. All predicates present on a Filter must match
// (logical AND); unset predicates are ignored.
package filter

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Filter is the set of optional predicates for a search.
type Filter struct {
	// Search is matched case-insensitively as a substring against the
	// entity's searchable text fields.
	Search string `json:"search,omitempty" form:"search"`

	// Exact enum matches
	Status        string `json:"status,omitempty" form:"status"`
	Category      string `json:"category,omitempty" form:"category"`
	Type          string `json:"type,omitempty" form:"type"`
	PaymentMethod string `json:"paymentMethod,omitempty" form:"paymentMethod"`

	// Inclusive date range on the entity's designated date field
	DateFrom *time.Time `json:"dateFrom,omitempty" form:"dateFrom" time_format:"2006-01-02"`
	DateTo   *time.Time `json:"dateTo,omitempty" form:"dateTo" time_format:"2006-01-02"`

	// Inclusive range on the entity's designated amount field
	AmountMin *decimal.Decimal `json:"amountMin,omitempty" form:"amountMin"`
	AmountMax *decimal.Decimal `json:"amountMax,omitempty" form:"amountMax"`

	// Tags requires at least one overlapping tag
	Tags []string `json:"tags,omitempty" form:"tags"`
}

// IsZero reports whether no predicate is set.
func (f Filter) IsZero() bool {
	return f.Search == "" && f.Status == "" && f.Category == "" &&
		f.Type == "" && f.PaymentMethod == "" &&
		f.DateFrom == nil && f.DateTo == nil &&
		f.AmountMin == nil && f.AmountMax == nil && len(f.Tags) == 0
}

// Target is an entity's projection into filterable terms. Each entity
// family declares which of its fields feed which predicate; zero-valued
// members simply never match the corresponding predicate.
type Target struct {
	// Text lists the searchable text fields' values
	Text []string

	Status        string
	Category      string
	Type          string
	PaymentMethod string

	// Date is the designated date field
	Date time.Time

	// Amount is the designated numeric field; HasAmount guards entities
	// without one
	Amount    decimal.Decimal
	HasAmount bool

	Tags []string
}

// Match reports whether the target satisfies every set predicate.
func Match(f Filter, t Target) bool {
	if f.Search != "" && !matchSearch(f.Search, t.Text) {
		return false
	}
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != "" && t.Type != f.Type {
		return false
	}
	if f.PaymentMethod != "" && t.PaymentMethod != f.PaymentMethod {
		return false
	}
	if f.DateFrom != nil && t.Date.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && t.Date.After(*f.DateTo) {
		return false
	}
	if f.AmountMin != nil && (!t.HasAmount || t.Amount.LessThan(*f.AmountMin)) {
		return false
	}
	if f.AmountMax != nil && (!t.HasAmount || t.Amount.GreaterThan(*f.AmountMax)) {
		return false
	}
	if len(f.Tags) > 0 && !overlaps(f.Tags, t.Tags) {
		return false
	}
	return true
}

func matchSearch(term string, fields []string) bool {
	needle := strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func overlaps(want, have []string) bool {
	for _, w := range want {
		for _, h := range have {
			if w == h {
				return true
			}
		}
	}
	return false
}
