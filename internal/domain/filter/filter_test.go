package filter

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	date := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	before := date.AddDate(0, 0, -1)
	after := date.AddDate(0, 0, 1)
	amount := decimal.NewFromInt(100)

	target := Target{
		Text:      []string{"Acme Corp", "billing@acme.test"},
		Status:    "active",
		Category:  "software",
		Date:      date,
		Amount:    amount,
		HasAmount: true,
		Tags:      []string{"vip", "eu"},
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter matches", Filter{}, true},
		{"search case-insensitive substring", Filter{Search: "acme"}, true},
		{"search no match", Filter{Search: "globex"}, false},
		{"status exact", Filter{Status: "active"}, true},
		{"status mismatch", Filter{Status: "inactive"}, false},
		{"category exact", Filter{Category: "software"}, true},
		{"date range inclusive", Filter{DateFrom: &date, DateTo: &date}, true},
		{"date before range", Filter{DateFrom: &after}, false},
		{"date after range", Filter{DateTo: &before}, false},
		{"amount range inclusive", Filter{AmountMin: &amount, AmountMax: &amount}, true},
		{"tag overlap", Filter{Tags: []string{"vip", "us"}}, true},
		{"tag no overlap", Filter{Tags: []string{"us"}}, false},
		{"predicates combine with AND", Filter{Status: "active", Search: "globex"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.filter, target))
		})
	}
}

func TestMatchAmountOnAmountlessTarget(t *testing.T) {
	min := decimal.NewFromInt(1)
	target := Target{Text: []string{"no amount"}}

	assert.False(t, Match(Filter{AmountMin: &min}, target))
	assert.True(t, Match(Filter{Search: "amount"}, target))
}
