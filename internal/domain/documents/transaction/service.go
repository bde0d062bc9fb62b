package transaction

import (
	"context"

	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/storage/kv"
)

// Service provides business logic for the Transaction document.
type Service struct {
	*domain.Service[*Transaction]
}

// NewService creates a new Transaction service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Transaction]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "transaction",
		New:        func() *Transaction { return &Transaction{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// NextNumber suggests the next number in the current year's series.
// Not a reservation: concurrent callers can receive the same value.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	txns, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	existing := make([]string, 0, len(txns))
	for _, t := range txns {
		existing = append(existing, t.Number)
	}
	return domain.NextNumber(NumberPrefix, s.Now(), existing), nil
}

// Stats is the fixed-shape transaction aggregate.
type Stats struct {
	TotalTransactions int         `json:"totalTransactions"`
	TotalIncome       types.Money `json:"totalIncome"`
	TotalExpenses     types.Money `json:"totalExpenses"`
	NetAmount         types.Money `json:"netAmount"`

	TransactionsByType     map[string]int `json:"transactionsByType"`
	TransactionsByCategory map[string]int `json:"transactionsByCategory"`
}

// Stats computes the transaction aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	txns, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalTransactions:      len(txns),
		TotalIncome:            types.Zero(),
		TotalExpenses:          types.Zero(),
		TransactionsByType:     make(map[string]int),
		TransactionsByCategory: make(map[string]int),
	}
	for _, t := range txns {
		stats.TransactionsByType[string(t.Type)]++
		if t.Category != "" {
			stats.TransactionsByCategory[t.Category]++
		}
		switch t.Type {
		case TypeIncome:
			stats.TotalIncome = stats.TotalIncome.Add(t.Amount)
		case TypeExpense:
			stats.TotalExpenses = stats.TotalExpenses.Add(t.Amount)
		}
	}
	stats.NetAmount = stats.TotalIncome.Sub(stats.TotalExpenses)
	return stats, nil
}
