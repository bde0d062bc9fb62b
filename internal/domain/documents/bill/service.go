package bill

import (
	"context"
	"time"

	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/storage/kv"
)

// Service provides business logic for the Bill document.
type Service struct {
	*domain.Service[*Bill]
}

// NewService creates a new Bill service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Bill]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "bill",
		New:        func() *Bill { return &Bill{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// MarkAsPaid transitions the bill to paid. A nil paidDate defaults to
// the service clock; an empty method leaves the stored one untouched.
func (s *Service) MarkAsPaid(ctx context.Context, billID, method string, paidDate *time.Time) (*Bill, error) {
	return s.Mutate(ctx, billID, func(b *Bill) error {
		b.Status = StatusPaid
		if method != "" {
			b.PaymentMethod = method
		}
		when := s.Now()
		if paidDate != nil {
			when = *paidDate
		}
		b.PaidDate = &when
		return nil
	})
}

// Stats is the fixed-shape bill aggregate.
type Stats struct {
	TotalBills        int         `json:"totalBills"`
	TotalAmount       types.Money `json:"totalAmount"`
	PaidAmount        types.Money `json:"paidAmount"`
	PendingAmount     types.Money `json:"pendingAmount"`
	AverageBillAmount types.Money `json:"averageBillAmount"`

	BillsByStatus        map[string]int `json:"billsByStatus"`
	BillsByCategory      map[string]int `json:"billsByCategory"`
	BillsByPaymentMethod map[string]int `json:"billsByPaymentMethod"`
}

// Stats computes the bill aggregate in one pass. Read-only; an empty
// collection yields zeroed totals, never a division error.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	bills, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalBills:           len(bills),
		TotalAmount:          types.Zero(),
		PaidAmount:           types.Zero(),
		PendingAmount:        types.Zero(),
		BillsByStatus:        make(map[string]int),
		BillsByCategory:      make(map[string]int),
		BillsByPaymentMethod: make(map[string]int),
	}
	for _, b := range bills {
		stats.TotalAmount = stats.TotalAmount.Add(b.Amount)
		stats.BillsByStatus[string(b.Status)]++
		if b.Category != "" {
			stats.BillsByCategory[b.Category]++
		}
		if b.PaymentMethod != "" {
			stats.BillsByPaymentMethod[b.PaymentMethod]++
		}
		switch b.Status {
		case StatusPaid:
			stats.PaidAmount = stats.PaidAmount.Add(b.Amount)
		case StatusPending, StatusOverdue:
			stats.PendingAmount = stats.PendingAmount.Add(b.Amount)
		}
	}
	stats.AverageBillAmount = types.Average(stats.TotalAmount, stats.TotalBills)
	return stats, nil
}
