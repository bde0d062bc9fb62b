package invoice

import (
	"context"
	"time"

	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/storage/kv"
)

// Service provides business logic for the Invoice document.
type Service struct {
	*domain.Service[*Invoice]
}

// NewService creates a new Invoice service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Invoice]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "invoice",
		New:        func() *Invoice { return &Invoice{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// NextNumber suggests the next number in the current year's series.
// Not a reservation: concurrent callers can receive the same value.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	invoices, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	existing := make([]string, 0, len(invoices))
	for _, inv := range invoices {
		existing = append(existing, inv.Number)
	}
	return domain.NextNumber(NumberPrefix, s.Now(), existing), nil
}

// BySupplier lists invoices referencing the supplier.
func (s *Service) BySupplier(ctx context.Context, supplierID string) ([]*Invoice, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Invoice, 0)
	for _, inv := range all {
		if inv.SupplierID == supplierID {
			matched = append(matched, inv)
		}
	}
	return matched, nil
}

// MarkAsPaid transitions the invoice to paid. A nil paidDate defaults
// to the service clock.
func (s *Service) MarkAsPaid(ctx context.Context, invoiceID, method string, paidDate *time.Time) (*Invoice, error) {
	return s.Mutate(ctx, invoiceID, func(inv *Invoice) error {
		inv.Status = StatusPaid
		if method != "" {
			inv.PaymentMethod = method
		}
		when := s.Now()
		if paidDate != nil {
			when = *paidDate
		}
		inv.PaidDate = &when
		return nil
	})
}

// Stats is the fixed-shape invoice aggregate.
type Stats struct {
	TotalInvoices        int         `json:"totalInvoices"`
	TotalAmount          types.Money `json:"totalAmount"`
	PaidAmount           types.Money `json:"paidAmount"`
	PendingAmount        types.Money `json:"pendingAmount"`
	AverageInvoiceAmount types.Money `json:"averageInvoiceAmount"`

	InvoicesByStatus   map[string]int `json:"invoicesByStatus"`
	InvoicesByCategory map[string]int `json:"invoicesByCategory"`
}

// Stats computes the invoice aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	invoices, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalInvoices:      len(invoices),
		TotalAmount:        types.Zero(),
		PaidAmount:         types.Zero(),
		PendingAmount:      types.Zero(),
		InvoicesByStatus:   make(map[string]int),
		InvoicesByCategory: make(map[string]int),
	}
	for _, inv := range invoices {
		stats.TotalAmount = stats.TotalAmount.Add(inv.Amount)
		stats.InvoicesByStatus[string(inv.Status)]++
		if inv.Category != "" {
			stats.InvoicesByCategory[inv.Category]++
		}
		switch inv.Status {
		case StatusPaid:
			stats.PaidAmount = stats.PaidAmount.Add(inv.Amount)
		case StatusPending, StatusOverdue:
			stats.PendingAmount = stats.PendingAmount.Add(inv.Amount)
		}
	}
	stats.AverageInvoiceAmount = types.Average(stats.TotalAmount, stats.TotalInvoices)
	return stats, nil
}
