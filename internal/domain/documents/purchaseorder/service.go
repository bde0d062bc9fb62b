package purchaseorder

import (
	"context"

	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/storage/kv"
)

// Service provides business logic for the PurchaseOrder document.
type Service struct {
	*domain.Service[*PurchaseOrder]
}

// NewService creates a new PurchaseOrder service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*PurchaseOrder]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "purchase order",
		New:        func() *PurchaseOrder { return &PurchaseOrder{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// NextNumber suggests the next number in the current year's series.
// Not a reservation: concurrent callers can receive the same value.
func (s *Service) NextNumber(ctx context.Context) (string, error) {
	orders, err := s.All(ctx)
	if err != nil {
		return "", err
	}
	existing := make([]string, 0, len(orders))
	for _, po := range orders {
		existing = append(existing, po.Number)
	}
	return domain.NextNumber(NumberPrefix, s.Now(), existing), nil
}

// BySupplier lists purchase orders referencing the supplier.
func (s *Service) BySupplier(ctx context.Context, supplierID string) ([]*PurchaseOrder, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*PurchaseOrder, 0)
	for _, po := range all {
		if po.SupplierID == supplierID {
			matched = append(matched, po)
		}
	}
	return matched, nil
}

// Stats is the fixed-shape purchase order aggregate.
type Stats struct {
	TotalOrders    int         `json:"totalOrders"`
	TotalAmount    types.Money `json:"totalAmount"`
	OrdersByStatus map[string]int `json:"ordersByStatus"`
}

// Stats computes the purchase order aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	orders, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalOrders:    len(orders),
		TotalAmount:    types.Zero(),
		OrdersByStatus: make(map[string]int),
	}
	for _, po := range orders {
		stats.TotalAmount = stats.TotalAmount.Add(po.Amount)
		stats.OrdersByStatus[string(po.Status)]++
	}
	return stats, nil
}
