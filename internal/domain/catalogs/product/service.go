package product

import (
	"context"

	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/storage/kv"
)

// Service provides business logic for the Product catalog.
type Service struct {
	*domain.Service[*Product]
}

// NewService creates a new Product service.
func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Product]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "product",
		New:        func() *Product { return &Product{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// Stats is the fixed-shape product aggregate.
type Stats struct {
	TotalProducts      int            `json:"totalProducts"`
	ActiveProducts     int            `json:"activeProducts"`
	ProductsByStatus   map[string]int `json:"productsByStatus"`
	ProductsByCategory map[string]int `json:"productsByCategory"`
	AveragePrice       types.Money    `json:"averagePrice"`
}

// Stats computes the product aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	products, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalProducts:      len(products),
		ProductsByStatus:   make(map[string]int),
		ProductsByCategory: make(map[string]int),
	}

	total := types.Zero()
	for _, p := range products {
		stats.ProductsByStatus[string(p.Status)]++
		if p.Category != "" {
			stats.ProductsByCategory[p.Category]++
		}
		if p.Status == StatusActive {
			stats.ActiveProducts++
		}
		total = total.Add(p.Price)
	}
	stats.AveragePrice = types.Average(total, len(products))
	return stats, nil
}
