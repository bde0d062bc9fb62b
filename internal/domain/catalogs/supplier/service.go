package supplier

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/domain"
	"kontora/internal/domain/relations"
	"kontora/internal/storage/kv"
)

// ChildRelations declares the collections owned by a supplier.
var ChildRelations = []relations.Child{
	{Prefix: "purchase_orders", ForeignKey: "supplierId"},
	{Prefix: "invoices", ForeignKey: "supplierId"},
	{Prefix: "supplier_payments", ForeignKey: "supplierId"},
	{Prefix: "supplier_metrics", ForeignKey: "supplierId"},
}

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.Service[*Supplier]
	relations *relations.Manager
}

// NewService creates a new Supplier service.
func NewService(store kv.Store, rel *relations.Manager, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Supplier]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "supplier",
		New:        func() *Supplier { return &Supplier{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base, relations: rel}
}

// Delete removes the supplier and cascades over every child collection
// referencing it. Same best-effort semantics as the client cascade.
func (s *Service) Delete(ctx context.Context, supplierID string) error {
	existing, err := s.Get(ctx, supplierID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFound("supplier", supplierID)
	}
	return s.relations.CascadeDelete(ctx, CollectionPrefix, supplierID, ChildRelations)
}

// Stats is the fixed-shape supplier aggregate.
type Stats struct {
	TotalSuppliers      int            `json:"totalSuppliers"`
	ActiveSuppliers     int            `json:"activeSuppliers"`
	SuppliersByStatus   map[string]int `json:"suppliersByStatus"`
	SuppliersByCategory map[string]int `json:"suppliersByCategory"`
	AverageRating       float64        `json:"averageRating"`
}

// Stats computes the supplier aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	suppliers, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalSuppliers:      len(suppliers),
		SuppliersByStatus:   make(map[string]int),
		SuppliersByCategory: make(map[string]int),
	}

	ratingSum := 0
	for _, sp := range suppliers {
		stats.SuppliersByStatus[string(sp.Status)]++
		if sp.Category != "" {
			stats.SuppliersByCategory[sp.Category]++
		}
		if sp.Status == StatusActive {
			stats.ActiveSuppliers++
		}
		ratingSum += sp.Rating
	}
	if len(suppliers) > 0 {
		stats.AverageRating = float64(ratingSum) / float64(len(suppliers))
	}
	return stats, nil
}
