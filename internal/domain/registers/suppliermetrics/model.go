// Package suppliermetrics records per-supplier performance samples.
package suppliermetrics

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

const CollectionPrefix = "supplier_metrics"

// Metric is one performance sample for a supplier.
type Metric struct {
	entity.Base

	SupplierID string    `json:"supplierId"`
	Name       string    `json:"name"`
	Value      float64   `json:"value"`
	Period     time.Time `json:"period"`
}

func (m *Metric) Validate(ctx context.Context) error {
	if m.SupplierID == "" {
		return apperror.NewValidation("supplier id is required").
			WithDetail("field", "supplierId")
	}
	if m.Name == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	return nil
}

func (m *Metric) FilterTarget() filter.Target {
	return filter.Target{
		Text: []string{m.Name},
		Date: m.Period,
	}
}

// Service provides access to the supplier metrics register.
type Service struct {
	*domain.Service[*Metric]
}

func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Metric]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "supplier metric",
		New:        func() *Metric { return &Metric{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// BySupplier lists metrics recorded for the supplier.
func (s *Service) BySupplier(ctx context.Context, supplierID string) ([]*Metric, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Metric, 0)
	for _, m := range all {
		if m.SupplierID == supplierID {
			matched = append(matched, m)
		}
	}
	return matched, nil
}
