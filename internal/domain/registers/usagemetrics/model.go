// Package usagemetrics records per-client usage samples.
package usagemetrics

import (
	"context"
	"time"

	"kontora/internal/core/apperror"
	"kontora/internal/core/entity"
	"kontora/internal/domain"
	"kontora/internal/domain/filter"
	"kontora/internal/storage/kv"
)

const CollectionPrefix = "usage_metrics"

// Metric is one usage sample for a client.
type Metric struct {
	entity.Base

	ClientID string    `json:"clientId"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Period   time.Time `json:"period"`
}

func (m *Metric) Validate(ctx context.Context) error {
	if m.ClientID == "" {
		return apperror.NewValidation("client id is required").
			WithDetail("field", "clientId")
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

// Service provides access to the usage metrics register.
type Service struct {
	*domain.Service[*Metric]
}

func NewService(store kv.Store, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Metric]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "usage metric",
		New:        func() *Metric { return &Metric{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base}
}

// ByClient lists metrics recorded for the client.
func (s *Service) ByClient(ctx context.Context, clientID string) ([]*Metric, error) {
	all, err := s.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]*Metric, 0)
	for _, m := range all {
		if m.ClientID == clientID {
			matched = append(matched, m)
		}
	}
	return matched, nil
}
