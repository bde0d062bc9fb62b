package client

import (
	"context"

	"kontora/internal/core/apperror"
	"kontora/internal/domain"
	"kontora/internal/domain/relations"
	"kontora/internal/storage/kv"
)

// ChildRelations declares the collections owned by a client.
// Kept in one place so the cascade and the dashboards agree.
var ChildRelations = []relations.Child{
	{Prefix: "contracts", ForeignKey: "clientId"},
	{Prefix: "payments", ForeignKey: "clientId"},
	{Prefix: "usage_metrics", ForeignKey: "clientId"},
	{Prefix: "notifications", ForeignKey: "clientId"},
}

// Service provides business logic for the Client catalog.
// Uses composition with domain.Service for common CRUD operations.
type Service struct {
	*domain.Service[*Client]
	relations *relations.Manager
}

// NewService creates a new Client service.
func NewService(store kv.Store, rel *relations.Manager, opts domain.Options) *Service {
	base := domain.NewService(domain.Config[*Client]{
		Store:      store,
		Prefix:     CollectionPrefix,
		EntityName: "client",
		New:        func() *Client { return &Client{} },
		IDs:        opts.IDs,
		Now:        opts.Now,
	})
	return &Service{Service: base, relations: rel}
}

// Delete removes the client and cascades over every child collection
// referencing it. Best-effort: the store offers no multi-key
// transaction, so an interruption can leave orphaned children.
func (s *Service) Delete(ctx context.Context, clientID string) error {
	existing, err := s.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if existing == nil {
		return apperror.NewNotFound("client", clientID)
	}
	return s.relations.CascadeDelete(ctx, CollectionPrefix, clientID, ChildRelations)
}

// Stats is the fixed-shape client aggregate.
type Stats struct {
	TotalClients    int            `json:"totalClients"`
	ActiveClients   int            `json:"activeClients"`
	ClientsByStatus map[string]int `json:"clientsByStatus"`
}

// Stats computes the client aggregate in one pass. Read-only.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	clients, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalClients:    len(clients),
		ClientsByStatus: make(map[string]int),
	}
	for _, c := range clients {
		stats.ClientsByStatus[string(c.Status)]++
		if c.Status == StatusActive {
			stats.ActiveClients++
		}
	}
	return stats, nil
}
