package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/core/apperror"
	"kontora/internal/core/id"
	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/documents/contract"
	"kontora/internal/domain/documents/payment"
	"kontora/internal/domain/relations"
	"kontora/internal/storage/kv"
)

func testOptions(prefix string) domain.Options {
	return domain.Options{IDs: &id.Sequence{Prefix: prefix}}
}

func TestDeleteCascadesOverChildren(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()

	clients := client.NewService(store, relations.NewManager(store), testOptions("client"))
	contracts := contract.NewService(store, testOptions("contract"))
	payments := payment.NewService(store, testOptions("payment"))

	acme := client.New("Acme", client.StatusActive)
	require.NoError(t, clients.Create(ctx, acme))

	c1 := &contract.Contract{
		ClientID:  acme.ID,
		Title:     "C1",
		Value:     types.MustMoney("1000"),
		Status:    contract.StatusActive,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, contracts.Create(ctx, c1))

	p1 := &payment.Payment{
		ClientID: acme.ID,
		Amount:   types.MustMoney("250"),
		Status:   payment.StatusCompleted,
		Date:     time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, payments.Create(ctx, p1))

	// A contract owned by another client must survive the cascade.
	other := client.New("Globex", client.StatusActive)
	require.NoError(t, clients.Create(ctx, other))
	c2 := &contract.Contract{
		ClientID:  other.ID,
		Title:     "C2",
		Value:     types.MustMoney("500"),
		Status:    contract.StatusDraft,
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, contracts.Create(ctx, c2))

	require.NoError(t, clients.Delete(ctx, acme.ID))

	got, err := clients.Get(ctx, acme.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	orphans, err := contracts.ByClient(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, orphans)

	remaining, err := payments.ByClient(ctx, acme.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	kept, err := contracts.ByClient(ctx, other.ID)
	require.NoError(t, err)
	assert.Len(t, kept, 1)
}

func TestDeleteAbsentClientFails(t *testing.T) {
	store := kv.NewMemory()
	clients := client.NewService(store, relations.NewManager(store), testOptions("client"))

	err := clients.Delete(context.Background(), "missing")
	assert.True(t, apperror.IsNotFound(err))
}

func TestStats(t *testing.T) {
	store := kv.NewMemory()
	ctx := context.Background()
	clients := client.NewService(store, relations.NewManager(store), testOptions("client"))

	require.NoError(t, clients.Create(ctx, client.New("a", client.StatusActive)))
	require.NoError(t, clients.Create(ctx, client.New("b", client.StatusActive)))
	require.NoError(t, clients.Create(ctx, client.New("c", client.StatusPending)))

	stats, err := clients.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, 2, stats.ActiveClients)

	sum := 0
	for _, n := range stats.ClientsByStatus {
		sum += n
	}
	assert.Equal(t, stats.TotalClients, sum)
}
