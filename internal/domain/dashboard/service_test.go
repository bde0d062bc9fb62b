package dashboard_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/core/id"
	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/domain/catalogs/client"
	"kontora/internal/domain/catalogs/supplier"
	"kontora/internal/domain/dashboard"
	"kontora/internal/domain/documents/contract"
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/domain/documents/payment"
	"kontora/internal/domain/documents/purchaseorder"
	"kontora/internal/domain/documents/supplierpayment"
	"kontora/internal/domain/relations"
	"kontora/internal/storage/kv"
)

type fixture struct {
	clients   *client.Service
	suppliers *supplier.Service
	contracts *contract.Service
	payments  *payment.Service
	invoices  *invoice.Service
	orders    *purchaseorder.Service
	payouts   *supplierpayment.Service
	dash      *dashboard.Service
}

func newFixture() *fixture {
	store := kv.NewMemory()
	rel := relations.NewManager(store)
	opts := func(prefix string) domain.Options {
		return domain.Options{IDs: &id.Sequence{Prefix: prefix}}
	}

	f := &fixture{
		clients:   client.NewService(store, rel, opts("client")),
		suppliers: supplier.NewService(store, rel, opts("supplier")),
		contracts: contract.NewService(store, opts("contract")),
		payments:  payment.NewService(store, opts("payment")),
		invoices:  invoice.NewService(store, opts("invoice")),
		orders:    purchaseorder.NewService(store, opts("po")),
		payouts:   supplierpayment.NewService(store, opts("payout")),
	}
	f.dash = dashboard.NewService(dashboard.Config{
		Clients:          f.clients,
		Suppliers:        f.suppliers,
		Contracts:        f.contracts,
		Payments:         f.payments,
		Invoices:         f.invoices,
		PurchaseOrders:   f.orders,
		SupplierPayments: f.payouts,
	})
	return f
}

func TestClientDashboardEmptyCollections(t *testing.T) {
	f := newFixture()

	d, err := f.dash.ClientDashboard(context.Background())
	require.NoError(t, err)

	assert.Zero(t, d.TotalClients)
	assert.Zero(t, d.TotalContracts)
	assert.True(t, d.TotalRevenue.IsZero())
	assert.Empty(t, d.RecentActivity)
}

func TestClientDashboardAggregates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	acme := client.New("Acme", client.StatusActive)
	require.NoError(t, f.clients.Create(ctx, acme))
	require.NoError(t, f.clients.Create(ctx, client.New("Globex", client.StatusInactive)))

	require.NoError(t, f.contracts.Create(ctx, &contract.Contract{
		ClientID: acme.ID, Title: "C1", Value: types.MustMoney("1000"),
		Status: contract.StatusActive, StartDate: date,
	}))

	require.NoError(t, f.payments.Create(ctx, &payment.Payment{
		ClientID: acme.ID, Amount: types.MustMoney("300"),
		Status: payment.StatusCompleted, Date: date,
	}))
	require.NoError(t, f.payments.Create(ctx, &payment.Payment{
		ClientID: acme.ID, Amount: types.MustMoney("200"),
		Status: payment.StatusPending, Date: date,
	}))

	d, err := f.dash.ClientDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, d.TotalClients)
	assert.Equal(t, 1, d.ActiveClients)
	assert.Equal(t, 1, d.ActiveContracts)
	assert.True(t, d.TotalRevenue.Equal(types.MustMoney("500")))
	assert.True(t, d.CompletedRevenue.Equal(types.MustMoney("300")))
	assert.Len(t, d.RecentActivity, 5)
}

func TestRecentActivityCapped(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 0; i < dashboard.RecentActivityLimit+5; i++ {
		require.NoError(t, f.clients.Create(ctx, client.New(fmt.Sprintf("c%d", i), client.StatusActive)))
	}

	d, err := f.dash.ClientDashboard(ctx)
	require.NoError(t, err)

	require.Len(t, d.RecentActivity, dashboard.RecentActivityLimit)
	for i := 1; i < len(d.RecentActivity); i++ {
		assert.False(t, d.RecentActivity[i].Timestamp.After(d.RecentActivity[i-1].Timestamp),
			"feed is newest first")
	}
}

func TestSupplierDashboardAggregates(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	sup := &supplier.Supplier{Name: "Initech", Status: supplier.StatusActive}
	require.NoError(t, f.suppliers.Create(ctx, sup))

	require.NoError(t, f.orders.Create(ctx, &purchaseorder.PurchaseOrder{
		Number: "PO-2026-0001", SupplierID: sup.ID, Amount: types.MustMoney("400"),
		Status: purchaseorder.StatusSent, OrderDate: date,
	}))
	require.NoError(t, f.invoices.Create(ctx, &invoice.Invoice{
		Number: "INV-2026-0001", SupplierID: sup.ID, Amount: types.MustMoney("400"),
		Status: invoice.StatusPending, IssueDate: date, DueDate: date.AddDate(0, 1, 0),
	}))
	require.NoError(t, f.payouts.Create(ctx, &supplierpayment.SupplierPayment{
		SupplierID: sup.ID, Amount: types.MustMoney("150"),
		Status: supplierpayment.StatusCompleted, Date: date,
	}))

	d, err := f.dash.SupplierDashboard(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, d.TotalSuppliers)
	assert.Equal(t, 1, d.ActiveSuppliers)
	assert.Equal(t, 1, d.OpenPurchaseOrders)
	assert.Equal(t, 1, d.UnpaidInvoices)
	assert.True(t, d.TotalPayable.Equal(types.MustMoney("400")))
	assert.True(t, d.TotalPaidOut.Equal(types.MustMoney("150")))
	assert.Len(t, d.RecentActivity, 4)
}
