package invoice_test

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
	"kontora/internal/domain/documents/invoice"
	"kontora/internal/storage/kv"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func newInvoiceService(now time.Time) *invoice.Service {
	return invoice.NewService(kv.NewMemory(), domain.Options{
		IDs: &id.Sequence{Prefix: "inv"},
		Now: fixedClock(now),
	})
}

func TestNextNumberStartsSeries(t *testing.T) {
	svc := newInvoiceService(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	number, err := svc.NextNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0001", number)
}

func TestNextNumberCountsCurrentYearOnly(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := newInvoiceService(now)
	ctx := context.Background()

	for i, number := range []string{"INV-2026-0001", "INV-2026-0002", "INV-2025-0007"} {
		inv := &invoice.Invoice{
			Number:     number,
			SupplierID: fmt.Sprintf("supplier-%d", i),
			Amount:     types.MustMoney("10"),
			Status:     invoice.StatusPending,
			IssueDate:  now,
			DueDate:    now.AddDate(0, 1, 0),
		}
		require.NoError(t, svc.Create(ctx, inv))
	}

	number, err := svc.NextNumber(ctx)
	require.NoError(t, err)
	assert.Equal(t, "INV-2026-0003", number)
}

func TestBySupplier(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := newInvoiceService(now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		supplierID := "supplier-a"
		if i == 2 {
			supplierID = "supplier-b"
		}
		inv := &invoice.Invoice{
			Number:     fmt.Sprintf("INV-2026-%04d", i+1),
			SupplierID: supplierID,
			Amount:     types.MustMoney("10"),
			Status:     invoice.StatusPending,
			IssueDate:  now,
			DueDate:    now,
		}
		require.NoError(t, svc.Create(ctx, inv))
	}

	matched, err := svc.BySupplier(ctx, "supplier-a")
	require.NoError(t, err)
	assert.Len(t, matched, 2)
}

func TestStatsBreakdownSumsToTotal(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	svc := newInvoiceService(now)
	ctx := context.Background()

	statuses := []invoice.Status{invoice.StatusPaid, invoice.StatusPending, invoice.StatusPending}
	for i, status := range statuses {
		inv := &invoice.Invoice{
			Number:     fmt.Sprintf("INV-2026-%04d", i+1),
			SupplierID: "supplier-a",
			Amount:     types.MustMoney("100"),
			Status:     status,
			IssueDate:  now,
			DueDate:    now,
		}
		require.NoError(t, svc.Create(ctx, inv))
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalInvoices)
	assert.True(t, stats.PaidAmount.Equal(types.MustMoney("100")))
	assert.True(t, stats.PendingAmount.Equal(types.MustMoney("200")))

	sum := 0
	for _, n := range stats.InvoicesByStatus {
		sum += n
	}
	assert.Equal(t, stats.TotalInvoices, sum)
}
