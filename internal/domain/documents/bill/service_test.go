package bill_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kontora/internal/core/id"
	"kontora/internal/core/types"
	"kontora/internal/domain"
	"kontora/internal/domain/documents/bill"
	"kontora/internal/storage/kv"
)

func newBillService() *bill.Service {
	return bill.NewService(kv.NewMemory(), domain.Options{IDs: &id.Sequence{Prefix: "bill"}})
}

func newBill(title, amount string, status bill.Status) *bill.Bill {
	return &bill.Bill{
		Title:   title,
		Amount:  types.MustMoney(amount),
		Status:  status,
		DueDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestStatsEmptyCollection(t *testing.T) {
	svc := newBillService()

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)

	assert.Zero(t, stats.TotalBills)
	assert.True(t, stats.TotalAmount.IsZero())
	assert.True(t, stats.AverageBillAmount.IsZero())
	assert.Empty(t, stats.BillsByStatus)
}

func TestStatsSums(t *testing.T) {
	svc := newBillService()
	ctx := context.Background()

	require.NoError(t, svc.Create(ctx, newBill("rent", "1000", bill.StatusPaid)))
	require.NoError(t, svc.Create(ctx, newBill("power", "200", bill.StatusPending)))
	require.NoError(t, svc.Create(ctx, newBill("water", "100", bill.StatusOverdue)))
	require.NoError(t, svc.Create(ctx, newBill("old", "50", bill.StatusCancelled)))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalBills)
	assert.True(t, stats.TotalAmount.Equal(types.MustMoney("1350")))
	assert.True(t, stats.PaidAmount.Equal(types.MustMoney("1000")))
	assert.True(t, stats.PendingAmount.Equal(types.MustMoney("300")),
		"pending covers pending and overdue, not cancelled")
	assert.True(t, stats.AverageBillAmount.Equal(types.MustMoney("337.5")))

	sum := 0
	for _, n := range stats.BillsByStatus {
		sum += n
	}
	assert.Equal(t, stats.TotalBills, sum)
}

func TestMarkAsPaid(t *testing.T) {
	svc := newBillService()
	ctx := context.Background()

	b := newBill("rent", "1000", bill.StatusPending)
	require.NoError(t, svc.Create(ctx, b))

	paid, err := svc.MarkAsPaid(ctx, b.ID, "card", nil)
	require.NoError(t, err)

	assert.Equal(t, bill.StatusPaid, paid.Status)
	assert.Equal(t, "card", paid.PaymentMethod)
	require.NotNil(t, paid.PaidDate)

	stored, err := svc.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, bill.StatusPaid, stored.Status)
}

func TestMarkAsPaidExplicitDate(t *testing.T) {
	svc := newBillService()
	ctx := context.Background()

	b := newBill("rent", "1000", bill.StatusPending)
	require.NoError(t, svc.Create(ctx, b))

	when := time.Date(2026, 3, 31, 12, 0, 0, 0, time.UTC)
	paid, err := svc.MarkAsPaid(ctx, b.ID, "", &when)
	require.NoError(t, err)

	require.NotNil(t, paid.PaidDate)
	assert.True(t, when.Equal(*paid.PaidDate))
}

func TestCreateRejectsNegativeAmount(t *testing.T) {
	svc := newBillService()

	b := newBill("bad", "0", bill.StatusPending)
	b.Amount = types.MustMoney("-1")
	assert.Error(t, svc.Create(context.Background(), b))
}
