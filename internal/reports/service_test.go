package reports

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/billing"
)

type countingSource struct {
	calls int
	agg   billing.PeriodAggregate
	due   []billing.Invoice
}

func (c *countingSource) AggregatePeriod(_ context.Context, periodKey string, _ billing.Granularity) (billing.PeriodAggregate, error) {
	c.calls++
	agg := c.agg
	agg.PeriodKey = periodKey
	return agg, nil
}

func (c *countingSource) ListDue(context.Context) ([]billing.Invoice, error) {
	return c.due, nil
}

func testService(t *testing.T) (*Service, *countingSource) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	source := &countingSource{agg: billing.PeriodAggregate{InvoiceCount: 3, TotalBill: 4500, PaidAmount: 4000, DueAmount: 500}}
	return NewService(source, NewCache(client, time.Minute)), source
}

func TestSummaryCaches(t *testing.T) {
	svc, source := testService(t)
	ctx := context.Background()

	first, err := svc.Summary(ctx, "2026-03-10", billing.GranularityDay)
	require.NoError(t, err)
	require.Equal(t, 3, first.InvoiceCount)
	require.Equal(t, 1, source.calls)

	second, err := svc.Summary(ctx, "2026-03-10", billing.GranularityDay)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, source.calls, "second read must come from cache")
}

func TestSummaryKeysByGranularity(t *testing.T) {
	svc, source := testService(t)
	ctx := context.Background()

	_, err := svc.Summary(ctx, "2026-03", billing.GranularityMonth)
	require.NoError(t, err)
	_, err = svc.Summary(ctx, "2026", billing.GranularityYear)
	require.NoError(t, err)
	require.Equal(t, 2, source.calls)
}

func TestInvalidateForcesRecompute(t *testing.T) {
	svc, source := testService(t)
	ctx := context.Background()

	_, err := svc.Summary(ctx, "2026-03-10", billing.GranularityDay)
	require.NoError(t, err)
	require.NoError(t, svc.Invalidate(ctx))

	_, err = svc.Summary(ctx, "2026-03-10", billing.GranularityDay)
	require.NoError(t, err)
	require.Equal(t, 2, source.calls, "invalidate must orphan the cached value")
}

func TestDueListPassesThrough(t *testing.T) {
	svc, source := testService(t)
	source.due = []billing.Invoice{{Number: "LAB-2026-03-10-001", DueAmount: 500}}

	invoices, err := svc.DueList(context.Background())
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	require.Equal(t, "LAB-2026-03-10-001", invoices[0].Number)
}
