package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/reports"
)

type recordingSource struct {
	keys []string
}

func (r *recordingSource) AggregatePeriod(_ context.Context, periodKey string, _ billing.Granularity) (billing.PeriodAggregate, error) {
	r.keys = append(r.keys, periodKey)
	return billing.PeriodAggregate{PeriodKey: periodKey, InvoiceCount: 1}, nil
}

func (r *recordingSource) ListDue(context.Context) ([]billing.Invoice, error) {
	return nil, nil
}

func testDeps(t *testing.T) (ReportDeps, *recordingSource) {
	t.Helper()
	source := &recordingSource{}
	svc := reports.NewService(source, reports.NewCache(nil, 0))
	now := time.Date(2026, 3, 11, 0, 10, 0, 0, time.UTC)
	return ReportDeps{
		Reports: svc,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		Now:     func() time.Time { return now },
	}, source
}

func TestDailySummaryDefaultsToYesterday(t *testing.T) {
	deps, source := testDeps(t)
	handler := NewDailySummaryHandler(deps)

	task, err := NewDailySummaryTask(DailySummaryPayload{})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, []string{"2026-03-10"}, source.keys)
}

func TestDailySummaryExplicitDay(t *testing.T) {
	deps, source := testDeps(t)
	handler := NewDailySummaryHandler(deps)

	task, err := NewDailySummaryTask(DailySummaryPayload{Day: "2026-02-28"})
	require.NoError(t, err)
	require.NoError(t, handler(context.Background(), task))
	require.Equal(t, []string{"2026-02-28"}, source.keys)
}

func TestDailySummaryBadPayloadSkipsRetry(t *testing.T) {
	deps, _ := testDeps(t)
	handler := NewDailySummaryHandler(deps)

	err := handler(context.Background(), asynq.NewTask(TaskDailySummary, []byte("{bad")))
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestCacheWarmupHitsDayAndMonth(t *testing.T) {
	deps, source := testDeps(t)
	handler := NewCacheWarmupHandler(deps)

	require.NoError(t, handler(context.Background(), NewCacheWarmupTask()))
	require.Equal(t, []string{"2026-03-11", "2026-03"}, source.keys)
}
