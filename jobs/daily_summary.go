package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/nidaan-his/nidaan-his/internal/billing"
	"github.com/nidaan-his/nidaan-his/internal/reports"
)

// ReportDeps carries what the report tasks need.
type ReportDeps struct {
	Reports *reports.Service
	Logger  *slog.Logger
	Now     func() time.Time
}

func (d ReportDeps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now().UTC()
}

// NewDailySummaryHandler computes one day's takings and logs the result.
// The summary also lands in the report cache, so the morning's first
// dashboard hit is already warm.
func NewDailySummaryHandler(deps ReportDeps) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var payload DailySummaryPayload
		if len(t.Payload()) > 0 {
			if err := json.Unmarshal(t.Payload(), &payload); err != nil {
				return asynq.SkipRetry
			}
		}
		day := payload.Day
		if day == "" {
			day = deps.now().AddDate(0, 0, -1).Format("2006-01-02")
		}

		agg, err := deps.Reports.Summary(ctx, day, billing.GranularityDay)
		if err != nil {
			return err
		}
		deps.Logger.Info("daily summary",
			slog.String("day", day),
			slog.Int("invoices", agg.InvoiceCount),
			slog.Int("returns", agg.ReturnCount),
			slog.Float64("total_bill", agg.TotalBill),
			slog.Float64("collected", agg.PaidAmount),
			slog.Float64("outstanding", agg.DueAmount),
		)
		return nil
	}
}

// NewCacheWarmupHandler refreshes today's and this month's summaries.
func NewCacheWarmupHandler(deps ReportDeps) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		now := deps.now()
		if _, err := deps.Reports.Summary(ctx, now.Format("2006-01-02"), billing.GranularityDay); err != nil {
			return err
		}
		if _, err := deps.Reports.Summary(ctx, now.Format("2006-01"), billing.GranularityMonth); err != nil {
			return err
		}
		deps.Logger.Info("report cache warmed", slog.String("day", now.Format("2006-01-02")))
		return nil
	}
}
