// Package reports serves the collection summaries the clinic reads
// every morning: daily, monthly and yearly takings plus the due list.
package reports

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/nidaan-his/nidaan-his/internal/billing"
)

// BillingSource is the slice of the billing service reports read from.
type BillingSource interface {
	AggregatePeriod(ctx context.Context, periodKey string, g billing.Granularity) (billing.PeriodAggregate, error)
	ListDue(ctx context.Context) ([]billing.Invoice, error)
}

type Service struct {
	source BillingSource
	cache  *Cache
	group  singleflight.Group
}

func NewService(source BillingSource, cache *Cache) *Service {
	return &Service{source: source, cache: cache}
}

// Summary returns the aggregate for one period key. Concurrent requests
// for the same key collapse into a single aggregation pass.
func (s *Service) Summary(ctx context.Context, periodKey string, g billing.Granularity) (billing.PeriodAggregate, error) {
	key, err := s.cache.BuildKey(ctx, "reports", "summary", string(g), periodKey)
	if err != nil {
		return billing.PeriodAggregate{}, err
	}

	result := s.group.DoChan(key, func() (any, error) {
		var agg billing.PeriodAggregate
		err := s.cache.FetchJSON(ctx, key, &agg, func(ctx context.Context) (any, error) {
			return s.source.AggregatePeriod(ctx, periodKey, g)
		})
		return agg, err
	})

	select {
	case <-ctx.Done():
		return billing.PeriodAggregate{}, ctx.Err()
	case res := <-result:
		if res.Err != nil {
			return billing.PeriodAggregate{}, res.Err
		}
		return res.Val.(billing.PeriodAggregate), nil
	}
}

// DueList returns the open balances for the collection desk. Never
// cached: the desk acts on it and staleness costs real money.
func (s *Service) DueList(ctx context.Context) ([]billing.Invoice, error) {
	return s.source.ListDue(ctx)
}

// Invalidate drops every cached summary at once. Day-to-day staleness
// is bounded by the cache TTL; this is for back-dated corrections that
// cannot wait it out.
func (s *Service) Invalidate(ctx context.Context) error {
	return s.cache.Bump(ctx)
}
