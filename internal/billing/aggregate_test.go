package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func postedInvoice(number string, billed time.Time, paid float64) Invoice {
	inv := Invoice{Number: number, Items: sampleItems(), Status: StatusPosted, PaidAmount: paid, InvoiceDate: billed}
	inv.SetDiscountPercent(10)
	return inv
}

func TestPeriodKey(t *testing.T) {
	ts := day(2026, time.September, 1)
	require.Equal(t, "2026-09-01", PeriodKey(ts, GranularityDay))
	require.Equal(t, "2026-09", PeriodKey(ts, GranularityMonth))
	require.Equal(t, "2026", PeriodKey(ts, GranularityYear))
}

func TestAggregateDay(t *testing.T) {
	invoices := []Invoice{
		postedInvoice("LAB-2026-09-01-001", day(2026, time.September, 1), 500),
		postedInvoice("LAB-2026-09-01-002", day(2026, time.September, 1), 990),
		postedInvoice("LAB-2026-09-02-001", day(2026, time.September, 2), 100),
	}
	agg := Aggregate(invoices, "2026-09-01", GranularityDay)
	require.Equal(t, 2, agg.InvoiceCount)
	require.Equal(t, 2200.0, agg.TotalBill)
	require.Equal(t, 220.0, agg.TotalDiscount)
	require.Equal(t, 1980.0, agg.NetPayable)
	require.Equal(t, 1490.0, agg.PaidAmount)
	require.Equal(t, 490.0, agg.DueAmount)
}

func TestAggregateExcludesCancelled(t *testing.T) {
	cancelled := postedInvoice("LAB-2026-09-01-001", day(2026, time.September, 1), 500)
	cancelled.Status = StatusCancelled
	agg := Aggregate([]Invoice{cancelled}, "2026-09-01", GranularityDay)
	require.Equal(t, PeriodAggregate{PeriodKey: "2026-09-01"}, agg)
}

func TestRefundConservation(t *testing.T) {
	// Billed on day 1, 500 collected, refunded on day 3.
	returned := postedInvoice("LAB-2026-09-01-001", day(2026, time.September, 1), 500)
	returnDate := day(2026, time.September, 3)
	returned.Status = StatusReturned
	returned.ReturnDate = &returnDate

	invoices := []Invoice{returned}

	// The billing day keeps the original collection.
	d1 := Aggregate(invoices, "2026-09-01", GranularityDay)
	require.Equal(t, 1, d1.InvoiceCount)
	require.Equal(t, 0, d1.ReturnCount)
	require.Equal(t, 500.0, d1.PaidAmount)

	// The refund day loses exactly that amount.
	d3 := Aggregate(invoices, "2026-09-03", GranularityDay)
	require.Equal(t, 0, d3.InvoiceCount)
	require.Equal(t, 1, d3.ReturnCount)
	require.Equal(t, -500.0, d3.PaidAmount)

	// No other day is affected.
	d2 := Aggregate(invoices, "2026-09-02", GranularityDay)
	require.Equal(t, PeriodAggregate{PeriodKey: "2026-09-02"}, d2)

	// Within the shared month both contributions net out.
	m := Aggregate(invoices, "2026-09", GranularityMonth)
	require.Equal(t, 1, m.InvoiceCount)
	require.Equal(t, 1, m.ReturnCount)
	require.Equal(t, 0.0, m.PaidAmount)
	require.Equal(t, 1100.0, m.TotalBill)
}

func TestAggregateCrossMonthRefund(t *testing.T) {
	returned := postedInvoice("LAB-2026-08-20-001", day(2026, time.August, 20), 990)
	returnDate := day(2026, time.September, 5)
	returned.Status = StatusReturned
	returned.ReturnDate = &returnDate

	fresh := postedInvoice("LAB-2026-09-05-001", day(2026, time.September, 5), 990)

	sept := Aggregate([]Invoice{returned, fresh}, "2026-09", GranularityMonth)
	require.Equal(t, 1, sept.InvoiceCount)
	require.Equal(t, 1, sept.ReturnCount)
	require.Equal(t, 1100.0, sept.TotalBill)
	require.Equal(t, 0.0, sept.PaidAmount, "september's collection is wiped by the august refund")

	aug := Aggregate([]Invoice{returned, fresh}, "2026-08", GranularityMonth)
	require.Equal(t, 990.0, aug.PaidAmount)
}

func TestAggregateYear(t *testing.T) {
	invoices := []Invoice{
		postedInvoice("LAB-2026-01-15-001", day(2026, time.January, 15), 990),
		postedInvoice("LAB-2026-12-31-001", day(2026, time.December, 31), 0),
	}
	agg := Aggregate(invoices, "2026", GranularityYear)
	require.Equal(t, 2, agg.InvoiceCount)
	require.Equal(t, 990.0, agg.PaidAmount)
	require.Equal(t, 990.0, agg.DueAmount)
}
