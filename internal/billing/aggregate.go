package billing

import (
	"time"

	"github.com/nidaan-his/nidaan-his/internal/money"
)

// Granularity selects the window width for a period aggregate.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// PeriodAggregate sums cash figures for one reporting window. It is a pure
// computation over the invoice collection, never stored.
type PeriodAggregate struct {
	PeriodKey     string  `json:"period_key"`
	InvoiceCount  int     `json:"invoice_count"`
	ReturnCount   int     `json:"return_count"`
	TotalBill     float64 `json:"total_bill"`
	TotalDiscount float64 `json:"total_discount"`
	NetPayable    float64 `json:"net_payable"`
	PaidAmount    float64 `json:"paid_amount"`
	DueAmount     float64 `json:"due_amount"`
}

// PeriodKey formats a time into the aggregate key for the granularity:
// "2026-09-01", "2026-09" or "2026".
func PeriodKey(t time.Time, g Granularity) string {
	switch g {
	case GranularityMonth:
		return t.Format("2006-01")
	case GranularityYear:
		return t.Format("2006")
	default:
		return t.Format("2006-01-02")
	}
}

// Aggregate sums billing figures for the period. Invoices billed in the
// period contribute their full amounts regardless of a later return; an
// invoice returned in the period has its paid amount subtracted, modelling
// cash leaving the till on the refund day rather than the billing day. The
// billing-date and return-date matches are independent, so a same-period
// bill-and-refund nets to zero collected cash while a cross-period refund
// reduces only the refund period. Cancelled invoices never contribute.
func Aggregate(invoices []Invoice, periodKey string, g Granularity) PeriodAggregate {
	agg := PeriodAggregate{PeriodKey: periodKey}
	for _, inv := range invoices {
		if inv.Status == StatusCancelled {
			continue
		}
		if PeriodKey(inv.InvoiceDate, g) == periodKey {
			agg.InvoiceCount++
			agg.TotalBill += inv.TotalAmount
			agg.TotalDiscount += inv.TotalAmount - inv.NetPayable
			agg.NetPayable += inv.NetPayable
			agg.PaidAmount += inv.PaidAmount
			agg.DueAmount += inv.DueAmount
		}
		if inv.Status == StatusReturned && inv.ReturnDate != nil && PeriodKey(*inv.ReturnDate, g) == periodKey {
			agg.ReturnCount++
			agg.PaidAmount -= inv.PaidAmount
		}
	}
	agg.TotalBill = money.Round(agg.TotalBill)
	agg.TotalDiscount = money.Round(agg.TotalDiscount)
	agg.NetPayable = money.Round(agg.NetPayable)
	agg.PaidAmount = money.Round(agg.PaidAmount)
	agg.DueAmount = money.Round(agg.DueAmount)
	return agg
}
