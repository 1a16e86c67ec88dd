// Package export serialises report data for download.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/nidaan-his/nidaan-his/internal/billing"
)

// WriteSummaryCSV serialises one period aggregate as metric rows.
func WriteSummaryCSV(w io.Writer, agg billing.PeriodAggregate) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Metric", "Value"}); err != nil {
		return err
	}
	records := [][]string{
		{"Period", agg.PeriodKey},
		{"Invoices", strconv.Itoa(agg.InvoiceCount)},
		{"Returns", strconv.Itoa(agg.ReturnCount)},
		{"Total Bill", formatFloat(agg.TotalBill)},
		{"Total Discount", formatFloat(agg.TotalDiscount)},
		{"Net Payable", formatFloat(agg.NetPayable)},
		{"Collected", formatFloat(agg.PaidAmount)},
		{"Outstanding", formatFloat(agg.DueAmount)},
	}
	for _, record := range records {
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteDueListCSV emits one row per invoice with an open balance.
func WriteDueListCSV(w io.Writer, invoices []billing.Invoice) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write([]string{"Number", "Date", "Category", "Net Payable", "Paid", "Due"}); err != nil {
		return err
	}
	for _, inv := range invoices {
		if err := writer.Write([]string{
			inv.Number,
			inv.InvoiceDate.Format("2006-01-02"),
			inv.Category,
			formatFloat(inv.NetPayable),
			formatFloat(inv.PaidAmount),
			formatFloat(inv.DueAmount),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
