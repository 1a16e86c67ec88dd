package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nidaan-his/nidaan-his/internal/billing"
)

func TestWriteSummaryCSV(t *testing.T) {
	var buf bytes.Buffer
	agg := billing.PeriodAggregate{
		PeriodKey:    "2026-03-10",
		InvoiceCount: 2,
		TotalBill:    1500,
		NetPayable:   1350,
		PaidAmount:   1000,
		DueAmount:    350,
	}
	require.NoError(t, WriteSummaryCSV(&buf, agg))

	out := buf.String()
	require.Contains(t, out, "Period,2026-03-10")
	require.Contains(t, out, "Net Payable,1350.00")
	require.Contains(t, out, "Outstanding,350.00")
}

func TestWriteDueListCSV(t *testing.T) {
	var buf bytes.Buffer
	invoices := []billing.Invoice{
		{Number: "LAB-2026-03-10-001", Category: "LAB", InvoiceDate: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), NetPayable: 990, PaidAmount: 500, DueAmount: 490},
	}
	require.NoError(t, WriteDueListCSV(&buf, invoices))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Number,Date,Category,Net Payable,Paid,Due", lines[0])
	require.Equal(t, "LAB-2026-03-10-001,2026-03-10,LAB,990.00,500.00,490.00", lines[1])
}
