package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleItems() []LineItem {
	return []LineItem{
		{CatalogCode: "CBC", UnitPrice: 500, Quantity: 1, CommissionRate: 50},
		{CatalogCode: "XRAY", UnitPrice: 300, Quantity: 2, CommissionRate: 20},
	}
}

func TestComputeTotals(t *testing.T) {
	totals := ComputeTotals(sampleItems(), 0, 0)
	require.Equal(t, 1100.0, totals.TotalAmount)
	require.Equal(t, 0.0, totals.TotalDiscount)
	require.Equal(t, 1100.0, totals.PayableBill)
	require.Equal(t, 1100.0, totals.NetPayable)
	require.Equal(t, 1100.0, totals.DueAmount)
	require.Equal(t, 500.0, totals.Items[0].LineTotal)
	require.Equal(t, 600.0, totals.Items[1].LineTotal)
}

func TestComputeTotalsRowDiscounts(t *testing.T) {
	items := []LineItem{
		{UnitPrice: 200, Quantity: 2, RowDiscount: 50},
		{UnitPrice: 100, Quantity: 1, RowDiscount: 500}, // capped at line total
	}
	totals := ComputeTotals(items, 25, 100)
	require.Equal(t, 500.0, totals.TotalAmount)
	require.Equal(t, 150.0, totals.TotalDiscount)
	require.Equal(t, 100.0, totals.Items[1].RowDiscount)
	require.Equal(t, 0.0, totals.Items[1].Payable)
	require.Equal(t, 350.0, totals.PayableBill)
	require.Equal(t, 325.0, totals.NetPayable)
	require.Equal(t, 225.0, totals.DueAmount)
}

func TestComputeTotalsIdempotent(t *testing.T) {
	first := ComputeTotals(sampleItems(), 10, 200)
	second := ComputeTotals(first.Items, 10, 200)
	require.Equal(t, first, second)
}

func TestComputeTotalsForgivingInput(t *testing.T) {
	items := []LineItem{{UnitPrice: -50, Quantity: -2, RowDiscount: -1}}
	totals := ComputeTotals(items, -10, -5)
	require.Equal(t, 0.0, totals.TotalAmount)
	require.Equal(t, 0.0, totals.NetPayable)
	require.Equal(t, 0.0, totals.DueAmount)
}

func TestDueMonotonicity(t *testing.T) {
	base := ComputeTotals(sampleItems(), 0, 300)
	for _, delta := range []float64{1, 50, 123.45, 700} {
		bumped := ComputeTotals(sampleItems(), 0, 300+delta)
		require.InDelta(t, delta, base.DueAmount-bumped.DueAmount, 0.001)
	}
}

func TestInvoiceRecalculateScenario(t *testing.T) {
	inv := &Invoice{Items: sampleItems(), Status: StatusPosted, PaidAmount: 500}
	inv.SetDiscountPercent(10)

	require.Equal(t, 1100.0, inv.TotalAmount)
	require.Equal(t, 110.0, inv.DiscountAmount)
	require.Equal(t, 990.0, inv.NetPayable)
	require.Equal(t, 490.0, inv.DueAmount)
	require.Equal(t, StatusDue, inv.Status)
}

func TestInvoiceDiscountReconciliation(t *testing.T) {
	inv := &Invoice{Items: sampleItems(), Status: StatusDraft}
	inv.SetDiscountAmount(110)
	require.Equal(t, 10.0, inv.DiscountPercent)

	inv.SetDiscountPercent(25)
	require.Equal(t, 275.0, inv.DiscountAmount)
	require.Equal(t, StatusDraft, inv.Status, "draft status is never derived from amounts")
}

func TestDeriveStatus(t *testing.T) {
	require.Equal(t, StatusPaid, DeriveStatus(0))
	require.Equal(t, StatusPaid, DeriveStatus(0.5))
	require.Equal(t, StatusPaid, DeriveStatus(-0.01))
	require.Equal(t, StatusDue, DeriveStatus(0.51))
	require.Equal(t, StatusDue, DeriveStatus(490))
}

func TestRecalculateKeepsTerminalStatus(t *testing.T) {
	inv := &Invoice{Items: sampleItems(), Status: StatusReturned, PaidAmount: 500}
	inv.Recalculate()
	require.Equal(t, StatusReturned, inv.Status)

	inv.Status = StatusCancelled
	inv.Recalculate()
	require.Equal(t, StatusCancelled, inv.Status)
}
