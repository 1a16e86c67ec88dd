package billing

import (
	"github.com/nidaan-his/nidaan-his/internal/money"
)

// Totals carries the derived amounts for a set of line items. Items is the
// input slice with LineTotal and Payable filled in.
type Totals struct {
	Items         []LineItem
	TotalAmount   float64
	TotalDiscount float64
	PayableBill   float64
	NetPayable    float64
	DueAmount     float64
}

// ComputeTotals derives line and invoice totals from raw item rows. Inputs
// are clamped through the money package so a half-typed form never yields
// NaN; a row discount larger than its line total is capped at the line
// total. The function is pure and idempotent: feeding its own Items back in
// reproduces the same Totals.
func ComputeTotals(items []LineItem, specialDiscount, paidAmount float64) Totals {
	out := Totals{Items: make([]LineItem, len(items))}
	for i, item := range items {
		item.UnitPrice = money.Parse(item.UnitPrice)
		item.Quantity = money.ParseQuantity(item.Quantity)
		item.RowDiscount = money.Parse(item.RowDiscount)
		item.CommissionRate = money.Parse(item.CommissionRate)

		item.LineTotal = money.Round(item.UnitPrice * float64(item.Quantity))
		if item.RowDiscount > item.LineTotal {
			item.RowDiscount = item.LineTotal
		}
		item.Payable = money.Round(item.LineTotal - item.RowDiscount)

		out.Items[i] = item
		out.TotalAmount += item.LineTotal
		out.TotalDiscount += item.RowDiscount
	}

	specialDiscount = money.Parse(specialDiscount)
	paidAmount = money.Parse(paidAmount)

	out.TotalAmount = money.Round(out.TotalAmount)
	out.TotalDiscount = money.Round(out.TotalDiscount)
	out.PayableBill = money.Round(out.TotalAmount - out.TotalDiscount)
	out.NetPayable = money.Round(out.PayableBill - specialDiscount)
	out.DueAmount = money.Round(out.NetPayable - paidAmount)
	return out
}

// Recalculate rebuilds every derived field on the invoice from its inputs:
// items, invoice-level discount, special discount and paid amount. The
// commission ledger is rebuilt too when enabled. Terminal statuses are never
// recomputed from amounts.
func (inv *Invoice) Recalculate() {
	totals := ComputeTotals(inv.Items, 0, 0)
	inv.Items = totals.Items
	inv.TotalAmount = totals.TotalAmount
	inv.TotalDiscount = totals.TotalDiscount

	inv.DiscountAmount = money.Parse(inv.DiscountAmount)
	inv.SpecialDiscount = money.Parse(inv.SpecialDiscount)
	inv.PaidAmount = money.Parse(inv.PaidAmount)

	inv.NetPayable = money.Round(inv.TotalAmount - inv.TotalDiscount - inv.DiscountAmount - inv.SpecialDiscount)
	inv.DueAmount = money.Round(inv.NetPayable - inv.PaidAmount)

	inv.Commission = ComputeCommission(
		inv.Items,
		inv.DiscountAmount,
		inv.SpecialCommission,
		inv.CommissionPaid,
		inv.DueAmount,
		inv.CommissionEnabled,
	)

	if !inv.Status.Terminal() && inv.Status != StatusDraft {
		inv.Status = DeriveStatus(inv.DueAmount)
	}
}

// SetDiscountPercent applies an invoice-level discount by percentage and
// keeps the absolute amount consistent.
func (inv *Invoice) SetDiscountPercent(percent float64) {
	totals := ComputeTotals(inv.Items, 0, 0)
	inv.DiscountPercent = money.Parse(percent)
	inv.DiscountAmount = DiscountFromPercent(totals.TotalAmount, inv.DiscountPercent)
	inv.Recalculate()
}

// SetDiscountAmount applies an invoice-level discount by absolute amount and
// keeps the percentage consistent.
func (inv *Invoice) SetDiscountAmount(amount float64) {
	totals := ComputeTotals(inv.Items, 0, 0)
	inv.DiscountAmount = money.Parse(amount)
	inv.DiscountPercent = DiscountToPercent(totals.TotalAmount, inv.DiscountAmount)
	inv.Recalculate()
}

// DeriveStatus maps a due balance to DUE or PAID. Small residues from
// rounding (up to half a taka) count as paid.
func DeriveStatus(dueAmount float64) InvoiceStatus {
	if dueAmount <= 0.5 {
		return StatusPaid
	}
	return StatusDue
}
