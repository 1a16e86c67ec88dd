package billing

import "github.com/nidaan-his/nidaan-his/internal/money"

// CommissionLedger tracks what a referrer or doctor is owed on an invoice.
// It is derived in full on every recompute; only SpecialCommission and
// CommissionPaid on the invoice are persisted inputs.
type CommissionLedger struct {
	At100         float64 `json:"at_100"`
	AfterDiscount float64 `json:"after_discount"`
	Special       float64 `json:"special"`
	Payable       float64 `json:"payable"`
	Paid          float64 `json:"paid"`
	Due           float64 `json:"due"`
}

// ComputeCommission builds the ledger for an invoice. Commission tracking is
// strictly opt-in: when enabled is false the result is nil and nothing
// accrues no matter what rates the items carry.
//
// The invoice discount reduces commission taka-for-taka off the 100% figure,
// and the unpaid balance comes off the payable commission: commission is
// only earned on cash actually collected. Payable and Due may go negative
// (an over-extended advance) and are deliberately not clamped so the desk
// can see the exposure.
func ComputeCommission(items []LineItem, discountAmount, specialCommission, commissionPaid, dueAmount float64, enabled bool) *CommissionLedger {
	if !enabled {
		return nil
	}
	ledger := &CommissionLedger{
		Special: money.Round(specialCommission),
		Paid:    money.Parse(commissionPaid),
	}
	for _, item := range items {
		ledger.At100 += money.Parse(item.CommissionRate) * float64(money.ParseQuantity(item.Quantity))
	}
	ledger.At100 = money.Round(ledger.At100)
	ledger.AfterDiscount = money.Round(ledger.At100 - money.Parse(discountAmount))
	ledger.Payable = money.Round(ledger.AfterDiscount + ledger.Special - dueAmount)
	ledger.Due = money.Round(ledger.Payable - ledger.Paid)
	return ledger
}
