package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommissionGating(t *testing.T) {
	ledger := ComputeCommission(sampleItems(), 110, 25, 10, 490, false)
	require.Nil(t, ledger, "commission must not accrue unless explicitly enabled")
}

func TestCommissionScenario(t *testing.T) {
	// Two items: (500 x1, rate 50) and (300 x2, rate 20), 10% discount on
	// 1100, 500 paid of 990 net payable.
	ledger := ComputeCommission(sampleItems(), 110, 0, 0, 490, true)
	require.NotNil(t, ledger)
	require.Equal(t, 90.0, ledger.At100)
	require.Equal(t, -20.0, ledger.AfterDiscount)
	require.Equal(t, -510.0, ledger.Payable)
	require.Equal(t, -510.0, ledger.Due)
}

func TestCommissionNegativeNotClamped(t *testing.T) {
	ledger := ComputeCommission(sampleItems(), 500, -100, 200, 0, true)
	require.Equal(t, 90.0, ledger.At100)
	require.Equal(t, -410.0, ledger.AfterDiscount)
	require.Equal(t, -510.0, ledger.Payable)
	require.Equal(t, -710.0, ledger.Due)
}

func TestCommissionFullyPaidInvoice(t *testing.T) {
	ledger := ComputeCommission(sampleItems(), 0, 0, 0, 0, true)
	require.Equal(t, 90.0, ledger.Payable)
	require.Equal(t, 90.0, ledger.Due)

	ledger = ComputeCommission(sampleItems(), 0, 10, 60, 0, true)
	require.Equal(t, 100.0, ledger.Payable)
	require.Equal(t, 40.0, ledger.Due)
}

func TestCommissionRecomputedOnInvoice(t *testing.T) {
	inv := &Invoice{Items: sampleItems(), Status: StatusPosted, PaidAmount: 500, CommissionEnabled: true}
	inv.SetDiscountPercent(10)
	require.NotNil(t, inv.Commission)
	require.Equal(t, -510.0, inv.Commission.Due)

	// Paying off the bill restores the commission.
	inv.PaidAmount = 990
	inv.Recalculate()
	require.Equal(t, -20.0, inv.Commission.Payable)

	inv.CommissionEnabled = false
	inv.Recalculate()
	require.Nil(t, inv.Commission)
}
