package billing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiscountFromPercent(t *testing.T) {
	require.Equal(t, 110.0, DiscountFromPercent(1100, 10))
	require.Equal(t, 0.0, DiscountFromPercent(1100, 0))
	require.Equal(t, 1100.0, DiscountFromPercent(1100, 100))
	require.Equal(t, 33.33, DiscountFromPercent(999.99, 3.333))
}

func TestDiscountToPercentZeroTotal(t *testing.T) {
	require.Equal(t, 0.0, DiscountToPercent(0, 50))
	require.Equal(t, 0.0, DiscountToPercent(0, 0))
}

func TestDiscountForgivingInput(t *testing.T) {
	require.Equal(t, 0.0, DiscountFromPercent(1100, -5))
	require.Equal(t, 0.0, DiscountToPercent(1100, -50))
}

func TestDiscountInverseLaw(t *testing.T) {
	totals := []float64{100, 1100, 12345.67, 250000}
	for _, total := range totals {
		for percent := 0.0; percent <= 100; percent += 0.25 {
			amount := DiscountFromPercent(total, percent)
			back := DiscountToPercent(total, amount)
			require.InDeltaf(t, percent, back, 0.011,
				"total=%v percent=%v amount=%v", total, percent, amount)
		}
	}
}
