package billing

import "github.com/nidaan-his/nidaan-his/internal/money"

// DiscountFromPercent converts an invoice-level discount percentage into an
// absolute amount, rounded to 2 decimals.
func DiscountFromPercent(total, percent float64) float64 {
	return money.Round(money.Parse(total) * money.Parse(percent) / 100)
}

// DiscountToPercent converts an absolute discount amount back into a
// percentage. A zero total yields 0 rather than dividing by zero. For any
// positive total the two functions invert each other within 0.01.
func DiscountToPercent(total, amount float64) float64 {
	total = money.Parse(total)
	if total == 0 {
		return 0
	}
	return money.Round(money.Parse(amount) / total * 100)
}
