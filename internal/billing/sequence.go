package billing

import (
	"fmt"
	"strings"
	"time"
)

// DayPrefix returns the date-stamped prefix shared by every invoice number
// issued on the given day, e.g. "LAB-2026-09-01-".
func DayPrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s-", prefix, day.Format("2006-01-02"))
}

// NextNumber produces the candidate invoice number for a new invoice:
// the day prefix plus a 3-digit sequence, one past the count of numbers
// already issued today. The function is pure over the existing set, so
// generating twice without saving yields the same candidate; only a save
// advances the sequence. Uniqueness is enforced again at save time, which
// is sufficient for a single-operator counter.
func NextNumber(prefix string, day time.Time, existing []string) string {
	dp := DayPrefix(prefix, day)
	count := 0
	for _, number := range existing {
		if strings.HasPrefix(number, dp) {
			count++
		}
	}
	return fmt.Sprintf("%s%03d", dp, count+1)
}
