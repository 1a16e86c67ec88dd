package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNextNumberFormat(t *testing.T) {
	day := time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)
	require.Equal(t, "LAB-2026-09-01-001", NextNumber("LAB", day, nil))
	require.Equal(t, "IND-2026-09-01-001", NextNumber("IND", day, []string{"LAB-2026-09-01-001"}))
}

func TestNextNumberNoHiddenCounter(t *testing.T) {
	day := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	existing := []string{"LAB-2026-09-01-001", "LAB-2026-09-01-002"}

	// Two generations without a save in between yield the same candidate.
	first := NextNumber("LAB", day, existing)
	second := NextNumber("LAB", day, existing)
	require.Equal(t, first, second)
	require.Equal(t, "LAB-2026-09-01-003", first)

	// Saving the candidate advances the sequence.
	existing = append(existing, first)
	require.Equal(t, "LAB-2026-09-01-004", NextNumber("LAB", day, existing))
}

func TestNextNumberIgnoresOtherDays(t *testing.T) {
	day := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	existing := []string{
		"LAB-2026-09-01-001",
		"LAB-2026-09-01-002",
		"LAB-2026-08-31-009",
	}
	require.Equal(t, "LAB-2026-09-02-001", NextNumber("LAB", day, existing))
}
