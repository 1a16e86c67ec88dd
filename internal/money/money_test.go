package money

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseForgivingInput(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"blank string", "", 0},
		{"whitespace", "   ", 0},
		{"non numeric", "abc", 0},
		{"nil", nil, 0},
		{"negative clamped", -42.5, 0},
		{"numeric string", "120.50", 120.50},
		{"plain float", 99.99, 99.99},
		{"integer", 500, 500},
		{"nan", math.NaN(), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, Parse(tc.in))
		})
	}
}

func TestParseQuantity(t *testing.T) {
	require.Equal(t, 0, ParseQuantity("x"))
	require.Equal(t, 0, ParseQuantity(-3))
	require.Equal(t, 2, ParseQuantity("2"))
	require.Equal(t, 7, ParseQuantity(7))
}

func TestRound(t *testing.T) {
	require.Equal(t, 110.0, Round(1100*10.0/100))
	require.Equal(t, 0.35, Round(0.345))
	require.Equal(t, -0.35, Round(-0.345))
	require.Equal(t, 12.34, Round(12.3449))
}

func TestFormat(t *testing.T) {
	require.Equal(t, "490.00", Format(490))
	require.Equal(t, "110.00", Format(110.004))
	require.Equal(t, "BDT 12,345.00", FormatBDT(12345))
	require.Equal(t, "BDT 0.00", FormatBDT(0))
}
