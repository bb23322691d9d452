package normalize

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"$1.23", 1.23, true},
		{"1,23 €", 1.23, true},
		{"$1,234.56", 1234.56, true},
		{"1.234,56 €", 1234.56, true},
		{"1,234", 1234, true},
		{"USD 0.5", 0.5, true},
		{"-2.00", -2, true},
		{"", 0, false},
		{"call for price", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := parsePrice(tc.in)
			require.Equal(t, tc.ok, ok)
			require.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestParseQuantity(t *testing.T) {
	require.Equal(t, int64(1234), parseQuantity("1,234 In Stock"))
	require.Equal(t, int64(0), parseQuantity("None"))
	require.Equal(t, int64(42), parseQuantity("42"))
}
