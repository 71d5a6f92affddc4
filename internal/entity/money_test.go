package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	d, err := ParsePrice("1299.50")
	require.NoError(t, err)
	assert.Equal(t, "1299.50", FormatAmount(d))

	d, err = ParsePrice(" 10 ")
	require.NoError(t, err)
	assert.Equal(t, "10.00", FormatAmount(d))
}

func TestParsePrice_RejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"", "  ", "abc", "12,50", "NaN"} {
		_, err := ParsePrice(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, ErrBadPrice)
	}
}

func TestLineTotal_NoFloatDrift(t *testing.T) {
	// 0.1 * 3 is 0.30000000000000004 in binary floating point.
	p, err := ParsePrice("0.1")
	require.NoError(t, err)
	l := CartLine{ProductID: "p", Price: p, Quantity: 3}
	assert.Equal(t, "0.30", FormatAmount(l.Total()))
}

func TestFormatAmount_RoundsToTwoDigits(t *testing.T) {
	d, err := ParsePrice("2.005")
	require.NoError(t, err)
	assert.Equal(t, "2.01", FormatAmount(d))
}
