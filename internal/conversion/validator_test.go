package conversion

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "USD", NormalizeCode(" usd "))
	require.Equal(t, "EUR", NormalizeCode("EUR"))
	require.Equal(t, "", NormalizeCode("   "))
}

func TestParseAmount(t *testing.T) {
	amount, err := parseAmount(" 10.25 ")
	require.NoError(t, err)
	require.Equal(t, "10.25", amount.String())

	_, err = parseAmount("abc")
	require.ErrorIs(t, err, ErrBadAmount)

	_, err = parseAmount("-0.01")
	require.ErrorIs(t, err, ErrNegativeAmount)

	zero, err := parseAmount("0")
	require.NoError(t, err)
	require.True(t, zero.IsZero())
}

func TestIsValidationError(t *testing.T) {
	for _, err := range []error{ErrMissingParams, ErrBadCurrencyCode, ErrBadAmount, ErrNegativeAmount} {
		require.True(t, IsValidationError(err))
	}
	require.False(t, IsValidationError(nil))
}
