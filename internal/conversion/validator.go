package conversion

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrMissingParams   = errors.New("required params: from, to, amount")
	ErrBadCurrencyCode = errors.New("currency codes must be 3 letters (ISO 4217)")
	ErrBadAmount       = errors.New("amount must be a valid number")
	ErrNegativeAmount  = errors.New("amount must be non-negative")
)

// IsValidationError reports whether err is one of the request-validation
// sentinels, as opposed to an unavailable rate or an internal failure.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingParams) ||
		errors.Is(err, ErrBadCurrencyCode) ||
		errors.Is(err, ErrBadAmount) ||
		errors.Is(err, ErrNegativeAmount)
}

// NormalizeCode uppercases a currency code. Comparison is case-exact after
// this point.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

func validateCodes(from, to, amountRaw string) error {
	if from == "" || to == "" || strings.TrimSpace(amountRaw) == "" {
		return ErrMissingParams
	}
	if len(from) != 3 || len(to) != 3 {
		return ErrBadCurrencyCode
	}
	return nil
}

// parseAmount constructs the decimal from the original string form; the raw
// input never passes through a binary float.
func parseAmount(amountRaw string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(amountRaw))
	if err != nil {
		return decimal.Decimal{}, ErrBadAmount
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, ErrNegativeAmount
	}
	return amount, nil
}
