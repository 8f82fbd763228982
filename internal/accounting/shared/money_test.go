package shared

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "USD 1,234.50", FormatCurrency(decimal.RequireFromString("1234.5"), "USD"))
	assert.Equal(t, "AED 0.10", FormatCurrency(decimal.RequireFromString("0.1"), "aed"))
	assert.Equal(t, "12.30", FormatCurrency(decimal.RequireFromString("12.3"), ""))
	assert.Equal(t, "ZZ1 5.00", FormatCurrency(decimal.NewFromInt(5), "ZZ1"))
	assert.Equal(t, "USD -1,000.00", FormatCurrency(decimal.NewFromInt(-1000), "USD"))
	assert.Equal(t, "USD 999.00", FormatCurrency(decimal.NewFromInt(999), "USD"))
	assert.Equal(t, "JPY 1,235", FormatCurrency(decimal.RequireFromString("1234.5"), "JPY"))
}

func TestFormatCurrencyKeepsLargeAmountsExact(t *testing.T) {
	amount := decimal.RequireFromString("123456789012345678.91")
	assert.Equal(t, "USD 123,456,789,012,345,678.91", FormatCurrency(amount, "USD"))
}

func TestValidationErrorUnwrap(t *testing.T) {
	err := Invalid("From Date cannot be greater than To Date")
	assert.True(t, errors.Is(err, ErrInvalidInput))
	assert.Equal(t, "From Date cannot be greater than To Date", err.Error())
}
