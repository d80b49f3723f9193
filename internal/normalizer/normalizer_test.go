package normalizer

import (
	"errors"
	"testing"
	"time"

	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeFullRecord(t *testing.T) {
	raw := models.RawRecord{
		"date":        "2025-03-14",
		"merchant":    "Acme Corp",
		"amount":      "-42.50",
		"currency":    "eur",
		"category":    "Shopping",
		"description": "Acme online order",
		"account":     "checking-1",
	}

	tx, err := Normalize(raw)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, time.March, 14, 0, 0, 0, 0, time.UTC), tx.Date)
	assert.Equal(t, "Acme Corp", tx.Merchant)
	assert.Equal(t, "-42.5", tx.Amount.String())
	assert.Equal(t, "EUR", tx.Currency)
	assert.Equal(t, "Shopping", tx.Category)
	assert.Equal(t, "Acme online order", tx.Description)
	assert.Equal(t, "checking-1", tx.Account)
}

func TestNormalizeDateFieldPriority(t *testing.T) {
	// "date" wins over "timestamp" when both are present.
	raw := models.RawRecord{
		"date":      "2025-01-01",
		"timestamp": "2025-06-30",
		"amount":    "1",
	}
	tx, err := Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, 2025, tx.Date.Year())
	assert.Equal(t, time.January, tx.Date.Month())

	// "timestamp" serves when "date" is absent.
	raw = models.RawRecord{"timestamp": "06/30/2025", "amount": "1"}
	tx, err = Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, time.June, tx.Date.Month())
}

func TestNormalizeMissingDate(t *testing.T) {
	_, err := Normalize(models.RawRecord{"amount": "10.00"})
	require.Error(t, err)

	var dateErr *parsererror.DateParseError
	assert.True(t, errors.As(err, &dateErr))
}

func TestNormalizeUnparseableDate(t *testing.T) {
	_, err := Normalize(models.RawRecord{"date": "14.03.2025"})
	require.Error(t, err)

	var dateErr *parsererror.DateParseError
	require.True(t, errors.As(err, &dateErr))
	assert.Equal(t, "14.03.2025", dateErr.Value)
}

func TestNormalizeMerchantFallbacks(t *testing.T) {
	tests := []struct {
		name     string
		raw      models.RawRecord
		expected string
	}{
		{
			name:     "MerchantField",
			raw:      models.RawRecord{"date": "2025-01-01", "merchant": "Netflix", "payee": "Ignored"},
			expected: "Netflix",
		},
		{
			name:     "PayeeField",
			raw:      models.RawRecord{"date": "2025-01-01", "payee": "Landlord"},
			expected: "Landlord",
		},
		{
			name:     "FirstWordOfDescription",
			raw:      models.RawRecord{"date": "2025-01-01", "description": "Starbucks card reload"},
			expected: "Starbucks",
		},
		{
			name:     "Sentinel",
			raw:      models.RawRecord{"date": "2025-01-01"},
			expected: "Unknown",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx, err := Normalize(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, tx.Merchant)
		})
	}
}

func TestNormalizeAmountDefaultsToZero(t *testing.T) {
	tx, err := Normalize(models.RawRecord{"date": "2025-01-01"})
	require.NoError(t, err)
	assert.True(t, tx.Amount.IsZero())
}

func TestNormalizeMalformedAmount(t *testing.T) {
	_, err := Normalize(models.RawRecord{"date": "2025-01-01", "amount": "12,zz"})
	require.Error(t, err)

	var convErr *parsererror.NumericConversionError
	assert.True(t, errors.As(err, &convErr))
}

func TestNormalizeAmountExactness(t *testing.T) {
	// The stored amount must round-trip without binary representation error.
	tx, err := Normalize(models.RawRecord{"date": "2025-01-01", "amount": "19.999"})
	require.NoError(t, err)
	assert.Equal(t, "19.999", tx.Amount.String())

	tx, err = Normalize(models.RawRecord{"date": "2025-01-01", "amount": 19.999})
	require.NoError(t, err)
	assert.Equal(t, "19.999", tx.Amount.String())
}

func TestNormalizeCurrencyDefault(t *testing.T) {
	tx, err := Normalize(models.RawRecord{"date": "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "USD", tx.Currency)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	raws := []models.RawRecord{
		{"date": "2025-01-03", "merchant": "C"},
		{"date": "2025-01-01", "merchant": "A"},
		{"date": "2025-01-02", "merchant": "B"},
	}

	transactions, err := NormalizeAll(raws)
	require.NoError(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, "C", transactions[0].Merchant)
	assert.Equal(t, "A", transactions[1].Merchant)
	assert.Equal(t, "B", transactions[2].Merchant)
}

func TestNormalizeAllPropagatesFailure(t *testing.T) {
	raws := []models.RawRecord{
		{"date": "2025-01-01"},
		{"description": "no date here"},
	}

	_, err := NormalizeAll(raws)
	require.Error(t, err)

	var dateErr *parsererror.DateParseError
	assert.True(t, errors.As(err, &dateErr))
	assert.Contains(t, err.Error(), "record 1")
}
