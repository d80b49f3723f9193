// Package normalizer converts heterogeneous raw transaction records into the
// canonical Transaction model. Sources disagree on field names and date
// formats; everything downstream (analytics, recurring detection, reporting)
// only ever sees the canonical shape.
//
// The only fatal conditions are an unparseable or absent date and a
// malformed amount. Every other missing field defaults: merchant falls back
// through payee and description to "Unknown", currency to USD, amount to
// exact zero, category stays empty and aggregates as "Uncategorized".
package normalizer

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/cash-advisor/internal/currencyutils"
	"fjacquet/cash-advisor/internal/dateutils"
	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"
	"fjacquet/cash-advisor/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// dateFields are the keys tried for the transaction date, in priority order.
var dateFields = []string{"date", "timestamp", "datetime"}

// Normalize converts a single raw record into a canonical Transaction.
func Normalize(raw models.RawRecord) (models.Transaction, error) {
	date, err := resolveDate(raw)
	if err != nil {
		return models.Transaction{}, err
	}

	amount, err := resolveAmount(raw)
	if err != nil {
		return models.Transaction{}, err
	}

	description := stringField(raw, "description")

	return models.Transaction{
		Date:        date,
		Merchant:    resolveMerchant(raw, description),
		Amount:      amount,
		Currency:    currencyutils.Normalize(stringField(raw, "currency")),
		Category:    stringField(raw, "category"),
		Description: description,
		Account:     stringField(raw, "account"),
	}, nil
}

// NormalizeAll converts a batch of raw records, preserving order. No record
// is dropped: the first failure aborts the batch and is returned to the
// caller, who decides whether to skip or abort.
func NormalizeAll(raws []models.RawRecord) ([]models.Transaction, error) {
	transactions := make([]models.Transaction, 0, len(raws))
	for i, raw := range raws {
		tx, err := Normalize(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		transactions = append(transactions, tx)
	}

	log.WithField("count", len(transactions)).Debug("Normalized raw records")
	return transactions, nil
}

// resolveDate finds the first date-bearing field and parses it.
// A record without any date field fails the same way an unparseable one does.
func resolveDate(raw models.RawRecord) (time.Time, error) {
	for _, field := range dateFields {
		value, ok := raw[field]
		if !ok || value == nil {
			continue
		}
		if t, ok := value.(time.Time); ok {
			return t, nil
		}
		s := strings.TrimSpace(fmt.Sprintf("%v", value))
		if s == "" {
			continue
		}
		t, err := dateutils.ParseDate(s)
		if err != nil {
			return time.Time{}, &parsererror.DateParseError{Field: field, Value: s}
		}
		return t, nil
	}
	return time.Time{}, &parsererror.DateParseError{Field: strings.Join(dateFields, "/")}
}

// resolveMerchant applies the fallback chain:
// merchant field, payee field, first word of the description, sentinel.
func resolveMerchant(raw models.RawRecord, description string) string {
	if m := stringField(raw, "merchant"); m != "" {
		return m
	}
	if p := stringField(raw, "payee"); p != "" {
		return p
	}
	if words := strings.Fields(description); len(words) > 0 {
		return words[0]
	}
	return models.DefaultMerchant
}

// resolveAmount converts the amount field to an exact decimal. A missing
// amount is zero; a malformed one is an error rather than a silent zero.
func resolveAmount(raw models.RawRecord) (decimal.Decimal, error) {
	value, ok := raw["amount"]
	if !ok || value == nil {
		return decimal.Zero, nil
	}
	return moneyutils.ToDecimalField("amount", value)
}

// stringField reads a field as a trimmed string, stringifying scalar values
// and treating nil or absent fields as empty.
func stringField(raw models.RawRecord, key string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", value))
}
