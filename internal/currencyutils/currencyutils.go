// Package currencyutils provides currency code handling used throughout the application.
package currencyutils

import (
	"regexp"
	"strings"

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

// DefaultCode is the currency assumed when a record carries none.
const DefaultCode = "USD"

var codePattern = regexp.MustCompile(`^[A-Z]{3}$`)

// Normalize uppercases a raw currency code and falls back to DefaultCode
// when the input is empty. The code is carried as a label only; no
// conversion between currencies happens anywhere in this application.
func Normalize(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if code == "" {
		return DefaultCode
	}
	if !codePattern.MatchString(code) {
		log.WithField("currency", raw).Debug("Non-standard currency code kept as-is")
	}
	return code
}

// IsValidCode reports whether a string looks like an ISO 4217 alpha code.
func IsValidCode(code string) bool {
	return codePattern.MatchString(code)
}

// FormatAmount renders a decimal amount with two decimal places and the
// currency code, e.g. "123.45 USD".
func FormatAmount(amount decimal.Decimal, currency string) string {
	return amount.StringFixed(2) + " " + Normalize(currency)
}
