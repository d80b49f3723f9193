// Package moneyutils provides exact-decimal money arithmetic used by every
// other component. Monetary values must never pass through binary floating
// point: conversions go via the string representation and all reported
// figures are quantized to cents with half-up rounding.
package moneyutils

import (
	"strconv"

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

var twelve = decimal.NewFromInt(12)

// ToDecimal converts an arbitrary numeric input to an exact decimal.
// Strings are parsed directly; integers and floats are first formatted to
// their shortest exact string so no binary representation error leaks in.
// A decimal passes through unchanged.
func ToDecimal(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, &parsererror.NumericConversionError{Field: "amount", Value: v, Err: err}
		}
		return d, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		d, err := decimal.NewFromString(strconv.FormatFloat(v, 'f', -1, 64))
		if err != nil {
			return decimal.Zero, &parsererror.NumericConversionError{Field: "amount", Value: v, Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, &parsererror.NumericConversionError{
			Field: "amount",
			Value: value,
			Err:   strconv.ErrSyntax,
		}
	}
}

// ToDecimalField is ToDecimal with the field name recorded on the error,
// for callers converting named record fields.
func ToDecimalField(field string, value any) (decimal.Decimal, error) {
	d, err := ToDecimal(value)
	if err != nil {
		if conv, ok := err.(*parsererror.NumericConversionError); ok {
			conv.Field = field
		}
		return decimal.Zero, err
	}
	return d, nil
}

// QuantizeCents rounds a decimal to two places with ties going away from
// zero (0.125 becomes 0.13, not banker's rounding).
func QuantizeCents(value decimal.Decimal) decimal.Decimal {
	return value.Round(2)
}

// Add sums two amounts and quantizes the result to cents.
func Add(a, b decimal.Decimal) decimal.Decimal {
	return QuantizeCents(a.Add(b))
}

// MonthlyRate converts an annual percentage rate into a monthly rate.
func MonthlyRate(apr decimal.Decimal) decimal.Decimal {
	return apr.Div(twelve)
}

// Cents formats a decimal as an exact two-decimal string after quantizing.
// Every monetary value crossing the library boundary goes through this.
func Cents(value decimal.Decimal) string {
	return QuantizeCents(value).StringFixed(2)
}
