// Package parsererror defines the typed errors raised while converting raw
// financial records into canonical form.
package parsererror

import "fmt"

// DateParseError is returned when a record's date field is missing or does
// not match any of the supported date formats.
type DateParseError struct {
	Field string
	Value string
}

func (e *DateParseError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("no date field found (tried %s)", e.Field)
	}
	return fmt.Sprintf("unable to parse date %s='%s'", e.Field, e.Value)
}

// NumericConversionError is returned when a monetary field cannot be
// converted to an exact decimal. It is never defaulted away: silently
// treating a malformed balance as zero would corrupt downstream results.
type NumericConversionError struct {
	Field string
	Value any
	Err   error
}

func (e *NumericConversionError) Error() string {
	return fmt.Sprintf("cannot convert %s='%v' to decimal: %v", e.Field, e.Value, e.Err)
}

func (e *NumericConversionError) Unwrap() error {
	return e.Err
}

// UnknownMethodError is returned at the CLI boundary for a payoff strategy
// name that is neither "avalanche" nor "snowball".
type UnknownMethodError struct {
	Method string
}

func (e *UnknownMethodError) Error() string {
	return fmt.Sprintf("unknown payoff method '%s': expected 'avalanche' or 'snowball'", e.Method)
}
