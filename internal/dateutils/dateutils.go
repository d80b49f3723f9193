// Package dateutils provides common date operations used throughout the application.
package dateutils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Date format constants, in the priority order ParseDate tries them
const (
	DateLayoutISO      = "2006-01-02"
	DateLayoutUS       = "01/02/2006"
	DateLayoutEuropean = "02/01/2006"
)

// SupportedFormats lists the formats ParseDate tries, first match wins.
// The order is a policy choice: for day values <= 12 a string like
// "03/04/2025" is ambiguous between US and European readings, and the US
// layout wins. This is a known limitation, not a guarantee of correctness.
var SupportedFormats = []string{
	DateLayoutISO,
	DateLayoutUS,
	DateLayoutEuropean,
}

// ParseDate attempts to parse a date string using the supported formats.
func ParseDate(dateStr string) (time.Time, error) {
	dateStr = CleanDateString(dateStr)

	for _, format := range SupportedFormats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

// CleanDateString trims whitespace and collapses internal runs of spaces
func CleanDateString(dateStr string) string {
	dateStr = strings.TrimSpace(dateStr)
	re := regexp.MustCompile(`\s+`)
	return re.ReplaceAllString(dateStr, " ")
}

// ToISODate formats a time.Time value as an ISO date (YYYY-MM-DD)
func ToISODate(date time.Time) string {
	return date.Format(DateLayoutISO)
}

// DaysBetween returns the number of whole days from a to b.
// Negative when b is before a.
func DaysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}
