// Package narrative turns a finished report into a human-readable
// explanation. The generator is an injected strategy: callers choose
// between the deterministic plain-text narrator and the Gemini-backed one
// at construction time. Nothing in this package probes the environment to
// decide which backend is available.
package narrative

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/cash-advisor/internal/models"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Narrator produces a narrative explanation of a report. Implementations
// must only restate figures present in the report, never invent numbers.
type Narrator interface {
	Narrate(ctx context.Context, report models.Report) (string, error)
}

// PlainNarrator is the default narrator. It produces the same text for the
// same report every time and never fails.
type PlainNarrator struct{}

// NewPlainNarrator creates the deterministic fallback narrator.
func NewPlainNarrator() *PlainNarrator {
	return &PlainNarrator{}
}

// Narrate renders a fixed-format narrative from the report's summary figures.
func (n *PlainNarrator) Narrate(_ context.Context, report models.Report) (string, error) {
	var b strings.Builder
	b.WriteString("This report summarizes your financial position. ")
	fmt.Fprintf(&b, "Total income was %s, total expenses were %s, for a net cash flow of %s.",
		report.Summary.TotalIncome,
		report.Summary.TotalExpense,
		report.Summary.NetCashFlow)

	if len(report.Recurring) > 0 {
		fmt.Fprintf(&b, " %d recurring monthly charges were detected.", len(report.Recurring))
	}
	if report.Payoff != nil {
		if report.Payoff.Done {
			fmt.Fprintf(&b, " The %s payoff plan clears all debts in %d months.",
				report.Payoff.Method, report.Payoff.Months)
		} else {
			fmt.Fprintf(&b, " The %s payoff plan does not clear all debts within %d months.",
				report.Payoff.Method, report.Payoff.Months)
		}
	}

	return b.String(), nil
}
