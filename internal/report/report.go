// Package report assembles the analytical outputs into a single report and
// renders it in the requested output format.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/narrative"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Builder assembles a report from the individual analytical outputs and an
// injected narrator.
type Builder struct {
	narrator narrative.Narrator
	now      func() time.Time
}

// NewBuilder creates a report builder. A nil narrator falls back to the
// deterministic plain-text narrator.
func NewBuilder(narrator narrative.Narrator) *Builder {
	if narrator == nil {
		narrator = narrative.NewPlainNarrator()
	}
	return &Builder{narrator: narrator, now: time.Now}
}

// Build combines the supplied outputs into a report and attaches the
// narrative. A narrator failure downgrades to the plain narrative rather
// than failing the report.
func (b *Builder) Build(ctx context.Context, summary models.Summary, recurring []models.RecurringCharge, budget []models.Allocation, payoff *models.PayoffResult) models.Report {
	rep := models.Report{
		GeneratedAt: b.now(),
		Summary:     summary,
		Recurring:   recurring,
		Budget:      budget,
		Payoff:      payoff,
	}

	text, err := b.narrator.Narrate(ctx, rep)
	if err != nil {
		log.WithError(err).Warn("Narrator failed, using plain narrative")
		text, _ = narrative.NewPlainNarrator().Narrate(ctx, rep)
	}
	rep.Narrative = text

	return rep
}

// Generator renders reports in the supported output formats.
type Generator struct{}

// NewGenerator creates a report generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders a report in the specified format (json or text).
// It returns the rendered report and an error if the format is unsupported.
func (g *Generator) Generate(rep models.Report, format string) ([]byte, error) {
	switch format {
	case "json":
		return g.generateJSON(rep)
	case "text":
		return g.generateText(rep), nil
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSON(rep models.Report) ([]byte, error) {
	out, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		log.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return out, nil
}

func (g *Generator) generateText(rep models.Report) []byte {
	var b strings.Builder

	b.WriteString("Financial Report\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", rep.GeneratedAt.Format("2006-01-02 15:04:05"))

	b.WriteString("Summary\n")
	fmt.Fprintf(&b, "  Total income:  %s\n", rep.Summary.TotalIncome)
	fmt.Fprintf(&b, "  Total expense: %s\n", rep.Summary.TotalExpense)
	fmt.Fprintf(&b, "  Net cash flow: %s\n", rep.Summary.NetCashFlow)
	for _, ct := range rep.Summary.CategoryTotals {
		fmt.Fprintf(&b, "  %-20s %s\n", ct.Category, ct.Total)
	}

	if len(rep.Recurring) > 0 {
		b.WriteString("\nRecurring charges\n")
		for _, rc := range rep.Recurring {
			fmt.Fprintf(&b, "  %-20s %s\n", rc.Merchant, rc.AverageAmount)
		}
	}

	if len(rep.Budget) > 0 {
		b.WriteString("\nProposed budget\n")
		for _, alloc := range rep.Budget {
			fmt.Fprintf(&b, "  %-20s %s\n", alloc.Category, alloc.Amount)
		}
	}

	if rep.Payoff != nil {
		b.WriteString("\nDebt payoff plan\n")
		fmt.Fprintf(&b, "  Method: %s\n", rep.Payoff.Method)
		fmt.Fprintf(&b, "  Months: %d\n", rep.Payoff.Months)
		fmt.Fprintf(&b, "  Paid off: %t\n", rep.Payoff.Done)
		if len(rep.Payoff.Schedule) > 0 {
			final := rep.Payoff.Schedule[len(rep.Payoff.Schedule)-1]
			for _, db := range final.Debts {
				fmt.Fprintf(&b, "  %-20s %s\n", db.Name, db.Balance)
			}
		}
	}

	if rep.Narrative != "" {
		b.WriteString("\nNarrative\n")
		b.WriteString(rep.Narrative)
		b.WriteString("\n")
	}

	return []byte(b.String())
}
