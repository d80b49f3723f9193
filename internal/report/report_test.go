package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"fjacquet/cash-advisor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() models.Summary {
	return models.Summary{
		TotalIncome:  "2500.00",
		TotalExpense: "1800.00",
		NetCashFlow:  "700.00",
		CategoryTotals: []models.CategoryTotal{
			{Category: "Rent", Total: "1200.00"},
			{Category: "Groceries", Total: "600.00"},
		},
	}
}

type failingNarrator struct{}

func (failingNarrator) Narrate(context.Context, models.Report) (string, error) {
	return "", fmt.Errorf("backend unavailable")
}

func TestBuildAttachesNarrative(t *testing.T) {
	builder := NewBuilder(nil)

	rep := builder.Build(context.Background(), sampleSummary(), nil, nil, nil)

	assert.NotEmpty(t, rep.Narrative)
	assert.False(t, rep.GeneratedAt.IsZero())
	assert.Equal(t, "2500.00", rep.Summary.TotalIncome)
}

func TestBuildFallsBackWhenNarratorFails(t *testing.T) {
	builder := NewBuilder(failingNarrator{})

	rep := builder.Build(context.Background(), sampleSummary(), nil, nil, nil)

	assert.Contains(t, rep.Narrative, "This report summarizes your financial position.")
}

func TestGenerateJSON(t *testing.T) {
	builder := NewBuilder(nil)
	rep := builder.Build(context.Background(), sampleSummary(), nil, nil, nil)

	out, err := NewGenerator().Generate(rep, "json")
	require.NoError(t, err)

	var decoded models.Report
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "700.00", decoded.Summary.NetCashFlow)
}

func TestGenerateText(t *testing.T) {
	payoffResult := &models.PayoffResult{
		Method: "avalanche",
		Months: 2,
		Done:   true,
		Schedule: []models.MonthSnapshot{
			{Month: 1, Debts: []models.DebtBalance{{Name: "Card", Balance: "50.00"}}},
			{Month: 2, Debts: []models.DebtBalance{{Name: "Card", Balance: "0.00"}}},
		},
	}
	recurring := []models.RecurringCharge{{Merchant: "Netflix", AverageAmount: "9.99"}}
	budget := []models.Allocation{{Category: "needs", Amount: "1250.00"}}

	builder := NewBuilder(nil)
	rep := builder.Build(context.Background(), sampleSummary(), recurring, budget, payoffResult)

	out, err := NewGenerator().Generate(rep, "text")
	require.NoError(t, err)

	text := string(out)
	assert.True(t, strings.HasPrefix(text, "Financial Report"))
	assert.Contains(t, text, "Total income:  2500.00")
	assert.Contains(t, text, "Netflix")
	assert.Contains(t, text, "needs")
	assert.Contains(t, text, "Method: avalanche")
	// Only the final month's balances appear in the text rendering.
	assert.Contains(t, text, "0.00")
}

func TestGenerateUnsupportedFormat(t *testing.T) {
	builder := NewBuilder(nil)
	rep := builder.Build(context.Background(), sampleSummary(), nil, nil, nil)

	_, err := NewGenerator().Generate(rep, "pdf")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}
