// Package analytics computes summary statistics over canonical transactions.
package analytics

import (
	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"

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

// Summarize returns total income, total expense, net cash flow and a
// per-category breakdown for a set of transactions.
//
// Amounts strictly greater than zero count as income; everything else
// contributes its absolute value to the expense total, so a zero amount
// adds zero to both sides. Category totals accumulate absolute amounts and
// keep first-seen order. Each reported figure is quantized independently
// from the exact running sums, so rounding error never exceeds a single
// cent per figure.
func Summarize(transactions []models.Transaction) models.Summary {
	totalIncome := decimal.Zero
	totalExpense := decimal.Zero

	categoryOrder := []string{}
	categorySums := map[string]decimal.Decimal{}

	for _, tx := range transactions {
		if tx.Amount.IsPositive() {
			totalIncome = totalIncome.Add(tx.Amount)
		} else {
			totalExpense = totalExpense.Add(tx.Amount.Abs())
		}

		cat := tx.CategoryLabel()
		if _, seen := categorySums[cat]; !seen {
			categoryOrder = append(categoryOrder, cat)
		}
		categorySums[cat] = categorySums[cat].Add(tx.Amount.Abs())
	}

	categoryTotals := make([]models.CategoryTotal, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		categoryTotals = append(categoryTotals, models.CategoryTotal{
			Category: cat,
			Total:    moneyutils.Cents(categorySums[cat]),
		})
	}

	log.WithFields(logrus.Fields{
		"transactions": len(transactions),
		"categories":   len(categoryTotals),
	}).Debug("Summarized transactions")

	return models.Summary{
		TotalIncome:    moneyutils.Cents(totalIncome),
		TotalExpense:   moneyutils.Cents(totalExpense),
		NetCashFlow:    moneyutils.Cents(totalIncome.Sub(totalExpense)),
		CategoryTotals: categoryTotals,
	}
}
