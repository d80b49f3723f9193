// Package models provides the data structures used throughout the application.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecord is an untyped transaction record as it arrives from an external
// source (CSV export, API payload, statement extraction). Field names and
// formats vary by source; the normalizer converts it into a Transaction and
// nothing past normalization should touch this shape.
type RawRecord map[string]any

// DefaultMerchant is the sentinel merchant name used when a record carries
// no merchant, payee or description.
const DefaultMerchant = "Unknown"

// DefaultCurrency is assumed when a record does not specify a currency code.
const DefaultCurrency = "USD"

// UncategorizedLabel is the aggregation bucket for transactions without a category.
const UncategorizedLabel = "Uncategorized"

// Transaction is the canonical transaction record produced by normalization.
// Amount carries the sign: positive is income/credit, negative is expense/debit.
// Instances are immutable once created.
type Transaction struct {
	Date        time.Time       `json:"date"`
	Merchant    string          `json:"merchant"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Category    string          `json:"category,omitempty"`
	Description string          `json:"description"`
	Account     string          `json:"account,omitempty"`
}

// CategoryLabel returns the category for aggregation purposes,
// substituting UncategorizedLabel when none is set.
func (t Transaction) CategoryLabel() string {
	if t.Category == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// IsIncome returns true if the transaction amount is strictly positive.
func (t Transaction) IsIncome() bool {
	return t.Amount.IsPositive()
}

// CategoryTotal is one entry of a category breakdown. Entries are kept in
// first-seen order rather than in a map so output is reproducible.
type CategoryTotal struct {
	Category string `json:"category"`
	Total    string `json:"total"`
}

// Summary holds aggregate statistics over a set of canonical transactions.
// All monetary figures are exact two-decimal strings.
type Summary struct {
	TotalIncome    string          `json:"total_income"`
	TotalExpense   string          `json:"total_expense"`
	NetCashFlow    string          `json:"net_cash_flow"`
	CategoryTotals []CategoryTotal `json:"category_totals"`
}

// RecurringCharge describes a merchant flagged as a recurring monthly charge
// together with the average absolute amount across its transactions.
type RecurringCharge struct {
	Merchant      string `json:"merchant"`
	AverageAmount string `json:"average_amount"`
}

// Debt is a single debt account entering the payoff simulation.
// APR is the annual rate as a fraction (0.2499 for 24.99%).
type Debt struct {
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	APR        decimal.Decimal `json:"apr"`
	MinPayment decimal.Decimal `json:"min_payment"`
}

// DebtBalance is one debt's remaining balance inside a monthly snapshot.
type DebtBalance struct {
	Name    string `json:"name"`
	Balance string `json:"balance"`
}

// MonthSnapshot records every debt's balance at the end of one simulated month.
// Debts appear in that month's priority order.
type MonthSnapshot struct {
	Month int           `json:"month"`
	Debts []DebtBalance `json:"debts"`
}

// PayoffResult is the outcome of a payoff simulation. Done is false when the
// simulation hit the month cap with balances still outstanding.
type PayoffResult struct {
	Method   string          `json:"method"`
	Months   int             `json:"months"`
	Schedule []MonthSnapshot `json:"schedule"`
	Done     bool            `json:"done"`
}

// Allocation is one category's share of a proposed budget.
type Allocation struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// Report bundles every analytical output for a single set of inputs,
// ready for rendering or narration.
type Report struct {
	GeneratedAt time.Time         `json:"generated_at"`
	Summary     Summary           `json:"summary"`
	Recurring   []RecurringCharge `json:"recurring,omitempty"`
	Budget      []Allocation      `json:"budget,omitempty"`
	Payoff      *PayoffResult     `json:"payoff,omitempty"`
	Narrative   string            `json:"narrative,omitempty"`
}
