// Package payoff runs the deterministic multi-account debt payoff simulation.
package payoff

import (
	"sort"

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

// Payoff prioritization strategies
const (
	MethodAvalanche = "avalanche"
	MethodSnowball  = "snowball"
)

// MaxMonths caps the simulation so a debt load whose interest outruns its
// minimum payments still terminates. Hitting the cap is reported as
// Done=false, not an error.
const MaxMonths = 600

// IsValidMethod reports whether the method name is a known strategy.
// Plan itself treats anything that is not avalanche as snowball; callers
// that want strict validation check here first.
func IsValidMethod(method string) bool {
	return method == MethodAvalanche || method == MethodSnowball
}

// Plan simulates paying off the given debts month by month and returns the
// full schedule of balances.
//
// The input slice is copied defensively with balances and minimum payments
// quantized to cents; the caller's debts are never mutated. Each month the
// working list is re-sorted by the strategy's priority key before interest
// accrual, minimum payments and the extra payment are applied. Re-sorting
// every month is intentional: as balances shrink, the priority order can
// change mid-simulation, and payments always follow current-state priority.
//
// Avalanche orders by APR descending with balance ascending as tie-break;
// snowball by balance ascending with APR descending as tie-break. A debt at
// zero balance accrues nothing and receives nothing but stays pinned at
// 0.00 in every snapshot.
func Plan(debts []models.Debt, extraPayment decimal.Decimal, method string) models.PayoffResult {
	working := make([]models.Debt, len(debts))
	for i, d := range debts {
		working[i] = models.Debt{
			Name:       d.Name,
			Balance:    moneyutils.QuantizeCents(d.Balance),
			APR:        d.APR,
			MinPayment: moneyutils.QuantizeCents(d.MinPayment),
		}
	}
	extra := moneyutils.QuantizeCents(extraPayment)

	month := 0
	var schedule []models.MonthSnapshot

	for month < MaxMonths && anyOutstanding(working) {
		month++
		sortByPriority(working, method)

		// Accrue interest at APR/12, quantized per debt per month.
		for i := range working {
			if !working[i].Balance.IsPositive() {
				continue
			}
			interest := moneyutils.QuantizeCents(working[i].Balance.Mul(moneyutils.MonthlyRate(working[i].APR)))
			working[i].Balance = moneyutils.Add(working[i].Balance, interest)
		}

		// Pay minimums, never more than the remaining balance.
		for i := range working {
			if !working[i].Balance.IsPositive() {
				continue
			}
			payment := decimal.Min(working[i].MinPayment, working[i].Balance)
			working[i].Balance = moneyutils.QuantizeCents(working[i].Balance.Sub(payment))
		}

		// Apply the extra payment down the priority order.
		remaining := extra
		for i := range working {
			if !remaining.IsPositive() {
				break
			}
			if !working[i].Balance.IsPositive() {
				continue
			}
			pay := decimal.Min(remaining, working[i].Balance)
			working[i].Balance = moneyutils.QuantizeCents(working[i].Balance.Sub(pay))
			remaining = moneyutils.QuantizeCents(remaining.Sub(pay))
		}

		schedule = append(schedule, snapshot(month, working))
	}

	done := !anyOutstanding(working)
	log.WithFields(logrus.Fields{
		"method": method,
		"months": month,
		"done":   done,
	}).Debug("Payoff simulation finished")

	return models.PayoffResult{
		Method:   method,
		Months:   month,
		Schedule: schedule,
		Done:     done,
	}
}

// sortByPriority re-sorts the working list in place by the strategy's
// priority key. Any method other than avalanche sorts as snowball.
func sortByPriority(debts []models.Debt, method string) {
	if method == MethodAvalanche {
		sort.SliceStable(debts, func(i, j int) bool {
			if !debts[i].APR.Equal(debts[j].APR) {
				return debts[i].APR.GreaterThan(debts[j].APR)
			}
			return debts[i].Balance.LessThan(debts[j].Balance)
		})
		return
	}
	sort.SliceStable(debts, func(i, j int) bool {
		if !debts[i].Balance.Equal(debts[j].Balance) {
			return debts[i].Balance.LessThan(debts[j].Balance)
		}
		return debts[i].APR.GreaterThan(debts[j].APR)
	})
}

func anyOutstanding(debts []models.Debt) bool {
	for _, d := range debts {
		if d.Balance.IsPositive() {
			return true
		}
	}
	return false
}

// snapshot records every debt's balance, in current priority order, as an
// exact two-decimal string.
func snapshot(month int, debts []models.Debt) models.MonthSnapshot {
	balances := make([]models.DebtBalance, len(debts))
	for i, d := range debts {
		balances[i] = models.DebtBalance{
			Name:    d.Name,
			Balance: d.Balance.StringFixed(2),
		}
	}
	return models.MonthSnapshot{Month: month, Debts: balances}
}
