// Package recurring detects merchants charging on a roughly monthly cadence.
//
// The heuristic is deliberately fixed: group by merchant, sort each group by
// date, take the day deltas between consecutive transactions and test
// whether the median delta falls inside a monthly window. No clustering or
// learned model is involved, so the same input always flags the same
// merchants.
package recurring

import (
	"sort"

	"fjacquet/cash-advisor/internal/dateutils"
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

// The monthly cadence window, in days between consecutive charges.
const (
	minMonthlyInterval = 27
	maxMonthlyInterval = 33
)

// Detect returns the merchants whose charges recur at a monthly cadence,
// each with the average absolute amount across the group. Transactions
// without a merchant are excluded entirely. Results follow first-seen
// merchant order.
func Detect(transactions []models.Transaction) []models.RecurringCharge {
	merchantOrder := []string{}
	groups := map[string][]models.Transaction{}

	for _, tx := range transactions {
		if tx.Merchant == "" {
			continue
		}
		if _, seen := groups[tx.Merchant]; !seen {
			merchantOrder = append(merchantOrder, tx.Merchant)
		}
		groups[tx.Merchant] = append(groups[tx.Merchant], tx)
	}

	var charges []models.RecurringCharge
	for _, merchant := range merchantOrder {
		group := groups[merchant]
		if len(group) < 2 {
			continue
		}

		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Date.Before(group[j].Date)
		})

		intervals := make([]int, 0, len(group)-1)
		for i := 1; i < len(group); i++ {
			intervals = append(intervals, dateutils.DaysBetween(group[i-1].Date, group[i].Date))
		}

		if !isMonthly(intervals) {
			continue
		}

		charges = append(charges, models.RecurringCharge{
			Merchant:      merchant,
			AverageAmount: moneyutils.Cents(averageAbsAmount(group)),
		})
	}

	log.WithFields(logrus.Fields{
		"merchants": len(merchantOrder),
		"recurring": len(charges),
	}).Debug("Recurring charge detection finished")

	return charges
}

// isMonthly tests whether the median interval lies inside the monthly window.
// The median is the sorted element at index len/2. For even-length interval
// lists that is the upper of the two middle candidates, not the usual
// midpoint average; changing it would change which merchants are flagged,
// so it stays as-is.
func isMonthly(intervals []int) bool {
	if len(intervals) == 0 {
		return false
	}
	sorted := make([]int, len(intervals))
	copy(sorted, intervals)
	sort.Ints(sorted)

	median := sorted[len(sorted)/2]
	return median >= minMonthlyInterval && median <= maxMonthlyInterval
}

func averageAbsAmount(group []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range group {
		sum = sum.Add(tx.Amount.Abs())
	}
	return sum.Div(decimal.NewFromInt(int64(len(group))))
}
