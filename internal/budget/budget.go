// Package budget produces rule-based budget allocations from a summarized
// income and expense breakdown. Allocation follows the classic 50/30/20
// needs/wants/savings split unless the user supplies custom rules.
package budget

import (
	"fmt"
	"os"

	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

var log = logrus.New()

// SetLogger sets a custom logger for this package
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// OtherBucket collects expense categories no rule accounts for. Unknown
// categories are bucketed rather than rejected.
const OtherBucket = "other"

// Rule assigns a share of total income to a category. Shares are fractions
// in the 0-1 range.
type Rule struct {
	Category string  `yaml:"category"`
	Share    float64 `yaml:"share"`
}

// rulesFile is the on-disk shape of a custom rules file.
type rulesFile struct {
	Rules []Rule `yaml:"rules"`
}

// DefaultRules returns the 50/30/20 needs/wants/savings split.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "needs", Share: 0.50},
		{Category: "wants", Share: 0.30},
		{Category: "savings", Share: 0.20},
	}
}

// LoadRules reads custom allocation rules from a YAML file.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading rules file: %w", err)
	}

	var file rulesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing rules file: %w", err)
	}
	if len(file.Rules) == 0 {
		return nil, fmt.Errorf("rules file %s contains no rules", path)
	}

	log.WithFields(logrus.Fields{
		"file":  path,
		"rules": len(file.Rules),
	}).Debug("Loaded budget rules")
	return file.Rules, nil
}

// Propose allocates total income across the rule categories, each share
// quantized to cents. Expense categories not named by any rule are summed
// into the OtherBucket allocation instead of erroring. Passing no rules
// applies DefaultRules.
func Propose(totalIncome decimal.Decimal, expensesByCategory []models.CategoryTotal, rules []Rule) []models.Allocation {
	if len(rules) == 0 {
		rules = DefaultRules()
	}

	allocations := make([]models.Allocation, 0, len(rules)+1)
	known := make(map[string]bool, len(rules))
	for _, rule := range rules {
		share, err := moneyutils.ToDecimal(rule.Share)
		if err != nil {
			log.WithField("category", rule.Category).Warn("Skipping rule with invalid share")
			continue
		}
		known[rule.Category] = true
		allocations = append(allocations, models.Allocation{
			Category: rule.Category,
			Amount:   moneyutils.Cents(totalIncome.Mul(share)),
		})
	}

	other := decimal.Zero
	haveOther := false
	for _, expense := range expensesByCategory {
		if known[expense.Category] {
			continue
		}
		amount, err := moneyutils.ToDecimal(expense.Total)
		if err != nil {
			log.WithField("category", expense.Category).Warn("Skipping expense with invalid total")
			continue
		}
		other = other.Add(amount)
		haveOther = true
	}
	if haveOther {
		allocations = append(allocations, models.Allocation{
			Category: OtherBucket,
			Amount:   moneyutils.Cents(other),
		})
	}

	return allocations
}
