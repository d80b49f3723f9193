package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCategoryLabel(t *testing.T) {
	tx := Transaction{Category: "Groceries"}
	assert.Equal(t, "Groceries", tx.CategoryLabel())

	tx.Category = ""
	assert.Equal(t, UncategorizedLabel, tx.CategoryLabel())
}

func TestIsIncome(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		expected bool
	}{
		{name: "Positive", amount: "10.00", expected: true},
		{name: "Zero", amount: "0", expected: false},
		{name: "Negative", amount: "-10.00", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := Transaction{Amount: decimal.RequireFromString(tt.amount)}
			assert.Equal(t, tt.expected, tx.IsIncome())
		})
	}
}
