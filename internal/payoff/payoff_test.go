package payoff

import (
	"testing"

	"fjacquet/cash-advisor/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debt(name, balance, apr, minPayment string) models.Debt {
	return models.Debt{
		Name:       name,
		Balance:    decimal.RequireFromString(balance),
		APR:        decimal.RequireFromString(apr),
		MinPayment: decimal.RequireFromString(minPayment),
	}
}

func TestPlanSingleDebtOneMonth(t *testing.T) {
	debts := []models.Debt{debt("Card", "100.00", "0", "100.00")}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	assert.True(t, result.Done)
	assert.Equal(t, 1, result.Months)
	require.Len(t, result.Schedule, 1)
	require.Len(t, result.Schedule[0].Debts, 1)
	assert.Equal(t, "0.00", result.Schedule[0].Debts[0].Balance)
}

func TestPlanAccruesMonthlyInterest(t *testing.T) {
	// 24% APR is 2% per month: 1000.00 grows to 1020.00 before the 20.00
	// minimum payment brings it back to 1000.00.
	debts := []models.Debt{debt("Loan", "1000.00", "0.24", "20.00")}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	require.NotEmpty(t, result.Schedule)
	assert.Equal(t, "1000.00", result.Schedule[0].Debts[0].Balance)
	assert.False(t, result.Done)
	assert.Equal(t, MaxMonths, result.Months)
}

func TestPlanAvalancheVsSnowballPriority(t *testing.T) {
	debts := []models.Debt{
		debt("HighAPR", "500.00", "0.30", "10.00"),
		debt("SmallBalance", "100.00", "0.10", "10.00"),
	}
	extra := decimal.RequireFromString("100.00")

	avalanche := Plan(debts, extra, MethodAvalanche)
	require.NotEmpty(t, avalanche.Schedule)
	month1 := avalanche.Schedule[0]
	require.Len(t, month1.Debts, 2)
	// Avalanche prioritizes the 30% APR debt: 500.00 + 12.50 interest
	// - 10.00 minimum - 100.00 extra.
	assert.Equal(t, "HighAPR", month1.Debts[0].Name)
	assert.Equal(t, "402.50", month1.Debts[0].Balance)
	assert.Equal(t, "SmallBalance", month1.Debts[1].Name)
	assert.Equal(t, "90.83", month1.Debts[1].Balance)

	snowball := Plan(debts, extra, MethodSnowball)
	require.NotEmpty(t, snowball.Schedule)
	month1 = snowball.Schedule[0]
	require.Len(t, month1.Debts, 2)
	// Snowball clears the small balance first (90.83 after interest and
	// minimum), leaving 9.17 of the extra for the larger debt.
	assert.Equal(t, "SmallBalance", month1.Debts[0].Name)
	assert.Equal(t, "0.00", month1.Debts[0].Balance)
	assert.Equal(t, "HighAPR", month1.Debts[1].Name)
	assert.Equal(t, "493.33", month1.Debts[1].Balance)
}

func TestPlanTieBreaks(t *testing.T) {
	// Equal APRs: avalanche falls back to the smaller balance first.
	debts := []models.Debt{
		debt("Big", "900.00", "0.20", "50.00"),
		debt("Small", "300.00", "0.20", "50.00"),
	}

	result := Plan(debts, decimal.NewFromInt(10), MethodAvalanche)

	require.NotEmpty(t, result.Schedule)
	assert.Equal(t, "Small", result.Schedule[0].Debts[0].Name)

	// Equal balances: snowball falls back to the higher APR first.
	debts = []models.Debt{
		debt("LowRate", "400.00", "0.05", "50.00"),
		debt("HighRate", "400.00", "0.25", "50.00"),
	}

	result = Plan(debts, decimal.NewFromInt(10), MethodSnowball)

	require.NotEmpty(t, result.Schedule)
	assert.Equal(t, "HighRate", result.Schedule[0].Debts[0].Name)
}

func TestPlanNonConvergence(t *testing.T) {
	// Interest outruns the minimum payment, so the balance only grows.
	debts := []models.Debt{debt("Runaway", "1000.00", "2.40", "10.00")}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	assert.False(t, result.Done)
	assert.Equal(t, MaxMonths, result.Months)
	assert.Len(t, result.Schedule, MaxMonths)
}

func TestPlanDoesNotMutateCaller(t *testing.T) {
	debts := []models.Debt{
		debt("A", "500.00", "0.30", "25.00"),
		debt("B", "100.00", "0.10", "25.00"),
	}

	Plan(debts, decimal.NewFromInt(50), MethodSnowball)

	assert.Equal(t, "A", debts[0].Name)
	assert.True(t, debts[0].Balance.Equal(decimal.RequireFromString("500.00")))
	assert.True(t, debts[1].Balance.Equal(decimal.RequireFromString("100.00")))
}

func TestPlanZeroBalanceDebtStaysPinned(t *testing.T) {
	debts := []models.Debt{
		debt("PaidOff", "0.00", "0.25", "50.00"),
		debt("Active", "200.00", "0.10", "100.00"),
	}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	assert.True(t, result.Done)
	for _, snap := range result.Schedule {
		for _, db := range snap.Debts {
			if db.Name == "PaidOff" {
				assert.Equal(t, "0.00", db.Balance)
			}
		}
	}
}

func TestPlanZeroExtraPayment(t *testing.T) {
	debts := []models.Debt{debt("Card", "300.00", "0", "100.00")}

	result := Plan(debts, decimal.Zero, MethodSnowball)

	assert.True(t, result.Done)
	assert.Equal(t, 3, result.Months)
}

func TestPlanNegativeExtraPaymentIgnored(t *testing.T) {
	debts := []models.Debt{debt("Card", "300.00", "0", "100.00")}

	result := Plan(debts, decimal.NewFromInt(-50), MethodSnowball)

	assert.True(t, result.Done)
	assert.Equal(t, 3, result.Months)
}

func TestPlanQuantizesInputs(t *testing.T) {
	debts := []models.Debt{debt("Card", "100.005", "0", "100.01")}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	// 100.005 quantizes to 100.01 up front and one minimum payment clears it.
	assert.True(t, result.Done)
	assert.Equal(t, 1, result.Months)
}

func TestPlanMonthIndicesAreSequential(t *testing.T) {
	debts := []models.Debt{debt("Card", "250.00", "0", "100.00")}

	result := Plan(debts, decimal.Zero, MethodAvalanche)

	require.Len(t, result.Schedule, result.Months)
	for i, snap := range result.Schedule {
		assert.Equal(t, i+1, snap.Month)
	}
}

func TestIsValidMethod(t *testing.T) {
	assert.True(t, IsValidMethod(MethodAvalanche))
	assert.True(t, IsValidMethod(MethodSnowball))
	assert.False(t, IsValidMethod("hybrid"))
	assert.False(t, IsValidMethod(""))
}
