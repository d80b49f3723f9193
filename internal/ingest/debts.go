package ingest

import (
	"fmt"
	"os"

	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"

	"github.com/gocarina/gocsv"
)

// DebtCSVRow represents a single row in a debts CSV file
// It uses struct tags for gocsv unmarshaling
type DebtCSVRow struct {
	Name       string `csv:"Name"`
	Balance    string `csv:"Balance"`
	APR        string `csv:"APR"`
	MinPayment string `csv:"MinPayment"`
}

// ReadDebtsCSV reads debt accounts from a CSV file with the columns
// Name, Balance, APR, MinPayment. Monetary fields are converted to exact
// decimals; a malformed value fails immediately rather than defaulting,
// since a debt balance silently read as zero would corrupt the simulation.
func ReadDebtsCSV(filePath string) ([]models.Debt, error) {
	log.WithField("file", filePath).Info("Reading debts CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening debts CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	var rows []*DebtCSVRow
	if err := gocsv.Unmarshal(file, &rows); err != nil {
		return nil, fmt.Errorf("error parsing debts CSV file: %w", err)
	}

	debts := make([]models.Debt, 0, len(rows))
	for i, row := range rows {
		if row.Name == "" {
			continue
		}

		balance, err := moneyutils.ToDecimalField("balance", row.Balance)
		if err != nil {
			return nil, fmt.Errorf("debt row %d (%s): %w", i+1, row.Name, err)
		}
		apr, err := moneyutils.ToDecimalField("apr", row.APR)
		if err != nil {
			return nil, fmt.Errorf("debt row %d (%s): %w", i+1, row.Name, err)
		}
		minPayment, err := moneyutils.ToDecimalField("min_payment", row.MinPayment)
		if err != nil {
			return nil, fmt.Errorf("debt row %d (%s): %w", i+1, row.Name, err)
		}

		debts = append(debts, models.Debt{
			Name:       row.Name,
			Balance:    balance,
			APR:        apr,
			MinPayment: minPayment,
		})
	}

	log.WithField("count", len(debts)).Info("Successfully read debt accounts")
	return debts, nil
}
