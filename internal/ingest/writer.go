package ingest

import (
	"fmt"
	"os"
	"path/filepath"

	"fjacquet/cash-advisor/internal/dateutils"
	"fjacquet/cash-advisor/internal/models"
	"fjacquet/cash-advisor/internal/moneyutils"

	"github.com/gocarina/gocsv"
	"github.com/sirupsen/logrus"
)

// TransactionCSVRow is the canonical transaction shape written to CSV.
// Dates are ISO, amounts exact two-decimal strings.
type TransactionCSVRow struct {
	Date        string `csv:"Date"`
	Merchant    string `csv:"Merchant"`
	Amount      string `csv:"Amount"`
	Currency    string `csv:"Currency"`
	Category    string `csv:"Category"`
	Description string `csv:"Description"`
	Account     string `csv:"Account"`
}

// WriteTransactionsCSV writes canonical transactions to a CSV file.
// All commands producing canonical output use this function so the format
// stays consistent.
func WriteTransactionsCSV(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}

	log.WithFields(logrus.Fields{
		"file":  csvFile,
		"count": len(transactions),
	}).Info("Writing transactions to CSV file")

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]*TransactionCSVRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = &TransactionCSVRow{
			Date:        dateutils.ToISODate(tx.Date),
			Merchant:    tx.Merchant,
			Amount:      moneyutils.Cents(tx.Amount),
			Currency:    tx.Currency,
			Category:    tx.Category,
			Description: tx.Description,
			Account:     tx.Account,
		}
	}

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("error writing CSV file: %w", err)
	}

	log.WithField("count", len(rows)).Info("Successfully wrote transactions to CSV")
	return nil
}
