// Package ingest reads raw transaction and debt data from CSV files and
// writes canonical transactions back out.
//
// Raw statement exports have source-dependent headers, so they are read
// into untyped header-keyed records and renamed through an optional column
// map before normalization. Debt files and the canonical output have a
// fixed schema and go through gocsv struct mapping.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fjacquet/cash-advisor/internal/models"

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

// Global CSV delimiter - can be configured via centralized config
var Delimiter rune = ','

// SetDelimiter allows setting the delimiter for CSV input and output
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// ReadRawCSV reads transaction rows from a CSV stream into raw records
// keyed by header name. When a column map is supplied, matching headers are
// renamed so arbitrary bank exports line up with the fields the normalizer
// looks for; unmapped headers keep their original name.
func ReadRawCSV(r io.Reader, columnMap map[string]string) ([]models.RawRecord, error) {
	reader := csv.NewReader(r)
	reader.Comma = Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error reading CSV header: %w", err)
	}

	keys := make([]string, len(header))
	for i, name := range header {
		if mapped, ok := columnMap[name]; ok {
			keys[i] = mapped
		} else {
			keys[i] = name
		}
	}

	var records []models.RawRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV row: %w", err)
		}

		record := make(models.RawRecord, len(keys))
		for i, value := range row {
			if i < len(keys) {
				record[keys[i]] = value
			}
		}
		records = append(records, record)
	}

	log.WithField("count", len(records)).Debug("Read raw CSV records")
	return records, nil
}

// ReadRawCSVFile reads raw transaction records from a CSV file.
func ReadRawCSVFile(filePath string, columnMap map[string]string) ([]models.RawRecord, error) {
	log.WithField("file", filePath).Info("Reading raw transaction CSV file")

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	return ReadRawCSV(file, columnMap)
}

// columnMapFile is the on-disk shape of a column map file.
type columnMapFile struct {
	Columns map[string]string `yaml:"columns"`
}

// LoadColumnMap reads a header-renaming map from a YAML file, e.g.
//
//	columns:
//	  "Transaction Date": date
//	  "Description": description
func LoadColumnMap(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading column map file: %w", err)
	}

	var file columnMapFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error parsing column map file: %w", err)
	}

	log.WithFields(logrus.Fields{
		"file":    path,
		"columns": len(file.Columns),
	}).Debug("Loaded column map")
	return file.Columns, nil
}
