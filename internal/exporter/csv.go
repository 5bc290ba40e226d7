package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"insightcli/pkg/contracts/domain"
)

// CSVWriter provides CSV export functionality
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   []string
	Records   [][]string
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteCSV writes data to a CSV file with the given options
func (w *CSVWriter) WriteCSV(path string, options WriteOptions) error {
	w.logger.Info("Writing CSV file",
		slog.String("path", path),
		slog.Int("record_count", len(options.Records)))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	// BOM helps Excel recognize UTF-8
	if options.BOMPrefix {
		if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if len(options.Headers) > 0 {
		if err := writer.Write(options.Headers); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, record := range options.Records {
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	return writer.Error()
}

// DatasetHeaders returns the column order used for cleaned dataset exports
func DatasetHeaders() []string {
	return []string{
		"timestamp", "ticker", "action", "quantity", "price",
		"trader_id", "notional", "trade_date",
	}
}

// DatasetRecords renders a cleaned dataset as CSV records in export order
func DatasetRecords(ds *domain.Dataset) [][]string {
	records := make([][]string, 0, ds.Len())
	for _, tx := range ds.Transactions {
		records = append(records, []string{
			formatTimestamp(tx.Timestamp),
			tx.Ticker,
			string(tx.Action),
			formatNumber(tx.Quantity),
			formatNumber(tx.Price),
			tx.TraderID,
			formatNumber(tx.Notional),
			tx.TradeDate,
		})
	}
	return records
}

// WriteDataset writes a cleaned dataset to a delimited text table
func (w *CSVWriter) WriteDataset(path string, ds *domain.Dataset) error {
	return w.WriteCSV(path, WriteOptions{
		Headers:   DatasetHeaders(),
		Records:   DatasetRecords(ds),
		BOMPrefix: true,
	})
}
