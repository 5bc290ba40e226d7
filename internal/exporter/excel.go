package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"insightcli/pkg/contracts/domain"
)

// ExcelWriter exports analytics results as an Excel workbook with one
// sheet per metric.
type ExcelWriter struct {
	logger *slog.Logger
}

// NewExcelWriter creates a new Excel writer instance
func NewExcelWriter(logger *slog.Logger) *ExcelWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &ExcelWriter{logger: logger}
}

// WriteAnalytics writes the analytics workbook to the given path
func (w *ExcelWriter) WriteAnalytics(path string, a *domain.AnalyticsResult) error {
	w.logger.Info("Writing analytics workbook",
		slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := w.writeSummarySheet(f, a); err != nil {
		return err
	}
	if err := w.writeVolumeSheet(f, a); err != nil {
		return err
	}
	if err := w.writeDailySheet(f, a); err != nil {
		return err
	}
	if err := w.writePositionSheet(f, a); err != nil {
		return err
	}
	if err := w.writeTraderSheet(f, a); err != nil {
		return err
	}

	// Replace the default sheet with the summary
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	return nil
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, a *domain.AnalyticsResult) error {
	const sheet = "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Transactions", a.TotalTransactions},
		{"Total Volume", a.TotalVolume},
		{"Unique Tickers", a.UniqueTickers},
		{"Unique Traders", a.UniqueTraders},
		{"Date Range Start", formatTimestamp(a.DateRangeStart)},
		{"Date Range End", formatTimestamp(a.DateRangeEnd)},
		{"BUY Count", a.Composition.Buy.Count},
		{"BUY Notional", a.Composition.Buy.Notional},
		{"SELL Count", a.Composition.Sell.Count},
		{"SELL Notional", a.Composition.Sell.Notional},
		{fmt.Sprintf("Top %d Concentration", a.Composition.TopK), a.Composition.TopKConcentration},
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeVolumeSheet(f *excelize.File, a *domain.AnalyticsResult) error {
	const sheet = "Volume by Ticker"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Ticker", "Volume"}}
	for _, tv := range a.VolumeByTicker {
		rows = append(rows, []interface{}{tv.Ticker, tv.Volume})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeDailySheet(f *excelize.File, a *domain.AnalyticsResult) error {
	const sheet = "Daily Volume"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Date", "Volume"}}
	for _, dv := range a.DailyVolumes {
		rows = append(rows, []interface{}{dv.Date, dv.Volume})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writePositionSheet(f *excelize.File, a *domain.AnalyticsResult) error {
	const sheet = "Net Position"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Ticker", "Net Quantity"}}
	for _, np := range a.NetPositions {
		rows = append(rows, []interface{}{np.Ticker, np.NetQuantity})
	}
	return writeRows(f, sheet, rows)
}

func (w *ExcelWriter) writeTraderSheet(f *excelize.File, a *domain.AnalyticsResult) error {
	const sheet = "Trader Activity"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][]interface{}{{"Trader", "Transactions", "Total Notional"}}
	for _, ta := range a.TraderActivity {
		rows = append(rows, []interface{}{ta.TraderID, ta.Count, ta.Notional})
	}
	return writeRows(f, sheet, rows)
}

// writeRows writes rows starting at A1 of the given sheet
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
