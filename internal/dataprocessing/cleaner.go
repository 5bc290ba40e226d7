package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"insightcli/pkg/contracts/domain"
)

// Timestamp layouts accepted by the cleaner, tried in order. The first is
// the canonical ledger format; the rest cover common exports.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// RejectReason classifies why a row was excluded from the cleaned dataset
type RejectReason string

const (
	RejectInvalidTimestamp RejectReason = "invalid_timestamp"
	RejectEmptyTicker      RejectReason = "empty_ticker"
	RejectEmptyTrader      RejectReason = "empty_trader"
	RejectInvalidAction    RejectReason = "invalid_action"
	RejectInvalidQuantity  RejectReason = "invalid_quantity"
	RejectInvalidPrice     RejectReason = "invalid_price"
)

// CleaningReport tallies the outcome of one cleaning pass. Row-level
// rejections are recorded here instead of being raised.
type CleaningReport struct {
	InputRows int                  `json:"input_rows"`
	Accepted  int                  `json:"accepted"`
	Rejected  int                  `json:"rejected"`
	Reasons   map[RejectReason]int `json:"reasons"`
}

// EmptyResultError reports an ingestion where cleaning removed every row.
// It carries the rejection tally so the caller can see why.
type EmptyResultError struct {
	Report *CleaningReport
}

// Error implements the error interface
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no valid transactions after cleaning: %d rows rejected", e.Report.Rejected)
}

// Cleaner maps raw ledger rows to cleaned transactions, dropping invalid
// rows without correction. Invalid rows are never imputed; this is a
// financial-integrity requirement.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new row cleaner
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cleaner{logger: logger}
}

// Clean validates the table schema, then applies the per-row rules and
// returns the cleaned dataset sorted ascending by timestamp (stable
// tie-break by input order) together with the rejection tally.
// It fails with SchemaError before any row work, or EmptyResultError when
// every row was rejected.
func (c *Cleaner) Clean(ctx context.Context, table *domain.RawTable) (*domain.Dataset, *CleaningReport, error) {
	if err := ValidateSchema(table); err != nil {
		return nil, nil, err
	}

	report := &CleaningReport{
		InputRows: len(table.Rows),
		Reasons:   make(map[RejectReason]int),
	}

	transactions := make([]domain.Transaction, 0, len(table.Rows))
	for _, row := range table.Rows {
		tx, reason, ok := cleanRow(row)
		if !ok {
			report.Rejected++
			report.Reasons[reason]++
			continue
		}
		transactions = append(transactions, tx)
	}
	report.Accepted = len(transactions)

	if report.Rejected > 0 {
		c.logger.WarnContext(ctx, "dropped invalid ledger rows",
			slog.Int("rejected", report.Rejected),
			slog.Int("accepted", report.Accepted))
	}

	if len(transactions) == 0 {
		return nil, report, &EmptyResultError{Report: report}
	}

	// Stable sort keeps the original input order for equal timestamps.
	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Timestamp.Before(transactions[j].Timestamp)
	})

	c.logger.InfoContext(ctx, "ledger cleaned",
		slog.Int("input_rows", report.InputRows),
		slog.Int("transactions", len(transactions)))

	return &domain.Dataset{Transactions: transactions}, report, nil
}

// cleanRow maps one raw row to either a cleaned transaction or a rejection
// reason. A row is never partially accepted.
func cleanRow(row domain.RawRow) (domain.Transaction, RejectReason, bool) {
	timestamp, ok := parseTimestamp(row[domain.ColumnTimestamp])
	if !ok {
		return domain.Transaction{}, RejectInvalidTimestamp, false
	}

	ticker := strings.ToUpper(strings.TrimSpace(row[domain.ColumnTicker]))
	if ticker == "" {
		return domain.Transaction{}, RejectEmptyTicker, false
	}

	trader := strings.ToUpper(strings.TrimSpace(row[domain.ColumnTraderID]))
	if trader == "" {
		return domain.Transaction{}, RejectEmptyTrader, false
	}

	action := domain.TradeAction(strings.ToUpper(strings.TrimSpace(row[domain.ColumnAction])))
	if !action.Valid() {
		return domain.Transaction{}, RejectInvalidAction, false
	}

	quantity, ok := parsePositiveFloat(row[domain.ColumnQuantity])
	if !ok {
		return domain.Transaction{}, RejectInvalidQuantity, false
	}

	price, ok := parsePositiveFloat(row[domain.ColumnPrice])
	if !ok {
		return domain.Transaction{}, RejectInvalidPrice, false
	}

	return domain.Transaction{
		Timestamp: timestamp,
		Ticker:    ticker,
		Action:    action,
		Quantity:  quantity,
		Price:     price,
		TraderID:  trader,
		Notional:  quantity * price,
		TradeDate: timestamp.Format("2006-01-02"),
	}, "", true
}

// parseTimestamp parses a ledger timestamp against the accepted layouts
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parsePositiveFloat converts a numeric cell, requiring a finite value
// strictly greater than zero. Zero, negatives, NaN and infinities reject.
func parsePositiveFloat(value string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
		return 0, false
	}
	return f, true
}
