package domain

import (
	"time"
)

// TradeAction represents the side of a transaction
type TradeAction string

const (
	ActionBuy  TradeAction = "BUY"
	ActionSell TradeAction = "SELL"
)

// Valid reports whether the action is one of the supported sides
func (a TradeAction) Valid() bool {
	return a == ActionBuy || a == ActionSell
}

// RawRow is one ingested ledger record keyed by header column.
// Cell values are untrusted free-form text; validation happens in the cleaner.
type RawRow map[string]string

// RawTable is an ingested tabular dataset: a header plus ordered rows
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// Required ledger columns. Schema validation fails if any is absent.
const (
	ColumnTimestamp = "timestamp"
	ColumnTicker    = "ticker"
	ColumnAction    = "action"
	ColumnQuantity  = "quantity"
	ColumnPrice     = "price"
	ColumnTraderID  = "trader_id"
)

// RequiredColumns returns the fixed required-column set in canonical order
func RequiredColumns() []string {
	return []string{
		ColumnTimestamp,
		ColumnTicker,
		ColumnAction,
		ColumnQuantity,
		ColumnPrice,
		ColumnTraderID,
	}
}

// Transaction is the validated form of a ledger row. Every field is present
// and type-correct: quantity and price are strictly positive, the action is
// BUY or SELL, and the derived fields are computed from the others.
type Transaction struct {
	Timestamp time.Time   `json:"timestamp"`
	Ticker    string      `json:"ticker"`
	Action    TradeAction `json:"action"`
	Quantity  float64     `json:"quantity"`
	Price     float64     `json:"price"`
	TraderID  string      `json:"trader_id"`
	Notional  float64     `json:"notional"`
	TradeDate string      `json:"trade_date"` // calendar date, 2006-01-02
}

// Dataset is an ordered sequence of cleaned transactions sorted ascending by
// timestamp with stable tie-break by original input order. It is constructed
// once per ingestion and must not be mutated afterwards.
type Dataset struct {
	Transactions []Transaction
}

// Len returns the number of cleaned transactions
func (d *Dataset) Len() int {
	return len(d.Transactions)
}

// TimeRange returns the minimum and maximum timestamps in the dataset.
// The second return is false for an empty dataset.
func (d *Dataset) TimeRange() (start, end time.Time, ok bool) {
	if len(d.Transactions) == 0 {
		return time.Time{}, time.Time{}, false
	}
	// Transactions are sorted ascending by timestamp.
	return d.Transactions[0].Timestamp, d.Transactions[len(d.Transactions)-1].Timestamp, true
}
