package dataprocessing

import (
	"strings"
	"time"

	"insightcli/pkg/contracts/domain"
)

// Query answers point lookups against a cleaned dataset without
// recomputation. Results are sub-sequences preserving the dataset order;
// the underlying dataset is never mutated. An empty result is a valid,
// non-error outcome.
type Query struct {
	dataset *domain.Dataset
}

// NewQuery creates a query layer over a cleaned dataset
func NewQuery(dataset *domain.Dataset) *Query {
	return &Query{dataset: dataset}
}

// ByTicker returns all transactions for a ticker. The lookup key is
// normalized the same way the cleaner normalizes tickers.
func (q *Query) ByTicker(ticker string) []domain.Transaction {
	key := strings.ToUpper(strings.TrimSpace(ticker))
	var result []domain.Transaction
	for _, tx := range q.dataset.Transactions {
		if tx.Ticker == key {
			result = append(result, tx)
		}
	}
	return result
}

// ByTrader returns all transactions for a trader ID, normalized like the
// cleaner normalizes trader IDs.
func (q *Query) ByTrader(traderID string) []domain.Transaction {
	key := strings.ToUpper(strings.TrimSpace(traderID))
	var result []domain.Transaction
	for _, tx := range q.dataset.Transactions {
		if tx.TraderID == key {
			result = append(result, tx)
		}
	}
	return result
}

// ByTimeRange returns transactions within [start, end], bounds inclusive.
// A nil bound leaves that side of the range open.
func (q *Query) ByTimeRange(start, end *time.Time) []domain.Transaction {
	var result []domain.Transaction
	for _, tx := range q.dataset.Transactions {
		if start != nil && tx.Timestamp.Before(*start) {
			continue
		}
		if end != nil && tx.Timestamp.After(*end) {
			continue
		}
		result = append(result, tx)
	}
	return result
}
