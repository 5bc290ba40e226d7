package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuery_ByTicker(t *testing.T) {
	q := NewQuery(sampleDataset(t))

	txs := q.ByTicker(" aapl ")
	require.Len(t, txs, 2)
	for _, tx := range txs {
		assert.Equal(t, "AAPL", tx.Ticker)
	}

	assert.Empty(t, q.ByTicker("MSFT"))
}

func TestQuery_ByTrader(t *testing.T) {
	q := NewQuery(sampleDataset(t))

	assert.Len(t, q.ByTrader("t001"), 2)
	assert.Len(t, q.ByTrader("T002"), 1)
	assert.Empty(t, q.ByTrader("T999"))
}

func TestQuery_ByTimeRange(t *testing.T) {
	q := NewQuery(sampleDataset(t))

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 15, 23, 59, 59, 0, time.UTC)

	assert.Len(t, q.ByTimeRange(&start, &end), 2)

	// Inclusive bounds: a range equal to one timestamp matches that row.
	exact := time.Date(2024, 1, 16, 10, 15, 0, 0, time.UTC)
	assert.Len(t, q.ByTimeRange(&exact, &exact), 1)

	// Open-ended sides.
	assert.Len(t, q.ByTimeRange(nil, &end), 2)
	assert.Len(t, q.ByTimeRange(&start, nil), 3)
	assert.Len(t, q.ByTimeRange(nil, nil), 3)
}

func TestQuery_PreservesDatasetOrder(t *testing.T) {
	ds := sampleDataset(t)
	q := NewQuery(ds)

	txs := q.ByTimeRange(nil, nil)
	require.Len(t, txs, ds.Len())
	for i, tx := range txs {
		assert.Equal(t, ds.Transactions[i], tx)
	}
}
