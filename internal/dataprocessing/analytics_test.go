package dataprocessing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insightcli/pkg/contracts/domain"
)

// sampleDataset mirrors a small mixed ledger: two traders, two tickers,
// activity spread over two days.
func sampleDataset(t *testing.T) *domain.Dataset {
	t.Helper()

	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "AAPL", "BUY", "10", "100", "T001"),
		ledgerRow("2024-01-15 11:00:00", "GOOGL", "BUY", "5", "50", "T002"),
		ledgerRow("2024-01-16 10:15:00", "AAPL", "SELL", "4", "110", "T001"),
	))
	require.NoError(t, err)
	return ds
}

func TestEngine_Compute(t *testing.T) {
	engine := NewEngine(nil, DefaultTopK)
	a := engine.Compute(context.Background(), sampleDataset(t))

	assert.Equal(t, 3, a.TotalTransactions)
	assert.Equal(t, 2, a.UniqueTickers)
	assert.Equal(t, 2, a.UniqueTraders)
	// 10*100 + 5*50 + 4*110
	assert.InDelta(t, 1690.0, a.TotalVolume, 1e-9)
	assert.Equal(t, time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC), a.DateRangeStart)
	assert.Equal(t, time.Date(2024, 1, 16, 10, 15, 0, 0, time.UTC), a.DateRangeEnd)
	assert.Equal(t, "AAPL", a.TopTicker())
	assert.Equal(t, "T001", a.MostActiveTrader())
}

func TestVolumeByTicker(t *testing.T) {
	volumes := VolumeByTicker(sampleDataset(t))

	require.Len(t, volumes, 2)
	assert.Equal(t, domain.TickerVolume{Ticker: "AAPL", Volume: 1440}, volumes[0])
	assert.Equal(t, domain.TickerVolume{Ticker: "GOOGL", Volume: 250}, volumes[1])
}

func TestVolumeByTicker_TieBreaksByTicker(t *testing.T) {
	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "ZZZ", "BUY", "1", "100", "T001"),
		ledgerRow("2024-01-15 09:31:00", "AAA", "BUY", "1", "100", "T001"),
	))
	require.NoError(t, err)

	volumes := VolumeByTicker(ds)
	require.Len(t, volumes, 2)
	assert.Equal(t, "AAA", volumes[0].Ticker)
	assert.Equal(t, "ZZZ", volumes[1].Ticker)
}

func TestDailyVolumeTrend(t *testing.T) {
	daily := DailyVolumeTrend(sampleDataset(t))

	require.Len(t, daily, 2)
	assert.Equal(t, domain.DailyVolume{Date: "2024-01-15", Volume: 1250}, daily[0])
	assert.Equal(t, domain.DailyVolume{Date: "2024-01-16", Volume: 440}, daily[1])
}

func TestNetPositionByTicker(t *testing.T) {
	positions := NetPositionByTicker(sampleDataset(t))

	require.Len(t, positions, 2)
	// AAPL: 10 bought - 4 sold; GOOGL: 5 bought, nothing sold.
	assert.Equal(t, domain.TickerPosition{Ticker: "AAPL", NetQuantity: 6}, positions[0])
	assert.Equal(t, domain.TickerPosition{Ticker: "GOOGL", NetQuantity: 5}, positions[1])
}

func TestNetPositionByTicker_SellOnlyTickerGoesNegative(t *testing.T) {
	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "MSFT", "SELL", "7", "400", "T001"),
	))
	require.NoError(t, err)

	positions := NetPositionByTicker(ds)
	require.Len(t, positions, 1)
	assert.Equal(t, -7.0, positions[0].NetQuantity)
}

func TestTraderActivityRanking(t *testing.T) {
	ranking := TraderActivityRanking(sampleDataset(t))

	require.Len(t, ranking, 2)
	assert.Equal(t, "T001", ranking[0].TraderID)
	assert.Equal(t, 2, ranking[0].Count)
	assert.InDelta(t, 1440.0, ranking[0].Notional, 1e-9)
	assert.Equal(t, "T002", ranking[1].TraderID)
	assert.Equal(t, 1, ranking[1].Count)
}

func TestTraderActivityRanking_CountTieBrokenByNotional(t *testing.T) {
	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "AAPL", "BUY", "1", "100", "T001"),
		ledgerRow("2024-01-15 09:31:00", "AAPL", "BUY", "1", "500", "T002"),
	))
	require.NoError(t, err)

	ranking := TraderActivityRanking(ds)
	require.Len(t, ranking, 2)
	assert.Equal(t, "T002", ranking[0].TraderID)
	assert.Equal(t, "T001", ranking[1].TraderID)
}

func TestCompositionStats(t *testing.T) {
	ds := sampleDataset(t)
	volumes := VolumeByTicker(ds)

	comp := CompositionStats(ds, volumes, 1690, DefaultTopK)

	assert.Equal(t, 2, comp.Buy.Count)
	assert.InDelta(t, 1250.0, comp.Buy.Notional, 1e-9)
	assert.Equal(t, 1, comp.Sell.Count)
	assert.InDelta(t, 440.0, comp.Sell.Notional, 1e-9)
	assert.Equal(t, DefaultTopK, comp.TopK)
	// Only two tickers exist, so top-3 covers everything.
	assert.InDelta(t, 1.0, comp.TopKConcentration, 1e-9)
}

func TestCompositionStats_TopKSmallerThanTickerCount(t *testing.T) {
	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "AAPL", "BUY", "1", "600", "T001"),
		ledgerRow("2024-01-15 09:31:00", "GOOGL", "BUY", "1", "300", "T001"),
		ledgerRow("2024-01-15 09:32:00", "MSFT", "BUY", "1", "100", "T001"),
	))
	require.NoError(t, err)

	volumes := VolumeByTicker(ds)
	comp := CompositionStats(ds, volumes, 1000, 1)

	assert.InDelta(t, 0.6, comp.TopKConcentration, 1e-9)
}

func TestCompositionStats_ZeroVolumeGuard(t *testing.T) {
	comp := CompositionStats(&domain.Dataset{}, nil, 0, DefaultTopK)
	assert.Zero(t, comp.TopKConcentration)
}

func TestAnalytics_SumConsistency(t *testing.T) {
	engine := NewEngine(nil, DefaultTopK)
	a := engine.Compute(context.Background(), sampleDataset(t))

	var byTicker, byDay float64
	for _, tv := range a.VolumeByTicker {
		byTicker += tv.Volume
	}
	for _, dv := range a.DailyVolumes {
		byDay += dv.Volume
	}
	assert.InDelta(t, a.TotalVolume, byTicker, 1e-9)
	assert.InDelta(t, a.TotalVolume, byDay, 1e-9)
	assert.InDelta(t, a.TotalVolume, a.Composition.Buy.Notional+a.Composition.Sell.Notional, 1e-9)
}

func TestEngine_Compute_SingleTransaction(t *testing.T) {
	cleaner := NewCleaner(nil)
	ds, _, err := cleaner.Clean(context.Background(), ledgerTable(
		ledgerRow("2024-01-15 09:30:00", "AAPL", "BUY", "2", "50", "T001"),
	))
	require.NoError(t, err)

	engine := NewEngine(nil, DefaultTopK)
	a := engine.Compute(context.Background(), ds)

	assert.Equal(t, 1, a.TotalTransactions)
	assert.Equal(t, a.DateRangeStart, a.DateRangeEnd)
	require.Len(t, a.DailyVolumes, 1)
	assert.InDelta(t, 100.0, a.DailyVolumes[0].Volume, 1e-9)
}
