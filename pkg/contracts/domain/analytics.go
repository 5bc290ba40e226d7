package domain

import (
	"time"
)

// TickerVolume is one entry of the volume-by-ticker metric
type TickerVolume struct {
	Ticker string  `json:"ticker"`
	Volume float64 `json:"volume"`
}

// DailyVolume is one entry of the daily volume trend, keyed by calendar date
type DailyVolume struct {
	Date   string  `json:"date"` // 2006-01-02
	Volume float64 `json:"volume"`
}

// TickerPosition is the net signed share count for one ticker.
// BUY quantities add, SELL quantities subtract; a ticker with only one side
// present is treated as having zero for the missing side.
type TickerPosition struct {
	Ticker      string  `json:"ticker"`
	NetQuantity float64 `json:"net_quantity"`
}

// TraderActivity is one entry of the trader activity ranking
type TraderActivity struct {
	TraderID string  `json:"trader_id"`
	Count    int     `json:"transaction_count"`
	Notional float64 `json:"total_notional"`
}

// ActionStats aggregates count and notional for one trade side
type ActionStats struct {
	Count    int     `json:"count"`
	Notional float64 `json:"notional"`
}

// Composition describes the BUY/SELL split and the fraction of total
// notional contributed by the top-K tickers by volume.
type Composition struct {
	Buy               ActionStats `json:"buy"`
	Sell              ActionStats `json:"sell"`
	TopK              int         `json:"top_k"`
	TopKConcentration float64     `json:"top_k_concentration"`
}

// AnalyticsResult holds the full set of aggregate views computed from one
// cleaned dataset. Each slice is already ordered per the deterministic
// tie-break rules of its metric.
type AnalyticsResult struct {
	TotalTransactions int       `json:"total_transactions"`
	TotalVolume       float64   `json:"total_volume"`
	UniqueTickers     int       `json:"unique_tickers"`
	UniqueTraders     int       `json:"unique_traders"`
	DateRangeStart    time.Time `json:"date_range_start"`
	DateRangeEnd      time.Time `json:"date_range_end"`

	VolumeByTicker []TickerVolume   `json:"volume_by_ticker"`
	DailyVolumes   []DailyVolume    `json:"daily_volume"`
	NetPositions   []TickerPosition `json:"net_position"`
	TraderActivity []TraderActivity `json:"trader_activity"`
	Composition    Composition      `json:"composition"`
}

// TopTicker returns the ticker with the highest traded notional, or "" for
// an empty result.
func (a *AnalyticsResult) TopTicker() string {
	if len(a.VolumeByTicker) == 0 {
		return ""
	}
	return a.VolumeByTicker[0].Ticker
}

// MostActiveTrader returns the highest ranked trader, or "" for an empty result
func (a *AnalyticsResult) MostActiveTrader() string {
	if len(a.TraderActivity) == 0 {
		return ""
	}
	return a.TraderActivity[0].TraderID
}
