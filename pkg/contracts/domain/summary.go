package domain

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// SummaryStats is the headline view of an analytics result, formatted for
// display surfaces (CLI output, insight prompts, web responses).
type SummaryStats struct {
	TotalTransactions int    `json:"total_transactions"`
	TotalVolume       string `json:"total_volume"`
	UniqueTickers     int    `json:"unique_tickers"`
	UniqueTraders     int    `json:"unique_traders"`
	DateRange         string `json:"date_range"`
	TopTickerByVolume string `json:"top_ticker_by_volume"`
	MostActiveTrader  string `json:"most_active_trader"`
}

// NewSummaryStats builds the display summary for an analytics result
func NewSummaryStats(a *AnalyticsResult) SummaryStats {
	topTicker := a.TopTicker()
	if topTicker == "" {
		topTicker = "N/A"
	}
	topTrader := a.MostActiveTrader()
	if topTrader == "" {
		topTrader = "N/A"
	}

	return SummaryStats{
		TotalTransactions: a.TotalTransactions,
		TotalVolume:       formatVolume(a.TotalVolume),
		UniqueTickers:     a.UniqueTickers,
		UniqueTraders:     a.UniqueTraders,
		DateRange: fmt.Sprintf("%s to %s",
			a.DateRangeStart.Format("2006-01-02 15:04:05"),
			a.DateRangeEnd.Format("2006-01-02 15:04:05")),
		TopTickerByVolume: topTicker,
		MostActiveTrader:  topTrader,
	}
}

var volumePrinter = message.NewPrinter(language.English)

// formatVolume renders a dollar amount with thousands separators,
// e.g. 1234567.5 -> "$1,234,567.50".
func formatVolume(v float64) string {
	return volumePrinter.Sprintf("$%.2f", v)
}
