package insights

import (
	"fmt"
	"sort"
	"strings"

	"insightcli/pkg/contracts/domain"
)

// buildDataSummary renders the compact aggregate summary included in every
// prompt. This is the entire data surface exposed to remote providers.
func buildDataSummary(a *domain.AnalyticsResult, topN int) string {
	var lines []string

	lines = append(lines, "OVERALL STATISTICS:")
	lines = append(lines, fmt.Sprintf("- Total Transactions: %d", a.TotalTransactions))
	lines = append(lines, fmt.Sprintf("- Total Volume (Notional): $%.2f", a.TotalVolume))
	lines = append(lines, fmt.Sprintf("- Unique Tickers: %d", a.UniqueTickers))
	lines = append(lines, fmt.Sprintf("- Unique Traders: %d", a.UniqueTraders))
	lines = append(lines, fmt.Sprintf("- Date Range: %s to %s",
		a.DateRangeStart.Format("2006-01-02 15:04:05"),
		a.DateRangeEnd.Format("2006-01-02 15:04:05")))
	lines = append(lines, "")

	lines = append(lines, "ACTION DISTRIBUTION:")
	lines = append(lines, fmt.Sprintf("- BUY: %d transactions", a.Composition.Buy.Count))
	lines = append(lines, fmt.Sprintf("- SELL: %d transactions", a.Composition.Sell.Count))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("TOP %d TICKERS BY VOLUME (Notional):", topN))
	for _, tv := range head(a.VolumeByTicker, topN) {
		lines = append(lines, fmt.Sprintf("- %s: $%.2f", tv.Ticker, tv.Volume))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("TOP %d NET POSITIONS (Shares):", topN))
	for _, np := range head(a.NetPositions, topN) {
		lines = append(lines, fmt.Sprintf("- %s: %.0f shares", np.Ticker, np.NetQuantity))
	}
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("TOP %d MOST ACTIVE TRADERS:", topN))
	for _, ta := range head(a.TraderActivity, topN) {
		lines = append(lines, fmt.Sprintf("- %s: %d tx, $%.2f notional", ta.TraderID, ta.Count, ta.Notional))
	}
	lines = append(lines, "")

	// Top volume days help spike detection without a huge prompt.
	if len(a.DailyVolumes) > 0 {
		byVolume := make([]domain.DailyVolume, len(a.DailyVolumes))
		copy(byVolume, a.DailyVolumes)
		sort.Slice(byVolume, func(i, j int) bool {
			if byVolume[i].Volume != byVolume[j].Volume {
				return byVolume[i].Volume > byVolume[j].Volume
			}
			return byVolume[i].Date < byVolume[j].Date
		})
		lines = append(lines, "TOP DAILY VOLUME DAYS:")
		for _, dv := range head(byVolume, 3) {
			lines = append(lines, fmt.Sprintf("- %s: $%.2f", dv.Date, dv.Volume))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// head returns up to n leading elements of a slice
func head[T any](items []T, n int) []T {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
