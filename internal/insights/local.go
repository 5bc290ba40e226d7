package insights

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"insightcli/pkg/contracts/domain"
)

// LocalGenerator produces deterministic, rule-based insights without
// calling any external provider. It is both a first-class mode and the
// fallback when a remote provider is unavailable or fails.
type LocalGenerator struct{}

// NewLocalGenerator creates the local heuristic generator
func NewLocalGenerator() *LocalGenerator {
	return &LocalGenerator{}
}

// Generate renders heuristic insight text from the aggregate analytics.
// The question is echoed for custom requests; the heuristics themselves do
// not depend on it.
func (g *LocalGenerator) Generate(_ context.Context, a *domain.AnalyticsResult, question string) string {
	var lines []string

	lines = append(lines, "## Local Insights")
	lines = append(lines, "- Deterministic heuristics computed from aggregate analytics; no external provider used.")
	if q := strings.TrimSpace(question); q != "" {
		lines = append(lines, fmt.Sprintf("- Question: %s", q))
	}
	lines = append(lines, "")

	lines = append(lines, "## Key Patterns")
	lines = append(lines, fmt.Sprintf("- Total transactions: %d", a.TotalTransactions))
	lines = append(lines, fmt.Sprintf("- Total notional volume: $%.2f", a.TotalVolume))
	buyCount := a.Composition.Buy.Count
	sellCount := a.Composition.Sell.Count
	if buyCount+sellCount > 0 {
		buyRatio := float64(buyCount) / float64(buyCount+sellCount)
		lines = append(lines, fmt.Sprintf("- Buy/Sell mix: BUY %d vs SELL %d (BUY ratio %.1f%%)",
			buyCount, sellCount, buyRatio*100))
	} else {
		lines = append(lines, "- Buy/Sell mix: insufficient data")
	}
	lines = append(lines, "")

	lines = append(lines, "## Concentrations / Imbalances")
	if len(a.VolumeByTicker) > 0 {
		top := head(a.VolumeByTicker, a.Composition.TopK)
		parts := make([]string, len(top))
		for i, tv := range top {
			parts[i] = fmt.Sprintf("%s ($%.2f)", tv.Ticker, tv.Volume)
		}
		lines = append(lines, fmt.Sprintf("- Top %d tickers by notional: %s", len(top), strings.Join(parts, ", ")))
		lines = append(lines, fmt.Sprintf("- Concentration: top-%d notional share %.1f%%",
			a.Composition.TopK, a.Composition.TopKConcentration*100))
	} else {
		lines = append(lines, "- No volume-by-ticker data available.")
	}
	if len(a.NetPositions) > 0 {
		top := head(a.NetPositions, 3)
		parts := make([]string, len(top))
		for i, np := range top {
			parts[i] = fmt.Sprintf("%s (%.0f)", np.Ticker, np.NetQuantity)
		}
		lines = append(lines, fmt.Sprintf("- Largest net positions (shares): %s", strings.Join(parts, ", ")))
	}
	lines = append(lines, "")

	lines = append(lines, "## Unusual Activity (Heuristic)")
	lines = append(lines, dailySpikeLine(a.DailyVolumes))
	if trader := a.MostActiveTrader(); trader != "" {
		lines = append(lines, fmt.Sprintf("- Most active trader: %s with %d transactions.",
			trader, a.TraderActivity[0].Count))
	} else {
		lines = append(lines, "- No trader activity data available.")
	}
	lines = append(lines, "")

	lines = append(lines, "## Suggested Follow-ups")
	lines = append(lines, "- Validate whether large net positions align with per-ticker risk limits.")
	lines = append(lines, "- Review the top trader's transactions for repeated intraday activity.")
	lines = append(lines, "- If spikes appear, inspect the underlying tickers and timestamps for that day.")

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// dailySpikeLine flags a daily volume spike when the busiest day reaches at
// least three times the median day.
func dailySpikeLine(volumes []domain.DailyVolume) string {
	if len(volumes) < 3 {
		return "- Not enough daily volume history to assess spikes."
	}

	sorted := make([]float64, len(volumes))
	topDate := volumes[0].Date
	topValue := volumes[0].Volume
	for i, dv := range volumes {
		sorted[i] = dv.Volume
		if dv.Volume > topValue {
			topValue = dv.Volume
			topDate = dv.Date
		}
	}
	sort.Float64s(sorted)

	median := sorted[len(sorted)/2]
	if len(sorted)%2 == 0 {
		median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}

	if median > 0 && topValue/median >= 3.0 {
		return fmt.Sprintf("- Daily volume spike: %s is %.1fx the median day.", topDate, topValue/median)
	}
	return "- No strong daily volume spikes detected (rule: top day >= 3x median)."
}
