package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"insightcli/pkg/contracts/domain"
)

// DefaultTopK is the default ticker count for the concentration metric
const DefaultTopK = 3

// Engine computes the aggregate analytics views over a cleaned dataset.
// Every metric is pure and stateless relative to the others; the engine
// only carries configuration.
type Engine struct {
	logger *slog.Logger
	topK   int
}

// NewEngine creates an analytics engine. A non-positive topK falls back to
// the default.
func NewEngine(logger *slog.Logger, topK int) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Engine{logger: logger, topK: topK}
}

// Compute calculates all aggregate views for the dataset. The result is
// fully deterministic: every ranking applies the fixed tie-break rules, so
// re-running on the same input yields an identical result.
func (e *Engine) Compute(ctx context.Context, ds *domain.Dataset) *domain.AnalyticsResult {
	result := &domain.AnalyticsResult{
		TotalTransactions: ds.Len(),
		VolumeByTicker:    VolumeByTicker(ds),
		DailyVolumes:      DailyVolumeTrend(ds),
		NetPositions:      NetPositionByTicker(ds),
		TraderActivity:    TraderActivityRanking(ds),
	}

	for _, tv := range result.VolumeByTicker {
		result.TotalVolume += tv.Volume
	}
	result.UniqueTickers = len(result.VolumeByTicker)
	result.UniqueTraders = len(result.TraderActivity)

	if start, end, ok := ds.TimeRange(); ok {
		result.DateRangeStart = start
		result.DateRangeEnd = end
	}

	result.Composition = CompositionStats(ds, result.VolumeByTicker, result.TotalVolume, e.topK)

	e.logger.InfoContext(ctx, "analytics computed",
		slog.Int("transactions", result.TotalTransactions),
		slog.Int("tickers", result.UniqueTickers),
		slog.Int("traders", result.UniqueTraders),
		slog.Float64("total_volume", result.TotalVolume))

	return result
}

// VolumeByTicker sums notional per ticker, descending by volume with ties
// broken by ticker lexical order.
func VolumeByTicker(ds *domain.Dataset) []domain.TickerVolume {
	volumes := make(map[string]float64)
	for _, tx := range ds.Transactions {
		volumes[tx.Ticker] += tx.Notional
	}

	result := make([]domain.TickerVolume, 0, len(volumes))
	for ticker, volume := range volumes {
		result = append(result, domain.TickerVolume{Ticker: ticker, Volume: volume})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Volume != result[j].Volume {
			return result[i].Volume > result[j].Volume
		}
		return result[i].Ticker < result[j].Ticker
	})

	return result
}

// DailyVolumeTrend sums notional per calendar date, ascending by date.
// Only dates with at least one transaction appear.
func DailyVolumeTrend(ds *domain.Dataset) []domain.DailyVolume {
	volumes := make(map[string]float64)
	for _, tx := range ds.Transactions {
		volumes[tx.TradeDate] += tx.Notional
	}

	result := make([]domain.DailyVolume, 0, len(volumes))
	for date, volume := range volumes {
		result = append(result, domain.DailyVolume{Date: date, Volume: volume})
	}

	// ISO dates sort correctly as strings.
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})

	return result
}

// NetPositionByTicker computes BUY quantity minus SELL quantity per ticker.
// Both sides are accumulated before subtraction, so a ticker with only one
// side present gets zero for the missing side rather than an undefined
// value. Ordered descending by net quantity, ties by ticker lexical order.
func NetPositionByTicker(ds *domain.Dataset) []domain.TickerPosition {
	buys := make(map[string]float64)
	sells := make(map[string]float64)
	tickers := make(map[string]bool)

	for _, tx := range ds.Transactions {
		tickers[tx.Ticker] = true
		switch tx.Action {
		case domain.ActionBuy:
			buys[tx.Ticker] += tx.Quantity
		case domain.ActionSell:
			sells[tx.Ticker] += tx.Quantity
		}
	}

	result := make([]domain.TickerPosition, 0, len(tickers))
	for ticker := range tickers {
		result = append(result, domain.TickerPosition{
			Ticker:      ticker,
			NetQuantity: buys[ticker] - sells[ticker],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].NetQuantity != result[j].NetQuantity {
			return result[i].NetQuantity > result[j].NetQuantity
		}
		return result[i].Ticker < result[j].Ticker
	})

	return result
}

// TraderActivityRanking computes transaction count and total notional per
// trader, ranked descending by count, ties descending by notional, then by
// trader ID ascending.
func TraderActivityRanking(ds *domain.Dataset) []domain.TraderActivity {
	activity := make(map[string]*domain.TraderActivity)
	for _, tx := range ds.Transactions {
		entry, ok := activity[tx.TraderID]
		if !ok {
			entry = &domain.TraderActivity{TraderID: tx.TraderID}
			activity[tx.TraderID] = entry
		}
		entry.Count++
		entry.Notional += tx.Notional
	}

	result := make([]domain.TraderActivity, 0, len(activity))
	for _, entry := range activity {
		result = append(result, *entry)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		if result[i].Notional != result[j].Notional {
			return result[i].Notional > result[j].Notional
		}
		return result[i].TraderID < result[j].TraderID
	})

	return result
}

// CompositionStats aggregates count and notional per action and computes
// the fraction of total notional contributed by the top-K tickers.
// volumeByTicker must already be ordered descending by volume.
func CompositionStats(ds *domain.Dataset, volumeByTicker []domain.TickerVolume, totalVolume float64, topK int) domain.Composition {
	comp := domain.Composition{TopK: topK}

	for _, tx := range ds.Transactions {
		switch tx.Action {
		case domain.ActionBuy:
			comp.Buy.Count++
			comp.Buy.Notional += tx.Notional
		case domain.ActionSell:
			comp.Sell.Count++
			comp.Sell.Notional += tx.Notional
		}
	}

	if totalVolume > 0 {
		var topVolume float64
		for i, tv := range volumeByTicker {
			if i >= topK {
				break
			}
			topVolume += tv.Volume
		}
		comp.TopKConcentration = topVolume / totalVolume
	}

	return comp
}
