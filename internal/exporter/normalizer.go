package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"insightcli/pkg/contracts/domain"
)

// Normalize converts a value destined for serialization into a strictly
// wire-safe form: timestamps become ISO-8601 strings, non-finite numbers
// become explicit nulls, and containers are walked recursively. The value
// kinds produced by the analytics engine form a closed set, so an
// unrecognized type passing through unchanged is a programming error
// upstream, not a normalization concern.
func Normalize(v interface{}) interface{} {
	switch value := v.(type) {
	case time.Time:
		return value.Format(time.RFC3339)
	case float64:
		return normalizeFloat(value)
	case float32:
		return normalizeFloat(float64(value))
	case map[string]interface{}:
		normalized := make(map[string]interface{}, len(value))
		for k, item := range value {
			normalized[k] = Normalize(item)
		}
		return normalized
	case []interface{}:
		normalized := make([]interface{}, len(value))
		for i, item := range value {
			normalized[i] = Normalize(item)
		}
		return normalized
	default:
		return value
	}
}

// normalizeFloat maps non-finite values to nil so they serialize as null
func normalizeFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}

// NormalizeAnalytics converts an analytics result into a plain
// JSON-serializable mapping. This is the only analytics shape that crosses
// the boundary to the insight generator and other downstream consumers;
// raw per-row transactions never do.
func NormalizeAnalytics(a *domain.AnalyticsResult) map[string]interface{} {
	volumeByTicker := make([]interface{}, len(a.VolumeByTicker))
	for i, tv := range a.VolumeByTicker {
		volumeByTicker[i] = map[string]interface{}{
			"ticker": tv.Ticker,
			"volume": tv.Volume,
		}
	}

	dailyVolume := make([]interface{}, len(a.DailyVolumes))
	for i, dv := range a.DailyVolumes {
		dailyVolume[i] = map[string]interface{}{
			"date":   dv.Date,
			"volume": dv.Volume,
		}
	}

	netPosition := make([]interface{}, len(a.NetPositions))
	for i, np := range a.NetPositions {
		netPosition[i] = map[string]interface{}{
			"ticker":       np.Ticker,
			"net_quantity": np.NetQuantity,
		}
	}

	traderActivity := make([]interface{}, len(a.TraderActivity))
	for i, ta := range a.TraderActivity {
		traderActivity[i] = map[string]interface{}{
			"trader_id":         ta.TraderID,
			"transaction_count": ta.Count,
			"total_notional":    ta.Notional,
		}
	}

	mapping := map[string]interface{}{
		"total_transactions": a.TotalTransactions,
		"total_volume":       a.TotalVolume,
		"unique_tickers":     a.UniqueTickers,
		"unique_traders":     a.UniqueTraders,
		"date_range": map[string]interface{}{
			"start": a.DateRangeStart,
			"end":   a.DateRangeEnd,
		},
		"volume_by_ticker": volumeByTicker,
		"daily_volume":     dailyVolume,
		"net_position":     netPosition,
		"trader_activity":  traderActivity,
		"composition": map[string]interface{}{
			"buy": map[string]interface{}{
				"count":    a.Composition.Buy.Count,
				"notional": a.Composition.Buy.Notional,
			},
			"sell": map[string]interface{}{
				"count":    a.Composition.Sell.Count,
				"notional": a.Composition.Sell.Notional,
			},
			"top_k":               a.Composition.TopK,
			"top_k_concentration": a.Composition.TopKConcentration,
		},
	}

	return Normalize(mapping).(map[string]interface{})
}

// JSONWriter writes normalized analytics documents
type JSONWriter struct {
	logger *slog.Logger
}

// NewJSONWriter creates a new JSON writer instance
func NewJSONWriter(logger *slog.Logger) *JSONWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &JSONWriter{logger: logger}
}

// WriteAnalytics writes a normalized analytics document to a file
func (w *JSONWriter) WriteAnalytics(path string, a *domain.AnalyticsResult) error {
	w.logger.Info("Writing analytics JSON",
		slog.String("path", path))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	document := map[string]interface{}{
		"analytics":    NormalizeAnalytics(a),
		"generated_at": time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(document); err != nil {
		return fmt.Errorf("failed to encode analytics JSON: %w", err)
	}

	return nil
}
