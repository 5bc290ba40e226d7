package exporter

import (
	"strconv"
	"time"
)

// formatNumber formats a float64 for text export without precision loss.
// The shortest representation that round-trips is used, so 13.4 stays 13.4
// and integral values carry no trailing decimals.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatTimestamp formats an instant in the canonical ledger layout
func formatTimestamp(t time.Time) string {
	return t.Format("2006-01-02 15:04:05")
}
