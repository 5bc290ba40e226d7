package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExcelWriter_WriteAnalytics(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "analytics.xlsx")

	w := NewExcelWriter(nil)
	require.NoError(t, w.WriteAnalytics(path, analyticsFixture()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.ElementsMatch(t, []string{
		"Summary", "Volume by Ticker", "Daily Volume", "Net Position", "Trader Activity",
	}, sheets)

	ticker, err := f.GetCellValue("Volume by Ticker", "A2")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", ticker)

	volume, err := f.GetCellValue("Volume by Ticker", "B2")
	require.NoError(t, err)
	assert.Equal(t, "1440", volume)
}
