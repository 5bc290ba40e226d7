package dataprocessing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "insightcli/internal/errors"
	"insightcli/pkg/contracts/domain"
)

const sampleCSV = `timestamp,ticker,action,quantity,price,trader_id
2024-01-15 09:30:00,AAPL,BUY,100,185.50,T001
2024-01-15 10:00:00,GOOGL,SELL,50,140.00,T002
`

func TestReadTable(t *testing.T) {
	table, err := ReadTable(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.Equal(t, domain.RequiredColumns(), table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "AAPL", table.Rows[0][domain.ColumnTicker])
	assert.Equal(t, "140.00", table.Rows[1][domain.ColumnPrice])
}

func TestReadTable_StripsBOM(t *testing.T) {
	table, err := ReadTable(strings.NewReader("\xEF\xBB\xBF" + sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, domain.ColumnTimestamp, table.Columns[0])
}

func TestReadTable_PadsShortRows(t *testing.T) {
	content := "timestamp,ticker,action,quantity,price,trader_id\n2024-01-15 09:30:00,AAPL\n"

	table, err := ReadTable(strings.NewReader(content))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)

	row := table.Rows[0]
	assert.Equal(t, "AAPL", row[domain.ColumnTicker])
	assert.Equal(t, "", row[domain.ColumnTraderID])
}

func TestReadTable_EmptyInput(t *testing.T) {
	_, err := ReadTable(strings.NewReader(""))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)
}

func TestReadTable_HeaderOnly(t *testing.T) {
	table, err := ReadTable(strings.NewReader("timestamp,ticker,action,quantity,price,trader_id\n"))
	require.NoError(t, err)
	assert.Empty(t, table.Rows)
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Len(t, table.Rows, 2)
}

func TestLoadCSV_MissingFile(t *testing.T) {
	_, err := LoadCSV(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}
