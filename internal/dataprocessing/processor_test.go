package dataprocessing

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessor_ProcessReader(t *testing.T) {
	p := NewProcessor(nil, ProcessorConfig{})

	content := `timestamp,ticker,action,quantity,price,trader_id
2024-01-15 09:30:00,AAPL,BUY,10,100,T001
2024-01-15 10:00:00,GOOGL,buy,5,50,T002
2024-01-16 10:15:00,AAPL,SELL,4,110,T001
bad-timestamp,AAPL,BUY,1,1,T001
`

	result, err := p.ProcessReader(context.Background(), strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, 3, result.Dataset.Len())
	assert.Equal(t, 4, result.Report.InputRows)
	assert.Equal(t, 1, result.Report.Rejected)
	assert.Equal(t, 3, result.Analytics.TotalTransactions)
	assert.Equal(t, "AAPL", result.Analytics.TopTicker())
}

func TestProcessor_ProcessReader_SchemaFailure(t *testing.T) {
	p := NewProcessor(nil, ProcessorConfig{})

	_, err := p.ProcessReader(context.Background(), strings.NewReader("date,symbol\n2024-01-15,AAPL\n"))

	var schemaErr *SchemaError
	require.ErrorAs(t, err, &schemaErr)
}

func TestProcessor_ProcessReader_AllRejected(t *testing.T) {
	p := NewProcessor(nil, ProcessorConfig{})

	content := `timestamp,ticker,action,quantity,price,trader_id
bad,AAPL,BUY,1,1,T001
`
	_, err := p.ProcessReader(context.Background(), strings.NewReader(content))

	var emptyErr *EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, 1, emptyErr.Report.InputRows)
}

func TestProcessor_ProcessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	p := NewProcessor(nil, ProcessorConfig{TopK: 2})
	result, err := p.ProcessFile(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Dataset.Len())
	assert.Equal(t, 2, result.Analytics.Composition.TopK)
}
