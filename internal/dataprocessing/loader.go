package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strings"

	apperrors "insightcli/internal/errors"
	"insightcli/pkg/contracts/domain"
)

// LoadCSV reads a delimited ledger file into a raw table. The whole file is
// materialized in one atomic load; no row-level validation happens here.
func LoadCSV(path string) (*domain.RawTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open ledger file", err)
	}
	defer file.Close()

	table, err := ReadTable(file)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded ledger file",
		slog.String("path", path),
		slog.Int("row_count", len(table.Rows)))

	return table, nil
}

// ReadTable parses delimited ledger content from a reader into a raw table.
// A UTF-8 BOM before the header is stripped. Rows shorter than the header
// are padded with empty cells so every row exposes the full column set.
func ReadTable(r io.Reader) (*domain.RawTable, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to read ledger content", err)
	}

	// Strip BOM if present
	content = bytes.TrimPrefix(content, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1 // ragged rows are handled below
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewParsingError("failed to parse ledger CSV", err)
	}

	if len(records) == 0 {
		return nil, apperrors.NewParsingError("ledger file has no header row", nil)
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}

	table := &domain.RawTable{
		Columns: columns,
		Rows:    make([]domain.RawRow, 0, len(records)-1),
	}

	for _, record := range records[1:] {
		row := make(domain.RawRow, len(columns))
		for i, col := range columns {
			if i < len(record) {
				row[col] = record[i]
			} else {
				row[col] = ""
			}
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}
