package dataprocessing

import (
	"fmt"
	"strings"

	"insightcli/pkg/contracts/domain"
)

// SchemaError reports required ledger columns absent from an input table.
// It aborts the pipeline before any row-level work.
type SchemaError struct {
	MissingColumns []string
}

// Error implements the error interface
func (e *SchemaError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
}

// ValidateSchema checks a raw table against the fixed required-column set.
// Cell values are not inspected; only the header matters. Column order is
// irrelevant and extra columns are allowed.
func ValidateSchema(table *domain.RawTable) error {
	present := make(map[string]bool, len(table.Columns))
	for _, col := range table.Columns {
		present[col] = true
	}

	var missing []string
	for _, col := range domain.RequiredColumns() {
		if !present[col] {
			missing = append(missing, col)
		}
	}

	if len(missing) > 0 {
		return &SchemaError{MissingColumns: missing}
	}
	return nil
}
