package dataprocessing

import (
	"context"
	"io"
	"log/slog"

	"insightcli/pkg/contracts/domain"
)

// Processor orchestrates the full ledger pipeline: load, validate schema,
// clean, analyze. It is stateless across calls; every call produces wholly
// independent outputs owned by the caller.
type Processor struct {
	logger  *slog.Logger
	cleaner *Cleaner
	engine  *Engine
}

// ProcessorConfig holds processor configuration
type ProcessorConfig struct {
	TopK int // ticker count for the concentration metric
}

// NewProcessor creates a pipeline processor
func NewProcessor(logger *slog.Logger, cfg ProcessorConfig) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		logger:  logger,
		cleaner: NewCleaner(logger),
		engine:  NewEngine(logger, cfg.TopK),
	}
}

// Result bundles the outputs of one pipeline run
type Result struct {
	Dataset   *domain.Dataset
	Analytics *domain.AnalyticsResult
	Report    *CleaningReport
}

// ProcessFile runs the full pipeline on a ledger file path
func (p *Processor) ProcessFile(ctx context.Context, path string) (*Result, error) {
	p.logger.InfoContext(ctx, "processing ledger file", slog.String("path", path))

	table, err := LoadCSV(path)
	if err != nil {
		return nil, err
	}

	return p.ProcessTable(ctx, table)
}

// ProcessReader runs the full pipeline on in-memory ledger content
func (p *Processor) ProcessReader(ctx context.Context, r io.Reader) (*Result, error) {
	table, err := ReadTable(r)
	if err != nil {
		return nil, err
	}
	return p.ProcessTable(ctx, table)
}

// ProcessTable runs schema validation, cleaning, and analytics on an
// already-loaded raw table. SchemaError and EmptyResultError from the
// cleaner propagate untouched.
func (p *Processor) ProcessTable(ctx context.Context, table *domain.RawTable) (*Result, error) {
	dataset, report, err := p.cleaner.Clean(ctx, table)
	if err != nil {
		return nil, err
	}

	analytics := p.engine.Compute(ctx, dataset)

	return &Result{
		Dataset:   dataset,
		Analytics: analytics,
		Report:    report,
	}, nil
}
