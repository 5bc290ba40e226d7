// Package dataprocessing implements the transaction ledger pipeline:
// loading a delimited ledger file into a raw table, validating its schema,
// cleaning and normalizing rows into an immutable dataset, computing the
// aggregate analytics views, and answering point lookups against the
// cleaned data.
//
// The pipeline is strictly batch-oriented. One ProcessFile call fully
// ingests one file; the resulting dataset and analytics are owned by the
// caller and never shared. Row-level failures are tallied in a
// CleaningReport rather than raised; only a missing required column
// (SchemaError) or an ingestion that rejects every row (EmptyResultError)
// aborts the pipeline.
package dataprocessing
