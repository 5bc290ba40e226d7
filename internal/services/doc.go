// Package services implements the business logic layer between the HTTP
// handlers and the data pipeline. Services own orchestration and state;
// handlers only translate HTTP to service calls and back.
//
// AnalysisService runs the cleaning and analytics pipeline for uploaded
// ledgers and retains completed analyses in memory, keyed by analysis ID,
// so insight requests can reference them without re-uploading. Raw
// transaction rows stay inside the service; only aggregate analytics cross
// into insight generation.
package services
