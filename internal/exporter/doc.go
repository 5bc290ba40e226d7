// Package exporter serializes cleaned datasets and analytics results to
// their export surfaces: delimited text tables, normalized JSON documents,
// and Excel workbooks.
//
// The normalizer is the serialization boundary for analytics: timestamps
// become ISO-8601 strings and non-finite numbers become explicit nulls, so
// downstream consumers never see numeric-library artifacts.
package exporter
