// Package insights turns aggregated transaction analytics into
// natural-language insight text. Generation is swappable between a
// deterministic local engine and remote text-generation providers. In
// every mode only compact aggregate summaries leave this package; raw
// per-row transaction data never reaches a provider.
//
// Remote failures degrade to the local engine rather than propagating, so
// insight generation never fails an otherwise successful analysis.
package insights
