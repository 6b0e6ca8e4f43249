// Package comparisonengine owns side-by-side quote comparison for Renopick.
//
// The module reads already-persisted quotes, normalizes their line items,
// and computes the per-category comparison table, mapping rate, and price
// differences. It owns no tables and performs no writes.
package comparisonengine
