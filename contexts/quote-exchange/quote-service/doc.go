// Package quoteservice owns vendor quotes for Renopick.
//
// The module owns the quotes and quote_templates tables and exposes quote
// submission (schema and total-reconciliation validation), status updates,
// per-project listing, and template autocomplete for the vendor quote form.
package quoteservice
