// Package distributionservice owns quote distribution for Renopick.
//
// The module owns the distribution_rounds and vendor_assignments tables and
// exposes the distribute command (vendor selection + cooldown throttle),
// cooldown/assignment queries, and the outbox relay worker entrypoint.
package distributionservice
