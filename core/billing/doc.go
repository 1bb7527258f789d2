// Package billing defines the contract the purchase engine consumes from the
// platform billing layer: catalog queries, purchase-history queries, purchase
// initiation, and the listener interface through which purchase updates are
// delivered back.
//
// The platform billing service itself lives outside this codebase. The package
// ships a StaticClient backed by a local JSON catalog so the CLI harness and
// integration setups can exercise the full purchase flow without a device.
//
// # Categories
//
// Catalog and history queries are always scoped to a single product category,
// either CategorySubscription or CategoryOneTime. The engine's two-phase
// entitlement resolution leans on this partition.
package billing
