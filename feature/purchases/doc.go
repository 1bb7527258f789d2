// Package purchases implements the purchase reconciliation and entitlement
// resolution engine. It receives purchase updates and history replays from
// the billing layer, reports each purchase to the entitlement backend at most
// once per session, merges backend entitlement data with billing catalog
// metadata, and maintains the cached purchaser snapshot.
//
// # Identity
//
// The engine owns the user identity for its lifetime. A caller-supplied id is
// used verbatim; otherwise the engine reuses the cached generated id or
// generates and persists a new one. Sessions without a caller-supplied id run
// in restore mode: every reported purchase is flagged as a restore.
//
// # Reporting semantics
//
// Purchase tokens are checked-and-marked atomically before the backend call
// is issued, so a token is submitted at most once per engine lifetime no
// matter how often the billing layer re-delivers it. Failed submissions stay
// marked; retrying requires a new restore or purchase action.
//
// # Entitlement resolution
//
// Offerings come back from the backend referencing product ids only. The
// engine resolves metadata in two sequential phases: one subscription-catalog
// query for the full id set, then one non-subscription query for whatever the
// first phase left unresolved. The second query is skipped entirely when the
// first phase resolves everything.
package purchases
