// Package backend provides the client for the remote entitlement backend:
// purchaser-info fetches, entitlement fetches, and receipt submissions.
//
// PurchaserInfo payloads are treated as opaque. The engine caches and forwards
// them without interpretation, which keeps this library decoupled from backend
// schema evolution. Entitlement payloads are the one structure the client does
// decode, because the engine has to walk offerings to resolve their catalog
// metadata.
//
// All client operations are asynchronous and callback-based. The HTTP
// implementation runs each call on its own goroutine with a strict-timeout
// transport; failures are reported as *Error values carrying the HTTP status.
package backend
