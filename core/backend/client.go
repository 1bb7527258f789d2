package backend

import "context"

// PurchaserInfoCallback receives the result of a purchaser-info fetch or a
// receipt submission.
type PurchaserInfoCallback func(info *PurchaserInfo, err error)

// EntitlementsCallback receives the result of an entitlements fetch.
type EntitlementsCallback func(entitlements map[string]*Entitlement, err error)

// Client is the contract the purchase engine consumes from the entitlement
// backend. All operations are asynchronous; completion is signalled through
// the supplied callback, possibly from a different goroutine.
type Client interface {
	// GetPurchaserInfo fetches the current purchaser snapshot for a user.
	GetPurchaserInfo(ctx context.Context, userID string, fn PurchaserInfoCallback)
	// GetEntitlements fetches the entitlement map for a user. Offerings come
	// back unresolved: they reference product ids without catalog metadata.
	GetEntitlements(ctx context.Context, userID string, fn EntitlementsCallback)
	// PostReceipt submits a purchase receipt and yields the refreshed
	// purchaser snapshot on success.
	PostReceipt(ctx context.Context, receipt Receipt, fn PurchaserInfoCallback)
}
