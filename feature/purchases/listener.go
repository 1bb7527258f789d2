package purchases

import "purchase-manager/core/backend"

// Listener receives the asynchronous results of the purchase engine. It is
// registered at construction; there is no ambient global registration.
//
// Updated-purchaser-info notifications follow an at-least-once contract: a
// fresh engine with a warm cache delivers one update from the cache and a
// second from the network fetch.
type Listener interface {
	// OnUpdatedPurchaserInfo delivers a fresh purchaser snapshot, from the
	// cache or from any successful backend interaction.
	OnUpdatedPurchaserInfo(info *backend.PurchaserInfo)
	// OnCompletedPurchase reports a live purchase that was successfully
	// submitted to the backend. Restores never raise this.
	OnCompletedPurchase(productID string, info *backend.PurchaserInfo)
	// OnFailedPurchase reports a billing-layer or backend failure.
	OnFailedPurchase(domain ErrorDomain, code int, message string)
}
