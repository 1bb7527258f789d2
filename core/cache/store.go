package cache

import "purchase-manager/core/backend"

// Store is the local cache the purchase engine reads and writes. Misses are
// reported as empty values, never as errors; implementations log and swallow
// storage failures so a broken cache degrades to a cold one.
type Store interface {
	// PurchaserInfo returns the cached snapshot for a user, or nil.
	PurchaserInfo(userID string) *backend.PurchaserInfo
	// SetPurchaserInfo overwrites the cached snapshot for a user.
	SetPurchaserInfo(userID string, info *backend.PurchaserInfo)
	// UserID returns the previously generated user identifier, or "".
	UserID() string
	// SetUserID persists a generated user identifier.
	SetUserID(id string)
}
