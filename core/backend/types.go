package backend

import (
	"encoding/json"
	"time"

	"purchase-manager/core/billing"
)

// PurchaserInfo is an opaque snapshot of the purchaser's entitlement and
// subscription state as returned by the backend. The engine never inspects
// the payload; it only caches it and forwards it to listeners, so backend
// schema changes never ripple into the reconciliation logic.
type PurchaserInfo struct {
	// Raw is the backend payload, verbatim.
	Raw json.RawMessage `json:"raw"`
	// FetchedAt records when the snapshot was produced.
	FetchedAt time.Time `json:"fetched_at"`
}

// Offering identifies a purchasable product attached to an entitlement.
// It is resolved once Product carries the catalog metadata for ProductID.
type Offering struct {
	ProductID string                   `json:"product_id"`
	Product   *billing.ProductMetadata `json:"product,omitempty"`
}

// Resolved reports whether catalog metadata has been attached.
func (o *Offering) Resolved() bool {
	return o.Product != nil
}

// Entitlement is a named bundle of offerings unlocking a set of access rights.
type Entitlement struct {
	Offerings map[string]*Offering `json:"offerings"`
}

// Receipt is a purchase submission to the backend.
type Receipt struct {
	Token     string `json:"token"`
	UserID    string `json:"user_id"`
	ProductID string `json:"product_id"`
	IsRestore bool   `json:"is_restore"`
}

// Error is a backend-domain failure carrying the HTTP status reported by the
// network layer.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}
