package billing

import "context"

// Category partitions the billing catalog into product types.
type Category string

const (
	// CategorySubscription covers auto-renewing subscription products.
	CategorySubscription Category = "subs"
	// CategoryOneTime covers one-time (non-subscription) products.
	CategoryOneTime Category = "inapp"
)

// Purchase is a single purchase notification delivered by the billing layer,
// either through a live update or a purchase-history replay.
type Purchase struct {
	ProductID string `json:"product_id"`
	Token     string `json:"token"`
}

// ProductMetadata is the catalog record for a purchasable product.
type ProductMetadata struct {
	ProductID   string `json:"product_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Currency    string `json:"currency"`
}

// PurchaseParams describes a purchase the host wants to initiate.
// OldProductIDs lists products being upgraded away from, if any.
type PurchaseParams struct {
	ProductID     string
	UserID        string
	OldProductIDs []string
	Category      Category
}

// ProductsCallback receives the result of a catalog query.
type ProductsCallback func(products []ProductMetadata, err error)

// HistoryCallback receives the result of a purchase-history query.
type HistoryCallback func(purchases []Purchase, err error)

// Client is the contract the reconciliation engine consumes from the platform
// billing layer. All operations are asynchronous; completion is signalled
// through the supplied callback. LaunchPurchase is fire-and-forget: its outcome
// arrives through the UpdateListener bound to the billing source.
type Client interface {
	// QueryProducts fetches catalog metadata for the given product ids,
	// scoped to a single category.
	QueryProducts(ctx context.Context, category Category, productIDs []string, fn ProductsCallback)
	// QueryPurchaseHistory fetches all previously made purchases of a category.
	QueryPurchaseHistory(ctx context.Context, category Category, fn HistoryCallback)
	// LaunchPurchase starts a purchase flow for the given product.
	LaunchPurchase(ctx context.Context, params PurchaseParams)
}

// UpdateListener receives purchase-update events from the billing layer.
type UpdateListener interface {
	OnPurchasesUpdated(purchases []Purchase)
	OnPurchasesFailedToUpdate(code int, message string)
}
