package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// catalogFile is the on-disk layout of a static catalog definition.
type catalogFile struct {
	Products map[Category][]ProductMetadata `json:"products"`
	History  map[Category][]Purchase        `json:"history"`
}

// StaticClient is a development implementation of Client backed by a local
// JSON catalog file. It serves catalog queries and history replays from the
// file and synthesizes purchase-updated events for launched purchases,
// letting the rest of the stack run without a real platform billing service.
type StaticClient struct {
	mu       sync.Mutex
	catalog  catalogFile
	listener UpdateListener
	logger   *zap.Logger
}

// NewStaticClient loads the catalog file at path and returns a client serving it.
func NewStaticClient(path string, logger *zap.Logger) (*StaticClient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var catalog catalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	return &StaticClient{catalog: catalog, logger: logger}, nil
}

// Bind registers the listener that receives purchase-update events.
func (c *StaticClient) Bind(l UpdateListener) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = l
}

// QueryProducts returns catalog entries matching the requested ids.
func (c *StaticClient) QueryProducts(ctx context.Context, category Category, productIDs []string, fn ProductsCallback) {
	go func() {
		wanted := make(map[string]struct{}, len(productIDs))
		for _, id := range productIDs {
			wanted[id] = struct{}{}
		}

		var matched []ProductMetadata
		for _, p := range c.catalog.Products[category] {
			if _, ok := wanted[p.ProductID]; ok {
				matched = append(matched, p)
			}
		}

		fn(matched, nil)
	}()
}

// QueryPurchaseHistory replays the canned purchase history for a category.
func (c *StaticClient) QueryPurchaseHistory(ctx context.Context, category Category, fn HistoryCallback) {
	go func() {
		fn(c.catalog.History[category], nil)
	}()
}

// LaunchPurchase synthesizes a successful purchase of the requested product
// and delivers it through the bound listener. Unknown products produce a
// failed-update event instead, mirroring a platform item-unavailable error.
func (c *StaticClient) LaunchPurchase(ctx context.Context, params PurchaseParams) {
	c.mu.Lock()
	listener := c.listener
	c.mu.Unlock()

	if listener == nil {
		c.logger.Warn("Purchase launched with no listener bound",
			zap.String("product_id", params.ProductID))
		return
	}

	go func() {
		for _, p := range c.catalog.Products[params.Category] {
			if p.ProductID == params.ProductID {
				listener.OnPurchasesUpdated([]Purchase{{
					ProductID: params.ProductID,
					Token:     uuid.NewString(),
				}})
				return
			}
		}
		listener.OnPurchasesFailedToUpdate(4, "item unavailable: "+params.ProductID)
	}()
}
