package purchases

import (
	"context"
	"fmt"
	"sort"

	"purchase-manager/core/backend"
	"purchase-manager/core/billing"
)

// EntitlementsHandler receives the fully merged entitlement map, or the first
// error encountered during resolution. Offerings whose product id matched no
// catalog entry in either phase are retained without metadata.
type EntitlementsHandler func(entitlements map[string]*backend.Entitlement, err error)

// GetEntitlements fetches the entitlement map for the current user and
// resolves catalog metadata for every offering in two sequential phases:
// the subscription catalog first for the full product-id set, then the
// one-time catalog for whatever remains unresolved. The second query is
// skipped when the first phase leaves no residual.
func (s *Service) GetEntitlements(ctx context.Context, handler EntitlementsHandler) {
	s.backend.GetEntitlements(ctx, s.userID, func(entitlements map[string]*backend.Entitlement, err error) {
		if err != nil {
			handler(nil, fmt.Errorf("failed to fetch entitlements: %w", err))
			return
		}

		productIDs := unresolvedProductIDs(entitlements)
		if len(productIDs) == 0 {
			handler(entitlements, nil)
			return
		}

		s.billing.QueryProducts(ctx, billing.CategorySubscription, productIDs, func(products []billing.ProductMetadata, err error) {
			if err != nil {
				handler(nil, fmt.Errorf("subscription catalog query failed: %w", err))
				return
			}
			attachProducts(entitlements, products)

			residual := unresolvedProductIDs(entitlements)
			if len(residual) == 0 {
				handler(entitlements, nil)
				return
			}

			s.billing.QueryProducts(ctx, billing.CategoryOneTime, residual, func(products []billing.ProductMetadata, err error) {
				if err != nil {
					handler(nil, fmt.Errorf("one-time catalog query failed: %w", err))
					return
				}
				attachProducts(entitlements, products)
				handler(entitlements, nil)
			})
		})
	})
}

// unresolvedProductIDs collects the distinct product ids of offerings still
// lacking catalog metadata, sorted for deterministic catalog queries.
func unresolvedProductIDs(entitlements map[string]*backend.Entitlement) []string {
	seen := make(map[string]struct{})
	var ids []string

	for _, e := range entitlements {
		for _, o := range e.Offerings {
			if o.Resolved() {
				continue
			}
			if _, ok := seen[o.ProductID]; ok {
				continue
			}
			seen[o.ProductID] = struct{}{}
			ids = append(ids, o.ProductID)
		}
	}

	sort.Strings(ids)
	return ids
}

// attachProducts fills in metadata on every unresolved offering whose product
// id matches a returned catalog entry.
func attachProducts(entitlements map[string]*backend.Entitlement, products []billing.ProductMetadata) {
	index := make(map[string]*billing.ProductMetadata, len(products))
	for i := range products {
		index[products[i].ProductID] = &products[i]
	}

	for _, e := range entitlements {
		for _, o := range e.Offerings {
			if o.Resolved() {
				continue
			}
			if product, ok := index[o.ProductID]; ok {
				o.Product = product
			}
		}
	}
}
