package mocks

import (
	"context"

	"purchase-manager/core/billing"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of billing.Client
type Client struct {
	mock.Mock
}

func (m *Client) QueryProducts(ctx context.Context, category billing.Category, productIDs []string, fn billing.ProductsCallback) {
	m.Called(ctx, category, productIDs, fn)
}

func (m *Client) QueryPurchaseHistory(ctx context.Context, category billing.Category, fn billing.HistoryCallback) {
	m.Called(ctx, category, fn)
}

func (m *Client) LaunchPurchase(ctx context.Context, params billing.PurchaseParams) {
	m.Called(ctx, params)
}
