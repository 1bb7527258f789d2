package mocks

import (
	"context"

	"purchase-manager/core/backend"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of backend.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetPurchaserInfo(ctx context.Context, userID string, fn backend.PurchaserInfoCallback) {
	m.Called(ctx, userID, fn)
}

func (m *Client) GetEntitlements(ctx context.Context, userID string, fn backend.EntitlementsCallback) {
	m.Called(ctx, userID, fn)
}

func (m *Client) PostReceipt(ctx context.Context, receipt backend.Receipt, fn backend.PurchaserInfoCallback) {
	m.Called(ctx, receipt, fn)
}
