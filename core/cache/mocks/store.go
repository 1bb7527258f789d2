package mocks

import (
	"purchase-manager/core/backend"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of cache.Store
type Store struct {
	mock.Mock
}

func (m *Store) PurchaserInfo(userID string) *backend.PurchaserInfo {
	args := m.Called(userID)
	if info, ok := args.Get(0).(*backend.PurchaserInfo); ok {
		return info
	}
	return nil
}

func (m *Store) SetPurchaserInfo(userID string, info *backend.PurchaserInfo) {
	m.Called(userID, info)
}

func (m *Store) UserID() string {
	args := m.Called()
	return args.String(0)
}

func (m *Store) SetUserID(id string) {
	m.Called(id)
}
