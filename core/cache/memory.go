package cache

import (
	"sync"

	"purchase-manager/core/backend"
)

// MemoryStore is an in-process Store. It is the default backend and the one
// used in tests; nothing survives a restart.
type MemoryStore struct {
	mu        sync.RWMutex
	userID    string
	purchaser map[string]*backend.PurchaserInfo
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{purchaser: make(map[string]*backend.PurchaserInfo)}
}

func (s *MemoryStore) PurchaserInfo(userID string) *backend.PurchaserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.purchaser[userID]
}

func (s *MemoryStore) SetPurchaserInfo(userID string, info *backend.PurchaserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchaser[userID] = info
}

func (s *MemoryStore) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

func (s *MemoryStore) SetUserID(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
}
