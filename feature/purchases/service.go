package purchases

import (
	"context"
	"sync"

	"purchase-manager/core/backend"
	"purchase-manager/core/billing"
	"purchase-manager/core/cache"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the purchase reconciliation engine. It owns the user identity,
// tracks which purchase tokens were already submitted this session, and fans
// results out to the listener.
//
// All state is guarded by mu because billing and backend callbacks may arrive
// interleaved from different in-flight requests.
type Service struct {
	mu        sync.Mutex
	submitted map[string]struct{}

	userID    string
	anonymous bool

	backend  backend.Client
	billing  billing.Client
	store    cache.Store
	listener Listener
	logger   *zap.Logger
}

// New creates the engine. An empty userID puts the session in restore mode:
// the engine reuses the cached generated identity or generates and persists a
// new one, and flags every reported purchase as a restore.
//
// Construction primes the listener from the cache and issues a purchaser-info
// fetch, so the listener may receive two updates in quick succession.
func New(userID string, listener Listener, bk backend.Client, bl billing.Client, store cache.Store, logger *zap.Logger) *Service {
	s := &Service{
		submitted: make(map[string]struct{}),
		backend:   bk,
		billing:   bl,
		store:     store,
		listener:  listener,
		logger:    logger,
	}

	if userID == "" {
		s.anonymous = true
		if cached := store.UserID(); cached != "" {
			s.userID = cached
		} else {
			s.userID = uuid.NewString()
			store.SetUserID(s.userID)
			logger.Info("Generated anonymous user identity", zap.String("user_id", s.userID))
		}
	} else {
		s.userID = userID
	}

	if info := store.PurchaserInfo(s.userID); info != nil {
		listener.OnUpdatedPurchaserInfo(info)
	}
	s.refreshPurchaserInfo(context.Background())

	return s
}

// UserID returns the identity the engine reports purchases under. It is
// immutable for the engine's lifetime.
func (s *Service) UserID() string {
	return s.userID
}

// GetSubscriptionProducts fetches catalog metadata for subscription products.
func (s *Service) GetSubscriptionProducts(ctx context.Context, productIDs []string, fn billing.ProductsCallback) {
	s.billing.QueryProducts(ctx, billing.CategorySubscription, productIDs, fn)
}

// GetNonSubscriptionProducts fetches catalog metadata for one-time products.
func (s *Service) GetNonSubscriptionProducts(ctx context.Context, productIDs []string, fn billing.ProductsCallback) {
	s.billing.QueryProducts(ctx, billing.CategoryOneTime, productIDs, fn)
}

// MakePurchase starts a purchase flow. The outcome arrives asynchronously
// through OnPurchasesUpdated or OnPurchasesFailedToUpdate.
func (s *Service) MakePurchase(ctx context.Context, productID string, category billing.Category) {
	s.billing.LaunchPurchase(ctx, billing.PurchaseParams{
		ProductID:     productID,
		UserID:        s.userID,
		OldProductIDs: []string{},
		Category:      category,
	})
}

// OnAppResumed refreshes the purchaser snapshot from the backend. The host
// calls this when the application returns to the foreground.
func (s *Service) OnAppResumed(ctx context.Context) {
	s.refreshPurchaserInfo(ctx)
}

// refreshPurchaserInfo fetches the snapshot over the network and, on success,
// caches it and notifies the listener.
func (s *Service) refreshPurchaserInfo(ctx context.Context) {
	s.backend.GetPurchaserInfo(ctx, s.userID, func(info *backend.PurchaserInfo, err error) {
		if err != nil {
			s.logger.Warn("Purchaser info fetch failed",
				zap.String("user_id", s.userID), zap.Error(err))
			return
		}
		s.updatePurchaserInfo(info)
	})
}

// updatePurchaserInfo overwrites the cached snapshot and notifies the listener.
func (s *Service) updatePurchaserInfo(info *backend.PurchaserInfo) {
	s.store.SetPurchaserInfo(s.userID, info)
	s.listener.OnUpdatedPurchaserInfo(info)
}

// markSubmitted records a token as submitted. It returns false when the token
// was already recorded; check and insert are one atomic step so duplicates
// arriving before an in-flight submission completes are also suppressed.
func (s *Service) markSubmitted(token string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.submitted[token]; ok {
		return false
	}
	s.submitted[token] = struct{}{}
	return true
}
