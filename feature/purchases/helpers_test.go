package purchases

import (
	"encoding/json"
	"testing"
	"time"

	"purchase-manager/core/backend"
	backendmocks "purchase-manager/core/backend/mocks"
	"purchase-manager/core/billing"
	billingmocks "purchase-manager/core/billing/mocks"
	"purchase-manager/core/cache"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

// mockListener is a testify mock for the Listener contract.
type mockListener struct {
	mock.Mock
}

func (m *mockListener) OnUpdatedPurchaserInfo(info *backend.PurchaserInfo) {
	m.Called(info)
}

func (m *mockListener) OnCompletedPurchase(productID string, info *backend.PurchaserInfo) {
	m.Called(productID, info)
}

func (m *mockListener) OnFailedPurchase(domain ErrorDomain, code int, message string) {
	m.Called(domain, code, message)
}

// fixture bundles the engine's collaborators. Store defaults to a cold
// MemoryStore; configure callbacks may replace it before construction.
type fixture struct {
	backend  *backendmocks.Client
	billing  *billingmocks.Client
	listener *mockListener
	store    cache.Store
}

func freshInfo() *backend.PurchaserInfo {
	return &backend.PurchaserInfo{
		Raw:       json.RawMessage(`{"subscriber": {}}`),
		FetchedAt: time.Now(),
	}
}

// newService builds an engine over mocked collaborators. Expectations set in
// configure take precedence over the defaults registered afterwards, so tests
// can override individual calls without re-stubbing everything.
func newService(t *testing.T, userID string, configure func(f *fixture)) (*Service, *fixture) {
	t.Helper()

	f := &fixture{
		backend:  new(backendmocks.Client),
		billing:  new(billingmocks.Client),
		listener: new(mockListener),
		store:    cache.NewMemoryStore(),
	}

	if configure != nil {
		configure(f)
	}

	f.listener.On("OnUpdatedPurchaserInfo", mock.Anything).Maybe()
	f.backend.On("GetPurchaserInfo", mock.Anything, mock.Anything, mock.Anything).Maybe().
		Run(func(args mock.Arguments) {
			args.Get(2).(backend.PurchaserInfoCallback)(freshInfo(), nil)
		})

	svc := New(userID, f.listener, f.backend, f.billing, f.store, zap.NewNop())
	return svc, f
}

// stubPostReceipt makes every receipt submission succeed with a fresh snapshot.
func stubPostReceipt(f *fixture) {
	f.backend.On("PostReceipt", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(2).(backend.PurchaserInfoCallback)(freshInfo(), nil)
		})
}

// stubEntitlements serves a single "pro" entitlement whose offerings reference
// the given product ids, one offering per id named "<id>_offering".
func stubEntitlements(f *fixture, productIDs ...string) {
	f.backend.On("GetEntitlements", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			offerings := make(map[string]*backend.Offering, len(productIDs))
			for _, id := range productIDs {
				offerings[id+"_offering"] = &backend.Offering{ProductID: id}
			}
			entitlements := map[string]*backend.Entitlement{
				"pro": {Offerings: offerings},
			}
			args.Get(2).(backend.EntitlementsCallback)(entitlements, nil)
		})
}

// stubProducts serves a catalog query for one category, returning metadata
// for returnIDs only.
func stubProducts(f *fixture, category billing.Category, queryIDs []string, returnIDs []string) {
	f.billing.On("QueryProducts", mock.Anything, category, queryIDs, mock.Anything).
		Run(func(args mock.Arguments) {
			products := make([]billing.ProductMetadata, 0, len(returnIDs))
			for _, id := range returnIDs {
				products = append(products, billing.ProductMetadata{ProductID: id, Price: "4.99"})
			}
			args.Get(3).(billing.ProductsCallback)(products, nil)
		})
}

// stubHistory serves a purchase-history query for one category.
func stubHistory(f *fixture, category billing.Category, purchases []billing.Purchase, err error) {
	f.billing.On("QueryPurchaseHistory", mock.Anything, category, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(2).(billing.HistoryCallback)(purchases, err)
		})
}
