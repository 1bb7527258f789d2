package purchases

import (
	"context"
	"testing"

	"purchase-manager/core/backend"
	"purchase-manager/core/billing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetEntitlements_HitsBackend(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f)
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	f.backend.AssertCalled(t, "GetEntitlements", mock.Anything, "fakeUserID", mock.Anything)
	assert.NotNil(t, received)
}

func TestGetEntitlements_PopulatesMissingMetadata(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f, "monthly")
		stubProducts(f, billing.CategorySubscription, []string{"monthly"}, []string{"monthly"})
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	f.billing.AssertNumberOfCalls(t, "QueryProducts", 1)

	offering := received["pro"].Offerings["monthly_offering"]
	assert.True(t, offering.Resolved())
	assert.Equal(t, "monthly", offering.Product.ProductID)
}

func TestGetEntitlements_ResidualQueriedAlone(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f, "monthly", "monthly_inapp")
		// Phase 1 asks for the full set but only resolves the subscription.
		stubProducts(f, billing.CategorySubscription, []string{"monthly", "monthly_inapp"}, []string{"monthly"})
		// Phase 2 must ask for the residual alone.
		stubProducts(f, billing.CategoryOneTime, []string{"monthly_inapp"}, []string{"monthly_inapp"})
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	f.billing.AssertCalled(t, "QueryProducts",
		mock.Anything, billing.CategorySubscription, []string{"monthly", "monthly_inapp"}, mock.Anything)
	f.billing.AssertCalled(t, "QueryProducts",
		mock.Anything, billing.CategoryOneTime, []string{"monthly_inapp"}, mock.Anything)
	f.billing.AssertNumberOfCalls(t, "QueryProducts", 2)

	assert.True(t, received["pro"].Offerings["monthly_offering"].Resolved())
	assert.True(t, received["pro"].Offerings["monthly_inapp_offering"].Resolved())
}

func TestGetEntitlements_NoResidualSkipsOneTimeQuery(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f, "monthly", "yearly")
		stubProducts(f, billing.CategorySubscription, []string{"monthly", "yearly"}, []string{"monthly", "yearly"})
	})

	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
	})

	f.billing.AssertNumberOfCalls(t, "QueryProducts", 1)
	f.billing.AssertNotCalled(t, "QueryProducts",
		mock.Anything, billing.CategoryOneTime, mock.Anything, mock.Anything)
}

func TestGetEntitlements_SharedProductQueriedOnce(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		// Two offerings referencing the same product id collapse to one query entry.
		f.backend.On("GetEntitlements", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				entitlements := map[string]*backend.Entitlement{
					"pro": {Offerings: map[string]*backend.Offering{
						"monthly_offering": {ProductID: "monthly"},
						"promo_offering":   {ProductID: "monthly"},
					}},
				}
				args.Get(2).(backend.EntitlementsCallback)(entitlements, nil)
			})
		stubProducts(f, billing.CategorySubscription, []string{"monthly"}, []string{"monthly"})
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	f.billing.AssertNumberOfCalls(t, "QueryProducts", 1)
	assert.True(t, received["pro"].Offerings["monthly_offering"].Resolved())
	assert.True(t, received["pro"].Offerings["promo_offering"].Resolved())
}

func TestGetEntitlements_UnresolvableOfferingRetained(t *testing.T) {
	svc, _ := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f, "ghost_product")
		stubProducts(f, billing.CategorySubscription, []string{"ghost_product"}, nil)
		stubProducts(f, billing.CategoryOneTime, []string{"ghost_product"}, nil)
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	// The offering survives without metadata rather than being dropped.
	offering := received["pro"].Offerings["ghost_product_offering"]
	assert.NotNil(t, offering)
	assert.False(t, offering.Resolved())
}

func TestGetEntitlements_EmptyMap(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		f.backend.On("GetEntitlements", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(2).(backend.EntitlementsCallback)(map[string]*backend.Entitlement{}, nil)
			})
	})

	var received map[string]*backend.Entitlement
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.NoError(t, err)
		received = entitlements
	})

	assert.NotNil(t, received)
	f.billing.AssertNotCalled(t, "QueryProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEntitlements_BackendFailure(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		f.backend.On("GetEntitlements", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(2).(backend.EntitlementsCallback)(nil, assert.AnError)
			})
	})

	var receivedErr error
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.Nil(t, entitlements)
		receivedErr = err
	})

	assert.Error(t, receivedErr)
	f.billing.AssertNotCalled(t, "QueryProducts", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestGetEntitlements_PhaseOneFailureAborts(t *testing.T) {
	svc, f := newService(t, "fakeUserID", func(f *fixture) {
		stubEntitlements(f, "monthly")
		f.billing.On("QueryProducts", mock.Anything, billing.CategorySubscription, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				args.Get(3).(billing.ProductsCallback)(nil, assert.AnError)
			})
	})

	var receivedErr error
	svc.GetEntitlements(context.Background(), func(entitlements map[string]*backend.Entitlement, err error) {
		assert.Nil(t, entitlements)
		receivedErr = err
	})

	assert.Error(t, receivedErr)
	// Phase 2 is never attempted after a phase-1 failure.
	f.billing.AssertNotCalled(t, "QueryProducts",
		mock.Anything, billing.CategoryOneTime, mock.Anything, mock.Anything)
}
