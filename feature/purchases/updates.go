package purchases

import (
	"context"

	"purchase-manager/core/backend"
	"purchase-manager/core/billing"

	"go.uber.org/zap"
)

// OnPurchasesUpdated handles a live purchase-update batch from the billing
// layer. Each purchase is submitted to the backend at most once per session;
// successful submissions raise completed-purchase notifications.
func (s *Service) OnPurchasesUpdated(purchases []billing.Purchase) {
	s.postPurchases(context.Background(), purchases, false)
}

// OnPurchasesFailedToUpdate forwards a billing-layer failure to the listener.
// The backend is never contacted for a failed update.
func (s *Service) OnPurchasesFailedToUpdate(code int, message string) {
	s.listener.OnFailedPurchase(ErrorDomainBilling, code, message)
}

// RestorePurchases replays the purchase history for both product categories
// against the backend. Both history queries are always issued; the two
// resulting batches are processed independently and never raise
// completed-purchase notifications.
func (s *Service) RestorePurchases(ctx context.Context) {
	for _, category := range []billing.Category{billing.CategorySubscription, billing.CategoryOneTime} {
		category := category
		s.billing.QueryPurchaseHistory(ctx, category, func(purchases []billing.Purchase, err error) {
			if err != nil {
				s.logger.Warn("Purchase history query failed",
					zap.String("category", string(category)), zap.Error(err))
				s.listener.OnFailedPurchase(ErrorDomainBilling, 0, err.Error())
				return
			}
			s.postPurchases(ctx, purchases, true)
		})
	}
}

// postPurchases runs the per-purchase reporting state machine over a batch.
// fromRestore marks history-originated batches: their submissions are always
// flagged as restores and complete silently.
func (s *Service) postPurchases(ctx context.Context, purchases []billing.Purchase, fromRestore bool) {
	isRestore := s.anonymous || fromRestore

	for _, p := range purchases {
		p := p
		if !s.markSubmitted(p.Token) {
			s.logger.Debug("Suppressing duplicate purchase token",
				zap.String("product_id", p.ProductID))
			continue
		}

		s.backend.PostReceipt(ctx, backend.Receipt{
			Token:     p.Token,
			UserID:    s.userID,
			ProductID: p.ProductID,
			IsRestore: isRestore,
		}, func(info *backend.PurchaserInfo, err error) {
			if err != nil {
				// The token stays marked; failures are terminal for this session.
				s.logger.Warn("Receipt submission failed",
					zap.String("product_id", p.ProductID), zap.Error(err))
				s.listener.OnFailedPurchase(ErrorDomainBackend, backendErrorCode(err), err.Error())
				return
			}

			s.updatePurchaserInfo(info)
			if !fromRestore {
				s.listener.OnCompletedPurchase(p.ProductID, info)
			}
		})
	}
}
