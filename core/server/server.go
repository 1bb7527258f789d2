package server

import (
	"sync"
	"time"

	"purchase-manager/core/backend"
	"purchase-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// EntitlementMap is the development fixture the stub serves to every
// subscriber: entitlement name to offering id to product id.
type EntitlementMap map[string]map[string]string

// Stub is an in-memory entitlement backend for development. It accepts
// receipts, tracks the products each subscriber owns and serves a fixed
// entitlement map, which is enough to exercise the full client flow.
type Stub struct {
	mu           sync.RWMutex
	receipts     map[string][]backend.Receipt
	entitlements EntitlementMap
	logger       *zap.Logger
}

// NewStub creates a stub backend serving the given entitlement fixture.
func NewStub(entitlements EntitlementMap, logg *zap.Logger) *Stub {
	return &Stub{
		receipts:     make(map[string][]backend.Receipt),
		entitlements: entitlements,
		logger:       logg,
	}
}

// RegisterRoutes registers the backend routes.
func (s *Stub) RegisterRoutes(app fiber.Router) {
	app.Get("/subscribers/:id", s.HandleGetSubscriber)
	app.Get("/subscribers/:id/entitlements", s.HandleGetEntitlements)
	app.Post("/receipts", s.HandlePostReceipt)
}

// HandleGetSubscriber returns the purchaser snapshot for a subscriber.
func (s *Stub) HandleGetSubscriber(c *fiber.Ctx) error {
	return c.JSON(s.snapshot(c.Params("id")))
}

// HandleGetEntitlements returns the entitlement map for a subscriber.
func (s *Stub) HandleGetEntitlements(c *fiber.Ctx) error {
	entitlements := fiber.Map{}
	for name, offerings := range s.entitlements {
		wire := fiber.Map{}
		for id, productID := range offerings {
			wire[id] = fiber.Map{"active_product_identifier": productID}
		}
		entitlements[name] = fiber.Map{"offerings": wire}
	}
	return c.JSON(fiber.Map{"entitlements": entitlements})
}

// HandlePostReceipt records a receipt and returns the updated snapshot.
func (s *Stub) HandlePostReceipt(c *fiber.Ctx) error {
	l := logger.WithRequestID(s.logger, c)

	var receipt backend.Receipt
	if err := c.BodyParser(&receipt); err != nil {
		l.Warn("Rejected malformed receipt", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed receipt",
		})
	}
	if receipt.Token == "" || receipt.UserID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "token and user_id are required",
		})
	}

	s.mu.Lock()
	s.receipts[receipt.UserID] = append(s.receipts[receipt.UserID], receipt)
	s.mu.Unlock()

	l.Info("Recorded receipt",
		zap.String("user_id", receipt.UserID),
		zap.String("product_id", receipt.ProductID),
		zap.Bool("is_restore", receipt.IsRestore))

	return c.JSON(s.snapshot(receipt.UserID))
}

// snapshot builds the purchaser payload from the recorded receipts. Products
// are listed in submission order, once each.
func (s *Stub) snapshot(userID string) fiber.Map {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := []string{}
	seen := map[string]bool{}
	for _, r := range s.receipts[userID] {
		if !seen[r.ProductID] {
			seen[r.ProductID] = true
			products = append(products, r.ProductID)
		}
	}

	return fiber.Map{
		"app_user_id":  userID,
		"product_ids":  products,
		"request_date": time.Now().UTC().Format(time.RFC3339),
	}
}
