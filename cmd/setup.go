package cmd

import (
	"context"
	"fmt"
	"time"

	"purchase-manager/core/backend"
	"purchase-manager/core/billing"
	"purchase-manager/core/cache"
	"purchase-manager/core/config"
	"purchase-manager/core/database"
	"purchase-manager/core/logger"
	"purchase-manager/core/storage"
	"purchase-manager/feature/purchases"

	"go.uber.org/zap"
)

// stack bundles everything a reconciliation subcommand needs.
type stack struct {
	cfg      *config.Config
	logger   *zap.Logger
	service  *purchases.Service
	listener *consoleListener
}

// consoleListener logs engine events and signals them so subcommands can wait
// for the asynchronous flows to settle before exiting.
type consoleListener struct {
	logger *zap.Logger
	events chan struct{}
}

func newConsoleListener(l *zap.Logger) *consoleListener {
	return &consoleListener{logger: l, events: make(chan struct{}, 64)}
}

func (l *consoleListener) OnUpdatedPurchaserInfo(info *backend.PurchaserInfo) {
	l.logger.Info("Purchaser info updated", zap.ByteString("payload", info.Raw))
	l.signal()
}

func (l *consoleListener) OnCompletedPurchase(productID string, info *backend.PurchaserInfo) {
	l.logger.Info("Purchase completed", zap.String("product_id", productID))
	l.signal()
}

func (l *consoleListener) OnFailedPurchase(domain purchases.ErrorDomain, code int, message string) {
	l.logger.Error("Purchase failed",
		zap.String("domain", string(domain)),
		zap.Int("code", code),
		zap.String("message", message))
	l.signal()
}

func (l *consoleListener) signal() {
	select {
	case l.events <- struct{}{}:
	default:
	}
}

// settle waits until no engine event has arrived for the idle window.
func (l *consoleListener) settle(idle time.Duration) {
	for {
		select {
		case <-l.events:
		case <-time.After(idle):
			return
		}
	}
}

// buildStack loads configuration and wires the full client stack.
func buildStack(userID string) (*stack, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := buildStore(cfg, logg)
	if err != nil {
		return nil, err
	}

	bk, err := backend.NewHTTPClient(cfg.Backend, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}

	bl, err := billing.NewStaticClient(cfg.Billing.CatalogPath, logg)
	if err != nil {
		return nil, fmt.Errorf("failed to create billing client: %w", err)
	}

	listener := newConsoleListener(logg)
	service := purchases.New(userID, listener, bk, bl, store, logg)
	bl.Bind(service)

	return &stack{cfg: cfg, logger: logg, service: service, listener: listener}, nil
}

// buildStore selects the cache backend from configuration.
func buildStore(cfg *config.Config, logg *zap.Logger) (cache.Store, error) {
	if !cfg.Cache.IsValidBackend() {
		return nil, fmt.Errorf("invalid cache backend: %s", cfg.Cache.Backend)
	}

	switch cfg.Cache.Backend {
	case cache.BackendDatabase:
		db, err := database.Connect(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to cache database: %w", err)
		}
		return cache.NewDBStore(db, logg)
	case cache.BackendObject:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		return cache.NewObjectStore(context.Background(), client, cfg.Storage.Bucket, logg)
	default:
		return cache.NewMemoryStore(), nil
	}
}
