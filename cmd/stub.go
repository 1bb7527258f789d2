package cmd

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"purchase-manager/core/config"
	"purchase-manager/core/logger"
	"purchase-manager/core/middleware/auth"
	"purchase-manager/core/middleware/requestid"
	"purchase-manager/core/server"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// devEntitlements is the fixture the stub backend serves to every subscriber.
// The product ids match the default static billing catalog.
var devEntitlements = server.EntitlementMap{
	"pro": {
		"monthly_offering": "pro_monthly",
		"annual_offering":  "pro_annual",
	},
	"extras": {
		"gems_offering": "gem_pack_small",
	},
}

// stubCmd represents the stub command
var stubCmd = &cobra.Command{
	Use:   "stub",
	Short: "Run a local stub entitlement backend",
	Long: `Starts an in-memory entitlement backend implementing the subscriber and
receipt routes, for developing against without a real backend.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Middleware Registration
		// 1. Request ID (Must be first to trace everything)
		app.Use(requestid.New())

		// 2. Logging Middleware (Custom to use Zap + Request ID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRequestID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 4. Register Routes
		stub := server.NewStub(devEntitlements, logg)
		stub.RegisterRoutes(app)

		// 5. Start Server
		go func() {
			logg.Info("Starting stub backend", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 6. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down stub backend...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(stubCmd)
}
