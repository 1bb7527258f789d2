package cmd

import (
	"fmt"
	"os"

	"purchase-manager/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "purchase-manager",
	Short: "Purchase Manager",
	Long: `Purchase Manager reconciles in-app purchases from a platform billing
layer with a remote entitlement backend, keeping a local cache of purchaser
state. The subcommands drive the library against a configured backend; the
stub subcommand runs a local backend for development.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// userID is the purchaser identity shared by the reconciliation subcommands.
// An empty value runs the session anonymously (restore mode).
var userID string

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&userID, "user", "", "purchaser identity (empty runs anonymously)")
}
