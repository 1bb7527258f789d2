package cmd

import (
	"time"

	"github.com/spf13/cobra"
)

// restoreCmd replays the purchase history against the backend.
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replay the purchase history against the backend",
	Long: `Queries the billing purchase history for both product categories and
submits every previously unseen purchase to the entitlement backend as a
restore. Results are logged as they arrive.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(userID)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		s.service.RestorePurchases(cmd.Context())
		s.listener.settle(2 * time.Second)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(restoreCmd)
}
