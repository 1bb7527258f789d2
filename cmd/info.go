package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// infoCmd fetches the purchaser snapshot for the configured user.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Fetch the purchaser info snapshot",
	Long: `Builds the client stack, resolves the user identity and fetches the
current purchaser info from the entitlement backend. The snapshot is logged
as received; a warm cache logs an additional snapshot first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(userID)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		s.logger.Info("Resolved user identity", zap.String("user_id", s.service.UserID()))

		// Construction already issued the fetch; wait for it to land.
		s.listener.settle(2 * time.Second)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)
}
