package cmd

import (
	"time"

	"purchase-manager/core/billing"

	"github.com/spf13/cobra"
)

var buyCategory string

// buyCmd purchases a product through the development billing client.
var buyCmd = &cobra.Command{
	Use:   "buy <product-id>",
	Short: "Purchase a product through the billing layer",
	Long: `Launches a purchase flow for the given product. With the static billing
client the purchase completes immediately and is reported to the backend; the
completed-purchase event is logged when the round trip finishes.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(userID)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		category := billing.CategorySubscription
		if buyCategory == string(billing.CategoryOneTime) {
			category = billing.CategoryOneTime
		}

		s.service.MakePurchase(cmd.Context(), args[0], category)
		s.listener.settle(2 * time.Second)
		return nil
	},
}

func init() {
	buyCmd.Flags().StringVar(&buyCategory, "category", string(billing.CategorySubscription), "product category (subs, inapp)")
	RootCmd.AddCommand(buyCmd)
}
