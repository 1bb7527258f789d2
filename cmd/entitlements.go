package cmd

import (
	"fmt"
	"sort"
	"time"

	"purchase-manager/core/backend"

	"github.com/spf13/cobra"
)

// entitlementsCmd resolves the entitlement map with catalog metadata attached.
var entitlementsCmd = &cobra.Command{
	Use:   "entitlements",
	Short: "Resolve entitlements with product metadata",
	Long: `Fetches the entitlement map for the user from the backend and resolves
catalog metadata for every offering through the two-phase catalog lookup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildStack(userID)
		if err != nil {
			return err
		}
		defer s.logger.Sync()

		type result struct {
			entitlements map[string]*backend.Entitlement
			err          error
		}
		done := make(chan result, 1)

		s.service.GetEntitlements(cmd.Context(), func(entitlements map[string]*backend.Entitlement, err error) {
			done <- result{entitlements, err}
		})

		select {
		case r := <-done:
			if r.err != nil {
				return r.err
			}
			printEntitlements(r.entitlements)
			return nil
		case <-time.After(30 * time.Second):
			return fmt.Errorf("entitlement resolution timed out")
		}
	},
}

func printEntitlements(entitlements map[string]*backend.Entitlement) {
	names := make([]string, 0, len(entitlements))
	for name := range entitlements {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Printf("%s\n", name)
		for id, o := range entitlements[name].Offerings {
			if o.Resolved() {
				fmt.Printf("  %-30s %-25s %s %s\n", id, o.ProductID, o.Product.Price, o.Product.Currency)
			} else {
				fmt.Printf("  %-30s %-25s (no catalog metadata)\n", id, o.ProductID)
			}
		}
	}
}

func init() {
	RootCmd.AddCommand(entitlementsCmd)
}
