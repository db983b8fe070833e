package main

import (
	"fmt"

	"github.com/icyhq/icy/internal/tui/discovery"
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find influencers for the saved brand profile",
	Long: `Run influencer discovery for the brand profile saved under the session key,
then show the dashboard. Run 'icy onboard' first if nothing is saved yet.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, key, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		p, ok, err := st.Load(ctx, key)
		if err != nil {
			return fmt.Errorf("loading brand profile: %w", err)
		}
		if !ok {
			return fmt.Errorf("no brand profile saved under %s, run 'icy onboard' first", key)
		}

		if _, err := discovery.Run(p, cfg.DiscoverySpeed); err != nil {
			return err
		}
		return printDashboard(ctx, cmd.OutOrStdout(), st, key, false)
	},
}
