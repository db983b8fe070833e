package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/icyhq/icy/internal/dashboard"
	"github.com/icyhq/icy/internal/store"
	"github.com/spf13/cobra"
)

var dashboardFlags struct {
	changes bool
}

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show the saved brand profile",
	Long: `Render the brand profile saved under the session key.

With --changes, also show a diff between the two most recent revisions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		st, key, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()
		return printDashboard(cmd.Context(), cmd.OutOrStdout(), st, key, dashboardFlags.changes)
	},
}

func init() {
	dashboardCmd.Flags().BoolVarP(&dashboardFlags.changes, "changes", "c", false, "Show what changed since the previous revision")
}

// printDashboard writes the rendered profile under key, or a hint to run
// onboarding when nothing is saved yet.
func printDashboard(ctx context.Context, out io.Writer, st store.Store, key string, changes bool) error {
	p, ok, err := st.Load(ctx, key)
	if err != nil {
		return fmt.Errorf("loading brand profile: %w", err)
	}
	if !ok {
		fmt.Fprintln(out, dashboard.NoProfileMessage)
		return nil
	}

	fmt.Fprintln(out, dashboard.Render(dashboard.Markdown(key, p), terminalWidth()))
	if !changes {
		return nil
	}

	revs, err := st.History(ctx, key)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}
	diff, ok, err := dashboard.Changes(revs)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(out, "\nNo earlier revision to compare with.")
		return nil
	}
	if diff == "" {
		fmt.Fprintln(out, "\nNo changes since the previous revision.")
		return nil
	}
	fmt.Fprintf(out, "\n%s", highlight(diff, "diff", detectProfile(out)))
	return nil
}

// terminalWidth returns stdout's width, or 0 when it is not a terminal.
func terminalWidth() int {
	w, _, err := term.GetSize(os.Stdout.Fd())
	if err != nil {
		return 0
	}
	return w
}
