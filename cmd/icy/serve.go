package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/icyhq/icy/internal/mcpserver"
	"github.com/spf13/cobra"
)

var serveFlags struct {
	addr string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Expose the brand setup wizard over MCP",
	Long: `Start an MCP server (streamable HTTP) with tools that drive the brand
setup wizard: brand-start, brand-status, brand-set-field, brand-next,
brand-previous and brand-submit. Submitted profiles are saved to the
configured store. Stop with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, key, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = st.Close() }()

		addr := cfg.MCPAddr
		if serveFlags.addr != "" {
			addr = serveFlags.addr
		}

		srv := mcpserver.New(st, key)
		if _, err := srv.Start(ctx, addr); err != nil {
			return fmt.Errorf("starting MCP server: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on %s\n", srv.URL())

		<-ctx.Done()
		fmt.Fprintln(cmd.OutOrStdout(), "\nShutting down gracefully...")
		return srv.Stop()
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveFlags.addr, "addr", "a", "", "Listen address (overrides mcp_addr)")
}
