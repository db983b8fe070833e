package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/icyhq/icy/internal/config"
	"github.com/icyhq/icy/internal/logger"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/tui/theme"
	"github.com/spf13/cobra"
)

const (
	logoText1 = "█ █▀▀ █▄█"
	logoText2 = "█ █▄▄  █ "
)

// Version set via ldflags during build
var version = "dev"

// cfg is loaded once per invocation by the root command.
var cfg *config.Config

var rootFlags struct {
	dataDir string
	store   string
	key     string
}

func main() {
	defer func() { _ = logger.Close() }()

	if err := fang.Execute(context.Background(), rootCmd, fang.WithVersion(version)); err != nil {
		logger.Error("Command execution failed: %v", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "icy",
	Short:             "Set up your brand and discover matching influencers",
	PersistentPreRunE: loadConfig,
	SilenceUsage:      true,
}

// renderLogo creates the logo with gradient colors
func renderLogo() string {
	t := theme.Current()
	line1 := theme.ApplyGradient(logoText1, t.Primary, t.Tertiary)
	line2 := theme.ApplyGradient(logoText2, t.Primary, t.Tertiary)
	return strings.Join([]string{line1, line2}, "\n")
}

func init() {
	rootCmd.Long = renderLogo() + `

icy walks you through a four-step brand setup (product, audience, voice and
platforms), saves the resulting brand profile and finds influencers that
match it.

Profiles are kept in a local file store by default. Embedded NATS JetStream
and Redis are available as alternative backends, and 'icy serve' exposes the
same wizard to agents over MCP.`

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.dataDir, "data-dir", "", "Data directory (overrides config)")
	pf.StringVar(&rootFlags.store, "store", "", "Store backend: file, nats or redis (overrides config)")
	pf.StringVarP(&rootFlags.key, "key", "k", "", "Session key the profile is saved under (overrides config)")

	rootCmd.AddCommand(onboardCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(setupCmd)
}

// loadConfig resolves configuration with CLI flags on top and sets up logging.
func loadConfig(cmd *cobra.Command, _ []string) error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if rootFlags.dataDir != "" {
		c.DataDir = rootFlags.dataDir
	}
	if rootFlags.store != "" {
		c.Store = rootFlags.store
	}
	if rootFlags.key != "" {
		c.SessionKey = rootFlags.key
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if err := logger.Configure(c.LogLevel, c.LogFile); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	cfg = c
	logger.Debug("config: store=%s data_dir=%s key=%s", c.Store, c.DataDir, c.SessionKey)
	return nil
}

// openStore opens the configured backend and the normalized session key.
func openStore(ctx context.Context) (store.Store, string, error) {
	key, err := store.NormalizeKey(cfg.SessionKey)
	if err != nil {
		return nil, "", fmt.Errorf("session key %q: %w", cfg.SessionKey, err)
	}
	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("opening %s store: %w", cfg.Store, err)
	}
	return st, key, nil
}
