package main

import (
	"fmt"
	"os"

	"github.com/icyhq/icy/internal/config"
	"github.com/spf13/cobra"
)

var setupFlags struct {
	project bool
	force   bool
}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create icy configuration file",
	Long: `Create an icy configuration file with sensible defaults.

By default, creates a global config at ~/.config/icy/icy.yml.
Use --project to create a project-local config in the current directory.
Values given with --data-dir, --store or --key are written as well.`,
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVarP(&setupFlags.project, "project", "p", false, "Create config in current directory instead of global location")
	setupCmd.Flags().BoolVar(&setupFlags.force, "force", false, "Overwrite existing config file")
}

func runSetup(cmd *cobra.Command, args []string) error {
	targetPath := config.GlobalPath()
	if setupFlags.project {
		targetPath = config.ProjectPath()
	}

	if !setupFlags.force && fileExists(targetPath) {
		return fmt.Errorf("config file already exists at %s\n\nUse --force to overwrite", targetPath)
	}

	c := config.Default()
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

	var err error
	if setupFlags.project {
		err = config.WriteProject(c)
	} else {
		err = config.WriteGlobal(c)
	}
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config written to: %s\n\n", targetPath)
	fmt.Fprintln(out, "Run 'icy onboard' to get started.")
	return nil
}

// fileExists checks if a file exists (helper for setup command).
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
