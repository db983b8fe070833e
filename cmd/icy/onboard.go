package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/icyhq/icy/internal/brand"
	"github.com/icyhq/icy/internal/logger"
	"github.com/icyhq/icy/internal/state"
	"github.com/icyhq/icy/internal/store"
	"github.com/icyhq/icy/internal/tui/discovery"
	"github.com/icyhq/icy/internal/tui/onboarding"
	"github.com/icyhq/icy/internal/wizard"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var onboardFlags struct {
	from     string
	headless bool
	fresh    bool
}

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Run the brand setup wizard",
	Long: `Run the four-step brand setup wizard and save the resulting profile.

An interrupted run is kept as a draft in the data directory and resumed the
next time. When a profile is already saved under the session key it is
loaded for editing.

Use --from to prefill the wizard from a YAML file, and --headless to submit
that file without opening the TUI.`,
	RunE: runOnboard,
}

func init() {
	onboardCmd.Flags().StringVarP(&onboardFlags.from, "from", "f", "", "YAML file with brand profile values")
	onboardCmd.Flags().BoolVar(&onboardFlags.headless, "headless", false, "Validate and save the --from file without the TUI")
	onboardCmd.Flags().BoolVar(&onboardFlags.fresh, "fresh", false, "Ignore any saved draft or profile and start empty")
}

func runOnboard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if onboardFlags.headless && onboardFlags.from == "" {
		return fmt.Errorf("--headless requires --from")
	}

	st, key, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var fromFile *brand.Profile
	if onboardFlags.from != "" {
		p, err := readProfileFile(onboardFlags.from)
		if err != nil {
			return err
		}
		fromFile = &p
	}

	if onboardFlags.headless {
		p, err := submitHeadless(ctx, st, key, *fromFile)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved brand profile %q under %s\n", p.ProductName, key)
		return nil
	}

	initial, step, err := startingPoint(ctx, st, key, fromFile)
	if err != nil {
		return err
	}

	res, err := onboarding.Run(onboarding.Options{
		Initial: initial,
		Step:    step,
		Key:     key,
		Save: func(p brand.Profile) error {
			return st.Save(ctx, key, p)
		},
	})
	if err != nil {
		return err
	}
	return finishOnboard(ctx, out, st, key, res)
}

// startingPoint picks what the wizard opens with: an explicit file, then a
// draft, then the saved profile, else nothing.
func startingPoint(ctx context.Context, st store.Store, key string, fromFile *brand.Profile) (*brand.Profile, int, error) {
	if fromFile != nil {
		return fromFile, wizard.TotalSteps, nil
	}
	if onboardFlags.fresh {
		return nil, 0, nil
	}
	if d := state.Load(cfg.DataDir); d != nil {
		logger.Info("Resuming draft from %s at step %d", d.SavedAt.Format("2006-01-02 15:04"), d.Step)
		return &d.Values, d.Step, nil
	}
	p, ok, err := st.Load(ctx, key)
	if err != nil {
		return nil, 0, fmt.Errorf("loading saved profile: %w", err)
	}
	if ok {
		return &p, 0, nil
	}
	return nil, 0, nil
}

// finishOnboard keeps or clears the draft and runs whatever the user picked
// after completing the wizard.
func finishOnboard(ctx context.Context, out io.Writer, st store.Store, key string, res onboarding.Result) error {
	if res.Cancelled {
		if err := state.Save(cfg.DataDir, state.Draft{Step: res.Step, Values: res.Profile}); err != nil {
			return err
		}
		fmt.Fprintln(out, "Setup paused. Run 'icy onboard' to pick up where you left off.")
		return nil
	}
	if !res.Completed {
		return nil
	}
	if res.SaveErr != nil {
		if err := state.Save(cfg.DataDir, state.Draft{Step: wizard.TotalSteps, Values: res.Profile}); err != nil {
			logger.Warn("Failed to keep draft after save error: %v", err)
		}
		return fmt.Errorf("saving brand profile: %w", res.SaveErr)
	}
	if err := state.Clear(cfg.DataDir); err != nil {
		logger.Warn("Failed to clear draft: %v", err)
	}

	switch res.Next {
	case onboarding.NextDiscovery:
		if _, err := discovery.Run(res.Profile, cfg.DiscoverySpeed); err != nil {
			return err
		}
		return printDashboard(ctx, out, st, key, false)
	case onboarding.NextDashboard:
		return printDashboard(ctx, out, st, key, false)
	}
	return nil
}

// readProfileFile parses a YAML brand profile.
func readProfileFile(path string) (brand.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return brand.Profile{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var p brand.Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return brand.Profile{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return p.Clone(), nil
}

// submitHeadless drives the wizard through every step with p and saves the
// result. Validation failures come back as wizard.ValidationErrors.
func submitHeadless(ctx context.Context, st store.Store, key string, p brand.Profile) (brand.Profile, error) {
	c := wizard.New(&p, nil)
	if errs := c.Errors(); len(errs) > 0 {
		return brand.Profile{}, invalidProfileError(errs)
	}
	for c.Step() < wizard.TotalSteps {
		if err := c.GoNext(); err != nil {
			return brand.Profile{}, err
		}
	}
	out, err := c.Submit()
	if err != nil {
		return brand.Profile{}, err
	}
	if err := st.Save(ctx, key, out); err != nil {
		return brand.Profile{}, fmt.Errorf("saving brand profile: %w", err)
	}
	return out, nil
}

func invalidProfileError(errs wizard.ValidationErrors) error {
	return fmt.Errorf("brand profile is incomplete: %w", errs)
}
