package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/logging"
	"github.com/rshade/eventcarbon/internal/store"
	"github.com/rshade/eventcarbon/pkg/version"
)

// StepStatus is the outcome of one setup step.
type StepStatus int

// Step outcomes. Only a StepError on a Critical step fails setup.
const (
	StepSuccess StepStatus = iota
	StepWarning
	StepSkipped
	StepError
)

// StepResult is one line of setup output.
type StepResult struct {
	Name     string
	Status   StepStatus
	Message  string
	Critical bool
	Err      error
}

// SetupOptions holds the setup command flags.
type SetupOptions struct {
	NonInteractive bool
}

// SetupResult collects every step run by setup.
type SetupResult struct {
	Steps       []StepResult
	HasErrors   bool
	HasWarnings bool
}

func (r *SetupResult) add(step StepResult) {
	r.Steps = append(r.Steps, step)
	switch {
	case step.Status == StepError && step.Critical:
		r.HasErrors = true
	case step.Status == StepWarning:
		r.HasWarnings = true
	}
}

// dirPermBase is the permission mode for created directories.
const dirPermBase = 0o700

// formatStatus returns a status marker appropriate for the output mode.
func formatStatus(status StepStatus, nonInteractive bool) string {
	if nonInteractive {
		switch status {
		case StepSuccess:
			return "[OK]"
		case StepWarning:
			return "[WARN]"
		case StepSkipped:
			return "[SKIP]"
		case StepError:
			return "[ERR]"
		default:
			return "[??]"
		}
	}

	switch status {
	case StepSuccess:
		return "✓"
	case StepWarning:
		return "!"
	case StepSkipped:
		return "-"
	case StepError:
		return "✗"
	default:
		return "?"
	}
}

// NewSetupCmd creates the setup command that prepares directories, config and storage.
func NewSetupCmd() *cobra.Command {
	var opts SetupOptions

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Prepare the eventcarbon home directory",
		Long: `Creates the eventcarbon home and data directories, writes a default
configuration file and checks that event sessions and the supplier directory
can be read.

Safe to run repeatedly: existing files are left untouched.`,
		Example: `  eventcarbon setup
  eventcarbon setup --non-interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSetup(cmd, &opts)
		},
	}

	cmd.Flags().BoolVar(&opts.NonInteractive, "non-interactive", false,
		"Disable TTY-dependent output (status symbols)")

	return cmd
}

// setupSteps run in order; each returns one or more result lines.
func setupSteps(ctx context.Context) []func() []StepResult {
	return []func() []StepResult{
		func() []StepResult { return []StepResult{stepDisplayVersion()} },
		stepCreateDirectories,
		func() []StepResult { return []StepResult{stepInitConfig()} },
		func() []StepResult { return []StepResult{stepCheckStore(ctx)} },
	}
}

// runSetup runs every step even when an earlier one fails and returns an
// error only if a critical step failed.
func runSetup(cmd *cobra.Command, opts *SetupOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if !opts.NonInteractive && !isTerminal(os.Stdin) {
		opts.NonInteractive = true
	}

	result := &SetupResult{}
	for _, step := range setupSteps(ctx) {
		for _, line := range step() {
			printStep(cmd, line, opts.NonInteractive)
			result.add(line)
		}
	}
	printSummary(cmd, result)

	if result.HasErrors {
		logging.FromContext(ctx).Error().Ctx(ctx).
			Str("component", "setup").
			Int("steps", len(result.Steps)).
			Msg("setup finished with critical errors")
		return errors.New("setup failed: one or more critical steps failed")
	}
	return nil
}

func printStep(cmd *cobra.Command, step StepResult, nonInteractive bool) {
	cmd.Printf("%s %s\n", formatStatus(step.Status, nonInteractive), step.Message)
}

func printSummary(cmd *cobra.Command, result *SetupResult) {
	cmd.Println()
	if result.HasErrors {
		cmd.Println("Setup finished with errors; fix the items marked above and run it again.")
	} else {
		cmd.Println("Setup complete! Run 'eventcarbon event create --name \"My Event\"' to get started.")
	}
}

// stepDisplayVersion reports the eventcarbon version and Go runtime.
func stepDisplayVersion() StepResult {
	return StepResult{
		Name:    "Version display",
		Status:  StepSuccess,
		Message: fmt.Sprintf("eventcarbon v%s (%s)", version.GetVersion(), runtime.Version()),
	}
}

// setupDirs lists the directories created under the home directory.
func setupDirs() ([]string, error) {
	base, err := config.GetConfigDir()
	if err != nil {
		return nil, err
	}
	data := filepath.Join(base, "data")
	return []string{base, data, filepath.Join(data, "sessions"), filepath.Join(base, "logs")}, nil
}

// stepCreateDirectories creates the home, data and log directories.
// Returns one StepResult per directory.
func stepCreateDirectories() []StepResult {
	dirs, err := setupDirs()
	if err != nil {
		return []StepResult{{
			Name:     "Directory creation",
			Status:   StepError,
			Message:  fmt.Sprintf("Cannot resolve home directory: %v", err),
			Critical: true,
			Err:      err,
		}}
	}

	results := make([]StepResult, 0, len(dirs))
	for _, dir := range dirs {
		if info, statErr := os.Stat(dir); statErr == nil && info.IsDir() {
			results = append(results, StepResult{
				Name:     "Directory creation",
				Status:   StepSuccess,
				Message:  fmt.Sprintf("Directory exists: %s", dir),
				Critical: true,
			})
			continue
		}

		if mkErr := os.MkdirAll(dir, dirPermBase); mkErr != nil {
			results = append(results, StepResult{
				Name:   "Directory creation",
				Status: StepError,
				Message: fmt.Sprintf("Failed to create %s: %v\n  Try: export %s=/path/to/writable/directory",
					dir, mkErr, config.EnvHome),
				Critical: true,
				Err:      mkErr,
			})
			continue
		}

		results = append(results, StepResult{
			Name:     "Directory creation",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Created %s", dir),
			Critical: true,
		})
	}
	return results
}

// stepInitConfig writes the default config file if one does not exist.
func stepInitConfig() StepResult {
	cfg := config.New()
	if _, err := os.Stat(cfg.ConfigPath()); err == nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepSuccess,
			Message:  fmt.Sprintf("Config already exists (%s)", cfg.ConfigPath()),
			Critical: true,
		}
	}

	if err := cfg.Save(); err != nil {
		return StepResult{
			Name:     "Config initialization",
			Status:   StepError,
			Message:  fmt.Sprintf("Failed to initialize config: %v", err),
			Critical: true,
			Err:      err,
		}
	}
	return StepResult{
		Name:     "Config initialization",
		Status:   StepSuccess,
		Message:  fmt.Sprintf("Initialized config (%s)", cfg.ConfigPath()),
		Critical: true,
	}
}

// stepCheckStore loads every stored session and the supplier directory.
// Unreadable sessions are a warning; an unreadable supplier file is not critical either.
func stepCheckStore(ctx context.Context) StepResult {
	cfg := config.New()
	st, err := store.NewFileStore(cfg.SessionsDir())
	if err != nil {
		return StepResult{
			Name:     "Store check",
			Status:   StepError,
			Message:  fmt.Sprintf("Cannot open session store: %v", err),
			Critical: true,
			Err:      err,
		}
	}

	ids, err := st.List()
	if err != nil {
		return StepResult{Name: "Store check", Status: StepError, Message: err.Error(), Critical: true, Err: err}
	}
	loaded, err := st.LoadAll(ctx, ids)
	if err != nil {
		return StepResult{Name: "Store check", Status: StepError, Message: err.Error(), Critical: true, Err: err}
	}

	if _, supErr := store.LoadSuppliers(cfg.SuppliersPath()); supErr != nil {
		return StepResult{
			Name:    "Store check",
			Status:  StepWarning,
			Message: fmt.Sprintf("Supplier directory unreadable: %v", supErr),
			Err:     supErr,
		}
	}

	if len(loaded) < len(ids) {
		return StepResult{
			Name:    "Store check",
			Status:  StepWarning,
			Message: fmt.Sprintf("%d of %d event sessions could not be loaded (see logs)", len(ids)-len(loaded), len(ids)),
		}
	}
	return StepResult{
		Name:    "Store check",
		Status:  StepSuccess,
		Message: fmt.Sprintf("Session store ready (%d events)", len(ids)),
	}
}
