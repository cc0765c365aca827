// Package cli implements the eventcarbon command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/logging"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the eventcarbon CLI.
// It wires up project resolution, logging and tracing before any subcommand runs.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "eventcarbon",
		Short:   "Estimate the carbon footprint of events",
		Long:    "eventcarbon: record travel, lodging, activities, catering, merchandise and venue use for an event and estimate its CO2e",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			projectFlag, _ := cmd.Flags().GetString("project-dir")
			startDir, err := os.Getwd()
			if err != nil {
				startDir = "."
			}
			config.SetResolvedProjectDir(config.ResolveProjectDir(cmd.Context(), projectFlag, startDir))

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("project-dir", "",
		"project directory holding .eventcarbon/config.yaml (default: discovered from the working directory)")
	cmd.PersistentFlags().StringP("output", "o", "",
		"output format: table, json or ndjson (default from config)")

	cmd.AddCommand(
		NewEstimateCmd(), NewFactorsCmd(),
		NewEventCmd(), NewItemCmd(), NewSupplierCmd(),
		NewSummaryCmd(), NewExportCmd(), NewBrowseCmd(),
		newConfigCmd(), NewSetupCmd(),
	)

	return cmd
}

const rootCmdExample = `  # One-off estimate for a return flight for three people
  eventcarbon estimate trip --mode flight --distance 1200 --travellers 3 --round-trip

  # Create an event and record items against it
  eventcarbon event create --name "Spring Summit" --attendees 120
  eventcarbon item add accommodation --event 01J... --type hotel --nights 2 --guests 40

  # Summarise every stored event as JSON
  eventcarbon summary --all --output json

  # Export an event to a spreadsheet
  eventcarbon export --event 01J... --file summit.xlsx

  # Show the emission factor tables
  eventcarbon factors transport`

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigValidateCmd(),
	)
	return cmd
}
