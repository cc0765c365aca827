package cli

import (
	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

// NewEstimateCmd creates the estimate command group. Each subcommand
// computes a single item's CO2e without touching stored events.
func NewEstimateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate the CO2e of a single activity without saving it",
		Long: `Computes the kg CO2e of one activity item from flags.

Unknown subtypes are accepted and contribute 0 kg; a warning is logged.
Negative numbers are treated as 0.`,
	}
	cmd.AddCommand(newActivityCmds("estimate", runEstimate)...)
	return cmd
}

func runEstimate(cmd *cobra.Command, item estimate.Item) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	items := []estimate.Item{item}
	return renderItems(cmd.OutOrStdout(), format,
		engine.ItemsMetadata{TotalItems: 1}, engine.NewItemRows(items), engine.Aggregate(items, nil))
}
