package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/engine"
)

// NewSummaryCmd creates the summary command that aggregates one or all events.
func NewSummaryCmd() *cobra.Command {
	var (
		eventID string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Aggregate an event's CO2e with tree and driving equivalents",
		Example: `  eventcarbon summary --event 01J...
  eventcarbon summary --all --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if (eventID == "") == !all {
				return errors.New("specify exactly one of --event or --all")
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}

			var sessions []*engine.Session
			if all {
				ids, listErr := st.List()
				if listErr != nil {
					return listErr
				}
				if sessions, listErr = st.LoadAll(cmd.Context(), ids); listErr != nil {
					return listErr
				}
			} else {
				session, loadErr := loadSession(st, eventID)
				if loadErr != nil {
					return loadErr
				}
				sessions = []*engine.Session{session}
			}

			summaries := make([]engine.EventSummary, 0, len(sessions))
			for _, s := range sessions {
				summaries = append(summaries, engine.NewEventSummary(s))
			}
			return renderSummaries(cmd.OutOrStdout(), format, summaries)
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "event ID")
	cmd.Flags().BoolVar(&all, "all", false, "summarise every stored event")
	return cmd
}
