package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/logging"
	"github.com/rshade/eventcarbon/internal/tui"
)

// errNotTerminal is returned when browse runs without an interactive terminal.
var errNotTerminal = errors.New("browse needs an interactive terminal; use 'event show' instead")

// NewBrowseCmd creates the browse command that opens an event in the TUI.
func NewBrowseCmd() *cobra.Command {
	var eventID string

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse and prune an event's items interactively",
		Long: `Opens the event in a terminal UI. Keys: enter shows an item,
d removes it, s cycles the sort order, q quits. Removals are saved on exit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if eventID == "" {
				return errors.New("--event is required")
			}
			if !isTerminal(os.Stdout) || !isTerminal(os.Stdin) {
				return errNotTerminal
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, eventID)
			if err != nil {
				return err
			}

			p := tea.NewProgram(tui.NewSessionModel(ctx, session, config.GetOutputPrecision()), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("failed to run interactive TUI: %w", err)
			}

			model, ok := final.(tui.SessionModel)
			if !ok || !model.Changed() {
				return nil
			}
			if err = st.Save(model.Session()); err != nil {
				return err
			}
			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("event_id", eventID).
				Strs("removed", model.Removed()).
				Msg("saved browse session")
			cmd.Printf("Removed %d items from %s\n", len(model.Removed()), eventID)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "event ID")
	return cmd
}
