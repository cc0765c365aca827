package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/export"
	"github.com/rshade/eventcarbon/internal/logging"
)

// NewExportCmd creates the export command that writes an event to an .xlsx workbook.
func NewExportCmd() *cobra.Command {
	var (
		eventID string
		file    string
	)

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export an event to a spreadsheet",
		Example: `  eventcarbon export --event 01J... --file summit.xlsx`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if eventID == "" {
				return errors.New("--event is required")
			}
			if file == "" {
				file = eventID + ".xlsx"
			}

			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, eventID)
			if err != nil {
				return err
			}

			if dir := filepath.Dir(file); dir != "." {
				if err = os.MkdirAll(dir, 0o750); err != nil {
					return fmt.Errorf("creating output directory: %w", err)
				}
			}
			out, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating %s: %w", file, err)
			}
			if err = export.WriteWorkbook(out, session, session.Totals()); err != nil {
				_ = out.Close()
				return err
			}
			if err = out.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", file, err)
			}

			logging.FromContext(ctx).Info().Ctx(ctx).
				Str("event_id", eventID).
				Str("file", file).
				Int("items", len(session.Items)).
				Msg("event exported")
			cmd.Printf("Exported %d items to %s\n", len(session.Items), file)
			return nil
		},
	}

	cmd.Flags().StringVar(&eventID, "event", "", "event ID")
	cmd.Flags().StringVar(&file, "file", "", "output .xlsx path (default: <event-id>.xlsx)")
	return cmd
}
