package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/greenops"
	"github.com/rshade/eventcarbon/internal/logging"
	"github.com/rshade/eventcarbon/internal/store"
)

// dateLayout is the accepted format for --start and --end.
const dateLayout = "2006-01-02"

// NewEventCmd creates the event command group.
func NewEventCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "event", Short: "Create and manage event sessions"}
	cmd.AddCommand(newEventCreateCmd(), newEventListCmd(), newEventShowCmd(), newEventDeleteCmd())
	return cmd
}

// EventCreateParams holds the flags of event create.
type EventCreateParams struct {
	ID         string
	Name       string
	Location   string
	Start      string
	End        string
	Attendees  int
	Categories []string
}

func newEventCreateCmd() *cobra.Command {
	var params EventCreateParams

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new event session",
		Example: `  eventcarbon event create --name "Spring Summit" --location Nairobi \
    --start 2025-03-10 --end 2025-03-12 --attendees 120 --categories trip,accommodation,venue`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEventCreate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.ID, "id", "", "event ID (default: generated ULID)")
	cmd.Flags().StringVar(&params.Name, "name", "", "event name")
	cmd.Flags().StringVar(&params.Location, "location", "", "event location")
	cmd.Flags().StringVar(&params.Start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&params.End, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&params.Attendees, "attendees", 0, "expected attendees")
	cmd.Flags().StringSliceVar(&params.Categories, "categories", nil,
		"activity categories in scope (default: all)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func runEventCreate(cmd *cobra.Command, params EventCreateParams) error {
	ctx := cmd.Context()

	event := engine.EventData{
		ID:        strings.TrimSpace(params.ID),
		Name:      strings.TrimSpace(params.Name),
		Location:  params.Location,
		Attendees: nonNegativeInt(ctx, "attendees", params.Attendees),
	}
	if event.Name == "" {
		return errors.New("--name cannot be empty")
	}
	if event.ID == "" {
		event.ID = engine.NewULIDGenerator().NewID(time.Now())
	}

	var err error
	if event.StartDate, err = parseDate("start", params.Start); err != nil {
		return err
	}
	if event.EndDate, err = parseDate("end", params.End); err != nil {
		return err
	}
	if !event.StartDate.IsZero() && !event.EndDate.IsZero() && event.EndDate.Before(event.StartDate) {
		return errors.New("--end is before --start")
	}

	kinds := make([]estimate.Kind, 0, len(params.Categories))
	for _, c := range params.Categories {
		k, parseErr := estimate.ParseKind(c)
		if parseErr != nil {
			return parseErr
		}
		kinds = append(kinds, k)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	if st.Exists(event.ID) {
		return fmt.Errorf("event %q already exists", event.ID)
	}

	session := engine.NewSession(event)
	session.SelectCategories(kinds...)
	if err = st.Save(session); err != nil {
		return err
	}

	logging.FromContext(ctx).Info().Ctx(ctx).
		Str("event_id", event.ID).
		Msg("event created")
	cmd.Printf("Created event %s (%s)\n", event.ID, event.Name)
	return nil
}

func parseDate(flag, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

func newEventListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			ids, err := st.List()
			if err != nil {
				return err
			}
			sessions, err := st.LoadAll(cmd.Context(), ids)
			if err != nil {
				return err
			}
			events := store.NewEventRepository(sessions).List()

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return renderEvents(cmd.OutOrStdout(), format, events)
		},
	}
}

func renderEvents(w io.Writer, format engine.OutputFormat, events []store.Event) error {
	if events == nil {
		events = []store.Event{}
	}
	switch format {
	case engine.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string][]store.Event{"events": events})
	case engine.OutputNDJSON:
		encoder := json.NewEncoder(w)
		for _, e := range events {
			if err := encoder.Encode(e); err != nil {
				return err
			}
		}
		return nil
	default:
		precision := config.GetOutputPrecision()
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tLOCATION\tSTART\tATTENDEES\tITEMS\tCO2E")
		for _, e := range events {
			start := "-"
			if !e.StartDate.IsZero() {
				start = e.StartDate.Format(dateLayout)
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%d\t%s\n",
				e.ID, e.Name, e.Location, start, e.Attendees, e.ItemCount,
				greenops.FormatKg(e.TotalCO2Kg, precision))
		}
		return tw.Flush()
	}
}

func newEventShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <event-id>",
		Short: "Show an event and its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, args[0])
			if err != nil {
				return err
			}
			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			if format == engine.OutputTable {
				printEventHeader(cmd, session)
			}
			return renderItems(cmd.OutOrStdout(), format,
				engine.ItemsMetadata{
					EventID:    session.Event.ID,
					EventName:  session.Event.Name,
					TotalItems: len(session.Items),
				},
				engine.NewItemRows(session.Items), session.Totals())
		},
	}
}

func printEventHeader(cmd *cobra.Command, s *engine.Session) {
	cmd.Printf("Event:      %s (%s)\n", s.Event.Name, s.Event.ID)
	if s.Event.Location != "" {
		cmd.Printf("Location:   %s\n", s.Event.Location)
	}
	if !s.Event.StartDate.IsZero() {
		cmd.Printf("Dates:      %s", s.Event.StartDate.Format(dateLayout))
		if !s.Event.EndDate.IsZero() {
			cmd.Printf(" to %s", s.Event.EndDate.Format(dateLayout))
		}
		cmd.Println()
	}
	if s.Event.Attendees > 0 {
		cmd.Printf("Attendees:  %d\n", s.Event.Attendees)
	}
	if len(s.SelectedCategories) > 0 {
		names := make([]string, 0, len(s.SelectedCategories))
		for _, k := range s.SelectedCategories {
			names = append(names, string(k))
		}
		cmd.Printf("Categories: %s\n", strings.Join(names, ", "))
	}
	if s.Draft != nil {
		cmd.Printf("Draft:      %s %s (unconfirmed)\n", s.Draft.Kind, s.Draft.DisplayLabel())
	}
	cmd.Println()
}

func newEventDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <event-id>",
		Short: "Delete an event session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}
			if !st.Exists(args[0]) {
				return fmt.Errorf("event %q not found", args[0])
			}
			if err = st.Delete(args[0]); err != nil {
				return err
			}
			cmd.Printf("Deleted event %s\n", args[0])
			return nil
		},
	}
}
