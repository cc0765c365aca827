package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/cli/pagination"
	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/greenops"
	"github.com/rshade/eventcarbon/internal/logging"
)

// NewItemCmd creates the item command group for editing an event's items.
func NewItemCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "item", Short: "Add, confirm, remove and list event items"}
	cmd.AddCommand(newItemAddCmd(), newItemConfirmCmd(), newItemDiscardCmd(),
		newItemRemoveCmd(), newItemListCmd())
	return cmd
}

func newItemAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add an activity item to an event",
		Long: `Adds an item to an event. With --draft the item is stored as the event's
single unconfirmed draft; 'item confirm' moves it into the item list.`,
	}
	cmd.PersistentFlags().String("event", "", "event ID")
	cmd.PersistentFlags().Bool("draft", false, "save as the unconfirmed draft instead of adding")
	cmd.AddCommand(newActivityCmds("item add", runItemAdd)...)
	return cmd
}

func runItemAdd(cmd *cobra.Command, item estimate.Item) error {
	ctx := cmd.Context()
	eventID, err := requireEvent(cmd)
	if err != nil {
		return err
	}
	draft, _ := cmd.Flags().GetBool("draft")

	if err = item.Validate(); err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	session, err := loadSession(st, eventID)
	if err != nil {
		return err
	}

	if !session.IsSelected(item.Kind) {
		logging.FromContext(ctx).Warn().Ctx(ctx).
			Str("event_id", eventID).
			Str("kind", string(item.Kind)).
			Msg("category not selected for this event")
	}

	precision := config.GetOutputPrecision()
	co2 := greenops.FormatKg(estimate.ComputeItemCO2(item), precision)

	if draft {
		session.SetDraft(item)
		if err = st.Save(session); err != nil {
			return err
		}
		cmd.Printf("Saved draft %s %s (%s). Run 'eventcarbon item confirm --event %s' to add it.\n",
			item.Kind, item.DisplayLabel(), co2, eventID)
		return nil
	}

	stored := session.Add(item)
	if err = st.Save(session); err != nil {
		return err
	}
	cmd.Printf("Added %s %s %s (%s)\n", stored.ID, stored.Kind, stored.DisplayLabel(), co2)
	return nil
}

func newItemConfirmCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "confirm",
		Short: "Confirm the event's draft item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eventID, err := requireEvent(cmd)
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, eventID)
			if err != nil {
				return err
			}
			item, err := session.Confirm()
			if err != nil {
				return err
			}
			if err = st.Save(session); err != nil {
				return err
			}
			cmd.Printf("Confirmed %s %s %s\n", item.ID, item.Kind, item.DisplayLabel())
			return nil
		},
	}
	cmd.Flags().String("event", "", "event ID")
	return cmd
}

func newItemDiscardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "discard",
		Short: "Discard the event's draft item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			eventID, err := requireEvent(cmd)
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, eventID)
			if err != nil {
				return err
			}
			if session.Draft == nil {
				return engine.ErrNoDraft
			}
			session.ClearDraft()
			if err = st.Save(session); err != nil {
				return err
			}
			cmd.Println("Draft discarded")
			return nil
		},
	}
	cmd.Flags().String("event", "", "event ID")
	return cmd
}

func newItemRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <item-id>",
		Short: "Remove a confirmed item from an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := requireEvent(cmd)
			if err != nil {
				return err
			}
			st, err := openStore()
			if err != nil {
				return err
			}
			session, err := loadSession(st, eventID)
			if err != nil {
				return err
			}
			removed, err := session.Remove(args[0])
			if err != nil {
				return err
			}
			if err = st.Save(session); err != nil {
				return err
			}
			cmd.Printf("Removed %s %s %s\n", removed.ID, removed.Kind, removed.DisplayLabel())
			return nil
		},
	}
	cmd.Flags().String("event", "", "event ID")
	return cmd
}

// ItemListParams holds the flags of item list.
type ItemListParams struct {
	Kind string
	Sort string
	pagination.Params
}

// itemListOutput is the JSON document for item list: the rendered listing
// plus the pagination window.
type itemListOutput struct {
	engine.ItemsJSONOutput

	Pagination pagination.Meta `json:"pagination"`
}

func newItemListCmd() *cobra.Command {
	params := ItemListParams{Params: pagination.NewParams()}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List an event's confirmed items",
		Example: `  eventcarbon item list --event 01J... --sort co2:desc --limit 10
  eventcarbon item list --event 01J... --kind trip --page 2 --page-size 20`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runItemList(cmd, params)
		},
	}

	cmd.Flags().String("event", "", "event ID")
	cmd.Flags().StringVar(&params.Kind, "kind", "", "only list items of this kind")
	cmd.Flags().StringVar(&params.Sort, "sort", "",
		"sort as field[:asc|desc]; fields: co2, created, kind, label")
	cmd.Flags().IntVar(&params.Limit, "limit", 0, "maximum items to show (0 = all)")
	cmd.Flags().IntVar(&params.Offset, "offset", 0, "items to skip")
	cmd.Flags().IntVar(&params.Page, "page", 0, "page number (requires --page-size)")
	cmd.Flags().IntVar(&params.PageSize, "page-size", 0, "items per page")

	return cmd
}

func runItemList(cmd *cobra.Command, params ItemListParams) error {
	eventID, err := requireEvent(cmd)
	if err != nil {
		return err
	}
	if params.SortField, params.SortOrder, err = pagination.ParseSort(params.Sort); err != nil {
		return err
	}
	if err = params.Validate(); err != nil {
		return err
	}
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	session, err := loadSession(st, eventID)
	if err != nil {
		return err
	}

	items := session.Items
	if params.Kind != "" {
		kind, parseErr := estimate.ParseKind(params.Kind)
		if parseErr != nil {
			return parseErr
		}
		items = session.ItemsOfKind(kind)
	}

	sorted, err := pagination.NewItemSorter().Sort(items, params.SortField, params.SortOrder)
	if err != nil {
		return err
	}
	page := pagination.Apply(params.Params, sorted)
	rows := engine.NewItemRows(page)
	meta := engine.ItemsMetadata{
		EventID:    session.Event.ID,
		EventName:  session.Event.Name,
		TotalItems: len(sorted),
	}

	if format != engine.OutputJSON {
		return renderItems(cmd.OutOrStdout(), format, meta, rows, engine.Aggregate(sorted, nil))
	}

	if rows == nil {
		rows = []engine.ItemRow{}
	}
	meta.GeneratedAt = time.Now().UTC()
	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err = encoder.Encode(itemListOutput{
		ItemsJSONOutput: engine.ItemsJSONOutput{Metadata: meta, Items: rows, Summary: engine.Aggregate(sorted, nil)},
		Pagination:      pagination.NewMeta(params.Params, len(sorted)),
	}); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
