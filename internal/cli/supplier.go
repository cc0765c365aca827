package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/config"
	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/store"
)

// NewSupplierCmd creates the supplier command group.
func NewSupplierCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "supplier", Short: "Manage suppliers who provide event activity data"}
	cmd.AddCommand(newSupplierAddCmd(), newSupplierListCmd(), newSupplierAssignCmd())
	return cmd
}

func newSupplierAddCmd() *cobra.Command {
	var (
		name       string
		email      string
		categories []string
	)

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a supplier",
		Example: `  eventcarbon supplier add --name "Safari Lodges Ltd" --email ops@example.com --categories accommodation,adventure`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return errors.New("--name cannot be empty")
			}
			kinds := make([]estimate.Kind, 0, len(categories))
			for _, c := range categories {
				k, err := estimate.ParseKind(c)
				if err != nil {
					return err
				}
				kinds = append(kinds, k)
			}

			path := suppliersPath()
			repo, err := store.LoadSuppliers(path)
			if err != nil {
				return err
			}
			supplier := store.Supplier{
				ID:         engine.NewULIDGenerator().NewID(time.Now()),
				Name:       strings.TrimSpace(name),
				Email:      email,
				Categories: kinds,
			}
			repo.Put(supplier)
			if err = store.SaveSuppliers(path, repo); err != nil {
				return err
			}
			cmd.Printf("Added supplier %s (%s)\n", supplier.ID, supplier.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "supplier name")
	cmd.Flags().StringVar(&email, "email", "", "contact email")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "activity categories the supplier reports (default: all)")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSupplierListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suppliers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			repo, err := store.LoadSuppliers(suppliersPath())
			if err != nil {
				return err
			}
			suppliers := repo.List()

			if eventID, _ := cmd.Flags().GetString("event"); eventID != "" {
				suppliers = repo.Filter(func(s store.Supplier) bool {
					return slices.Contains(s.EventIDs, eventID)
				})
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return renderSuppliers(cmd.OutOrStdout(), format, suppliers)
		},
	}
	cmd.Flags().String("event", "", "only list suppliers assigned to this event")
	return cmd
}

func renderSuppliers(w io.Writer, format engine.OutputFormat, suppliers []store.Supplier) error {
	if suppliers == nil {
		suppliers = []store.Supplier{}
	}
	switch format {
	case engine.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string][]store.Supplier{"suppliers": suppliers})
	case engine.OutputNDJSON:
		encoder := json.NewEncoder(w)
		for _, s := range suppliers {
			if err := encoder.Encode(s); err != nil {
				return err
			}
		}
		return nil
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tCATEGORIES\tEVENTS")
		for _, s := range suppliers {
			cats := "all"
			if len(s.Categories) > 0 {
				names := make([]string, 0, len(s.Categories))
				for _, k := range s.Categories {
					names = append(names, string(k))
				}
				cats = strings.Join(names, ",")
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\n", s.ID, s.Name, s.Email, cats, len(s.EventIDs))
		}
		return tw.Flush()
	}
}

func newSupplierAssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <supplier-id>",
		Short: "Assign a supplier to an event",
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
			if !st.Exists(eventID) {
				return fmt.Errorf("event %q not found", eventID)
			}

			path := suppliersPath()
			repo, err := store.LoadSuppliers(path)
			if err != nil {
				return err
			}
			supplier, err := repo.Get(args[0])
			if err != nil {
				return fmt.Errorf("supplier %q: %w", args[0], err)
			}
			if !supplier.Assign(eventID) {
				cmd.Printf("Supplier %s is already assigned to %s\n", supplier.ID, eventID)
				return nil
			}
			repo.Put(supplier)
			if err = store.SaveSuppliers(path, repo); err != nil {
				return err
			}
			cmd.Printf("Assigned supplier %s to event %s\n", supplier.ID, eventID)
			return nil
		},
	}
	cmd.Flags().String("event", "", "event ID")
	return cmd
}

func suppliersPath() string {
	return config.GetGlobalConfig().SuppliersPath()
}
