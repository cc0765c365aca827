package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/factors"
)

// factorRow is the rendered form of one factor table entry.
type factorRow struct {
	Category string       `json:"category"`
	Subtype  string       `json:"subtype"`
	Value    float64      `json:"value"`
	Unit     factors.Unit `json:"unit"`
}

// NewFactorsCmd creates the factors command that prints the emission factor tables.
func NewFactorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "factors [category]",
		Short: "Show emission factor tables",
		Long: `Prints the kg CO2e coefficients used by the estimators.

Categories: transport, flight_class, accommodation, adventure.`,
		Example: `  eventcarbon factors
  eventcarbon factors transport --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			categories := factors.Categories()
			if len(args) == 1 {
				c, ok := factors.ParseCategory(args[0])
				if !ok {
					return fmt.Errorf("unknown factor category %q", args[0])
				}
				categories = []factors.Category{c}
			}

			var rows []factorRow
			for _, c := range categories {
				for _, f := range factors.All(c) {
					rows = append(rows, factorRow{Category: f.CategoryName(), Subtype: f.Subtype, Value: f.Value, Unit: f.Unit})
				}
			}

			format, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			return renderFactors(cmd.OutOrStdout(), format, rows)
		},
	}
}

func renderFactors(w io.Writer, format engine.OutputFormat, rows []factorRow) error {
	switch format {
	case engine.OutputJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(map[string][]factorRow{"factors": rows})
	case engine.OutputNDJSON:
		encoder := json.NewEncoder(w)
		for _, r := range rows {
			if err := encoder.Encode(r); err != nil {
				return err
			}
		}
		return nil
	default:
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "CATEGORY\tSUBTYPE\tVALUE\tUNIT")
		for _, r := range rows {
			fmt.Fprintf(tw, "%s\t%s\t%g\t%s\n", r.Category, r.Subtype, r.Value, r.Unit)
		}
		return tw.Flush()
	}
}
