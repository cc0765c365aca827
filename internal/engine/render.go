package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/greenops"
)

// OutputFormat selects how command results are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable  OutputFormat = "table"
	OutputJSON   OutputFormat = "json"
	OutputNDJSON OutputFormat = "ndjson"
)

// ErrUnknownOutputFormat is returned by ParseOutputFormat.
var ErrUnknownOutputFormat = errors.New("unknown output format")

// ParseOutputFormat validates a user-entered format name.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case OutputTable, OutputJSON, OutputNDJSON:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q (use table, json or ndjson)", ErrUnknownOutputFormat, s)
	}
}

const (
	tabwriterPadding = 2
	colWidthLabel    = 28
	truncateMinLen   = 3
	cellMissing      = "-"
)

// ItemRow is the rendered form of one activity item.
type ItemRow struct {
	ID             string        `json:"id,omitempty"`
	Kind           estimate.Kind `json:"kind"`
	Label          string        `json:"label"`
	Details        string        `json:"details"`
	CO2Kg          float64       `json:"co2_kg"`
	Cost           float64       `json:"cost,omitempty"`
	UnknownSubtype bool          `json:"unknown_subtype,omitempty"`
	CreatedAt      time.Time     `json:"created_at,omitzero"`
}

// NewItemRows computes a row per item, preserving order.
func NewItemRows(items []estimate.Item) []ItemRow {
	rows := make([]ItemRow, 0, len(items))
	for _, it := range items {
		row := ItemRow{
			ID:             it.ID,
			Kind:           it.Kind,
			Label:          it.DisplayLabel(),
			Details:        it.Details(),
			CO2Kg:          estimate.ComputeItemCO2(it),
			UnknownSubtype: it.UnknownSubtype(),
			CreatedAt:      it.CreatedAt,
		}
		if it.Kind == estimate.KindPromotional && it.Promotional != nil {
			row.Cost = estimate.Promotional(*it.Promotional).Cost
		}
		rows = append(rows, row)
	}
	return rows
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// RenderItemsAsTable writes an aligned table of item rows with a total footer.
func RenderItemsAsTable(w io.Writer, rows []ItemRow, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "ID\tKIND\tLABEL\tDETAILS\tCO2E\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--\t----\t-----\t-------\t----\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	var total float64
	for _, row := range rows {
		id := row.ID
		if id == "" {
			id = cellMissing
		}
		co2 := greenops.FormatKg(row.CO2Kg, precision)
		if row.UnknownSubtype {
			co2 += " (unknown subtype)"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			id, row.Kind, truncate(row.Label, colWidthLabel), row.Details, co2,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
		total += row.CO2Kg
	}

	if _, err := fmt.Fprintf(tw, "\t\t\t\t\n"); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "TOTAL\t%d items\t\t\t%s\n", len(rows), greenops.FormatKg(total, precision)); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return tw.Flush()
}

// ItemsMetadata describes the context of an item listing.
type ItemsMetadata struct {
	EventID     string    `json:"event_id,omitempty"`
	EventName   string    `json:"event_name,omitempty"`
	TotalItems  int       `json:"total_items"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ItemsJSONOutput is the top-level JSON document for an item listing.
type ItemsJSONOutput struct {
	Metadata ItemsMetadata `json:"metadata"`
	Items    []ItemRow     `json:"items"`
	Summary  Result        `json:"summary"`
}

// RenderItemsAsJSON writes the rows inside a metadata envelope. summary is
// computed by the caller so that it can cover more items than are listed.
func RenderItemsAsJSON(w io.Writer, meta ItemsMetadata, rows []ItemRow, summary Result) error {
	if rows == nil {
		rows = []ItemRow{}
	}
	if meta.GeneratedAt.IsZero() {
		meta.GeneratedAt = time.Now().UTC()
	}
	return encodeIndented(w, ItemsJSONOutput{Metadata: meta, Items: rows, Summary: summary})
}

// RenderItemsAsNDJSON writes one JSON object per row with no envelope.
func RenderItemsAsNDJSON(w io.Writer, rows []ItemRow) error {
	return encodeLines(w, rows)
}

// EventSummary is the aggregate of one event, ready to render.
type EventSummary struct {
	Event       EventData `json:"event"`
	Result      Result    `json:"result"`
	Equivalency string    `json:"equivalency,omitempty"`
}

// NewEventSummary aggregates a session and attaches the equivalency text.
func NewEventSummary(s *Session) EventSummary {
	res := s.Totals()
	summary := EventSummary{Event: s.Event, Result: res}
	if eq, err := greenops.CalculateKg(res.TotalCO2Kg); err == nil && !eq.IsEmpty {
		summary.Equivalency = eq.DisplayText
	}
	return summary
}

// RenderSummaryAsTable writes a per-kind breakdown for each event. When more
// than one event is rendered a grand total follows.
func RenderSummaryAsTable(w io.Writer, summaries []EventSummary, precision int) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	var grand float64
	for i, s := range summaries {
		if i > 0 {
			if _, err := fmt.Fprintln(tw); err != nil {
				return err
			}
		}
		if err := renderEventBlock(tw, s, precision); err != nil {
			return fmt.Errorf("writing event %s: %w", s.Event.ID, err)
		}
		grand += s.Result.TotalCO2Kg
	}

	if len(summaries) > 1 {
		if _, err := fmt.Fprintf(tw, "\nALL EVENTS\t%d events\t%s\t%d trees\n",
			len(summaries), greenops.FormatKg(grand, precision), TreesNeeded(grand)); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func renderEventBlock(tw *tabwriter.Writer, s EventSummary, precision int) error {
	title := s.Event.Name
	if title == "" {
		title = s.Event.ID
	}
	if _, err := fmt.Fprintf(tw, "EVENT\t%s\t%s\t\n", title, s.Event.ID); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "KIND\tCO2E\tSHARE\t\n"); err != nil {
		return err
	}

	for _, kind := range estimate.Kinds() {
		v, ok := s.Result.ByKind[kind]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%.1f%%\t\n",
			kind, greenops.FormatKg(v, precision), s.Result.Share(kind)); err != nil {
			return err
		}
	}

	r := s.Result
	if _, err := fmt.Fprintf(tw, "TOTAL\t%s\t%d items\t\n", greenops.FormatKg(r.TotalCO2Kg, precision), r.ItemCount); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "TREES\t%s\t\t\n", greenops.FormatNumber(int64(r.TreesNeeded))); err != nil {
		return err
	}
	if r.PromotionalCost > 0 {
		if _, err := fmt.Fprintf(tw, "PROMO SPEND\t%s\t\t\n", greenops.FormatCost(r.PromotionalCost, "")); err != nil {
			return err
		}
	}
	if r.FoodUnits > 0 {
		if _, err := fmt.Fprintf(tw, "CATERING\t%d units\t\t\n", r.FoodUnits); err != nil {
			return err
		}
	}
	if r.DraftCO2Kg > 0 {
		if _, err := fmt.Fprintf(tw, "DRAFT\t%s\tunconfirmed\t\n", greenops.FormatKg(r.DraftCO2Kg, precision)); err != nil {
			return err
		}
	}
	if r.UnknownSubtypes > 0 {
		if _, err := fmt.Fprintf(tw, "WARNING\t%d items with unknown subtype count as 0\t\t\n", r.UnknownSubtypes); err != nil {
			return err
		}
	}
	if s.Equivalency != "" {
		if _, err := fmt.Fprintf(tw, "\t%s\t\t\n", s.Equivalency); err != nil {
			return err
		}
	}
	return nil
}

// SummaryJSONOutput is the top-level JSON document for the summary command.
type SummaryJSONOutput struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Events      []EventSummary `json:"events"`
	TotalCO2Kg  float64        `json:"total_co2_kg"`
	TreesNeeded int            `json:"trees_needed"`
}

// RenderSummaryAsJSON writes every summary plus the combined total.
func RenderSummaryAsJSON(w io.Writer, summaries []EventSummary) error {
	if summaries == nil {
		summaries = []EventSummary{}
	}
	var total float64
	for _, s := range summaries {
		total += s.Result.TotalCO2Kg
	}
	return encodeIndented(w, SummaryJSONOutput{
		GeneratedAt: time.Now().UTC(),
		Events:      summaries,
		TotalCO2Kg:  total,
		TreesNeeded: TreesNeeded(total),
	})
}

// RenderSummaryAsNDJSON writes one line per event.
func RenderSummaryAsNDJSON(w io.Writer, summaries []EventSummary) error {
	return encodeLines(w, summaries)
}

func encodeIndented(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func encodeLines[T any](w io.Writer, rows []T) error {
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshaling row: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}
