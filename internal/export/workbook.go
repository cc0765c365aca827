// Package export writes event sessions to spreadsheet workbooks.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/rshade/eventcarbon/internal/engine"
	"github.com/rshade/eventcarbon/internal/estimate"
)

// Sheet names.
const (
	ItemsSheet   = "Items"
	SummarySheet = "Summary"
)

// itemsHeader is the first row of the Items sheet.
//
//nolint:gochecknoglobals // Read-only header row.
var itemsHeader = []any{"ID", "Kind", "Label", "Details", "CO2e (kg)", "Created"}

// WriteWorkbook writes an xlsx with one row per confirmed item and a
// summary sheet of per-kind totals, the grand total and trees needed.
func WriteWorkbook(w io.Writer, session *engine.Session, result engine.Result) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ItemsSheet); err != nil {
		return fmt.Errorf("renaming items sheet: %w", err)
	}
	if err := writeItems(f, session.Items); err != nil {
		return err
	}

	summaryIdx, err := f.NewSheet(SummarySheet)
	if err != nil {
		return fmt.Errorf("creating summary sheet: %w", err)
	}
	if err = writeSummary(f, session.Event, result); err != nil {
		return err
	}
	f.SetActiveSheet(summaryIdx)

	if err = f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeItems(f *excelize.File, items []estimate.Item) error {
	if err := setRow(f, ItemsSheet, 1, itemsHeader); err != nil {
		return err
	}
	for i, it := range items {
		created := ""
		if !it.CreatedAt.IsZero() {
			created = it.CreatedAt.UTC().Format("2006-01-02 15:04")
		}
		row := []any{
			it.ID,
			string(it.Kind),
			it.DisplayLabel(),
			it.Details(),
			estimate.ComputeItemCO2(it),
			created,
		}
		if err := setRow(f, ItemsSheet, i+2, row); err != nil {
			return err
		}
	}
	if err := boldRow(f, ItemsSheet, len(itemsHeader)); err != nil {
		return err
	}
	return f.SetColWidth(ItemsSheet, "A", "F", 22)
}

func writeSummary(f *excelize.File, event engine.EventData, result engine.Result) error {
	rows := [][]any{
		{"Event", event.Name},
		{"Location", event.Location},
		{"Attendees", event.Attendees},
		{},
		{"Kind", "CO2e (kg)"},
	}
	for _, k := range estimate.Kinds() {
		if v, ok := result.ByKind[k]; ok {
			rows = append(rows, []any{string(k), v})
		}
	}
	rows = append(rows,
		[]any{"Total", result.TotalCO2Kg},
		[]any{"Trees needed", result.TreesNeeded},
		[]any{"Promotional cost", result.PromotionalCost},
		[]any{"Food and drink units", result.FoodUnits},
	)

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		if err := setRow(f, SummarySheet, i+1, row); err != nil {
			return err
		}
	}
	return f.SetColWidth(SummarySheet, "A", "B", 24)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err = f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("writing %s row %d: %w", sheet, row, err)
	}
	return nil
}

func boldRow(f *excelize.File, sheet string, cols int) error {
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(cols, 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
