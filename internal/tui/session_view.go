package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/eventcarbon/internal/estimate"
	"github.com/rshade/eventcarbon/internal/greenops"
)

// View implements tea.Model.
func (m SessionModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateDetail:
		return m.renderDetailView()
	default:
		return m.renderListView()
	}
}

func (m SessionModel) renderListView() string {
	title := HeaderStyle.Render(fmt.Sprintf("%s  (%d items)", m.session.Event.Name, len(m.session.Items)))
	sections := []string{title}

	if len(m.rows) == 0 {
		sections = append(sections, SubtleStyle.Render("No confirmed items."))
	} else {
		sections = append(sections, m.table.View())
	}
	sections = append(sections, m.renderTotals(), m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderTotals is the live summary panel under the table.
func (m SessionModel) renderTotals() string {
	var b strings.Builder
	b.WriteString(LabelStyle.Render("Total:  "))
	b.WriteString(ValueStyle.Render(greenops.FormatKg(m.totals.TotalCO2Kg, m.precision) + " CO2e"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Trees:  "))
	b.WriteString(ValueStyle.Render(greenops.FormatNumber(int64(m.totals.TreesNeeded))))

	if eq, err := greenops.CalculateKg(m.totals.TotalCO2Kg); err == nil && !eq.IsEmpty {
		b.WriteString("\n")
		b.WriteString(SubtleStyle.Render(eq.DisplayText))
	}
	if m.totals.UnknownSubtypes > 0 {
		b.WriteString("\n")
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"%d item(s) have an unknown subtype and count as 0 kg", m.totals.UnknownSubtypes)))
	}

	width := max(m.width-borderPadding, minHeight)
	return BoxStyle.Width(width).Render(b.String())
}

func (m SessionModel) renderStatusBar() string {
	status := fmt.Sprintf("Sort: %s | 's' sort, 'enter' details, 'd' delete, 'q' quit", m.sortBy)
	if n := len(m.removed); n > 0 {
		status += fmt.Sprintf(" | %d removed", n)
	}
	return SubtleStyle.Render(status)
}

func (m SessionModel) renderDetailView() string {
	it := m.selected
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("ITEM DETAIL"))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(LabelStyle.Render(fmt.Sprintf("%-9s", label+":")))
		b.WriteString(ValueStyle.Render(value))
		b.WriteString("\n")
	}
	field("ID", it.ID)
	field("Kind", string(it.Kind))
	field("Label", it.DisplayLabel())
	field("Details", it.Details())
	field("CO2e", greenops.FormatKg(estimate.ComputeItemCO2(it), m.precision))
	if it.Promotional != nil {
		field("Cost", greenops.FormatCost(estimate.Promotional(*it.Promotional).Cost, ""))
	}
	if !it.CreatedAt.IsZero() {
		field("Added", it.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if it.UnknownSubtype() {
		b.WriteString(WarningStyle.Render("Unknown subtype, counted as 0 kg"))
		b.WriteString("\n")
	}
	b.WriteString(SubtleStyle.Render("\nPress ESC to return"))

	return BoxStyle.Width(max(m.width-borderPadding, minHeight)).Render(b.String())
}
