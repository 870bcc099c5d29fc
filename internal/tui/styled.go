package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"

	"github.com/rshade/rosterview/internal/engine"
)

// RenderStyledView renders one page as a bordered table with a summary line,
// for non-interactive output to a color terminal.
func RenderStyledView(view engine.DerivedView, width int) string {
	if view.TotalItems == 0 {
		return InfoStyle.Render(engine.PageSummary(view))
	}

	t := ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		Headers("ID", "NAME", "EMAIL", "ROLE").
		Rows(memberRowsForDisplay(view.Rows)...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return HeaderStyle.Padding(0, 1)
			}
			return TableCellStyle
		})
	if width > 0 {
		t = t.Width(width)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(SubtleStyle.Render(engine.PageSummary(view)))
	if view.Query.Search != "" {
		b.WriteString(SubtleStyle.Render(fmt.Sprintf(" | search %q", view.Query.Search)))
	}
	return b.String()
}

// WriteStyledView writes RenderStyledView output followed by a newline.
func WriteStyledView(w io.Writer, view engine.DerivedView, width int) error {
	_, err := fmt.Fprintln(w, RenderStyledView(view, width))
	return err
}
