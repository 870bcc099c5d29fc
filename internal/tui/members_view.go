package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/rosterview/internal/engine"
)

// View renders the current view (Bubble Tea interface).
func (m MembersModel) View() string {
	switch m.state {
	case ViewStateQuitting:
		return ""
	case ViewStateLoading:
		return m.loading.View(m.width, m.height)
	case ViewStateDetail:
		return m.renderDetailView()
	case ViewStateList:
		return m.renderListView()
	default:
		return ""
	}
}

func (m MembersModel) renderListView() string {
	sections := []string{
		m.renderTitle(),
		m.renderSearchLine(),
		m.table.View(),
		m.renderPaginationFooter(),
		m.renderStatusBar(),
		m.help.View(m.keys),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m MembersModel) renderTitle() string {
	title := TitleStyle.Render("Members")
	count := SubtleStyle.Render(fmt.Sprintf(" %d total", len(m.all)))
	return title + count
}

func (m MembersModel) renderSearchLine() string {
	label := LabelStyle.Render("Search: ")
	if m.searching {
		return label + m.search.View()
	}
	if m.query.Search == "" {
		return label + SubtleStyle.Render("press / to search")
	}
	return label + ValueStyle.Render(m.query.Search)
}

// renderPaginationFooter shows the page dots and the visible row range.
func (m MembersModel) renderPaginationFooter() string {
	if m.view.TotalItems == 0 {
		if m.query.Search != "" {
			return WarningStyle.Render("No members match " + fmt.Sprintf("%q", m.query.Search))
		}
		return WarningStyle.Render("No members found")
	}
	meta := m.view.Meta
	return fmt.Sprintf("%s  %s",
		InfoStyle.Render(m.pages.View()),
		SubtleStyle.Render(fmt.Sprintf("showing %d-%d of %d", meta.FirstItem, meta.LastItem, meta.TotalItems)),
	)
}

func (m MembersModel) renderStatusBar() string {
	var parts []string

	sortLabel := "none"
	if m.query.SortField != "" {
		sortLabel = m.query.SortField + " " + m.query.SortOrder
	}
	parts = append(parts, "Sort: "+sortLabel)

	if n := m.selection.Count(); n > 0 {
		parts = append(parts, fmt.Sprintf("%d selected", n))
	}

	bar := SubtleStyle.Render(strings.Join(parts, " | "))
	if m.status == "" {
		return bar
	}
	statusStyle := InfoStyle
	if m.err != nil {
		statusStyle = CriticalStyle
	}
	return bar + "  " + statusStyle.Render(m.status)
}

func (m MembersModel) renderDetailView() string {
	d := m.detail
	selected := "no"
	if m.selection.Has(d.ID) {
		selected = "yes"
	}

	rows := [][2]string{
		{"ID", d.ID},
		{"Name", d.Name},
		{"Email", d.Email},
		{"Role", d.Role},
		{"Selected", selected},
	}

	var content strings.Builder
	content.WriteString(HeaderStyle.Render("MEMBER DETAILS"))
	content.WriteString("\n\n")
	for _, r := range rows {
		content.WriteString(fmt.Sprintf("%-10s %s\n", LabelStyle.Render(r[0]+":"), ValueStyle.Render(r[1])))
	}
	content.WriteString("\n")
	content.WriteString(SubtleStyle.Render("esc back | space toggle selection | q quit"))

	box := BoxStyle
	if w := m.width - borderPadding; w > 0 {
		box = box.Width(w)
	}
	return box.Render(content.String())
}

// memberRowsForDisplay flattens members into display rows, used by the
// styled non-interactive renderer.
func memberRowsForDisplay(members []engine.Member) [][]string {
	rows := make([][]string, len(members))
	for i, mem := range members {
		rows[i] = []string{
			mem.ID,
			engine.Truncate(mem.Name, colWidthName),
			engine.Truncate(mem.Email, colWidthEmail),
			engine.Truncate(mem.Role, colWidthRole),
		}
	}
	return rows
}
