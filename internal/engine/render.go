package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rshade/rosterview/internal/pagination"
)

// Column widths for the member table.
const (
	colWidthID    = 8
	colWidthName  = 28
	colWidthEmail = 36
	colWidthRole  = 12
)

// tabwriterPadding is the minimum padding between columns in the member table.
const tabwriterPadding = 2

// truncateMinLen is the minimum truncation length below which no ellipsis is added.
const truncateMinLen = 3

// Truncate shortens s to maxLen runes, ending in "..." when there is room.
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= truncateMinLen {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// RenderView writes view in the requested format.
func RenderView(w io.Writer, format OutputFormat, view DerivedView) error {
	switch format {
	case OutputJSON:
		return RenderViewAsJSON(w, view)
	case OutputNDJSON:
		return RenderViewAsNDJSON(w, view)
	case OutputTable, "":
		return RenderViewAsTable(w, view)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, format)
	}
}

// RenderViewAsTable writes an aligned table of the page rows followed by a
// page footer.
func RenderViewAsTable(w io.Writer, view DerivedView) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintf(tw, "ID\tNAME\tEMAIL\tROLE\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintf(tw, "--\t----\t-----\t----\n"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, m := range view.Rows {
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			Truncate(m.ID, colWidthID),
			Truncate(m.Name, colWidthName),
			Truncate(m.Email, colWidthEmail),
			Truncate(m.Role, colWidthRole),
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "\n%s\n", PageSummary(view)); err != nil {
		return fmt.Errorf("writing footer: %w", err)
	}
	return nil
}

// PageSummary returns a one-line description such as
// "Page 2 of 5 (showing 11-20 of 46)".
func PageSummary(view DerivedView) string {
	m := view.Meta
	if m.TotalItems == 0 {
		return "No members found"
	}
	if m.FirstItem == 0 {
		return fmt.Sprintf("Page %d of %d (no rows on this page, %d total)",
			m.CurrentPage, m.TotalPages, m.TotalItems)
	}
	return fmt.Sprintf("Page %d of %d (showing %d-%d of %d)",
		m.CurrentPage, m.TotalPages, m.FirstItem, m.LastItem, m.TotalItems)
}

// ViewJSONOutput is the top-level JSON output structure.
type ViewJSONOutput struct {
	Query   Query                     `json:"query"`
	Page    pagination.PaginationMeta `json:"page"`
	Members []Member                  `json:"members"`
}

// RenderViewAsJSON renders the page as an indented JSON object holding the
// query, page metadata and members.
func RenderViewAsJSON(w io.Writer, view DerivedView) error {
	// Initialize members to empty slice so JSON produces [] instead of null.
	members := view.Rows
	if members == nil {
		members = []Member{}
	}

	output := ViewJSONOutput{
		Query:   view.Query,
		Page:    view.Meta,
		Members: members,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

// RenderViewAsNDJSON renders each member of the page as a separate JSON line
// with no metadata wrapper.
func RenderViewAsNDJSON(w io.Writer, view DerivedView) error {
	for _, m := range view.Rows {
		data, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("marshaling member: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing member: %w", err)
		}
	}
	return nil
}
