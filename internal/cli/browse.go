package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/tui"
)

// browseOptions overrides view defaults for the interactive table.
type browseOptions struct {
	pageSize int
	sort     string
}

// NewBrowseCmd creates the browse command, which runs the interactive table.
func NewBrowseCmd() *cobra.Command {
	var opts browseOptions

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Open the interactive members table",
		Long: `Fetches the dataset once and opens a full-screen table.

Press / to search, s and o to sort, left and right to change page, space to
select a row, d to delete the selected rows and ? for all keys.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.pageSize, "page-size", 0, "rows per page (0 = view.page_size)")
	cmd.Flags().StringVar(&opts.sort, "sort", "", "initial sort as field[:asc|desc] (default view.default_sort)")

	return cmd
}

func runBrowse(cmd *cobra.Command, opts browseOptions) error {
	cfg := config.GetGlobalConfig()

	pageSize := cfg.View.PageSize
	if opts.pageSize > 0 {
		pageSize = opts.pageSize
	}
	sortArg := cfg.View.DefaultSort
	if opts.sort != "" {
		sortArg = opts.sort
	}
	query, err := buildQuery(listOptions{sort: sortArg, page: pagination.DefaultPage, pageSize: pageSize})
	if err != nil {
		return err
	}

	loader, err := newLoader(cmd, cfg)
	if err != nil {
		return err
	}

	ctx := quietContext(cmd.Context())
	fetch := func(ctx context.Context, refresh bool) ([]engine.Member, error) {
		result, fetchErr := loader.Fetch(ctx, refresh)
		return result.Members, fetchErr
	}

	model := tui.NewMembersModel(ctx, fetch, tui.MembersOptions{
		PageSize:       query.PageSize,
		SearchDebounce: time.Duration(cfg.View.SearchDebounceMS) * time.Millisecond,
		SortField:      query.SortField,
		SortOrder:      query.SortOrder,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(tui.MembersModel); ok {
		logger.Debug().Ctx(cmd.Context()).
			Int("remaining", len(m.Members())).
			Str("state", m.State().String()).
			Msg("browser closed")
	}
	return nil
}
