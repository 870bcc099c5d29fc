package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/pagination"
	"github.com/rshade/rosterview/internal/tui"
)

// listOptions holds the resolved inputs of one list run.
type listOptions struct {
	search   string
	sort     string
	page     int
	pageSize int
	output   string
	plain    bool
	noColor  bool
	refresh  bool
}

// listOptionsFromConfig returns the first page with configured defaults.
func listOptionsFromConfig(cfg *config.Config) listOptions {
	return listOptions{
		sort:     cfg.View.DefaultSort,
		page:     pagination.DefaultPage,
		pageSize: cfg.View.PageSize,
		output:   cfg.Output.DefaultFormat,
	}
}

// NewListCmd creates the list command, which prints one page of the derived view.
func NewListCmd() *cobra.Command {
	var flags listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print one page of members",
		Long: `Fetches the dataset and prints one page of the derived view.

Rows are filtered by --search (case-insensitive substring of name, email or
role), then sorted by --sort, then sliced to --page of --page-size rows.`,
		Example: `  # First page with config defaults
  rosterview list

  # Page 3 of members whose name, email or role contains "ar"
  rosterview list --search ar --page 3

  # All admins sorted by name, as NDJSON
  rosterview list --search admin --sort name --page-size 1000 --output ndjson`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := listOptionsFromConfig(config.GetGlobalConfig())
			opts.search = flags.search
			opts.plain = flags.plain
			opts.noColor = flags.noColor
			opts.refresh = flags.refresh
			if cmd.Flags().Changed("sort") {
				opts.sort = flags.sort
			}
			if cmd.Flags().Changed("page") {
				opts.page = flags.page
			}
			if cmd.Flags().Changed("page-size") {
				opts.pageSize = flags.pageSize
			}
			if cmd.Flags().Changed("output") {
				opts.output = flags.output
			}
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&flags.search, "search", "", "case-insensitive substring matched against name, email and role")
	cmd.Flags().StringVar(&flags.sort, "sort", "", "sort as field[:asc|desc], field is name or email")
	cmd.Flags().IntVar(&flags.page, "page", pagination.DefaultPage, "1-based page number")
	cmd.Flags().IntVar(&flags.pageSize, "page-size", pagination.DefaultPageSize, "rows per page")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutputFormat, "output format: table, json or ndjson")
	cmd.Flags().BoolVar(&flags.plain, "plain", false, "print an undecorated table even on a terminal")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "disable colors")
	cmd.Flags().BoolVar(&flags.refresh, "refresh", false, "bypass the dataset cache")

	return cmd
}

// buildQuery validates opts and converts them into an engine query.
func buildQuery(opts listOptions) (engine.Query, error) {
	field, order, err := pagination.ParseSort(opts.sort)
	if err != nil {
		return engine.Query{}, err
	}

	sorter := engine.NewMemberSorter()
	if field != "" && !sorter.IsValidField(field) {
		return engine.Query{}, fmt.Errorf("invalid sort field %q (valid: %s)",
			field, strings.Join(sorter.GetValidFields(), ", "))
	}

	params := pagination.NewPaginationParams()
	params.Page = opts.page
	params.PageSize = opts.pageSize
	params.SortField = field
	params.SortOrder = order
	if err = params.Validate(); err != nil {
		return engine.Query{}, err
	}

	return engine.Query{
		Search:    opts.search,
		SortField: field,
		SortOrder: order,
		Page:      opts.page,
		PageSize:  opts.pageSize,
	}, nil
}

func runList(cmd *cobra.Command, opts listOptions) error {
	format, err := engine.ParseOutputFormat(opts.output)
	if err != nil {
		return err
	}
	query, err := buildQuery(opts)
	if err != nil {
		return err
	}

	loader, err := newLoader(cmd, config.GetGlobalConfig())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	result, err := loader.Fetch(ctx, opts.refresh)
	if err != nil {
		return fmt.Errorf("loading members: %w", err)
	}

	view := engine.Compute(result.Members, query)
	logger.Debug().Ctx(ctx).
		Bool("from_cache", result.FromCache).
		Int("total_items", view.TotalItems).
		Int("rows", len(view.Rows)).
		Msg("view computed")

	out := cmd.OutOrStdout()
	if format == engine.OutputTable {
		mode := tui.DetectOutputMode(out, false, opts.noColor, opts.plain)
		if mode != tui.OutputModePlain {
			return tui.WriteStyledView(out, view, tui.TerminalWidth(0))
		}
	}
	return engine.RenderView(out, format, view)
}
