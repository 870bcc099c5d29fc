package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/logging"
)

// MembersFetcher loads the dataset. refresh asks the fetcher to bypass any
// cache. It should honor ctx cancellation.
type MembersFetcher func(ctx context.Context, refresh bool) ([]engine.Member, error)

// membersLoadedMsg carries the result of one fetch.
type membersLoadedMsg struct {
	members []engine.Member
	err     error
}

// searchDebounceMsg fires when the search box has been idle for the
// debounce delay. Only the latest seq is applied.
type searchDebounceMsg struct {
	seq   int
	value string
}

// MembersOptions configures a MembersModel.
type MembersOptions struct {
	// PageSize is the number of rows per page; below 1 uses the default.
	PageSize int
	// SearchDebounce delays applying typed search text. Zero applies on
	// every keystroke.
	SearchDebounce time.Duration
	// SortField and SortOrder set the initial ordering.
	SortField string
	SortOrder string
}

// sortCycle is the order 's' walks through. Role is displayed but not sortable.
//
//nolint:gochecknoglobals // Fixed cycle order.
var sortCycle = []string{"", engine.SortFieldName, engine.SortFieldEmail}

// MembersModel is the Bubble Tea model for the interactive members table.
//
//nolint:recvcheck // Bubble Tea requires value receivers for Init/Update/View interface methods.
type MembersModel struct {
	state ViewState
	ctx   context.Context
	fetch MembersFetcher

	all       []engine.Member // Loaded dataset, minus deleted rows
	query     engine.Query
	view      engine.DerivedView
	selection *engine.Selection
	detail    engine.Member

	table     table.Model
	search    textinput.Model
	searching bool
	searchSeq int
	debounce  time.Duration
	pages     paginator.Model
	help      help.Model
	keys      KeyMap
	loading   *LoadingState

	width  int
	height int

	status string
	err    error
}

// NewMembersModel creates a model that starts by loading the dataset.
func NewMembersModel(ctx context.Context, fetch MembersFetcher, opts MembersOptions) MembersModel {
	q := engine.DefaultQuery()
	if opts.PageSize > 0 {
		q.PageSize = opts.PageSize
	}
	q.SortField = opts.SortField
	if opts.SortOrder != "" {
		q.SortOrder = opts.SortOrder
	}

	keys := DefaultKeyMap()

	ti := textinput.New()
	ti.Placeholder = "Search by name, email or role"
	ti.Prompt = ""
	ti.CharLimit = searchInputCharLimit
	ti.Width = searchInputWidth

	pg := paginator.New()
	pg.Type = paginator.Arabic
	pg.KeyMap = keys.paginatorKeyMap()

	m := MembersModel{
		state:     ViewStateLoading,
		ctx:       ctx,
		fetch:     fetch,
		query:     q,
		selection: engine.NewSelection(),
		search:    ti,
		debounce:  opts.SearchDebounce,
		pages:     pg,
		help:      help.New(),
		keys:      keys,
		loading:   NewLoadingState(),
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.recompute()
	return m
}

// Init starts the spinner and the first fetch (Bubble Tea interface).
func (m MembersModel) Init() tea.Cmd {
	return tea.Batch(m.loading.Init(), m.fetchCmd(false))
}

func (m MembersModel) fetchCmd(refresh bool) tea.Cmd {
	ctx, fetch := m.ctx, m.fetch
	return func() tea.Msg {
		if fetch == nil {
			return membersLoadedMsg{err: fmt.Errorf("no member source configured")}
		}
		members, err := fetch(ctx, refresh)
		return membersLoadedMsg{members: members, err: err}
	}
}

// Update handles messages and updates the model state (Bubble Tea interface).
func (m MembersModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil
	case membersLoadedMsg:
		return m.handleLoaded(msg)
	case searchDebounceMsg:
		if msg.seq == m.searchSeq {
			m.applySearch(msg.value)
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}

	switch m.state {
	case ViewStateLoading:
		return m.handleLoadingUpdate(msg)
	case ViewStateList:
		if m.searching {
			return m.handleSearchInput(msg)
		}
		return m.handleListUpdate(msg)
	case ViewStateDetail:
		return m.handleDetailUpdate(msg)
	default:
		return m, nil
	}
}

func (m MembersModel) handleLoaded(msg membersLoadedMsg) (tea.Model, tea.Cmd) {
	log := logging.ComponentLogger(logging.FromContext(m.ctx), "tui")
	m.state = ViewStateList
	m.selection.Clear()

	if msg.err != nil {
		m.err = msg.err
		m.all = nil
		m.status = "Failed to load members: " + msg.err.Error()
		log.Error().Err(msg.err).Msg("member load failed")
	} else {
		m.err = nil
		m.all = msg.members
		m.status = fmt.Sprintf("Loaded %d members", len(msg.members))
		log.Debug().Int("member_count", len(msg.members)).Msg("members loaded")
	}

	m.recompute()
	m.table.Focus()
	return m, nil
}

func (m MembersModel) handleLoadingUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
		m.state = ViewStateQuitting
		return m, tea.Quit
	}
	return m, m.loading.Update(msg)
}

func (m MembersModel) handleSearchInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.search.Blur()
			m.searchSeq++
			m.applySearch(m.search.Value())
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.searchSeq++
			m.applySearch("")
			return m, nil
		}
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		searchCmd := m.scheduleSearch(after)
		return m, tea.Batch(cmd, searchCmd)
	}
	return m, cmd
}

// scheduleSearch applies value after the debounce delay unless another
// keystroke supersedes it. With no delay the search applies at once.
func (m *MembersModel) scheduleSearch(value string) tea.Cmd {
	m.searchSeq++
	if m.debounce <= 0 {
		m.applySearch(value)
		return nil
	}
	seq := m.searchSeq
	return tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq, value: value}
	})
}

func (m MembersModel) handleListUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m.handleListKeypress(keyMsg)
}

//nolint:gocyclo // Flat key dispatch.
func (m MembersModel) handleListKeypress(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.rebuildTable()
		return m, nil
	case key.Matches(keyMsg, m.keys.Search):
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd
	case key.Matches(keyMsg, m.keys.Back):
		if m.search.Value() != "" || m.query.Search != "" {
			m.search.SetValue("")
			m.searchSeq++
			m.applySearch("")
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.SortField):
		m.cycleSort()
		return m, nil
	case key.Matches(keyMsg, m.keys.SortOrder):
		m.flipOrder()
		return m, nil
	case key.Matches(keyMsg, m.keys.PrevPage), key.Matches(keyMsg, m.keys.NextPage):
		before := m.pages.Page
		m.pages, _ = m.pages.Update(keyMsg)
		if m.pages.Page != before {
			m.query.Page = m.pages.Page + 1
			m.recompute()
			m.table.SetCursor(0)
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Toggle):
		if row, ok := m.cursorMember(); ok {
			m.selection.Toggle(row.ID)
			m.rebuildTable()
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.TogglePage):
		m.selection.TogglePage(m.view.Rows)
		m.rebuildTable()
		return m, nil
	case key.Matches(keyMsg, m.keys.Delete):
		m.deleteSelected()
		return m, nil
	case key.Matches(keyMsg, m.keys.Open):
		if row, ok := m.cursorMember(); ok {
			m.detail = row
			m.state = ViewStateDetail
		}
		return m, nil
	case key.Matches(keyMsg, m.keys.Refresh):
		m.state = ViewStateLoading
		m.loading.SetMessage("Reloading members...")
		return m, tea.Batch(m.loading.Init(), m.fetchCmd(true))
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(keyMsg)
		return m, cmd
	}
}

func (m MembersModel) handleDetailUpdate(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.state = ViewStateQuitting
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Back), key.Matches(keyMsg, m.keys.Open):
		m.state = ViewStateList
		m.table.Focus()
		return m, nil
	case key.Matches(keyMsg, m.keys.Toggle):
		m.selection.Toggle(m.detail.ID)
		m.rebuildTable()
		return m, nil
	}
	return m, nil
}

// applySearch sets the search text and returns to the first page.
func (m *MembersModel) applySearch(value string) {
	if value == m.query.Search {
		return
	}
	m.query.Search = value
	m.query.Page = 1
	m.recompute()
	m.table.SetCursor(0)
}

// cycleSort advances to the next sortable field.
func (m *MembersModel) cycleSort() {
	next := 0
	for i, f := range sortCycle {
		if f == m.query.SortField {
			next = (i + 1) % len(sortCycle)
			break
		}
	}
	m.query.SortField = sortCycle[next]
	if m.query.SortOrder == "" {
		m.query.SortOrder = engine.SortAsc
	}
	m.recompute()
}

func (m *MembersModel) flipOrder() {
	if m.query.SortOrder == engine.SortAsc {
		m.query.SortOrder = engine.SortDesc
	} else {
		m.query.SortOrder = engine.SortAsc
	}
	m.recompute()
}

func (m *MembersModel) deleteSelected() {
	n := m.selection.Count()
	if n == 0 {
		m.status = "No members selected"
		return
	}
	ids := m.selection.IDs()
	before := len(m.all)
	m.all = engine.DeleteSelected(m.all, m.selection)
	m.selection.Clear()
	m.status = engine.Truncate(fmt.Sprintf("Deleted %d members (IDs %s)",
		before-len(m.all), strings.Join(ids, ", ")), maxStatusWidth)
	m.recompute()
}

// cursorMember returns the member under the table cursor.
func (m MembersModel) cursorMember() (engine.Member, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.view.Rows) {
		return engine.Member{}, false
	}
	return m.view.Rows[i], true
}

// recompute derives the visible page and clamps the page index when the
// filtered total shrank below it.
func (m *MembersModel) recompute() {
	m.view = engine.Compute(m.all, m.query)
	if pages := max(m.view.Meta.TotalPages, 1); m.view.Query.Page > pages {
		m.query.Page = pages
		m.view = engine.Compute(m.all, m.query)
	}
	m.query = m.view.Query

	m.pages.PerPage = m.query.PageSize
	m.pages.SetTotalPages(m.view.TotalItems)
	if m.pages.TotalPages < 1 {
		m.pages.TotalPages = 1
	}
	m.pages.Page = m.query.Page - 1

	m.rebuildTable()
}

// rebuildTable reconstructs the table for the current page, keeping the
// cursor in range.
func (m *MembersModel) rebuildTable() {
	cursor := m.table.Cursor()

	rows := make([]table.Row, len(m.view.Rows))
	for i, mem := range m.view.Rows {
		check := "[ ]"
		if m.selection.Has(mem.ID) {
			check = "[x]"
		}
		rows[i] = table.Row{
			check,
			engine.Truncate(mem.Name, colWidthName),
			engine.Truncate(mem.Email, colWidthEmail),
			engine.Truncate(mem.Role, colWidthRole),
		}
	}

	height := m.height - chromeHeight
	if m.help.ShowAll {
		height -= len(m.keys.FullHelp()[0])
	}
	if height < minHeight {
		height = minHeight
	}

	t := table.New(
		table.WithColumns(m.columns()),
		table.WithRows(rows),
		table.WithFocused(m.state == ViewStateList && !m.searching),
		table.WithHeight(height),
		table.WithKeyMap(m.keys.tableKeyMap()),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	s.Cell = TableCellStyle
	t.SetStyles(s)

	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}
	if cursor < 0 {
		cursor = 0
	}
	t.SetCursor(cursor)

	m.table = t
}

func (m MembersModel) columns() []table.Column {
	return []table.Column{
		{Title: "", Width: colWidthCheck},
		{Title: "Name" + m.sortIndicator(engine.SortFieldName), Width: colWidthName},
		{Title: "Email" + m.sortIndicator(engine.SortFieldEmail), Width: colWidthEmail},
		{Title: "Role", Width: colWidthRole},
	}
}

func (m MembersModel) sortIndicator(field string) string {
	if m.query.SortField != field {
		return ""
	}
	if m.query.SortOrder == engine.SortAsc {
		return " ▲"
	}
	return " ▼"
}

// State returns the current view state.
func (m MembersModel) State() ViewState {
	return m.state
}

// Query returns the query behind the visible page.
func (m MembersModel) Query() engine.Query {
	return m.query
}

// DerivedView returns the visible page.
func (m MembersModel) DerivedView() engine.DerivedView {
	return m.view
}

// Members returns the in-memory dataset, without deleted rows.
func (m MembersModel) Members() []engine.Member {
	return m.all
}

// Selection returns the checked rows.
func (m MembersModel) Selection() *engine.Selection {
	return m.selection
}

// Err returns the last load error, if any.
func (m MembersModel) Err() error {
	return m.err
}
