package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/engine"
)

func testMembers(n int) []engine.Member {
	out := make([]engine.Member, n)
	for i := range out {
		role := "member"
		if i%5 == 0 {
			role = "admin"
		}
		out[i] = engine.Member{
			ID:    fmt.Sprint(i + 1),
			Name:  fmt.Sprintf("Person %02d", i+1),
			Email: fmt.Sprintf("p%02d@example.com", i+1),
			Role:  role,
		}
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m MembersModel, msg tea.Msg) MembersModel {
	t.Helper()
	updated, _ := m.Update(msg)
	out, ok := updated.(MembersModel)
	require.True(t, ok)
	return out
}

// loadedModel returns a model in the list state holding n members.
func loadedModel(t *testing.T, n int, opts MembersOptions) MembersModel {
	t.Helper()
	m := NewMembersModel(context.Background(), nil, opts)
	return send(t, m, membersLoadedMsg{members: testMembers(n)})
}

func TestNewMembersModel(t *testing.T) {
	m := NewMembersModel(context.Background(), nil, MembersOptions{PageSize: 5, SortField: "name"})

	assert.Equal(t, ViewStateLoading, m.State())
	assert.Equal(t, 5, m.Query().PageSize)
	assert.Equal(t, "name", m.Query().SortField)
	assert.Equal(t, engine.SortAsc, m.Query().SortOrder)
	assert.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Loading members")
}

func TestMembersModel_FetchCmd(t *testing.T) {
	var gotRefresh bool
	fetch := func(_ context.Context, refresh bool) ([]engine.Member, error) {
		gotRefresh = refresh
		return testMembers(3), nil
	}
	m := NewMembersModel(context.Background(), fetch, MembersOptions{})

	msg := m.fetchCmd(true)()
	loaded, ok := msg.(membersLoadedMsg)
	require.True(t, ok)
	assert.True(t, gotRefresh)
	assert.Len(t, loaded.members, 3)

	msg = NewMembersModel(context.Background(), nil, MembersOptions{}).fetchCmd(false)()
	assert.Error(t, msg.(membersLoadedMsg).err)
}

func TestMembersModel_Loaded(t *testing.T) {
	m := loadedModel(t, 25, MembersOptions{})

	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.DerivedView().Rows, 10)
	assert.Equal(t, 25, m.DerivedView().TotalItems)
	assert.Equal(t, 3, m.pages.TotalPages)

	view := m.View()
	assert.Contains(t, view, "Person 01")
	assert.Contains(t, view, "showing 1-10 of 25")
	assert.Contains(t, view, "Loaded 25 members")
}

func TestMembersModel_LoadError(t *testing.T) {
	m := NewMembersModel(context.Background(), nil, MembersOptions{})
	m = send(t, m, membersLoadedMsg{err: errors.New("connection refused")})

	assert.Equal(t, ViewStateList, m.State())
	require.Error(t, m.Err())
	assert.Empty(t, m.DerivedView().Rows)
	assert.Contains(t, m.View(), "Failed to load members: connection refused")
	assert.Contains(t, m.View(), "No members found")
}

func TestMembersModel_Paging(t *testing.T) {
	m := loadedModel(t, 25, MembersOptions{})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 2, m.Query().Page)
	assert.Equal(t, "11", m.DerivedView().Rows[0].ID)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgDown})
	assert.Equal(t, 3, m.Query().Page)
	assert.Len(t, m.DerivedView().Rows, 5)

	m = send(t, m, runes("l"))
	assert.Equal(t, 3, m.Query().Page, "cannot page past the end")

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.Query().Page)

	m = send(t, m, runes("h"))
	m = send(t, m, tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 1, m.Query().Page, "cannot page before the start")
}

func TestMembersModel_Sort(t *testing.T) {
	m := loadedModel(t, 12, MembersOptions{})

	m = send(t, m, runes("s"))
	assert.Equal(t, engine.SortFieldName, m.Query().SortField)
	assert.Equal(t, "Person 01", m.DerivedView().Rows[0].Name)
	assert.Contains(t, m.View(), "Name ▲")

	m = send(t, m, runes("o"))
	assert.Equal(t, engine.SortDesc, m.Query().SortOrder)
	assert.Equal(t, "Person 12", m.DerivedView().Rows[0].Name)
	assert.Contains(t, m.View(), "Name ▼")

	m = send(t, m, runes("s"))
	assert.Equal(t, engine.SortFieldEmail, m.Query().SortField)

	m = send(t, m, runes("s"))
	assert.Empty(t, m.Query().SortField, "cycle returns to unsorted")
	assert.Contains(t, m.View(), "Sort: none")
}

func TestMembersModel_SearchImmediate(t *testing.T) {
	m := loadedModel(t, 25, MembersOptions{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.Query().Page)

	m = send(t, m, runes("/"))
	require.True(t, m.searching)

	m = send(t, m, runes("admin"))
	assert.Equal(t, "admin", m.Query().Search)
	assert.Equal(t, 1, m.Query().Page, "search resets to the first page")
	assert.Equal(t, 5, m.DerivedView().TotalItems)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "admin", m.Query().Search)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.Query().Search)
	assert.Equal(t, 25, m.DerivedView().TotalItems)
}

func TestMembersModel_SearchDebounced(t *testing.T) {
	m := loadedModel(t, 25, MembersOptions{SearchDebounce: 50 * time.Millisecond})
	m = send(t, m, runes("/"))

	updated, cmd := m.Update(runes("Person 0"))
	m = updated.(MembersModel)
	assert.NotNil(t, cmd)
	assert.Empty(t, m.Query().Search, "search waits for the debounce tick")

	stale := m.searchSeq
	m = send(t, m, runes("7"))

	m = send(t, m, searchDebounceMsg{seq: stale, value: "Person 0"})
	assert.Empty(t, m.Query().Search, "superseded tick is ignored")

	m = send(t, m, searchDebounceMsg{seq: m.searchSeq, value: "Person 07"})
	assert.Equal(t, "Person 07", m.Query().Search)
	require.Len(t, m.DerivedView().Rows, 1)
	assert.Equal(t, "7", m.DerivedView().Rows[0].ID)
}

func TestMembersModel_SearchEscCancels(t *testing.T) {
	m := loadedModel(t, 8, MembersOptions{})
	m = send(t, m, runes("/"))
	m = send(t, m, runes("zzz"))
	assert.Equal(t, 0, m.DerivedView().TotalItems)
	assert.Contains(t, m.View(), `No members match "zzz"`)

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.searching)
	assert.Empty(t, m.Query().Search)
	assert.Equal(t, 8, m.DerivedView().TotalItems)
}

func TestMembersModel_SelectAndDelete(t *testing.T) {
	m := loadedModel(t, 15, MembersOptions{})

	m = send(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	assert.True(t, m.Selection().Has("1"))

	m = send(t, m, runes("j"))
	m = send(t, m, runes("x"))
	assert.True(t, m.Selection().Has("2"))
	assert.Equal(t, 2, m.Selection().Count())
	assert.Contains(t, m.View(), "2 selected")

	m = send(t, m, runes("d"))
	assert.Len(t, m.Members(), 13)
	assert.Equal(t, 0, m.Selection().Count())
	assert.Equal(t, "3", m.DerivedView().Rows[0].ID)
	assert.Contains(t, m.View(), "Deleted 2 members (IDs 1, 2)")

	m = send(t, m, runes("d"))
	assert.Contains(t, m.View(), "No members selected")
	assert.Len(t, m.Members(), 13)
}

func TestMembersModel_DeleteClampsPage(t *testing.T) {
	m := loadedModel(t, 12, MembersOptions{})
	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.Query().Page)
	require.Len(t, m.DerivedView().Rows, 2)

	m = send(t, m, runes("a"))
	assert.Equal(t, 2, m.Selection().Count())

	m = send(t, m, runes("d"))
	assert.Len(t, m.Members(), 10)
	assert.Equal(t, 1, m.Query().Page, "page clamps to the new last page")
	assert.Len(t, m.DerivedView().Rows, 10)
}

func TestMembersModel_TogglePage(t *testing.T) {
	m := loadedModel(t, 5, MembersOptions{})

	m = send(t, m, runes("a"))
	assert.Equal(t, 5, m.Selection().Count())

	m = send(t, m, runes("a"))
	assert.Equal(t, 0, m.Selection().Count())
}

func TestMembersModel_Detail(t *testing.T) {
	m := loadedModel(t, 5, MembersOptions{})
	m = send(t, m, runes("j"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDetail, m.State())
	view := m.View()
	assert.Contains(t, view, "MEMBER DETAILS")
	assert.Contains(t, view, "p02@example.com")

	m = send(t, m, runes("x"))
	assert.True(t, m.Selection().Has("2"))

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ViewStateList, m.State())
}

func TestMembersModel_Refresh(t *testing.T) {
	m := loadedModel(t, 5, MembersOptions{})
	m = send(t, m, runes("x"))

	updated, cmd := m.Update(runes("R"))
	m = updated.(MembersModel)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.NotNil(t, cmd)
	assert.Contains(t, m.View(), "Reloading members")

	m = send(t, m, membersLoadedMsg{members: testMembers(7)})
	assert.Equal(t, ViewStateList, m.State())
	assert.Len(t, m.Members(), 7)
	assert.Equal(t, 0, m.Selection().Count(), "reload clears the selection")
}

func TestMembersModel_HelpToggle(t *testing.T) {
	m := loadedModel(t, 5, MembersOptions{})
	assert.False(t, m.help.ShowAll)

	m = send(t, m, runes("?"))
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "select page")
}

func TestMembersModel_Quit(t *testing.T) {
	tests := []struct {
		name  string
		state func(t *testing.T) MembersModel
		msg   tea.KeyMsg
	}{
		{"q from list", func(t *testing.T) MembersModel { return loadedModel(t, 3, MembersOptions{}) }, runes("q")},
		{"ctrl+c while loading", func(*testing.T) MembersModel {
			return NewMembersModel(context.Background(), nil, MembersOptions{})
		}, tea.KeyMsg{Type: tea.KeyCtrlC}},
		{"q from detail", func(t *testing.T) MembersModel {
			return send(t, loadedModel(t, 3, MembersOptions{}), tea.KeyMsg{Type: tea.KeyEnter})
		}, runes("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated, cmd := tt.state(t).Update(tt.msg)
			m := updated.(MembersModel)
			assert.Equal(t, ViewStateQuitting, m.State())
			assert.NotNil(t, cmd)
			assert.Empty(t, m.View())
		})
	}
}

func TestMembersModel_QuitKeyIsTextWhileSearching(t *testing.T) {
	m := loadedModel(t, 3, MembersOptions{})
	m = send(t, m, runes("/"))
	m = send(t, m, runes("q"))
	assert.Equal(t, ViewStateList, m.State())
	assert.Equal(t, "q", m.search.Value())
}

func TestMembersModel_WindowSize(t *testing.T) {
	m := loadedModel(t, 50, MembersOptions{PageSize: 50})

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 40})
	assert.Equal(t, 80, m.width)
	assert.Equal(t, 80, m.help.Width)
	tall := m.table.Height()

	m = send(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Less(t, m.table.Height(), tall)

	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 3})
	tiny := m.table.Height()
	m = send(t, m, tea.WindowSizeMsg{Width: 40, Height: 1})
	assert.Equal(t, tiny, m.table.Height(), "table height has a floor")
}

func TestRenderStyledView(t *testing.T) {
	view := engine.Compute(testMembers(12), engine.Query{Search: "person", Page: 2, PageSize: 10})

	out := RenderStyledView(view, 0)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "Person 11")
	assert.NotContains(t, out, "Person 10")
	assert.Contains(t, out, "Page 2 of 2 (showing 11-12 of 12)")
	assert.Contains(t, out, `search "person"`)

	assert.Contains(t, RenderStyledView(engine.Compute(nil, engine.DefaultQuery()), 80), "No members found")
}
