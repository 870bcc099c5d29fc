package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
)

// KeyMap holds every binding of the members screen.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PrevPage   key.Binding
	NextPage   key.Binding
	Search     key.Binding
	SortField  key.Binding
	SortOrder  key.Binding
	Toggle     key.Binding
	TogglePage key.Binding
	Delete     key.Binding
	Open       key.Binding
	Back       key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "first row")),
		Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "last row")),
		PrevPage:   key.NewBinding(key.WithKeys("left", "h", "pgup"), key.WithHelp("←/h", "prev page")),
		NextPage:   key.NewBinding(key.WithKeys("right", "l", "pgdown"), key.WithHelp("→/l", "next page")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SortField:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort field")),
		SortOrder:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "sort order")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space/x", "select")),
		TogglePage: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select page")),
		Delete:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete selected")),
		Open:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		Back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back/clear")),
		Refresh:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "reload")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.SortField, k.PrevPage, k.NextPage, k.Toggle, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom},
		{k.PrevPage, k.NextPage, k.Search, k.Back},
		{k.SortField, k.SortOrder, k.Open, k.Refresh},
		{k.Toggle, k.TogglePage, k.Delete, k.Help, k.Quit},
	}
}

// tableKeyMap limits the table to row movement; paging and the letter keys
// belong to the members screen.
func (k KeyMap) tableKeyMap() table.KeyMap {
	return table.KeyMap{
		LineUp:     k.Up,
		LineDown:   k.Down,
		GotoTop:    k.Top,
		GotoBottom: k.Bottom,
	}
}

func (k KeyMap) paginatorKeyMap() paginator.KeyMap {
	return paginator.KeyMap{
		PrevPage: k.PrevPage,
		NextPage: k.NextPage,
	}
}
