package tui

// ViewState is the screen a model is showing.
type ViewState int

const (
	// ViewStateLoading shows the full-screen spinner while the dataset loads.
	ViewStateLoading ViewState = iota
	// ViewStateList shows the members table.
	ViewStateList
	// ViewStateDetail shows one member.
	ViewStateDetail
	// ViewStateQuitting is entered right before the program exits.
	ViewStateQuitting
)

// String returns the state name.
func (s ViewState) String() string {
	switch s {
	case ViewStateLoading:
		return "loading"
	case ViewStateList:
		return "list"
	case ViewStateDetail:
		return "detail"
	case ViewStateQuitting:
		return "quitting"
	default:
		return "unknown"
	}
}
