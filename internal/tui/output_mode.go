package tui

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// OutputMode is how results are presented on the current terminal.
type OutputMode int

const (
	// OutputModePlain writes undecorated text, for pipes and dumb terminals.
	OutputModePlain OutputMode = iota
	// OutputModeStyled writes colored static output.
	OutputModeStyled
	// OutputModeInteractive runs the full-screen program.
	OutputModeInteractive
)

// String returns the mode name.
func (m OutputMode) String() string {
	switch m {
	case OutputModeInteractive:
		return "interactive"
	case OutputModeStyled:
		return "styled"
	default:
		return "plain"
	}
}

// Terminal describes the environment DetectOutputMode inspects.
type Terminal struct {
	StdoutIsTTY bool
	StdinIsTTY  bool
	Term        string
	NoColor     bool
}

// CurrentTerminal inspects the process's stdio and environment.
func CurrentTerminal() Terminal {
	_, noColor := os.LookupEnv("NO_COLOR")
	return Terminal{
		StdoutIsTTY: term.IsTerminal(int(os.Stdout.Fd())),
		StdinIsTTY:  term.IsTerminal(int(os.Stdin.Fd())),
		Term:        os.Getenv("TERM"),
		NoColor:     noColor,
	}
}

// DetectOutputMode picks the output mode for writing to out. Only an
// *os.File attached to a terminal counts as a TTY. plain forces
// OutputModePlain, noColor rules out colors, and forceColor allows styled
// output even when out is not a terminal.
func DetectOutputMode(out io.Writer, forceColor, noColor, plain bool) OutputMode {
	return terminalFor(out).Mode(forceColor, noColor, plain)
}

// CanBrowse reports whether out and stdin allow the full-screen program.
func CanBrowse(out io.Writer) bool {
	return terminalFor(out).Interactive()
}

func terminalFor(out io.Writer) Terminal {
	t := CurrentTerminal()
	f, ok := out.(*os.File)
	t.StdoutIsTTY = ok && term.IsTerminal(int(f.Fd()))
	return t
}

// Interactive reports whether a full-screen program can run. Color
// preferences do not matter here.
func (t Terminal) Interactive() bool {
	return t.StdoutIsTTY && t.StdinIsTTY && !strings.EqualFold(t.Term, "dumb")
}

// Mode applies the detection rules to t. Colorless output is always plain.
func (t Terminal) Mode(forceColor, noColor, plain bool) OutputMode {
	if plain || noColor || t.NoColor || strings.EqualFold(t.Term, "dumb") {
		return OutputModePlain
	}
	if t.Interactive() {
		return OutputModeInteractive
	}
	if t.StdoutIsTTY || forceColor {
		return OutputModeStyled
	}
	return OutputModePlain
}

// TerminalWidth returns the stdout width, or fallback when it is unknown.
func TerminalWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
