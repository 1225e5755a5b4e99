// internal/platform/ui/symbols.go
package ui

import "github.com/pterm/pterm"

// Status is the state of a module build as shown to the user.
type Status int

const (
	StatusPassed Status = iota
	StatusFailed
	StatusNotRun
)

func (s Status) String() string {
	switch s {
	case StatusPassed:
		return "passed"
	case StatusFailed:
		return "failed"
	case StatusNotRun:
		return "not run"
	default:
		return "unknown"
	}
}

// Symbol returns the glyph printed in front of a status line.
func (s Status) Symbol() string {
	switch s {
	case StatusPassed:
		return "✓"
	case StatusFailed:
		return "✗"
	case StatusNotRun:
		return "⊘"
	default:
		return "?"
	}
}

func (s Status) Color() pterm.Color {
	switch s {
	case StatusPassed:
		return pterm.FgGreen
	case StatusFailed:
		return pterm.FgRed
	case StatusNotRun:
		return pterm.FgYellow
	default:
		return pterm.FgDefault
	}
}

func (s Status) Style() *pterm.Style {
	return pterm.NewStyle(s.Color())
}

// Line renders "<symbol> msg" in the status color.
func (s Status) Line(msg string) string {
	return s.Style().Sprint(s.Symbol() + " " + msg)
}

// Styles for secondary output.
var (
	// StyleEcho marks command echoes so they stand out from Maven's output.
	StyleEcho = pterm.NewStyle(pterm.FgGray)

	// StyleCommand highlights a command the user is meant to copy.
	StyleCommand = pterm.NewStyle(pterm.FgCyan)
)
