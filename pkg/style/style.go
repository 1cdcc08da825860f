// Package style defines the lipgloss styles used by the opbench CLI.
// Colors adapt to light and dark terminals and are disabled entirely when
// stdout is not a TTY, so piped benchmark output stays plain text.
package style

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// ErrorStyle renders fatal CLI errors
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"})

// IsTerminal reports whether the given file is attached to a TTY.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Render applies the style only when writing to a terminal.
func Render(s lipgloss.Style, text string, f *os.File) string {
	if !IsTerminal(f) {
		return text
	}
	return s.Render(text)
}
