// Package style renders the workflows' tagged log lines and status
// output for the terminal.
package style

import (
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Styles for the pieces of terminal output.
var (
	TitleStyle   = pterm.NewStyle(pterm.FgLightWhite, pterm.Bold)
	MutedStyle   = pterm.NewStyle(pterm.FgGray)
	SuccessStyle = pterm.NewStyle(pterm.FgGreen)
	ErrorStyle   = pterm.NewStyle(pterm.FgRed, pterm.Bold)
	WarnStyle    = pterm.NewStyle(pterm.FgYellow)
)

// tagStyles maps a workflow log tag to its style.
var tagStyles = map[string]*pterm.Style{
	"[OK]":      SuccessStyle,
	"[ERROR]":   ErrorStyle,
	"[MIGRATE]": TitleStyle,
	"[LINK]":    TitleStyle,
	"[RESTORE]": TitleStyle,
	"[BACKUP]":  WarnStyle,
}

// Setup disables colors when stdout is not a terminal.
func Setup() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		pterm.DisableColor()
	}
}

// RenderLogLine colorizes the tag prefix of a workflow log line. Lines
// without a known tag are returned unchanged.
func RenderLogLine(line string) string {
	for tag, st := range tagStyles {
		if strings.HasPrefix(line, tag) {
			return st.Sprint(tag) + line[len(tag):]
		}
	}
	return line
}

// Bold makes text bold.
func Bold(text string) string {
	return pterm.Bold.Sprint(text)
}

// Indent indents text by the given number of two-space levels.
func Indent(text string, level int) string {
	prefix := strings.Repeat("  ", level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
