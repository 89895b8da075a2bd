// Package pretty provides Lipgloss-based styled output for the CLI.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for CLI output.
type Styles struct {
	FilePath lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Dim      lipgloss.Style
	Bold     lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style
}

// NewStyles creates a Styles for the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			FilePath: plain, Error: plain, Success: plain,
			Dim: plain, Bold: plain,
			DiffHeader: plain, DiffHunk: plain, DiffAdd: plain,
			DiffRemove: plain, DiffContext: plain,
		}
	}
	return &Styles{
		FilePath: lipgloss.NewStyle().Bold(true),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Success:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Dim:      lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:     lipgloss.NewStyle().Bold(true),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:     lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// IsColorEnabled decides color use from the mode ("auto", "always",
// "never") and the writer. In auto mode, color requires a TTY and respects
// NO_COLOR.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
