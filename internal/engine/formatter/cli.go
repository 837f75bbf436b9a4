package formatter

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/guet-cli/guet/internal/engine/hooks"
)

var (
	boldStyle    = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	guetStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	foreignStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// CLIFormatter outputs StatusReport as a human-readable table.
type CLIFormatter struct {
	Color bool
}

// NewCLIFormatter creates a new CLIFormatter.
func NewCLIFormatter(color bool) *CLIFormatter {
	return &CLIFormatter{Color: color}
}

// Format returns a formatted CLI report.
func (f *CLIFormatter) Format(report StatusReport) string {
	var b strings.Builder

	width := 0
	for _, s := range report.Slots {
		width = max(width, len(s.Name))
	}

	for _, s := range report.Slots {
		fmt.Fprintf(&b, "%-*s  %s\n", width, s.Name, f.state(s.State))
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", f.colorize("started:      ", boldStyle), yesNo(report.Started))
	fmt.Fprintf(&b, "%s %s\n", f.colorize("foreign hooks:", boldStyle), yesNo(report.ForeignHooks))
	if report.Started && report.ForeignHooks {
		b.WriteString(f.colorize("Call the *-guet hooks from your own hooks to run guet.", dimStyle) + "\n")
	}
	return b.String()
}

func (f *CLIFormatter) state(s hooks.State) string {
	switch s {
	case hooks.StateGuet:
		return f.colorize(string(s), guetStyle)
	case hooks.StateForeign:
		return f.colorize(string(s), foreignStyle)
	default:
		return f.colorize(string(s), dimStyle)
	}
}

func (f *CLIFormatter) colorize(s string, style lipgloss.Style) string {
	if !f.Color {
		return s
	}
	return style.Render(s)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
