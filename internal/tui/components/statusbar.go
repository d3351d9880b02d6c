package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Notice is a transient status-bar message.
type Notice struct {
	Text string
	Err  bool
}

// Status is what the bottom bar shows on the right.
type Status struct {
	DataAge     string
	Refreshing  bool
	AutoRefresh bool
	Notice      Notice
}

// RenderStatusBar renders the bottom status bar. A notice replaces the
// key hints on the left while it is set.
func RenderStatusBar(width int, s Status) string {
	t := theme.Active

	barStyle := lipgloss.NewStyle().Background(t.Surface)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	left := hintStyle.Render(" [?]help  [n]ew  [r]efresh  [q]uit")
	if s.Notice.Text != "" {
		color := t.GreenBright
		prefix := " ✓ "
		if s.Notice.Err {
			color = t.Red
			prefix = " ✗ "
		}
		left = lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).
			Render(prefix + s.Notice.Text)
	}

	var right []string
	switch {
	case s.Refreshing:
		right = append(right, lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("refreshing…"))
	case s.AutoRefresh:
		right = append(right, dimStyle.Render("auto"))
	}
	if s.DataAge != "" {
		right = append(right, dimStyle.Render("loaded "+s.DataAge))
	}
	rightStr := strings.Join(right, dimStyle.Render(" │ ")) + barStyle.Render(" ")

	padding := width - lipgloss.Width(left) - lipgloss.Width(rightStr)
	if padding < 1 {
		left = lipgloss.NewStyle().MaxWidth(width - lipgloss.Width(rightStr) - 1).Render(left)
		padding = width - lipgloss.Width(left) - lipgloss.Width(rightStr)
		if padding < 0 {
			padding = 0
		}
	}

	return left + barStyle.Render(strings.Repeat(" ", padding)) + rightStr
}
