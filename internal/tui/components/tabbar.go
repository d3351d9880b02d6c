package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // position of the shortcut letter in the name (-1 if not in name)
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Transactions", Key: 't', KeyPos: 0},
	{Name: "Goals", Key: 'g', KeyPos: 0},
	{Name: "Analytics", Key: 'a', KeyPos: 0},
	{Name: "Settings", Key: 'x', KeyPos: -1},
}

// RenderTabBar renders a single-row tab bar padded to width.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	sep := lipgloss.NewStyle().Foreground(t.Border).Background(t.Surface).Render("│")

	parts := make([]string, len(Tabs))
	for i, tab := range Tabs {
		parts[i] = renderTab(tab, i == activeIdx)
	}
	row := strings.Join(parts, sep)

	return lipgloss.NewStyle().Background(t.Surface).Width(width).Render(row)
}

// TabVisualWidth returns the rendered width of a tab, which the mouse
// hit-testing must agree with.
func TabVisualWidth(tab Tab, active bool) int {
	return lipgloss.Width(renderTab(tab, active))
}

func renderTab(tab Tab, active bool) string {
	t := theme.Active

	if active {
		return lipgloss.NewStyle().
			Foreground(t.AccentBright).
			Background(t.SurfaceHover).
			Bold(true).
			Padding(0, 1).
			Render(tab.Name)
	}

	pad := lipgloss.NewStyle().Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true).Underline(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	var label string
	if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
		label = nameStyle.Render(tab.Name[:tab.KeyPos]) +
			keyStyle.Render(string(tab.Name[tab.KeyPos])) +
			nameStyle.Render(tab.Name[tab.KeyPos+1:])
	} else {
		label = nameStyle.Render(tab.Name) +
			dimStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimStyle.Render("]")
	}
	return pad.Render(" ") + label + pad.Render(" ")
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
