package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// ProgressBar renders a block progress bar followed by its percentage.
// pct is a fraction in [0, 1]; values outside are clamped.
func ProgressBar(pct float64, width int) string {
	t := theme.Active
	pct = clampFraction(pct)

	filled := int(pct * float64(width))
	if filled > width {
		filled = width
	}

	barColor := lipgloss.Color(ColorForPct(pct))
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ColorForPct maps goal completion to red/orange/yellow/green.
// Higher is better: a full bar is green.
func ColorForPct(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 0.75:
		return string(t.Green)
	case pct >= 0.5:
		return string(t.Yellow)
	case pct >= 0.25:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// GoalBar renders a labeled goal lane: label, bar, percentage and an
// on-track marker. pct is a percentage in [0, 100].
func GoalBar(label string, pct float64, onTrack bool, labelW, barWidth int) string {
	t := theme.Active
	frac := clampFraction(pct / 100)

	bar := progress.New(
		progress.WithSolidFill(ColorForPct(frac)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForPct(frac))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	marker := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).Render("behind")
	if onTrack {
		marker = lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).Render("on track")
	}

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, truncate(label, labelW))) +
		spaceStyle.Render(" ") +
		bar.ViewAs(frac) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%5.1f%%", pct)) +
		spaceStyle.Render("  ") +
		marker
}

func clampFraction(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
