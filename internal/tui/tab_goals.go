package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// goalsState holds the goals tab state.
type goalsState struct {
	cursor        int
	confirmDelete bool
}

func (s *goalsState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *goalsState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (a App) selectedGoal() (dashboard.GoalView, bool) {
	if a.goalState.cursor < 0 || a.goalState.cursor >= len(a.snap.Goals) {
		return dashboard.GoalView{}, false
	}
	return a.snap.Goals[a.goalState.cursor], true
}

func (a App) updateGoalsKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.snap.Goals)

	switch key {
	case "j", "down":
		a.goalState.move(1, n)
		return a, nil, true
	case "k", "up":
		a.goalState.move(-1, n)
		return a, nil, true
	case "n":
		m, cmd := a.openGoalForm()
		return m, cmd, true
	case "c":
		g, ok := a.selectedGoal()
		if !ok {
			return a, nil, true
		}
		id, done := g.Goal.ID, !g.Goal.Completed
		what := "complete goal"
		if !done {
			what = "reopen goal"
		}
		return a, saveCmd(a.opts.DBPath, what, func(s *store.Store) error {
			return s.SetGoalCompleted(id, done)
		}), true
	case "A":
		g, ok := a.selectedGoal()
		if !ok {
			return a, nil, true
		}
		id := g.Goal.ID
		return a, saveCmd(a.opts.DBPath, "archive goal", func(s *store.Store) error {
			return s.ArchiveGoal(id)
		}), true
	case "D", "delete":
		if n > 0 {
			a.goalState.confirmDelete = true
		}
		return a, nil, true
	}
	return a, nil, false
}

func (a App) renderGoalsTab(cw, h int) string {
	t := theme.Active
	goals := a.snap.Goals

	if len(goals) == 0 {
		return components.ContentCard("Goals",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).
				Render("No goals yet. Press n to create one."), cw)
	}

	var b strings.Builder
	if a.isCompactLayout() {
		b.WriteString(a.renderGoalList(goals, cw))
		b.WriteString("\n")
		if g, ok := a.selectedGoal(); ok {
			b.WriteString(a.renderGoalDetail(g, cw))
		}
	} else {
		halves := components.LayoutRow(cw, 2)
		var detail string
		if g, ok := a.selectedGoal(); ok {
			detail = a.renderGoalDetail(g, halves[1])
		}
		b.WriteString(components.CardRow([]string{a.renderGoalList(goals, halves[0]), detail}))
	}
	b.WriteString("\n")
	b.WriteString(a.renderRaceCard(cw))

	return truncateHeight(b.String(), h)
}

func (a App) renderGoalList(goals []dashboard.GoalView, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	doneStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Strikethrough(true)
	pad := lipgloss.NewStyle().Background(t.Surface)

	labelW := innerW / 3
	if labelW < 12 {
		labelW = 12
	}
	barW := innerW - labelW - 2 - 20
	if barW < 8 {
		barW = 8
	}

	var body strings.Builder
	for i, g := range goals {
		marker := pad.Render("  ")
		if i == a.goalState.cursor {
			marker = markerStyle.Render("▸ ")
		}
		body.WriteString(marker)
		if g.Goal.Completed {
			body.WriteString(doneStyle.Render(truncStr(g.Goal.Title, innerW-2)))
			body.WriteString(mutedStyle.Render("  done"))
		} else {
			body.WriteString(components.GoalBar(g.Goal.Title, g.Progress.Percentage, g.Progress.OnTrack, labelW, barW))
		}
		body.WriteString("\n")
	}
	body.WriteString("\n")
	if a.goalState.confirmDelete {
		body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
			Render("Delete the selected goal? [y/N]"))
	} else {
		body.WriteString(mutedStyle.Render("[n]ew  [c]omplete/reopen  [A]rchive  [D]elete"))
	}

	return components.ContentCard(fmt.Sprintf("Goals (%d)", len(goals)), body.String(), w)
}

func (a App) renderGoalDetail(g dashboard.GoalView, w int) string {
	t := theme.Active
	p := g.Progress

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	var body strings.Builder
	body.WriteString(titleStyle.Render(g.Info.Icon + " " + g.Goal.Title))
	body.WriteString("\n")
	body.WriteString(labelStyle.Render(g.Info.Description))
	body.WriteString("\n\n")

	rows := [][2]string{
		{"Type", g.Info.Label},
		{"Target", a.money(p.Target)},
		{"Current", a.signed(p.Current)},
		{"Remaining", a.money(p.Remaining)},
		{"Progress", cli.FormatPercent(p.Percentage)},
	}
	if p.DaysRemaining != nil {
		rows = append(rows, [2]string{"Days left", fmt.Sprintf("%d", *p.DaysRemaining)})
	}
	if p.MonthsRemaining != nil {
		rows = append(rows, [2]string{"Months left", fmt.Sprintf("%d", *p.MonthsRemaining)})
	}
	for _, r := range rows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", r[0])))
		body.WriteString(valueStyle.Render(r[1]))
		body.WriteString("\n")
	}

	if g.Deadline != nil {
		color := t.TextPrimary
		if g.Deadline.Overdue {
			color = t.Red
		}
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", "Deadline")))
		body.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).
			Render(cli.FormatDate(g.Goal.Deadline) + " · " + g.Deadline.Text))
		body.WriteString("\n")
	}

	status, color := "behind pace", t.Orange
	switch {
	case g.Goal.Completed:
		status, color = "completed", t.GreenBright
	case p.OnTrack:
		status, color = "on track", t.GreenBright
	}
	body.WriteString("\n")
	body.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).Render(status))

	return components.ContentCard("Goal", body.String(), w)
}

func (a App) renderRaceCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	race := a.snap.Race

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rankStyle := lipgloss.NewStyle().Foreground(t.Yellow).Background(t.Surface).Bold(true)

	if len(race) == 0 {
		return components.ContentCard("Goal race", mutedStyle.Render("No active goals"), w)
	}

	labelW := 18
	barW := innerW - labelW - 4 - 20
	if barW < 8 {
		barW = 8
	}

	var body strings.Builder
	for i, r := range race {
		body.WriteString(rankStyle.Render(fmt.Sprintf("%2d. ", i+1)))
		body.WriteString(components.GoalBar(r.Title, r.Progress, r.OnTrack, labelW, barW))
		body.WriteString("\n")
	}

	return components.ContentCard("Goal race", strings.TrimRight(body.String(), "\n"), w)
}
