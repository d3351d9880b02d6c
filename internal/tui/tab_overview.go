package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.snap
	var b strings.Builder

	// Row 1: headline figures
	metrics := []components.Metric{
		{Label: "Balance", Value: a.signed(s.Totals.Balance), Sign: s.Totals.Balance.Sign(),
			Delta: "end of month " + a.signed(s.NetBalance)},
		{Label: "This month", Value: a.signed(s.ThisMonthNet), Sign: s.ThisMonthNet.Sign(),
			Delta: "recurring " + a.signed(s.MonthlyRecurring) + "/mo"},
		{Label: "Burn rate", Value: a.money(s.BurnRate) + "/mo",
			Delta: a.money(s.SpendingVelocity) + "/day"},
		{Label: "Health", Value: fmt.Sprintf("%d/%d", s.Health.Score, s.Health.MaxScore),
			Delta: "grade " + s.Health.Grade},
	}
	b.WriteString(components.MetricCardRow(metrics, cw))
	b.WriteString("\n")

	if s.TransactionCount == 0 {
		muted := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
		b.WriteString(components.ContentCard("Getting started",
			muted.Render("No transactions yet. Press n to add your first one."), cw))
		return b.String()
	}

	// Row 2: monthly expenses chart + savings progress
	if a.isCompactLayout() {
		b.WriteString(a.renderTrendCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderSavingsCard(cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderTrendCard(halves[0]),
			a.renderSavingsCard(halves[1]),
		}))
	}
	b.WriteString("\n")

	// Row 3: still due this month + insights
	if a.isCompactLayout() {
		b.WriteString(a.renderUpcomingCard(cw))
		b.WriteString("\n")
		b.WriteString(a.renderInsightsCard(cw))
	} else {
		halves := components.LayoutRow(cw, 2)
		b.WriteString(components.CardRow([]string{
			a.renderUpcomingCard(halves[0]),
			a.renderInsightsCard(halves[1]),
		}))
	}

	return b.String()
}

func (a App) renderTrendCard(w int) string {
	t := theme.Active
	trends := a.snap.Trends

	values := make([]float64, len(trends))
	labels := make([]string, len(trends))
	for i, m := range trends {
		values[i] = m.Expenses.InexactFloat64()
		labels[i] = m.Label
	}

	return components.ContentCard("Monthly expenses (12 months)",
		components.BarChart(values, labels, t.Orange, components.CardInnerWidth(w), 8), w)
}

func (a App) renderSavingsCard(w int) string {
	t := theme.Active
	s := a.snap
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	barW := innerW - 6
	if barW < 10 {
		barW = 10
	}

	var body strings.Builder
	body.WriteString(components.ProgressBar(s.SavingsProgress/100, barW))
	body.WriteString("\n\n")

	rows := [][2]string{
		{"Saved", a.signed(s.Totals.Balance)},
		{"Target", a.money(s.Settings.SavingsGoal)},
	}
	if s.Settings.GoalDate != nil {
		rows = append(rows, [2]string{"Target date", cli.FormatDate(s.Settings.GoalDate)})
	}
	if s.SavingsPrediction != nil {
		rows = append(rows, [2]string{"Reached (est)",
			fmt.Sprintf("%s · %d months", s.SavingsPrediction.Date.Format(model.DateLayout), s.SavingsPrediction.Months)})
	} else {
		rows = append(rows, [2]string{"Reached (est)", "not at current pace"})
	}
	rows = append(rows, [2]string{"Avg income", a.signed(s.AverageMonthlyIncome) + "/mo"})

	for _, r := range rows {
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-14s", r[0])))
		body.WriteString(valueStyle.Render(r[1]))
		body.WriteString("\n")
	}

	return components.ContentCard("Savings goal", strings.TrimRight(body.String(), "\n"), w)
}

func (a App) renderUpcomingCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	var body strings.Builder
	if len(a.snap.Upcoming) == 0 {
		body.WriteString(mutedStyle.Render("Nothing recurring left this month"))
	}
	for i, tx := range a.snap.Upcoming {
		if i == 6 {
			body.WriteString(mutedStyle.Render(fmt.Sprintf("… and %d more", len(a.snap.Upcoming)-i)))
			break
		}
		amount := a.signed(tx.Signed())
		amountStyle := lipgloss.NewStyle().Foreground(t.Amount(tx.Signed().Sign())).Background(t.Surface)
		labelW := innerW - 8 - lipgloss.Width(amount) - 2
		body.WriteString(mutedStyle.Render(fmt.Sprintf("day %-3d ", tx.Date.Day())))
		body.WriteString(rowStyle.Render(fmt.Sprintf("%-*s  ", labelW, truncStr(tx.Category, labelW))))
		body.WriteString(amountStyle.Render(amount))
		body.WriteString("\n")
	}

	if warn := pipeline.WarningDays(a.snap.Cashflow); warn > 0 {
		warnStyle := lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface)
		body.WriteString("\n")
		body.WriteString(warnStyle.Render(fmt.Sprintf("⚠ Below %s on %d of the next 30 days",
			a.money(pipeline.LowBalanceThreshold), warn)))
	}

	return components.ContentCard("Still due this month", strings.TrimRight(body.String(), "\n"), w)
}

func (a App) renderInsightsCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	var body strings.Builder
	if len(a.snap.Insights) == 0 {
		body.WriteString(mutedStyle.Render("No insights yet"))
	}
	for i, in := range a.snap.Insights {
		if i == 5 {
			break
		}
		icon, color := severityStyle(in.Severity)
		body.WriteString(lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true).
			Render(icon + " " + truncStr(in.Message, innerW-2)))
		body.WriteString("\n")
		if in.Detail != "" {
			body.WriteString(mutedStyle.Render("  " + truncStr(in.Detail, innerW-2)))
			body.WriteString("\n")
		}
	}

	return components.ContentCard("Insights", strings.TrimRight(body.String(), "\n"), w)
}

func severityStyle(sev model.Severity) (string, lipgloss.Color) {
	t := theme.Active
	switch sev {
	case model.SeveritySuccess:
		return "✓", t.GreenBright
	case model.SeverityWarning:
		return "!", t.Orange
	default:
		return "•", t.Blue
	}
}
