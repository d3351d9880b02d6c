package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/pipeline"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

const maxCategoryRows = 8

func (a App) renderAnalyticsTab(cw int) string {
	var b strings.Builder

	rows := [][2]func(int) string{
		{a.renderCategoriesCard, a.renderWeekdaysCard},
		{a.renderCashflowCard, a.renderProjectionCard},
	}
	for _, row := range rows {
		if a.isCompactLayout() {
			b.WriteString(row[0](cw))
			b.WriteString("\n")
			b.WriteString(row[1](cw))
		} else {
			halves := components.LayoutRow(cw, 2)
			b.WriteString(components.CardRow([]string{row[0](halves[0]), row[1](halves[1])}))
		}
		b.WriteString("\n")
	}
	b.WriteString(a.renderHealthCard(cw))

	return b.String()
}

func (a App) renderCategoriesCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	cats := a.snap.Categories

	if len(cats) == 0 {
		return components.ContentCard("Spending by category",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render("No expenses yet"), w)
	}

	total := decimal.Zero
	for _, c := range cats {
		total = total.Add(c.Amount)
	}
	peak := cats[0].Amount.InexactFloat64()

	const labelW, valueW = 14, 22
	barW := innerW - labelW - valueW - 2
	if barW < 6 {
		barW = 6
	}

	var body strings.Builder
	for i, c := range cats {
		if i == maxCategoryRows {
			rest := decimal.Zero
			for _, r := range cats[i:] {
				rest = rest.Add(r.Amount)
			}
			body.WriteString(components.HBar(fmt.Sprintf("+%d more", len(cats)-i), labelW,
				0, peak, barW, a.money(rest), t.TextDim))
			break
		}
		share := 0.0
		if total.IsPositive() {
			share = c.Amount.Div(total).InexactFloat64() * 100
		}
		body.WriteString(components.HBar(c.Category, labelW, c.Amount.InexactFloat64(), peak, barW,
			fmt.Sprintf("%s %5.1f%%", a.money(c.Amount), share), t.Orange))
		body.WriteString("\n")
	}

	return components.ContentCard("Spending by category", strings.TrimRight(body.String(), "\n"), w)
}

func (a App) renderWeekdaysCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	days := a.snap.Weekdays

	peak := 0.0
	for _, d := range days {
		if v := d.Amount.InexactFloat64(); v > peak {
			peak = v
		}
	}

	const labelW, valueW = 10, 16
	barW := innerW - labelW - valueW - 2
	if barW < 6 {
		barW = 6
	}

	var body strings.Builder
	for _, d := range days {
		color := t.Blue
		if v := d.Amount.InexactFloat64(); v > 0 && v == peak {
			color = t.Magenta
		}
		body.WriteString(components.HBar(d.Name, labelW, d.Amount.InexactFloat64(), peak, barW, a.money(d.Amount), color))
		body.WriteString("\n")
	}

	return components.ContentCard("Spending by weekday", strings.TrimRight(body.String(), "\n"), w)
}

func (a App) renderCashflowCard(w int) string {
	t := theme.Active
	flow := a.snap.Cashflow

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	if len(flow) == 0 {
		return components.ContentCard("Next 30 days", labelStyle.Render("No data"), w)
	}

	values := make([]float64, len(flow))
	low := flow[0]
	for i, d := range flow {
		values[i] = d.Balance.InexactFloat64()
		if d.Balance.LessThan(low.Balance) {
			low = d
		}
	}
	last := flow[len(flow)-1]

	var body strings.Builder
	body.WriteString(components.Sparkline(values, t.Cyan))
	body.WriteString("\n\n")
	body.WriteString(labelStyle.Render("In 30 days    "))
	body.WriteString(valueStyle.Render(a.signed(last.Balance)))
	body.WriteString("\n")
	body.WriteString(labelStyle.Render("Lowest        "))
	body.WriteString(valueStyle.Render(fmt.Sprintf("%s on %s", a.signed(low.Balance), low.Date.Format("Jan 02"))))
	body.WriteString("\n")

	if warn := pipeline.WarningDays(flow); warn > 0 {
		body.WriteString(lipgloss.NewStyle().Foreground(t.Orange).Background(t.Surface).
			Render(fmt.Sprintf("⚠ %d days below %s", warn, a.money(pipeline.LowBalanceThreshold))))
	} else {
		body.WriteString(lipgloss.NewStyle().Foreground(t.GreenBright).Background(t.Surface).
			Render("✓ Balance stays healthy"))
	}

	return components.ContentCard("Next 30 days", body.String(), w)
}

func (a App) renderProjectionCard(w int) string {
	t := theme.Active
	proj := a.snap.Projection

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(proj) == 0 {
		return components.ContentCard("Projected balance", labelStyle.Render("No data"), w)
	}

	values := make([]float64, len(proj))
	for i, p := range proj {
		values[i] = p.Balance.InexactFloat64()
	}

	var body strings.Builder
	body.WriteString(components.Sparkline(values, t.Accent))
	body.WriteString("\n\n")
	for _, p := range proj {
		if p.Month != 1 && p.Month%3 != 0 {
			continue
		}
		style := lipgloss.NewStyle().Foreground(t.Amount(p.Balance.Sign())).Background(t.Surface)
		body.WriteString(labelStyle.Render(fmt.Sprintf("%2d months     ", p.Month)))
		body.WriteString(style.Render(a.signed(p.Balance)))
		body.WriteString("\n")
	}

	return components.ContentCard(fmt.Sprintf("Projected balance (%d months)", len(proj)),
		strings.TrimRight(body.String(), "\n"), w)
}

func (a App) renderHealthCard(w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)
	h := a.snap.Health

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	const labelW = 18
	barW := innerW / 4
	if barW < 8 {
		barW = 8
	}

	var body strings.Builder
	for _, f := range h.Factors {
		pct := 0.0
		if f.Max > 0 {
			pct = f.Score / f.Max
		}
		body.WriteString(components.HBar(f.Name, labelW, f.Score, f.Max, barW,
			fmt.Sprintf("%4.1f/%-4.0f", f.Score, f.Max), lipgloss.Color(components.ColorForPct(pct))))
		body.WriteString(mutedStyle.Render("  " + truncStr(f.Message, innerW-labelW-barW-14)))
		body.WriteString("\n")
	}

	title := fmt.Sprintf("Financial health  %d/%d  %s", h.Score, h.MaxScore, h.Grade)
	return components.ContentCard(title, strings.TrimRight(body.String(), "\n"), w)
}
