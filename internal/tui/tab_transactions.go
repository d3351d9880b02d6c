package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// transactionsState holds the transactions tab state.
type transactionsState struct {
	cursor int
	offset int // scroll offset for the list

	searching   bool
	searchInput textinput.Model
	query       string

	confirmDelete bool
}

func newTransactionsState() transactionsState {
	return transactionsState{searchInput: newSearchInput()}
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "category or description"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (s *transactionsState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *transactionsState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// filterTransactions keeps transactions whose category or description
// contains query, case-insensitively.
func filterTransactions(txs []model.Transaction, query string) []model.Transaction {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return txs
	}
	var out []model.Transaction
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Category), q) ||
			strings.Contains(strings.ToLower(tx.Description), q) {
			out = append(out, tx)
		}
	}
	return out
}

// visibleTransactions returns the ledger filtered by the current search.
func (a App) visibleTransactions() []model.Transaction {
	return filterTransactions(a.ledger.Transactions, a.txState.query)
}

func (a App) updateTransactionsKey(key string) (tea.Model, tea.Cmd, bool) {
	n := len(a.visibleTransactions())

	switch key {
	case "/":
		a.txState.searching = true
		a.txState.searchInput = newSearchInput()
		a.txState.searchInput.SetValue(a.txState.query)
		a.txState.searchInput.Focus()
		return a, textinput.Blink, true
	case "esc":
		if a.txState.query != "" {
			a.txState.query = ""
			a.txState.cursor = 0
			a.txState.offset = 0
		}
		return a, nil, true
	case "j", "down":
		a.txState.move(1, n)
		return a, nil, true
	case "k", "up":
		a.txState.move(-1, n)
		return a, nil, true
	case "home":
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil, true
	case "end":
		a.txState.cursor = n - 1
		a.txState.clamp(n)
		return a, nil, true
	case "D", "delete":
		if n > 0 {
			a.txState.confirmDelete = true
		}
		return a, nil, true
	}
	return a, nil, false
}

// updateTransactionsSearch handles key events while in search mode.
func (a App) updateTransactionsSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.txState.query = strings.TrimSpace(a.txState.searchInput.Value())
		a.txState.searching = false
		a.txState.cursor = 0
		a.txState.offset = 0
		return a, nil
	case "esc":
		a.txState.searching = false
		return a, nil
	}

	var cmd tea.Cmd
	a.txState.searchInput, cmd = a.txState.searchInput.Update(msg)
	return a, cmd
}

func (a App) renderTransactionsTab(cw, h int) string {
	t := theme.Active
	txs := a.visibleTransactions()

	var top string
	if a.txState.searching {
		top = lipgloss.NewStyle().Background(t.Surface).Render(a.txState.searchInput.View()) + "\n"
		h--
	}

	if len(txs) == 0 {
		msg := "No transactions yet. Press n to add one."
		if a.txState.query != "" {
			msg = fmt.Sprintf("Nothing matches %q. Press Esc to clear the search.", a.txState.query)
		}
		return top + components.ContentCard("Transactions",
			lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Render(msg), cw)
	}

	if a.isCompactLayout() {
		return top + a.renderTransactionList(txs, cw, h)
	}

	leftW := cw * 3 / 5
	rightW := cw - leftW
	return top + components.CardRow([]string{
		a.renderTransactionList(txs, leftW, h),
		a.renderTransactionDetail(txs[a.txState.cursor], rightW),
	})
}

func (a App) renderTransactionList(txs []model.Transaction, w, h int) string {
	t := theme.Active
	ts := a.txState
	innerW := components.CardInnerWidth(w)

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	visible := h - 6 // card border (2) + title + header + footer hint (2)
	if visible < 3 {
		visible = 3
	}

	offset := ts.offset
	if ts.cursor < offset {
		offset = ts.cursor
	}
	if ts.cursor >= offset+visible {
		offset = ts.cursor - visible + 1
	}
	end := offset + visible
	if end > len(txs) {
		end = len(txs)
	}

	const dateW, amountW, flagW = 10, 16, 2
	catW := innerW - dateW - amountW - flagW - 3
	if catW < 8 {
		catW = 8
	}

	var body strings.Builder
	body.WriteString(headerStyle.Render(fmt.Sprintf("%-*s %-*s %*s %s", dateW, "Date", catW, "Category", amountW, "Amount", "↻")))
	body.WriteString("\n")

	for i := offset; i < end; i++ {
		tx := txs[i]
		label := tx.Category
		if tx.Description != "" {
			label += " · " + tx.Description
		}
		flag := " "
		if tx.IsRecurring {
			flag = "↻"
		}
		amount := a.signed(tx.Signed())

		line := fmt.Sprintf("%-*s %-*s ", dateW, tx.Date.Format(model.DateLayout), catW, truncStr(label, catW))
		amtStyle := lipgloss.NewStyle().Foreground(t.Amount(tx.Signed().Sign()))

		if i == ts.cursor {
			amtStyle = amtStyle.Background(t.SurfaceBright).Bold(true)
			body.WriteString(selectedStyle.Render(line))
			body.WriteString(amtStyle.Render(fmt.Sprintf("%*s", amountW, amount)))
			body.WriteString(selectedStyle.Render(" " + flag))
		} else {
			amtStyle = amtStyle.Background(t.Surface)
			body.WriteString(rowStyle.Render(line))
			body.WriteString(amtStyle.Render(fmt.Sprintf("%*s", amountW, amount)))
			body.WriteString(mutedStyle.Render(" " + flag))
		}
		body.WriteString("\n")
	}

	body.WriteString("\n")
	if ts.confirmDelete && a.isCompactLayout() {
		body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
			Render("Delete the selected transaction? [y/N]"))
	} else {
		body.WriteString(mutedStyle.Render(fmt.Sprintf("%d of %d  [j/k] move  [/] search  [n]ew  [D]elete",
			ts.cursor+1, len(txs))))
	}

	title := "Transactions"
	if ts.query != "" {
		title = fmt.Sprintf("Transactions matching %q", ts.query)
	}
	return components.ContentCard(title, body.String(), w)
}

func (a App) renderTransactionDetail(tx model.Transaction, w int) string {
	t := theme.Active
	innerW := components.CardInnerWidth(w)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Amount(tx.Signed().Sign())).Background(t.Surface).Bold(true)

	var body strings.Builder
	body.WriteString(amountStyle.Render(a.signed(tx.Signed())))
	body.WriteString("\n")
	body.WriteString(labelStyle.Render(strings.Repeat("─", innerW)))
	body.WriteString("\n")

	recurring := "no"
	if tx.IsRecurring {
		recurring = fmt.Sprintf("yes, day %d of every month", tx.Date.Day())
	}
	rows := [][2]string{
		{"Type", string(tx.Type)},
		{"Category", tx.Category},
		{"Description", tx.Description},
		{"Date", tx.Date.Format("Mon 02 Jan 2006")},
		{"Recurring", recurring},
		{"ID", fmt.Sprintf("%d", tx.ID)},
	}
	if !tx.CreatedAt.IsZero() {
		rows = append(rows, [2]string{"Recorded", tx.CreatedAt.Local().Format("2006-01-02 15:04")})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		body.WriteString(labelStyle.Render(fmt.Sprintf("%-12s ", r[0])))
		body.WriteString(valueStyle.Render(truncStr(r[1], innerW-13)))
		body.WriteString("\n")
	}

	if a.txState.confirmDelete {
		body.WriteString("\n")
		body.WriteString(lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface).Bold(true).
			Render("Delete this transaction? [y/N]"))
	}

	return components.ContentCard("Details", strings.TrimRight(body.String(), "\n"), w)
}
