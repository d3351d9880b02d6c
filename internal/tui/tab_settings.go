package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Ledger settings live in the store, display settings in the config file.
const (
	settingsFieldSavingsGoal = iota
	settingsFieldGoalDate
	settingsFieldCurrency
	settingsFieldTheme
	settingsFieldAutoRefresh
	settingsFieldRefreshInterval
	settingsFieldCount // sentinel
)

const minRefreshSec = 10

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 40
	return ti
}

func (a App) updateSettingsKey(key string) (tea.Model, tea.Cmd, bool) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		return a, nil, true
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		return a, nil, true
	case "enter":
		m, cmd := a.settingsStartEdit()
		return m, cmd, true
	}
	return a, nil, false
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	st := a.ledger.Settings
	ti := newSettingsInput()

	switch a.settings.cursor {
	case settingsFieldSavingsGoal:
		ti.Placeholder = "1000000"
		ti.SetValue(st.SavingsGoal.String())
	case settingsFieldGoalDate:
		ti.Placeholder = model.DateLayout + " (empty to clear)"
		if st.GoalDate != nil {
			ti.SetValue(st.GoalDate.Format(model.DateLayout))
		}
	case settingsFieldCurrency:
		ti.Placeholder = model.DefaultCurrency
		ti.SetValue(st.Currency)
	case settingsFieldTheme:
		ti.Placeholder = strings.Join(theme.Names(), ", ")
		ti.SetValue(theme.Active.Name)
	case settingsFieldAutoRefresh:
		ti.Placeholder = "true or false"
		ti.SetValue(strconv.FormatBool(a.autoRefresh))
	case settingsFieldRefreshInterval:
		ti.Placeholder = fmt.Sprintf("seconds, minimum %d", minRefreshSec)
		ti.SetValue(strconv.Itoa(int(a.refreshInterval.Seconds())))
	}

	ti.Focus()
	a.settings.input = ti
	a.settings.editing = true
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		cmd := a.settingsSave(strings.TrimSpace(a.settings.input.Value()))
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave validates val for the selected field and persists it.
// Store fields go through saveCmd; config fields are written directly.
func (a *App) settingsSave(val string) tea.Cmd {
	st := a.ledger.Settings

	switch a.settings.cursor {
	case settingsFieldSavingsGoal:
		goal, err := parseAmount(val)
		if err != nil {
			return a.setNotice("Savings goal: "+err.Error(), true)
		}
		return saveCmd(a.opts.DBPath, "update savings goal", func(s *store.Store) error {
			return s.UpdateSettings(goal, st.GoalDate)
		})

	case settingsFieldGoalDate:
		date, err := parseOptionalDate(val)
		if err != nil {
			return a.setNotice("Goal date: "+err.Error(), true)
		}
		return saveCmd(a.opts.DBPath, "update goal date", func(s *store.Store) error {
			return s.UpdateSettings(st.SavingsGoal, date)
		})

	case settingsFieldCurrency:
		if val == "" {
			return a.setNotice("Currency is required", true)
		}
		return saveCmd(a.opts.DBPath, "update currency", func(s *store.Store) error {
			return s.UpdateCurrency(val)
		})
	}

	cfg := loadConfigOrDefault()
	switch a.settings.cursor {
	case settingsFieldTheme:
		if !theme.Known(val) {
			return a.setNotice(fmt.Sprintf("Unknown theme %q", val), true)
		}
		cfg.Appearance.Theme = val
	case settingsFieldAutoRefresh:
		on, err := strconv.ParseBool(val)
		if err != nil {
			return a.setNotice("Auto refresh must be true or false", true)
		}
		cfg.TUI.AutoRefresh = on
	case settingsFieldRefreshInterval:
		sec, err := parseRefreshInterval(val)
		if err != nil {
			return a.setNotice("Refresh interval: "+err.Error(), true)
		}
		cfg.TUI.RefreshIntervalSec = sec
	}

	if err := config.Save(cfg); err != nil {
		return a.setNotice("Could not save config: "+err.Error(), true)
	}

	// Apply only after the config write succeeded.
	theme.SetActive(cfg.Appearance.Theme)
	a.autoRefresh = cfg.TUI.AutoRefresh
	a.refreshInterval = time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second
	return a.setNotice("Settings saved", false)
}

func parseRefreshInterval(val string) (int, error) {
	sec, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.New("not a whole number")
	}
	if sec < minRefreshSec {
		return 0, fmt.Errorf("must be at least %d", minRefreshSec)
	}
	return sec, nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	st := a.ledger.Settings

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceBright).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceBright).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceBright)

	type field struct {
		label string
		value string
	}

	goalDate := "(not set)"
	if st.GoalDate != nil {
		goalDate = st.GoalDate.Format(model.DateLayout)
	}

	fields := []field{
		{"Savings Goal", a.money(st.SavingsGoal)},
		{"Goal Date", goalDate},
		{"Currency", st.Currency},
		{"Theme", theme.Active.Name},
		{"Auto Refresh", strconv.FormatBool(a.autoRefresh)},
		{"Refresh Interval", fmt.Sprintf("%ds", int(a.refreshInterval.Seconds()))},
	}

	innerW := components.CardInnerWidth(cw)

	var formBody strings.Builder
	for i, f := range fields {
		if i == settingsFieldTheme {
			formBody.WriteString("\n")
		}

		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			if padLen := innerW - lipgloss.Width(marker+label+value); padLen > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceBright).Render(strings.Repeat(" ", padLen)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit/save  [Esc] cancel"))

	var infoBody strings.Builder
	info := [][2]string{
		{"Ledger:", a.opts.DBPath},
		{"Transactions:", cli.FormatNumber(int64(len(a.ledger.Transactions)))},
		{"Active goals:", cli.FormatNumber(int64(len(a.snap.ActiveGoals())))},
		{"Load time:", fmt.Sprintf("%dms", a.loadTime.Milliseconds())},
		{"Config file:", config.ConfigPath()},
	}
	for i, row := range info {
		infoBody.WriteString(labelStyle.Render(fmt.Sprintf("%-15s", row[0])))
		infoBody.WriteString(valueStyle.Render(truncStr(row[1], innerW-15)))
		if i < len(info)-1 {
			infoBody.WriteString("\n")
		}
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("General", infoBody.String(), cw))
	return b.String()
}
