// Package tui provides the interactive Bubble Tea dashboard for fintrack.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
	"github.com/theirongolddev/fintrack/internal/tui/components"
	"github.com/theirongolddev/fintrack/internal/tui/theme"
)

// Options configures the dashboard.
type Options struct {
	DBPath string
	// Today pins the evaluation date. Zero means the local date at each load.
	Today     time.Time
	Dashboard dashboard.Options
}

// ledgerData is one consistent read of the store.
type ledgerData struct {
	Transactions []model.Transaction
	Goals        []model.Goal
	Settings     model.Settings
}

// DataLoadedMsg is sent when the first ledger read finishes.
type DataLoadedMsg struct {
	Data     ledgerData
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background reload completes.
type RefreshDataMsg struct {
	Data     ledgerData
	LoadTime time.Duration
	Err      error
}

// SavedMsg reports the outcome of a write to the store.
type SavedMsg struct {
	What string
	Err  error
}

type noticeExpiredMsg struct{ seq int }

type tickMsg struct{}

// Tab indexes, matching components.Tabs.
const (
	tabOverview = iota
	tabTransactions
	tabGoals
	tabAnalytics
	tabSettings
)

// App is the root Bubble Tea model.
type App struct {
	opts Options

	// Data
	ledger   ledgerData
	snap     dashboard.Snapshot
	loaded   bool
	loadTime time.Duration

	// Auto-refresh state
	autoRefresh     bool
	refreshInterval time.Duration
	lastRefresh     time.Time
	refreshing      bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	txState   transactionsState
	goalState goalsState
	settings  settingsState

	// Add-transaction / add-goal form
	form     *huh.Form
	formKind formKind
	txVals   *transactionValues
	goalVals *goalValues

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals *setupValues
	needSetup bool

	notice    components.Notice
	noticeSeq int

	spinner spinner.Model
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180

	minContentHeight = 5

	noticeTTL    = 4 * time.Second
	tickInterval = time.Second
)

// loadConfigOrDefault loads config, returning defaults on error so the
// dashboard can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Msg("using default config")
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model.
func NewApp(opts Options) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	cfg := loadConfigOrDefault()

	return App{
		opts:            opts,
		needSetup:       !config.Exists(),
		autoRefresh:     cfg.TUI.AutoRefresh,
		refreshInterval: time.Duration(cfg.TUI.RefreshIntervalSec) * time.Second,
		spinner:         sp,
		txState:         newTransactionsState(),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.opts.DBPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

func (a App) today() time.Time {
	if !a.opts.Today.IsZero() {
		return model.DateOf(a.opts.Today)
	}
	return model.DateOf(time.Now())
}

func (a *App) recompute() {
	a.snap = dashboard.Build(a.ledger.Transactions, a.ledger.Goals, a.ledger.Settings, a.today(), a.opts.Dashboard)

	a.txState.clamp(len(a.visibleTransactions()))
	a.goalState.clamp(len(a.snap.Goals))
}

func (a App) money(d decimal.Decimal) string {
	return cli.FormatMoney(a.ledger.Settings.Currency, d)
}

func (a App) signed(d decimal.Decimal) string {
	return cli.FormatSignedMoney(a.ledger.Settings.Currency, d)
}

// setNotice shows a transient status-bar message.
func (a *App) setNotice(text string, isErr bool) tea.Cmd {
	a.noticeSeq++
	a.notice = components.Notice{Text: text, Err: isErr}
	seq := a.noticeSeq
	return tea.Tick(noticeTTL, func(time.Time) tea.Msg {
		return noticeExpiredMsg{seq: seq}
	})
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		if a.form != nil {
			a.form = a.form.WithWidth(formWidth(msg.Width))
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil || a.form != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.LoadTime
		a.lastRefresh = time.Now()

		var cmds []tea.Cmd
		if msg.Err != nil {
			log.Error().Err(msg.Err).Str("db", a.opts.DBPath).Msg("loading ledger")
			cmds = append(cmds, a.setNotice("Could not load ledger: "+msg.Err.Error(), true))
		} else {
			a.ledger = msg.Data
		}
		a.recompute()

		if a.needSetup {
			a.setupVals = newSetupValues(a.ledger.Settings)
			a.setupForm = newSetupForm(a.opts.DBPath, a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			cmds = append(cmds, a.setupForm.Init())
		}
		return a, tea.Batch(cmds...)

	case RefreshDataMsg:
		a.refreshing = false
		a.lastRefresh = time.Now()
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Msg("refreshing ledger")
			cmd := a.setNotice("Refresh failed: "+msg.Err.Error(), true)
			return a, cmd
		}
		a.ledger = msg.Data
		a.loadTime = msg.LoadTime
		a.recompute()
		return a, nil

	case SavedMsg:
		if msg.Err != nil {
			log.Warn().Err(msg.Err).Str("action", msg.What).Msg("save failed")
			cmd := a.setNotice(fmt.Sprintf("Could not %s: %s", msg.What, msg.Err), true)
			return a, cmd
		}
		a.refreshing = true
		notice := a.setNotice(savedText(msg.What), false)
		return a, tea.Batch(notice, refreshDataCmd(a.opts.DBPath))

	case noticeExpiredMsg:
		if msg.seq == a.noticeSeq {
			a.notice = components.Notice{}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && a.autoRefresh && !a.refreshing && a.form == nil {
			if time.Since(a.lastRefresh) >= a.refreshInterval {
				a.refreshing = true
				cmds = append(cmds, refreshDataCmd(a.opts.DBPath))
			}
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to an open form (cursor blinks, etc.)
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		switch a.activeTab {
		case tabTransactions:
			a.txState.move(-1, len(a.visibleTransactions()))
		case tabGoals:
			a.goalState.move(-1, len(a.snap.Goals))
		}
	case tea.MouseButtonWheelDown:
		switch a.activeTab {
		case tabTransactions:
			a.txState.move(1, len(a.visibleTransactions()))
		case tabGoals:
			a.goalState.move(1, len(a.snap.Goals))
		}
	case tea.MouseButtonLeft:
		if msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}
	if !a.loaded {
		return a, nil
	}

	// Open forms intercept all keys
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.form != nil {
		return a.updateForm(msg)
	}
	if a.activeTab == tabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}
	if a.activeTab == tabTransactions && a.txState.searching {
		return a.updateTransactionsSearch(msg)
	}
	if a.txState.confirmDelete || a.goalState.confirmDelete {
		return a.updateConfirm(key)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	var (
		handled bool
		next    tea.Model
		cmd     tea.Cmd
	)
	switch a.activeTab {
	case tabTransactions:
		next, cmd, handled = a.updateTransactionsKey(key)
	case tabGoals:
		next, cmd, handled = a.updateGoalsKey(key)
	case tabSettings:
		next, cmd, handled = a.updateSettingsKey(key)
	}
	if handled {
		return next, cmd
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "n":
		return a.openTransactionForm()
	case "r":
		if !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.opts.DBPath)
		}
		return a, nil
	case "R":
		a.autoRefresh = !a.autoRefresh
		cfg := loadConfigOrDefault()
		cfg.TUI.AutoRefresh = a.autoRefresh
		if err := config.Save(cfg); err != nil {
			cmd := a.setNotice("Could not save config: "+err.Error(), true)
			return a, cmd
		}
		state := "off"
		if a.autoRefresh {
			state = "on"
		}
		cmd := a.setNotice("Auto-refresh "+state, false)
		return a, cmd
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateConfirm(key string) (tea.Model, tea.Cmd) {
	confirmed := key == "y" || key == "Y"

	if a.txState.confirmDelete {
		a.txState.confirmDelete = false
		if !confirmed {
			return a, nil
		}
		txs := a.visibleTransactions()
		if a.txState.cursor >= len(txs) {
			return a, nil
		}
		id := txs[a.txState.cursor].ID
		return a, saveCmd(a.opts.DBPath, "delete transaction", func(s *store.Store) error {
			return s.DeleteTransaction(id)
		})
	}

	a.goalState.confirmDelete = false
	if !confirmed {
		return a, nil
	}
	g, ok := a.selectedGoal()
	if !ok {
		return a, nil
	}
	id := g.Goal.ID
	return a, saveCmd(a.opts.DBPath, "delete goal", func(s *store.Store) error {
		return s.DeleteGoal(id)
	})
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		vals := a.setupVals
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = nil
		cmd := a.applySetup(vals)
		return a, cmd
	case huh.StateAborted:
		a.needSetup = false
		a.setupForm = nil
		a.setupVals = nil
		return a, nil
	}
	return a, cmd
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	if a.form != nil {
		return a.viewForm()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  fintrack needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	spinnerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ fintrack"))
	b.WriteString(subtitleStyle.Render(" · Personal Finance"))
	b.WriteString("\n\n")
	b.WriteString(spinnerStyle.Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Reading ledger..."))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Background(t.Surface).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	sections := []struct {
		title    string
		bindings []struct{ key, desc string }
	}{
		{"Navigation", []struct{ key, desc string }{
			{"o t g a x", "Jump to tab"},
			{"← → tab", "Previous / Next tab"},
			{"j k", "Move in lists"},
			{"/", "Search transactions"},
		}},
		{"Ledger", []struct{ key, desc string }{
			{"n", "New transaction (new goal on Goals)"},
			{"D", "Delete selected"},
			{"c", "Complete / reopen goal"},
			{"A", "Archive goal"},
			{"Enter", "Edit setting"},
		}},
		{"General", []struct{ key, desc string }{
			{"r", "Reload ledger"},
			{"R", "Toggle auto-refresh"},
			{"?", "Toggle help"},
			{"q", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n")
	for _, sec := range sections {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render(sec.title))
		b.WriteString("\n")
		for _, bind := range sec.bindings {
			fmt.Fprintf(&b, "  %s  %s\n",
				keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
				descStyle.Render(bind.desc))
		}
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	// 1. Header: tab bar + ledger pill
	pillStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)

	pill := pillStyle.Render(" ") +
		accentStyle.Render(a.snap.Today.Format("Mon 02 Jan 2006")) +
		pillStyle.Render(" │ ") + accentStyle.Render(a.ledger.Settings.Currency) +
		pillStyle.Render(" │ ") + pillStyle.Render(fmt.Sprintf("%s transactions", cli.FormatNumber(int64(a.snap.TransactionCount))))
	if q := a.txState.query; q != "" {
		pill += pillStyle.Render(" │ ") + accentStyle.Render("/"+q)
	}

	header := components.RenderTabBar(a.activeTab, w) + "\n" +
		lipgloss.NewStyle().Background(t.Surface).Width(w).Render(pill)

	// 2. Status bar
	statusBar := components.RenderStatusBar(w, components.Status{
		DataAge:     fmt.Sprintf("%dms", a.loadTime.Milliseconds()),
		Refreshing:  a.refreshing,
		AutoRefresh: a.autoRefresh,
		Notice:      a.notice,
	})

	// 3. Content zone height
	contentH := h - lipgloss.Height(header) - lipgloss.Height(statusBar)
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	// 4. Tab content
	var content string
	switch a.activeTab {
	case tabOverview:
		content = a.renderOverviewTab(cw)
	case tabTransactions:
		content = a.renderTransactionsTab(cw, contentH)
	case tabGoals:
		content = a.renderGoalsTab(cw, contentH)
	case tabAnalytics:
		content = a.renderAnalyticsTab(cw)
	case tabSettings:
		content = a.renderSettingsTab(cw)
	}

	// 5. Exact height, full-width background
	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// ─── Commands ───────────────────────────────────────────────────

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// readLedger opens the store, reads everything the dashboard needs and
// closes it again so other processes can write between refreshes.
func readLedger(dbPath string) (ledgerData, error) {
	s, err := store.Open(dbPath)
	if err != nil {
		return ledgerData{}, err
	}
	defer s.Close()

	txs, err := s.ListTransactions()
	if err != nil {
		return ledgerData{}, err
	}
	goals, err := s.ListGoals(false)
	if err != nil {
		return ledgerData{}, err
	}
	settings, err := s.GetSettings()
	if err != nil {
		return ledgerData{}, err
	}
	return ledgerData{Transactions: txs, Goals: goals, Settings: settings}, nil
}

func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		data, err := readLedger(dbPath)
		return DataLoadedMsg{Data: data, LoadTime: time.Since(start), Err: err}
	}
}

func refreshDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		data, err := readLedger(dbPath)
		return RefreshDataMsg{Data: data, LoadTime: time.Since(start), Err: err}
	}
}

// saveCmd runs one write against the store. The in-memory ledger is only
// replaced by the reload that follows a successful save.
func saveCmd(dbPath, what string, fn func(*store.Store) error) tea.Cmd {
	return func() tea.Msg {
		s, err := store.Open(dbPath)
		if err != nil {
			return SavedMsg{What: what, Err: err}
		}
		defer s.Close()
		return SavedMsg{What: what, Err: fn(s)}
	}
}

func savedText(what string) string {
	if what == "" {
		return "Saved"
	}
	return "Done: " + what
}

// ─── Helpers ────────────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		result.WriteString(lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg)))
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// ─── Mouse Support ──────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes are derived from the same width rules used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW

		// one-column separator
		if i < len(components.Tabs)-1 {
			pos++
		}
	}
	return -1
}
