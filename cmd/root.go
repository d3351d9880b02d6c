package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/fintrack/internal/cli"
	"github.com/theirongolddev/fintrack/internal/config"
	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/store"
)

var (
	flagDB      string
	flagToday   string
	flagQuiet   bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:               "fintrack",
	Short:             "Personal finance tracker",
	Long:              "Record income and expenses, track goals, and project where your money is heading.",
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runSummary,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Ledger database path (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagToday, "today", "", "Evaluate as of this date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Only log warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

func setup(_ *cobra.Command, _ []string) error {
	level := zerolog.InfoLevel
	switch {
	case flagVerbose:
		level = zerolog.DebugLevel
	case flagQuiet:
		level = zerolog.WarnLevel
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().
		Logger()

	if err := config.LoadEnv(); err != nil {
		log.Warn().Err(err).Msg("ignoring .env")
	}
	return nil
}

// loadConfig returns the effective config, falling back to defaults on error.
func loadConfig() config.Config {
	cfg, err := config.Load()
	if err != nil {
		log.Warn().Err(err).Str("path", config.ConfigPath()).Msg("using default config")
	}
	return cfg
}

func dbPath(cfg config.Config) string {
	if flagDB != "" {
		return flagDB
	}
	return cfg.DBPath()
}

// openStore opens the ledger selected by --db or the config.
func openStore() (*store.Store, config.Config, error) {
	cfg := loadConfig()
	s, err := openStoreAt(cfg)
	return s, cfg, err
}

func openStoreAt(cfg config.Config) (*store.Store, error) {
	path := dbPath(cfg)
	log.Debug().Str("db", path).Msg("opening ledger")
	return store.Open(path)
}

// today returns the evaluation date: --today when set, else the local date.
func today() (time.Time, error) {
	if flagToday == "" {
		return model.DateOf(time.Now()), nil
	}
	d, err := model.ParseDate(flagToday)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --today: %w", err)
	}
	return d, nil
}

// ledger is one consistent read of everything the engine needs.
type ledger struct {
	Transactions []model.Transaction
	Goals        []model.Goal
	Settings     model.Settings
	Today        time.Time
	Config       config.Config
}

// loadLedger reads transactions, non-archived goals and settings.
func loadLedger() (*ledger, error) {
	s, cfg, err := openStore()
	if err != nil {
		return nil, err
	}
	defer s.Close()

	l, err := readLedger(s, false)
	if err != nil {
		return nil, err
	}
	l.Config = cfg
	return l, nil
}

func readLedger(s *store.Store, includeArchived bool) (*ledger, error) {
	now, err := today()
	if err != nil {
		return nil, err
	}
	txs, err := s.ListTransactions()
	if err != nil {
		return nil, err
	}
	goals, err := s.ListGoals(includeArchived)
	if err != nil {
		return nil, err
	}
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}
	log.Debug().Int("transactions", len(txs)).Int("goals", len(goals)).Msg("ledger loaded")

	return &ledger{Transactions: txs, Goals: goals, Settings: settings, Today: now}, nil
}

func (l *ledger) snapshot() dashboard.Snapshot {
	return dashboard.Build(l.Transactions, l.Goals, l.Settings, l.Today, dashboardOptions(l.Config))
}

func (l *ledger) money(d decimal.Decimal) string {
	return cli.FormatMoney(l.Settings.Currency, d)
}

func (l *ledger) signed(d decimal.Decimal) string {
	return cli.FormatSignedMoney(l.Settings.Currency, d)
}

func dashboardOptions(cfg config.Config) dashboard.Options {
	return dashboard.Options{
		IncomeWindowMonths: cfg.General.IncomeWindowMonths,
		ProjectionMonths:   cfg.General.ProjectionMonths,
	}
}

func formatNumber(n int64) string {
	return cli.FormatNumber(n)
}
