// Package daemon provides the long-running ledger monitor service.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/fintrack/internal/dashboard"
	"github.com/theirongolddev/fintrack/internal/model"
	"github.com/theirongolddev/fintrack/internal/pipeline"
)

// Ledger is the read side of the store the daemon polls.
type Ledger interface {
	ListTransactions() ([]model.Transaction, error)
	ListGoals(includeArchived bool) ([]model.Goal, error)
	GetSettings() (model.Settings, error)
}

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath       string
	Interval     time.Duration
	Addr         string
	EventsBuffer int
	Options      dashboard.Options

	// Today returns the evaluation date. Defaults to the local date.
	Today func() time.Time
}

// Summary is a compact ledger state for status and event payloads.
type Summary struct {
	At           time.Time       `json:"at"`
	Transactions int             `json:"transactions"`
	Income       decimal.Decimal `json:"income"`
	Expenses     decimal.Decimal `json:"expenses"`
	Balance      decimal.Decimal `json:"balance"`
	MonthNet     decimal.Decimal `json:"month_net"`
	BurnRate     decimal.Decimal `json:"burn_rate"`
	HealthScore  int             `json:"health_score"`
	Grade        string          `json:"grade"`
	ActiveGoals  int             `json:"active_goals"`
	OnTrackGoals int             `json:"on_track_goals"`
	WarningDays  int             `json:"warning_days"`
	Currency     string          `json:"currency"`
}

// Event is emitted whenever the ledger state changes.
type Event struct {
	ID        int64           `json:"id"`
	Type      string          `json:"type"`
	Timestamp time.Time       `json:"timestamp"`
	Summary   Summary         `json:"summary"`
	Delta     dashboard.Delta `json:"delta"`
}

// Event types.
const (
	EventSnapshot = "snapshot"
	EventDelta    = "ledger_delta"
)

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Summary   `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg    Config
	ledger Ledger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    dashboard.Snapshot
	summary     Summary
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a daemon service polling ledger.
func New(cfg Config, ledger Ledger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 15 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.Today == nil {
		cfg.Today = func() time.Time { return model.DateOf(time.Now()) }
	}

	return &Service{
		cfg:       cfg,
		ledger:    ledger,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Handler returns the HTTP API.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/dashboard", s.handleDashboard)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)
	return mux
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	log.Info().Str("addr", s.cfg.Addr).Dur("interval", s.cfg.Interval).Msg("daemon started")

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("daemon shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	snap, err := s.build()
	now := time.Now()
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		log.Error().Err(err).Msg("daemon poll failed")
		return
	}

	sum := summarize(snap, now)

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.summary = sum
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventSnapshot, Timestamp: now, Summary: sum}
		publish = true
	} else if delta := dashboard.Diff(prev, snap); !delta.IsZero() {
		s.nextEventID++
		ev = Event{ID: s.nextEventID, Type: EventDelta, Timestamp: now, Summary: sum, Delta: delta}
		publish = true
	}
	s.mu.Unlock()

	if publish {
		log.Debug().Int64("id", ev.ID).Str("type", ev.Type).Int("transactions", sum.Transactions).Msg("ledger changed")
		s.publishEvent(ev)
	}
}

func (s *Service) build() (dashboard.Snapshot, error) {
	txs, err := s.ledger.ListTransactions()
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	gs, err := s.ledger.ListGoals(false)
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	st, err := s.ledger.GetSettings()
	if err != nil {
		return dashboard.Snapshot{}, err
	}
	return dashboard.Build(txs, gs, st, s.cfg.Today(), s.cfg.Options), nil
}

func summarize(snap dashboard.Snapshot, at time.Time) Summary {
	onTrack := 0
	for _, r := range snap.Race {
		if r.OnTrack {
			onTrack++
		}
	}
	return Summary{
		At:           at,
		Transactions: snap.TransactionCount,
		Income:       snap.Totals.Income,
		Expenses:     snap.Totals.Expenses,
		Balance:      snap.Totals.Balance,
		MonthNet:     snap.ThisMonthNet,
		BurnRate:     snap.BurnRate,
		HealthScore:  snap.Health.Score,
		Grade:        snap.Health.Grade,
		ActiveGoals:  len(snap.Race),
		OnTrackGoals: onTrack,
		WarningDays:  pipeline.WarningDays(snap.Cashflow),
		Currency:     snap.Settings.Currency,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.summary,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	snap, ok := s.snapshot, s.hasSnapshot
	s.mu.RUnlock()

	if !ok {
		http.Error(w, "no snapshot yet", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(snap)
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current summary immediately.
	writeSSE(w, Event{
		Type:      EventSnapshot,
		Timestamp: time.Now(),
		Summary:   s.snapshotStatus().Summary,
	})
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
