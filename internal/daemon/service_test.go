package daemon

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/fintrack/internal/model"
)

type fakeLedger struct {
	txs   []model.Transaction
	goals []model.Goal
	err   error
}

func (f *fakeLedger) ListTransactions() ([]model.Transaction, error) { return f.txs, f.err }
func (f *fakeLedger) ListGoals(bool) ([]model.Goal, error)          { return f.goals, nil }
func (f *fakeLedger) GetSettings() (model.Settings, error)          { return model.DefaultSettings(), nil }

func day(s string) time.Time {
	d, err := model.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func newTestService(l Ledger) *Service {
	return New(Config{
		DBPath:       "test.db",
		Interval:     10 * time.Second,
		EventsBuffer: 10,
		Today:        func() time.Time { return day("2025-06-15") },
	}, l)
}

func TestPollOnce_PublishesSnapshotThenDeltas(t *testing.T) {
	l := &fakeLedger{txs: []model.Transaction{
		{ID: 1, Type: model.Income, Amount: decimal.NewFromInt(5000), Category: "Salary", Date: day("2025-06-01"), IsRecurring: true},
	}}
	s := newTestService(l)

	s.pollOnce()
	s.pollOnce() // unchanged: no event

	l.txs = append(l.txs, model.Transaction{ID: 2, Type: model.Expense, Amount: decimal.NewFromInt(200), Category: "Food", Date: day("2025-06-10")})
	s.pollOnce()

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, EventSnapshot, s.events[0].Type)
	assert.Equal(t, EventDelta, s.events[1].Type)
	assert.Equal(t, int64(2), s.events[1].ID)
	assert.Equal(t, 1, s.events[1].Delta.Transactions)
	assert.True(t, decimal.NewFromInt(-200).Equal(s.events[1].Delta.Balance))
	assert.True(t, decimal.NewFromInt(4800).Equal(s.summary.Balance))
	assert.Equal(t, int64(3), s.pollCount)
}

func TestPollOnce_RecordsError(t *testing.T) {
	s := newTestService(&fakeLedger{err: errors.New("disk gone")})
	s.pollOnce()

	st := s.snapshotStatus()
	assert.Equal(t, "disk gone", st.LastError)
	assert.Equal(t, int64(1), st.PollCount)
	assert.Zero(t, st.EventCount)
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{Interval: 10 * time.Second, EventsBuffer: 2}, &fakeLedger{})

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	require.Len(t, s.events, 2)
	assert.Equal(t, int64(2), s.events[0].ID)
	assert.Equal(t, int64(3), s.events[1].ID)
}

func TestNew_Defaults(t *testing.T) {
	s := New(Config{}, &fakeLedger{})
	assert.Equal(t, 15*time.Second, s.cfg.Interval)
	assert.Equal(t, 200, s.cfg.EventsBuffer)
	assert.Equal(t, "127.0.0.1:8787", s.cfg.Addr)
	assert.NotNil(t, s.cfg.Today)
}

func TestHandlers(t *testing.T) {
	s := newTestService(&fakeLedger{txs: []model.Transaction{
		{ID: 1, Type: model.Income, Amount: decimal.NewFromInt(1000), Category: "Salary", Date: day("2025-06-01")},
	}})
	h := s.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	s.pollOnce()

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, "ok\n", rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/status", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var st Status
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&st))
	assert.Equal(t, "test.db", st.DBPath)
	assert.Equal(t, 1, st.Summary.Transactions)
	assert.True(t, decimal.NewFromInt(1000).Equal(st.Summary.Balance))
	assert.Equal(t, 1, st.EventCount)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/events", nil))
	var events []Event
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&events))
	require.Len(t, events, 1)
	assert.Equal(t, EventSnapshot, events[0].Type)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var snap map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&snap))
	assert.Contains(t, snap, "health")
	assert.Contains(t, snap, "cashflow")
}
