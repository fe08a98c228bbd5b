// Package session holds the mutable state bundle for the currently
// displayed ticker: which ticker is active, the per-timeframe chart cache,
// and the live-refresh timer bound to that ticker.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"stock-dashboard/models"
	"stock-dashboard/observability"
)

// Session is the single source of truth for "what ticker, what cached data,
// what timer". A cached series never belongs to a ticker other than the
// active one: Begin clears the cache, and SetSeries discards writes from
// superseded fetches.
type Session struct {
	mu     sync.Mutex
	id     uuid.UUID
	ticker string
	series map[models.Timeframe]models.Series

	cron  *cron.Cron
	entry cron.EntryID // zero when no timer is scheduled
}

// New creates an empty session. The scheduler starts immediately but has no
// entries until StartRefreshTimer is called.
func New() *Session {
	s := &Session{
		series: make(map[models.Timeframe]models.Series),
		cron:   cron.New(),
	}
	s.cron.Start()
	return s
}

// Begin switches the session to a new ticker: the refresh timer is
// cancelled, both timeframe caches are dropped, and a new correlation ID is
// issued. Must be called before any fetch for the new ticker so stale series
// from the previous ticker can never leak into the new one.
func (s *Session) Begin(ticker string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	s.series = make(map[models.Timeframe]models.Series)
	s.ticker = ticker
	s.id = uuid.New()
}

// ID returns the correlation ID of the current ticker session.
func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id.String()
}

// Ticker returns the currently active ticker, or "" before the first Begin.
func (s *Session) Ticker() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticker
}

// SetSeries caches a series for a timeframe. The write is scoped to the
// active ticker: results from a fetch issued for a ticker that is no longer
// active are discarded. Returns whether the series was stored.
func (s *Session) SetSeries(ticker string, tf models.Timeframe, series models.Series) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ticker != s.ticker {
		observability.WithTicker(ticker).Debug("discarding series for superseded ticker",
			"active", s.ticker, "timeframe", tf.String())
		return false
	}
	s.series[tf] = series
	return true
}

// Series returns the cached series for a timeframe, if any.
func (s *Session) Series(tf models.Timeframe) (models.Series, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	series, ok := s.series[tf]
	return series, ok
}

// StartRefreshTimer schedules callback(ticker) at the given interval, bound
// to the currently active ticker. Any previously scheduled timer is removed
// first, so at most one timer is ever active.
func (s *Session) StartRefreshTimer(interval time.Duration, callback func(ticker string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()

	ticker := s.ticker
	entry, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), func() {
		callback(ticker)
	})
	if err != nil {
		return fmt.Errorf("schedule refresh timer: %w", err)
	}
	s.entry = entry
	return nil
}

// StopRefreshTimer cancels the refresh timer. Safe to call when no timer is
// running.
func (s *Session) StopRefreshTimer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
}

// TimerRunning reports whether a refresh timer is currently scheduled.
func (s *Session) TimerRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry != 0
}

// Close tears the session down: the timer is cancelled and the scheduler
// stopped. The session must not be reused afterwards.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimerLocked()
	s.cron.Stop()
}

func (s *Session) stopTimerLocked() {
	if s.entry != 0 {
		s.cron.Remove(s.entry)
		s.entry = 0
	}
}

// activeEntries reports how many timer entries are scheduled (test hook).
func (s *Session) activeEntries() int {
	return len(s.cron.Entries())
}
