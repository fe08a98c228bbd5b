// Package dashboard implements the view synchronizer: the component that
// decides what data is displayed, when it is fetched, how results are
// cached per timeframe, and how the refresh timer follows ticker switches.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"stock-dashboard/internal/session"
	"stock-dashboard/models"
	"stock-dashboard/observability"
	"stock-dashboard/services"
)

// DefaultRefreshInterval is the live-quote polling cadence.
const DefaultRefreshInterval = 30 * time.Second

// Controller orchestrates loads and timeframe switches against the session
// state and the fetch client.
//
// A single mutex serializes all view and session mutation, but correctness
// of overlapping loads does not rest on it: a completed fetch checks that
// the session's active ticker is still the ticker it was issued for, and a
// superseded result is silently dropped. Switching ticker cancels interest
// in in-flight results; the requests themselves are not aborted.
type Controller struct {
	mu      sync.Mutex
	api     services.DashboardAPIInterface
	view    View
	chart   ChartRenderer
	session *session.Session

	refreshInterval time.Duration
	refreshTimeout  time.Duration

	// loaded flips true after the first successful load and back to false
	// while a load is in flight; SwitchTimeframe ignores clicks until then.
	loaded bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithRefreshInterval overrides the 30-second live-quote polling cadence.
func WithRefreshInterval(d time.Duration) Option {
	return func(c *Controller) { c.refreshInterval = d }
}

// WithRefreshTimeout bounds each background quote poll.
func WithRefreshTimeout(d time.Duration) Option {
	return func(c *Controller) { c.refreshTimeout = d }
}

// NewController creates a controller owning the given session.
func NewController(api services.DashboardAPIInterface, view View, chart ChartRenderer, sess *session.Session, opts ...Option) *Controller {
	c := &Controller{
		api:             api,
		view:            view,
		chart:           chart,
		session:         sess,
		refreshInterval: DefaultRefreshInterval,
		refreshTimeout:  10 * time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load switches the dashboard to a new ticker: it begins a fresh session,
// fetches the overview bundle, renders the intraday chart, and starts the
// refresh timer. A load whose ticker has been superseded by a newer Load at
// completion time mutates nothing.
func (c *Controller) Load(ctx context.Context, ticker string) error {
	ticker = models.NormalizeTicker(ticker)
	if ticker == "" {
		return fmt.Errorf("empty ticker")
	}

	metrics := observability.GetMetrics()
	timer := metrics.NewTimer()

	c.mu.Lock()
	c.view.ShowLoading() // before any I/O
	c.loaded = false
	c.session.Begin(ticker)
	log := observability.WithSession(ticker, c.session.ID())
	c.mu.Unlock()

	log.Info("loading ticker")
	overview, err := c.api.GetOverview(ctx, ticker)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Ticker() != ticker {
		// A newer Load took over while we were fetching.
		metrics.RecordStaleDrop("overview")
		log.Debug("discarding superseded overview result")
		return nil
	}

	if err != nil {
		c.view.ShowError(services.ErrorDetail(err))
		c.session.StopRefreshTimer()
		timer.ObserveLoad("error")
		log.Warn("load failed", "error", err)
		return err
	}

	c.session.SetSeries(ticker, models.TimeframeIntraday, overview.Intraday)
	c.view.ShowOverview(overview.Profile, overview.Quote)
	c.renderLocked(models.TimeframeIntraday, overview.Intraday)
	c.loaded = true

	if err := c.session.StartRefreshTimer(c.refreshInterval, c.refreshTick); err != nil {
		log.Warn("refresh timer not started", "error", err)
	}

	timer.ObserveLoad("success")
	log.Info("ticker loaded", "intraday_points", len(overview.Intraday))
	return nil
}

// SwitchTimeframe renders the chart for a timeframe, fetching its series on
// the first request of a session and from cache afterwards. Before the
// first successful load it is a no-op. Fetch failures degrade to the
// no-data chart state so the rest of the dashboard stays usable.
func (c *Controller) SwitchTimeframe(ctx context.Context, tf models.Timeframe) error {
	metrics := observability.GetMetrics()

	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return nil
	}
	ticker := c.session.Ticker()

	if series, ok := c.session.Series(tf); ok {
		metrics.RecordChartCache(tf.String(), "hit")
		c.renderLocked(tf, series)
		c.mu.Unlock()
		return nil
	}
	c.mu.Unlock()

	metrics.RecordChartCache(tf.String(), "miss")

	// Intraday is always seeded by Load, so only daily reaches the backend.
	series, err := c.api.GetDailySeries(ctx, ticker)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.Ticker() != ticker {
		metrics.RecordStaleDrop("historical")
		return nil
	}

	if err != nil {
		c.view.ShowNoChartData()
		observability.WithTicker(ticker).Warn("timeframe fetch failed",
			"timeframe", tf.String(), "error", err)
		return err
	}

	c.session.SetSeries(ticker, tf, series)
	c.renderLocked(tf, series)
	return nil
}

// refreshTick is the background quote poll. Failures never reach the user:
// the previous quote simply stays on screen until the next tick.
func (c *Controller) refreshTick(ticker string) {
	ctx, cancel := context.WithTimeout(context.Background(), c.refreshTimeout)
	defer cancel()

	metrics := observability.GetMetrics()

	quote, ok := c.api.GetQuote(ctx, ticker)
	if !ok {
		metrics.RecordRefreshTick("miss")
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The timer is cancelled on ticker switch, but a poll already in flight
	// can still land here afterwards.
	if c.session.Ticker() != ticker {
		metrics.RecordStaleDrop("quote")
		return
	}

	c.view.UpdateQuote(*quote)
	metrics.RecordRefreshTick("ok")
}

// renderLocked normalizes a series and hands it to the chart renderer.
// Caller holds c.mu.
func (c *Controller) renderLocked(tf models.Timeframe, series models.Series) {
	chrono := series.Chronological()
	if len(chrono) == 0 {
		c.view.ShowNoChartData()
		return
	}

	data := ChartData{
		Ticker:   c.session.Ticker(),
		Labels:   make([]string, len(chrono)),
		Prices:   make([]float64, len(chrono)),
		TimeUnit: tf.TimeUnit(),
		Trend:    chrono.TrendDirection(),
	}
	for i, p := range chrono {
		data.Labels[i] = p.Date
		data.Prices[i] = p.Close
	}

	c.chart.RenderChart(data)
}

// Close stops the refresh timer and releases the session scheduler.
func (c *Controller) Close() {
	c.session.Close()
}
