package dashboard

import (
	"context"
	"sync"

	"stock-dashboard/models"
)

// mockAPI is a scriptable fetch client. Overview fetches can be blocked on
// a channel to simulate a slow backend.
type mockAPI struct {
	mu sync.Mutex

	overviews     map[string]*models.Overview
	overviewErrs  map[string]error
	overviewGate  map[string]chan struct{}
	overviewCalls []string

	daily      models.Series
	dailyErr   error
	dailyCalls int

	quote      *models.Quote
	quoteOK    bool
	quoteCalls int
}

func newMockAPI() *mockAPI {
	return &mockAPI{
		overviews:    make(map[string]*models.Overview),
		overviewErrs: make(map[string]error),
		overviewGate: make(map[string]chan struct{}),
	}
}

func (m *mockAPI) GetOverview(ctx context.Context, ticker string) (*models.Overview, error) {
	m.mu.Lock()
	m.overviewCalls = append(m.overviewCalls, ticker)
	gate := m.overviewGate[ticker]
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.overviewErrs[ticker]; err != nil {
		return nil, err
	}
	if ov := m.overviews[ticker]; ov != nil {
		return ov, nil
	}
	return &models.Overview{
		Profile: models.Profile{Symbol: ticker, CompanyName: ticker + " Inc."},
		Quote:   models.Quote{Symbol: ticker, Price: 100},
		Intraday: models.Series{
			{Date: "2024-03-01 16:00:00", Close: 100},
			{Date: "2024-03-01 15:00:00", Close: 99},
		},
	}, nil
}

func (m *mockAPI) GetQuote(ctx context.Context, ticker string) (*models.Quote, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteCalls++
	if !m.quoteOK {
		return nil, false
	}
	return m.quote, true
}

func (m *mockAPI) GetDailySeries(ctx context.Context, ticker string) (models.Series, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dailyCalls++
	if m.dailyErr != nil {
		return nil, m.dailyErr
	}
	return m.daily, nil
}

func (m *mockAPI) overviewCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.overviewCalls)
}

func (m *mockAPI) dailyCallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dailyCalls
}

// recordingView captures every display signal in order.
type recordingView struct {
	mu       sync.Mutex
	signals  []string
	lastErr  string
	profile  models.Profile
	quote    models.Quote
	hasQuote bool
}

func (v *recordingView) ShowLoading() {
	v.record("loading")
}

func (v *recordingView) ShowError(msg string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.signals = append(v.signals, "error")
	v.lastErr = msg
}

func (v *recordingView) ShowOverview(profile models.Profile, quote models.Quote) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.signals = append(v.signals, "overview")
	v.profile = profile
	v.quote = quote
	v.hasQuote = true
}

func (v *recordingView) UpdateQuote(quote models.Quote) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.signals = append(v.signals, "quote")
	v.quote = quote
	v.hasQuote = true
}

func (v *recordingView) ShowNoChartData() {
	v.record("nodata")
}

func (v *recordingView) record(signal string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.signals = append(v.signals, signal)
}

func (v *recordingView) signalCount(signal string) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	n := 0
	for _, s := range v.signals {
		if s == signal {
			n++
		}
	}
	return n
}

func (v *recordingView) lastQuote() (models.Quote, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.quote, v.hasQuote
}

func (v *recordingView) lastError() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastErr
}

// recordingChart captures every render call.
type recordingChart struct {
	mu      sync.Mutex
	renders []ChartData
}

func (c *recordingChart) RenderChart(data ChartData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.renders = append(c.renders, data)
}

func (c *recordingChart) renderCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.renders)
}

func (c *recordingChart) lastRender() (ChartData, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.renders) == 0 {
		return ChartData{}, false
	}
	return c.renders[len(c.renders)-1], true
}
