package dashboard

import "stock-dashboard/models"

// ChartData is the normalized payload handed to a chart renderer: points in
// chronological ascending order plus the hints the renderer needs.
type ChartData struct {
	Ticker   string
	Labels   []string
	Prices   []float64
	TimeUnit string // axis granularity: "hour" or "month"
	Trend    models.Trend
}

// ChartRenderer draws one chart per call, replacing whatever it drew
// before. The controller only ever hands it chronological data.
type ChartRenderer interface {
	RenderChart(data ChartData)
}

// View receives the non-chart display signals. Implementations own all
// presentation; the controller owns when each signal fires.
type View interface {
	// ShowLoading fires synchronously when a load begins, before any I/O
	ShowLoading()
	// ShowError replaces the dashboard content with an error banner
	ShowError(msg string)
	// ShowOverview publishes profile, quote, and key metrics after a load
	ShowOverview(profile models.Profile, quote models.Quote)
	// UpdateQuote refreshes only the live price fields
	UpdateQuote(quote models.Quote)
	// ShowNoChartData marks the chart area as having nothing to plot
	ShowNoChartData()
}
