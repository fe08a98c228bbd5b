// Package view provides a terminal rendition of the dashboard. It
// implements the display contract the controller drives; everything here is
// presentation only.
package view

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"stock-dashboard/internal/dashboard"
	"stock-dashboard/models"
)

// sparkRunes are the bar glyphs for the price sparkline, lowest to highest.
var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Console writes the dashboard to a writer, one block per display signal.
type Console struct {
	mu sync.Mutex
	w  io.Writer
}

// NewConsole creates a console view writing to w.
func NewConsole(w io.Writer) *Console {
	return &Console{w: w}
}

// ShowLoading prints the loading notice.
func (c *Console) ShowLoading() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "Loading…")
}

// ShowError prints the error banner.
func (c *Console) ShowError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.w, "ERROR: %s\n", msg)
}

// ShowOverview prints the company header, price block, and key metrics.
func (c *Console) ShowOverview(profile models.Profile, quote models.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fmt.Fprintf(c.w, "%s (%s)\n", profile.CompanyName, profile.Symbol)
	fmt.Fprintf(c.w, "%s: %s\n", profile.Exchange, profile.Industry)
	if profile.Website != "" {
		fmt.Fprintln(c.w, profile.Website)
	}
	fmt.Fprintf(c.w, "logo: %s\n", profile.LogoURL())

	c.printQuoteLocked(quote)

	fmt.Fprintf(c.w, "Volume:     %s\n", dashboard.FormatVolume(quote))
	fmt.Fprintf(c.w, "Day High:   %s\n", dashboard.FormatUSD(quote.DayHigh))
	fmt.Fprintf(c.w, "Day Low:    %s\n", dashboard.FormatUSD(quote.DayLow))
	fmt.Fprintf(c.w, "Market Cap: %s\n", dashboard.FormatMarketCap(quote))
}

// UpdateQuote reprints only the live price block.
func (c *Console) UpdateQuote(quote models.Quote) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.printQuoteLocked(quote)
}

// ShowNoChartData prints the empty-chart state.
func (c *Console) ShowNoChartData() {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.w, "No chart data available.")
}

// RenderChart prints a sparkline of the series with its range.
func (c *Console) RenderChart(data dashboard.ChartData) {
	c.mu.Lock()
	defer c.mu.Unlock()

	lo, hi := data.Prices[0], data.Prices[0]
	for _, p := range data.Prices {
		if p < lo {
			lo = p
		}
		if p > hi {
			hi = p
		}
	}

	var spark strings.Builder
	for _, p := range data.Prices {
		idx := 0
		if hi > lo {
			idx = int((p - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		spark.WriteRune(sparkRunes[idx])
	}

	fmt.Fprintf(c.w, "%s · %s per tick · trend %s\n", data.Ticker, data.TimeUnit, data.Trend)
	fmt.Fprintln(c.w, spark.String())
	fmt.Fprintf(c.w, "%s to %s (%d points, %s through %s)\n",
		dashboard.FormatUSD(lo), dashboard.FormatUSD(hi),
		len(data.Prices), data.Labels[0], data.Labels[len(data.Labels)-1])
}

func (c *Console) printQuoteLocked(quote models.Quote) {
	arrow := "▲"
	if dashboard.Direction(quote) == "down" {
		arrow = "▼"
	}
	fmt.Fprintf(c.w, "%s %s %s\n", dashboard.FormatPrice(quote), arrow, dashboard.FormatChange(quote))
}
