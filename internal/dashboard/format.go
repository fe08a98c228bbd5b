package dashboard

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"stock-dashboard/models"
)

// FormatPrice renders the current price with two fixed decimals.
func FormatPrice(q models.Quote) string {
	return decimal.NewFromFloat(q.Price).StringFixed(2)
}

// FormatChange renders the absolute and percentage change with an explicit
// sign: gains get a leading "+", losses keep their own minus sign.
func FormatChange(q models.Quote) string {
	sign := ""
	if q.IsUp() {
		sign = "+"
	}
	change := decimal.NewFromFloat(q.Change).StringFixed(2)
	pct := decimal.NewFromFloat(q.ChangesPercentage).StringFixed(2)
	return fmt.Sprintf("%s%s (%s%s%%)", sign, change, sign, pct)
}

// Direction returns the styling hint for the price block: "up" or "down".
func Direction(q models.Quote) string {
	if q.IsUp() {
		return "up"
	}
	return "down"
}

// FormatVolume renders share volume with thousands separators.
func FormatVolume(q models.Quote) string {
	return humanize.Comma(q.Volume)
}

// FormatMarketCap renders market cap with thousands separators.
func FormatMarketCap(q models.Quote) string {
	return humanize.Comma(q.MarketCap)
}

// FormatUSD renders a dollar amount with two fixed decimals.
func FormatUSD(v float64) string {
	return "$" + decimal.NewFromFloat(v).StringFixed(2)
}
