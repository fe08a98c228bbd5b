package services

import (
	"context"

	"stock-dashboard/models"
)

// DashboardAPIInterface defines the backend operations the view
// synchronizer depends on
type DashboardAPIInterface interface {
	// GetOverview fetches profile, quote, and intraday series in one call
	GetOverview(ctx context.Context, ticker string) (*models.Overview, error)
	// GetQuote polls the latest quote; ok is false when there is no update
	GetQuote(ctx context.Context, ticker string) (quote *models.Quote, ok bool)
	// GetDailySeries fetches the daily historical series
	GetDailySeries(ctx context.Context, ticker string) (models.Series, error)
}
