package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"stock-dashboard/models"
	"stock-dashboard/observability"
)

// DashboardAPIService handles communication with the stock data backend.
// It is the only component that touches the network; everything it returns
// is already decoded into domain models.
type DashboardAPIService struct {
	baseURL    string
	httpClient *http.Client
}

// NewDashboardAPIService creates a new DashboardAPIService instance
func NewDashboardAPIService(baseURL string, timeout time.Duration) *DashboardAPIService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &DashboardAPIService{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// GetOverview fetches the combined profile, quote, and intraday series for
// a ticker in a single request. Non-success responses surface the backend's
// detail message; network failures surface as transport errors.
func (s *DashboardAPIService) GetOverview(ctx context.Context, ticker string) (*models.Overview, error) {
	return WithCircuitBreaker(ctx, BreakerOverview, func() (*models.Overview, error) {
		var overview *models.Overview

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			metrics := observability.GetMetrics()
			metrics.RecordBackendRequest("overview")
			timer := metrics.NewTimer()

			resp, err := s.get(ctx, "/api/stock/"+url.PathEscape(ticker))
			if err != nil {
				metrics.RecordBackendError("overview", errorType(err))
				return err
			}
			defer resp.Body.Close()
			timer.ObserveBackend("overview")

			if resp.StatusCode != http.StatusOK {
				apiErr := responseError(resp)
				metrics.RecordBackendError("overview", errorType(apiErr))
				return apiErr
			}

			var ov models.Overview
			if err := json.NewDecoder(resp.Body).Decode(&ov); err != nil {
				metrics.RecordBackendError("overview", "decode")
				return fmt.Errorf("decode overview response: %w", err)
			}

			overview = &ov
			return nil
		})

		if err != nil {
			return nil, err
		}

		return overview, nil
	})
}

// GetQuote polls the latest quote for a ticker. It never fails the caller:
// on any error the previous quote stays on screen, so failures are logged
// and reported as "no update". The 30-second polling cadence is its own
// retry loop, so there is no breaker or backoff here.
func (s *DashboardAPIService) GetQuote(ctx context.Context, ticker string) (*models.Quote, bool) {
	metrics := observability.GetMetrics()
	metrics.RecordBackendRequest("quote")
	timer := metrics.NewTimer()

	resp, err := s.get(ctx, "/api/quote/"+url.PathEscape(ticker))
	if err != nil {
		metrics.RecordBackendError("quote", errorType(err))
		observability.WithTicker(ticker).Warn("quote refresh failed", "error", err)
		return nil, false
	}
	defer resp.Body.Close()
	timer.ObserveBackend("quote")

	if resp.StatusCode != http.StatusOK {
		metrics.RecordBackendError("quote", "status")
		observability.WithTicker(ticker).Warn("quote refresh failed",
			"status", resp.StatusCode)
		return nil, false
	}

	var quote models.Quote
	if err := json.NewDecoder(resp.Body).Decode(&quote); err != nil {
		metrics.RecordBackendError("quote", "decode")
		observability.WithTicker(ticker).Warn("quote refresh failed", "error", err)
		return nil, false
	}

	return &quote, true
}

// GetDailySeries fetches the daily historical series for a ticker. An empty
// or malformed body is an empty series, not an error; non-success statuses
// and transport failures propagate to the caller.
func (s *DashboardAPIService) GetDailySeries(ctx context.Context, ticker string) (models.Series, error) {
	return WithCircuitBreaker(ctx, BreakerHistorical, func() (models.Series, error) {
		var series models.Series

		err := WithRetry(ctx, DefaultRetryConfig, func() error {
			metrics := observability.GetMetrics()
			metrics.RecordBackendRequest("historical")
			timer := metrics.NewTimer()

			resp, err := s.get(ctx, "/api/historical/daily/"+url.PathEscape(ticker))
			if err != nil {
				metrics.RecordBackendError("historical", errorType(err))
				return err
			}
			defer resp.Body.Close()
			timer.ObserveBackend("historical")

			if resp.StatusCode != http.StatusOK {
				apiErr := responseError(resp)
				metrics.RecordBackendError("historical", errorType(apiErr))
				return apiErr
			}

			if err := json.NewDecoder(resp.Body).Decode(&series); err != nil {
				observability.WithTicker(ticker).Warn("malformed daily series, treating as empty",
					"error", err)
				series = models.Series{}
			}
			return nil
		})

		if err != nil {
			return nil, err
		}
		if series == nil {
			series = models.Series{}
		}

		return series, nil
	})
}

// get issues a GET request against the backend, mapping network failures to
// transport errors.
func (s *DashboardAPIService) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, &APIError{Kind: ErrTransport, Err: err}
	}
	return resp, nil
}

// responseError builds an APIError from a non-success response, carrying
// the backend's detail message verbatim when the body has one.
func responseError(resp *http.Response) *APIError {
	kind := ErrBadRequest
	if resp.StatusCode == http.StatusNotFound {
		kind = ErrNotFound
	}

	var body struct {
		Detail string `json:"detail"`
	}
	// A body without a detail field falls through to the status message.
	_ = json.NewDecoder(resp.Body).Decode(&body)

	return &APIError{
		Kind:       kind,
		StatusCode: resp.StatusCode,
		Detail:     body.Detail,
	}
}

// Compile-time interface verification
var _ DashboardAPIInterface = (*DashboardAPIService)(nil)
