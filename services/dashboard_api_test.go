package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

// freshBreakers gives each test its own registry so failures in one test
// cannot trip breakers seen by another.
func freshBreakers(t *testing.T) {
	t.Helper()
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))
}

func TestNewDashboardAPIService(t *testing.T) {
	service := NewDashboardAPIService("http://localhost:8000", 10*time.Second)
	if service == nil {
		t.Fatal("NewDashboardAPIService should not return nil")
	}
	if service.baseURL != "http://localhost:8000" {
		t.Errorf("baseURL = %v, want 'http://localhost:8000'", service.baseURL)
	}
	if service.httpClient == nil {
		t.Error("httpClient should not be nil")
	}
	if service.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", service.httpClient.Timeout)
	}
}

func TestNewDashboardAPIService_DefaultTimeout(t *testing.T) {
	service := NewDashboardAPIService("http://localhost:8000", 0)
	if service.httpClient.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s default", service.httpClient.Timeout)
	}
}

func TestGetOverview_Success(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/stock/AAPL" {
			t.Errorf("path = %v, want /api/stock/AAPL", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"profile": {"symbol": "AAPL", "companyName": "Apple Inc.", "exchange": "NASDAQ"},
			"quote": {"symbol": "AAPL", "price": 175.50, "change": 1.25},
			"chart_intraday": [
				{"date": "2024-03-01 16:00:00", "close": 175.50},
				{"date": "2024-03-01 15:00:00", "close": 174.80}
			]
		}`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, 5*time.Second)
	ov, err := service.GetOverview(context.Background(), "AAPL")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ov.Profile.CompanyName != "Apple Inc." {
		t.Errorf("CompanyName = %v, want 'Apple Inc.'", ov.Profile.CompanyName)
	}
	if ov.Quote.Price != 175.50 {
		t.Errorf("Price = %v, want 175.50", ov.Quote.Price)
	}
	if len(ov.Intraday) != 2 {
		t.Errorf("len(Intraday) = %v, want 2", len(ov.Intraday))
	}
}

func TestGetOverview_NotFoundDetail(t *testing.T) {
	freshBreakers(t)

	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "No data found for the given ticker."}`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, 5*time.Second)
	_, err := service.GetOverview(context.Background(), "FAKE")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found classification, got: %v", err)
	}
	if got := ErrorDetail(err); got != "No data found for the given ticker." {
		t.Errorf("ErrorDetail() = %q, want the backend message verbatim", got)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("requests = %d, want 1 (response errors must not be retried)", n)
	}
}

func TestGetOverview_TransportError(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening: every attempt fails at dial time

	service := NewDashboardAPIService(server.URL, time.Second)
	_, err := service.GetOverview(context.Background(), "AAPL")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsTransport(err) {
		t.Errorf("expected transport classification, got: %v", err)
	}
}

func TestGetQuote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/quote/MSFT" {
			t.Errorf("path = %v, want /api/quote/MSFT", r.URL.Path)
		}
		w.Write([]byte(`{"symbol": "MSFT", "price": 380.25, "change": -2.10, "changesPercentage": -0.55}`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, 5*time.Second)
	quote, ok := service.GetQuote(context.Background(), "MSFT")

	if !ok {
		t.Fatal("expected ok = true")
	}
	if quote.Price != 380.25 {
		t.Errorf("Price = %v, want 380.25", quote.Price)
	}
	if quote.Change != -2.10 {
		t.Errorf("Change = %v, want -2.10", quote.Change)
	}
}

func TestGetQuote_FailuresAreSilent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		close   bool
	}{
		{
			"Server error",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			false,
		},
		{
			"Not found",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) },
			false,
		},
		{
			"Malformed body",
			func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{not json`)) },
			false,
		},
		{
			"Transport failure",
			func(w http.ResponseWriter, r *http.Request) {},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			if tt.close {
				server.Close()
			} else {
				defer server.Close()
			}

			service := NewDashboardAPIService(server.URL, time.Second)
			quote, ok := service.GetQuote(context.Background(), "AAPL")

			if ok {
				t.Error("expected ok = false")
			}
			if quote != nil {
				t.Errorf("expected nil quote, got %v", quote)
			}
		})
	}
}

func TestGetDailySeries_Success(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/historical/daily/AAPL" {
			t.Errorf("path = %v, want /api/historical/daily/AAPL", r.URL.Path)
		}
		w.Write([]byte(`[
			{"date": "2024-03-03", "close": 100},
			{"date": "2024-03-01", "close": 90}
		]`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, 5*time.Second)
	series, err := service.GetDailySeries(context.Background(), "AAPL")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 2 {
		t.Fatalf("len(series) = %v, want 2", len(series))
	}
	if series[0].Date != "2024-03-03" {
		t.Errorf("series[0].Date = %v, want the backend order preserved", series[0].Date)
	}
}

func TestGetDailySeries_MalformedBodyIsEmpty(t *testing.T) {
	freshBreakers(t)

	tests := []struct {
		name string
		body string
	}{
		{"Empty body", ""},
		{"Not JSON", "<html>oops</html>"},
		{"Wrong shape", `{"historical": "nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			service := NewDashboardAPIService(server.URL, time.Second)
			series, err := service.GetDailySeries(context.Background(), "AAPL")

			if err != nil {
				t.Fatalf("malformed body should not error, got: %v", err)
			}
			if series == nil {
				t.Fatal("expected empty series, got nil")
			}
			if len(series) != 0 {
				t.Errorf("len(series) = %v, want 0", len(series))
			}
		})
	}
}

func TestGetDailySeries_NotFoundPropagates(t *testing.T) {
	freshBreakers(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"detail": "No data found for the given ticker."}`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, time.Second)
	_, err := service.GetDailySeries(context.Background(), "FAKE")

	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !IsNotFound(err) {
		t.Errorf("expected not-found classification, got: %v", err)
	}
}

func TestGetOverview_TickerIsPathEscaped(t *testing.T) {
	freshBreakers(t)

	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.Write([]byte(`{"profile": {}, "quote": {}, "chart_intraday": []}`))
	}))
	defer server.Close()

	service := NewDashboardAPIService(server.URL, time.Second)
	_, err := service.GetOverview(context.Background(), "BRK/B")

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "/api/stock/BRK%2FB" {
		t.Errorf("path = %v, want /api/stock/BRK%%2FB", gotPath)
	}
}
