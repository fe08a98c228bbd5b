// Package api exposes the operational HTTP surface: health and Prometheus
// metrics. It serves nothing user-facing; the dashboard itself talks to the
// stock backend directly.
package api

import (
	"encoding/json"
	"net/http"

	"stock-dashboard/services"
)

// SessionInfo reports what the dashboard is currently showing.
type SessionInfo interface {
	Ticker() string
	TimerRunning() bool
}

// Handler handles ops HTTP requests
type Handler struct {
	session SessionInfo
}

// NewHandler creates a new Handler
func NewHandler(session SessionInfo) *Handler {
	return &Handler{session: session}
}

// HandleHealth returns the health status of the dashboard
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status": "ok",
	}

	if h.session != nil {
		status["ticker"] = h.session.Ticker()
		status["refresh_timer"] = h.session.TimerRunning()
	}

	// Any open breaker means the backend is struggling.
	cbStatus := services.GetGlobalRegistry().Status()
	status["circuit_breakers"] = cbStatus
	for _, cb := range cbStatus {
		if cb.State == "open" {
			status["status"] = "degraded"
			break
		}
	}

	h.jsonResponse(w, status)
}

func (h *Handler) jsonResponse(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}
