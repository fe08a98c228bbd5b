package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewCircuitBreakerRegistry(t *testing.T) {
	config := CircuitBreakerConfig{
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     10 * time.Second,
	}

	registry := NewCircuitBreakerRegistry(config)

	if registry == nil {
		t.Fatal("expected registry to be created")
	}
	if registry.breakers == nil {
		t.Error("expected breakers map to be initialized")
	}
	if registry.config != config {
		t.Error("expected config to be set")
	}
}

func TestCircuitBreakerRegistry_GetBreaker(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)

	// First call should create a new breaker
	breaker1 := registry.GetBreaker(BreakerOverview)
	if breaker1 == nil {
		t.Fatal("expected breaker to be created")
	}

	// Second call should return the same breaker
	breaker2 := registry.GetBreaker(BreakerOverview)
	if breaker1 != breaker2 {
		t.Error("expected same breaker instance")
	}

	// Different name should create different breaker
	breaker3 := registry.GetBreaker(BreakerHistorical)
	if breaker1 == breaker3 {
		t.Error("expected different breaker for different name")
	}
}

func TestCircuitBreakerRegistry_Execute_Success(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	result, err := registry.Execute(ctx, BreakerOverview, func() (any, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if result != "success" {
		t.Errorf("expected 'success', got %v", result)
	}
}

func TestCircuitBreakerRegistry_Execute_TripsOpen(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()
	failure := errors.New("backend down")

	// The breaker trips after at least 5 requests with a >=50% failure ratio.
	for i := 0; i < 6; i++ {
		_, _ = registry.Execute(ctx, BreakerOverview, func() (any, error) {
			return nil, failure
		})
	}

	_, err := registry.Execute(ctx, BreakerOverview, func() (any, error) {
		return "should not run", nil
	})

	if err == nil {
		t.Fatal("expected open-breaker error, got nil")
	}
	if !strings.Contains(err.Error(), "circuit breaker open") {
		t.Errorf("expected open-breaker message, got: %v", err)
	}
}

func TestCircuitBreakerRegistry_Status(t *testing.T) {
	registry := NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig)
	ctx := context.Background()

	_, _ = registry.Execute(ctx, BreakerHistorical, func() (any, error) {
		return nil, nil
	})

	status := registry.Status()
	st, ok := status[BreakerHistorical]
	if !ok {
		t.Fatal("expected status entry for historical breaker")
	}
	if st.State != "closed" {
		t.Errorf("State = %v, want 'closed'", st.State)
	}
	if st.TotalSuccesses != 1 {
		t.Errorf("TotalSuccesses = %v, want 1", st.TotalSuccesses)
	}
}

func TestWithCircuitBreaker_Typed(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))
	ctx := context.Background()

	got, err := WithCircuitBreaker(ctx, "typed-test", func() (int, error) {
		return 42, nil
	})

	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Errorf("expected 42, got %v", got)
	}
}

func TestWithCircuitBreaker_ContextCancelled(t *testing.T) {
	SetGlobalRegistry(NewCircuitBreakerRegistry(DefaultCircuitBreakerConfig))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	_, err := WithCircuitBreaker(ctx, "cancel-test", func() (string, error) {
		called = true
		return "", nil
	})

	if err == nil {
		t.Error("expected error for cancelled context")
	}
	if called {
		t.Error("function should not run once the context is cancelled")
	}
}
