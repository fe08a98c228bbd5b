package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"stock-dashboard/config"
	"stock-dashboard/internal/api"
	"stock-dashboard/internal/dashboard"
	"stock-dashboard/internal/session"
	"stock-dashboard/internal/view"
	"stock-dashboard/models"
	"stock-dashboard/observability"
	"stock-dashboard/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "No .env file found, using environment variables")
	}

	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	observability.InitLoggerWithLevel(cfg.Log.Production, parseLevel(cfg.Log.Level))
	observability.InitMetrics()

	apiService := services.NewDashboardAPIService(cfg.Backend.BaseURL, cfg.BackendTimeout())
	sess := session.New()
	console := view.NewConsole(os.Stdout)
	controller := dashboard.NewController(apiService, console, console, sess,
		dashboard.WithRefreshInterval(cfg.RefreshInterval()))

	// Ops surface: health and Prometheus metrics.
	opsServer := &http.Server{
		Addr:    cfg.HTTP.ListenAddr,
		Handler: api.NewRouter(api.NewHandler(sess)),
	}
	go func() {
		observability.Info("ops server listening", "addr", cfg.HTTP.ListenAddr)
		if err := opsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			observability.Error("ops server failed", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initial load, mirroring the dashboard opening on its default ticker.
	if err := controller.Load(ctx, cfg.Dashboard.DefaultTicker); err != nil {
		observability.Warn("initial load failed", "error", err)
	}

	fmt.Println(`Commands: <ticker> to load, "intraday"/"daily" to switch tabs, "quit" to exit.`)
	go readCommands(ctx, controller, stop)

	<-ctx.Done()

	observability.Info("shutting down")
	controller.Close()
	_ = opsServer.Shutdown(context.Background())
}

// readCommands drives the controller from stdin: a bare ticker submits the
// form, a timeframe name clicks its tab.
func readCommands(ctx context.Context, controller *dashboard.Controller, stop func()) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "quit") || strings.EqualFold(input, "exit") {
			stop()
			return
		}

		if tf, err := models.ParseTimeframe(input); err == nil {
			if err := controller.SwitchTimeframe(ctx, tf); err != nil {
				observability.Warn("timeframe switch failed", "error", err)
			}
			continue
		}

		if err := controller.Load(ctx, input); err != nil {
			observability.Warn("load failed", "error", err)
		}
	}
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
