package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/pitchside/leaguedesk/internal/config"
	"github.com/pitchside/leaguedesk/internal/infrastructure/remote"
	"github.com/pitchside/leaguedesk/internal/observability"
	idgen "github.com/pitchside/leaguedesk/internal/platform/id"
	"github.com/pitchside/leaguedesk/internal/platform/logging"
	"github.com/pitchside/leaguedesk/internal/platform/resilience"
	"github.com/pitchside/leaguedesk/internal/usecase"
)

// The agent keeps a local snapshot of one league server in sync: an initial
// download at startup, then a periodic refresh until the process is stopped.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logging.SlogLevel(cfg.LogLevel),
	}))

	appLogger := logging.NewJSON(cfg.LogLevel)
	logging.SetDefault(appLogger)

	shutdownUptrace, err := observability.InitUptrace(cfg, appLogger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	client := remote.NewClient(remote.ClientConfig{
		BaseURL: cfg.RemoteBaseURL,
		Timeout: cfg.RemoteTimeout,
		Logger:  appLogger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.RemoteCircuitEnabled,
			FailureThreshold: cfg.RemoteCircuitFailureCount,
			OpenTimeout:      cfg.RemoteCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.RemoteCircuitHalfOpenMaxRq,
		},
	})

	syncSvc := usecase.NewSyncService(client, idgen.NewRandomGenerator(), appLogger)

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), cfg.RemoteTimeout)
	report, err := syncSvc.Download(startupCtx)
	cancelStartup()
	switch {
	case err != nil:
		logger.Warn("initial download failed; starting with empty snapshot", "error", err)
	default:
		logger.Info("initial download complete",
			"teams_changed", report.ChangedTeams,
			"matchdays_changed", report.ChangedMatchDays,
			"healed_write_back", report.HealedWriteBack,
		)
	}

	refresher := usecase.NewRefresher(syncSvc, cfg.RefreshInterval, cfg.RefreshTimeout, appLogger)
	refresher.Start(context.Background())
	logger.Info("refresher started",
		"remote", cfg.RemoteBaseURL,
		"interval", cfg.RefreshInterval.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := shutdownUptrace(shutdownCtx); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}

	logger.Info("agent stopped")
}
