package config

import (
	"testing"
	"time"

	"github.com/pitchside/leaguedesk/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("unexpected HTTPAddr %q", cfg.HTTPAddr)
	}
	if cfg.StorageDriver != StorageFile {
		t.Fatalf("expected file storage by default, got %q", cfg.StorageDriver)
	}
	if cfg.RefreshInterval != 30*time.Second {
		t.Fatalf("unexpected RefreshInterval %s", cfg.RefreshInterval)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel %s", cfg.LogLevel)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected CORS origins %v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_StorageDriverValidation(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", "redis")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unknown STORAGE_DRIVER")
	}
}

func TestLoad_PostgresRequiresDBURL(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("STORAGE_DRIVER", StoragePostgres)
	t.Setenv("DB_URL", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when STORAGE_DRIVER=postgres without DB_URL")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_RemoteAndRefreshParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("REMOTE_BASE_URL", "https://league.example.com")
	t.Setenv("REMOTE_TIMEOUT", "20s")
	t.Setenv("REMOTE_CIRCUIT_FAILURE_COUNT", "3")
	t.Setenv("REFRESH_INTERVAL", "1m")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvProd {
		t.Fatalf("unexpected AppEnv %q", cfg.AppEnv)
	}
	if cfg.RemoteBaseURL != "https://league.example.com" {
		t.Fatalf("unexpected RemoteBaseURL %q", cfg.RemoteBaseURL)
	}
	if cfg.RemoteTimeout != 20*time.Second {
		t.Fatalf("unexpected RemoteTimeout %s", cfg.RemoteTimeout)
	}
	if cfg.RemoteCircuitFailureCount != 3 {
		t.Fatalf("unexpected RemoteCircuitFailureCount %d", cfg.RemoteCircuitFailureCount)
	}
	if cfg.RefreshInterval != time.Minute {
		t.Fatalf("unexpected RefreshInterval %s", cfg.RefreshInterval)
	}
	if cfg.LogLevel != logging.LevelWarn {
		t.Fatalf("unexpected LogLevel %s", cfg.LogLevel)
	}
}

func TestLoad_BadDurationRejected(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("REFRESH_INTERVAL", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for unparseable REFRESH_INTERVAL")
	}
}
