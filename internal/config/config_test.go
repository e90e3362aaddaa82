package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("APP_SERVICE_NAME", "")
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("APP_LOG_LEVEL", "")
	t.Setenv("UPTRACE_ENABLED", "")
	t.Setenv("PYROSCOPE_ENABLED", "")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.ServiceName != "tycoon-player-api" || cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("unexpected service naming: %q/%q", cfg.ServiceName, cfg.PyroscopeAppName)
	}
	if cfg.StoreDriver != StoreDriverPostgres {
		t.Fatalf("unexpected StoreDriver: %q", cfg.StoreDriver)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 15*time.Second {
		t.Fatalf("unexpected timeouts: %s/%s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected LogLevel: %s", cfg.LogLevel)
	}
	if !cfg.MetricsEnabled {
		t.Fatalf("expected metrics enabled by default")
	}
}

func TestLoad_StoreDriver(t *testing.T) {
	t.Run("memory allowed in dev", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORE_DRIVER", "Memory")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StoreDriverMemory {
			t.Fatalf("unexpected StoreDriver: %q", cfg.StoreDriver)
		}
	})

	t.Run("memory rejected in prod", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("STORE_DRIVER", StoreDriverMemory)

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for memory store in prod")
		}
	})

	t.Run("unknown driver", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("STORE_DRIVER", "sqlite")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown driver")
		}
	})
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_InvalidDurations(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_READ_TIMEOUT", "soon")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_READ_TIMEOUT")
	}

	t.Setenv("APP_READ_TIMEOUT", "-1s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for negative APP_READ_TIMEOUT")
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without address")
	}
}

func TestDatabaseURL(t *testing.T) {
	t.Setenv(DatabaseURLEnv, "")
	if _, err := DatabaseURL(); err == nil {
		t.Fatalf("expected error for empty %s", DatabaseURLEnv)
	}

	t.Setenv(DatabaseURLEnv, " postgres://u:p@localhost:5432/game ")
	dsn, err := DatabaseURL()
	if err != nil {
		t.Fatalf("database url: %v", err)
	}
	if dsn != "postgres://u:p@localhost:5432/game" {
		t.Fatalf("unexpected dsn: %q", dsn)
	}
}
