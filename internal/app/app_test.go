package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/tycoon-player-api/internal/config"
	"github.com/riskibarqy/tycoon-player-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tycoon-player-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

func TestNewOpener_Drivers(t *testing.T) {
	logger := logging.NewNop()

	opener, err := NewOpener(config.Config{StoreDriver: config.StoreDriverPostgres}, logger)
	if err != nil {
		t.Fatalf("postgres opener: %v", err)
	}
	if _, ok := opener.(*postgres.Connector); !ok {
		t.Fatalf("expected postgres connector, got %T", opener)
	}

	opener, err = NewOpener(config.Config{StoreDriver: config.StoreDriverMemory}, logger)
	if err != nil {
		t.Fatalf("memory opener: %v", err)
	}
	if _, ok := opener.(*memory.Database); !ok {
		t.Fatalf("expected memory database, got %T", opener)
	}

	if _, err := NewOpener(config.Config{StoreDriver: "mysql"}, logger); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
}

func TestNewHTTPServer_MemoryStore(t *testing.T) {
	cfg := config.Config{
		HTTPAddr:       ":0",
		StoreDriver:    config.StoreDriverMemory,
		MetricsEnabled: true,
	}

	srv, err := NewHTTPServer(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"players"`) {
		t.Fatalf("unexpected leaderboard response %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "tycoon_player_invocations_total") {
		t.Fatalf("expected invocation metrics to be exposed")
	}
}

func TestNewHTTPServer_EmptyAddr(t *testing.T) {
	if _, err := NewHTTPServer(config.Config{StoreDriver: config.StoreDriverMemory}, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}
}

func TestNewHandler_WithoutMetrics(t *testing.T) {
	h, err := NewHandler(config.Config{StoreDriver: config.StoreDriverMemory}, logging.NewNop(), nil)
	if err != nil {
		t.Fatalf("new handler: %v", err)
	}
	if h == nil {
		t.Fatalf("expected handler")
	}
}
