package app

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/riskibarqy/tycoon-player-api/internal/config"
	"github.com/riskibarqy/tycoon-player-api/internal/domain/player"
	"github.com/riskibarqy/tycoon-player-api/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/tycoon-player-api/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/tycoon-player-api/internal/interfaces/httpapi"
	"github.com/riskibarqy/tycoon-player-api/internal/observability"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
	"github.com/riskibarqy/tycoon-player-api/internal/usecase"
)

// NewOpener picks the per-invocation store backend for cfg.StoreDriver.
func NewOpener(cfg config.Config, logger *logging.Logger) (player.Opener, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		return postgres.NewConnector(config.DatabaseURL, logger), nil
	case config.StoreDriverMemory:
		db := memory.NewDatabase()
		if err := db.Seed(memory.DemoProfiles()...); err != nil {
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
		logger.Warn("using in-memory player store", "env", cfg.AppEnv)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

// NewHandler wires the invocation handler. reg may be nil to skip metrics.
func NewHandler(cfg config.Config, logger *logging.Logger, reg prometheus.Registerer) (*httpapi.Handler, error) {
	opener, err := NewOpener(cfg, logger)
	if err != nil {
		return nil, err
	}

	var opts []httpapi.HandlerOption
	if reg != nil {
		opts = append(opts, httpapi.WithMetrics(httpapi.NewMetrics(reg)))
	}

	svc := usecase.NewPlayerService(opener, logger.Named("usecase"))
	return httpapi.NewHandler(svc, logger.Named("httpapi"), opts...), nil
}

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	var (
		reg            prometheus.Registerer
		metricsHandler http.Handler
	)
	if cfg.MetricsEnabled {
		registry := observability.NewMetricsRegistry()
		reg = registry
		metricsHandler = observability.MetricsHandler(registry)
	}

	handler, err := NewHandler(cfg, logger, reg)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, metricsHandler),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
