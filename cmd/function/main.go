package main

import (
	"context"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/riskibarqy/tycoon-player-api/internal/app"
	"github.com/riskibarqy/tycoon-player-api/internal/config"
	"github.com/riskibarqy/tycoon-player-api/internal/observability"
	"github.com/riskibarqy/tycoon-player-api/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Fields: []any{"service", cfg.ServiceName, "env", cfg.AppEnv, "version", cfg.ServiceVersion},
	})
	logging.SetDefault(logger)

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	// No /metrics endpoint exists inside a function instance.
	handler, err := app.NewHandler(cfg, logger, nil)
	if err != nil {
		logger.Error("build handler", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}

	invoke := func(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := handler.HandleAPIGateway(ctx, event)
		if flushErr := observability.FlushUptrace(ctx, cfg); flushErr != nil {
			logger.WarnContext(ctx, "flush traces failed", "error", flushErr)
		}
		return resp, err
	}

	lambda.StartWithOptions(invoke,
		lambda.WithEnableSIGTERM(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := shutdownTracing(ctx); err != nil {
				logger.Warn("shutdown uptrace failed", "error", err)
			}
			logger.Info("function instance shutting down")
			_ = logger.Sync()
		}),
	)
}
