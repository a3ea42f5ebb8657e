package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tair/pantry/internal/config"
	"github.com/tair/pantry/internal/pantry"
	"github.com/tair/pantry/pkg/logger"
	"github.com/tair/pantry/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// CloudWatch wants one JSON object per line
	logger.Init(cfg.ServiceName, false)
	logger.SetLevel(cfg.LogLevel)

	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		Enabled:        cfg.TracingEnabled,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx := context.Background()

	backend, err := pantry.OpenBackend(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open store")
	}

	publisher, err := pantry.OpenPublisher(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}

	handler, err := pantry.InitializeLambdaHandler(cfg, backend, publisher)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	logger.Logger.Info().
		Str("store_backend", cfg.StoreBackend).
		Str("table", cfg.TableName).
		Msg("Pantry Lambda handler ready")

	// lambda.Start never returns; release resources when the runtime sends SIGTERM
	lambda.StartWithOptions(handler.Invoke, lambda.WithEnableSIGTERM(func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to shut down tracer")
		}
		if err := publisher.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close event publisher")
		}
		if err := backend.Close(); err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to close store")
		}
	}))
}
