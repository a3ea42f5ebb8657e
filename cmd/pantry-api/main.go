package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	_ "github.com/tair/pantry/docs"
	"github.com/tair/pantry/internal/config"
	"github.com/tair/pantry/internal/pantry"
	grpcDelivery "github.com/tair/pantry/internal/pantry/delivery/grpc"
	httpDelivery "github.com/tair/pantry/internal/pantry/delivery/http"
	"github.com/tair/pantry/pkg/auth"
	"github.com/tair/pantry/pkg/logger"
	"github.com/tair/pantry/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logger.Init(cfg.ServiceName, cfg.IsDevelopment())
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Str("store_backend", cfg.StoreBackend).
		Msg("Starting pantry service")

	if cfg.TableName == "" {
		logger.Logger.Warn().Msg("INVENTORY_TABLE_NAME is not set, every inventory request will fail")
	}

	shutdownTracer, err := tracing.InitTracer(tracing.Config{
		ServiceName:    cfg.ServiceName,
		Enabled:        cfg.TracingEnabled,
		JaegerEndpoint: cfg.JaegerEndpoint,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize tracer")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend, err := pantry.OpenBackend(ctx, cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to open store")
	}
	defer backend.Close()

	publisher, err := pantry.OpenPublisher(cfg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize event publisher")
	}
	defer publisher.Close()

	handler, err := pantry.InitializeHTTPHandler(cfg, backend, publisher, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}

	var verifier *auth.Verifier
	if cfg.JWTSecret != "" {
		verifier = auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer)
	} else {
		logger.Logger.Warn().Msg("JWT_SECRET is not set, bearer tokens are not verified and requests carry no identity")
	}

	middlewares := httpDelivery.DefaultMiddlewareConfig(verifier, cfg.RequestTimeout)
	middlewares.EnableTracing = cfg.TracingEnabled

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           httpDelivery.NewRouter(handler, middlewares, prometheus.DefaultGatherer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	if cfg.GRPCPort != "" {
		go startGRPCServer(ctx, backend, cfg.GRPCPort)
	}

	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("Tracer shutdown failed")
	}
}

func startGRPCServer(ctx context.Context, backend pantry.Backend, port string) {
	health := grpcDelivery.NewHealthServer(backend, 15*time.Second)
	go health.Run(ctx)

	server := grpcDelivery.NewServer(health)

	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("port", port).Msg("Failed to listen")
	}

	go func() {
		<-ctx.Done()
		server.GracefulStop()
	}()

	logger.Logger.Info().Str("port", port).Msg("gRPC health server started")

	if err := server.Serve(lis); err != nil {
		logger.Logger.Error().Err(err).Msg("gRPC server stopped")
	}
}
