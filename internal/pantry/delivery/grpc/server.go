package grpc

import (
	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// NewServer creates a gRPC server exposing the health service
func NewServer(hs *HealthServer) *grpc.Server {
	server := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			MetricsInterceptor,
			LoggingInterceptor,
		),
	)

	healthpb.RegisterHealthServer(server, hs)

	// for grpcurl and grpc-health-probe
	reflection.Register(server)

	return server
}
