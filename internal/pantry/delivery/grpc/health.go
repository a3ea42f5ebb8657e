package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/pkg/logger"
)

// ServiceName is the health service name reported next to the overall status
const ServiceName = "pantry.Inventory"

// HealthServer reports SERVING while the item store answers Ping
type HealthServer struct {
	*health.Server
	store    domain.ItemRepository
	interval time.Duration
	timeout  time.Duration
}

// NewHealthServer creates a health server that starts in NOT_SERVING
func NewHealthServer(store domain.ItemRepository, interval time.Duration) *HealthServer {
	s := &HealthServer{
		Server:   health.NewServer(),
		store:    store,
		interval: interval,
		timeout:  2 * time.Second,
	}
	s.set(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

// Probe pings the store once and publishes the result
func (s *HealthServer) Probe(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := s.store.Ping(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("Store ping failed")
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	s.set(status)
	return status
}

// Run probes on every interval until ctx is done, then marks the service as shut down
func (s *HealthServer) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.Probe(ctx)
	for {
		select {
		case <-ctx.Done():
			s.Shutdown()
			return
		case <-ticker.C:
			s.Probe(ctx)
		}
	}
}

func (s *HealthServer) set(status healthpb.HealthCheckResponse_ServingStatus) {
	s.SetServingStatus("", status)
	s.SetServingStatus(ServiceName, status)
}
