// Package grpcx exposes the standard gRPC health service. The reported status
// follows the remote store: SERVING while Ping succeeds, NOT_SERVING otherwise.
package grpcx

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
)

// ServiceName is the health service key reported alongside the overall "".
const ServiceName = "storefront"

// Pinger is the part of the remote store the health checker needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthServer struct {
	grpc     *grpc.Server
	health   *health.Server
	remote   Pinger
	interval time.Duration
	timeout  time.Duration
}

func NewHealthServer(remote Pinger, interval time.Duration) *HealthServer {
	if interval <= 0 {
		interval = 15 * time.Second
	}

	srv := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.RequestIDUnaryInterceptor(),
			interceptors.LoggingUnaryInterceptor(),
		),
	)
	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	return &HealthServer{
		grpc:     srv,
		health:   hs,
		remote:   remote,
		interval: interval,
		timeout:  3 * time.Second,
	}
}

// Server returns the underlying grpc.Server for Serve and GracefulStop.
func (h *HealthServer) Server() *grpc.Server { return h.grpc }

// Check pings the remote store once and publishes the result.
func (h *HealthServer) Check(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := h.remote.Ping(ctx); err != nil {
		slog.WarnContext(ctx, "remote store unreachable", "error", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
	return status
}

// Watch re-checks on every interval until ctx is done, then marks the
// server NOT_SERVING so clients drain before shutdown.
func (h *HealthServer) Watch(ctx context.Context) {
	h.Check(ctx)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			h.health.Shutdown()
			return
		case <-ticker.C:
			h.Check(ctx)
		}
	}
}
