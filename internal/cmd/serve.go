package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/jcmexdev/storefront/internal/config"
	"github.com/jcmexdev/storefront/internal/pkg/telemetry"
	"github.com/jcmexdev/storefront/internal/storefront/core/catalog"
	"github.com/jcmexdev/storefront/internal/storefront/core/forms"
	"github.com/jcmexdev/storefront/internal/storefront/infra/grpcx"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx/middlewares"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the gRPC health endpoint",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.SetupTracer(ctx, telemetry.TracerConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Endpoint:    cfg.Telemetry.Endpoint,
			Environment: cfg.Telemetry.Environment,
			SampleRatio: cfg.Telemetry.SampleRatio,
		})
		if err != nil {
			return fmt.Errorf("initialise tracer: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				slog.Error("tracer shutdown error", "error", err)
			}
		}()
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer b.Close()

	cat := catalog.New(nil)
	if cfg.Catalog.Remote {
		cat = catalog.New(b.remote)
	}

	handler := httpx.NewHandler(cat, forms.NewService(b.remote, b.remote), b.remote, b.journal)
	router := httpx.NewRouter(handler, httpx.ScopeConfig{
		Sessions:   middlewares.NewCookieStore([]byte(cfg.Session.Secret), cfg.Session.MaxAge, cfg.Session.Secure),
		CookieName: cfg.Session.CookieName,
		Cache:      b.cache,
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		slog.Info("storefront HTTP API running", "addr", cfg.HTTP.Addr, "remote", cfg.Remote.Driver, "cache", cfg.Cache.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	var health *grpcx.HealthServer
	if cfg.GRPC.Addr != "" {
		health, err = startHealth(ctx, cfg, b, errCh)
		if err != nil {
			return err
		}
	}

	var cause error
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case cause = <-errCh:
		slog.Error("server failed", "error", cause)
	}

	return shutdownServers(cfg, srv, health, cause)
}

func startHealth(ctx context.Context, cfg *config.Config, b *backend, errCh chan<- error) (*grpcx.HealthServer, error) {
	lis, err := net.Listen("tcp", cfg.GRPC.Addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", cfg.GRPC.Addr, err)
	}

	health := grpcx.NewHealthServer(b.remote, cfg.GRPC.HealthInterval)
	go health.Watch(ctx)
	go func() {
		slog.Info("gRPC health endpoint running", "addr", cfg.GRPC.Addr)
		if err := health.Server().Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()
	return health, nil
}

func shutdownServers(cfg *config.Config, srv *http.Server, health *grpcx.HealthServer, cause error) error {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if health != nil {
		done := make(chan struct{})
		go func() {
			health.Server().GracefulStop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			health.Server().Stop()
		}
	}

	if err := srv.Shutdown(ctx); err != nil {
		return errors.Join(cause, fmt.Errorf("http shutdown: %w", err))
	}
	return cause
}
