package interceptors

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

// LoggingUnaryInterceptor writes one log line per call. Run it after
// RequestIDUnaryInterceptor so the id is available.
func LoggingUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		start := time.Now()
		resp, err := handler(ctx, req)

		level := slog.LevelDebug
		if err != nil {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "grpc call",
			"method", info.FullMethod,
			"request_id", RequestIDFromContext(ctx),
			"code", status.Code(err).String(),
			"duration", time.Since(start),
		)
		return resp, err
	}
}
