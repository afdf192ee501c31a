// Package interceptors holds the gRPC server interceptors shared by every
// gRPC endpoint in the process.
package interceptors

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

// HeaderRequestID is the metadata key carrying the caller's request id. The
// HTTP side uses the same header name.
const HeaderRequestID = "x-request-id"

type ctxKey struct{}

// RequestIDUnaryInterceptor adopts the caller's x-request-id or mints one,
// stores it in the context and echoes it back as a response header.
func RequestIDUnaryInterceptor() grpc.UnaryServerInterceptor {
	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		requestID := metadataValue(ctx, HeaderRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}

		ctx = WithRequestID(ctx, requestID)
		if err := grpc.SetHeader(ctx, metadata.Pairs(HeaderRequestID, requestID)); err != nil {
			slog.DebugContext(ctx, "could not set request id header", "method", info.FullMethod, "error", err)
		}

		return handler(ctx, req)
	}
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestIDFromContext returns the id stored by the interceptor, falling back
// to incoming metadata, or "" when neither is present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return metadataValue(ctx, HeaderRequestID)
}

func metadataValue(ctx context.Context, key string) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if vals := md.Get(key); len(vals) > 0 {
			return vals[0]
		}
	}
	return ""
}
