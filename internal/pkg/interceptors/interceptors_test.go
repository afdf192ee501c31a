package interceptors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

var info = &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

func TestRequestIDFromMetadata(t *testing.T) {
	t.Parallel()

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(HeaderRequestID, "req-123"))

	var seen string
	_, err := RequestIDUnaryInterceptor()(ctx, nil, info, func(ctx context.Context, _ any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "req-123", seen)
}

func TestRequestIDGenerated(t *testing.T) {
	t.Parallel()

	var seen string
	_, err := RequestIDUnaryInterceptor()(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
		seen = RequestIDFromContext(ctx)
		return nil, nil
	})
	require.NoError(t, err)
	assert.Len(t, seen, 36)
}

func TestRequestIDFromContextEmpty(t *testing.T) {
	t.Parallel()
	assert.Empty(t, RequestIDFromContext(context.Background()))
}

func TestLoggingPassesThrough(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	resp, err := LoggingUnaryInterceptor()(context.Background(), "req", info, func(context.Context, any) (any, error) {
		return "resp", boom
	})
	assert.Equal(t, "resp", resp)
	assert.ErrorIs(t, err, boom)
}
