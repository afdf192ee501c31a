// Package session issues the per-browser token that scopes cart and order
// rows when nobody is logged in.
package session

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

const (
	tokenPrefix  = "session_"
	suffixLength = 9
	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// GetOrCreate returns the token persisted in local, creating and persisting a
// new one when none exists. Storage failures are logged and a fresh token is
// still returned, so callers always get a usable value. A failed read never
// overwrites the stored token: the fresh one lives for this request only.
func GetOrCreate(ctx context.Context, local ports.LocalStore) string {
	token, ok, err := local.Get(ctx, ports.KeySession)
	if err != nil {
		slog.WarnContext(ctx, "session lookup failed, issuing a transient token", "error", err)
		return NewToken(time.Now())
	}
	if ok && token != "" {
		return token
	}

	token = NewToken(time.Now())
	if err := local.Set(ctx, ports.KeySession, token); err != nil {
		slog.WarnContext(ctx, "failed to persist session token", "error", err)
	}
	return token
}

// NewToken combines the wall clock in milliseconds with a random base36
// suffix. Collisions are possible in principle and treated as negligible.
func NewToken(now time.Time) string {
	return fmt.Sprintf("%s%d_%s", tokenPrefix, now.UnixMilli(), randomSuffix(suffixLength))
}

func randomSuffix(n int) string {
	out := make([]byte, n)
	max := big.NewInt(int64(len(alphabet)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		out[i] = alphabet[idx.Int64()]
	}
	return string(out)
}
