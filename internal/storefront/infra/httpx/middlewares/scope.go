package middlewares

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/core/ports"
)

const scopeValue = "scope"

type scopeKey struct{}

type scope struct {
	id    string
	local ports.LocalStore
}

// NewCookieStore returns the signed cookie store that carries browser scope ids.
func NewCookieStore(secret []byte, maxAge int, secure bool) *sessions.CookieStore {
	store := sessions.NewCookieStore(secret)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// Scope resolves the browser scope from the named cookie, minting a new one
// when the cookie is absent or unreadable, and binds the matching local store
// to the request context.
func Scope(store sessions.Store, cookieName string, c cache.Cache) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, err := store.Get(r, cookieName)
			if err != nil {
				slog.DebugContext(r.Context(), "discarding unreadable scope cookie", "error", err)
			}

			id, _ := sess.Values[scopeValue].(string)
			if id == "" {
				id = uuid.NewString()
				sess.Values[scopeValue] = id
				if err := sess.Save(r, w); err != nil {
					slog.ErrorContext(r.Context(), "failed to save scope cookie", "error", err)
				}
			}

			ctx := context.WithValue(r.Context(), scopeKey{}, scope{id: id, local: c.Scope(id)})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// LocalStore returns the local store bound by Scope, or nil outside it.
func LocalStore(ctx context.Context) ports.LocalStore {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s.local
}

func ScopeID(ctx context.Context) string {
	s, _ := ctx.Value(scopeKey{}).(scope)
	return s.id
}
