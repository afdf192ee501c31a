package middlewares

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/jcmexdev/storefront/internal/pkg/interceptors"
)

// RequestID echoes chi's request id in the X-Request-Id response header and
// stores it where interceptors.RequestIDFromContext finds it. Mount it after
// middleware.RequestID.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := middleware.GetReqID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}

		w.Header().Set(middleware.RequestIDHeader, id)
		ctx := interceptors.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
