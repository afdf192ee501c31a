package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/sessions"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/storefront/internal/pkg/cache"
	"github.com/jcmexdev/storefront/internal/storefront/infra/httpx/middlewares"
)

// ScopeConfig binds API requests to a browser scope.
type ScopeConfig struct {
	Sessions   sessions.Store
	CookieName string
	Cache      cache.Cache
}

func NewRouter(handler *Handler, scope ScopeConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", handler.Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", handler.ListProducts)
		r.Get("/products/{id}", handler.GetProduct)
		r.Get("/bookings/service-types", handler.ServiceTypes)
		r.Post("/bookings", handler.SubmitBooking)
		r.Post("/feedback", handler.SubmitFeedback)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Scope(scope.Sessions, scope.CookieName, scope.Cache))

			r.Get("/session", handler.GetSession)
			r.Get("/cart", handler.GetCart)
			r.Post("/cart/items", handler.AddItem)
			r.Patch("/cart/items/{productID}", handler.UpdateQuantity)
			r.Delete("/cart/items/{productID}", handler.RemoveItem)
			r.Delete("/cart", handler.ClearCart)
			r.Post("/checkout", handler.Checkout)
		})
	})

	return otelhttp.NewHandler(r, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}
