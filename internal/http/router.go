package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/rogerio-castellano/shopify-products-admin/docs"
	"github.com/rogerio-castellano/shopify-products-admin/internal/auth"
	"github.com/rogerio-castellano/shopify-products-admin/internal/http/handlers"
	rl "github.com/rogerio-castellano/shopify-products-admin/internal/http/rate_limiter"
)

type RouterConfig struct {
	Logger        *slog.Logger
	Authenticator auth.Authenticator
	// APIKey is the app's client id, handed to App Bridge pages.
	APIKey string
	// Limiter is optional; nil disables rate limiting.
	Limiter *rl.Limiter
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(RequestID)
	r.Use(Logger(logger))
	r.Use(Recovery(logger))
	if cfg.Limiter != nil {
		r.Use(RateLimit(cfg.Limiter))
	}

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/auth", handlers.InstallHandler)
	r.Get("/auth/callback", handlers.CallbackHandler)
	r.Post("/webhooks/app/uninstalled", handlers.AppUninstalledHandler)

	r.Group(func(r chi.Router) {
		r.Use(RequireSession(cfg.Authenticator, cfg.APIKey, logger))
		r.Get("/app/products", handlers.ProductsPageHandler)
		r.Get("/api/products", handlers.GetProductsHandler)
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		target := "/app/products"
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusFound)
	})

	return r
}
