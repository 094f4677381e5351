package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/rl1809/coffee-maker/internal/metrics"
)

type RouterConfig struct {
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	// Limiter throttles the /api routes. Nil disables rate limiting.
	Limiter *rate.Limiter
}

// NewRouter wires the API routes behind request id, rate limit and
// observability middleware. /health and /metrics bypass the limiter.
func NewRouter(h *HTTPHandler, cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	api := http.NewServeMux()
	api.HandleFunc("GET /api/recipes", h.ListRecipes)
	api.HandleFunc("POST /api/recipes", h.AddRecipe)
	api.HandleFunc("PUT /api/recipes/{index}", h.EditRecipe)
	api.HandleFunc("DELETE /api/recipes/{index}", h.DeleteRecipe)
	api.HandleFunc("GET /api/inventory", h.CheckInventory)
	api.HandleFunc("POST /api/inventory", h.AddInventory)
	api.HandleFunc("POST /api/purchase", h.Purchase)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.HealthCheck)
	if cfg.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}
	mux.Handle("/api/", rateLimitMiddleware(cfg.Limiter)(api))

	return chain(mux,
		requestIDMiddleware,
		observeMiddleware(logger, cfg.Metrics),
	)
}
