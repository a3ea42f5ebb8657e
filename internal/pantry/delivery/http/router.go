package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// NewRouter assembles middlewares, operational endpoints and the inventory routes
func NewRouter(h *PantryHandler, config *MiddlewareConfig, gatherer prometheus.Gatherer) http.Handler {
	router := mux.NewRouter()

	RegisterMiddlewares(router, config)

	h.RegisterHealthCheck(router)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	RegisterSwaggerDocs(router, httpSwagger.WrapHandler)

	h.RegisterRoutes(router, ClaimsMiddleware(config.Verifier))

	return SetupCORS(config)(router)
}
