package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tair/pantry/internal/pantry/delivery/gateway"
	"github.com/tair/pantry/internal/pantry/domain"
	"github.com/tair/pantry/pkg/logger"
)

const maxBodyBytes = 1 << 20

// PantryHandler serves the pantry inventory API over net/http
type PantryHandler struct {
	gateway *gateway.Handler
	store   domain.ItemRepository

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// Response is the envelope of the operational endpoints
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// NewPantryHandler creates a new pantry handler and registers its metrics on reg
func NewPantryHandler(gw *gateway.Handler, store domain.ItemRepository, reg prometheus.Registerer) *PantryHandler {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pantry_service_requests_total",
			Help: "Total number of requests to pantry service",
		},
		[]string{"method", "route", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pantry_service_request_duration_seconds",
			Help:    "Duration of pantry service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	reg.MustRegister(requestCounter, requestLatency)

	return &PantryHandler{
		gateway:        gw,
		store:          store,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
	}
}

// ServeInventory maps the HTTP request onto the gateway and writes its response
func (h *PantryHandler) ServeInventory(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to read request body")
		writeGatewayResponse(w, gateway.Response{
			StatusCode: http.StatusRequestEntityTooLarge,
			Headers:    gateway.DefaultHeaders(),
			Body:       `{"error":"Request body too large"}`,
		})
		return
	}

	req := gateway.Request{
		Method:     r.Method,
		Path:       r.URL.EscapedPath(),
		PathParams: mux.Vars(r),
		Body:       body,
		JWTClaims:  ClaimsFromContext(ctx),
	}

	resp := h.gateway.Handle(ctx, req)
	writeGatewayResponse(w, resp)

	route := resp.RouteKey
	if route == "" {
		route = "unrouted"
	}
	h.requestLatency.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	h.requestCounter.WithLabelValues(r.Method, route, strconv.Itoa(resp.StatusCode)).Inc()
}

// RegisterRoutes registers the inventory routes. Unmatched paths are also answered
// by the gateway so they get its 401 and 404 envelopes.
func (h *PantryHandler) RegisterRoutes(router *mux.Router, authenticate func(http.Handler) http.Handler) {
	router.PathPrefix("/inventory").HandlerFunc(h.ServeInventory)
	router.NotFoundHandler = authenticate(http.HandlerFunc(h.ServeInventory))
}

// RegisterHealthCheck registers health check endpoint
func (h *PantryHandler) RegisterHealthCheck(router *mux.Router) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := h.store.Ping(ctx); err != nil {
			logger.Warn(ctx).Err(err).Msg("Store health check failed")
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Store unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Pantry service is healthy",
		})
	}).Methods("GET")
}

func writeGatewayResponse(w http.ResponseWriter, resp gateway.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body != "" {
		io.WriteString(w, resp.Body)
	}
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
