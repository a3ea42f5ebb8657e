package lambda

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/pantry/internal/pantry/delivery/gateway"
	"github.com/tair/pantry/pkg/logger"
	"github.com/tair/pantry/pkg/tracing"
)

// Handler serves API Gateway proxy events of either payload format
type Handler struct {
	gateway *gateway.Handler
	tracer  trace.Tracer
	// flush runs after every invocation; the environment may be frozen right after
	flush func(context.Context) error
}

// NewHandler creates a new Lambda handler
func NewHandler(gw *gateway.Handler) *Handler {
	return &Handler{
		gateway: gw,
		tracer:  otel.Tracer("pantry-lambda"),
		flush:   tracing.ForceFlush,
	}
}

type envelopeProbe struct {
	Version    string `json:"version"`
	RouteKey   string `json:"routeKey"`
	HTTPMethod string `json:"httpMethod"`
}

// Invoke is the Lambda entry point. It detects the envelope format from the raw
// event: payload format 2.0 carries a version of "2.0" and a route key, the REST
// proxy format carries httpMethod.
func (h *Handler) Invoke(ctx context.Context, payload json.RawMessage) (interface{}, error) {
	var probe envelopeProbe
	if err := json.Unmarshal(payload, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}

	if probe.Version == "2.0" || (probe.RouteKey != "" && probe.HTTPMethod == "") {
		var e events.APIGatewayV2HTTPRequest
		if err := json.Unmarshal(payload, &e); err != nil {
			return nil, fmt.Errorf("failed to decode HTTP API event: %w", err)
		}
		return h.HandleHTTPAPI(ctx, e)
	}

	var e events.APIGatewayProxyRequest
	if err := json.Unmarshal(payload, &e); err != nil {
		return nil, fmt.Errorf("failed to decode REST API event: %w", err)
	}
	return h.HandleREST(ctx, e)
}

// HandleHTTPAPI answers an HTTP API event
func (h *Handler) HandleHTTPAPI(ctx context.Context, e events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	req, err := FromHTTPAPI(e)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to decode request body")
		return ToHTTPAPI(badBody()), nil
	}
	return ToHTTPAPI(h.serve(ctx, req)), nil
}

// HandleREST answers a REST API proxy event
func (h *Handler) HandleREST(ctx context.Context, e events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	req, err := FromREST(e)
	if err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to decode request body")
		return ToREST(badBody()), nil
	}
	return ToREST(h.serve(ctx, req)), nil
}

func (h *Handler) serve(ctx context.Context, req gateway.Request) gateway.Response {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		ctx = logger.WithFields(ctx, map[string]string{"aws_request_id": lc.AwsRequestID})
	}

	resp := h.traced(ctx, req)

	if err := h.flush(ctx); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to flush spans")
	}
	return resp
}

func (h *Handler) traced(ctx context.Context, req gateway.Request) gateway.Response {
	ctx, span := h.tracer.Start(ctx, "lambda.invoke",
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", req.Method),
			attribute.String("http.route", req.RouteKey),
		),
	)
	defer span.End()

	resp := h.gateway.Handle(ctx, req)

	span.SetAttributes(
		attribute.String("pantry.route_key", resp.RouteKey),
		attribute.Int("http.status_code", resp.StatusCode),
	)
	return resp
}
