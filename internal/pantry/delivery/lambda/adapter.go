package lambda

import (
	"encoding/base64"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/tair/pantry/internal/pantry/delivery/gateway"
)

// FromHTTPAPI maps an HTTP API (payload format 2.0) event onto a canonical request
func FromHTTPAPI(e events.APIGatewayV2HTTPRequest) (gateway.Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded)
	if err != nil {
		return gateway.Request{}, err
	}

	req := gateway.Request{
		RouteKey:   e.RouteKey,
		Method:     e.RequestContext.HTTP.Method,
		Path:       e.RawPath,
		PathParams: e.PathParameters,
		Body:       body,
	}

	if a := e.RequestContext.Authorizer; a != nil && a.JWT != nil {
		req.JWTClaims = make(gateway.Claims, len(a.JWT.Claims))
		for k, v := range a.JWT.Claims {
			req.JWTClaims[k] = v
		}
	}
	return req, nil
}

// FromREST maps a REST API proxy event onto a canonical request
func FromREST(e events.APIGatewayProxyRequest) (gateway.Request, error) {
	body, err := decodeBody(e.Body, e.IsBase64Encoded)
	if err != nil {
		return gateway.Request{}, err
	}

	req := gateway.Request{
		Method:     e.HTTPMethod,
		Path:       e.Path,
		PathParams: e.PathParameters,
		Body:       body,
	}

	authorizer := e.RequestContext.Authorizer
	if jwt, ok := authorizer["jwt"].(map[string]interface{}); ok {
		req.JWTClaims = claimsOf(jwt["claims"])
	}
	req.AuthorizerClaims = claimsOf(authorizer["claims"])
	return req, nil
}

// ToHTTPAPI converts a gateway response to an HTTP API response
func ToHTTPAPI(resp gateway.Response) events.APIGatewayV2HTTPResponse {
	return events.APIGatewayV2HTTPResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

// ToREST converts a gateway response to a REST API proxy response
func ToREST(resp gateway.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}

func decodeBody(body string, encoded bool) ([]byte, error) {
	if !encoded {
		return []byte(body), nil
	}
	return base64.StdEncoding.DecodeString(body)
}

func claimsOf(v interface{}) gateway.Claims {
	switch c := v.(type) {
	case map[string]interface{}:
		return gateway.Claims(c)
	case map[string]string:
		claims := make(gateway.Claims, len(c))
		for k, s := range c {
			claims[k] = s
		}
		return claims
	default:
		return nil
	}
}

func badBody() gateway.Response {
	return gateway.Response{
		StatusCode: http.StatusBadRequest,
		Headers:    gateway.DefaultHeaders(),
		Body:       `{"error":"Invalid request body"}`,
	}
}
