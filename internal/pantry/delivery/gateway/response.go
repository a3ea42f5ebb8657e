package gateway

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope-independent result of a call.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
	// RouteKey is the key the request resolved to, empty before routing.
	RouteKey string
}

type errorBody struct {
	Error string `json:"error"`
}

type okBody struct {
	OK bool `json:"ok"`
}

// DefaultHeaders returns the headers carried by every response.
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
	}
}

func respondJSON(status int, payload interface{}) Response {
	resp := Response{StatusCode: status, Headers: DefaultHeaders()}
	if payload == nil {
		return resp
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return respondError(http.StatusInternalServerError, msgInternal)
	}
	resp.Body = string(body)
	return resp
}

func respondError(status int, msg string) Response {
	body, _ := json.Marshal(errorBody{Error: msg})
	return Response{StatusCode: status, Headers: DefaultHeaders(), Body: string(body)}
}
