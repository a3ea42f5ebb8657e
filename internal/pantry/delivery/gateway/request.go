package gateway

// Claims is a set of already verified token claims forwarded by an authorizer.
type Claims map[string]interface{}

// Request is the envelope-independent form of an inbound call. Every delivery
// adapter (HTTP server, Lambda HTTP API, Lambda REST API) maps its own shape onto it.
type Request struct {
	// RouteKey is a precomputed "<METHOD> <PATTERN>" key, when the upstream gateway supplies one.
	RouteKey   string
	Method     string
	Path       string
	PathParams map[string]string
	Body       []byte

	// JWTClaims holds the claims of a JWT authorizer (HTTP API shape).
	JWTClaims Claims
	// AuthorizerClaims holds the claims of a REST API authorizer.
	AuthorizerClaims Claims
}
