package gateway

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ResolveOwner returns the caller identity from the JWT authorizer claims, falling
// back to the REST authorizer claims. The claims are trusted as is: verification
// happens before the request reaches the service.
func ResolveOwner(req Request) (string, bool) {
	if sub, ok := subject(req.JWTClaims); ok {
		return sub, true
	}
	if sub, ok := subject(req.AuthorizerClaims); ok {
		return sub, true
	}
	return "", false
}

func subject(claims Claims) (string, bool) {
	v, ok := claims["sub"]
	if !ok || v == nil {
		return "", false
	}

	switch s := v.(type) {
	case string:
		return s, s != ""
	case bool:
		return "true", s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), s != 0
	case json.Number:
		return s.String(), s.String() != "0"
	default:
		return fmt.Sprint(s), true
	}
}
