package gateway

import (
	"net/http"
	"net/url"
	"strings"
)

const (
	collectionPath = "/inventory"
	itemPattern    = "/inventory/{id}"
)

// Route is the closed set of operations the service answers.
type Route int

const (
	RouteNone Route = iota
	RouteList
	RouteCreate
	RouteUpdate
	RouteDelete
)

var routeNames = map[Route]string{
	RouteNone:   "none",
	RouteList:   "list",
	RouteCreate: "create",
	RouteUpdate: "update",
	RouteDelete: "delete",
}

func (r Route) String() string {
	if name, ok := routeNames[r]; ok {
		return name
	}
	return "unknown"
}

var routes = map[string]Route{
	http.MethodGet + " " + collectionPath:  RouteList,
	http.MethodPost + " " + collectionPath: RouteCreate,
	http.MethodPut + " " + itemPattern:     RouteUpdate,
	http.MethodDelete + " " + itemPattern:  RouteDelete,
}

// RouteKey returns the canonical "<METHOD> <PATTERN>" key of a request. A key given
// by the upstream gateway wins. Otherwise any path under the collection prefix with
// a second segment maps to the item pattern, and any other path with the prefix maps
// to the collection.
func RouteKey(req Request) string {
	if req.RouteKey != "" {
		return req.RouteKey
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	path := req.Path
	if path == "" {
		path = "/"
	}

	switch {
	case strings.HasPrefix(path, collectionPath+"/"):
		return method + " " + itemPattern
	case strings.HasPrefix(path, collectionPath):
		return method + " " + collectionPath
	default:
		return method + " " + path
	}
}

// ResolveRoute maps a route key to its operation, RouteNone when unmatched.
func ResolveRoute(key string) Route {
	return routes[key]
}

// IsPreflight reports whether the request is a CORS preflight.
func IsPreflight(req Request) bool {
	return strings.EqualFold(req.Method, http.MethodOptions) ||
		strings.HasPrefix(req.RouteKey, http.MethodOptions+" ")
}

// ItemID extracts the item id from the path parameters or, failing that, from the
// second segment of the path.
func ItemID(req Request) (string, bool) {
	if id := req.PathParams["id"]; id != "" {
		return id, true
	}

	var parts []string
	for _, p := range strings.Split(req.Path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 || parts[0] != strings.TrimPrefix(collectionPath, "/") {
		return "", false
	}

	id, err := url.PathUnescape(parts[1])
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
