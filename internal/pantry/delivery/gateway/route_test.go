package gateway

import "testing"

func TestRouteKey(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{"precomputed key wins", Request{RouteKey: "GET /inventory", Method: "POST", Path: "/x"}, "GET /inventory"},
		{"collection", Request{Method: "GET", Path: "/inventory"}, "GET /inventory"},
		{"trailing slash is item route", Request{Method: "PUT", Path: "/inventory/"}, "PUT /inventory/{id}"},
		{"item", Request{Method: "DELETE", Path: "/inventory/abc"}, "DELETE /inventory/{id}"},
		{"deep path is item route", Request{Method: "PUT", Path: "/inventory/abc/def"}, "PUT /inventory/{id}"},
		{"prefix without separator", Request{Method: "GET", Path: "/inventoryx"}, "GET /inventory"},
		{"other path", Request{Method: "GET", Path: "/recipes"}, "GET /recipes"},
		{"defaults", Request{}, "GET /"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RouteKey(tt.req); got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestResolveRoute(t *testing.T) {
	tests := map[string]Route{
		"GET /inventory":         RouteList,
		"POST /inventory":        RouteCreate,
		"PUT /inventory/{id}":    RouteUpdate,
		"DELETE /inventory/{id}": RouteDelete,
		"GET /inventory/{id}":    RouteNone,
		"PUT /inventory":         RouteNone,
		"get /inventory":         RouteNone,
		"":                       RouteNone,
	}

	for key, want := range tests {
		if got := ResolveRoute(key); got != want {
			t.Errorf("%q: expected %s, got %s", key, want, got)
		}
	}
}

func TestItemID(t *testing.T) {
	tests := []struct {
		name   string
		req    Request
		want   string
		wantOK bool
	}{
		{"path parameter", Request{PathParams: map[string]string{"id": "p-1"}, Path: "/inventory/other"}, "p-1", true},
		{"second segment", Request{Path: "/inventory/abc"}, "abc", true},
		{"url decoded", Request{Path: "/inventory/a%20b%2Fc"}, "a b/c", true},
		{"extra segments ignored", Request{Path: "/inventory/abc/def"}, "abc", true},
		{"duplicate slashes", Request{Path: "//inventory//abc"}, "abc", true},
		{"missing", Request{Path: "/inventory/"}, "", false},
		{"other collection", Request{Path: "/recipes/abc"}, "", false},
		{"bad escape", Request{Path: "/inventory/%zz"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ItemID(tt.req)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("expected (%q, %v), got (%q, %v)", tt.want, tt.wantOK, got, ok)
			}
		})
	}
}

func TestIsPreflight(t *testing.T) {
	if !IsPreflight(Request{Method: "OPTIONS"}) {
		t.Error("expected OPTIONS method to be preflight")
	}
	if !IsPreflight(Request{RouteKey: "OPTIONS /{proxy+}"}) {
		t.Error("expected OPTIONS route key to be preflight")
	}
	if IsPreflight(Request{Method: "GET", RouteKey: "GET /inventory"}) {
		t.Error("expected GET not to be preflight")
	}
}
