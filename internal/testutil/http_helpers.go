package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/api/middleware"
)

// NewRequestWithURLParams builds a body-less request already routed by chi,
// so handlers can read chi.URLParam without going through the router.
//
//	req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/investments/"+id, map[string]string{"uuid": id})
func NewRequestWithURLParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	if len(params) == 0 {
		return req
	}
	return WithURLParams(req, params)
}

// NewRequestWithQueryParams builds a GET-style request carrying params in its
// query string, e.g. {"period": "1y", "step": "30"} for the projection view.
func NewRequestWithQueryParams(method, path string, params map[string]string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	values := req.URL.Query()
	for name, v := range params {
		values.Set(name, v)
	}
	req.URL.RawQuery = values.Encode()
	return req
}

// NewJSONRequest creates an HTTP request whose body is body encoded as JSON.
// A string body is sent verbatim, which allows malformed payloads in tests.
func NewJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			t.Fatalf("Failed to encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// WithUser returns req as seen by a handler behind RequireAuth for userID.
func WithUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

// WithURLParams adds chi URL parameters to an existing request.
func WithURLParams(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for name, v := range params {
		routeCtx.URLParams.Add(name, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}
