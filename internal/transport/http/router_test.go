package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRouterUnknownRouteUsesErrorEnvelope(t *testing.T) {
	e := NewRouter([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error":"Not Found"`) {
		t.Fatalf("expected error envelope, got %s", rec.Body.String())
	}
}

func TestRouterHealth(t *testing.T) {
	e := NewRouter([]string{"http://localhost:3000"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok":true`) {
		t.Fatalf("unexpected health response %d %s", rec.Code, rec.Body.String())
	}
}
